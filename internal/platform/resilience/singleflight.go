package resilience

import "golang.org/x/sync/singleflight"

// Flight deduplicates concurrent calls for the same key and hands every
// waiter the same typed result.
type Flight[T any] struct {
	group singleflight.Group
}

func (f *Flight[T]) Do(key string, fn func() (T, error)) (T, error, bool) {
	v, err, shared := f.group.Do(key, func() (any, error) {
		return fn()
	})
	out, _ := v.(T)
	return out, err, shared
}

// Forget drops an in-flight key so the next caller starts a fresh call.
func (f *Flight[T]) Forget(key string) {
	f.group.Forget(key)
}
