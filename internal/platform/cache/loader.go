package cache

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/rosterview/internal/platform/logging"
	"golang.org/x/sync/singleflight"
)

// Loader performs load-through caching over a Backend. Backend failures are
// logged and bypassed so a broken cache never fails a request.
type Loader struct {
	backend Backend
	logger  *logging.Logger
	flight  singleflight.Group
}

func NewLoader(backend Backend, logger *logging.Logger) *Loader {
	if logger == nil {
		logger = logging.Default()
	}
	return &Loader{backend: backend, logger: logger}
}

func (l *Loader) Invalidate(ctx context.Context, prefix string) error {
	if l == nil || l.backend == nil {
		return nil
	}
	return l.backend.DeletePrefix(ctx, prefix)
}

// GetOrLoadJSON returns the cached value for key or calls load once per key
// across concurrent callers and stores the sonic-encoded result.
func GetOrLoadJSON[T any](ctx context.Context, l *Loader, key string, load func(context.Context) (T, error)) (T, error) {
	var zero T
	if load == nil {
		return zero, fmt.Errorf("loader is required")
	}
	if l == nil || l.backend == nil || key == "" {
		return load(ctx)
	}

	if value, ok := readJSON[T](ctx, l, key); ok {
		return value, nil
	}

	v, err, _ := l.flight.Do(key, func() (any, error) {
		if cached, ok := readJSON[T](ctx, l, key); ok {
			return cached, nil
		}

		loaded, loadErr := load(ctx)
		if loadErr != nil {
			return zero, loadErr
		}

		data, encErr := sonic.Marshal(loaded)
		if encErr != nil {
			l.logger.WarnContext(ctx, "cache encode failed", "key", key, "error", encErr)
			return loaded, nil
		}
		if setErr := l.backend.SetBytes(ctx, key, data); setErr != nil {
			l.logger.WarnContext(ctx, "cache write failed", "key", key, "error", setErr)
		}
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}

	out, _ := v.(T)
	return out, nil
}

func readJSON[T any](ctx context.Context, l *Loader, key string) (T, bool) {
	var out T
	data, ok, err := l.backend.GetBytes(ctx, key)
	if err != nil {
		l.logger.WarnContext(ctx, "cache read failed", "key", key, "error", err)
		return out, false
	}
	if !ok {
		return out, false
	}
	if err := sonic.Unmarshal(data, &out); err != nil {
		l.logger.WarnContext(ctx, "cache decode failed", "key", key, "error", err)
		return out, false
	}
	return out, true
}
