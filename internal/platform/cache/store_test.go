package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type teamPlayers struct {
	Team    string
	Players []string
}

func TestStore_TTLExpiry(t *testing.T) {
	store := NewStore(time.Minute)
	now := time.Date(2026, 10, 12, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	ctx := context.Background()
	if err := store.SetBytes(ctx, "rosters:week:7", []byte(`[]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok, _ := store.GetBytes(ctx, "rosters:week:7"); !ok {
		t.Fatalf("expected fresh entry")
	}

	now = now.Add(2 * time.Minute)
	if _, ok, _ := store.GetBytes(ctx, "rosters:week:7"); ok {
		t.Fatalf("expected entry to expire")
	}
	if store.Len() != 0 {
		t.Fatalf("expected expired entry to be evicted")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	store := NewStore(0)
	ctx := context.Background()
	_ = store.SetBytes(ctx, "rosters:week:7", []byte("a"))
	_ = store.SetBytes(ctx, "rosters:week:8", []byte("b"))
	_ = store.SetBytes(ctx, "free-agents:week:7:0", []byte("c"))

	if err := store.DeletePrefix(ctx, "rosters:"); err != nil {
		t.Fatalf("delete prefix: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("expected only free-agent entry to remain, got %d", store.Len())
	}
}

func TestGetOrLoadJSON_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	loader := NewLoader(NewStore(time.Minute), nil)
	var calls atomic.Int32

	load := func(context.Context) (teamPlayers, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return teamPlayers{Team: "Team A", Players: []string{"Aho"}}, nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := GetOrLoadJSON(context.Background(), loader, "same-key", load)
			if err != nil {
				errCh <- err
				return
			}
			if v.Team != "Team A" || len(v.Players) != 1 {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestGetOrLoadJSON_DecodesCachedValue(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	loader := NewLoader(store, nil)
	var calls atomic.Int32

	load := func(context.Context) (teamPlayers, error) {
		calls.Add(1)
		return teamPlayers{Team: "Team B", Players: []string{"Makar", "Hughes"}}, nil
	}

	if _, err := GetOrLoadJSON(context.Background(), loader, "k", load); err != nil {
		t.Fatalf("first load: %v", err)
	}
	got, err := GetOrLoadJSON(context.Background(), loader, "k", load)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if got.Team != "Team B" || len(got.Players) != 2 || got.Players[1] != "Hughes" {
		t.Fatalf("unexpected cached value: %+v", got)
	}
	if calls.Load() != 1 {
		t.Fatalf("loader called %d times, want 1", calls.Load())
	}
}

func TestGetOrLoadJSON_ErrorsAreNotCached(t *testing.T) {
	store := NewStore(time.Minute)
	loader := NewLoader(store, nil)
	boom := errors.New("upstream down")

	_, err := GetOrLoadJSON(context.Background(), loader, "k", func(context.Context) (int, error) {
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected failed load to leave cache empty")
	}
}

func TestGetOrLoadJSON_NilLoaderBypassesCache(t *testing.T) {
	got, err := GetOrLoadJSON(context.Background(), nil, "k", func(context.Context) (string, error) {
		return "direct", nil
	})
	if err != nil || got != "direct" {
		t.Fatalf("unexpected result: %q err=%v", got, err)
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
