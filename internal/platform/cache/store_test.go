package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_CoalescesConcurrentMisses(t *testing.T) {
	t.Parallel()

	store := NewStore[[]int](time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) ([]int, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return []int{1, 2, 3}, nil
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
			v, _, err := store.GetOrLoad(context.Background(), "lines:p-1:abc", loader)
			if err != nil {
				errCh <- err
				return
			}
			if len(v) != 3 {
				errCh <- errors.New("unexpected value")
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_ReportsHits(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	loader := func(context.Context) (string, error) { return "value", nil }

	_, hit, err := store.GetOrLoad(context.Background(), "k", loader)
	if err != nil || hit {
		t.Fatalf("first load must miss, hit=%v err=%v", hit, err)
	}
	_, hit, err = store.GetOrLoad(context.Background(), "k", loader)
	if err != nil || !hit {
		t.Fatalf("second load must hit, hit=%v err=%v", hit, err)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	var calls atomic.Int32
	wantErr := errors.New("source down")
	loader := func(context.Context) (string, error) {
		if calls.Add(1) == 1 {
			return "", wantErr
		}
		return "ok", nil
	}

	if _, _, err := store.GetOrLoad(context.Background(), "k", loader); !errors.Is(err, wantErr) {
		t.Fatalf("expected loader error, got %v", err)
	}
	v, _, err := store.GetOrLoad(context.Background(), "k", loader)
	if err != nil || v != "ok" {
		t.Fatalf("expected retry to succeed, got %q err=%v", v, err)
	}
}

func TestStore_Expiry(t *testing.T) {
	t.Parallel()

	store := NewStore[int](time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "k", 7)
	if v, ok := store.Get(context.Background(), "k"); !ok || v != 7 {
		t.Fatalf("expected fresh value, got %v ok=%v", v, ok)
	}

	now = now.Add(2 * time.Minute)
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("expected expired entry")
	}
	if store.Len() != 0 {
		t.Fatalf("expired entry must be removed")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore[int](0)
	store.Set(ctx, "lines:p-1:a", 1)
	store.Set(ctx, "lines:p-1:b", 2)
	store.Set(ctx, "lines:p-10:a", 3)

	if err := store.DeletePrefix(ctx, "lines:p-1:"); err != nil {
		t.Fatalf("delete prefix: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("expected only other entity to remain, got %d", store.Len())
	}
	if _, ok := store.Get(ctx, "lines:p-10:a"); !ok {
		t.Fatalf("unrelated entity must stay cached")
	}

	_ = store.DeletePrefix(ctx, "")
	if store.Len() != 0 {
		t.Fatalf("empty prefix must clear the store")
	}
}

func TestEscapeGlob(t *testing.T) {
	t.Parallel()

	if got := escapeGlob(`lines:a*b?[c]\`); got != `lines:a\*b\?\[c\]\\` {
		t.Fatalf("unexpected escape: %s", got)
	}
}
