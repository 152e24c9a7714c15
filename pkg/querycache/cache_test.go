package querycache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.QueryRetries = 0
	opts.RetryDelay = func(int) time.Duration { return 0 }
	opts.MutationRetries = 0
	opts.MutationRetryDelay = time.Millisecond
	return opts
}

// fakeClock drives a cache's notion of now.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}

func TestK(t *testing.T) {
	if got := K("savedIdeas", "PROMOTIONAL"); got != "savedIdeas/PROMOTIONAL" {
		t.Fatalf("K = %q", got)
	}
}

func TestFetchCachesWhileFresh(t *testing.T) {
	clock := newFakeClock()
	c := New(testOptions())
	c.now = clock.Now

	var calls int32
	fn := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "value", nil
	}

	for i := 0; i < 3; i++ {
		v, err := Fetch(context.Background(), c, "k", fn)
		if err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
		if v != "value" {
			t.Fatalf("fetch %d returned %q", i, v)
		}
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("fn ran %d times while fresh", n)
	}
}

func TestFetchRefetchesWhenStale(t *testing.T) {
	clock := newFakeClock()
	c := New(testOptions())
	c.now = clock.Now

	var calls int32
	fn := func(ctx context.Context) (int, error) {
		return int(atomic.AddInt32(&calls, 1)), nil
	}

	if v, _ := Fetch(context.Background(), c, "k", fn); v != 1 {
		t.Fatalf("first fetch = %d", v)
	}
	clock.Advance(5 * time.Minute)
	if v, _ := Fetch(context.Background(), c, "k", fn); v != 2 {
		t.Fatalf("stale fetch = %d, want refetch", v)
	}
}

func TestFetchDeduplicatesConcurrentCalls(t *testing.T) {
	c := New(testOptions())

	const readers = 8
	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})
	fn := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		close(started)
		<-release
		return "shared", nil
	}

	var wg sync.WaitGroup
	results := make([]string, readers)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := Fetch(context.Background(), c, "k", fn)
			if err != nil {
				t.Errorf("reader %d: %v", i, err)
			}
			results[i] = v
		}(i)
	}

	<-started
	// Give the remaining readers time to join the in-flight call.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("fn ran %d times across %d concurrent readers", n, readers)
	}
	for i, v := range results {
		if v != "shared" {
			t.Fatalf("reader %d got %q", i, v)
		}
	}
}

func TestFetchRetriesTransientFailures(t *testing.T) {
	opts := testOptions()
	opts.QueryRetries = 2
	c := New(opts)

	var calls int32
	fn := func(ctx context.Context) (string, error) {
		if atomic.AddInt32(&calls, 1) < 3 {
			return "", errors.New("transient")
		}
		return "eventually", nil
	}

	v, err := Fetch(context.Background(), c, "k", fn)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if v != "eventually" || atomic.LoadInt32(&calls) != 3 {
		t.Fatalf("v=%q calls=%d", v, calls)
	}
}

func TestFetchStopsAfterRetryBudget(t *testing.T) {
	opts := testOptions()
	opts.QueryRetries = 2
	c := New(opts)

	var calls int32
	wantErr := errors.New("down")
	_, err := Fetch(context.Background(), c, "k", func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "", wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Fatalf("fn ran %d times, want initial + 2 retries", n)
	}
	if _, ok := Get[string](c, "k"); ok {
		t.Fatal("failed fetch must not populate the cache")
	}
}

func TestGetReturnsStaleValue(t *testing.T) {
	clock := newFakeClock()
	c := New(testOptions())
	c.now = clock.Now

	c.Set("k", 42)
	clock.Advance(7 * time.Minute) // past staleness, inside retention

	if _, ok := c.freshValue("k"); ok {
		t.Fatal("value should be stale")
	}
	v, ok := Get[int](c, "k")
	if !ok || v != 42 {
		t.Fatalf("Get = %d, %v", v, ok)
	}
}

func TestEntryEvictedAfterRetention(t *testing.T) {
	clock := newFakeClock()
	c := New(testOptions())
	c.now = clock.Now

	c.Set("k", "v")
	clock.Advance(10 * time.Minute)

	if _, ok := Get[string](c, "k"); ok {
		t.Fatal("entry should be evicted past the retention window")
	}
}

func TestInvalidateDropsAndNotifies(t *testing.T) {
	c := New(testOptions())
	c.Set("k", "v")

	ch, cancel := c.Subscribe("k")
	defer cancel()

	c.Invalidate("k")
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no signal after invalidation")
	}
	if _, ok := Get[string](c, "k"); ok {
		t.Fatal("entry survived invalidation")
	}
}

func TestSubscribeCoalescesSignals(t *testing.T) {
	c := New(testOptions())
	ch, cancel := c.Subscribe("k")
	defer cancel()

	for i := 0; i < 5; i++ {
		c.Set("k", i)
	}
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no signal after writes")
	}

	cancel()
	c.Set("k", 99)
	select {
	case <-ch:
		t.Fatal("signal delivered after cancel")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestUpdateRewritesInPlace(t *testing.T) {
	c := New(testOptions())
	c.Set("k", []string{"a", "b"})

	Update(c, "k", func(current []string, ok bool) ([]string, bool) {
		if !ok {
			t.Fatal("expected existing value")
		}
		next := append([]string{"z"}, current...)
		return next, true
	})

	v, ok := Get[[]string](c, "k")
	if !ok || len(v) != 3 || v[0] != "z" {
		t.Fatalf("updated value %v", v)
	}
}

func TestUpdateSkipsMissingEntry(t *testing.T) {
	c := New(testOptions())
	Update(c, "missing", func(current int, ok bool) (int, bool) {
		if ok {
			t.Fatal("missing entry reported as present")
		}
		return 0, false
	})
	if _, ok := Get[int](c, "missing"); ok {
		t.Fatal("declined update created an entry")
	}
}

func TestExponentialBackoff(t *testing.T) {
	delay := ExponentialBackoff(time.Second, 30*time.Second)
	want := []time.Duration{
		time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		16 * time.Second,
		30 * time.Second,
		30 * time.Second,
	}
	for attempt, w := range want {
		if got := delay(attempt); got != w {
			t.Errorf("attempt %d: %v, want %v", attempt, got, w)
		}
	}
}
