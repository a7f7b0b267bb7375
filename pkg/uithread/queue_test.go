package uithread

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func TestDrainRunsInOrder(t *testing.T) {
	t.Parallel()

	q := New()
	var got []int
	for i := 0; i < 3; i++ {
		i := i
		q.Post(func() { got = append(got, i) })
	}
	q.Post(func() {
		q.Post(func() { got = append(got, 99) })
	})

	if n := q.Drain(); n != 4 {
		t.Fatalf("drained: want 4 got %d", n)
	}
	if diff := cmp.Diff([]int{0, 1, 2}, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if q.Len() != 1 {
		t.Fatalf("nested post should wait for the next drain")
	}
	q.Drain()
	if got[len(got)-1] != 99 {
		t.Fatalf("nested callback did not run")
	}
}

func TestPanicsAreRecovered(t *testing.T) {
	t.Parallel()

	logger, hook := logtest.NewNullLogger()
	q := New(WithLogger(logger))
	ran := false
	q.Post(func() { panic("boom") })
	q.Post(func() { ran = true })
	q.Drain()

	if !ran {
		t.Fatalf("callback after panic did not run")
	}
	if len(hook.Entries) != 1 {
		t.Fatalf("expected one logged panic, got %d", len(hook.Entries))
	}
}

func TestRunDrainsPostsFromOtherGoroutines(t *testing.T) {
	t.Parallel()

	q := New()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var mu sync.Mutex
	count := 0
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.Post(func() {
				mu.Lock()
				count++
				mu.Unlock()
			})
		}()
	}

	done := make(chan error, 1)
	go func() { done <- q.Run(ctx) }()

	wg.Wait()
	q.Close()
	if err := <-done; err != nil {
		t.Fatalf("run: %v", err)
	}
	if count != 10 {
		t.Fatalf("want 10 callbacks got %d", count)
	}
	if q.Post(func() {}) {
		t.Fatalf("closed queue must reject posts")
	}
}

func TestRunStopsOnContext(t *testing.T) {
	t.Parallel()

	q := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := q.Run(ctx); err != context.Canceled {
		t.Fatalf("want context.Canceled got %v", err)
	}
}

func TestInlineRunsImmediately(t *testing.T) {
	t.Parallel()

	ran := false
	if !(Inline{}).Post(func() { ran = true }) || !ran {
		t.Fatalf("inline post did not run")
	}
	if (Inline{}).Post(nil) {
		t.Fatalf("nil callback must be rejected")
	}
}
