package scheduler_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/on-the-ground/react_ive_go/rx/scheduler"
	"github.com/stretchr/testify/assert"
)

func TestPool_ExecutesAllSubmittedWork(t *testing.T) {
	ctx := context.Background()
	p := scheduler.NewPool(ctx, scheduler.NewConfig(4, 3))
	defer p.Close()

	const n = 30
	var wg sync.WaitGroup
	var mu sync.Mutex
	ran := 0

	wg.Add(n)
	for i := 0; i < n; i++ {
		p.Execute(func() {
			mu.Lock()
			ran++
			mu.Unlock()
			wg.Done()
		})
	}

	waitCh := make(chan struct{})
	go func() {
		wg.Wait()
		close(waitCh)
	}()

	select {
	case <-waitCh:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for pool work")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, n, ran)
}

func TestPool_KeyedViewSerializes(t *testing.T) {
	ctx := context.Background()
	p := scheduler.NewPool(ctx, scheduler.NewConfig(16, 4))
	defer p.Close()

	view := p.Keyed("subscription-a")

	var got []int
	done := make(chan struct{})
	for i := 1; i <= 10; i++ {
		i := i
		view.Execute(func() {
			// single pinned worker: no lock needed for ordering proof
			got = append(got, i)
			if i == 10 {
				close(done)
			}
		})
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for keyed work")
	}

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, got)
}

func TestPool_SameKeySharesWorker(t *testing.T) {
	ctx := context.Background()
	p := scheduler.NewPool(ctx, scheduler.NewConfig(4, 8))
	defer p.Close()

	a := p.Keyed("key")
	b := p.Keyed("key")

	// Both views hash to the same worker, so their work interleaves in
	// submission order on one goroutine.
	var got []string
	done := make(chan struct{})
	a.Execute(func() { got = append(got, "a") })
	b.Execute(func() { got = append(got, "b") })
	a.Execute(func() {
		got = append(got, "a")
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for keyed work")
	}

	assert.Equal(t, []string{"a", "b", "a"}, got)
}

func TestPool_ExecuteAfterClosePanics(t *testing.T) {
	p := scheduler.NewPool(context.Background(), scheduler.NewConfig(1, 2))
	view := p.Keyed("k")
	p.Close()

	assert.Panics(t, func() { p.Execute(func() {}) })
	assert.Panics(t, func() { view.Execute(func() {}) })
}
