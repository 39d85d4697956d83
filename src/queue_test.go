package main

import (
	"sync"
	"testing"
	"time"
)

func TestQueue_FIFO(t *testing.T) {
	q := NewQueue[int]()
	for i := 0; i < 200; i++ {
		if !q.Push(i) {
			t.Fatalf("Push(%d) on open queue returned false", i)
		}
	}
	if q.Len() != 200 {
		t.Fatalf("Len() = %d, want 200", q.Len())
	}
	for i := 0; i < 200; i++ {
		v, ok := q.TryPop()
		if !ok || v != i {
			t.Fatalf("TryPop() = %d, %v; want %d, true", v, ok, i)
		}
	}
	if _, ok := q.TryPop(); ok {
		t.Error("TryPop() on empty queue should return false")
	}
}

func TestQueue_PopBlocksUntilPush(t *testing.T) {
	q := NewQueue[string]()
	got := make(chan string, 1)

	go func() {
		v, _ := q.Pop()
		got <- v
	}()

	select {
	case v := <-got:
		t.Fatalf("Pop() returned %q before any Push", v)
	case <-time.After(20 * time.Millisecond):
	}

	q.Push("hello")
	select {
	case v := <-got:
		if v != "hello" {
			t.Errorf("Pop() = %q, want hello", v)
		}
	case <-time.After(time.Second):
		t.Fatal("Pop() did not wake up after Push")
	}
}

func TestQueue_CloseDrainsThenStops(t *testing.T) {
	q := NewQueue[int]()
	q.Push(1)
	q.Push(2)
	q.Close()

	if q.Push(3) {
		t.Error("Push() after Close should return false")
	}
	if !q.Closed() {
		t.Error("Closed() should be true")
	}

	for _, want := range []int{1, 2} {
		v, ok := q.Pop()
		if !ok || v != want {
			t.Fatalf("Pop() = %d, %v; want %d, true", v, ok, want)
		}
	}
	if _, ok := q.Pop(); ok {
		t.Error("Pop() on closed drained queue should return false")
	}
}

func TestQueue_CloseWakesBlockedConsumers(t *testing.T) {
	q := NewQueue[int]()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.Pop()
		}()
	}

	time.Sleep(10 * time.Millisecond)
	q.Close()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("consumers still blocked after Close")
	}
}

func TestQueue_EachItemDeliveredOnce(t *testing.T) {
	const items = 1000
	const consumers = 5

	q := NewQueue[int]()
	var mu sync.Mutex
	seen := make(map[int]int)
	var wg sync.WaitGroup

	for c := 0; c < consumers; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				v, ok := q.Pop()
				if !ok {
					return
				}
				mu.Lock()
				seen[v]++
				mu.Unlock()
			}
		}()
	}

	for i := 0; i < items; i++ {
		q.Push(i)
	}
	q.Close()
	wg.Wait()

	if len(seen) != items {
		t.Fatalf("delivered %d distinct items, want %d", len(seen), items)
	}
	for v, n := range seen {
		if n != 1 {
			t.Errorf("item %d delivered %d times", v, n)
		}
	}
}

func TestQueue_Discard(t *testing.T) {
	q := NewQueue[int]()
	for i := 0; i < 10; i++ {
		q.Push(i)
	}
	q.TryPop()

	if n := q.Discard(); n != 9 {
		t.Errorf("Discard() = %d, want 9", n)
	}
	if q.Len() != 0 {
		t.Errorf("Len() after Discard = %d, want 0", q.Len())
	}

	q.Push(42)
	if v, ok := q.TryPop(); !ok || v != 42 {
		t.Errorf("TryPop() after Discard = %d, %v; want 42, true", v, ok)
	}
}
