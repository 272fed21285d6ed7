package app

import (
	"sync"
	"testing"
)

func TestUserLocksReleaseEntries(t *testing.T) {
	locks := newUserLocks()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock(1)
			counter++
			unlock()
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Fatalf("expected 50 increments, got %d", counter)
	}
	if locks.size() != 0 {
		t.Fatalf("expected no lingering locks, got %d", locks.size())
	}
}

func TestUserLocksDoNotBlockOtherUsers(t *testing.T) {
	locks := newUserLocks()
	unlockA := locks.lock(1)
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock := locks.lock(2)
		unlock()
		close(done)
	}()
	<-done
}
