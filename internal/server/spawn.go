package server

// Spawner runs each connection's work concurrently. Go reports false,
// without running f, when stop closes before f could be started.
type Spawner interface {
	Go(stop <-chan struct{}, f func()) bool
}

type unbounded struct{}

func (unbounded) Go(_ <-chan struct{}, f func()) bool {
	go f()
	return true
}

// semaphore blocks Go while all slots are taken
type semaphore chan struct{}

func (s semaphore) Go(stop <-chan struct{}, f func()) bool {
	select {
	case s <- struct{}{}:
	case <-stop:
		return false
	}

	go func() {
		defer func() { <-s }()
		f()
	}()

	return true
}

// NewSpawner returns an unbounded spawner for limit <= 0.
func NewSpawner(limit int) Spawner {
	if limit <= 0 {
		return unbounded{}
	}

	return make(semaphore, limit)
}
