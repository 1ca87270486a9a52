package sound

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
)

// Player is the scream trigger invoked on every successful click.
// Fire-and-forget: implementations must never block or fail the click.
type Player interface {
	Play()
}

// Nop is used when no sound asset is configured.
type Nop struct{}

func (Nop) Play() {}

// Scream fetches the sound asset once at startup and serves it to
// browsers at a local path; Play hands a trigger to the hub so clients
// start playback. Load failures are logged and clicking proceeds
// silently, the same independence the original had between scoring and
// audio.
type Scream struct {
	mu     sync.Mutex
	data   []byte
	loaded bool

	triggers chan struct{}
}

// NewScream starts the asynchronous fetch and returns immediately; the
// caller never waits on the sound to load.
func NewScream(url string) *Scream {
	s := &Scream{
		triggers: make(chan struct{}, 16),
	}
	go func() {
		data, err := fetch(url)
		if err != nil {
			log.Printf("[Sound] Failed to load %s: %v\n", url, err)
			return
		}
		s.mu.Lock()
		s.data = data
		s.loaded = true
		s.mu.Unlock()
		log.Printf("[Sound] Loaded %s (%d bytes)\n", url, len(data))
	}()
	return s
}

func fetch(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// Play queues one playback trigger. Before the asset has loaded, or
// when consumers are behind, the trigger is dropped.
func (s *Scream) Play() {
	s.mu.Lock()
	loaded := s.loaded
	s.mu.Unlock()
	if !loaded {
		log.Println("[Sound] Not loaded yet, skipping playback")
		return
	}
	select {
	case s.triggers <- struct{}{}:
	default:
	}
}

// Triggers is consumed by the push hub to tell clients to play.
func (s *Scream) Triggers() <-chan struct{} {
	return s.triggers
}

// Loaded reports whether the asset fetch has completed.
func (s *Scream) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// ServeHTTP serves the cached asset so browsers can play it without a
// second origin. 404 until the fetch completes.
func (s *Scream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	data := s.data
	loaded := s.loaded
	s.mu.Unlock()

	if !loaded {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "audio/mpeg")
	if _, err := w.Write(data); err != nil {
		log.Printf("[Sound] Serve error: %v\n", err)
	}
}
