package station

import (
	"sync"
	"time"

	"hdfm-tui/internal/decoder"
)

// Snapshot is the current best-known now-playing metadata. Fields hold the
// most recent value seen since the last process exit.
type Snapshot struct {
	StationID string
	Slogan    string
	Artist    string
	Title     string
	BitRate   string
	Running   bool

	// Images maps each image kind to the newest file path for that kind.
	// Image paths survive a process exit; the files remain on disk.
	Images map[decoder.ImageKind]string

	// UpdatedAt is when the snapshot last changed.
	UpdatedAt time.Time
}

// Change pairs the event that caused a mutation with the resulting snapshot.
type Change struct {
	Event    decoder.Event
	Snapshot Snapshot
}

// Observer receives every change synchronously, in event arrival order.
type Observer func(Change)

// State folds the decoder's event sequence into a snapshot and notifies
// observers after each mutation. Apply calls never interleave: the state
// lock is held across the mutation and the observer callbacks, so the
// total ordering of updates is preserved end to end.
type State struct {
	mu        sync.Mutex
	snap      Snapshot
	observers []Observer
}

func New() *State {
	return &State{
		snap: Snapshot{Images: make(map[decoder.ImageKind]string)},
	}
}

// OnChange registers an observer. Observers are invoked under the state
// lock and must not call back into State.
func (s *State) OnChange(fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Subscribe registers an observer that forwards every change into the
// returned channel. A slow consumer loses the oldest queued changes
// rather than stalling Apply; each change carries a full snapshot, so
// the newest one is always enough to catch up.
func (s *State) Subscribe(buf int) <-chan Change {
	ch := make(chan Change, buf)
	s.OnChange(func(c Change) {
		for {
			select {
			case ch <- c:
				return
			default:
			}
			// Sends are serialized by the state lock, so freeing one
			// slot is enough for the retry to succeed.
			select {
			case <-ch:
			default:
			}
		}
	})
	return ch
}

// Apply folds one event into the snapshot and notifies observers.
func (s *State) Apply(ev decoder.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev.Kind {
	case decoder.EventArtist:
		s.snap.Artist = ev.Text
	case decoder.EventTitle:
		s.snap.Title = ev.Text
	case decoder.EventStationID:
		s.snap.StationID = ev.Text
	case decoder.EventSlogan:
		s.snap.Slogan = ev.Text
	case decoder.EventBitRate:
		s.snap.BitRate = ev.Text
	case decoder.EventImageReady:
		s.snap.Images[ev.Image] = ev.Path
	case decoder.EventProcessStarted:
		s.snap.Running = true
	case decoder.EventProcessExited:
		s.resetLocked()
	case decoder.EventLogLine:
		// Forwarded to observers below; displayed metadata is untouched.
	}
	s.snap.UpdatedAt = time.Now()

	change := Change{Event: ev, Snapshot: s.copyLocked()}
	for _, fn := range s.observers {
		fn(change)
	}
}

// Snapshot returns a copy of the current state for on-demand reads.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

func (s *State) resetLocked() {
	s.snap.StationID = ""
	s.snap.Slogan = ""
	s.snap.Artist = ""
	s.snap.Title = ""
	s.snap.BitRate = ""
	s.snap.Running = false
}

func (s *State) copyLocked() Snapshot {
	out := s.snap
	out.Images = make(map[decoder.ImageKind]string, len(s.snap.Images))
	for kind, path := range s.snap.Images {
		out.Images[kind] = path
	}
	return out
}
