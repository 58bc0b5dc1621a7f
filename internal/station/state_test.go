package station

import (
	"reflect"
	"sync"
	"testing"
	"time"

	"hdfm-tui/internal/decoder"
)

func artist(text string) decoder.Event {
	return decoder.Event{Kind: decoder.EventArtist, Text: text}
}

func title(text string) decoder.Event {
	return decoder.Event{Kind: decoder.EventTitle, Text: text}
}

func TestState_ApplyMetadata(t *testing.T) {
	st := New()

	st.Apply(decoder.Event{Kind: decoder.EventStationID, Text: "KUOW FM"})
	st.Apply(decoder.Event{Kind: decoder.EventSlogan, Text: "All the news"})
	st.Apply(artist("M83"))
	st.Apply(title("Midnight City"))
	st.Apply(decoder.Event{Kind: decoder.EventBitRate, Text: "96.0 kbps"})

	snap := st.Snapshot()
	if snap.StationID != "KUOW FM" {
		t.Errorf("StationID = %q, want %q", snap.StationID, "KUOW FM")
	}
	if snap.Slogan != "All the news" {
		t.Errorf("Slogan = %q, want %q", snap.Slogan, "All the news")
	}
	if snap.Artist != "M83" {
		t.Errorf("Artist = %q, want %q", snap.Artist, "M83")
	}
	if snap.Title != "Midnight City" {
		t.Errorf("Title = %q, want %q", snap.Title, "Midnight City")
	}
	if snap.BitRate != "96.0 kbps" {
		t.Errorf("BitRate = %q, want %q", snap.BitRate, "96.0 kbps")
	}
}

func TestState_LastWriteWins(t *testing.T) {
	st := New()
	st.Apply(artist("M83"))
	st.Apply(artist("Tame Impala"))

	if got := st.Snapshot().Artist; got != "Tame Impala" {
		t.Errorf("Artist = %q, want %q", got, "Tame Impala")
	}
}

func TestState_ImageReadyNewestWins(t *testing.T) {
	st := New()
	st.Apply(decoder.Event{Kind: decoder.EventImageReady, Image: decoder.ImageWeather, Path: "/img/weather_1.png"})
	st.Apply(decoder.Event{Kind: decoder.EventImageReady, Image: decoder.ImageWeather, Path: "/img/weather_2.png"})
	st.Apply(decoder.Event{Kind: decoder.EventImageReady, Image: decoder.ImageTraffic, Path: "/img/traffic.png"})

	snap := st.Snapshot()
	if got := snap.Images[decoder.ImageWeather]; got != "/img/weather_2.png" {
		t.Errorf("weather image = %q, want newest path", got)
	}
	if got := snap.Images[decoder.ImageTraffic]; got != "/img/traffic.png" {
		t.Errorf("traffic image = %q, want %q", got, "/img/traffic.png")
	}
}

func TestState_ProcessExitResetsMetadata(t *testing.T) {
	st := New()
	st.Apply(decoder.Event{Kind: decoder.EventProcessStarted})
	st.Apply(decoder.Event{Kind: decoder.EventStationID, Text: "KEXP"})
	st.Apply(artist("X"))
	st.Apply(title("Y"))
	st.Apply(decoder.Event{Kind: decoder.EventImageReady, Image: decoder.ImageArt, Path: "/img/art.jpg"})

	if !st.Snapshot().Running {
		t.Fatal("Running = false after process start")
	}

	st.Apply(decoder.Event{Kind: decoder.EventProcessExited, Code: 1})

	snap := st.Snapshot()
	if snap.Artist != "" || snap.Title != "" || snap.StationID != "" {
		t.Errorf("metadata not reset: %+v", snap)
	}
	if snap.Running {
		t.Error("Running = true after process exit")
	}
	// Image files remain on disk, so their paths survive the reset.
	if got := snap.Images[decoder.ImageArt]; got != "/img/art.jpg" {
		t.Errorf("art image = %q, want path preserved", got)
	}
}

func TestState_FoldOrderSensitivity(t *testing.T) {
	events := []decoder.Event{
		artist("A"),
		title("B"),
		artist("C"),
		{Kind: decoder.EventProcessExited},
		artist("D"),
	}

	one := New()
	for _, ev := range events {
		one.Apply(ev)
	}

	// Applying the same sequence again onto a fresh state must yield the
	// same terminal snapshot: Apply is a pure left fold over events.
	two := New()
	for _, ev := range events {
		two.Apply(ev)
	}

	a, b := one.Snapshot(), two.Snapshot()
	a.UpdatedAt = b.UpdatedAt
	if !reflect.DeepEqual(a, b) {
		t.Errorf("fold mismatch:\n%+v\n%+v", a, b)
	}
	if a.Artist != "D" {
		t.Errorf("Artist = %q, want %q", a.Artist, "D")
	}
}

func TestState_ObserverOrdering(t *testing.T) {
	st := New()

	var got []string
	st.OnChange(func(c Change) {
		if c.Event.Kind == decoder.EventArtist {
			got = append(got, c.Event.Text)
		}
	})

	want := []string{"one", "two", "three"}
	for _, name := range want {
		st.Apply(artist(name))
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("observed order = %v, want %v", got, want)
	}
}

func TestState_LogLineForwardedWithoutMutation(t *testing.T) {
	st := New()
	st.Apply(artist("M83"))

	var forwarded int
	st.OnChange(func(c Change) {
		if c.Event.Kind == decoder.EventLogLine {
			forwarded++
		}
	})

	st.Apply(decoder.Event{Kind: decoder.EventLogLine, Text: "13:45:01 Synchronized"})

	if forwarded != 1 {
		t.Errorf("log line forwarded %d times, want 1", forwarded)
	}
	if got := st.Snapshot().Artist; got != "M83" {
		t.Errorf("Artist = %q, log lines must not mutate metadata", got)
	}
}

func TestState_SubscribeDeliversChanges(t *testing.T) {
	st := New()
	ch := st.Subscribe(8)

	st.Apply(artist("M83"))
	st.Apply(title("Midnight City"))

	first := <-ch
	if first.Event.Kind != decoder.EventArtist || first.Snapshot.Artist != "M83" {
		t.Errorf("first change = %+v", first)
	}
	second := <-ch
	if second.Event.Kind != decoder.EventTitle || second.Snapshot.Title != "Midnight City" {
		t.Errorf("second change = %+v", second)
	}
}

func TestState_SubscribeSlowConsumerDropsOldest(t *testing.T) {
	st := New()
	ch := st.Subscribe(2)

	// Nobody is draining yet; Apply must not block once the buffer fills.
	applied := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			st.Apply(artist(string(rune('a' + i))))
		}
		close(applied)
	}()

	select {
	case <-applied:
	case <-time.After(2 * time.Second):
		t.Fatal("Apply blocked on a full subscriber channel")
	}

	// The newest change is still queued; older ones were dropped for it.
	var last Change
	for {
		select {
		case c := <-ch:
			last = c
			continue
		default:
		}
		break
	}
	if last.Snapshot.Artist != "j" {
		t.Errorf("newest queued Artist = %q, want %q", last.Snapshot.Artist, "j")
	}
}

func TestState_SnapshotIsCopy(t *testing.T) {
	st := New()
	st.Apply(decoder.Event{Kind: decoder.EventImageReady, Image: decoder.ImageWeather, Path: "/a.png"})

	snap := st.Snapshot()
	snap.Images[decoder.ImageWeather] = "/mutated.png"

	if got := st.Snapshot().Images[decoder.ImageWeather]; got != "/a.png" {
		t.Errorf("internal state mutated through snapshot copy: %q", got)
	}
}

func TestState_ConcurrentApplyAndRead(t *testing.T) {
	st := New()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				st.Apply(artist("x"))
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = st.Snapshot()
			}
		}()
	}
	wg.Wait()

	if got := st.Snapshot().Artist; got != "x" {
		t.Errorf("Artist = %q, want %q", got, "x")
	}
}
