package decoder

// EventKind identifies the variant of an Event.
type EventKind int

const (
	EventLogLine EventKind = iota
	EventArtist
	EventTitle
	EventStationID
	EventSlogan
	EventBitRate
	EventImageReady
	EventProcessStarted
	EventProcessExited
)

// ImageKind names the broadcast image channels a station transmits.
type ImageKind string

const (
	ImageWeather ImageKind = "weather"
	ImageTraffic ImageKind = "traffic"
	ImageArt     ImageKind = "art"
)

// Event is one typed update extracted from decoder output or observed in the
// dump directory. Values are immutable once constructed.
type Event struct {
	Kind EventKind

	// Text carries the captured field for metadata events and the raw line
	// for EventLogLine.
	Text string

	// Image and Path are set for EventImageReady only.
	Image ImageKind
	Path  string

	// Code is the process exit status for EventProcessExited.
	Code int
}

// Handler receives events in the order they were produced.
type Handler func(Event)
