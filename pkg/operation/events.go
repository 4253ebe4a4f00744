package operation

// eventBuffer bounds the channel; ticks beyond it are dropped in favor of
// fresher ones.
const eventBuffer = 8

// 📨 Event is a message from the copy worker to the renderer. The set is
// closed: Progress, DestinationFailed, and Done are the only variants.
type Event interface {
	isEvent()
}

// 📈 Progress reports cumulative bytes written to one destination.
type Progress struct {
	Destination string
	Bytes       int64
	Percentage  int // 0..100, floored
}

func (Progress) isEvent() {}

// 💥 DestinationFailed reports that one destination's copy stopped. The run
// continues with the next destination.
type DestinationFailed struct {
	Destination string
	Err         error
}

func (DestinationFailed) isEvent() {}

// 🏁 Done is the final event of a run that attempted every destination.
type Done struct {
	TotalBytes int64
	Failed     int
}

func (Done) isEvent() {}

// NewEventChannel returns the bounded channel a Runner feeds and a
// renderer consumes. The runner closes it when the run ends.
func NewEventChannel() chan Event {
	return make(chan Event, eventBuffer)
}
