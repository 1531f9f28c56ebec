package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/golang/snappy"
	"github.com/tidwall/gjson"
)

// ErrUnsupportedVersion is returned for replays written by another format
// version
var ErrUnsupportedVersion = errors.New("unsupported replay version")

// Replayer hands recorded events back tick by tick
type Replayer struct {
	data Data
	next int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data Data) *Replayer {
	return &Replayer{data: data}
}

// LoadReplay loads replay data from a file written by Recorder.Save
func LoadReplay(filename string) (*Data, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return ReadReplay(file)
}

// ReadReplay decodes snappy-compressed replay JSON from r
func ReadReplay(r io.Reader) (*Data, error) {
	raw, err := io.ReadAll(snappy.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("failed to read replay: %w", err)
	}

	if v := gjson.GetBytes(raw, "version").String(); v != Version {
		return nil, fmt.Errorf("replay version %q: %w", v, ErrUnsupportedVersion)
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	return &data, nil
}

// EventsAt returns the events that arrived on tick. Ticks must be asked for
// in increasing order; events of skipped ticks are dropped.
func (r *Replayer) EventsAt(tick int) []Event {
	for r.next < len(r.data.Events) && r.data.Events[r.next].Tick < tick {
		r.next++
	}
	start := r.next
	for r.next < len(r.data.Events) && r.data.Events[r.next].Tick == tick {
		r.next++
	}
	return r.data.Events[start:r.next]
}

// Feed passes every event of tick to s. Events s rejects do not stop the
// rest; their errors are joined.
func (r *Replayer) Feed(tick int, s Sink) error {
	var errs []error
	for _, e := range r.EventsAt(tick) {
		if err := s.Buttons(e.Player, e.Pressed, e.Released, e.Target); err != nil {
			errs = append(errs, fmt.Errorf("tick %d player %d: %w", tick, e.Player, err))
		}
	}
	return errors.Join(errs...)
}

// Done reports whether every event has been handed out
func (r *Replayer) Done() bool {
	return r.next >= len(r.data.Events)
}

// LastTick returns the tick of the last recorded event
func (r *Replayer) LastTick() int {
	if len(r.data.Events) == 0 {
		return 0
	}
	return r.data.Events[len(r.data.Events)-1].Tick
}

// Data returns the replay data
func (r *Replayer) Data() Data {
	return r.data
}

// Reset rewinds the replayer to the first event
func (r *Replayer) Reset() {
	r.next = 0
}
