package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang/snappy"
	"github.com/google/uuid"

	"github.com/younwookim/brawl/internal/domain/button"
)

// ErrNoEvents is returned when saving an empty recording
var ErrNoEvents = errors.New("no events to save")

// Recorder collects input events for replay
type Recorder struct {
	data      Data
	recording bool
}

// NewRecorder creates a new recorder for a match on stage between the named
// characters.
func NewRecorder(stage string, characters [2]string) *Recorder {
	return &Recorder{
		data: Data{
			Version:    Version,
			MatchID:    uuid.NewString(),
			Stage:      stage,
			Characters: characters,
			StartTime:  time.Now().Format(time.RFC3339),
			Events:     make([]Event, 0, 1024),
		},
		recording: true,
	}
}

// Record appends one input event
func (r *Recorder) Record(tick, player int, pressed, released button.Mask, target int) {
	if !r.recording || (pressed == 0 && released == 0) {
		return
	}
	r.data.Events = append(r.data.Events, Event{
		Tick:     tick,
		Player:   player,
		Pressed:  pressed,
		Released: released,
		Target:   target,
	})
}

// Tee returns a sink that records every event arriving on tick before
// passing it to s.
func (r *Recorder) Tee(s Sink, tick func() int) Sink {
	return &tee{rec: r, sink: s, tick: tick}
}

type tee struct {
	rec  *Recorder
	sink Sink
	tick func() int
}

func (t *tee) Buttons(player int, pressed, released button.Mask, target int) error {
	t.rec.Record(t.tick(), player, pressed, released, target)
	return t.sink.Buttons(player, pressed, released, target)
}

// Save writes the recording as snappy-compressed JSON
func (r *Recorder) Save(filename string) error {
	if len(r.data.Events) == 0 {
		return ErrNoEvents
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	w := snappy.NewBufferedWriter(file)
	if err := json.NewEncoder(w).Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to flush replay: %w", err)
	}
	return file.Close()
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// EventCount returns the number of recorded events
func (r *Recorder) EventCount() int {
	return len(r.data.Events)
}

// Data returns the recorded data
func (r *Recorder) Data() Data {
	return r.data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json.sz", time.Now().Format("20060102_150405"))
}
