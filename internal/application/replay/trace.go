package replay

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/younwookim/brawl/internal/domain/entity"
)

// traceHeader is the frame number and payload length preceding each record
const traceHeader = 8 + 4

// TraceWriter writes simulated frames as length-prefixed msgpack records
// into a zstd stream.
type TraceWriter struct {
	enc  *zstd.Encoder
	file *os.File
}

// NewTraceWriter creates a new trace writer on w
func NewTraceWriter(w io.Writer) (*TraceWriter, error) {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace encoder: %w", err)
	}
	return &TraceWriter{enc: enc}, nil
}

// CreateTrace creates filename and returns a trace writer on it
func CreateTrace(filename string) (*TraceWriter, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	tw, err := NewTraceWriter(file)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	tw.file = file
	return tw, nil
}

// Write appends one frame
func (w *TraceWriter) Write(f entity.Frame) error {
	payload, err := f.Encode()
	if err != nil {
		return err
	}

	var header [traceHeader]byte
	binary.LittleEndian.PutUint64(header[0:8], uint64(f.Number))
	binary.LittleEndian.PutUint32(header[8:12], uint32(len(payload)))
	if _, err := w.enc.Write(header[:]); err != nil {
		return fmt.Errorf("failed to write frame %d: %w", f.Number, err)
	}
	if _, err := w.enc.Write(payload); err != nil {
		return fmt.Errorf("failed to write frame %d: %w", f.Number, err)
	}
	return nil
}

// Close flushes the stream, and closes the file when the writer owns one
func (w *TraceWriter) Close() error {
	err := w.enc.Close()
	if w.file != nil {
		if cerr := w.file.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// ReadTrace decodes every frame of a trace
func ReadTrace(r io.Reader) ([]entity.Frame, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace decoder: %w", err)
	}
	defer dec.Close()

	payload, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}

	var frames []entity.Frame
	offset := 0
	for offset+traceHeader <= len(payload) {
		number := int(binary.LittleEndian.Uint64(payload[offset : offset+8]))
		size := int(binary.LittleEndian.Uint32(payload[offset+8 : offset+12]))
		offset += traceHeader
		if offset+size > len(payload) {
			return nil, fmt.Errorf("frame %d payload truncated", number)
		}
		f, err := entity.DecodeFrame(payload[offset : offset+size])
		if err != nil {
			return nil, err
		}
		offset += size
		frames = append(frames, f)
	}
	if offset != len(payload) {
		return nil, fmt.Errorf("trailing %d bytes in trace", len(payload)-offset)
	}
	return frames, nil
}

// LoadTrace reads a trace file written by CreateTrace
func LoadTrace(filename string) ([]entity.Frame, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return ReadTrace(file)
}

// Diverged returns the index of the first frame that differs between two
// traces. Traces of different length diverge where the shorter one ends.
func Diverged(a, b []entity.Frame) (int, bool) {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i, true
		}
	}
	if len(a) != len(b) {
		return n, true
	}
	return 0, false
}
