package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"

	"localflow/internal/domain"
)

const defaultFramesPerBuffer = 1024

// captureStream is the live platform stream behind a recording session.
type captureStream interface {
	Start() error
	Stop() error
	Close() error
}

// streamOpener creates a capture stream delivering buffers to cb from the
// capture callback thread. Injectable so tests drive the callback
// directly.
type streamOpener func(sampleRate, framesPerBuffer int, cb func([]float32)) (captureStream, error)

// Recorder accumulates microphone buffers between Start and Stop. The
// capture callback appends under the recorder's lock; Stop swaps the
// buffer list for a fresh one so late appends are neither lost mid-drain
// nor double-counted.
type Recorder struct {
	sampleRate      int
	framesPerBuffer int
	open            streamOpener

	mu        sync.Mutex
	stream    captureStream
	frames    [][]float32
	startedAt time.Time
}

func NewRecorder(sampleRate int) *Recorder {
	if sampleRate <= 0 {
		sampleRate = 16000
	}
	return &Recorder{
		sampleRate:      sampleRate,
		framesPerBuffer: defaultFramesPerBuffer,
		open:            openPortAudioStream,
	}
}

// Recording reports whether a capture stream is open.
func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stream != nil
}

// Start opens the capture stream and begins accumulating buffers. Calling
// Start while already recording is a no-op.
func (r *Recorder) Start() error {
	r.mu.Lock()
	if r.stream != nil {
		r.mu.Unlock()
		return nil
	}
	r.frames = nil
	r.startedAt = time.Now()
	r.mu.Unlock()

	stream, err := r.open(r.sampleRate, r.framesPerBuffer, r.append)
	if err != nil {
		return fmt.Errorf("open capture stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		return fmt.Errorf("start capture stream: %w", err)
	}

	r.mu.Lock()
	r.stream = stream
	r.mu.Unlock()
	return nil
}

// Stop closes the stream and returns the accumulated clip. Duration is
// wall-clock elapsed since Start, not derived from the sample count; the
// two disagree when the device drops frames. Calling Stop while idle
// returns an empty clip.
func (r *Recorder) Stop() (domain.Clip, error) {
	r.mu.Lock()
	stream := r.stream
	r.stream = nil
	startedAt := r.startedAt
	r.mu.Unlock()

	if stream == nil {
		return domain.Clip{SampleRate: r.sampleRate}, nil
	}

	stopErr := stream.Stop()
	if closeErr := stream.Close(); stopErr == nil {
		stopErr = closeErr
	}

	r.mu.Lock()
	frames := r.frames
	r.frames = nil
	r.mu.Unlock()

	total := 0
	for _, f := range frames {
		total += len(f)
	}
	samples := make([]float32, 0, total)
	for _, f := range frames {
		samples = append(samples, f...)
	}

	clip := domain.Clip{
		Samples:    samples,
		SampleRate: r.sampleRate,
		Duration:   time.Since(startedAt),
		StartedAt:  startedAt,
	}
	if stopErr != nil {
		return clip, fmt.Errorf("stop capture stream: %w", stopErr)
	}
	return clip, nil
}

// append runs on the capture callback thread.
func (r *Recorder) append(in []float32) {
	buf := make([]float32, len(in))
	copy(buf, in)

	r.mu.Lock()
	r.frames = append(r.frames, buf)
	r.mu.Unlock()
}

func openPortAudioStream(sampleRate, framesPerBuffer int, cb func([]float32)) (captureStream, error) {
	return portaudio.OpenDefaultStream(1, 0, float64(sampleRate), framesPerBuffer, cb)
}
