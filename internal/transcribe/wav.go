package transcribe

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"localflow/internal/domain"
)

// writeWAV encodes the clip as 16-bit mono PCM at path.
func writeWAV(path string, clip domain.Clip) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav: %w", err)
	}

	enc := wav.NewEncoder(f, clip.SampleRate, 16, 1, 1)
	data := make([]int, len(clip.Samples))
	for i, s := range clip.Samples {
		switch {
		case s >= 1.0:
			data[i] = 32767
		case s <= -1.0:
			data[i] = -32768
		default:
			data[i] = int(s * 32767)
		}
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: clip.SampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		_ = f.Close()
		return fmt.Errorf("write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("close wav: %w", err)
	}
	return f.Close()
}
