// Package transcribe runs local speech-to-text over completed clips.
package transcribe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"localflow/internal/domain"
)

// WhisperCLI transcribes clips by invoking a whisper.cpp binary on a
// temporary WAV file.
type WhisperCLI struct {
	binary  string
	model   string
	tempDir string
}

func NewWhisperCLI(binary, model string) *WhisperCLI {
	if binary == "" {
		binary = "whisper-cli"
	}
	return &WhisperCLI{binary: binary, model: model, tempDir: os.TempDir()}
}

// Transcribe encodes the clip to WAV, runs the binary, and returns the
// transcript with segment lines joined by single spaces. An empty clip
// short-circuits to an empty transcript without spawning the process.
func (w *WhisperCLI) Transcribe(ctx context.Context, clip domain.Clip, language string) (string, error) {
	if clip.Empty() {
		return "", nil
	}

	wavPath := w.tempWavPath()
	if err := writeWAV(wavPath, clip); err != nil {
		return "", err
	}
	defer os.Remove(wavPath)

	args := []string{"-f", wavPath, "--no-timestamps", "--no-prints"}
	if w.model != "" {
		args = append(args, "-m", w.model)
	}
	if language != "" {
		args = append(args, "-l", language)
	}

	out, err := exec.CommandContext(ctx, w.binary, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("whisper failed: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("run whisper: %w", err)
	}
	return strings.Join(strings.Fields(string(out)), " "), nil
}

func (w *WhisperCLI) tempWavPath() string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
	return filepath.Join(w.tempDir, fmt.Sprintf("localflow_%s.wav", id))
}
