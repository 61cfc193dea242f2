package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-audio/wav"
)

const cleanedSuffix = ".cleaned.wav"

var audioExtensions = []string{".mka", ".mkv", ".mp3", ".wav", ".m4a", ".flac", ".ogg"}

// IsAudioFile reports whether path has a supported audio extension.
// Cleaned intermediates are never inputs.
func IsAudioFile(path string) bool {
	lower := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(lower, cleanedSuffix) {
		return false
	}

	ext := filepath.Ext(lower)
	for _, format := range audioExtensions {
		if ext == format {
			return true
		}
	}
	return false
}

// cleanedPath returns <dir>/<stem>.cleaned.wav for input.
func cleanedPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + cleanedSuffix
}

// preprocess downmixes, resamples and band-limits input into a 16kHz mono
// WAV next to it. If ffmpeg fails or writes something that is not a usable
// WAV, the original file is returned unchanged.
func (t *implTranscriber) preprocess(ctx context.Context, input string) string {
	output := cleanedPath(input)

	// -ac 1: mono
	// -ar: resample (16kHz is what whisper expects)
	// -af: highpass/lowpass keep the speech band, dynaudnorm evens out levels
	args := []string{
		"-y",
		"-i", input,
		"-ac", "1",
		"-ar", strconv.Itoa(t.cfg.FFmpeg.SampleRate),
		"-af", t.cfg.FFmpeg.Filter,
		output,
	}

	if _, err := t.executor.Execute(ctx, t.cfg.FFmpeg.BinaryPath, args...); err != nil {
		t.logger.Warn(ctx, "Failed to preprocess audio, using original: %s: %v", input, err)
		t.cleanupTempFile(ctx, output)
		return input
	}

	duration, err := inspectWAV(output)
	if err != nil {
		t.logger.Warn(ctx, "Preprocessed audio unusable, using original: %s: %v", output, err)
		t.cleanupTempFile(ctx, output)
		return input
	}

	t.logger.Debug(ctx, "Preprocessed audio: %s (%s)", output, duration)
	return output
}

// inspectWAV checks that path is a readable PCM WAV and returns its length.
func inspectWAV(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return "", fmt.Errorf("not a valid wav file")
	}

	dur, err := d.Duration()
	if err != nil {
		return "", fmt.Errorf("read wav duration: %w", err)
	}
	return dur.Round(time.Second).String(), nil
}

// cleanupTempFile removes a temporary file, logs warning if fails
func (t *implTranscriber) cleanupTempFile(ctx context.Context, filePath string) {
	if err := os.Remove(filePath); err != nil {
		if !os.IsNotExist(err) {
			t.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", filePath, err)
		}
		return
	}
	t.logger.Debug(ctx, "Cleaned up temp file: %s", filePath)
}
