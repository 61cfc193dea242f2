package recorder

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const sessionLayout = "2006-01-02_15-04-05"

// NewSession creates <recordings_dir>/<YYYY-MM-DD_HH-MM-SS>.
func (r *implRecorder) NewSession(now time.Time) (Session, error) {
	dir := filepath.Join(r.cfg.RecordingsDir, now.Format(sessionLayout))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Session{}, fmt.Errorf("create session dir: %w", err)
	}

	return Session{
		Dir:       dir,
		AudioPath: filepath.Join(dir, r.cfg.FileName),
		StartedAt: now,
	}, nil
}

// Record starts ffmpeg and blocks until the recording ends.
func (r *implRecorder) Record(ctx context.Context, session Session, stop <-chan struct{}) error {
	if _, err := r.executor.LookPath(r.ffmpeg); err != nil {
		return ErrFFmpegNotFound
	}

	args := r.captureArgs(session.AudioPath)
	r.logger.Debug(ctx, "Starting ffmpeg: %s", strings.Join(args, " "))

	// The process must outlive ctx so it can be asked to finalize the file.
	proc, err := r.executor.Start(context.WithoutCancel(ctx), r.ffmpeg, args...)
	if err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	exited := make(chan error, 1)
	go func() {
		exited <- proc.Wait()
	}()

	r.logger.Info(ctx, "Recording started: %s", session.AudioPath)

	select {
	case err := <-exited:
		if stopRequested(ctx, stop) {
			// A terminal Ctrl+C reaches ffmpeg too and it finalizes on its own.
			r.logger.Info(ctx, "Recording stopped (%s)", time.Since(session.StartedAt).Round(time.Second))
			return nil
		}
		if err == nil {
			return fmt.Errorf("%w: %s", ErrExitedEarly, tail(proc.Stderr()))
		}
		return fmt.Errorf("%w: %v: %s", ErrExitedEarly, err, tail(proc.Stderr()))
	case <-stop:
	case <-ctx.Done():
	}

	r.logger.Info(ctx, "Stopping recording...")
	if _, err := io.WriteString(proc.Stdin(), "q"); err != nil {
		r.logger.Warn(ctx, "Failed to send quit to ffmpeg: %v", err)
	}
	_ = proc.Stdin().Close()

	timer := time.NewTimer(r.cfg.StopTimeout)
	defer timer.Stop()

	select {
	case err := <-exited:
		if err != nil {
			// ffmpeg often exits non-zero after 'q' on live inputs.
			r.logger.Debug(ctx, "ffmpeg exited after stop: %v", err)
		}
	case <-timer.C:
		r.logger.Warn(ctx, "ffmpeg did not stop within %s, killing it", r.cfg.StopTimeout)
		if err := proc.Kill(); err != nil {
			return fmt.Errorf("kill ffmpeg: %w", err)
		}
		<-exited
	}

	r.logger.Info(ctx, "Recording stopped (%s)", time.Since(session.StartedAt).Round(time.Second))
	return nil
}

// captureArgs maps the mic to track 0 and the system audio to track 1.
func (r *implRecorder) captureArgs(output string) []string {
	f := r.cfg.InputFormat
	return []string{
		"-f", f, "-i", r.cfg.MicDevice,
		"-f", f, "-i", r.cfg.SystemDevice,
		"-map", "0:a", "-c:a", "aac", "-metadata:s:a:0", "title=Microphone",
		"-map", "1:a", "-c:a", "aac", "-metadata:s:a:1", "title=System Audio",
		output,
	}
}

// ListDevices asks ffmpeg to enumerate capture devices. ffmpeg prints the
// list to stderr and exits non-zero, so the error text is the listing.
func (r *implRecorder) ListDevices(ctx context.Context) (string, error) {
	if _, err := r.executor.LookPath(r.ffmpeg); err != nil {
		return "", ErrFFmpegNotFound
	}

	var args []string
	switch r.cfg.InputFormat {
	case "dshow":
		args = []string{"-hide_banner", "-list_devices", "true", "-f", "dshow", "-i", "dummy"}
	case "avfoundation":
		args = []string{"-hide_banner", "-list_devices", "true", "-f", "avfoundation", "-i", ""}
	default:
		args = []string{"-hide_banner", "-sources", r.cfg.InputFormat}
	}

	out, err := r.executor.Execute(ctx, r.ffmpeg, args...)
	if err != nil && strings.TrimSpace(out) == "" {
		return err.Error(), nil
	}
	return out, nil
}

func stopRequested(ctx context.Context, stop <-chan struct{}) bool {
	select {
	case <-stop:
		return true
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 500 {
		return "..." + s[len(s)-500:]
	}
	return s
}
