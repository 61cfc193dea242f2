package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meetscribe/internal/transcriber"
	"github.com/nguyentantai21042004/meetscribe/internal/watcher"
)

func NewWatchCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "watch DIR",
		Short: "Transcribe and summarize audio files as they appear in a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if err := requireDir(dir); err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			p := deps.pipeline()
			f := deps.formatter()
			handler := func(ctx context.Context, path string) error {
				out, err := p.RunFiles(ctx, []string{path}, filepath.Dir(path))
				f.Report(out.Transcripts)
				f.Report(out.Summaries)
				return err
			}

			w, err := watcher.New(dir, handler, transcriber.IsAudioFile, deps.Config.Watch.SettleDelay, deps.Logger)
			if err != nil {
				return err
			}
			defer w.Stop()

			f.Info("Watching " + dir + " for new recordings. Press Ctrl+C to stop.")
			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
