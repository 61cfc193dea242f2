package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meetscribe/internal/logger"
	"github.com/nguyentantai21042004/meetscribe/internal/pipeline"
	"github.com/nguyentantai21042004/meetscribe/internal/recorder"
	"github.com/nguyentantai21042004/meetscribe/internal/tui"
)

func NewRecordCmd(deps *Dependencies) *cobra.Command {
	var noTUI, noProcess bool

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record microphone and system audio, then transcribe and summarize",
		Long: "Record the microphone and the system audio into a new session folder.\n" +
			"Stop with Ctrl+Q (or Ctrl+C with --no-tui). The session is then\n" +
			"transcribed and summarized unless --no-process is set.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			useTUI := !noTUI && deps.interactive()

			recLog := deps.Logger
			if useTUI {
				// Keep log lines from tearing the live prompt.
				recLog = logger.New("error")
			}
			rec := recorder.New(deps.Config, deps.Executor, recLog)

			session, err := rec.NewSession(time.Now())
			if err != nil {
				return err
			}

			f := deps.formatter()
			if useTUI {
				err = tui.RunRecording(ctx, deps.In, deps.Out, session.AudioPath, func(stop <-chan struct{}) error {
					return rec.Record(ctx, session, stop)
				})
			} else {
				f.RecordingStarted(session.AudioPath, "Press Ctrl+C to stop.")
				err = recordUntilInterrupt(ctx, rec, session)
			}
			if err != nil {
				return err
			}
			f.RecordingStopped(time.Since(session.StartedAt))

			if noProcess {
				f.Done(session.Dir)
				return nil
			}
			return runPipeline(ctx, deps, session.Dir, pipeline.ModeFull)
		},
	}

	cmd.Flags().BoolVar(&noTUI, "no-tui", false, "no terminal UI; stop with Ctrl+C")
	cmd.Flags().BoolVar(&noProcess, "no-process", false, "only record, skip transcription and summary")

	return cmd
}

// recordUntilInterrupt stops the recording on the first SIGINT/SIGTERM.
// Later signals get the default behaviour again.
func recordUntilInterrupt(ctx context.Context, rec recorder.Recorder, session recorder.Session) error {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	stop := make(chan struct{})
	go func() {
		select {
		case <-sig:
			close(stop)
		case <-ctx.Done():
		}
	}()

	return rec.Record(ctx, session, stop)
}
