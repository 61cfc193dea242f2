package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meetscribe/internal/pipeline"
)

func NewProcessCmd(deps *Dependencies) *cobra.Command {
	var summarizeOnly bool

	cmd := &cobra.Command{
		Use:   "process DIR",
		Short: "Transcribe and summarize every recording in a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireDir(args[0]); err != nil {
				return err
			}

			mode := pipeline.ModeFull
			if summarizeOnly {
				mode = pipeline.ModeSummarizeOnly
			}
			return runPipeline(cmd.Context(), deps, args[0], mode)
		},
	}

	cmd.Flags().BoolVar(&summarizeOnly, "summarize-only", false, "only summarize existing .txt transcripts")

	return cmd
}

func runPipeline(ctx context.Context, deps *Dependencies, dir string, mode pipeline.Mode) error {
	f := deps.formatter()
	if mode == pipeline.ModeFull {
		f.Transcribing(dir)
	} else {
		f.Summarizing(dir)
	}

	out, err := deps.pipeline().Run(ctx, dir, mode)
	f.Report(out.Transcripts)
	f.Report(out.Summaries)
	if err != nil {
		return err
	}

	if out.Failed() {
		f.Warning("Some files failed, see the log above")
	}
	f.Done(dir)
	return nil
}
