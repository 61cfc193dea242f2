package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meetscribe/internal/tui"
)

func NewManualCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "manual [DIR]",
		Short: "Pick a folder and choose transcribe+summarize (F) or summarize only (S)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !deps.interactive() {
				return errors.New("manual needs a terminal; use 'meetscribe process DIR' instead")
			}
			ctx := cmd.Context()

			var dir string
			if len(args) == 1 {
				dir = args[0]
			} else {
				var err error
				if dir, err = tui.PromptFolder(ctx, deps.In, deps.Out); err != nil {
					return err
				}
			}
			if err := requireDir(dir); err != nil {
				return err
			}

			mode, err := tui.ChooseMode(ctx, deps.In, deps.Out, dir)
			if err != nil {
				return err
			}
			return runPipeline(ctx, deps, dir, mode)
		},
	}
}
