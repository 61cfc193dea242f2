package cli

import (
	"github.com/spf13/cobra"
)

func NewTranscribeCmd(deps *Dependencies) *cobra.Command {
	var outputDir, model string

	cmd := &cobra.Command{
		Use:   "transcribe DIR",
		Short: "Transcribe the audio files in a folder to .txt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if err := requireDir(dir); err != nil {
				return err
			}
			if outputDir == "" {
				outputDir = dir
			}

			f := deps.formatter()
			f.Transcribing(dir)

			report, err := deps.transcriber(model).TranscribeDir(cmd.Context(), dir, outputDir)
			if err != nil {
				return err
			}
			f.Report(report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "where to write transcripts (default: DIR)")
	cmd.Flags().StringVarP(&model, "model", "m", "", "whisper model name or ggml file (default: whisper.model)")

	return cmd
}
