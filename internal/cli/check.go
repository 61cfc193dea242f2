package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meetscribe/internal/summarizer"
)

func NewCheckCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that LM Studio is running and answers a test prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := deps.formatter()
			f.Info("LM Studio: " + deps.Config.Summarizer.LMStudio.BaseURL)

			res, err := summarizer.CheckLMStudio(cmd.Context(), deps.Config.Summarizer, deps.HTTPClient)
			if errors.Is(err, summarizer.ErrNoModels) {
				f.Warning("LM Studio is running but no model is loaded")
				return err
			}
			if res != nil && len(res.Models) > 0 {
				f.Success(fmt.Sprintf("Loaded models: %v", res.Models))
			}
			if err != nil {
				return err
			}

			f.Success("Test reply: " + res.Reply)
			return nil
		},
	}
}
