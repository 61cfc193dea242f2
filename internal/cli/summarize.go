package cli

import (
	"github.com/spf13/cobra"
)

func NewSummarizeCmd(deps *Dependencies) *cobra.Command {
	var method, apiURL, apiKey string
	var docx bool

	cmd := &cobra.Command{
		Use:   "summarize DIR",
		Short: "Summarize the .txt transcripts in a folder",
		Long: "Summarize every .txt transcript in DIR into <name>.summary.txt.\n" +
			"Methods: lmstudio, openai, deepseek, huggingface, gemini, dummy.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if err := requireDir(dir); err != nil {
				return err
			}

			cfg := deps.Config.Summarizer
			if method != "" {
				cfg.Method = method
			}
			if apiURL != "" {
				cfg.APIURL = apiURL
			}
			if apiKey != "" {
				cfg.APIKey = apiKey
			}
			if cmd.Flags().Changed("docx") {
				cfg.ExportDocx = docx
			}

			f := deps.formatter()
			f.Summarizing(dir)

			report, err := deps.summarizer(cfg).SummarizeDir(cmd.Context(), dir)
			if err != nil {
				return err
			}
			f.Report(report)
			return nil
		},
	}

	cmd.Flags().StringVar(&method, "method", "", "summary backend (default: summarizer.method)")
	cmd.Flags().StringVar(&apiURL, "api-url", "", "override the backend endpoint URL")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key for cloud backends")
	cmd.Flags().BoolVar(&docx, "docx", false, "also write <name>.summary.docx")

	return cmd
}
