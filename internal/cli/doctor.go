package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meetscribe/internal/config"
	"github.com/nguyentantai21042004/meetscribe/internal/output"
	"github.com/nguyentantai21042004/meetscribe/internal/recorder"
	"github.com/nguyentantai21042004/meetscribe/internal/summarizer"
	"github.com/nguyentantai21042004/meetscribe/internal/transcriber"
)

func NewDoctorCmd(deps *Dependencies) *cobra.Command {
	var listDevices bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check prerequisites",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := deps.Config
			f := deps.formatter()
			ok := true

			if _, err := deps.Executor.LookPath(cfg.FFmpeg.BinaryPath); err != nil {
				f.SetupCheck("ffmpeg", false, "not found. Install ffmpeg and make sure it is on PATH")
				ok = false
			} else {
				f.SetupCheck("ffmpeg", true, "installed")
			}

			ok = checkWhisper(ctx, deps, f) && ok
			ok = checkSummarizer(cfg.Summarizer, f) && ok

			f.SetupCheck("Recordings directory", true, cfg.Recorder.RecordingsDir)
			f.SetupCheck("Capture devices", true, fmt.Sprintf("%s: %q + %q", cfg.Recorder.InputFormat, cfg.Recorder.MicDevice, cfg.Recorder.SystemDevice))

			if listDevices {
				listing, err := recorder.New(cfg, deps.Executor, deps.Logger).ListDevices(ctx)
				if err != nil {
					f.Warning("Could not list capture devices: " + err.Error())
				} else {
					fmt.Fprintln(deps.Out, listing)
				}
			}

			fmt.Fprintln(deps.Out)
			if ok {
				f.Success("All prerequisites met. Ready to record!")
			} else {
				f.Warning("Some prerequisites are missing.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&listDevices, "devices", false, "also print ffmpeg's capture device listing")

	return cmd
}

func checkWhisper(ctx context.Context, deps *Dependencies, f *output.Formatter) bool {
	w := deps.Config.Whisper

	if w.Engine == "server" {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(w.ServerURL, "/")+"/", nil)
		if err == nil {
			var resp *http.Response
			if resp, err = deps.HTTPClient.Do(req); err == nil {
				resp.Body.Close()
			}
		}
		if err != nil {
			f.SetupCheck("whisper-server", false, "not reachable at "+w.ServerURL)
			return false
		}
		f.SetupCheck("whisper-server", true, w.ServerURL)
		return true
	}

	ok := true
	if _, err := deps.Executor.LookPath(w.BinaryPath); err != nil {
		f.SetupCheck("whisper.cpp", false, w.BinaryPath+" not found on PATH")
		ok = false
	} else {
		f.SetupCheck("whisper.cpp", true, w.BinaryPath)
	}

	model := transcriber.ResolveModelPath(w.ModelsDir, w.ModelPath, w.Model)
	if _, err := os.Stat(model); err != nil {
		f.SetupCheck("Whisper model", false, model+" not found. Download it with whisper.cpp's download-ggml-model script")
		ok = false
	} else {
		f.SetupCheck("Whisper model", true, model)
	}
	return ok
}

func checkSummarizer(s config.SummarizerConfig, f *output.Formatter) bool {
	method := summarizer.Method(strings.ToLower(s.Method))

	var env string
	switch method {
	case summarizer.MethodOpenAI:
		env = "OPENAI_API_KEY"
	case summarizer.MethodDeepSeek:
		env = "DEEPSEEK_API_KEY"
	case summarizer.MethodHuggingFace:
		env = "HF_API_TOKEN"
	case summarizer.MethodGemini:
		env = "GEMINI_API_KEY"
	case summarizer.MethodLMStudio:
		f.SetupCheck("Summary backend", true, "lmstudio at "+s.LMStudio.BaseURL+" (run 'meetscribe check' to test it)")
		return true
	case summarizer.MethodDummy:
		f.SetupCheck("Summary backend", true, "dummy (no summaries will be generated)")
		return true
	default:
		f.SetupCheck("Summary backend", false, fmt.Sprintf("unknown method %q", s.Method))
		return false
	}

	if summarizer.APIKey(s, method) == "" {
		f.SetupCheck("Summary backend", false, fmt.Sprintf("%s needs an API key. Set %s or add it to .env", method, env))
		return false
	}
	f.SetupCheck("Summary backend", true, fmt.Sprintf("%s (API key configured)", method))
	return true
}
