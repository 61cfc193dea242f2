package cli

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meetscribe/internal/config"
	"github.com/nguyentantai21042004/meetscribe/internal/logger"
	"github.com/nguyentantai21042004/meetscribe/internal/output"
	"github.com/nguyentantai21042004/meetscribe/internal/version"
	"github.com/nguyentantai21042004/meetscribe/pkg/executor"
)

// Dependencies are shared by every command. Config and Logger are filled in
// by the root command once flags are parsed.
type Dependencies struct {
	Executor   executor.Executor
	HTTPClient *http.Client
	In         io.Reader
	Out        io.Writer

	Config *config.Config
	Logger logger.Logger
}

type rootFlags struct {
	configPath string
	envPath    string
	logLevel   string
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:   "meetscribe",
		Short: "Record meetings, transcribe them with whisper, and summarize with an LLM",
		Long: "meetscribe records your microphone and system audio into one file, " +
			"transcribes it locally with whisper.cpp and writes an LLM summary next to the transcript.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return deps.load(flags, cmd.Flags().Changed("config"))
		},
	}

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Full() + "\n")

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", config.DefaultConfigFile, "config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&flags.envPath, "env-file", config.DefaultEnvFile, "dotenv file with API keys")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error")

	rootCmd.AddCommand(NewRecordCmd(deps))
	rootCmd.AddCommand(NewManualCmd(deps))
	rootCmd.AddCommand(NewProcessCmd(deps))
	rootCmd.AddCommand(NewTranscribeCmd(deps))
	rootCmd.AddCommand(NewSummarizeCmd(deps))
	rootCmd.AddCommand(NewCheckCmd(deps))
	rootCmd.AddCommand(NewWatchCmd(deps))
	rootCmd.AddCommand(NewDoctorCmd(deps))

	return rootCmd
}

// load reads the config file (optional unless --config was given), the
// dotenv file and the log level, then builds the logger.
func (d *Dependencies) load(flags rootFlags, explicitConfig bool) error {
	cfg := config.Default()
	if _, err := os.Stat(flags.configPath); err == nil || explicitConfig {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if err := cfg.LoadEnv(flags.envPath); err != nil {
		return err
	}

	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	if !logger.ValidLevel(cfg.Logging.Level) {
		return fmt.Errorf("invalid log level %q", cfg.Logging.Level)
	}

	d.Config = cfg
	if d.Logger == nil {
		d.Logger = logger.New(cfg.Logging.Level)
	}
	if d.Executor == nil {
		d.Executor = executor.New()
	}
	if d.HTTPClient == nil {
		d.HTTPClient = &http.Client{}
	}
	return nil
}

func (d *Dependencies) formatter() *output.Formatter {
	return output.NewFormatter(d.Out)
}

// interactive reports whether both ends of the session are a terminal.
func (d *Dependencies) interactive() bool {
	return isTerminal(d.In) && isTerminal(d.Out)
}

func isTerminal(v interface{}) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func requireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("folder not found: %s", path)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("not a folder: %s", path)
	}
	return nil
}
