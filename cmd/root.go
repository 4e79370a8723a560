// Package cmd provides the root command and CLI setup for coverprobe.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mouse-blink/coverprobe/internal/adapter"
	"github.com/mouse-blink/coverprobe/internal/config"
	"github.com/mouse-blink/coverprobe/internal/controller"
	"github.com/mouse-blink/coverprobe/internal/domain"
	m "github.com/mouse-blink/coverprobe/internal/model"
)

const rootLongDescription = `Coverprobe instruments bytecode programs and traces their execution.

Each program file (*.yaml) declares its assembly source, an entry function
and the inputs to call it with. Every input runs on its own thread with
branch distances, covered lines and observed constants recorded.

Supports Go-style path patterns:
  - ./...             recursively scan current directory
  - ./examples/...    recursively scan examples directory
  - ./a.yaml ./b      scan individual files and directories`

var programAdapter adapter.ProgramFSAdapter
var reportStore adapter.ReportStore
var ui controller.UI
var workflow domain.Workflow

// newWorkflow builds the workflow once flags and the config file are resolved.
var newWorkflow func(cfg config.Configuration, log zerolog.Logger) domain.Workflow

func init() {
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	programAdapter = adapter.NewLocalProgramFSAdapter()
	reportStore = adapter.NewReportStore()
	newWorkflow = func(cfg config.Configuration, log zerolog.Logger) domain.Workflow {
		return domain.NewWorkflow(programAdapter, reportStore, ui, cfg, log)
	}
}

var configFlag string
var adaptersFlag []string
var timeoutFlag time.Duration
var reportsFlag string
var seedFlag uint64
var logLevelFlag string
var inspectFlag bool
var parallelFlag int

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "coverprobe [paths...]",
		Short:             "Bytecode instrumentation and execution tracing",
		Long:              rootLongDescription,
		SilenceUsage:      true,
		PersistentPreRunE: setupWorkflow,
		RunE: func(cmd *cobra.Command, args []string) error {
			inspectArgs := domain.InspectArgs{Paths: parsePaths(args)}
			if inspectFlag {
				return workflow.Inspect(inspectArgs)
			}

			return workflow.Run(cmd.Context(), domain.RunArgs{
				InspectArgs: inspectArgs,
				Reports:     m.Path(reportsFlag),
				Parallel:    parallelFlag,
			})
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&configFlag, "config", "c", "", "path to a YAML configuration file")
	flags.StringSliceVarP(&adaptersFlag, "adapters", "a", nil, "instrumentation adapters to apply, in order (branch, line, seeding)")
	flags.DurationVarP(&timeoutFlag, "timeout", "t", 0, "per-input execution timeout (e.g. 500ms)")
	flags.StringVarP(&reportsFlag, "reports", "r", "", "directory to write YAML reports to (empty disables reports)")
	flags.Uint64Var(&seedFlag, "seed", 0, "seed of the constant providers")
	flags.StringVar(&logLevelFlag, "log-level", "", "log level (trace, debug, info, warn, error)")

	cmd.Flags().BoolVarP(&inspectFlag, "inspect", "i", false, "instrument programs and list their probes without running them")
	cmd.Flags().IntVarP(&parallelFlag, "parallel", "p", 1, "number of programs traced concurrently")

	return cmd
}

// setupWorkflow resolves the configuration and builds the workflow for the
// command about to run.
func setupWorkflow(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("reports") {
		reportsFlag = cfg.ReportsDir
	}

	workflow = newWorkflow(cfg, newLogger(cmd, cfg))

	return nil
}

// resolveConfig loads the config file and applies explicitly set flags over it.
func resolveConfig(cmd *cobra.Command) (config.Configuration, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return config.Configuration{}, err
	}

	flags := cmd.Flags()

	if flags.Changed("adapters") {
		cfg.Adapters = adaptersFlag
	}

	if flags.Changed("timeout") {
		cfg.Timeout = timeoutFlag
	}

	if flags.Changed("seed") {
		cfg.Seed = seedFlag
	}

	if flags.Changed("log-level") {
		cfg.LogLevel = logLevelFlag
	}

	if flags.Changed("reports") {
		cfg.ReportsDir = reportsFlag
	}

	if err := cfg.Validate(); err != nil {
		return config.Configuration{}, fmt.Errorf("invalid flags: %w", err)
	}

	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg config.Configuration) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: !controller.IsTTY(cmd.ErrOrStderr())}).
		Level(cfg.Level()).
		With().Timestamp().Logger()
}

func parsePaths(args []string) []m.Path {
	if len(args) == 0 {
		return []m.Path{"./..."}
	}

	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}
