package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/coverprobe/internal/domain"
	m "github.com/mouse-blink/coverprobe/internal/model"
)

const runLongDescription = `Instrument every program found under the given paths and call its entry
function once per declared input. Each call runs with a timeout on its own
thread; exceptions and timeouts are recorded, not fatal.

One YAML report per input is written to the reports directory and a coverage
summary per program is shown at the end.`

var runParallelFlag int

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Trace programs over their inputs",
		Long:  runLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Run(cmd.Context(), domain.RunArgs{
				InspectArgs: domain.InspectArgs{Paths: parsePaths(args)},
				Reports:     m.Path(reportsFlag),
				Parallel:    runParallelFlag,
			})
		},
	}
	cmd.Flags().IntVarP(&runParallelFlag, "parallel", "p", 1, "number of programs traced concurrently")

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}
