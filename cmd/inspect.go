package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/coverprobe/internal/domain"
)

const inspectLongDescription = `Instrument every program found under the given paths without running it and
list its code objects, predicates, lines and literal constants.`

// inspectCmd represents the inspect command.
var inspectCmd = newInspectCmd()

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [paths...]",
		Short: "List the probes instrumentation would insert",
		Long:  inspectLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Inspect(domain.InspectArgs{Paths: parsePaths(args)})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
