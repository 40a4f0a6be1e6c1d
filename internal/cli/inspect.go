package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/shardline/pkg/restore"
)

func (c *CLI) inspectCommand() *cobra.Command {
	var opts inputOpts

	cmd := &cobra.Command{
		Use:   "inspect <dataset>",
		Short: "Browse the stage outputs of a restoration run interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ds, p, err := opts.load(ctx, args[0])
			if err != nil {
				return err
			}
			res, err := restore.NewRunner(loggerFromContext(ctx)).Execute(ctx, p, ds)
			if err != nil {
				return err
			}

			prog := tea.NewProgram(NewStageBrowserModel(res),
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()))
			_, err = prog.Run()
			return err
		},
	}

	opts.register(cmd)
	return cmd
}
