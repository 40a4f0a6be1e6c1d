package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shardline/pkg/restore"
)

func (c *CLI) protocolsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "protocols",
		Short: "List the built-in restoration protocols",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printProtocols(cmd.OutOrStdout(), restore.Protocols())
		},
	}
}

func printProtocols(w io.Writer, protocols []restore.Protocol) {
	rows := make([][]string, len(protocols))
	for i, p := range protocols {
		clean := "no"
		if p.Clean {
			clean = "yes"
		}
		rows[i] = []string{
			p.Name,
			p.DisplayName(),
			strconv.Quote(p.Separator),
			clean,
			string(p.Dedup),
			strings.Join(p.Verbs, "/") + " (" + string(p.VerbMode) + ")",
			strconv.Itoa(p.Undo),
			p.ValueKey,
			p.Sorter,
		}
	}
	fmt.Fprintln(w, renderTable(
		[]string{"Name", "Title", "Sep", "Clean", "Dedup", "Actions", "Undo", "Value", "Sort"},
		rows))
	printNewline(w)
	for _, p := range protocols {
		printDetail(w, "%s: %s", p.Name, p.Message)
	}
}
