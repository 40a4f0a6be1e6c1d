package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shardline/pkg/errors"
	"github.com/matzehuels/shardline/pkg/record"
	"github.com/matzehuels/shardline/pkg/restore"
)

// Output formats for the run command.
const (
	formatText = "text"
	formatJSON = "json"
)

// runOpts holds the command-line flags for the run command.
type runOpts struct {
	inputOpts
	format string
}

func (c *CLI) runCommand() *cobra.Command {
	opts := runOpts{format: formatText}

	cmd := &cobra.Command{
		Use:   "run <dataset>",
		Short: "Run the full restoration pipeline over a dataset",
		Long: `Run all ten restoration stages over a dataset and print every stage output,
the activation order and the completion message.

Examples:
  shardline run vault.toml
  shardline run vault.yaml --protocol qv7
  shardline run vault.json --sort quick --start 104 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRestore(cmd.Context(), cmd.OutOrStdout(), args[0], &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format (text, json)")

	return cmd
}

func (c *CLI) runRestore(ctx context.Context, w io.Writer, path string, opts *runOpts) error {
	if err := errors.ValidateFormat(opts.format, formatText, formatJSON); err != nil {
		return err
	}

	ds, p, err := opts.load(ctx, path)
	if err != nil {
		return err
	}

	res, err := restore.NewRunner(loggerFromContext(ctx)).Execute(ctx, p, ds)
	if err != nil {
		return err
	}

	if opts.format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newRunSummary(res))
	}
	printRun(w, res)
	return nil
}

// printRun writes the text report of a finished run.
func printRun(w io.Writer, res *restore.Result) {
	fmt.Fprintln(w, StyleTitle.Render(res.Protocol.DisplayName())+" "+StyleDim.Render("run "+res.RunID))
	printNewline(w)

	rows := make([][]string, 0, len(res.Stats))
	for i, s := range res.Stats {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			stageTitles[s.Stage],
			strconv.Itoa(s.Items),
			stageSummary(res, s.Stage, 56),
		})
	}
	fmt.Fprintln(w, renderTable([]string{"#", "Stage", "Items", "Output"}, rows))
	printNewline(w)

	printKeyValue(w, "Sorted", res.Sorted.String())
	printKeyValue(w, "Start", res.Start)
	fmt.Fprintln(w, "Activation order: "+formatChain(res.Order))
	printSuccess(w, "%s", res.Message)
}

// runSummary is the JSON shape of a finished run.
type runSummary struct {
	RunID       string              `json:"run_id"`
	Protocol    string              `json:"protocol"`
	Words       []string            `json:"words"`
	Codes       []int               `json:"codes"`
	Actions     []string            `json:"actions"`
	Annotations []annotationSummary `json:"annotations"`
	Sorted      record.Sequence     `json:"sorted"`
	Indexed     record.Sequence     `json:"indexed"`
	Graph       map[string][]string `json:"graph"`
	Start       string              `json:"start"`
	Order       []string            `json:"order"`
	Message     string              `json:"message"`
	Stages      []stageSummaryJSON  `json:"stages"`
}

type annotationSummary struct {
	Action   string         `json:"action"`
	Code     int            `json:"code"`
	Metadata map[string]any `json:"metadata"`
}

type stageSummaryJSON struct {
	Stage      string  `json:"stage"`
	Items      int     `json:"items"`
	DurationMS float64 `json:"duration_ms"`
}

func newRunSummary(res *restore.Result) runSummary {
	s := runSummary{
		RunID:    res.RunID,
		Protocol: res.Protocol.Name,
		Words:    res.Words,
		Codes:    res.Codes,
		Actions:  res.Actions,
		Sorted:   res.Sorted,
		Indexed:  res.Indexed,
		Graph:    res.Graph.Map(),
		Start:    res.Start,
		Order:    res.Order,
		Message:  res.Message,
	}
	s.Annotations = make([]annotationSummary, len(res.Annotations))
	for i, a := range res.Annotations {
		s.Annotations[i] = annotationSummary{Action: a.Action, Code: a.Code, Metadata: a.Metadata}
	}
	for _, st := range res.Stats {
		s.Stages = append(s.Stages, stageSummaryJSON{
			Stage:      st.Stage,
			Items:      st.Items,
			DurationMS: float64(st.Duration.Microseconds()) / 1000,
		})
	}
	return s
}
