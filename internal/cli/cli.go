package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/shardline/pkg/buildinfo"
	"github.com/matzehuels/shardline/pkg/dataset"
	"github.com/matzehuels/shardline/pkg/restore"
	"github.com/matzehuels/shardline/pkg/sorter"
)

// appName is the application name used for display.
const appName = "shardline"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// status receives spinner frames and transient progress lines.
	status io.Writer
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), status: w}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Shardline restores corrupted module datasets",
		Long: `Shardline reconstructs a corrupted dataset of modules through a ten-stage
restoration pipeline: it decodes the fragment, pairs and deduplicates the
modules, replays the action log, orders the modules by value and activates
them depth-first along their dependency graph.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.runCommand())
	root.AddCommand(c.sortCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.protocolsCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Input Handling
// =============================================================================

// inputOpts are the flags shared by every command that reads a dataset.
type inputOpts struct {
	protocol string // overrides the dataset's protocol field
	sorter   string // overrides the protocol's sorter
	start    string // overrides the dataset's start module
}

func (o *inputOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.protocol, "protocol", "p", "", "restoration protocol (codex9, qv7); defaults to the dataset's protocol")
	cmd.Flags().StringVarP(&o.sorter, "sort", "s", "", "sort algorithm (quick, merge); defaults to the protocol's")
	cmd.Flags().StringVar(&o.start, "start", "", "activation start module; defaults to the dataset's start")

	_ = cmd.RegisterFlagCompletionFunc("protocol", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, p := range restore.Protocols() {
			names = append(names, p.Name)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("sort", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return sorter.Names(), cobra.ShellCompDirectiveNoFileComp
	})
}

// load reads the dataset at path and resolves the protocol. Precedence for
// the protocol is flag, then the dataset's protocol field, then the default.
func (o *inputOpts) load(ctx context.Context, path string) (*dataset.Dataset, restore.Protocol, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	ds, err := dataset.LoadContext(ctx, path)
	if err != nil {
		return nil, restore.Protocol{}, err
	}

	name := o.protocol
	if name == "" {
		name = ds.Protocol
	}
	p, err := restore.LookupProtocol(name)
	if err != nil {
		return nil, restore.Protocol{}, err
	}
	if o.sorter != "" {
		s, err := sorter.ByName(o.sorter)
		if err != nil {
			return nil, restore.Protocol{}, err
		}
		p.Sorter = s.Name()
	}
	if o.start != "" {
		ds.Start = o.start
	}

	logger.Debug("dataset loaded",
		"path", path,
		"protocol", p.Name,
		"codes", len(ds.Codes),
		"dependencies", len(ds.Dependencies))
	prog.done("Loaded " + path)
	return ds, p, nil
}
