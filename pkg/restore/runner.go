package restore

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/shardline/pkg/activation"
	"github.com/matzehuels/shardline/pkg/bst"
	"github.com/matzehuels/shardline/pkg/dataset"
	"github.com/matzehuels/shardline/pkg/depgraph"
	"github.com/matzehuels/shardline/pkg/errors"
	"github.com/matzehuels/shardline/pkg/observability"
	"github.com/matzehuels/shardline/pkg/record"
	"github.com/matzehuels/shardline/pkg/sorter"
)

// Stage names, in execution order.
const (
	StageDecode   = "decode"
	StagePair     = "pair"
	StageDedup    = "dedup"
	StageQueue    = "queue"
	StageActions  = "actions"
	StageAnnotate = "annotate"
	StageSort     = "sort"
	StageIndex    = "index"
	StageGraph    = "graph"
	StageActivate = "activate"
)

// Stages lists every stage name in execution order.
var Stages = []string{
	StageDecode, StagePair, StageDedup, StageQueue, StageActions,
	StageAnnotate, StageSort, StageIndex, StageGraph, StageActivate,
}

// StageStat records how one stage went.
type StageStat struct {
	Stage    string
	Items    int
	Duration time.Duration
}

// Result holds every stage output of one run.
type Result struct {
	RunID    string
	Protocol Protocol

	Words       []string
	Pairs       []Pair
	Unique      []Pair
	Codes       []int
	Actions     []string
	Annotations []Annotation
	Records     record.Sequence // stage 7 input
	Sorted      record.Sequence
	Tree        *bst.Node
	Indexed     record.Sequence // in-order view of Tree
	Graph       *depgraph.Graph
	Start       string
	Order       []string
	Message     string

	Stats []StageStat
	Total time.Duration
}

// Stat returns the stats of the named stage.
func (r *Result) Stat(stage string) (StageStat, bool) {
	for _, s := range r.Stats {
		if s.Stage == stage {
			return s, true
		}
	}
	return StageStat{}, false
}

// Runner executes restoration runs.
//
// The Runner holds no per-run state. Multiple goroutines can safely use the
// same Runner with different datasets.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs all ten stages of p over ds. Context cancellation is checked
// before every stage.
func (r *Runner) Execute(ctx context.Context, p Protocol, ds *dataset.Dataset) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid protocol: %w", err)
	}
	if ds == nil {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "no dataset")
	}
	srt, err := sorter.ByName(p.Sorter)
	if err != nil {
		return nil, err
	}

	res := &Result{RunID: uuid.NewString(), Protocol: p}
	logger := r.Logger.With("run", res.RunID[:8])
	begin := time.Now()

	stages := []struct {
		name string
		fn   func() (int, error)
	}{
		{StageDecode, func() (int, error) {
			res.Words = p.Decode(ds.Fragment)
			return len(res.Words), nil
		}},
		{StagePair, func() (int, error) {
			res.Pairs = PairWords(res.Words, ds.Codes)
			return len(res.Pairs), nil
		}},
		{StageDedup, func() (int, error) {
			res.Unique = p.DedupPairs(res.Pairs)
			return len(res.Unique), nil
		}},
		{StageQueue, func() (int, error) {
			res.Codes = Queue(res.Unique)
			return len(res.Codes), nil
		}},
		{StageActions, func() (int, error) {
			res.Actions = p.ActionLog(res.Codes)
			return len(res.Actions), nil
		}},
		{StageAnnotate, func() (int, error) {
			res.Annotations, err = Annotate(res.Actions, ds.Metadata)
			return len(res.Annotations), err
		}},
		{StageSort, func() (int, error) {
			res.Records, err = Records(res.Codes, ds.Metadata, p.ValueKey)
			if err != nil {
				return 0, err
			}
			res.Sorted = srt.Sort(res.Records)
			return len(res.Sorted), nil
		}},
		{StageIndex, func() (int, error) {
			res.Tree = bst.Build(res.Records)
			res.Indexed = bst.InOrder(res.Tree)
			return len(res.Indexed), nil
		}},
		{StageGraph, func() (int, error) {
			res.Graph = ds.Graph()
			return res.Graph.Len(), nil
		}},
		{StageActivate, func() (int, error) {
			res.Start, err = startModule(ds.Start, res.Codes, res.Graph)
			if err != nil {
				return 0, err
			}
			res.Order, res.Message = activation.Activator{Message: p.Message}.Activate(res.Graph, res.Start)
			return len(res.Order), nil
		}},
	}

	for _, s := range stages {
		if err := r.runStage(ctx, logger, res, s.name, s.fn); err != nil {
			return nil, err
		}
	}

	res.Total = time.Since(begin)
	logger.Info("restoration complete",
		"protocol", p.Name,
		"modules", len(res.Codes),
		"activated", len(res.Order),
		"duration", res.Total)
	return res, nil
}

func (r *Runner) runStage(ctx context.Context, logger *log.Logger, res *Result, name string, fn func() (int, error)) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	hooks := observability.Stages()
	hooks.OnStageStart(ctx, res.RunID, name)
	start := time.Now()
	items, err := fn()
	elapsed := time.Since(start)
	hooks.OnStageComplete(ctx, res.RunID, name, items, elapsed, err)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	res.Stats = append(res.Stats, StageStat{Stage: name, Items: items, Duration: elapsed})
	logger.Debug("stage complete", "stage", name, "items", items, "duration", elapsed)
	return nil
}

// Records builds one (code, value) record per code that has metadata, in code
// order. The value is read from valueKey; a missing or non-numeric value is
// an error.
func Records(codes []int, meta map[int]dataset.Metadata, valueKey string) (record.Sequence, error) {
	out := make(record.Sequence, 0, len(codes))
	for _, c := range codes {
		m, ok := meta[c]
		if !ok {
			continue
		}
		v, ok, err := m.Number(valueKey)
		if err != nil {
			return nil, fmt.Errorf("module %d: %w", c, err)
		}
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidDataset, "module %d: metadata has no %q", c, valueKey)
		}
		rec := record.FromCode(c, v)
		if err := rec.Validate(); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// StartModule picks the activation start for running p over ds: the
// dataset's start, else the first code left after stages 1-4, else the first
// declared graph node.
func StartModule(p Protocol, ds *dataset.Dataset) (string, error) {
	if ds == nil {
		return "", errors.New(errors.ErrCodeInvalidDataset, "no dataset")
	}
	codes := Queue(p.DedupPairs(PairWords(p.Decode(ds.Fragment), ds.Codes)))
	return startModule(ds.Start, codes, ds.Graph())
}

func startModule(start string, codes []int, g *depgraph.Graph) (string, error) {
	switch {
	case start != "":
		return start, nil
	case len(codes) > 0:
		return fmt.Sprint(codes[0]), nil
	case g.Len() > 0:
		return g.Nodes()[0], nil
	}
	return "", errors.New(errors.ErrCodeInvalidDataset, "no start module: dataset has no start, codes or dependencies")
}
