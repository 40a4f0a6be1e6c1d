package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/shardline/pkg/bst"
	"github.com/matzehuels/shardline/pkg/dataset"
	"github.com/matzehuels/shardline/pkg/record"
	"github.com/matzehuels/shardline/pkg/restore"
)

// stageTitles are the human-readable stage labels shown in tables and the
// stage browser.
var stageTitles = map[string]string{
	restore.StageDecode:   "Decode fragment",
	restore.StagePair:     "Pair with codes",
	restore.StageDedup:    "Remove duplicates",
	restore.StageQueue:    "Restoration queue",
	restore.StageActions:  "Action log",
	restore.StageAnnotate: "Annotate actions",
	restore.StageSort:     "Sort by value",
	restore.StageIndex:    "Integrity tree",
	restore.StageGraph:    "Dependency graph",
	restore.StageActivate: "Activation",
}

// stageLines renders the output of one stage as display lines.
func stageLines(res *restore.Result, stage string) []string {
	switch stage {
	case restore.StageDecode:
		return quoted(res.Words)
	case restore.StagePair:
		return pairLines(res.Pairs)
	case restore.StageDedup:
		return pairLines(res.Unique)
	case restore.StageQueue:
		return ints(res.Codes)
	case restore.StageActions:
		return slices.Clone(res.Actions)
	case restore.StageAnnotate:
		lines := make([]string, len(res.Annotations))
		for i, a := range res.Annotations {
			lines[i] = a.Action + " " + formatMetadata(a.Metadata)
		}
		return lines
	case restore.StageSort:
		return recordLines(res.Sorted)
	case restore.StageIndex:
		lines := recordLines(res.Indexed)
		return append(lines, fmt.Sprintf("height %d", bst.Height(res.Tree)))
	case restore.StageGraph:
		var lines []string
		for _, id := range res.Graph.Nodes() {
			lines = append(lines, id+" "+iconArrow+" ["+strings.Join(res.Graph.Dependents(id), " ")+"]")
		}
		return lines
	case restore.StageActivate:
		return append(slices.Clone(res.Order), res.Message)
	}
	return nil
}

// stageSummary renders a stage output on one line, cut to width runes.
func stageSummary(res *restore.Result, stage string, width int) string {
	var s string
	switch stage {
	case restore.StageSort:
		s = res.Sorted.String()
	case restore.StageIndex:
		s = res.Indexed.String()
	case restore.StageGraph:
		s = fmt.Sprintf("%d modules, %d edges", res.Graph.Len(), res.Graph.EdgeCount())
	case restore.StageActivate:
		s = strings.Join(res.Order, " "+iconArrow+" ")
	default:
		s = strings.Join(stageLines(res, stage), " ")
	}
	return truncate(s, width)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

func quoted(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strconv.Quote(w)
	}
	return out
}

func pairLines(pairs []restore.Pair) []string {
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = p.String()
	}
	return out
}

func ints(codes []int) []string {
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = strconv.Itoa(c)
	}
	return out
}

func recordLines(seq record.Sequence) []string {
	out := make([]string, len(seq))
	for i, r := range seq {
		out[i] = r.String()
	}
	return out
}

// formatMetadata renders metadata as "k=v" pairs in key order.
func formatMetadata(m dataset.Metadata) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, m[k])
	}
	return strings.Join(parts, " ")
}
