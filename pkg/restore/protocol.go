package restore

import (
	"slices"
	"strings"

	"github.com/matzehuels/shardline/pkg/activation"
	"github.com/matzehuels/shardline/pkg/errors"
	"github.com/matzehuels/shardline/pkg/sorter"
)

// DedupMode selects what counts as a duplicate in the dedup stage.
type DedupMode string

const (
	// DedupPair drops a (word, code) pair seen before.
	DedupPair DedupMode = "pair"
	// DedupWord drops a pair whose word was seen before, whatever its code.
	DedupWord DedupMode = "word"
)

// VerbMode selects how the action log assigns verbs to codes.
type VerbMode string

const (
	// VerbAlternate gives each code one action, cycling through the verbs.
	VerbAlternate VerbMode = "alternate"
	// VerbEach gives each code one action per verb.
	VerbEach VerbMode = "each"
)

// Protocol holds every knob that differs between restoration variants.
type Protocol struct {
	Name      string    // lookup key, e.g. "codex9"
	Title     string    // display name, e.g. "Codex-9"
	Separator string    // fragment segment separator
	Clean     bool      // strip characters outside [A-Za-z0-9_-] after reversing
	Dedup     DedupMode // duplicate rule for stage 3
	Verbs     []string  // action verbs for stage 5
	VerbMode  VerbMode
	Undo      int    // actions popped from the log
	ValueKey  string // metadata key holding the record value
	Sorter    string // sorter name, see sorter.ByName
	Message   string // completion message returned by activation
}

// DefaultProtocol names the preset used when nothing else is specified.
const DefaultProtocol = "codex9"

// Built-in presets.
var (
	Codex9 = Protocol{
		Name:      "codex9",
		Title:     "Codex-9",
		Separator: ";",
		Dedup:     DedupPair,
		Verbs:     []string{"load", "verify"},
		VerbMode:  VerbAlternate,
		Undo:      3,
		ValueKey:  "size",
		Sorter:    sorter.NameQuick,
		Message:   activation.DefaultMessage,
	}

	QV7 = Protocol{
		Name:      "qv7",
		Title:     "Protocol QV-7",
		Separator: "#",
		Clean:     true,
		Dedup:     DedupWord,
		Verbs:     []string{"decode", "validate"},
		VerbMode:  VerbEach,
		Undo:      2,
		ValueKey:  "energy",
		Sorter:    sorter.NameMerge,
		Message:   "Quantum Vault fully restored. Protocol QV-7 complete.",
	}
)

var aliases = map[string]string{
	"codex9":  "codex9",
	"codex-9": "codex9",
	"qv7":     "qv7",
	"qv-7":    "qv7",
}

// Protocols returns copies of the built-in presets.
func Protocols() []Protocol {
	return []Protocol{Codex9.clone(), QV7.clone()}
}

// LookupProtocol returns a copy of the preset called name. Lookup is
// case-insensitive, accepts the dashed spellings ("codex-9", "qv-7"), and an
// empty name selects DefaultProtocol.
func LookupProtocol(name string) (Protocol, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultProtocol
	}
	switch aliases[key] {
	case "codex9":
		return Codex9.clone(), nil
	case "qv7":
		return QV7.clone(), nil
	}
	return Protocol{}, errors.New(errors.ErrCodeInvalidProtocol, "unknown protocol %q (want codex9 or qv7)", name)
}

// Validate reports the first inconsistent knob.
func (p Protocol) Validate() error {
	switch {
	case p.Name == "":
		return errors.New(errors.ErrCodeInvalidProtocol, "protocol name is empty")
	case p.Separator == "":
		return errors.New(errors.ErrCodeInvalidProtocol, "%s: separator is empty", p.Name)
	case p.Dedup != DedupPair && p.Dedup != DedupWord:
		return errors.New(errors.ErrCodeInvalidProtocol, "%s: unknown dedup mode %q", p.Name, p.Dedup)
	case p.VerbMode != VerbAlternate && p.VerbMode != VerbEach:
		return errors.New(errors.ErrCodeInvalidProtocol, "%s: unknown verb mode %q", p.Name, p.VerbMode)
	case len(p.Verbs) == 0:
		return errors.New(errors.ErrCodeInvalidProtocol, "%s: no verbs", p.Name)
	case p.Undo < 0:
		return errors.New(errors.ErrCodeInvalidProtocol, "%s: negative undo count %d", p.Name, p.Undo)
	case p.ValueKey == "":
		return errors.New(errors.ErrCodeInvalidProtocol, "%s: value key is empty", p.Name)
	}
	for _, v := range p.Verbs {
		if v == "" || strings.Contains(v, "_") {
			return errors.New(errors.ErrCodeInvalidProtocol, "%s: verb %q must be non-empty and free of '_'", p.Name, v)
		}
	}
	if _, err := sorter.ByName(p.Sorter); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidProtocol, err, "%s", p.Name)
	}
	return nil
}

// DisplayName returns Title, falling back to Name.
func (p Protocol) DisplayName() string {
	if p.Title != "" {
		return p.Title
	}
	return p.Name
}

func (p Protocol) clone() Protocol {
	p.Verbs = slices.Clone(p.Verbs)
	return p
}
