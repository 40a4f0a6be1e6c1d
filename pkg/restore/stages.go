package restore

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/shardline/pkg/dataset"
	"github.com/matzehuels/shardline/pkg/errors"
)

// Pair is a decoded word tagged with its module code.
type Pair struct {
	Word string
	Code int
}

func (p Pair) String() string { return fmt.Sprintf("(%s, %d)", p.Word, p.Code) }

// Annotation ties one surviving action to the metadata of its code.
type Annotation struct {
	Action   string
	Code     int
	Metadata dataset.Metadata
}

// Decode splits fragment on the protocol separator and reverses every
// segment. With Clean set, characters other than ASCII letters, digits, '_'
// and '-' are dropped afterwards. Empty segments are kept; an empty fragment
// decodes to no words.
func (p Protocol) Decode(fragment string) []string {
	if fragment == "" {
		return []string{}
	}
	parts := strings.Split(fragment, p.Separator)
	words := make([]string, len(parts))
	for i, part := range parts {
		w := reverse(part)
		if p.Clean {
			w = strings.Map(keepWordRune, w)
		}
		words[i] = w
	}
	return words
}

func reverse(s string) string {
	r := []rune(s)
	slices.Reverse(r)
	return string(r)
}

func keepWordRune(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		return r
	}
	return -1
}

// PairWords zips words with codes, truncating to the shorter list.
func PairWords(words []string, codes []int) []Pair {
	n := min(len(words), len(codes))
	pairs := make([]Pair, n)
	for i := range n {
		pairs[i] = Pair{Word: words[i], Code: codes[i]}
	}
	return pairs
}

// DedupPairs drops duplicates according to the protocol's DedupMode. The first
// occurrence wins and order is preserved.
func (p Protocol) DedupPairs(pairs []Pair) []Pair {
	out := make([]Pair, 0, len(pairs))
	switch p.Dedup {
	case DedupWord:
		seen := make(map[string]bool, len(pairs))
		for _, pr := range pairs {
			if !seen[pr.Word] {
				seen[pr.Word] = true
				out = append(out, pr)
			}
		}
	default:
		seen := make(map[Pair]bool, len(pairs))
		for _, pr := range pairs {
			if !seen[pr] {
				seen[pr] = true
				out = append(out, pr)
			}
		}
	}
	return out
}

// Queue enqueues every pair and drains the queue front to back, returning the
// codes in processing order.
func Queue(pairs []Pair) []int {
	queue := slices.Clone(pairs)
	codes := make([]int, 0, len(pairs))
	for len(queue) > 0 {
		var next Pair
		next, queue = queue[0], queue[1:]
		codes = append(codes, next.Code)
	}
	return codes
}

// ActionLog pushes verb_code actions onto a stack and then pops Undo of them.
// Undo never pops past an empty stack.
func (p Protocol) ActionLog(codes []int) []string {
	if len(p.Verbs) == 0 {
		return []string{}
	}
	var stack []string
	switch p.VerbMode {
	case VerbEach:
		for _, c := range codes {
			for _, v := range p.Verbs {
				stack = append(stack, action(v, c))
			}
		}
	default:
		for i, c := range codes {
			stack = append(stack, action(p.Verbs[i%len(p.Verbs)], c))
		}
	}

	for range min(p.Undo, len(stack)) {
		stack = stack[:len(stack)-1]
	}
	if stack == nil {
		return []string{}
	}
	return stack
}

func action(verb string, code int) string {
	return verb + "_" + strconv.Itoa(code)
}

// ActionCode extracts the code after the last '_' of an action name.
func ActionCode(action string) (int, error) {
	i := strings.LastIndexByte(action, '_')
	if i < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "action %q has no '_' separator", action)
	}
	code, err := strconv.Atoi(action[i+1:])
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "action %q has a non-integer code", action)
	}
	return code, nil
}

// Annotate maps each action to the metadata of its code, in action order.
// Actions whose code has no metadata are skipped.
func Annotate(actions []string, meta map[int]dataset.Metadata) ([]Annotation, error) {
	out := make([]Annotation, 0, len(actions))
	for _, a := range actions {
		code, err := ActionCode(a)
		if err != nil {
			return nil, err
		}
		m, ok := meta[code]
		if !ok {
			continue
		}
		out = append(out, Annotation{Action: a, Code: code, Metadata: m})
	}
	return out, nil
}
