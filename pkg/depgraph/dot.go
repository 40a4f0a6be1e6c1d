package depgraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
)

// DOTOptions configures DOT output.
type DOTOptions struct {
	// Highlight lists identifiers to draw emphasized, typically an
	// activation order. The 1-based position is appended to the label.
	Highlight []string
}

// ToDOT converts the graph to Graphviz DOT format.
// Declared nodes are emitted in insertion order, followed by undeclared
// dependents, which are drawn dashed.
func ToDOT(g *Graph, opts DOTOptions) string {
	step := make(map[string]int, len(opts.Highlight))
	for i, id := range opts.Highlight {
		if _, ok := step[id]; !ok {
			step[id] = i + 1
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, id := range g.Nodes() {
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(fmtAttrs(id, step[id], false), ", "))
	}
	for _, id := range g.Referenced() {
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(fmtAttrs(id, step[id], true), ", "))
	}

	buf.WriteString("\n")
	for _, id := range g.Nodes() {
		for _, d := range g.Dependents(id) {
			fmt.Fprintf(&buf, "  %q -> %q;\n", id, d)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(id string, step int, undeclared bool) []string {
	label := id
	if step > 0 {
		label = fmt.Sprintf("%s\n#%d", id, step)
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if undeclared {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	if step > 0 {
		attrs = append(attrs, "penwidth=2", "color=\"#2a9d8f\"")
	}
	return attrs
}

// RenderSVG renders DOT text to SVG using the embedded Graphviz engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales from a
// zero origin with explicit width and height.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(root))
}
