package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/nfbstudio/pkg/export"
	"github.com/matzehuels/nfbstudio/pkg/scheme"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds each node's export data to its label and the data
	// type to each edge.
	Detailed bool
}

// ToDOT converts a scheme to Graphviz DOT. Each node is a record whose
// left column lists its inputs and whose right column lists its outputs;
// edges connect the matching ports. Selected nodes are drawn with a heavy
// outline. The result can be rendered with [Render].
func ToDOT(g *scheme.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph scheme {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=record, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=12];\n")
	buf.WriteString("  edge [arrowsize=0.7];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		attrs := []string{fmt.Sprintf("label=\"%s\"", recordLabel(n, opts.Detailed))}
		if n.IsSelected() {
			attrs = append(attrs, "penwidth=2.5", "fillcolor=\"#eef4ff\"")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if !e.Resolved() {
			continue
		}
		fmt.Fprintf(&buf, "  %q:o%d -> %q:i%d", e.SourceNode().ID(), e.Source().Index(), e.TargetNode().ID(), e.Target().Index())
		var attrs []string
		if opts.Detailed {
			attrs = append(attrs, fmt.Sprintf("label=%q", e.DataType().Name()))
		}
		if e.IsSelected() {
			attrs = append(attrs, "penwidth=2")
		}
		if len(attrs) > 0 {
			fmt.Fprintf(&buf, " [%s]", strings.Join(attrs, ", "))
		}
		buf.WriteString(";\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

// recordLabel builds "{{inputs}|title|{outputs}}". Port fields are named
// i<index> and o<index>.
func recordLabel(n *scheme.Node, detailed bool) string {
	var ins, outs []string
	for i, in := range n.Inputs() {
		ins = append(ins, fmt.Sprintf("<i%d> %s", i, escapeRecord(in.Name())))
	}
	for i, out := range n.Outputs() {
		outs = append(outs, fmt.Sprintf("<o%d> %s", i, escapeRecord(out.Name())))
	}

	body := []string{escapeRecord(n.Title())}
	if detailed {
		body = append(body, escapeRecord(n.Kind()))
		if cfg := n.Config(); cfg != nil {
			f := export.NewFields()
			cfg.AddExportData(f)
			for _, k := range f.Keys() {
				v, _ := f.Text(k)
				body = append(body, escapeRecord(k+": "+v))
			}
		}
	}

	fields := []string{strings.Join(body, `\n`)}
	if len(ins) > 0 {
		fields = append([]string{"{" + strings.Join(ins, "|") + "}"}, fields...)
	}
	if len(outs) > 0 {
		fields = append(fields, "{"+strings.Join(outs, "|")+"}")
	}
	return "{" + strings.Join(fields, "|") + "}"
}

var recordEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`{`, `\{`,
	`}`, `\}`,
	`|`, `\|`,
	`<`, `\<`,
	`>`, `\>`,
	"\n", " ",
)

func escapeRecord(s string) string {
	return recordEscaper.Replace(s)
}
