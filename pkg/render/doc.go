// Package render draws signal schemes as diagrams.
//
// [ToDOT] turns a scheme into Graphviz DOT source in which every node is a
// record with its inputs on the left and its outputs on the right, and
// every edge joins the two ports it connects. [Render] lays the source out
// in-process with [github.com/goccy/go-graphviz]:
//
//	svg, err := render.Render(ctx, g, render.FormatSVG, render.Options{})
//
// PNG and PDF are converted from the SVG with the external rsvg-convert
// tool (from librsvg).
package render
