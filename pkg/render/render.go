package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-graphviz"

	nfberrors "github.com/matzehuels/nfbstudio/pkg/errors"
	"github.com/matzehuels/nfbstudio/pkg/observability"
	"github.com/matzehuels/nfbstudio/pkg/scheme"
)

// Format is an output format of [Render].
type Format string

const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatDOT, FormatSVG, FormatPNG, FormatPDF}

// ParseFormat returns the format named s, ignoring case.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(s, ".")))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", nfberrors.New(nfberrors.ErrCodeInvalidFormat, "unsupported render format %q", s)
}

// FormatFromPath returns the format implied by a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// PNGScale is the scale factor of PNG output.
const PNGScale = 2.0

// Render draws g in the given format. DOT is returned as generated; SVG is
// laid out in-process by Graphviz; PNG and PDF are converted from the SVG
// and require rsvg-convert.
func Render(ctx context.Context, g *scheme.Graph, format Format, opts Options) (out []byte, err error) {
	start := time.Now()
	hooks := observability.Export()
	hooks.OnRenderStart(ctx, string(format), g.NodeCount())
	defer func() {
		hooks.OnRenderComplete(ctx, string(format), len(out), time.Since(start), err)
	}()

	dot := ToDOT(g, opts)
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return RenderSVG(ctx, dot)
	case FormatPNG:
		svg, err := RenderSVG(ctx, dot)
		if err != nil {
			return nil, err
		}
		return ToPNG(svg, PNGScale)
	case FormatPDF:
		svg, err := RenderSVG(ctx, dot)
		if err != nil {
			return nil, err
		}
		return ToPDF(svg)
	}
	return nil, nfberrors.New(nfberrors.ErrCodeInvalidFormat, "unsupported render format %q", format)
}

// RenderSVG lays out DOT source with Graphviz and returns SVG.
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

// normalizeViewBox replaces Graphviz's point-based svg header with one
// whose size matches its viewBox, so the image scales in browsers.
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

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}

// ToPDF converts SVG bytes to PDF using rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(svg []byte) ([]byte, error) {
	return rsvgConvert(svg, "pdf")
}

// ToPNG converts SVG bytes to PNG using rsvg-convert with the given scale factor.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	return rsvgConvert(svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

func rsvgConvert(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, nfberrors.New(nfberrors.ErrCodeUnsupported,
			"%s output requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.Command("rsvg-convert", args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rsvg-convert: %v: %s", err, errBuf.String())
	}
	return out.Bytes(), nil
}
