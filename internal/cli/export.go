package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/nfbstudio/pkg/experiment"
	"github.com/matzehuels/nfbstudio/pkg/render"
)

// exportCommand creates the "export" command.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output string
		indent string
	)

	cmd := &cobra.Command{
		Use:   "export <project.json>",
		Short: "Export a project as NFB runtime XML",
		Long: `Validate a project and write the XML document the NFB runtime loads.
Nothing is written when validation fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			prog := newProgress(loggerFromContext(ctx))

			p, err := c.loadProject(ctx, args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("indent") {
				indent = c.config.Export.Indent
			}

			var buf bytes.Buffer
			if err := experiment.Export(ctx, &buf, p.Experiment, p.Graph(), indent); err != nil {
				return err
			}
			if err := writeOutput(output, buf.Bytes()); err != nil {
				return err
			}
			if output != "" {
				prog.done("Exported " + output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&indent, "indent", "", "indentation (default from config, tab)")
	return cmd
}

// renderCommand creates the "render" command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output   string
		format   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "render <project.json>",
		Short: "Draw the scheme as a diagram",
		Long: `Draw the scheme with Graphviz. The format is taken from --format, else from
the output file extension, else SVG. PNG and PDF require rsvg-convert.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			prog := newProgress(loggerFromContext(ctx))

			f, err := renderFormat(format, output)
			if err != nil {
				return err
			}
			if output == "" {
				output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + "." + string(f)
			}

			p, err := c.loadProject(ctx, args[0])
			if err != nil {
				return err
			}
			data, err := render.Render(ctx, p.Graph(), f, render.Options{Detailed: detailed})
			if err != nil {
				return err
			}
			if err := writeOutput(output, data); err != nil {
				return err
			}
			prog.done("Rendered " + output)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: project name with the format's extension)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: svg (default), dot, png, pdf")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show node parameters and edge types")
	return cmd
}

// renderFormat picks the render format from the flag, then the output
// extension, then SVG.
func renderFormat(flag, output string) (render.Format, error) {
	if flag != "" {
		return render.ParseFormat(flag)
	}
	if output != "" && filepath.Ext(output) != "" {
		return render.FormatFromPath(output)
	}
	return render.FormatSVG, nil
}

// writeOutput writes data to path, or to stdout when path is empty or "-".
func writeOutput(path string, data []byte) error {
	var w io.Writer = os.Stdout
	if path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	_, err := w.Write(data)
	return err
}
