package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/nfbstudio/pkg/project"
	"github.com/matzehuels/nfbstudio/pkg/scheme"
)

// copyCommand creates the "copy" command.
func (c *CLI) copyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "copy <project.json> <node>...",
		Short: "Copy nodes and the edges between them to the clipboard",
		Long: `Select the given nodes and copy them to the clipboard, together with every
edge whose ends are both selected.

` + refHelp,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.loadProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, ref := range args[1:] {
				n, err := findNode(p.Graph(), ref)
				if err != nil {
					return err
				}
				if err := p.Scene.Select(n, true); err != nil {
					return err
				}
			}
			return c.copySelection(p.Scene)
		},
	}
}

// copySelection writes the scene's selected graph to the clipboard.
func (c *CLI) copySelection(s *scheme.Scene) error {
	cb, err := c.openClipboard()
	if err != nil {
		return err
	}
	snap := s.SelectedGraph()
	if err := s.CopySelectedGraph(cb); err != nil {
		return err
	}
	printSuccess("Copied %d nodes, %d edges", snap.Len(), len(snap.Edges()))
	return nil
}

// pasteCommand creates the "paste" command.
func (c *CLI) pasteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "paste <project.json>",
		Short: "Paste the clipboard into a project",
		Long: `Paste the clipboard into a project. Pasted nodes get fresh IDs and are
shifted by the paste offset (config key paste_offset). An empty clipboard
leaves the project unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cb, err := c.openClipboard()
			if err != nil {
				return err
			}

			var (
				snap scheme.Snapshot
				ok   bool
			)
			err = c.editProject(cmd.Context(), args[0], func(p *project.Project) error {
				snap, ok = p.Scene.Paste(cb)
				return nil
			})
			if err != nil {
				return err
			}
			if !ok {
				printWarning("Clipboard has nothing to paste")
				return nil
			}
			printSuccess("Pasted %d nodes, %d edges", snap.Len(), len(snap.Edges()))
			for _, n := range snap.Nodes() {
				printDetail("%s  %s", shortID(n.ID()), n.Title())
			}
			return nil
		},
	}
}

// clipboardCommand creates the clipboard management command.
func (c *CLI) clipboardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clipboard",
		Short: "Manage the clipboard shared between invocations",
	}

	cmd.AddCommand(c.clipboardShowCommand())
	cmd.AddCommand(c.clipboardClearCommand())
	cmd.AddCommand(c.clipboardPathCommand())

	return cmd
}

// clipboardShowCommand creates the "clipboard show" subcommand.
func (c *CLI) clipboardShowCommand() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Describe the clipboard content",
		RunE: func(cmd *cobra.Command, args []string) error {
			cb, err := c.openClipboard()
			if err != nil {
				return err
			}
			entry, ok, err := cb.Entry()
			if err != nil {
				return err
			}
			if !ok {
				printInfo("Clipboard is empty")
				return nil
			}
			if raw {
				fmt.Println(entry.Text)
				return nil
			}

			snap, err := scheme.DecodeSnapshot(entry.Text)
			if err != nil {
				printWarning("Clipboard holds text that is not a scheme fragment")
				printDetail("%d bytes", len(entry.Text))
				return nil
			}
			printKeyValue("Copied", entry.CopiedAt.Local().Format("2006-01-02 15:04:05"))
			printStats(snap.Len(), len(snap.Edges()))
			if !snap.IsEmpty() {
				fmt.Println(nodeTable(snap.Nodes()))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the stored text")
	return cmd
}

// clipboardClearCommand creates the "clipboard clear" subcommand.
func (c *CLI) clipboardClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the clipboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cb, err := c.openClipboard()
			if err != nil {
				return err
			}
			if err := cb.Clear(); err != nil {
				return err
			}
			printSuccess("Clipboard cleared")
			return nil
		},
	}
}

// clipboardPathCommand creates the "clipboard path" subcommand.
func (c *CLI) clipboardPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the clipboard file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cb, err := c.openClipboard()
			if err != nil {
				return err
			}
			fmt.Println(cb.Path())
			return nil
		},
	}
}
