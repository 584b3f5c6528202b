package cli

import (
	"github.com/spf13/cobra"

	nfberrors "github.com/matzehuels/nfbstudio/pkg/errors"
	"github.com/matzehuels/nfbstudio/pkg/nodes"
	"github.com/matzehuels/nfbstudio/pkg/project"
	"github.com/matzehuels/nfbstudio/pkg/scheme"
)

// Node references accepted by the editing commands.
const refHelp = `Nodes are referenced by full ID, a unique ID prefix (as shown by "info")
or a unique title. Ports are appended as ":name" or ":index"; without a port
the first one is used.`

// addCommand creates the "add" command.
func (c *CLI) addCommand() *cobra.Command {
	var (
		title string
		at    string
	)

	cmd := &cobra.Command{
		Use:   "add <project.json> <kind>",
		Short: "Add a node to the scheme",
		Long:  `Add a node of the given kind. Run "nfbstudio kinds" for the list of kinds.`,
		Args:  cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 1 {
				return nodes.Kinds(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveDefault
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := nodes.New(args[1])
			if err != nil {
				return err
			}
			if title != "" {
				if err := n.SetTitle(title); err != nil {
					return err
				}
			}
			if at != "" {
				pos, err := parsePoint(at)
				if err != nil {
					return err
				}
				n.SetPosition(pos)
			}

			err = c.editProject(cmd.Context(), args[0], func(p *project.Project) error {
				return p.Scene.Add(n)
			})
			if err != nil {
				return err
			}
			printSuccess("Added %s %s", n.Title(), StyleHighlight.Render(shortID(n.ID())))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "node title (default is the kind's title)")
	cmd.Flags().StringVar(&at, "at", "", "position as x,y")
	return cmd
}

// removeCommand creates the "remove" command.
func (c *CLI) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <project.json> <node>...",
		Short: "Remove nodes and their edges from the scheme",
		Long:  refHelp,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var removed int
			err := c.editProject(cmd.Context(), args[0], func(p *project.Project) error {
				for _, ref := range args[1:] {
					n, err := findNode(p.Graph(), ref)
					if err != nil {
						return err
					}
					if err := p.Scene.Remove(n); err != nil {
						return err
					}
					removed++
				}
				return nil
			})
			if err != nil {
				return err
			}
			printSuccess("Removed %d nodes", removed)
			return nil
		},
	}
}

// connectCommand creates the "connect" command.
func (c *CLI) connectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "connect <project.json> <node[:output]> <node[:input]>",
		Short: "Connect an output to an input",
		Long: `Connect an output to an input. The output's data type must be convertible
to the input's; otherwise nothing changes.

` + refHelp,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var e *scheme.Edge
			err := c.editProject(cmd.Context(), args[0], func(p *project.Project) error {
				src, dst, err := findEnds(p.Graph(), args[1], args[2])
				if err != nil {
					return err
				}
				e, err = p.Scene.Connect(src, dst)
				return err
			})
			if err != nil {
				return err
			}
			printSuccess("Connected %s", e)
			return nil
		},
	}
}

// disconnectCommand creates the "disconnect" command.
func (c *CLI) disconnectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect <project.json> <node[:output]> <node[:input]>",
		Short: "Remove one edge between an output and an input",
		Long:  refHelp,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := c.editProject(cmd.Context(), args[0], func(p *project.Project) error {
				src, dst, err := findEnds(p.Graph(), args[1], args[2])
				if err != nil {
					return err
				}
				if p.Scene.Disconnect(src, dst) == nil {
					return nfberrors.New(nfberrors.ErrCodeNotFound, "%s is not connected to %s", src, dst)
				}
				return nil
			})
			if err != nil {
				return err
			}
			printSuccess("Disconnected")
			return nil
		},
	}
}

// moveCommand creates the "move" command.
func (c *CLI) moveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move <project.json> <node> <x,y>",
		Short: "Move a node; attached edges follow",
		Long:  refHelp,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parsePoint(args[2])
			if err != nil {
				return err
			}
			return c.editProject(cmd.Context(), args[0], func(p *project.Project) error {
				n, err := findNode(p.Graph(), args[1])
				if err != nil {
					return err
				}
				n.SetPosition(pos)
				return nil
			})
		},
	}
}

func findEnds(g *scheme.Graph, srcRef, dstRef string) (*scheme.Output, *scheme.Input, error) {
	src, err := findOutput(g, srcRef)
	if err != nil {
		return nil, nil, err
	}
	dst, err := findInput(g, dstRef)
	if err != nil {
		return nil, nil, err
	}
	return src, dst, nil
}
