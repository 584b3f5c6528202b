package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	nfberrors "github.com/matzehuels/nfbstudio/pkg/errors"
	"github.com/matzehuels/nfbstudio/pkg/experiment"
	"github.com/matzehuels/nfbstudio/pkg/nodes"
	"github.com/matzehuels/nfbstudio/pkg/project"
)

// newCommand creates the "new" command.
func (c *CLI) newCommand() *cobra.Command {
	var (
		force bool
		name  string
	)

	cmd := &cobra.Command{
		Use:   "new <project.json>",
		Short: "Create a project with the default signal chain",
		Long: `Create a project whose scheme is the default signal chain:

  LSL input → spatial filter → bandpass → envelope → standardize → derived signal

The experiment starts with one baseline block in its sequence.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if err := nfberrors.ValidateProjectPath(path); err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return nfberrors.New(nfberrors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
			}

			p, err := project.New(c.sceneOptions()...)
			if err != nil {
				return err
			}
			if name != "" {
				p.Experiment.Name = name
			}
			if err := c.saveProject(cmd.Context(), path, p); err != nil {
				return err
			}

			printSuccess("Created %s", path)
			printStats(p.Graph().NodeCount(), p.Graph().EdgeCount())
			printNextStep("Inspect it", appName+" info "+path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	cmd.Flags().StringVar(&name, "name", "", "experiment name")
	return cmd
}

// infoCommand creates the "info" command.
func (c *CLI) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <project.json>",
		Short: "Show experiment settings and the nodes of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.loadProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			e := p.Experiment
			fmt.Println(StyleTitle.Render(e.Name))
			printKeyValue("Stream", e.LSLStreamName)
			printKeyValue("Inlet", experiment.InletLabel(e.Inlet))
			printKeyValue("Blocks", joinOrDash(blockNames(e)))
			printKeyValue("Sequence", joinOrDash(e.Sequence))

			var signals []string
			for _, s := range experiment.Signals(p.Graph()) {
				signals = append(signals, s.Name())
			}
			printKeyValue("Signals", joinOrDash(signals))
			printStats(p.Graph().NodeCount(), p.Graph().EdgeCount())

			if p.Graph().NodeCount() > 0 {
				fmt.Println(nodeTable(p.Graph().Nodes()))
			}
			return nil
		},
	}
}

// kindsCommand creates the "kinds" command.
func (c *CLI) kindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the node kinds that can be added to a scheme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, kind := range nodes.Kinds() {
				n, err := nodes.New(kind)
				if err != nil {
					return err
				}
				fmt.Printf("%s  %s\n", StyleHighlight.Render(fmt.Sprintf("%-22s", kind)), StyleDim.Render(n.Title()))
			}
			return nil
		},
	}
}

// validateCommand creates the "validate" command.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <project.json>",
		Short: "Check that a project can be exported",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.loadProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := p.Validate(); err != nil {
				return err
			}
			printSuccess("%s is valid", args[0])
			printDetail("%d signals, %d blocks", len(experiment.Signals(p.Graph())), len(p.Experiment.Blocks))
			return nil
		},
	}
}

func blockNames(e *experiment.Experiment) []string {
	names := make([]string, len(e.Blocks))
	for i, b := range e.Blocks {
		names[i] = b.Name
	}
	return names
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
