package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corkboard-io/corkboard/pkg/board"
	"github.com/corkboard-io/corkboard/pkg/classify"
)

// labelsCommand creates the labels management command.
func (c *CLI) labelsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labels",
		Short: "Manage a board's label catalogue",
	}

	cmd.AddCommand(c.labelsListCommand())
	cmd.AddCommand(c.labelsAddCommand())
	cmd.AddCommand(c.labelsRemoveCommand())
	cmd.AddCommand(c.labelsRenameCommand())

	return cmd
}

// labelsListCommand creates the "labels list" subcommand.
func (c *CLI) labelsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [board.json]",
		Short: "List a board's labels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := board.ReadBoardFile(args[0])
			if err != nil {
				return err
			}
			if len(b.Labels) == 0 {
				printInfo("Board has no labels")
				return nil
			}
			palette := classify.NewPalette()
			for _, l := range b.Labels {
				count := 0
				for i := range b.Objects {
					if b.Objects[i].Label == l {
						count++
					}
				}
				fmt.Printf("%s %s %s\n",
					StyleHighlight.Render(l),
					StyleDim.Render(fmt.Sprintf("(%d objects)", count)),
					StyleDim.Render(palette.ColorFor(l)))
			}
			return nil
		},
	}
}

// labelsAddCommand creates the "labels add" subcommand.
func (c *CLI) labelsAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add [board.json] [label]",
		Short: "Add a label to a board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.mutateLabels(args[0], func(reg *classify.Registry) (string, bool) {
				if !reg.Add(args[1]) {
					return fmt.Sprintf("Label %q already exists or is empty", args[1]), false
				}
				return fmt.Sprintf("Added label %q", args[1]), true
			})
		},
	}
}

// labelsRemoveCommand creates the "labels remove" subcommand.
func (c *CLI) labelsRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [board.json] [label]",
		Short: "Remove a label from a board's catalogue",
		Long:  "Remove a label from the catalogue. Objects that carry the label keep it; they simply group under a label that is no longer registered.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.mutateLabels(args[0], func(reg *classify.Registry) (string, bool) {
				if !reg.Remove(args[1]) {
					return fmt.Sprintf("Label %q not found", args[1]), false
				}
				return fmt.Sprintf("Removed label %q", args[1]), true
			})
		},
	}
}

// labelsRenameCommand creates the "labels rename" subcommand.
func (c *CLI) labelsRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename [board.json] [old] [new]",
		Short: "Rename a label in a board's catalogue",
		Long:  "Rename a label in the catalogue. Objects tagged with the old name are not retagged; they group under the old name until edited.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.mutateLabels(args[0], func(reg *classify.Registry) (string, bool) {
				if !reg.Rename(args[1], args[2]) {
					return fmt.Sprintf("Cannot rename %q to %q", args[1], args[2]), false
				}
				return fmt.Sprintf("Renamed %q to %q", args[1], args[2]), true
			})
		},
	}
}

// mutateLabels loads a board, applies fn to its label catalogue, and writes
// the board back when fn reports a change.
func (c *CLI) mutateLabels(path string, fn func(*classify.Registry) (string, bool)) error {
	b, err := board.ReadBoardFile(path)
	if err != nil {
		return err
	}

	reg := classify.NewRegistry(b.Labels...)
	msg, changed := fn(reg)
	if !changed {
		printWarning("%s", msg)
		return nil
	}

	b.Labels = reg.Labels()
	if err := board.WriteBoardFile(b, path); err != nil {
		return err
	}
	printSuccess("%s", msg)
	return nil
}
