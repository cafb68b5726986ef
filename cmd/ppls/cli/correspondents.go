package cli

import (
	"github.com/spf13/cobra"

	"github.com/faucetdb/ppls/internal/command"
	"github.com/faucetdb/ppls/internal/model"
)

func newCorrespondentsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "correspondents",
		Aliases: []string{"correspondent"},
		Short:   "Manage correspondents",
	}

	cmd.AddCommand(newShowCmd(a, command.Correspondents))
	cmd.AddCommand(newListCmd(a, command.Correspondents, namedColumns, nil))
	cmd.AddCommand(newNamedAddCmd(a, command.Correspondents))
	cmd.AddCommand(newNamedUpdateCmd(a, command.Correspondents))
	cmd.AddCommand(newDeleteCmd(a, command.Correspondents))

	return cmd
}

func newDocumentTypesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "document-types",
		Aliases: []string{"document-type", "types"},
		Short:   "Manage document types",
	}

	cmd.AddCommand(newShowCmd(a, command.DocumentTypes))
	cmd.AddCommand(newListCmd(a, command.DocumentTypes, namedColumns, nil))
	cmd.AddCommand(newNamedAddCmd(a, command.DocumentTypes))
	cmd.AddCommand(newNamedUpdateCmd(a, command.DocumentTypes))
	cmd.AddCommand(newDeleteCmd(a, command.DocumentTypes))

	return cmd
}

// newNamedAddCmd creates objects that only carry a name, such as
// correspondents and document types.
func newNamedAddCmd[T any](a *app, res command.Resource[T, T]) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create a " + res.Name,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, a, res, model.NewNamedCreate(args[0]))
		},
	}
}

func newNamedUpdateCmd[T any](a *app, res command.Resource[T, T]) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename a " + res.Name,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runUpdate(cmd, a, res, id, model.NamedUpdate{Name: optional(cmd, "name", name)})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")

	return cmd
}
