package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/faucetdb/ppls/internal/command"
	"github.com/faucetdb/ppls/internal/model"
)

var customFieldColumns = []string{"id", "name", "data_type", "document_count"}

func newCustomFieldsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "custom-fields",
		Aliases: []string{"custom-field", "fields"},
		Short:   "Manage custom fields",
	}

	cmd.AddCommand(newShowCmd(a, command.CustomFields))
	cmd.AddCommand(newListCmd(a, command.CustomFields, customFieldColumns, nil))
	cmd.AddCommand(newCustomFieldsAddCmd(a))
	cmd.AddCommand(newCustomFieldsUpdateCmd(a))
	cmd.AddCommand(newDeleteCmd(a, command.CustomFields))

	return cmd
}

func dataTypeUsage() string {
	return "Data type (" + strings.Join(model.DataTypeLabels(), ", ") + ")"
}

func newCustomFieldsAddCmd(a *app) *cobra.Command {
	var (
		dataType string
		options  []string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a custom field",
		Example: `  ppls custom-fields add "Due Date" --data-type date
  ppls custom-fields add Priority --data-type select --option Low --option High`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := model.NewCustomFieldCreate(args[0], dataType, options)
			if err != nil {
				return err
			}
			return runAdd(cmd, a, command.CustomFields, payload)
		},
	}

	cmd.Flags().StringVar(&dataType, "data-type", "", dataTypeUsage())
	cmd.Flags().StringArrayVar(&options, "option", nil, "Select option label (repeatable, select only)")
	_ = cmd.MarkFlagRequired("data-type")

	return cmd
}

func newCustomFieldsUpdateCmd(a *app) *cobra.Command {
	var (
		name     string
		dataType string
		options  []string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a custom field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			payload, err := model.NewCustomFieldUpdate(optional(cmd, "name", name), dataType, options)
			if err != nil {
				return err
			}
			return runUpdate(cmd, a, command.CustomFields, id, payload)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Custom field name")
	cmd.Flags().StringVar(&dataType, "data-type", "", dataTypeUsage())
	cmd.Flags().StringArrayVar(&options, "option", nil, "Select option label (repeatable, select only)")

	return cmd
}
