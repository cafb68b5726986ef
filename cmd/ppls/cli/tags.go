package cli

import (
	"github.com/spf13/cobra"

	"github.com/faucetdb/ppls/internal/command"
	"github.com/faucetdb/ppls/internal/model"
)

var namedColumns = []string{"id", "name", "slug", "document_count"}

func newTagsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tags",
		Aliases: []string{"tag"},
		Short:   "Manage tags",
	}

	cmd.AddCommand(newShowCmd(a, command.Tags))
	cmd.AddCommand(newListCmd(a, command.Tags, namedColumns, nil))
	cmd.AddCommand(newTagsAddCmd(a))
	cmd.AddCommand(newTagsUpdateCmd(a))
	cmd.AddCommand(newDeleteCmd(a, command.Tags))

	return cmd
}

func newTagsAddCmd(a *app) *cobra.Command {
	var (
		color  string
		inbox  bool
		parent int
	)

	cmd := &cobra.Command{
		Use:     "add <name>",
		Short:   "Create a tag",
		Example: `  ppls tags add Inbox --inbox --color "#a1b2c3"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := model.TagCreate{
				Name:              args[0],
				Color:             optional(cmd, "color", color),
				MatchingAlgorithm: model.DefaultMatching,
				Parent:            optional(cmd, "parent", parent),
			}
			if inbox {
				payload.IsInboxTag = &inbox
			}
			return runAdd(cmd, a, command.Tags, payload)
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "Tag color (hex value)")
	cmd.Flags().BoolVar(&inbox, "inbox", false, "Mark tag as an inbox tag")
	cmd.Flags().IntVar(&parent, "parent", 0, "Parent tag id")

	return cmd
}

func newTagsUpdateCmd(a *app) *cobra.Command {
	var (
		name   string
		color  string
		inbox  bool
		parent int
	)

	cmd := &cobra.Command{
		Use:     "update <id>",
		Short:   "Update a tag",
		Example: `  ppls tags update 12 --name Inbox --inbox=false`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			payload := model.TagUpdate{
				Name:       optional(cmd, "name", name),
				Color:      optional(cmd, "color", color),
				IsInboxTag: optional(cmd, "inbox", inbox),
				Parent:     optional(cmd, "parent", parent),
			}
			return runUpdate(cmd, a, command.Tags, id, payload)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Tag name")
	cmd.Flags().StringVar(&color, "color", "", "Tag color (hex value)")
	cmd.Flags().BoolVar(&inbox, "inbox", false, "Mark tag as an inbox tag (--inbox=false to clear)")
	cmd.Flags().IntVar(&parent, "parent", 0, "Parent tag id")

	return cmd
}
