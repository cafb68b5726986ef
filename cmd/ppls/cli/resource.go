package cli

import (
	"github.com/spf13/cobra"

	"github.com/faucetdb/ppls/internal/client"
	"github.com/faucetdb/ppls/internal/command"
	"github.com/faucetdb/ppls/internal/ui"
)

// ---------- show ----------

func newShowCmd[R, T any](a *app, res command.Resource[R, T]) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a " + res.Name,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runShow(cmd, a, res, id)
		},
	}
}

func runShow[R, T any](cmd *cobra.Command, a *app, res command.Resource[R, T], id int) error {
	s, r, err := a.session(cmd)
	if err != nil {
		return err
	}
	item, err := command.Show(cmd.Context(), s, res, id)
	if err != nil {
		return err
	}
	return r.Record(item, res.Plain(item))
}

// ---------- list ----------

type listFlags struct {
	page         int
	pageSize     int
	sort         string
	nameContains string
}

// newListCmd builds "list" for res. columns are the table columns; extra,
// when set, supplies resource specific query filters.
func newListCmd[R, T any](a *app, res command.Resource[R, T], columns []string, extra func() client.Params) *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + res.Name + "s",
		Long: "List " + res.Name + "s. Every page is fetched unless --page or --page-size " +
			"is given, in which case both are required and only that page is returned.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := command.ListOptions{
				Page: client.PageOptions{
					Page:     optional(cmd, "page", flags.page),
					PageSize: optional(cmd, "page-size", flags.pageSize),
				},
				Sort:         flags.sort,
				NameContains: flags.nameContains,
			}
			if extra != nil {
				opts.Params = extra()
			}
			return runList(cmd, a, res, opts, columns)
		},
	}

	cmd.Flags().IntVar(&flags.page, "page", 0, "Page number to fetch")
	cmd.Flags().IntVar(&flags.pageSize, "page-size", 0, "Number of results per page")
	cmd.Flags().StringVar(&flags.sort, "sort", "", "Field to order by, prefix with - for descending")
	cmd.Flags().StringVar(&flags.nameContains, "name-contains", "", "Only results whose name contains this text")

	return cmd
}

func runList[R, T any](cmd *cobra.Command, a *app, res command.Resource[R, T], opts command.ListOptions, columns []string) error {
	s, r, err := a.session(cmd)
	if err != nil {
		return err
	}
	items, err := command.List(cmd.Context(), s, res, opts)
	if err != nil {
		return err
	}
	s.Logger.Debug("listed", "resource", res.Name, "count", len(items))
	return ui.List(r, items, columns, res.Plain)
}

// ---------- add / update ----------

func runAdd[R, T any](cmd *cobra.Command, a *app, res command.Resource[R, T], payload any) error {
	s, r, err := a.session(cmd)
	if err != nil {
		return err
	}
	item, err := command.Add(cmd.Context(), s, res, payload)
	if err != nil {
		return err
	}
	return r.Record(item, res.Plain(item))
}

func runUpdate[R, T any](cmd *cobra.Command, a *app, res command.Resource[R, T], id int, payload any) error {
	s, r, err := a.session(cmd)
	if err != nil {
		return err
	}
	item, err := command.Update(cmd.Context(), s, res, id, payload)
	if err != nil {
		return err
	}
	return r.Record(item, res.Plain(item))
}

// ---------- delete ----------

func newDeleteCmd[R, T any](a *app, res command.Resource[R, T]) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + res.Name,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runDelete(cmd, a, res, id, yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func runDelete[R, T any](cmd *cobra.Command, a *app, res command.Resource[R, T], id int, yes bool) error {
	s, r, err := a.session(cmd)
	if err != nil {
		return err
	}
	result, done, err := command.Delete(cmd.Context(), s, res, id, a.confirmer(cmd, yes))
	if err != nil || !done {
		return err
	}
	if r.Mode == ui.ModeJSON {
		return r.JSON(result)
	}
	r.Messagef("Deleted %s", res.Label(id))
	return nil
}
