package cli

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/faucetdb/ppls/internal/config"
	"github.com/faucetdb/ppls/internal/ui"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage ppls configuration",
		Long: `Create, inspect and edit the config file. Values in the file are the
lowest priority layer: PPLS_* environment variables and flags override them.`,
	}

	cmd.AddCommand(newConfigInitCmd(a))
	cmd.AddCommand(newConfigListCmd(a))
	cmd.AddCommand(newConfigGetCmd(a))
	cmd.AddCommand(newConfigSetCmd(a))
	cmd.AddCommand(newConfigRemoveCmd(a))

	return cmd
}

// ---------- config init ----------

type configInitResult struct {
	Overwritten bool   `json:"overwritten"`
	Path        string `json:"path"`
}

func newConfigInitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a config file with placeholder values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd, a, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config file")

	return cmd
}

func runConfigInit(cmd *cobra.Command, a *app, force bool) error {
	store, err := a.store()
	if err != nil {
		return err
	}
	exists, err := store.Exists()
	if err != nil {
		return err
	}
	if exists && !force {
		return fmt.Errorf("config already exists at %s, use --force to overwrite", store.Path())
	}
	if err := store.Save(config.DefaultFileData()); err != nil {
		return err
	}

	r := a.renderer(cmd, "")
	if r.Mode == ui.ModeJSON {
		return r.JSON(configInitResult{Overwritten: exists, Path: store.Path()})
	}
	r.Messagef("Created config at %s", store.Path())
	return nil
}

// ---------- config list ----------

func newConfigListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List config values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigList(cmd, a)
		},
	}
}

func runConfigList(cmd *cobra.Command, a *app) error {
	data, err := loadConfigData(a)
	if err != nil {
		return err
	}

	r := a.renderer(cmd, "")
	if r.Mode == ui.ModeJSON {
		return r.JSON(data)
	}
	if len(data) == 0 {
		r.Messagef("No config values set.")
		return nil
	}

	keys := sortedKeys(data)
	if r.Mode == ui.ModePlain {
		for _, k := range keys {
			fmt.Fprintf(r.Out, "%s=%s\n", k, r.FormatValue(data[k]))
		}
		return nil
	}

	fields := make([]ui.Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, ui.Field{Name: k, Value: data[k]})
	}
	r.FieldTable(fields)
	return nil
}

// ---------- config get ----------

func newConfigGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "get <key>",
		Short:   "Get a config value",
		Example: `  ppls config get hostname`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(cmd, a, args[0])
		},
	}
}

func runConfigGet(cmd *cobra.Command, a *app, key string) error {
	store, err := a.store()
	if err != nil {
		return err
	}
	value, err := store.Get(key)
	ok := err == nil
	if err != nil && !errors.Is(err, config.ErrNotFound) {
		return err
	}

	r := a.renderer(cmd, "")
	if r.Mode == ui.ModeJSON {
		if !ok {
			return r.JSON(map[string]any{})
		}
		return r.JSON(map[string]any{key: value})
	}
	if !ok {
		r.Messagef("Config key %s not set.", key)
		return nil
	}
	fmt.Fprintln(r.Out, r.FormatValue(value))
	return nil
}

// ---------- config set ----------

func newConfigSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Long: `Set a config value. Surrounding quotes are stripped and values starting
with { or [ are stored as JSON. The headers key must be a JSON object.`,
		Example: `  ppls config set hostname https://paperless.example.com
  ppls config set headers '{"X-Api-Key":"token"}'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd, a, args[0], args[1])
		},
	}
}

func runConfigSet(cmd *cobra.Command, a *app, key, raw string) error {
	store, err := a.store()
	if err != nil {
		return err
	}
	data, err := store.Load()
	if err != nil {
		return err
	}
	value, err := config.ParseValue(raw)
	if err != nil {
		return err
	}

	r := a.renderer(cmd, "")
	if key == "headers" {
		if _, ok := value.(map[string]any); !ok {
			fmt.Fprintln(cmd.ErrOrStderr(), `Warning: config key "headers" must be a JSON object. Example: {"X-Api-Key":"token"}`)
			if r.Mode == ui.ModeJSON {
				return r.JSON(data)
			}
			return nil
		}
	}

	data[key] = value
	if err := store.Save(data); err != nil {
		return err
	}
	if r.Mode == ui.ModeJSON {
		return r.JSON(data)
	}
	r.Messagef("Set %s", key)
	return nil
}

// ---------- config remove ----------

func newConfigRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <key>",
		Aliases: []string{"rm", "unset"},
		Short:   "Remove a config value",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigRemove(cmd, a, args[0])
		},
	}
}

func runConfigRemove(cmd *cobra.Command, a *app, key string) error {
	store, err := a.store()
	if err != nil {
		return err
	}
	data, err := store.Load()
	if err != nil {
		return err
	}

	r := a.renderer(cmd, "")
	_, ok := data[key]
	if ok {
		delete(data, key)
		if err := store.Save(data); err != nil {
			return err
		}
	}
	if r.Mode == ui.ModeJSON {
		return r.JSON(data)
	}
	if ok {
		r.Messagef("Removed %s", key)
	} else {
		r.Messagef("Config key %s not set.", key)
	}
	return nil
}

func loadConfigData(a *app) (map[string]any, error) {
	store, err := a.store()
	if err != nil {
		return nil, err
	}
	return store.Load()
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}
