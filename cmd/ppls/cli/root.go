package cli

import (
	"github.com/spf13/cobra"

	"github.com/faucetdb/ppls/internal/config"
)

// Execute creates the root command tree and runs it.
func Execute(version, commit, date string) error {
	rootCmd := newRootCmd(newApp(), version, commit, date)
	return rootCmd.Execute()
}

func newRootCmd(a *app, version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ppls",
		Short: "Command-line client for Paperless-ngx",
		Long: `ppls talks to a Paperless-ngx server over its REST API.

Documents, tags, correspondents, document types and custom fields can be
listed, shown, created, updated and deleted. Connection settings come from
flags, PPLS_* environment variables, or the config file managed by
"ppls config".`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.opts.configPath, "config", "", "config file (default is <user config dir>/ppls/config.yaml)")
	pf.StringVar(&a.opts.hostname, "hostname", "", "Paperless-ngx base URL (env PPLS_HOSTNAME)")
	pf.StringVar(&a.opts.token, "token", "", "Paperless-ngx API token (env PPLS_TOKEN)")
	pf.StringVar(&a.opts.dateFormat, "date-format", config.DefaultDateFormat, `date format for output, or "relative" (env PPLS_DATE_FORMAT)`)
	pf.StringArrayVar(&a.opts.headers, "header", nil, "custom request header as Key=Value (repeatable, env PPLS_HEADERS)")
	pf.BoolVar(&a.opts.json, "json", false, "Output as JSON")
	pf.BoolVar(&a.opts.plain, "plain", false, "Output one plain line per result")
	pf.BoolVar(&a.opts.table, "table", false, "Output as a table (default)")
	pf.BoolVar(&a.opts.debug, "debug", false, "Log requests to stderr (env PPLS_DEBUG)")
	cmd.MarkFlagsMutuallyExclusive("json", "plain", "table")

	// Add subcommands
	cmd.AddCommand(newDocumentsCmd(a))
	cmd.AddCommand(newTagsCmd(a))
	cmd.AddCommand(newCorrespondentsCmd(a))
	cmd.AddCommand(newDocumentTypesCmd(a))
	cmd.AddCommand(newCustomFieldsCmd(a))
	cmd.AddCommand(newProfileCmd(a))
	cmd.AddCommand(newConfigCmd(a))
	cmd.AddCommand(newVersionCmd(a, version, commit, date))

	return cmd
}
