package cli

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/faucetdb/ppls/internal/client"
	"github.com/faucetdb/ppls/internal/command"
	"github.com/faucetdb/ppls/internal/config"
	"github.com/faucetdb/ppls/internal/ui"
)

// globalOptions holds the persistent flags of the root command.
type globalOptions struct {
	configPath string
	hostname   string
	token      string
	dateFormat string
	headers    []string
	json       bool
	plain      bool
	table      bool
	debug      bool
}

// app carries the process level collaborators so commands can be run
// against fakes in tests.
type app struct {
	fs         afero.Fs
	env        *viper.Viper
	stdin      io.Reader
	stderr     io.Writer
	isTerminal func() bool
	getwd      func() (string, error)

	opts globalOptions

	// loadConfig reads the config file once per command run.
	loadConfig func() (*config.File, error)
}

func newApp() *app {
	a := &app{
		fs:     afero.NewOsFs(),
		env:    config.NewEnvViper(),
		stdin:  os.Stdin,
		stderr: os.Stderr,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
		getwd: os.Getwd,
	}
	a.loadConfig = sync.OnceValues(a.readConfigFile)
	return a
}

func (a *app) store() (*config.Store, error) {
	path := a.opts.configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return config.NewStore(a.fs, path), nil
}

func (a *app) readConfigFile() (*config.File, error) {
	store, err := a.store()
	if err != nil {
		return nil, err
	}
	data, err := store.Load()
	if err != nil {
		return nil, err
	}
	return config.DecodeFile(data)
}

func (a *app) logger() *slog.Logger {
	level := slog.LevelWarn
	if a.opts.debug || a.env.GetBool("debug") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
}

func (a *app) mode() ui.Mode {
	switch {
	case a.opts.json:
		return ui.ModeJSON
	case a.opts.plain:
		return ui.ModePlain
	}
	return ui.ModeTable
}

func (a *app) renderer(cmd *cobra.Command, dateFormat string) *ui.Renderer {
	return &ui.Renderer{Out: cmd.OutOrStdout(), Mode: a.mode(), DateFormat: dateFormat}
}

// session resolves the effective configuration and returns a connected
// session together with a renderer using the resolved date format.
func (a *app) session(cmd *cobra.Command) (*command.Session, *ui.Renderer, error) {
	file, err := a.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	flags := config.Flags{
		Hostname: a.opts.hostname,
		Token:    a.opts.token,
		DateFormat: config.Flag[string]{
			Value:    a.opts.dateFormat,
			Explicit: flagChanged(cmd, "date-format"),
		},
		Headers: a.opts.headers,
	}
	resolved, err := config.Resolve(flags, config.EnvFromViper(a.env), file)
	if err != nil {
		return nil, nil, err
	}

	logger := a.logger()
	logger.Debug("resolved configuration", "hostname", resolved.Hostname, "date_format", resolved.DateFormat, "headers", len(resolved.Headers))

	s := &command.Session{
		Hostname: resolved.Hostname,
		Client: client.New(client.Config{
			Token:   resolved.Token,
			Headers: resolved.Headers,
			Logger:  logger,
		}),
		Logger: logger,
	}
	return s, a.renderer(cmd, resolved.DateFormat), nil
}

func (a *app) confirmer(cmd *cobra.Command, yes bool) *command.Confirmer {
	return &command.Confirmer{
		In:          a.stdin,
		Out:         cmd.OutOrStdout(),
		Interactive: a.isTerminal(),
		Yes:         yes,
	}
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flag(name)
	return f != nil && f.Changed
}
