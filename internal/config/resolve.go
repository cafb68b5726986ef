package config

import (
	"errors"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"
)

// DefaultDateFormat is used when no layer supplies a date format.
const DefaultDateFormat = "yyyy-MM-dd"

// EnvPrefix is prepended to every environment variable the CLI reads.
const EnvPrefix = "PPLS"

// Flag carries a parsed flag value along with whether the user typed it.
// A declared default must not shadow a value persisted in the config file.
type Flag[T any] struct {
	Value    T
	Explicit bool
}

// Flags holds the already-parsed global flag values.
type Flags struct {
	Hostname   string
	Token      string
	DateFormat Flag[string]
	Headers    []string
}

// Env holds values read from PPLS_* environment variables.
type Env struct {
	Hostname   string
	Token      string
	DateFormat string
	Headers    string
}

// Resolved is the effective configuration of one command invocation.
type Resolved struct {
	Hostname   string
	Token      string
	DateFormat string
	Headers    map[string]string
}

// NewEnvViper returns a viper instance bound to the PPLS_* variables.
func NewEnvViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	for _, key := range []string{"hostname", "token", "date_format", "headers", "debug"} {
		_ = v.BindEnv(key)
	}
	return v
}

// EnvFromViper reads the environment layer through v.
func EnvFromViper(v *viper.Viper) Env {
	return Env{
		Hostname:   strings.TrimSpace(v.GetString("hostname")),
		Token:      strings.TrimSpace(v.GetString("token")),
		DateFormat: strings.TrimSpace(v.GetString("date_format")),
		Headers:    v.GetString("headers"),
	}
}

// Resolve applies layer precedence: explicit flag, then environment, then
// config file. Hostname and token have no built-in default; if either is
// missing a ConfigurationError lists every missing setting.
func Resolve(flags Flags, env Env, file *File) (*Resolved, error) {
	if file == nil {
		file = &File{}
	}

	r := &Resolved{
		Hostname:   firstNonEmpty(flags.Hostname, env.Hostname, file.Hostname),
		Token:      firstNonEmpty(flags.Token, env.Token, file.Token),
		DateFormat: resolveDateFormat(flags.DateFormat, env.DateFormat, file.DateFormat),
	}

	var merr *multierror.Error
	if r.Hostname == "" {
		merr = multierror.Append(merr, errors.New("missing hostname: pass --hostname, set PPLS_HOSTNAME, or run 'ppls config set hostname <url>'"))
	}
	if r.Token == "" {
		merr = multierror.Append(merr, errors.New("missing token: pass --token, set PPLS_TOKEN, or run 'ppls config set token <token>'"))
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, &ConfigurationError{Err: err}
	}

	fileHeaders, err := NormalizeHeaders(file.Headers, "config file headers")
	if err != nil {
		return nil, err
	}
	envHeaders, err := NormalizeHeaders(env.Headers, EnvPrefix+"_HEADERS")
	if err != nil {
		return nil, err
	}
	flagHeaders, err := NormalizeHeaders(flags.Headers, "--header")
	if err != nil {
		return nil, err
	}
	r.Headers = MergeHeaders(fileHeaders, envHeaders, flagHeaders)

	return r, nil
}

func resolveDateFormat(flag Flag[string], env, file string) string {
	if flag.Explicit && strings.TrimSpace(flag.Value) != "" {
		return strings.TrimSpace(flag.Value)
	}
	if v := firstNonEmpty(env, file, flag.Value); v != "" {
		return v
	}
	return DefaultDateFormat
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
