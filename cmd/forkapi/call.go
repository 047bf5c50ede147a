package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kochabx/forkapi/api"
	"github.com/kochabx/forkapi/config"
	"github.com/kochabx/forkapi/errors"
	"github.com/kochabx/forkapi/log"
)

const envPrefix = "FORKAPI"

// callConfig is loaded from forkapi.yaml, FORKAPI_* variables and flags
type callConfig struct {
	API api.Config `mapstructure:",squash"`
	Log log.Config `mapstructure:"log"`
}

type callFlags struct {
	params  []string
	post    bool
	noAuth  bool
	config  string
	logFile string
}

// flagKeys maps config keys to the flags overriding them
var flagKeys = map[string]string{
	"url":                  "url",
	"email":                "email",
	"api_key":              "api-key",
	"timeout":              "timeout",
	"user_agent":           "user-agent",
	"insecure_skip_verify": "insecure",
	"log.level":            "log-level",
}

// callSubcommand returns the call [cobra.Command].
func callSubcommand() *cobra.Command {
	var f callFlags
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "call <method>",
		Short: "Call an API method and print its data as JSON",
		Example: `  forkapi call ping --url https://example.com/api/1.0
  forkapi call blog.comments.get -p limit=10 --email me@example.com --api-key secret`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, v, f, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&f.params, "param", "p", nil, "call parameter as key=value, repeatable")
	flags.BoolVar(&f.post, "post", false, "send the call as a POST form")
	flags.BoolVar(&f.noAuth, "no-auth", false, "do not send email and api_key")
	flags.StringVar(&f.config, "config", "", "config file (default: ./forkapi.yaml when present)")
	flags.StringVar(&f.logFile, "log-file", "", "also write logs to this file")
	flags.String("url", "", "API base URL")
	flags.String("email", "", "account email")
	flags.String("api-key", "", "account API key")
	flags.Int("timeout", api.DefaultTimeout, "timeout in seconds, 0 disables it")
	flags.String("user-agent", "", "suffix appended to the User-Agent")
	flags.Bool("insecure", false, "skip TLS certificate verification")
	flags.String("log-level", "info", "log level")

	for key, name := range flagKeys {
		// keys and flags are static, binding cannot fail
		_ = v.BindPFlag(key, flags.Lookup(name))
	}

	return cmd
}

func runCall(cmd *cobra.Command, v *viper.Viper, f callFlags, method string) error {
	params, err := parseParams(f.params)
	if err != nil {
		return err
	}

	cfg, err := loadCallConfig(v, f)
	if err != nil {
		return err
	}

	logger, err := log.FromConfig(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Close()

	client, err := api.NewFromConfig(cfg.API, api.WithLogger(logger))
	if err != nil {
		return err
	}

	var opts []api.CallOption
	if f.post {
		opts = append(opts, api.WithHTTPMethod(http.MethodPost))
	}
	if f.noAuth {
		opts = append(opts, api.WithAuthenticate(false))
	}

	data, err := client.Call(cmd.Context(), method, params, opts...)
	if err != nil {
		return err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return errors.MalformedResponse(http.StatusOK, err, "invalid data")
	}
	out.WriteByte('\n')
	_, err = cmd.OutOrStdout().Write(out.Bytes())
	return err
}

func loadCallConfig(v *viper.Viper, f callFlags) (callConfig, error) {
	var cfg callConfig

	opts := []config.Option{
		config.WithViper(v),
		config.WithName("forkapi.yaml"),
		config.WithEnvPrefix(envPrefix),
	}
	if f.config != "" {
		opts = append(opts, config.WithFile(f.config))
	}
	if err := config.New(&cfg, opts...).Load(); err != nil {
		return cfg, err
	}

	if f.logFile != "" {
		cfg.Log.File = logFileConfig(f.logFile)
	}
	return cfg, nil
}

// logFileConfig splits path into the directory, name and extension of a log file
func logFileConfig(path string) *log.FileConfig {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return &log.FileConfig{
		Filepath: filepath.Dir(path),
		Filename: strings.TrimSuffix(base, ext),
		FileExt:  strings.TrimPrefix(ext, "."),
	}
}

// parseParams turns key=value pairs into call parameters; later pairs win
func parseParams(pairs []string) (api.Params, error) {
	params := make(api.Params, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, errors.InvalidArgument("parameter %q: want key=value", pair)
		}
		params[key] = value
	}
	return params, nil
}

