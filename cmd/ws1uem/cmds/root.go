// Package cmds implements the ws1uem command line: one subcommand per resource accessor plus a raw
// `call` command reaching any endpoint of the API.
package cmds

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"ws1uem/internal/backends"
	"ws1uem/internal/query"
	"ws1uem/internal/resources"
	"ws1uem/internal/types"
	"ws1uem/internal/uem"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	cliName        = "ws1uem"
	cliDescription = "ws1uem - WorkspaceONE UEM REST API client"
)

// GlobalOptions holds options that are common to all commands
type GlobalOptions struct {
	ConfigFile string
	Host       string
	Auth       string
	Query      string
	Out        string
	Verbose    bool
	Timeout    time.Duration

	// transport replaces the default HTTP transport; tests point it at a local server.
	transport http.RoundTripper
}

// NewRootCommand creates the root ws1uem command with all subcommands.
//
// Credentials come from the YAML profile (--config, default ws1uem.yml), then the WS1_* environment
// variables, then --host / --auth. OAuth tokens are cached in the store selected by TOKEN_BACKEND.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&GlobalOptions{})
}

func newRootCommand(opts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   cliName,
		Short: cliDescription,
		Long: `ws1uem calls the WorkspaceONE UEM (AirWatch) REST API.

Authenticate with HTTP Basic and a tenant API key, or with OAuth2 client
credentials. JSON results are pretty-printed; other results print their
HTTP status code.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.Verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", DefaultConfigFile, "profile file (YAML)")
	cmd.PersistentFlags().StringVar(&opts.Host, "host", "", "API host, overrides the profile and "+EnvHost)
	cmd.PersistentFlags().StringVar(&opts.Auth, "auth", "", "authentication scheme when both are configured: basic|oauth")
	cmd.PersistentFlags().StringVarP(&opts.Query, "query", "q", "", "JMESPath expression applied to JSON results")
	cmd.PersistentFlags().StringVarP(&opts.Out, "out", "o", "", "write the result to a file, zstd-compressed when it ends in .zst")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", uem.DefaultTimeout, "timeout of each API call")

	cmd.AddCommand(
		newInfoCommand(opts),
		newDevicesCommand(opts),
		newTagsCommand(opts),
		newUsersCommand(opts),
		newGroupsCommand(opts),
		newCallCommand(opts),
	)
	return cmd
}

// newClient loads the configuration and builds the API client with the configured token store.
func newClient(ctx context.Context, cmd *cobra.Command, opts *GlobalOptions) (*uem.Client, error) {
	if opts.Query != "" {
		if _, err := query.Compile(opts.Query); err != nil {
			return nil, types.Err(types.ErrInvalidRequest, err, "--query %q", opts.Query)
		}
	}
	cfg, err := LoadConfig(opts.ConfigFile, cmd.Flags().Changed("config"), opts.Host, opts.Auth)
	if err != nil {
		return nil, err
	}
	storeCfg, err := LoadStoreConfig(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	store, err := backends.NewTokenStore(ctx, storeCfg)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"host": cfg.Host, "auth": describeAuth(cfg)}).Debug("Creating client")
	return uem.New(cfg,
		uem.WithHTTPClient(&http.Client{Timeout: opts.Timeout, Transport: opts.transport}),
		uem.WithLogger(log.StandardLogger()),
		uem.WithTokenStore(store),
		uem.WithTimeout(opts.Timeout),
	)
}

func newResources(cmd *cobra.Command, opts *GlobalOptions) (*resources.Set, error) {
	c, err := newClient(cmd.Context(), cmd, opts)
	if err != nil {
		return nil, err
	}
	return resources.New(c), nil
}

// render writes a result to stdout or --out, applying --query.
func render(cmd *cobra.Command, opts *GlobalOptions, r *uem.Result) error {
	w, err := openOutput(cmd.OutOrStdout(), opts.Out)
	if err != nil {
		return err
	}
	if err := writeResult(w, r, opts.Query); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// renderValue writes a plain value (an id, a boolean) the same way.
func renderValue(cmd *cobra.Command, opts *GlobalOptions, v any) error {
	w, err := openOutput(cmd.OutOrStdout(), opts.Out)
	if err != nil {
		return err
	}
	if err := writeJSON(w, v); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// parseParams turns repeated k=v flags into query parameters.
func parseParams(pairs []string) (url.Values, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	v := url.Values{}
	for _, p := range pairs {
		k, val, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", p)
		}
		v.Add(k, val)
	}
	return v, nil
}
