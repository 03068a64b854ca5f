package cmds

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"ws1uem/internal/backends"
	"ws1uem/internal/types"

	"github.com/goccy/go-yaml"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultConfigFile = "ws1uem.yml"

	EnvHost         = "WS1_HOST"
	EnvAPIKey       = "WS1_API_KEY"
	EnvUsername     = "WS1_USERNAME"
	EnvPassword     = "WS1_PASSWORD"
	EnvAuthURL      = "WS1_AUTH_URL"
	EnvClientID     = "WS1_CLIENT_ID"
	EnvClientSecret = "WS1_CLIENT_SECRET"
	EnvTenantCode   = "WS1_TENANT_CODE"

	AuthBasic = "basic"
	AuthOAuth = "oauth"
)

// LoadConfig builds the client configuration from, in increasing precedence, the YAML profile at path,
// the WS1_* environment variables and the --host / --auth flags.
// A missing profile is only an error when path was given explicitly.
func LoadConfig(path string, explicit bool, host, auth string) (types.ClientConfig, error) {
	var cfg types.ClientConfig

	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return cfg, types.Err(types.ErrInvalidConfig, err, "parse %s", path)
		}
		log.WithField("file", path).Debug("Loaded profile")
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		log.WithField("file", path).Debug("No profile file, using environment only")
	default:
		return cfg, types.Err(types.ErrInvalidConfig, err, "read %s", path)
	}

	applyEnv(&cfg)

	if host != "" {
		cfg.Host = host
	}
	switch auth {
	case "":
	case AuthBasic:
		if cfg.Basic == nil {
			return cfg, types.Err(types.ErrInvalidConfig, nil, "--auth basic: no basic credentials configured")
		}
		cfg.OAuth = nil
	case AuthOAuth:
		if cfg.OAuth == nil {
			return cfg, types.Err(types.ErrInvalidConfig, nil, "--auth oauth: no oauth credentials configured")
		}
		cfg.Basic = nil
	default:
		return cfg, types.Err(types.ErrInvalidConfig, nil, "--auth must be %s or %s, got %q", AuthBasic, AuthOAuth, auth)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, types.Err(types.ErrInvalidConfig, err, "")
	}
	return cfg, nil
}

// LoadStoreConfig reads the token store selection from the profile's token_store section, overlaid with
// the TOKEN_BACKEND, REDIS_* and DDB_* environment variables. A missing profile leaves the defaults.
func LoadStoreConfig(path string) (backends.Config, error) {
	var profile struct {
		TokenStore backends.Config `yaml:"token_store"`
	}
	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(content, &profile); err != nil {
			return profile.TokenStore, types.Err(types.ErrInvalidConfig, err, "parse %s", path)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return profile.TokenStore, types.Err(types.ErrInvalidConfig, err, "read %s", path)
	}
	if err := backends.ApplyEnv(&profile.TokenStore); err != nil {
		return profile.TokenStore, types.Err(types.ErrInvalidConfig, err, "")
	}
	return profile.TokenStore, nil
}

func applyEnv(cfg *types.ClientConfig) {
	if v := os.Getenv(EnvHost); v != "" {
		cfg.Host = v
	}
	setFromEnv := func(dst *string, key string) bool {
		if v := os.Getenv(key); v != "" {
			*dst = v
			return true
		}
		return false
	}

	basic := types.BasicCredentials{}
	if cfg.Basic != nil {
		basic = *cfg.Basic
	}
	b1 := setFromEnv(&basic.Username, EnvUsername)
	b2 := setFromEnv(&basic.Password, EnvPassword)
	b3 := setFromEnv(&basic.APIKey, EnvAPIKey)
	if cfg.Basic != nil || b1 || b2 || b3 {
		cfg.Basic = &basic
	}

	oauth := types.OAuthCredentials{}
	if cfg.OAuth != nil {
		oauth = *cfg.OAuth
	}
	o1 := setFromEnv(&oauth.AuthURL, EnvAuthURL)
	o2 := setFromEnv(&oauth.ClientID, EnvClientID)
	o3 := setFromEnv(&oauth.ClientSecret, EnvClientSecret)
	o4 := setFromEnv(&oauth.TenantCode, EnvTenantCode)
	if cfg.OAuth != nil || o1 || o2 || o3 || o4 {
		cfg.OAuth = &oauth
	}
}

// describeAuth names the configured scheme for logs.
func describeAuth(cfg types.ClientConfig) string {
	if cfg.Basic != nil {
		return fmt.Sprintf("%s (%s)", AuthBasic, cfg.Basic.Username)
	}
	return fmt.Sprintf("%s (%s)", AuthOAuth, cfg.OAuth.ClientID)
}
