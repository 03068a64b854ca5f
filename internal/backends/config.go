// Package backends builds the OAuth token store a client caches its bearer token in.
package backends

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"strconv"
	"ws1uem/internal/backends/ddb"
	"ws1uem/internal/backends/memory"
	"ws1uem/internal/ports"
	"ws1uem/internal/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	redisbackend "ws1uem/internal/backends/redis"
)

const (
	TokenBackendEnvKey = "TOKEN_BACKEND"
	BackendMemory      = "memory"
	BackendDDB         = "ddb"
	BackendRedis       = "redis"

	DDBEndpointKey = "DDB_ENDPOINT"
	DDBTableKey    = "DDB_TABLE"
	DDBRegionKey   = "AWS_REGION"

	RedisHost      = "REDIS_HOST"
	RedisPort      = "REDIS_PORT"
	RedisUser      = "REDIS_USER"
	RedisPass      = "REDIS_PASS"
	RedisTLS       = "REDIS_SSL"
	RedisDBNum     = "REDIS_DB_NUM"
	RedisKeyPrefix = "REDIS_KEY_PREFIX"

	DefaultDDBTable       = "ws1uem_tokens"
	DefaultRedisAddr      = "localhost:6379"
	DefaultRedisKeyPrefix = "_ws1uem_token_"
	defaultLocalDDBRegion = "us-east-1"
)

// Config selects the token store and how to reach it. It is the `token_store` section of a profile.
type Config struct {
	Backend string      `json:"backend,omitempty" yaml:"backend,omitempty"`
	Redis   RedisConfig `json:"redis,omitempty" yaml:"redis,omitempty"`
	DDB     DDBConfig   `json:"ddb,omitempty" yaml:"ddb,omitempty"`
}

type RedisConfig struct {
	Addr      string `json:"addr,omitempty" yaml:"addr,omitempty"`
	Username  string `json:"username,omitempty" yaml:"username,omitempty"`
	Password  string `json:"password,omitempty" yaml:"password,omitempty"`
	DB        int    `json:"db,omitempty" yaml:"db,omitempty"`
	TLS       bool   `json:"tls,omitempty" yaml:"tls,omitempty"`
	KeyPrefix string `json:"key_prefix,omitempty" yaml:"key_prefix,omitempty"`
}

// DDBConfig addresses the token table. Endpoint is for local DynamoDB emulators; credentials and region
// otherwise come from the default AWS chain.
type DDBConfig struct {
	Table    string `json:"table,omitempty" yaml:"table,omitempty"`
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Region   string `json:"region,omitempty" yaml:"region,omitempty"`
}

// ApplyEnv overlays the TOKEN_BACKEND, REDIS_* and DDB_* environment variables on cfg.
func ApplyEnv(cfg *Config) error {
	setFromEnv(&cfg.Backend, TokenBackendEnvKey)

	host, port := os.Getenv(RedisHost), os.Getenv(RedisPort)
	if host != "" || port != "" {
		addr := withDefaults(*cfg).Redis.Addr
		h, p, err := net.SplitHostPort(addr)
		if err != nil {
			return fmt.Errorf("redis addr %q: %w", addr, err)
		}
		if host != "" {
			h = host
		}
		if port != "" {
			p = port
		}
		cfg.Redis.Addr = net.JoinHostPort(h, p)
	}
	setFromEnv(&cfg.Redis.Username, RedisUser)
	setFromEnv(&cfg.Redis.Password, RedisPass)
	setFromEnv(&cfg.Redis.KeyPrefix, RedisKeyPrefix)
	if v := os.Getenv(RedisTLS); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", RedisTLS, v, err)
		}
		cfg.Redis.TLS = b
	}
	if v := os.Getenv(RedisDBNum); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", RedisDBNum, v, err)
		}
		cfg.Redis.DB = n
	}

	setFromEnv(&cfg.DDB.Table, DDBTableKey)
	setFromEnv(&cfg.DDB.Endpoint, DDBEndpointKey)
	setFromEnv(&cfg.DDB.Region, DDBRegionKey)
	return nil
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func withDefaults(cfg Config) Config {
	if cfg.Backend == "" {
		cfg.Backend = BackendMemory
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}
	if cfg.DDB.Table == "" {
		cfg.DDB.Table = DefaultDDBTable
	}
	return cfg
}

// NewTokenStore builds the store cfg selects. "memory" (the default) is process local; "redis" and "ddb"
// let several processes share one token per credential set. Connection failures match
// types.ErrTokenStoreAccess and an unknown backend types.ErrInvalidBackend.
func NewTokenStore(ctx context.Context, cfg Config) (ports.TokenStore, error) {
	cfg = withDefaults(cfg)
	switch cfg.Backend {
	case BackendMemory:
		return memory.NewTokenStore(), nil

	case BackendRedis:
		cli, err := redisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, types.Err(types.ErrTokenStoreAccess, err, "")
		}
		log.WithFields(log.Fields{"addr": cfg.Redis.Addr, "db": cfg.Redis.DB}).Debug("Using redis token store")
		return redisbackend.NewTokenStore(cli, cfg.Redis.KeyPrefix), nil

	case BackendDDB:
		cli, err := ddbClient(ctx, cfg.DDB)
		if err != nil {
			return nil, types.Err(types.ErrTokenStoreAccess, err, "")
		}
		store, err := ddb.NewTokenStore(ctx, cfg.DDB.Table, cli)
		if err != nil {
			return nil, types.Err(types.ErrTokenStoreAccess, err, "table %s", cfg.DDB.Table)
		}
		log.WithField("table", cfg.DDB.Table).Debug("Using dynamodb token store")
		return store, nil

	default:
		return nil, types.Err(types.ErrInvalidBackend, nil, "token store backend %q", cfg.Backend)
	}
}

func ddbClient(ctx context.Context, c DDBConfig) (*dynamodb.Client, error) {
	var opts []func(*config.LoadOptions) error
	region := c.Region
	if region == "" && c.Endpoint != "" {
		region = defaultLocalDDBRegion
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	if c.Endpoint != "" && os.Getenv("AWS_ACCESS_KEY_ID") == "" {
		// emulators accept any key pair
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("local", "local", "")))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}
	}), nil
}

func redisClient(ctx context.Context, c RedisConfig) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     c.Addr,
		Username: c.Username,
		Password: c.Password,
		DB:       c.DB,
	}
	if c.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	cli := redis.NewClient(opts)
	if err := cli.Ping(ctx).Err(); err != nil {
		_ = cli.Close()
		return nil, fmt.Errorf("ping redis %s: %w", c.Addr, err)
	}
	return cli, nil
}
