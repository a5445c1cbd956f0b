package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/USA-RedDragon/trng-client/randomorg"
	"github.com/go-errors/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

type Config struct {
	API     API     `json:"api"`
	History History `json:"history"`
	Output  Output  `json:"output"`
}

type API struct {
	Endpoint  string    `json:"endpoint"`
	Key       string    `json:"key"`
	Timeout   uint      `json:"timeout"`
	Preflight Preflight `json:"preflight"`
}

type Preflight struct {
	Disabled    bool  `json:"disabled"`
	MinimumBits int64 `json:"minimum_bits" yaml:"minimum_bits"`
}

type DatabaseDriver string

const (
	DatabaseDriverSQLite   DatabaseDriver = "sqlite"
	DatabaseDriverMySQL    DatabaseDriver = "mysql"
	DatabaseDriverPostgres DatabaseDriver = "postgres"
)

type Database struct {
	Driver          DatabaseDriver `json:"driver"`
	Database        string         `json:"database"`
	Username        string         `json:"username"`
	Password        string         `json:"password"`
	Host            string         `json:"host"`
	Port            uint16         `json:"port"`
	ExtraParameters string         `json:"extra_parameters" yaml:"extra_parameters"`
}

type History struct {
	Enabled  bool     `json:"enabled"`
	Database Database `json:"database"`
}

type OutputDriver string

const (
	OutputDriverFilesystem OutputDriver = "filesystem"
	OutputDriverS3         OutputDriver = "s3"
)

type FilesystemOptions struct {
	Directory string `json:"directory"`
}

type S3Options struct {
	Region   string `json:"region"`
	Bucket   string `json:"bucket"`
	Endpoint string `json:"endpoint"`
}

type Output struct {
	Driver            OutputDriver      `json:"driver"`
	FilesystemOptions FilesystemOptions `json:"filesystem_options" yaml:"filesystem_options"`
	S3Options         S3Options         `json:"s3_options" yaml:"s3_options"`
}

//nolint:golint,gochecknoglobals
var (
	ConfigFileKey              = "config"
	APIEndpointKey             = "api.endpoint"
	APIKeyKey                  = "api.key"
	APITimeoutKey              = "api.timeout"
	APIPreflightDisabledKey    = "api.preflight.disabled"
	APIPreflightMinimumBitsKey = "api.preflight.minimum_bits"
	HistoryEnabledKey          = "history.enabled"
	HistoryDatabaseDriverKey   = "history.database.driver"
	HistoryDatabaseDatabaseKey = "history.database.database"
	HistoryDatabaseUsernameKey = "history.database.username"
	HistoryDatabasePasswordKey = "history.database.password"
	HistoryDatabaseHostKey     = "history.database.host"
	HistoryDatabasePortKey     = "history.database.port"
	HistoryDatabaseExtraKey    = "history.database.extra_parameters"
	OutputDriverKey            = "output.driver"
	OutputFilesystemDirKey     = "output.filesystem_options.directory"
	OutputS3RegionKey          = "output.s3_options.region"
	OutputS3BucketKey          = "output.s3_options.bucket"
	OutputS3EndpointKey        = "output.s3_options.endpoint"
)

const (
	DefaultConfigPath            = "config.yaml"
	DefaultAPITimeout            = 30
	DefaultPreflightMinimumBits  = randomorg.DefaultPreflightBits
	DefaultHistoryDatabaseDriver = DatabaseDriverSQLite
	DefaultHistoryDatabase       = "trng-history.db"
	DefaultOutputDriver          = OutputDriverFilesystem
	DefaultOutputDirectory       = "output/"
)

func RegisterFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP(ConfigFileKey, "c", DefaultConfigPath, "Config file path")
	cmd.PersistentFlags().String(APIEndpointKey, randomorg.DefaultEndpoint, "JSON-RPC invoke URL")
	cmd.PersistentFlags().String(APIKeyKey, "", "API key for signed methods")
	cmd.PersistentFlags().Uint(APITimeoutKey, DefaultAPITimeout, "HTTP timeout in seconds")
	cmd.PersistentFlags().Bool(APIPreflightDisabledKey, false, "Disable the quota pre-flight check")
	cmd.PersistentFlags().Int64(APIPreflightMinimumBitsKey, DefaultPreflightMinimumBits, "Minimum bits the pre-flight check requires")
	cmd.PersistentFlags().Bool(HistoryEnabledKey, false, "Archive signed results in the history database")
	cmd.PersistentFlags().String(HistoryDatabaseDriverKey, string(DefaultHistoryDatabaseDriver), "History database driver")
	cmd.PersistentFlags().String(HistoryDatabaseDatabaseKey, DefaultHistoryDatabase, "History database name or path")
	cmd.PersistentFlags().String(HistoryDatabaseUsernameKey, "", "History database username")
	cmd.PersistentFlags().String(HistoryDatabasePasswordKey, "", "History database password")
	cmd.PersistentFlags().String(HistoryDatabaseHostKey, "", "History database host")
	cmd.PersistentFlags().Uint16(HistoryDatabasePortKey, 0, "History database port")
	cmd.PersistentFlags().String(HistoryDatabaseExtraKey, "", "History database extra parameters")
	cmd.PersistentFlags().String(OutputDriverKey, string(DefaultOutputDriver), "Blob output driver")
	cmd.PersistentFlags().String(OutputFilesystemDirKey, DefaultOutputDirectory, "Blob output directory")
	cmd.PersistentFlags().String(OutputS3RegionKey, "", "Blob output S3 region")
	cmd.PersistentFlags().String(OutputS3BucketKey, "", "Blob output S3 bucket")
	cmd.PersistentFlags().String(OutputS3EndpointKey, "", "Blob output S3 endpoint override")
}

var (
	ErrAPIEndpointRequired      = errors.New("API endpoint is required")
	ErrPreflightMinimumRequired = errors.New("pre-flight minimum bits must be positive")
	ErrDatabaseDriverRequired   = errors.New("history database driver is required")
	ErrDBHostRequired           = errors.New("history database host is required")
	ErrDBDatabaseRequired       = errors.New("history database name is required")
	ErrUnknownOutputDriver      = errors.New("unknown output driver")
	ErrS3RegionRequired         = errors.New("S3 region is required")
	ErrS3BucketRequired         = errors.New("S3 bucket is required")
)

func (c *Config) Validate() error {
	if c.API.Endpoint == "" {
		return ErrAPIEndpointRequired
	}
	if !c.API.Preflight.Disabled && c.API.Preflight.MinimumBits < 1 {
		return ErrPreflightMinimumRequired
	}
	if c.History.Enabled {
		switch c.History.Database.Driver {
		case "":
			return ErrDatabaseDriverRequired
		case DatabaseDriverMySQL, DatabaseDriverPostgres:
			if c.History.Database.Host == "" {
				return ErrDBHostRequired
			}
		}
		if c.History.Database.Database == "" {
			return ErrDBDatabaseRequired
		}
	}
	switch c.Output.Driver {
	case OutputDriverFilesystem:
	case OutputDriverS3:
		if c.Output.S3Options.Region == "" {
			return ErrS3RegionRequired
		}
		if c.Output.S3Options.Bucket == "" {
			return ErrS3BucketRequired
		}
	default:
		return ErrUnknownOutputDriver
	}
	return nil
}

func LoadConfig(cmd *cobra.Command) (*Config, error) {
	var config Config

	// Load flags from envs
	ctx, cancel := context.WithCancelCause(cmd.Context())
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if ctx.Err() != nil {
			return
		}
		optName := strings.ReplaceAll(strings.ReplaceAll(strings.ToUpper(f.Name), "-", "_"), ".", "__")
		if val, ok := os.LookupEnv(optName); !f.Changed && ok {
			if err := f.Value.Set(val); err != nil {
				cancel(err)
			}
			f.Changed = true
		}
	})
	if ctx.Err() != nil {
		return &config, fmt.Errorf("failed to load env: %w", context.Cause(ctx))
	}

	configPath, err := cmd.Flags().GetString(ConfigFileKey)
	if err != nil {
		return &config, fmt.Errorf("failed to get config path: %w", err)
	}
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return &config, fmt.Errorf("failed to read config: %w", err)
		} else if err == nil {
			if err := yaml.Unmarshal(data, &config); err != nil {
				return &config, fmt.Errorf("failed to unmarshal config: %w", err)
			}
		}
	}

	err = overrideFlags(&config, cmd)
	if err != nil {
		return &config, fmt.Errorf("failed to override flags: %w", err)
	}

	// Defaults
	if config.API.Endpoint == "" {
		config.API.Endpoint = randomorg.DefaultEndpoint
	}
	if config.API.Timeout == 0 {
		config.API.Timeout = DefaultAPITimeout
	}
	if config.API.Preflight.MinimumBits == 0 {
		config.API.Preflight.MinimumBits = DefaultPreflightMinimumBits
	}
	if config.History.Database.Driver == "" {
		config.History.Database.Driver = DefaultHistoryDatabaseDriver
	}
	if config.History.Database.Database == "" {
		config.History.Database.Database = DefaultHistoryDatabase
	}
	if config.Output.Driver == "" {
		config.Output.Driver = DefaultOutputDriver
	}
	if config.Output.FilesystemOptions.Directory == "" {
		config.Output.FilesystemOptions.Directory = DefaultOutputDirectory
	}

	return &config, nil
}

func overrideFlags(config *Config, cmd *cobra.Command) error {
	var err error
	if cmd.Flags().Changed(APIEndpointKey) {
		config.API.Endpoint, err = cmd.Flags().GetString(APIEndpointKey)
		if err != nil {
			return fmt.Errorf("failed to get API endpoint: %w", err)
		}
	}

	if cmd.Flags().Changed(APIKeyKey) {
		config.API.Key, err = cmd.Flags().GetString(APIKeyKey)
		if err != nil {
			return fmt.Errorf("failed to get API key: %w", err)
		}
	}

	if cmd.Flags().Changed(APITimeoutKey) {
		config.API.Timeout, err = cmd.Flags().GetUint(APITimeoutKey)
		if err != nil {
			return fmt.Errorf("failed to get API timeout: %w", err)
		}
	}

	if cmd.Flags().Changed(APIPreflightDisabledKey) {
		config.API.Preflight.Disabled, err = cmd.Flags().GetBool(APIPreflightDisabledKey)
		if err != nil {
			return fmt.Errorf("failed to get pre-flight disabled: %w", err)
		}
	}

	if cmd.Flags().Changed(APIPreflightMinimumBitsKey) {
		config.API.Preflight.MinimumBits, err = cmd.Flags().GetInt64(APIPreflightMinimumBitsKey)
		if err != nil {
			return fmt.Errorf("failed to get pre-flight minimum bits: %w", err)
		}
	}

	if cmd.Flags().Changed(HistoryEnabledKey) {
		config.History.Enabled, err = cmd.Flags().GetBool(HistoryEnabledKey)
		if err != nil {
			return fmt.Errorf("failed to get history enabled: %w", err)
		}
	}

	if cmd.Flags().Changed(HistoryDatabaseDriverKey) {
		var driver string
		driver, err = cmd.Flags().GetString(HistoryDatabaseDriverKey)
		if err != nil {
			return fmt.Errorf("failed to get history database driver: %w", err)
		}
		config.History.Database.Driver = DatabaseDriver(driver)
	}

	if cmd.Flags().Changed(HistoryDatabaseDatabaseKey) {
		config.History.Database.Database, err = cmd.Flags().GetString(HistoryDatabaseDatabaseKey)
		if err != nil {
			return fmt.Errorf("failed to get history database name: %w", err)
		}
	}

	if cmd.Flags().Changed(HistoryDatabaseUsernameKey) {
		config.History.Database.Username, err = cmd.Flags().GetString(HistoryDatabaseUsernameKey)
		if err != nil {
			return fmt.Errorf("failed to get history database username: %w", err)
		}
	}

	if cmd.Flags().Changed(HistoryDatabasePasswordKey) {
		config.History.Database.Password, err = cmd.Flags().GetString(HistoryDatabasePasswordKey)
		if err != nil {
			return fmt.Errorf("failed to get history database password: %w", err)
		}
	}

	if cmd.Flags().Changed(HistoryDatabaseHostKey) {
		config.History.Database.Host, err = cmd.Flags().GetString(HistoryDatabaseHostKey)
		if err != nil {
			return fmt.Errorf("failed to get history database host: %w", err)
		}
	}

	if cmd.Flags().Changed(HistoryDatabasePortKey) {
		config.History.Database.Port, err = cmd.Flags().GetUint16(HistoryDatabasePortKey)
		if err != nil {
			return fmt.Errorf("failed to get history database port: %w", err)
		}
	}

	if cmd.Flags().Changed(HistoryDatabaseExtraKey) {
		config.History.Database.ExtraParameters, err = cmd.Flags().GetString(HistoryDatabaseExtraKey)
		if err != nil {
			return fmt.Errorf("failed to get history database extra parameters: %w", err)
		}
	}

	if cmd.Flags().Changed(OutputDriverKey) {
		var driver string
		driver, err = cmd.Flags().GetString(OutputDriverKey)
		if err != nil {
			return fmt.Errorf("failed to get output driver: %w", err)
		}
		config.Output.Driver = OutputDriver(driver)
	}

	if cmd.Flags().Changed(OutputFilesystemDirKey) {
		config.Output.FilesystemOptions.Directory, err = cmd.Flags().GetString(OutputFilesystemDirKey)
		if err != nil {
			return fmt.Errorf("failed to get output directory: %w", err)
		}
	}

	if cmd.Flags().Changed(OutputS3RegionKey) {
		config.Output.S3Options.Region, err = cmd.Flags().GetString(OutputS3RegionKey)
		if err != nil {
			return fmt.Errorf("failed to get output S3 region: %w", err)
		}
	}

	if cmd.Flags().Changed(OutputS3BucketKey) {
		config.Output.S3Options.Bucket, err = cmd.Flags().GetString(OutputS3BucketKey)
		if err != nil {
			return fmt.Errorf("failed to get output S3 bucket: %w", err)
		}
	}

	if cmd.Flags().Changed(OutputS3EndpointKey) {
		config.Output.S3Options.Endpoint, err = cmd.Flags().GetString(OutputS3EndpointKey)
		if err != nil {
			return fmt.Errorf("failed to get output S3 endpoint: %w", err)
		}
	}

	return nil
}
