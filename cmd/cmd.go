package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/USA-RedDragon/trng-client/internal/config"
	"github.com/USA-RedDragon/trng-client/randomorg"
	"github.com/spf13/cobra"
)

func NewCommand(version, commit string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "trng-client",
		Version: fmt.Sprintf("%s - %s", version, commit),
		Annotations: map[string]string{
			"version": version,
			"commit":  commit,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config.RegisterFlags(cmd)
	cmd.AddCommand(
		newIntegersCommand(),
		newSequencesCommand(),
		newStringsCommand(),
		newGaussiansCommand(),
		newFractionsCommand(),
		newUUIDsCommand(),
		newBlobsCommand(),
		newUsageCommand(),
		newResultCommand(),
		newVerifyCommand(),
		newHistoryCommand(),
	)
	return cmd
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// loadClient builds the API client from the layered config.
func loadClient(cmd *cobra.Command) (*randomorg.Client, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	client := randomorg.NewClient(randomorg.Options{
		Endpoint:      cfg.API.Endpoint,
		APIKey:        cfg.API.Key,
		HTTPClient:    &http.Client{Timeout: time.Duration(cfg.API.Timeout) * time.Second},
		SkipPreflight: cfg.API.Preflight.Disabled,
		PreflightBits: cfg.API.Preflight.MinimumBits,
	})
	return client, cfg, nil
}
