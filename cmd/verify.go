package cmd

import (
	"fmt"
	"log/slog"

	"github.com/USA-RedDragon/trng-client/internal/db"
	"github.com/USA-RedDragon/trng-client/internal/db/models"
	"github.com/USA-RedDragon/trng-client/randomorg"
	"github.com/go-errors/errors"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var errNotAuthentic = errors.New("signature is not authentic")

func newResultCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "result",
		Short: "Fetch a previously generated signed result",
		RunE:  runResult,
	}
	cmd.Flags().Int("serial", 0, "Serial number of the signed result")
	_ = cmd.MarkFlagRequired("serial")
	return cmd
}

func runResult(cmd *cobra.Command, _ []string) error {
	client, cfg, err := loadClient(cmd)
	if err != nil {
		return err
	}
	serial, _ := cmd.Flags().GetInt("serial")
	result, err := client.GetResult(cmd.Context(), serial)
	if err != nil {
		return err
	}
	return finish(cfg, "getResult", true, result)
}

func newVerifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify the signature of a signed result",
		Long:  "Verify the signature of a signed result, from the local history when available, otherwise refetched from the service.",
		RunE:  runVerify,
	}
	cmd.Flags().Int("serial", 0, "Serial number of the signed result")
	_ = cmd.MarkFlagRequired("serial")
	return cmd
}

func runVerify(cmd *cobra.Command, _ []string) error {
	client, cfg, err := loadClient(cmd)
	if err != nil {
		return err
	}
	serial, _ := cmd.Flags().GetInt("serial")

	var result *randomorg.RandomResult
	if cfg.History.Enabled {
		database, err := db.MakeDB(cfg)
		if err != nil {
			return fmt.Errorf("failed to make database: %w", err)
		}
		row, err := models.FindSignedResultBySerial(database, serial)
		switch {
		case err == nil:
			result, err = row.Result()
			if err != nil {
				return err
			}
			slog.Info("verifying archived result", "serialNumber", serial, "method", row.Method)
		case errors.Is(err, gorm.ErrRecordNotFound):
			slog.Info("result not in history, refetching", "serialNumber", serial)
		default:
			return fmt.Errorf("failed to query history: %w", err)
		}
	}
	if result == nil {
		result, err = client.GetResult(cmd.Context(), serial)
		if err != nil {
			return err
		}
	}

	verified, err := client.VerifySignature(cmd.Context(), result)
	if err != nil {
		return err
	}
	if !verified.Authenticity {
		return errNotAuthentic
	}
	fmt.Println("authentic")
	return nil
}

func newHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List archived signed results",
		RunE:  runHistory,
	}
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		return errors.New("history is not enabled")
	}
	database, err := db.MakeDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to make database: %w", err)
	}
	results, err := models.ListSignedResults(database)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}
	for _, result := range results {
		fmt.Printf("%d\t%s\t%s\n", result.SerialNumber, result.Method, result.CompletionTime)
	}
	return nil
}
