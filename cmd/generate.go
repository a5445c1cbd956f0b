package cmd

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/USA-RedDragon/trng-client/internal/config"
	"github.com/USA-RedDragon/trng-client/internal/db"
	"github.com/USA-RedDragon/trng-client/internal/db/models"
	"github.com/USA-RedDragon/trng-client/internal/storage"
	"github.com/USA-RedDragon/trng-client/randomorg"
	"github.com/spf13/cobra"
)

func addGeneratorFlags(cmd *cobra.Command, defaultN int) {
	cmd.Flags().Int("n", defaultN, "How many values to generate")
	cmd.Flags().Bool("signed", false, "Request a server-signed result")
}

func methodFor(signed bool, kind string) string {
	if signed {
		return "generateSigned" + kind
	}
	return "generate" + kind
}

// finish archives signed results when history is on, then prints the data
// one value per line.
func finish(cfg *config.Config, method string, signed bool, result *randomorg.RandomResult) error {
	if result.AdvisoryDelay > 0 {
		slog.Debug("service advisory delay", "method", method, "milliseconds", result.AdvisoryDelay)
	}
	if signed && cfg.History.Enabled {
		if err := archive(cfg, method, result); err != nil {
			slog.Error("failed to archive signed result", "error", err.Error())
		}
	}
	return printData(result)
}

func archive(cfg *config.Config, method string, result *randomorg.RandomResult) error {
	database, err := db.MakeDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to make database: %w", err)
	}
	row, err := models.NewSignedResult(method, result)
	if err != nil {
		return err
	}
	if err := models.SaveSignedResult(database, row); err != nil {
		return err
	}
	slog.Info("archived signed result", "serialNumber", row.SerialNumber)
	return nil
}

func printData(result *randomorg.RandomResult) error {
	value, err := result.Random.Value()
	if err != nil {
		return err
	}
	switch v := value.(type) {
	case []float64:
		for _, n := range v {
			fmt.Println(strconv.FormatFloat(n, 'f', -1, 64))
		}
	case [][]float64:
		for _, seq := range v {
			parts := make([]string, 0, len(seq))
			for _, n := range seq {
				parts = append(parts, strconv.FormatFloat(n, 'f', -1, 64))
			}
			fmt.Println(strings.Join(parts, " "))
		}
	case []string:
		for _, s := range v {
			fmt.Println(s)
		}
	default:
		fmt.Println(v)
	}
	return nil
}

func newIntegersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "integers",
		Short: "Generate random integers",
		RunE:  runIntegers,
	}
	addGeneratorFlags(cmd, 1)
	cmd.Flags().Int("min", 1, "Lower bound, inclusive")
	cmd.Flags().Int("max", 100, "Upper bound, inclusive")
	cmd.Flags().Int("base", 10, "Base of the returned values (2, 8, 10 or 16)")
	cmd.Flags().Bool("no-replacement", false, "Sample without replacement")
	return cmd
}

func runIntegers(cmd *cobra.Command, _ []string) error {
	client, cfg, err := loadClient(cmd)
	if err != nil {
		return err
	}
	n, _ := cmd.Flags().GetInt("n")
	min, _ := cmd.Flags().GetInt("min")
	max, _ := cmd.Flags().GetInt("max")
	base, _ := cmd.Flags().GetInt("base")
	noReplacement, _ := cmd.Flags().GetBool("no-replacement")
	signed, _ := cmd.Flags().GetBool("signed")

	params := randomorg.IntegerParams{N: n, Min: min, Max: max, Base: base, NoReplacement: noReplacement}
	var result *randomorg.RandomResult
	if signed {
		result, err = client.GenerateSignedIntegers(cmd.Context(), params)
	} else {
		result, err = client.GenerateIntegers(cmd.Context(), params)
	}
	if err != nil {
		return err
	}
	return finish(cfg, methodFor(signed, "Integers"), signed, result)
}

func newSequencesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sequences",
		Short: "Generate sequences of random integers",
		RunE:  runSequences,
	}
	addGeneratorFlags(cmd, 1)
	cmd.Flags().IntSlice("length", []int{10}, "Sequence length, one value or one per sequence")
	cmd.Flags().IntSlice("min", []int{1}, "Lower bound, one value or one per sequence")
	cmd.Flags().IntSlice("max", []int{100}, "Upper bound, one value or one per sequence")
	cmd.Flags().Int("base", 10, "Base of the returned values (2, 8, 10 or 16)")
	cmd.Flags().Bool("no-replacement", false, "Sample without replacement")
	return cmd
}

func sequenceValues(vs []int) randomorg.Values {
	if len(vs) == 1 {
		return randomorg.Uniform(vs[0])
	}
	return randomorg.PerSequence(vs...)
}

func runSequences(cmd *cobra.Command, _ []string) error {
	client, cfg, err := loadClient(cmd)
	if err != nil {
		return err
	}
	n, _ := cmd.Flags().GetInt("n")
	length, _ := cmd.Flags().GetIntSlice("length")
	min, _ := cmd.Flags().GetIntSlice("min")
	max, _ := cmd.Flags().GetIntSlice("max")
	base, _ := cmd.Flags().GetInt("base")
	noReplacement, _ := cmd.Flags().GetBool("no-replacement")
	signed, _ := cmd.Flags().GetBool("signed")

	params := randomorg.SequenceParams{
		N:             n,
		Length:        sequenceValues(length),
		Min:           sequenceValues(min),
		Max:           sequenceValues(max),
		Base:          base,
		NoReplacement: noReplacement,
	}
	var result *randomorg.RandomResult
	if signed {
		result, err = client.GenerateSignedIntegerSequences(cmd.Context(), params)
	} else {
		result, err = client.GenerateIntegerSequences(cmd.Context(), params)
	}
	if err != nil {
		return err
	}
	return finish(cfg, methodFor(signed, "IntegerSequences"), signed, result)
}

func newStringsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strings",
		Short: "Generate random strings",
		RunE:  runStrings,
	}
	addGeneratorFlags(cmd, 1)
	cmd.Flags().Int("length", 8, "Length of each string")
	cmd.Flags().String("characters", "abcdefghijklmnopqrstuvwxyz", "Alphabet to draw from")
	cmd.Flags().Bool("no-replacement", false, "Sample without replacement")
	return cmd
}

func runStrings(cmd *cobra.Command, _ []string) error {
	client, cfg, err := loadClient(cmd)
	if err != nil {
		return err
	}
	n, _ := cmd.Flags().GetInt("n")
	length, _ := cmd.Flags().GetInt("length")
	characters, _ := cmd.Flags().GetString("characters")
	noReplacement, _ := cmd.Flags().GetBool("no-replacement")
	signed, _ := cmd.Flags().GetBool("signed")

	params := randomorg.StringParams{N: n, Length: length, Characters: characters, NoReplacement: noReplacement}
	var result *randomorg.RandomResult
	if signed {
		result, err = client.GenerateSignedStrings(cmd.Context(), params)
	} else {
		result, err = client.GenerateStrings(cmd.Context(), params)
	}
	if err != nil {
		return err
	}
	return finish(cfg, methodFor(signed, "Strings"), signed, result)
}

func newGaussiansCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gaussians",
		Short: "Generate samples from a Gaussian distribution",
		RunE:  runGaussians,
	}
	addGeneratorFlags(cmd, 1)
	cmd.Flags().Float64("mean", 0, "Mean of the distribution")
	cmd.Flags().Float64("stddev", 1, "Standard deviation of the distribution")
	cmd.Flags().Int("digits", 6, "Significant digits (2 to 14)")
	return cmd
}

func runGaussians(cmd *cobra.Command, _ []string) error {
	client, cfg, err := loadClient(cmd)
	if err != nil {
		return err
	}
	n, _ := cmd.Flags().GetInt("n")
	mean, _ := cmd.Flags().GetFloat64("mean")
	stddev, _ := cmd.Flags().GetFloat64("stddev")
	digits, _ := cmd.Flags().GetInt("digits")
	signed, _ := cmd.Flags().GetBool("signed")

	params := randomorg.GaussianParams{N: n, Mean: mean, StandardDeviation: stddev, SignificantDigits: digits}
	var result *randomorg.RandomResult
	if signed {
		result, err = client.GenerateSignedGaussians(cmd.Context(), params)
	} else {
		result, err = client.GenerateGaussians(cmd.Context(), params)
	}
	if err != nil {
		return err
	}
	return finish(cfg, methodFor(signed, "Gaussians"), signed, result)
}

func newFractionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fractions",
		Short: "Generate random decimal fractions from [0, 1)",
		RunE:  runFractions,
	}
	addGeneratorFlags(cmd, 1)
	cmd.Flags().Int("places", 6, "Decimal places (1 to 14)")
	cmd.Flags().Bool("no-replacement", false, "Sample without replacement")
	return cmd
}

func runFractions(cmd *cobra.Command, _ []string) error {
	client, cfg, err := loadClient(cmd)
	if err != nil {
		return err
	}
	n, _ := cmd.Flags().GetInt("n")
	places, _ := cmd.Flags().GetInt("places")
	noReplacement, _ := cmd.Flags().GetBool("no-replacement")
	signed, _ := cmd.Flags().GetBool("signed")

	params := randomorg.DecimalFractionParams{N: n, DecimalPlaces: places, NoReplacement: noReplacement}
	var result *randomorg.RandomResult
	if signed {
		result, err = client.GenerateSignedDecimalFractions(cmd.Context(), params)
	} else {
		result, err = client.GenerateDecimalFractions(cmd.Context(), params)
	}
	if err != nil {
		return err
	}
	return finish(cfg, methodFor(signed, "DecimalFractions"), signed, result)
}

func newUUIDsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uuids",
		Short: "Generate version-4 UUIDs",
		RunE:  runUUIDs,
	}
	addGeneratorFlags(cmd, 1)
	return cmd
}

func runUUIDs(cmd *cobra.Command, _ []string) error {
	client, cfg, err := loadClient(cmd)
	if err != nil {
		return err
	}
	n, _ := cmd.Flags().GetInt("n")
	signed, _ := cmd.Flags().GetBool("signed")

	params := randomorg.UUIDParams{N: n}
	var result *randomorg.RandomResult
	if signed {
		result, err = client.GenerateSignedUUIDs(cmd.Context(), params)
	} else {
		result, err = client.GenerateUUIDs(cmd.Context(), params)
	}
	if err != nil {
		return err
	}
	return finish(cfg, methodFor(signed, "UUIDs"), signed, result)
}

func newBlobsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blobs",
		Short: "Generate random binary blobs",
		RunE:  runBlobs,
	}
	addGeneratorFlags(cmd, 1)
	cmd.Flags().Int("size", 256, "Size of each blob in bits, divisible by 8")
	cmd.Flags().String("format", randomorg.BlobFormatBase64, `Encoding of the returned blobs ("base64" or "hex")`)
	cmd.Flags().Bool("save", false, "Write decoded blobs to the configured output")
	return cmd
}

func runBlobs(cmd *cobra.Command, _ []string) error {
	client, cfg, err := loadClient(cmd)
	if err != nil {
		return err
	}
	n, _ := cmd.Flags().GetInt("n")
	size, _ := cmd.Flags().GetInt("size")
	format, _ := cmd.Flags().GetString("format")
	save, _ := cmd.Flags().GetBool("save")
	signed, _ := cmd.Flags().GetBool("signed")

	params := randomorg.BlobParams{N: n, Size: size, Format: format}
	var result *randomorg.RandomResult
	if signed {
		result, err = client.GenerateSignedBlobs(cmd.Context(), params)
	} else {
		result, err = client.GenerateBlobs(cmd.Context(), params)
	}
	if err != nil {
		return err
	}

	if save {
		if err := saveBlobs(cmd, cfg, format, result); err != nil {
			return err
		}
	}
	return finish(cfg, methodFor(signed, "Blobs"), signed, result)
}

func saveBlobs(cmd *cobra.Command, cfg *config.Config, format string, result *randomorg.RandomResult) error {
	blobs, err := result.Random.Strings()
	if err != nil {
		return err
	}
	store, err := storage.NewStorage(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to open output storage: %w", err)
	}
	defer store.Close()

	stamp := strings.ReplaceAll(result.Random.CompletionTime, " ", "_")
	for i, blob := range blobs {
		var decoded []byte
		switch format {
		case randomorg.BlobFormatHex:
			decoded, err = hex.DecodeString(blob)
		default:
			decoded, err = base64.StdEncoding.DecodeString(blob)
		}
		if err != nil {
			return fmt.Errorf("failed to decode blob %d: %w", i, err)
		}
		name := fmt.Sprintf("blob-%s-%d.bin", stamp, i)
		file, err := store.Create(name)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", name, err)
		}
		if _, err := file.Write(decoded); err != nil {
			file.Close()
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		if err := file.Close(); err != nil {
			return fmt.Errorf("failed to close %s: %w", name, err)
		}
		slog.Info("saved blob", "name", name, "bytes", len(decoded))
	}
	return nil
}
