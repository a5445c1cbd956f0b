package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUsageCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Show the API key's quota",
		RunE:  runUsage,
	}
}

func runUsage(cmd *cobra.Command, _ []string) error {
	client, _, err := loadClient(cmd)
	if err != nil {
		return err
	}
	usage, err := client.GetUsage(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("status: %s\n", usage.Status)
	fmt.Printf("bitsLeft: %d\n", usage.BitsLeft)
	fmt.Printf("requestsLeft: %d\n", usage.RequestsLeft)
	fmt.Printf("totalBits: %d\n", usage.TotalBits)
	fmt.Printf("totalRequests: %d\n", usage.TotalRequests)
	return nil
}
