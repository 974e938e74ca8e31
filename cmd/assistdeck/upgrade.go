package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xenonnoble69/assistdeck-frontend/internal/api"
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade <plan>",
	Short: "Start a subscription upgrade",
	Long:  "Creates a payment for the given plan and prints the approval URL to finish the purchase in a browser.",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpgrade,
}

func init() {
	rootCmd.AddCommand(upgradeCmd)
}

func runUpgrade(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	approvalURL, err := a.client.CreatePayment(ctx, args[0])
	if err != nil {
		return fmt.Errorf("%s", api.UserMessage(err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Complete the upgrade in your browser:")
	fmt.Fprintln(cmd.OutOrStdout(), approvalURL)
	return nil
}
