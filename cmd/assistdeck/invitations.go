package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xenonnoble69/assistdeck-frontend/internal/api"
)

var invitationsJSONOutput bool

var invitationsCmd = &cobra.Command{
	Use:   "invitations",
	Short: "Manage pending team invitations",
	RunE:  runInvitationsList,
}

var invitationsAcceptCmd = &cobra.Command{
	Use:   "accept <token>",
	Short: "Accept a team invitation",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvitationsAccept,
}

func init() {
	invitationsCmd.PersistentFlags().BoolVar(&invitationsJSONOutput, "json", false, "Output in JSON format")
	invitationsCmd.AddCommand(invitationsAcceptCmd)
	rootCmd.AddCommand(invitationsCmd)
}

func runInvitationsList(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	invitations, err := a.client.Invitations(ctx)
	if err != nil {
		return fmt.Errorf("%s", api.UserMessage(err))
	}

	if invitationsJSONOutput {
		return printJSON(cmd.OutOrStdout(), invitations)
	}

	if len(invitations) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No pending invitations.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTEAM\tINVITED BY\tWHEN")
	for _, inv := range invitations {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			inv.ID, inv.TeamName, inv.InviterName,
			inv.CreatedAt.Local().Format("Jan 02 15:04"))
	}
	return tw.Flush()
}

func runInvitationsAccept(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.client.AcceptInvitation(ctx, args[0]); err != nil {
		return fmt.Errorf("%s", api.UserMessage(err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Invitation accepted.")
	return nil
}
