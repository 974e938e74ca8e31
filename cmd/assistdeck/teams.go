package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xenonnoble69/assistdeck-frontend/internal/api"
	"github.com/xenonnoble69/assistdeck-frontend/internal/deck"
)

var teamsJSONOutput bool

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "Manage teams",
	RunE:  runTeamsList,
}

var teamsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a team",
	Args:  cobra.ExactArgs(1),
	RunE:  runTeamsCreate,
}

var teamsShowCmd = &cobra.Command{
	Use:   "show <team-id>",
	Short: "Show team members and recent chat",
	Args:  cobra.ExactArgs(1),
	RunE:  runTeamsShow,
}

var teamsInviteCmd = &cobra.Command{
	Use:   "invite <team-id> <email>",
	Short: "Invite a member to a team",
	Args:  cobra.ExactArgs(2),
	RunE:  runTeamsInvite,
}

func init() {
	teamsCmd.PersistentFlags().BoolVar(&teamsJSONOutput, "json", false, "Output in JSON format")

	teamsCmd.AddCommand(teamsCreateCmd)
	teamsCmd.AddCommand(teamsShowCmd)
	teamsCmd.AddCommand(teamsInviteCmd)
	rootCmd.AddCommand(teamsCmd)
}

func runTeamsList(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	teams, err := a.client.Teams(ctx)
	if err != nil {
		return fmt.Errorf("%s", api.UserMessage(err))
	}

	if teamsJSONOutput {
		return printJSON(cmd.OutOrStdout(), teams)
	}
	return printTeamsTable(cmd.OutOrStdout(), teams)
}

func printTeamsTable(w io.Writer, teams []deck.Team) error {
	if len(teams) == 0 {
		fmt.Fprintln(w, "No teams.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tROLE\tMEMBERS\tUNREAD")
	for _, t := range teams {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n",
			t.ID, t.Name, t.Role, t.MemberCount, t.UnreadMessages)
	}
	return tw.Flush()
}

func runTeamsCreate(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	team, err := a.client.CreateTeam(ctx, args[0])
	if err != nil {
		return fmt.Errorf("%s", api.UserMessage(err))
	}

	if team != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Team %q created (%s).\n", team.Name, team.ID)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Team created.")
	}
	return nil
}

func runTeamsShow(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	team, err := a.client.Team(ctx, args[0])
	if err != nil {
		return fmt.Errorf("%s", api.UserMessage(err))
	}

	if teamsJSONOutput {
		return printJSON(cmd.OutOrStdout(), team)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", team.Name, team.Role)
	if team.Description != "" {
		fmt.Fprintln(out, team.Description)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\nNAME\tEMAIL\tROLE")
	for _, m := range team.Members {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Name, m.Email, m.Role)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	messages, err := a.client.Messages(ctx, team.ID)
	if err == nil && len(messages) > 0 {
		fmt.Fprintln(out, "\nRecent chat:")
		if len(messages) > 5 {
			messages = messages[len(messages)-5:]
		}
		for _, m := range messages {
			fmt.Fprintf(out, "  [%s] %s: %s\n",
				m.Timestamp.Local().Format("Jan 02 15:04"), m.SenderName, m.Message)
		}
	}
	return nil
}

func runTeamsInvite(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.client.InviteMember(ctx, args[0], args[1]); err != nil {
		return fmt.Errorf("%s", api.UserMessage(err))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Invitation sent to %s.\n", args[1])
	return nil
}
