package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xenonnoble69/assistdeck-frontend/internal/api"
	"github.com/xenonnoble69/assistdeck-frontend/internal/deck"
	"github.com/xenonnoble69/assistdeck-frontend/internal/filter"
)

var (
	goalsJSONOutput bool
	goalsQuery      string
	goalsStatus     string
	goalsPriority   string
	goalsSort       string

	goalCreateDescription string
	goalCreatePriority    string
	goalCreateDeadline    string
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Manage goals",
	RunE:  runGoalsList,
}

var goalsCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalsCreate,
}

var goalsProgressCmd = &cobra.Command{
	Use:   "progress <goal-id> <percent>",
	Short: "Set a goal's progress",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalsProgress,
}

var goalsDoneCmd = &cobra.Command{
	Use:   "done <goal-id>",
	Short: "Mark a goal completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalsDone,
}

var goalsDeleteCmd = &cobra.Command{
	Use:   "delete <goal-id>",
	Short: "Delete a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalsDelete,
}

func init() {
	goalsCmd.PersistentFlags().BoolVar(&goalsJSONOutput, "json", false, "Output in JSON format")
	goalsCmd.Flags().StringVar(&goalsQuery, "search", "", "Filter by title/description substring")
	goalsCmd.Flags().StringVar(&goalsStatus, "status", "", "Filter by status: pending, in_progress, completed")
	goalsCmd.Flags().StringVar(&goalsPriority, "priority", "", "Filter by priority: high, medium, low")
	goalsCmd.Flags().StringVar(&goalsSort, "sort", "created", "Sort order: created, priority, deadline")

	goalsCreateCmd.Flags().StringVar(&goalCreateDescription, "description", "", "Goal description")
	goalsCreateCmd.Flags().StringVar(&goalCreatePriority, "priority", "medium", "Priority: high, medium, low")
	goalsCreateCmd.Flags().StringVar(&goalCreateDeadline, "deadline", "", "Deadline (YYYY-MM-DD)")

	goalsCmd.AddCommand(goalsCreateCmd)
	goalsCmd.AddCommand(goalsProgressCmd)
	goalsCmd.AddCommand(goalsDoneCmd)
	goalsCmd.AddCommand(goalsDeleteCmd)
	rootCmd.AddCommand(goalsCmd)
}

func runGoalsList(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	goals, err := a.client.Goals(ctx)
	if err != nil {
		return fmt.Errorf("%s", api.UserMessage(err))
	}

	goals = filter.Search(goals, goalsQuery, filter.GoalFields)
	goals = filter.Apply(goals, filter.ByStatus(deck.GoalStatus(goalsStatus)))
	goals = filter.Apply(goals, filter.ByPriority(deck.Priority(goalsPriority)))

	switch goalsSort {
	case "priority":
		goals = filter.SortGoalsByPriority(goals)
	case "deadline":
		goals = filter.SortGoalsByDeadline(goals)
	default:
		goals = filter.SortGoalsByCreated(goals)
	}

	if goalsJSONOutput {
		return printJSON(cmd.OutOrStdout(), goals)
	}
	return printGoalsTable(cmd.OutOrStdout(), goals)
}

func printGoalsTable(w io.Writer, goals []deck.Goal) error {
	if len(goals) == 0 {
		fmt.Fprintln(w, "No goals.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRIORITY\tSTATUS\tPROGRESS\tDEADLINE")
	for _, g := range goals {
		deadline := "-"
		if !g.Deadline.IsZero() {
			deadline = g.Deadline.Local().Format("2006-01-02")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d%%\t%s\n",
			g.ID, g.Title, g.Priority, g.Status(), g.Progress, deadline)
	}
	return tw.Flush()
}

func runGoalsCreate(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.client.CreateGoal(ctx, api.GoalParams{
		Title:       args[0],
		Description: goalCreateDescription,
		Priority:    goalCreatePriority,
		Deadline:    api.NormalizeDeadline(goalCreateDeadline),
	}); err != nil {
		return fmt.Errorf("%s", api.UserMessage(err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Goal created.")
	return nil
}

func runGoalsProgress(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	percent, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid progress %q", args[1])
	}

	if err := a.client.UpdateGoalProgress(ctx, args[0], percent); err != nil {
		return fmt.Errorf("%s", api.UserMessage(err))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Progress set to %d%%.\n", deck.BumpProgress(percent, 0))
	return nil
}

func runGoalsDone(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.client.UpdateGoalProgress(ctx, args[0], 100); err != nil {
		return fmt.Errorf("%s", api.UserMessage(err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Goal completed.")
	return nil
}

func runGoalsDelete(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.client.DeleteGoal(ctx, args[0]); err != nil {
		return fmt.Errorf("%s", api.UserMessage(err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Goal deleted.")
	return nil
}
