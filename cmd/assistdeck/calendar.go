package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/xenonnoble69/assistdeck-frontend/internal/api"
	"github.com/xenonnoble69/assistdeck-frontend/internal/deck"
	"github.com/xenonnoble69/assistdeck-frontend/internal/filter"
)

var (
	calendarJSONOutput bool
	calendarUpcoming   int

	eventCreateDescription string
	eventCreateStart       string
	eventCreateEnd         string
	eventCreateAllDay      bool
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Manage calendar events",
	RunE:  runCalendarList,
}

var calendarAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create an event",
	Args:  cobra.ExactArgs(1),
	RunE:  runCalendarAdd,
}

var calendarDeleteCmd = &cobra.Command{
	Use:   "delete <event-id>",
	Short: "Delete an event",
	Args:  cobra.ExactArgs(1),
	RunE:  runCalendarDelete,
}

func init() {
	calendarCmd.PersistentFlags().BoolVar(&calendarJSONOutput, "json", false, "Output in JSON format")
	calendarCmd.Flags().IntVar(&calendarUpcoming, "upcoming", 0, "Show only the next N events")

	calendarAddCmd.Flags().StringVar(&eventCreateDescription, "description", "", "Event description")
	calendarAddCmd.Flags().StringVar(&eventCreateStart, "start", "", "Start time (YYYY-MM-DD HH:MM)")
	calendarAddCmd.Flags().StringVar(&eventCreateEnd, "end", "", "End time (YYYY-MM-DD HH:MM)")
	calendarAddCmd.Flags().BoolVar(&eventCreateAllDay, "all-day", false, "All-day event")

	calendarCmd.AddCommand(calendarAddCmd)
	calendarCmd.AddCommand(calendarDeleteCmd)
	rootCmd.AddCommand(calendarCmd)
}

func runCalendarList(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	events, err := a.client.Events(ctx)
	if err != nil {
		return fmt.Errorf("%s", api.UserMessage(err))
	}

	if calendarUpcoming > 0 {
		events = filter.Upcoming(events, time.Now(), calendarUpcoming)
	} else {
		events = filter.SortEventsByStart(events)
	}

	if calendarJSONOutput {
		return printJSON(cmd.OutOrStdout(), events)
	}
	return printEventsTable(cmd.OutOrStdout(), events)
}

func printEventsTable(w io.Writer, events []deck.Event) error {
	if len(events) == 0 {
		fmt.Fprintln(w, "No events.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSTART\tEND")
	for _, e := range events {
		start := e.StartTime.Local().Format("2006-01-02 15:04")
		end := "-"
		if e.AllDay {
			start = e.StartTime.Local().Format("2006-01-02") + " (all day)"
		} else if !e.EndTime.IsZero() {
			end = e.EndTime.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ID, e.Title, start, end)
	}
	return tw.Flush()
}

func runCalendarAdd(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if eventCreateStart == "" {
		return fmt.Errorf("--start is required")
	}
	start, err := parseCLITime(eventCreateStart)
	if err != nil {
		return fmt.Errorf("invalid start time: %w", err)
	}

	end := start.Add(time.Hour)
	if eventCreateEnd != "" {
		if end, err = parseCLITime(eventCreateEnd); err != nil {
			return fmt.Errorf("invalid end time: %w", err)
		}
	}

	if err := a.client.CreateEvent(ctx, api.EventParams{
		Title:       args[0],
		Description: eventCreateDescription,
		StartTime:   start.UTC().Format(time.RFC3339),
		EndTime:     end.UTC().Format(time.RFC3339),
		AllDay:      eventCreateAllDay,
	}); err != nil {
		return fmt.Errorf("%s", api.UserMessage(err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Event created.")
	return nil
}

func parseCLITime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

func runCalendarDelete(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.client.DeleteEvent(ctx, args[0]); err != nil {
		return fmt.Errorf("%s", api.UserMessage(err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Event deleted.")
	return nil
}
