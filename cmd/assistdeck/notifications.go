package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/xenonnoble69/assistdeck-frontend/internal/api"
	"github.com/xenonnoble69/assistdeck-frontend/internal/deck"
	"github.com/xenonnoble69/assistdeck-frontend/internal/filter"
	dsync "github.com/xenonnoble69/assistdeck-frontend/internal/sync"
)

var (
	notificationsJSONOutput bool
	notificationsUnreadOnly bool
	notificationsWatch      bool
)

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "List notifications",
	RunE:  runNotificationsList,
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read <notification-id>",
	Short: "Mark a notification read",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotificationsRead,
}

func init() {
	notificationsCmd.PersistentFlags().BoolVar(&notificationsJSONOutput, "json", false, "Output in JSON format")
	notificationsCmd.Flags().BoolVar(&notificationsUnreadOnly, "unread", false, "Show only unread notifications")
	notificationsCmd.Flags().BoolVar(&notificationsWatch, "watch", false, "Keep polling and print new notifications as they arrive")

	notificationsCmd.AddCommand(notificationsReadCmd)
	rootCmd.AddCommand(notificationsCmd)
}

func runNotificationsList(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if notificationsWatch {
		return watchNotifications(ctx, a, cmd)
	}

	notifications, err := a.client.Notifications(ctx)
	if err != nil {
		return fmt.Errorf("%s", api.UserMessage(err))
	}
	printNotifications(cmd, notifications)
	return nil
}

func printNotifications(cmd *cobra.Command, notifications []deck.Notification) {
	if notificationsUnreadOnly {
		notifications = filter.Apply(notifications, filter.Unread)
	}
	notifications = filter.SortNotifications(notifications)

	if notificationsJSONOutput {
		_ = printJSON(cmd.OutOrStdout(), notifications)
		return
	}

	if len(notifications) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No notifications.")
		return
	}
	for _, n := range notifications {
		marker := " "
		if !n.Read {
			marker = "*"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s  %s\n",
			marker, n.ID, n.Timestamp.Local().Format("Jan 02 15:04"), n.Message)
	}
}

// watchNotifications polls the backend and prints notifications that
// were not present in the previous cycle. It blocks until interrupted.
func watchNotifications(ctx context.Context, a *app, cmd *cobra.Command) error {
	collection := dsync.NewCollection[deck.Notification]()
	loader := dsync.NewLoader("notifications", collection, func(ctx context.Context) ([]deck.Notification, error) {
		return a.client.Notifications(ctx)
	})

	// Seed the baseline so only new arrivals print.
	if err := loader.Load(ctx); err != nil {
		return fmt.Errorf("%s", api.UserMessage(err))
	}
	seen := make(map[string]struct{})
	for _, n := range collection.Items() {
		seen[n.ID] = struct{}{}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Watching for notifications (%d existing, ctrl+c to stop)...\n", len(seen))

	poller := dsync.NewPoller("notifications", time.Duration(a.cfg.Poll.Interval), func(ctx context.Context) error {
		if err := loader.Load(ctx); err != nil {
			return err
		}
		for _, n := range filter.SortNotifications(collection.Items()) {
			if _, ok := seen[n.ID]; ok {
				continue
			}
			seen[n.ID] = struct{}{}
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n",
				n.Timestamp.Local().Format("15:04:05"), n.Message)
		}
		return nil
	})

	poller.Run(ctx)
	return nil
}

func runNotificationsRead(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.client.MarkNotificationRead(ctx, args[0]); err != nil {
		return fmt.Errorf("%s", api.UserMessage(err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Marked read.")
	return nil
}
