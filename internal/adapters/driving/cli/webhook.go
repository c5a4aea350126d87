package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/domain"
)

var (
	webhookEvent  string
	webhookURL    string
	webhookSecret string

	webhookData string
)

var webhookCmd = &cobra.Command{
	Use:   "webhook",
	Short: "Manage webhook subscribers",
}

var webhookAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a webhook subscriber",
	Long: `Registers an endpoint to receive signed notifications for one event
type. Deliveries carry an HMAC-SHA256 signature computed with the
subscriber's secret; the receiver verifies it before trusting the payload.`,
	RunE: runWebhookAdd,
}

var webhookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List webhook subscribers",
	RunE:  runWebhookList,
}

var webhookDispatchCmd = &cobra.Command{
	Use:   "dispatch [event]",
	Short: "Fire an event to its subscribers",
	Long: `Manually fires a domain event. Useful for verifying a subscriber's
endpoint and signature handling before real events flow.`,
	Args: cobra.ExactArgs(1),
	RunE: runWebhookDispatch,
}

func init() {
	webhookAddCmd.Flags().StringVar(&webhookEvent, "event", "", "event type (required)")
	webhookAddCmd.Flags().StringVar(&webhookURL, "url", "", "target URL (required)")
	webhookAddCmd.Flags().StringVar(&webhookSecret, "secret", "", "signing secret (required)")
	_ = webhookAddCmd.MarkFlagRequired("event")
	_ = webhookAddCmd.MarkFlagRequired("url")
	_ = webhookAddCmd.MarkFlagRequired("secret")

	webhookDispatchCmd.Flags().StringVar(&webhookData, "data", "{}", "event payload as JSON")

	webhookCmd.AddCommand(webhookAddCmd)
	webhookCmd.AddCommand(webhookListCmd)
	webhookCmd.AddCommand(webhookDispatchCmd)
	rootCmd.AddCommand(webhookCmd)
}

func runWebhookAdd(cmd *cobra.Command, _ []string) error {
	if subscriberStore == nil {
		return errors.New("storage not configured")
	}

	sub := domain.Subscriber{
		ID:        uuid.NewString(),
		EventType: webhookEvent,
		TargetURL: webhookURL,
		Secret:    webhookSecret,
		Active:    true,
	}
	if err := subscriberStore.Save(context.Background(), sub); err != nil {
		return fmt.Errorf("save subscriber: %w", err)
	}

	cmd.Println(color.GreenString("Subscriber %s registered for %s.", sub.ID, sub.EventType))
	return nil
}

func runWebhookList(cmd *cobra.Command, _ []string) error {
	if subscriberStore == nil {
		return errors.New("storage not configured")
	}

	subs, err := subscriberStore.List(context.Background())
	if err != nil {
		return fmt.Errorf("list subscribers: %w", err)
	}

	if len(subs) == 0 {
		cmd.Println("No webhook subscribers registered.")
		return nil
	}

	for _, sub := range subs {
		state := "active"
		if !sub.Active {
			state = "inactive"
		}
		cmd.Printf("  %s  %-22s %-8s %s\n", sub.ID, sub.EventType, state, sub.TargetURL)
	}
	return nil
}

func runWebhookDispatch(cmd *cobra.Command, args []string) error {
	if eventDispatcher == nil {
		return errors.New("dispatcher not configured")
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(webhookData), &payload); err != nil {
		return fmt.Errorf("parse --data: %w", err)
	}

	eventDispatcher.Dispatch(context.Background(), args[0], payload)
	cmd.Println(color.GreenString("Event %s dispatched.", args[0]))
	return nil
}
