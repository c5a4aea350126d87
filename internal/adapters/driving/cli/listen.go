package cli

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/adapters/driving/receiver"
	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/domain"
	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/logger"
)

var (
	listenAddr   string
	listenSecret string
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Run a webhook verification endpoint",
	Long: `Starts an HTTP endpoint that verifies inbound webhook notifications
against a shared secret and prints each verified event. Useful for
testing a subscriber registration end to end.`,
	RunE: runListen,
}

func init() {
	listenCmd.Flags().StringVar(&listenAddr, "addr", ":9090", "listen address")
	listenCmd.Flags().StringVar(&listenSecret, "secret", "", "shared signing secret (defaults to WEBHOOK_SECRET)")
	rootCmd.AddCommand(listenCmd)
}

func runListen(cmd *cobra.Command, _ []string) error {
	secret := listenSecret
	if secret == "" {
		secret = os.Getenv("WEBHOOK_SECRET")
	}
	if secret == "" {
		return errors.New("no signing secret: pass --secret or set WEBHOOK_SECRET")
	}

	handler := receiver.NewHandler(secret)
	handler.OnEnvelope = func(env domain.Envelope) {
		cmd.Printf("Verified %s event (timestamp %d)\n", env.Event, env.Timestamp)
	}

	mux := http.NewServeMux()
	mux.Handle("/webhook-test", handler)

	server := &http.Server{
		Addr:              listenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("Listening on %s", listenAddr)
	cmd.Printf("Webhook receiver listening on %s\n", listenAddr)
	return server.ListenAndServe()
}
