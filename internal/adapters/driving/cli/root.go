// Package cli implements the command-line driving adapter.
// Commands are thin translation layers: they parse flags and arguments,
// call the driving port services and render the results.
package cli

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/adapters/driven/config/file"
	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/adapters/driven/crypto/aesgcm"
	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/adapters/driven/embedding/ollama"
	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/adapters/driven/embedding/openai"
	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/adapters/driven/generative/gemini"
	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/adapters/driven/storage/sqlite"
	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/adapters/driven/vectorindex/flat"
	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/adapters/driven/webhook"
	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/ports/driven"
	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/ports/driving"
	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/services"
	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var verbose bool

// Services used by the commands. Populated by initServices on startup;
// tests inject mocks directly.
var (
	indexService    driving.IndexService
	queryService    driving.QueryService
	eventDispatcher driving.EventDispatcher
	clinicalStore   driven.ClinicalStore
	subscriberStore driven.SubscriberStore
	textCipher      driven.TextCipher
)

var rootCmd = &cobra.Command{
	Use:   "hopequre",
	Short: "Clinical intelligence and session management",
	Long: `HopeQure manages encrypted clinical session records, keeps a
retrieval index over them for grounded question answering, and notifies
registered webhook subscribers when clinical events occur.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)

		// Tests wire mock services before Execute
		if clinicalStore != nil {
			return nil
		}
		return initServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initServices wires the full adapter stack behind the driving ports.
func initServices() error {
	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()

	cfg, err := file.NewConfigStore("")
	if err != nil {
		return err
	}

	store, err := sqlite.NewStore(cfg.GetString("data.dir"))
	if err != nil {
		return err
	}
	clinicalStore = store.ClinicalStore()
	subscriberStore = store.SubscriberStore()

	aesKey := os.Getenv("AES_SECRET_KEY")
	if aesKey == "" {
		return errors.New("AES_SECRET_KEY missing in environment")
	}
	cipher, err := aesgcm.NewCipher(aesKey)
	if err != nil {
		return err
	}
	textCipher = cipher

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return err
	}

	generative, err := gemini.NewService(gemini.Config{
		APIKey: os.Getenv("GEMINI_API_KEY"),
		Model:  cfg.GetString("gemini.model"),
	})
	if err != nil {
		return err
	}

	indexStore, err := flat.NewStore(cfg.GetString("data.dir"))
	if err != nil {
		return err
	}

	prompts, err := file.NewPromptStore("")
	if err != nil {
		return err
	}

	sender := webhook.NewSender(webhook.Config{
		Rate: float64(cfg.GetInt("webhook.rate")),
	})

	indexService = services.NewIndexerService(clinicalStore, textCipher, embedder, indexStore)

	engine := services.NewQueryEngine(indexStore, embedder, clinicalStore, generative)
	engine.SetPromptStore(prompts)
	queryService = engine

	eventDispatcher = services.NewDispatchService(subscriberStore, sender)

	return nil
}

// newEmbedder builds the configured embedding service.
// Defaults to a local Ollama instance; set embedding.provider = "openai"
// to use the OpenAI API instead.
func newEmbedder(cfg driven.ConfigStore) (driven.EmbeddingService, error) {
	switch cfg.GetString("embedding.provider") {
	case "", "ollama":
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL:    cfg.GetString("embedding.base_url"),
			Model:      cfg.GetString("embedding.model"),
			Dimensions: cfg.GetInt("embedding.dimensions"),
		}), nil
	case "openai":
		return openai.NewEmbeddingService(openai.Config{
			APIKey:     os.Getenv("OPENAI_API_KEY"),
			Model:      cfg.GetString("embedding.model"),
			Dimensions: cfg.GetInt("embedding.dimensions"),
		})
	default:
		return nil, errors.New("unknown embedding provider: " + cfg.GetString("embedding.provider"))
	}
}
