package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resource-allocator/internal/advisor"
	"github.com/spigell/resource-allocator/internal/ai"
	"github.com/spigell/resource-allocator/internal/ai/gemini"
	"github.com/spigell/resource-allocator/internal/app"
	"github.com/spigell/resource-allocator/internal/knowledge"
	"github.com/spigell/resource-allocator/internal/logger"
	"github.com/spigell/resource-allocator/internal/prediction"
	"github.com/spigell/resource-allocator/internal/secrets"
	"github.com/spigell/resource-allocator/internal/storage"
)

// session is everything a command needs: the loaded state behind an App and the store it persists to.
type session struct {
	app    *app.App
	store  storage.Store
	config *Config
	logger *zap.Logger
}

func newSession(ctx context.Context) *session {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(redacted(config), "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	store, err := storage.Open(storage.Config{
		Backend:    config.Storage.Backend,
		Dir:        config.Storage.Dir,
		SQLitePath: config.Storage.SQLitePath,
	})
	if err != nil {
		logger.Fatal("opening storage", zap.Error(err))
	}

	state := app.Load(ctx, store, logger)

	if config.KnowledgeFile != "" {
		kb, err := knowledge.LoadFile(config.KnowledgeFile)
		if err != nil {
			logger.Fatal("loading knowledge base", zap.Error(err), zap.String("file", config.KnowledgeFile))
		}
		state.Knowledge = kb
	}

	assistant, err := newAssistant(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("assistant is unavailable, using keyword rules and the knowledge base",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY, GEMINI_API_KEY_FILE or ai.gemini.api-key-file, or disable ai.enabled"),
		)
		assistant = nil
	}

	predictor := prediction.NewService(assistant, config.AI.Timeout, logger)
	adv := advisor.New(assistant, state.Knowledge, config.AI.Timeout, logger)

	return &session{
		app:    app.New(state, store, predictor, adv, logger),
		store:  store,
		config: config,
		logger: logger,
	}
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		s.logger.Warn("closing storage", zap.Error(err))
	}
	_ = s.logger.Sync()
}

// warn logs every persistence failure carried by err. The change itself stays applied.
func (s *session) warn(err error) {
	for _, w := range app.Warnings(err) {
		s.logger.Warn("change applied but not saved", zap.Error(w))
	}
}

// newAssistant returns a nil assistant without error when AI is disabled.
func newAssistant(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Assistant, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, err
	}

	aiLogger := logger.WithAIFields(log, "gemini", cfg.Gemini.Model).
		With(zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries))

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, aiLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewAssistant(generator, cfg.Gemini.MaxLogLength, aiLogger), nil
}

func redacted(config *Config) Config {
	copied := *config
	if config.AI != nil && config.AI.Gemini != nil && config.AI.Gemini.APIKey != "" {
		aiCopy := *config.AI
		geminiCopy := *config.AI.Gemini
		geminiCopy.APIKey = "***"
		aiCopy.Gemini = &geminiCopy
		copied.AI = &aiCopy
	}
	return copied
}

func outputJSON() bool {
	return strings.EqualFold(viper.GetString("output"), "json")
}

func printJSON(v any) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		log.Fatalf("encoding output: %s", err)
	}
}

func interactive() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
