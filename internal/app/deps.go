package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/openai/openai-go/v3"

	"image-identifier/internal/config"
	"image-identifier/internal/llm"
	"image-identifier/internal/logger"
	"image-identifier/internal/pipeline"
	"image-identifier/internal/session"
)

// Deps bundles the process-wide runtime dependencies. The model client is
// built once here and shared by every request.
type Deps struct {
	Config   config.Config
	Log      *slog.Logger
	LLM      llm.Client
	Pipeline *pipeline.Pipeline
	Sessions session.Store
}

// Build loads env, config, and shared components.
func Build(ctx context.Context) (Deps, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Deps{}, fmt.Errorf("failed to load environment variables: %w", err)
	}
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	llmClient, err := buildLLM(ctx, cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize LLM: %w", err)
	}
	sessions, err := buildSessions(cfg, log)
	if err != nil {
		closeLLM(llmClient, log)
		return Deps{}, fmt.Errorf("failed to initialize session store: %w", err)
	}
	return New(cfg, log, llmClient, sessions), nil
}

// New assembles Deps from already constructed components.
func New(cfg config.Config, log *slog.Logger, client llm.Client, sessions session.Store) Deps {
	return Deps{
		Config:   cfg,
		Log:      log,
		LLM:      client,
		Pipeline: pipeline.New(client, log),
		Sessions: sessions,
	}
}

// Close releases the model client and the session store.
func (d Deps) Close() {
	closeLLM(d.LLM, d.Log)
	if d.Sessions != nil {
		if err := d.Sessions.Close(); err != nil {
			d.Log.Warn("failed to close session store", "err", err)
		}
	}
}

func closeLLM(client llm.Client, log *slog.Logger) {
	if c, ok := client.(io.Closer); ok {
		if err := c.Close(); err != nil {
			log.Warn("failed to close LLM client", "err", err)
		}
	}
}

func buildLLM(ctx context.Context, cfg config.Config, log *slog.Logger) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "gemini":
		if cfg.GeminiKey == "" {
			return nil, fmt.Errorf("GOOGLE_GEMINI_API_KEY is required when LLM_PROVIDER=gemini")
		}
		client, err := llm.NewGeminiClient(ctx, cfg.GeminiKey, cfg.GeminiModel, cfg.LLMTimeout)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
		}
		log.Info("using Gemini LLM client", "model", cfg.GeminiModel)
		return client, nil
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER=openai")
		}
		client, err := llm.NewOpenAIClient(cfg.OpenAIKey, openai.ChatModel(cfg.OpenAIModel), cfg.LLMTimeout)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
		}
		log.Info("using OpenAI LLM client", "model", cfg.OpenAIModel)
		return client, nil
	default:
		return nil, fmt.Errorf("invalid LLM_PROVIDER: %s (valid options: gemini, openai)", cfg.LLMProvider)
	}
}

func buildSessions(cfg config.Config, log *slog.Logger) (session.Store, error) {
	switch cfg.SessionProvider {
	case "memory":
		log.Info("using in-memory session store", "ttl", cfg.SessionTTL)
		return session.NewMemoryStore(cfg.SessionTTL), nil
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("REDIS_ADDR is required when SESSION_PROVIDER=redis")
		}
		store, err := session.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.SessionTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("using Redis session store", "addr", cfg.RedisAddr, "ttl", cfg.SessionTTL)
		return store, nil
	default:
		return nil, fmt.Errorf("invalid SESSION_PROVIDER: %s (valid options: memory, redis)", cfg.SessionProvider)
	}
}
