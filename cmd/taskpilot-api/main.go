package main

import (
	"context"
	"net/http"
	"os"

	"github.com/ncolombo/taskpilot/internal/adapters/auth"
	httpadapter "github.com/ncolombo/taskpilot/internal/adapters/http"
	"github.com/ncolombo/taskpilot/internal/adapters/llm"
	firestorestore "github.com/ncolombo/taskpilot/internal/adapters/storage/firestore"
	memstore "github.com/ncolombo/taskpilot/internal/adapters/storage/memory"
	sqlitestore "github.com/ncolombo/taskpilot/internal/adapters/storage/sqlite"
	"github.com/ncolombo/taskpilot/internal/app/agent"
	"github.com/ncolombo/taskpilot/internal/app/chat"
	"github.com/ncolombo/taskpilot/internal/app/task"
	"github.com/ncolombo/taskpilot/internal/app/tools"
	"github.com/ncolombo/taskpilot/internal/config"
	"github.com/ncolombo/taskpilot/internal/domain"
	"github.com/ncolombo/taskpilot/internal/observability"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()
	log := observability.Logger()

	// Storage: memory, SQLite or Firestore
	var (
		taskStore domain.TaskStore
		convStore domain.ConversationStore
	)
	switch cfg.StorageBackend {
	case config.StorageSQLite:
		log.Info("using sqlite storage", "path", cfg.SQLitePath)
		store, err := sqlitestore.Open(cfg.SQLitePath)
		if err != nil {
			log.Error("initializing sqlite store", "error", err)
			os.Exit(1)
		}
		defer store.Close()
		taskStore = store
		convStore = store

	case config.StorageFirestore:
		log.Info("using firestore storage", "project", cfg.GCPProjectID)
		store, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			log.Error("initializing firestore store", "error", err)
			os.Exit(1)
		}
		taskStore = store
		convStore = store

	default:
		log.Info("using in-memory storage")
		taskStore = memstore.NewTaskStore()
		convStore = memstore.NewConversationStore()
	}

	// Reasoning collaborator: mock, Gemini or OpenAI-compatible
	var llmClient domain.ReasoningClient
	switch cfg.LLMBackend {
	case config.LLMGemini:
		log.Info("using Gemini reasoning client", "model", cfg.ModelName)
		client, err := llm.NewGeminiClient(ctx, cfg.GCPProjectID, cfg.GCPLocation, cfg.ModelName)
		if err != nil {
			log.Error("initializing Gemini client", "error", err)
			os.Exit(1)
		}
		llmClient = client

	case config.LLMOpenAI:
		log.Info("using OpenAI-compatible reasoning client", "model", cfg.ModelName)
		llmClient = llm.NewOpenAIClient(llm.OpenAIConfig{
			APIKey:  cfg.OpenAIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.ModelName,
		})

	default:
		log.Info("using mock reasoning client")
		llmClient = llm.NewMock()
	}

	runner := tools.NewRunner(taskStore)
	orchestrator := agent.New(llmClient, runner)
	chatSvc := chat.NewService(convStore, orchestrator)
	taskSvc := task.NewService(taskStore)

	resolver := auth.NewStaticResolver(auth.ParseTokenList(cfg.DevTokens))
	handler := httpadapter.NewServer(chatSvc, taskSvc, resolver)

	addr := ":" + cfg.Port
	log.Info("taskpilot API listening", "addr", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
