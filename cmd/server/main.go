package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/network/netpoll"
	"github.com/spf13/cobra"

	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/config"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/domain"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/handler"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/identity"
	infradb "github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/infrastructure/database"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/infrastructure/ephemeral"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/infrastructure/genai"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/infrastructure/knowledge"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/router"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/usecase"
	dbpkg "github.com/rkendel1/AI-RAG-Assistant-Chatbot/pkg/database"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/pkg/logger"
)

var (
	cfgFile string
	version = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:   "lumina-server",
	Short: "Lumina chat API server",
	Long: `Lumina is an AI chat service built on the Hertz framework.
It forwards conversations to the Gemini API, optionally grounds answers
in a Qdrant knowledge collection, and keeps authenticated conversations
in MySQL alongside an in-memory store for guest sessions.`,
	Version: version,
	Run:     runServer,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "configs/config.yaml", "path to config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func runServer(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.Setup(cfg.Log); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	slog.Info("Lumina server starting...",
		"version", version,
		"config", cfgFile,
	)

	// Route Hertz framework logs through slog.
	hertzLogger := logger.NewHertzSlogAdapter(slog.Default())
	hlog.SetLogger(hertzLogger)
	hlog.SetLevel(hlog.LevelInfo)

	// Database
	dbClient, err := dbpkg.NewClient(cfg.Database, slog.Default())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := infradb.Migrate(dbClient); err != nil {
		slog.Error("failed to migrate database schema", "error", err)
		os.Exit(1)
	}

	// User module
	userRepo := infradb.NewUserRepository(dbClient)
	userUsecase := usecase.NewUserUsecase(userRepo, slog.Default())
	userHandler := handler.NewUserHandler(userUsecase, cfg.JWT.Secret, slog.Default())

	// Conversation module
	convRepo := infradb.NewConversationRepository(dbClient)
	convUsecase := usecase.NewConversationUsecase(convRepo, slog.Default())
	convHandler := handler.NewConversationHandler(convUsecase, slog.Default())

	// Guest conversations live in memory with a TTL sweep.
	guestStore := ephemeral.NewStore(cfg.Guest.TTL)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go guestStore.Run(sweepCtx, cfg.Guest.TTL/2)

	// Completion backend
	gateway, err := genai.NewGateway(context.Background(), cfg.AI, slog.Default())
	if err != nil {
		slog.Error("failed to initialize genai gateway", "error", err)
		os.Exit(1)
	}

	// Knowledge retrieval is optional; a nil retriever disables it.
	var retriever domain.KnowledgeRetriever
	if cfg.Knowledge.Enabled {
		qr, err := knowledge.NewRetriever(cfg.Knowledge, gateway, slog.Default())
		if err != nil {
			slog.Error("failed to initialize knowledge retriever", "error", err)
			os.Exit(1)
		}
		defer qr.Close()
		retriever = qr
	} else {
		slog.Info("knowledge retrieval disabled")
	}

	// Chat module
	resolver := identity.NewResolver(cfg.JWT.Secret)
	chatUsecase := usecase.NewChatUsecase(
		convRepo,
		guestStore,
		gateway,
		retriever,
		cfg.AI.Instruction,
		cfg.Knowledge.TopK,
		slog.Default(),
	)
	chatHandler := handler.NewChatHandler(chatUsecase, resolver, slog.Default())

	healthHandler := handler.NewHealthHandler(dbClient)

	slog.Info("handlers initialized")

	h := server.Default(
		server.WithHostPorts(cfg.GetServerAddr()),
		server.WithReadTimeout(cfg.GetReadTimeout()),
		server.WithWriteTimeout(cfg.GetWriteTimeout()),
		server.WithMaxRequestBodySize(cfg.Server.MaxRequestBodySize*1024*1024),
		server.WithTransport(netpoll.NewTransporter),
	)

	router.Setup(h, cfg.Server.AllowedOrigins, userHandler, convHandler, chatHandler, healthHandler)

	slog.Info("server started successfully",
		"address", cfg.GetServerAddr(),
		"mode", cfg.Server.Mode,
	)

	go func() {
		if err := h.Run(); err != nil {
			slog.Error("server run failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := h.Shutdown(ctx); err != nil {
		slog.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}

	if err := dbpkg.Close(dbClient, slog.Default()); err != nil {
		slog.Error("failed to close database", "error", err)
	}

	slog.Info("server stopped gracefully")
}
