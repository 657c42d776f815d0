// Command mcp-health serves the patient-data tools of the health advisor over
// MCP on stdio. The API server starts it when advisor.tool_command points at
// this binary.
//
// Usage:
//
//	./mcp-health          # Start MCP server (stdio)
//	./mcp-health --help   # Show help
package main

import (
	"fmt"
	"os"

	"cardiomed/internal/bpreminder"
	"cardiomed/internal/config"
	"cardiomed/internal/database"
	"cardiomed/internal/healthtools"
	"cardiomed/internal/repository"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--help", "-h":
			printHelp()
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the protocol
	logCfg := zap.NewProductionConfig()
	logCfg.OutputPaths = []string{"stderr"}
	logCfg.EncoderConfig.TimeKey = "timestamp"
	logCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if level, err := zapcore.ParseLevel(cfg.Log.Level); err == nil {
		logCfg.Level = zap.NewAtomicLevelAt(level)
	}
	logger, err := logCfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	logger = logger.With(zap.String("service_name", "cardiomed-mcp-health"))
	defer logger.Sync()

	db, err := database.Open(cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer database.Close(db)

	scheduler := bpreminder.NewScheduler(repository.NewBPReminderRepository(db), logger)
	svc := healthtools.NewService(
		repository.NewUserRepository(db),
		repository.NewReadingRepository(db),
		scheduler,
	)

	s, err := healthtools.NewMCPServer(svc)
	if err != nil {
		logger.Fatal("Failed to build MCP server", zap.Error(err))
	}

	logger.Info("MCP health tool server starting")
	if err := server.ServeStdio(s); err != nil {
		logger.Error("Server error", zap.Error(err))
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(`MCP Health Server - patient data tools via MCP protocol

USAGE:
    mcp-health          Start MCP server (communicates via stdio)
    mcp-health --help   Show this help

ENVIRONMENT:
    Uses the same configuration as the API server (.env, CARDIOMED_CONFIG,
    DATABASE_* / DB_* variables). Logs are written to stderr.

TOOLS:
    get_user_profile            Patient profile and BP targets
    get_recent_bp_readings      Latest readings with their category
    get_upcoming_bp_reminders   Pending BP checks in the next hours
    classify_blood_pressure     Category and advice for a reading

CONFIGURATION:
    Point the API server at this binary:
        ADVISOR_TOOL_COMMAND=/path/to/mcp-health`)
}
