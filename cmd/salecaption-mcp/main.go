package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	arbor_models "github.com/ternarybob/arbor/models"

	"github.com/ternarybob/salecaption/internal/app"
	"github.com/ternarybob/salecaption/internal/common"
)

func main() {
	// Load configuration
	var configPaths []string
	if configPath := os.Getenv("SALECAPTION_CONFIG"); configPath != "" {
		configPaths = append(configPaths, configPath)
	} else if _, err := os.Stat("salecaption.toml"); err == nil {
		configPaths = append(configPaths, "salecaption.toml")
	}

	config, err := common.LoadFromFiles(configPaths...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize minimal logger for MCP server (console only, no file output)
	logger := arbor.NewLogger().WithConsoleWriter(arbor_models.WriterConfiguration{
		Type:             arbor_models.LogWriterTypeConsole,
		TimeFormat:       "15:04:05",
		DisableTimestamp: false,
	}).WithLevelFromString("warn") // Minimal logging to avoid cluttering MCP stdio

	application, err := app.New(context.Background(), config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer application.Close()

	// Create MCP server
	mcpServer := server.NewMCPServer(
		"salecaption",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)
	registerTools(mcpServer, application)

	// Start server (blocks on stdio)
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal().Err(err).Msg("MCP server failed")
	}
}

// registerTools adds every pipeline tool to the server
func registerTools(s *server.MCPServer, application *app.App) {
	logger := application.Logger

	// Catalog and reference tools
	s.AddTool(createListStoresTool(), handleListStores(application, logger))
	s.AddTool(createResolveSaleDatesTool(), handleResolveSaleDates(application, logger))
	s.AddTool(createHolidayContextTool(), handleHolidayContext(application, logger))
	s.AddTool(createNormalizePriceTool(), handleNormalizePrice(logger))

	// Session tools
	s.AddTool(createAnalyzeMediaTool(), handleAnalyzeMedia(application, logger))
	s.AddTool(createEditItemTool(), handleEditItem(application, logger))
	s.AddTool(createGenerateCaptionsTool(), handleGenerateCaptions(application, logger))
	s.AddTool(createReviewReportTool(), handleReviewReport(application, logger))
}
