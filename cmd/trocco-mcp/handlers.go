package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gtnao/troccomcp/internal/trocco/client"
	"github.com/gtnao/troccomcp/internal/trocco/common"
	"github.com/gtnao/troccomcp/internal/trocco/models"
)

// --- Helpers ---

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

// jsonResult pretty-prints a value as JSON in a single text content block.
func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(fmt.Sprintf("Error encoding result: %v", err)), nil
	}
	return textResult(string(data)), nil
}

// --- Handlers ---

func handleGetVersion(cfg *common.Config) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := fmt.Sprintf("TROCCO MCP Server\nVersion: %s\nBuild: %s\nCommit: %s\nAPI Base URL: %s\nStatus: OK",
			common.GetVersion(), common.GetBuild(), common.GetGitCommit(), cfg.Trocco.BaseURL)
		return textResult(result), nil
	}
}

func handleListConnections(api *client.Client, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		log := logger.WithCorrelationId(uuid.NewString())

		connectionType, err := request.RequireString("connectionType")
		if err != nil || connectionType == "" {
			return errorResult("Error: connectionType parameter is required"), nil
		}

		typ := models.ConnectionType(connectionType)
		if !typ.Valid() {
			return errorResult(fmt.Sprintf("Error: invalid connectionType %q — must be one of %v",
				connectionType, models.ConnectionTypeStrings())), nil
		}

		log.Debug().Str("tool", "list_connections").Str("connection_type", connectionType).Msg("Tool invocation")

		connections, err := api.ListConnections(ctx, typ)
		if err != nil {
			log.Error().Err(err).Str("tool", "list_connections").Msg("Tool invocation failed")
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}

		return jsonResult(connections)
	}
}

func handleCreateDatamartDefinition(api *client.Client, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		log := logger.WithCorrelationId(uuid.NewString())

		var input models.CreateDatamartDefinitionInput
		if err := request.BindArguments(&input); err != nil {
			return errorResult(fmt.Sprintf("Error: invalid arguments: %v", err)), nil
		}
		if err := input.Validate(); err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}

		log.Debug().Str("tool", "create_datamart_definition").Str("name", input.Name).Msg("Tool invocation")

		definition, err := api.CreateDatamartDefinition(ctx, input.ToRequest())
		if err != nil {
			log.Error().Err(err).Str("tool", "create_datamart_definition").Msg("Tool invocation failed")
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}

		return jsonResult(models.DatamartDefinitionResultFrom(definition))
	}
}
