package main

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gtnao/troccomcp/internal/trocco/client"
	"github.com/gtnao/troccomcp/internal/trocco/common"
	"github.com/gtnao/troccomcp/internal/trocco/models"
)

// registerTools registers all MCP tools on the server, wiring each to a
// handler that calls the TROCCO API via the client.
func registerTools(s *server.MCPServer, api *client.Client, cfg *common.Config, logger *common.Logger) {
	s.AddTool(createGetVersionTool(), handleGetVersion(cfg))
	s.AddTool(createListConnectionsTool(), handleListConnections(api, logger))
	s.AddTool(createCreateDatamartDefinitionTool(), handleCreateDatamartDefinition(api, logger))
}

// --- Tool definitions ---

func createGetVersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the TROCCO MCP server version and configured API endpoint. Use this to verify the server is running."),
	)
}

func createListConnectionsTool() mcp.Tool {
	return mcp.NewTool("list_connections",
		mcp.WithDescription("List TROCCO connections of a given type. Returns the id, name, and description of every connection, fetching all pages."),
		mcp.WithString("connectionType",
			mcp.Required(),
			mcp.Enum(models.ConnectionTypeStrings()...),
			mcp.Description("Type of connection to list (e.g., 'bigquery', 'snowflake', 'mysql')"),
		),
	)
}

func createCreateDatamartDefinitionTool() mcp.Tool {
	return mcp.NewTool("create_datamart_definition",
		mcp.WithDescription("Create a TROCCO datamart definition — a materialization query job against a data warehouse."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the datamart definition"),
		),
		mcp.WithString("dataWarehouseType",
			mcp.Required(),
			mcp.Enum(models.DataWarehouseTypeStrings()...),
			mcp.Description("Target data warehouse type (currently only 'bigquery')"),
		),
		mcp.WithString("description",
			mcp.Description("Description of the datamart definition"),
		),
		mcp.WithBoolean("isRunnableConcurrently",
			mcp.Description("Whether multiple runs of this definition may execute concurrently (default: false)"),
		),
		mcp.WithObject("datamartBigqueryOption",
			mcp.Description("BigQuery materialization settings. Required if dataWarehouseType is 'bigquery'."),
			mcp.Properties(map[string]any{
				"connectionId": map[string]any{
					"type":        "number",
					"description": "ID of the TROCCO BigQuery connection to run the query with",
				},
				"queryMode": map[string]any{
					"type":        "string",
					"enum":        []string{models.QueryModeInsert, models.QueryModeQuery},
					"description": "'insert' writes results to a destination table; 'query' runs the SQL as-is",
				},
				"query": map[string]any{
					"type":        "string",
					"description": "SQL text to execute",
				},
				"destinationDataset": map[string]any{
					"type":        "string",
					"description": "Destination dataset (insert mode)",
				},
				"destinationTable": map[string]any{
					"type":        "string",
					"description": "Destination table (insert mode)",
				},
				"writeDisposition": map[string]any{
					"type":        "string",
					"enum":        []string{models.WriteDispositionAppend, models.WriteDispositionTruncate},
					"description": "'append' adds rows to the destination table; 'truncate' replaces it (insert mode)",
				},
			}),
		),
	)
}
