package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gtnao/troccomcp/internal/trocco/client"
	"github.com/gtnao/troccomcp/internal/trocco/common"
)

func testLogger() *common.Logger {
	return common.NewSilentLogger()
}

func testAPIClient(baseURL string) *client.Client {
	return client.New(common.TroccoConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Timeout: "30s",
	}, testLogger())
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) != 1 {
		t.Fatalf("Expected a single content block, got %d", len(result.Content))
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("Expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestHandleListConnections_Success(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/connections/bigquery" {
			t.Errorf("Expected /connections/bigquery, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[{"id":"10","name":"analytics","description":"BQ prod","project_id":"hidden"}],"next_cursor":null}`))
	}))
	defer mockServer.Close()

	handler := handleListConnections(testAPIClient(mockServer.URL), testLogger())

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{
		"connectionType": "bigquery",
	}

	result, err := handler(context.Background(), request)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("Expected success, got error: %v", result.Content)
	}

	// Output is pretty-printed JSON containing only the projected fields
	var connections []map[string]interface{}
	if err := json.Unmarshal([]byte(resultText(t, result)), &connections); err != nil {
		t.Fatalf("Result is not valid JSON: %v", err)
	}
	if len(connections) != 1 {
		t.Fatalf("Expected 1 connection, got %d", len(connections))
	}
	if len(connections[0]) != 3 {
		t.Errorf("Expected exactly {id, name, description}, got %v", connections[0])
	}
	if connections[0]["id"] != "10" || connections[0]["name"] != "analytics" {
		t.Errorf("Unexpected projection: %v", connections[0])
	}
}

func TestHandleListConnections_EmptyListing(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[],"next_cursor":null}`))
	}))
	defer mockServer.Close()

	handler := handleListConnections(testAPIClient(mockServer.URL), testLogger())

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{
		"connectionType": "salesforce",
	}

	result, err := handler(context.Background(), request)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("Expected success, got error: %v", result.Content)
	}
	if got := strings.TrimSpace(resultText(t, result)); got != "[]" {
		t.Errorf("Expected empty JSON array, got %q", got)
	}
}

func TestHandleListConnections_MissingType(t *testing.T) {
	handler := handleListConnections(testAPIClient("http://localhost:1"), testLogger())

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{}

	result, err := handler(context.Background(), request)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("Expected error result for missing connectionType")
	}
}

func TestHandleListConnections_InvalidType_NoNetworkCall(t *testing.T) {
	calls := 0
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"items":[],"next_cursor":null}`))
	}))
	defer mockServer.Close()

	handler := handleListConnections(testAPIClient(mockServer.URL), testLogger())

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{
		"connectionType": "redshift",
	}

	result, err := handler(context.Background(), request)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("Expected error result for unknown connection type")
	}
	if !strings.Contains(resultText(t, result), "redshift") {
		t.Error("Error should name the offending value")
	}
	if calls != 0 {
		t.Errorf("Expected zero network calls, got %d", calls)
	}
}

func TestHandleListConnections_ServerError(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/connections/bigquery" {
			t.Errorf("Expected /connections/bigquery, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("Expected limit=5, got %q", got)
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer mockServer.Close()

	handler := handleListConnections(testAPIClient(mockServer.URL), testLogger())

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{
		"connectionType": "bigquery",
	}

	result, err := handler(context.Background(), request)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("Expected error result for 500 response")
	}
	if !strings.Contains(resultText(t, result), "500") {
		t.Errorf("Error should reference status 500, got %q", resultText(t, result))
	}
}

func TestHandleCreateDatamartDefinition_Success(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/datamart_definitions" {
			t.Errorf("Expected /datamart_definitions, got %s", r.URL.Path)
		}

		// Outbound body uses the API's snake_case convention one-to-one
		body, _ := io.ReadAll(r.Body)
		var req map[string]interface{}
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("Request body is not valid JSON: %v", err)
		}
		if req["name"] != "daily_sales" {
			t.Errorf("Expected name=daily_sales, got %v", req["name"])
		}
		if req["data_warehouse_type"] != "bigquery" {
			t.Errorf("Expected data_warehouse_type=bigquery, got %v", req["data_warehouse_type"])
		}
		if req["is_runnable_concurrently"] != true {
			t.Errorf("Expected is_runnable_concurrently=true, got %v", req["is_runnable_concurrently"])
		}
		opt, ok := req["datamart_bigquery_option"].(map[string]interface{})
		if !ok {
			t.Fatalf("Expected datamart_bigquery_option object, got %v", req["datamart_bigquery_option"])
		}
		if opt["bigquery_connection_id"] != float64(3) {
			t.Errorf("Expected bigquery_connection_id=3, got %v", opt["bigquery_connection_id"])
		}
		if opt["query_mode"] != "insert" {
			t.Errorf("Expected query_mode=insert, got %v", opt["query_mode"])
		}
		if opt["write_disposition"] != "truncate" {
			t.Errorf("Expected write_disposition=truncate, got %v", opt["write_disposition"])
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": 101,
			"name": "daily_sales",
			"data_warehouse_type": "bigquery",
			"description": "daily sales rollup",
			"is_runnable_concurrently": true,
			"datamart_bigquery_option": {
				"bigquery_connection_id": 3,
				"query_mode": "insert",
				"query": "SELECT * FROM sales",
				"destination_dataset": "marts",
				"destination_table": "daily_sales",
				"write_disposition": "truncate"
			}
		}`))
	}))
	defer mockServer.Close()

	handler := handleCreateDatamartDefinition(testAPIClient(mockServer.URL), testLogger())

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{
		"name":                   "daily_sales",
		"dataWarehouseType":      "bigquery",
		"description":            "daily sales rollup",
		"isRunnableConcurrently": true,
		"datamartBigqueryOption": map[string]interface{}{
			"connectionId":       3,
			"queryMode":          "insert",
			"query":              "SELECT * FROM sales",
			"destinationDataset": "marts",
			"destinationTable":   "daily_sales",
			"writeDisposition":   "truncate",
		},
	}

	result, err := handler(context.Background(), request)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("Expected success, got error: %v", result.Content)
	}

	// Inbound mapping reproduces the semantic values under the tool convention
	var created map[string]interface{}
	if err := json.Unmarshal([]byte(resultText(t, result)), &created); err != nil {
		t.Fatalf("Result is not valid JSON: %v", err)
	}
	if created["id"] != float64(101) {
		t.Errorf("Expected id=101, got %v", created["id"])
	}
	if created["dataWarehouseType"] != "bigquery" {
		t.Errorf("Expected dataWarehouseType=bigquery, got %v", created["dataWarehouseType"])
	}
	if created["isRunnableConcurrently"] != true {
		t.Errorf("Expected isRunnableConcurrently=true, got %v", created["isRunnableConcurrently"])
	}
	opt, ok := created["datamartBigqueryOption"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected datamartBigqueryOption object, got %v", created["datamartBigqueryOption"])
	}
	if opt["connectionId"] != float64(3) {
		t.Errorf("Expected connectionId=3, got %v", opt["connectionId"])
	}
	if opt["destinationTable"] != "daily_sales" {
		t.Errorf("Expected destinationTable=daily_sales, got %v", opt["destinationTable"])
	}
	for _, wireKey := range []string{"data_warehouse_type", "bigquery_connection_id", "query_mode"} {
		if _, present := created[wireKey]; present {
			t.Errorf("Tool output must not leak wire field %q", wireKey)
		}
	}
}

func TestHandleCreateDatamartDefinition_ValidationError_NoNetworkCall(t *testing.T) {
	calls := 0
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer mockServer.Close()

	handler := handleCreateDatamartDefinition(testAPIClient(mockServer.URL), testLogger())

	cases := []struct {
		name      string
		arguments map[string]interface{}
		wantField string
	}{
		{
			name:      "missing name",
			arguments: map[string]interface{}{"dataWarehouseType": "bigquery"},
			wantField: "name",
		},
		{
			name:      "unknown warehouse type",
			arguments: map[string]interface{}{"name": "x", "dataWarehouseType": "redshift"},
			wantField: "dataWarehouseType",
		},
		{
			name: "bad query mode",
			arguments: map[string]interface{}{
				"name":              "x",
				"dataWarehouseType": "bigquery",
				"datamartBigqueryOption": map[string]interface{}{
					"connectionId": 1,
					"queryMode":    "upsert",
					"query":        "SELECT 1",
				},
			},
			wantField: "queryMode",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			request := mcp.CallToolRequest{}
			request.Params.Arguments = tc.arguments

			result, err := handler(context.Background(), request)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !result.IsError {
				t.Fatal("Expected validation error result")
			}
			if !strings.Contains(resultText(t, result), tc.wantField) {
				t.Errorf("Error should name field %q, got %q", tc.wantField, resultText(t, result))
			}
		})
	}

	if calls != 0 {
		t.Errorf("Expected zero network calls, got %d", calls)
	}
}

func TestHandleCreateDatamartDefinition_ServerError(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer mockServer.Close()

	handler := handleCreateDatamartDefinition(testAPIClient(mockServer.URL), testLogger())

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{
		"name":              "dup",
		"dataWarehouseType": "bigquery",
	}

	result, err := handler(context.Background(), request)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("Expected error result for 422 response")
	}
	if !strings.Contains(resultText(t, result), "422") {
		t.Errorf("Error should reference the status code, got %q", resultText(t, result))
	}
}

func TestHandleGetVersion(t *testing.T) {
	cfg := common.NewDefaultConfig()
	handler := handleGetVersion(cfg)

	result, err := handler(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("Expected success, got error: %v", result.Content)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "TROCCO MCP Server") {
		t.Error("Result should contain the server name")
	}
	if !strings.Contains(text, common.GetVersion()) {
		t.Error("Result should contain the version")
	}
	if !strings.Contains(text, "https://trocco.io/api") {
		t.Error("Result should contain the configured API base URL")
	}
}
