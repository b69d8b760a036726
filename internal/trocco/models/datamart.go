package models

import "fmt"

// DataWarehouseType identifies the warehouse a datamart definition targets.
// Currently only BigQuery is supported by the API.
type DataWarehouseType string

const (
	DataWarehouseTypeBigquery DataWarehouseType = "bigquery"
)

// DataWarehouseTypes returns the closed set of supported warehouse types.
func DataWarehouseTypes() []DataWarehouseType {
	return []DataWarehouseType{DataWarehouseTypeBigquery}
}

// DataWarehouseTypeStrings returns the supported warehouse types as strings.
func DataWarehouseTypeStrings() []string {
	types := DataWarehouseTypes()
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

// Valid reports whether t belongs to the closed warehouse-type set.
func (t DataWarehouseType) Valid() bool {
	for _, known := range DataWarehouseTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Query modes for the BigQuery datamart option.
const (
	QueryModeInsert = "insert"
	QueryModeQuery  = "query"
)

// Write dispositions for insert-mode BigQuery datamarts.
const (
	WriteDispositionAppend   = "append"
	WriteDispositionTruncate = "truncate"
)

// ValidationError reports a tool input that fails its declared shape,
// naming the offending field. Raised before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// --- Wire shapes (snake_case, as the TROCCO API expects) ---

// DatamartBigqueryOption is the BigQuery option block as it appears on the
// wire, in both the create request and the API response.
type DatamartBigqueryOption struct {
	BigqueryConnectionID int64  `json:"bigquery_connection_id"`
	QueryMode            string `json:"query_mode"`
	Query                string `json:"query"`
	DestinationDataset   string `json:"destination_dataset,omitempty"`
	DestinationTable     string `json:"destination_table,omitempty"`
	WriteDisposition     string `json:"write_disposition,omitempty"`
}

// CreateDatamartDefinitionRequest is the POST /datamart_definitions body.
type CreateDatamartDefinitionRequest struct {
	Name                   string                  `json:"name"`
	DataWarehouseType      string                  `json:"data_warehouse_type"`
	Description            string                  `json:"description,omitempty"`
	IsRunnableConcurrently bool                    `json:"is_runnable_concurrently"`
	DatamartBigqueryOption *DatamartBigqueryOption `json:"datamart_bigquery_option,omitempty"`
}

// DatamartDefinition is a datamart definition as returned by the API.
type DatamartDefinition struct {
	ID                     int64                   `json:"id"`
	Name                   string                  `json:"name"`
	DataWarehouseType      string                  `json:"data_warehouse_type"`
	Description            string                  `json:"description"`
	IsRunnableConcurrently bool                    `json:"is_runnable_concurrently"`
	DatamartBigqueryOption *DatamartBigqueryOption `json:"datamart_bigquery_option,omitempty"`
}

// --- Tool-facing shapes (camelCase, as the MCP tool arguments arrive) ---

// BigqueryOptionInput is the tool-side BigQuery option block.
type BigqueryOptionInput struct {
	ConnectionID       int64  `json:"connectionId"`
	QueryMode          string `json:"queryMode"`
	Query              string `json:"query"`
	DestinationDataset string `json:"destinationDataset,omitempty"`
	DestinationTable   string `json:"destinationTable,omitempty"`
	WriteDisposition   string `json:"writeDisposition,omitempty"`
}

// CreateDatamartDefinitionInput is the create_datamart_definition tool input.
type CreateDatamartDefinitionInput struct {
	Name                   string               `json:"name"`
	DataWarehouseType      string               `json:"dataWarehouseType"`
	Description            string               `json:"description,omitempty"`
	IsRunnableConcurrently bool                 `json:"isRunnableConcurrently,omitempty"`
	DatamartBigqueryOption *BigqueryOptionInput `json:"datamartBigqueryOption,omitempty"`
}

// Validate checks the input against its declared shape and returns a
// *ValidationError naming the first offending field.
//
// Note: the API documentation says datamartBigqueryOption is required when
// dataWarehouseType is "bigquery", but the published schema does not enforce
// that conditionally — neither do we. The requirement is stated in the tool
// description instead.
func (in *CreateDatamartDefinitionInput) Validate() error {
	if in.Name == "" {
		return &ValidationError{Field: "name", Message: "must not be empty"}
	}
	if in.DataWarehouseType == "" {
		return &ValidationError{Field: "dataWarehouseType", Message: "must not be empty"}
	}
	if !DataWarehouseType(in.DataWarehouseType).Valid() {
		return &ValidationError{
			Field:   "dataWarehouseType",
			Message: fmt.Sprintf("%q is not one of %v", in.DataWarehouseType, DataWarehouseTypeStrings()),
		}
	}

	if opt := in.DatamartBigqueryOption; opt != nil {
		if opt.ConnectionID <= 0 {
			return &ValidationError{Field: "datamartBigqueryOption.connectionId", Message: "must be a positive integer"}
		}
		if opt.QueryMode != QueryModeInsert && opt.QueryMode != QueryModeQuery {
			return &ValidationError{
				Field:   "datamartBigqueryOption.queryMode",
				Message: fmt.Sprintf("%q is not one of [%s %s]", opt.QueryMode, QueryModeInsert, QueryModeQuery),
			}
		}
		if opt.Query == "" {
			return &ValidationError{Field: "datamartBigqueryOption.query", Message: "must not be empty"}
		}
		if opt.WriteDisposition != "" &&
			opt.WriteDisposition != WriteDispositionAppend && opt.WriteDisposition != WriteDispositionTruncate {
			return &ValidationError{
				Field:   "datamartBigqueryOption.writeDisposition",
				Message: fmt.Sprintf("%q is not one of [%s %s]", opt.WriteDisposition, WriteDispositionAppend, WriteDispositionTruncate),
			}
		}
	}

	return nil
}

// ToRequest maps the tool input to the wire request body, renaming each
// field from the tool convention to the API convention one-to-one.
func (in *CreateDatamartDefinitionInput) ToRequest() *CreateDatamartDefinitionRequest {
	req := &CreateDatamartDefinitionRequest{
		Name:                   in.Name,
		DataWarehouseType:      in.DataWarehouseType,
		Description:            in.Description,
		IsRunnableConcurrently: in.IsRunnableConcurrently,
	}
	if opt := in.DatamartBigqueryOption; opt != nil {
		req.DatamartBigqueryOption = &DatamartBigqueryOption{
			BigqueryConnectionID: opt.ConnectionID,
			QueryMode:            opt.QueryMode,
			Query:                opt.Query,
			DestinationDataset:   opt.DestinationDataset,
			DestinationTable:     opt.DestinationTable,
			WriteDisposition:     opt.WriteDisposition,
		}
	}
	return req
}

// DatamartDefinitionResult is the tool-side view of a created definition.
type DatamartDefinitionResult struct {
	ID                     int64                `json:"id"`
	Name                   string               `json:"name"`
	DataWarehouseType      string               `json:"dataWarehouseType"`
	Description            string               `json:"description,omitempty"`
	IsRunnableConcurrently bool                 `json:"isRunnableConcurrently"`
	DatamartBigqueryOption *BigqueryOptionInput `json:"datamartBigqueryOption,omitempty"`
}

// DatamartDefinitionResultFrom maps an API response back to the tool
// convention, the inverse of ToRequest.
func DatamartDefinitionResultFrom(d *DatamartDefinition) *DatamartDefinitionResult {
	result := &DatamartDefinitionResult{
		ID:                     d.ID,
		Name:                   d.Name,
		DataWarehouseType:      d.DataWarehouseType,
		Description:            d.Description,
		IsRunnableConcurrently: d.IsRunnableConcurrently,
	}
	if opt := d.DatamartBigqueryOption; opt != nil {
		result.DatamartBigqueryOption = &BigqueryOptionInput{
			ConnectionID:       opt.BigqueryConnectionID,
			QueryMode:          opt.QueryMode,
			Query:              opt.Query,
			DestinationDataset: opt.DestinationDataset,
			DestinationTable:   opt.DestinationTable,
			WriteDisposition:   opt.WriteDisposition,
		}
	}
	return result
}
