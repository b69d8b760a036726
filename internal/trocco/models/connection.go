// Package models defines the TROCCO API resource shapes and the tool-facing
// input/output shapes, plus the mapping between the two naming conventions
// (camelCase on the tool side, snake_case on the wire).
package models

// ConnectionType identifies a kind of TROCCO connection resource.
type ConnectionType string

const (
	ConnectionTypeBigquery          ConnectionType = "bigquery"
	ConnectionTypeGCS               ConnectionType = "gcs"
	ConnectionTypeGoogleSpreadsheet ConnectionType = "google_spreadsheet"
	ConnectionTypeSnowflake         ConnectionType = "snowflake"
	ConnectionTypeMySQL             ConnectionType = "mysql"
	ConnectionTypeS3                ConnectionType = "s3"
	ConnectionTypeSalesforce        ConnectionType = "salesforce"
	ConnectionTypePostgreSQL        ConnectionType = "postgresql"
	ConnectionTypeGoogleAnalytics4  ConnectionType = "google_analytics4"
)

// ConnectionTypes returns the closed set of supported connection types.
func ConnectionTypes() []ConnectionType {
	return []ConnectionType{
		ConnectionTypeBigquery,
		ConnectionTypeGCS,
		ConnectionTypeGoogleSpreadsheet,
		ConnectionTypeSnowflake,
		ConnectionTypeMySQL,
		ConnectionTypeS3,
		ConnectionTypeSalesforce,
		ConnectionTypePostgreSQL,
		ConnectionTypeGoogleAnalytics4,
	}
}

// ConnectionTypeStrings returns the supported connection types as strings,
// in a stable order. Used for tool schema enums and error messages.
func ConnectionTypeStrings() []string {
	types := ConnectionTypes()
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

// Valid reports whether t belongs to the closed connection-type set.
func (t ConnectionType) Valid() bool {
	for _, known := range ConnectionTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Connection is a TROCCO connection resource projected down to the fields
// the tools expose. Decoding API items into this struct drops any extra
// fields the API may include.
type Connection struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
