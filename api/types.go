// Package api - API types for quoting
// These types define the contract for the /v1/quotes endpoints.
// The API is stateless and deterministic: the same applicant always gets
// the same quote and quote ID.
package api

import (
	"encoding/json"

	"premium-quote/core/output"
)

// QuoteResponse is the output of POST /v1/quotes
type QuoteResponse struct {
	Quote    *output.Quote     `json:"quote"`
	Metadata *ResponseMetadata `json:"metadata"`
}

// BatchRequest is the input to POST /v1/quotes/batch. Each element is
// decoded on its own so one bad record does not reject the batch.
type BatchRequest []json.RawMessage

// BatchItem is the outcome for one record of a batch
type BatchItem struct {
	Index int           `json:"index"`
	Quote *output.Quote `json:"quote,omitempty"`
	Error *ErrorBody    `json:"error,omitempty"`
}

// BatchResponse is the output of POST /v1/quotes/batch
type BatchResponse struct {
	Results  []BatchItem       `json:"results"`
	Quoted   int               `json:"quoted"`
	Failed   int               `json:"failed"`
	Metadata *ResponseMetadata `json:"metadata"`
}

// ResponseMetadata describes how a response was produced
type ResponseMetadata struct {
	EngineVersion string `json:"engine_version"`
	DurationMs    int64  `json:"duration_ms"`
}

// ErrorBody is a machine-readable error
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an error body
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error codes
const (
	CodeInvalidJSON   = "INVALID_JSON"
	CodeFatalPipeline = "FATAL_PIPELINE_ERROR"
	CodeUnsupported   = "UNSUPPORTED_FORMAT"
	CodeInternal      = "INTERNAL_ERROR"
)
