// Package api provides the client for the question-answering backend.
package api

// Endpoint and GJSON paths for the /query exchange.
const (
	// EndpointQuery is the path questions are posted to, relative to the server URL
	EndpointQuery = "/query"

	// PathAnswer holds the answer text in a success body: {"answer": "..."}
	PathAnswer = "answer"

	// PathError holds the error text in a failure body: {"error": "..."}
	PathError = "error"
)

// Body size limits
const (
	maxErrorBodySize  = 4 << 10
	maxAnswerBodySize = 1 << 20
)
