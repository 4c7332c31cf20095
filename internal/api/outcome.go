package api

import "time"

// OutcomeKind categorizes how a /query round trip settled
type OutcomeKind int

const (
	// OutcomeAnswer is a success status carrying a readable answer
	OutcomeAnswer OutcomeKind = iota
	// OutcomeServerError is a non-success status
	OutcomeServerError
	// OutcomeMalformedAnswer is a success status whose body could not be read as an answer
	OutcomeMalformedAnswer
	// OutcomeTransportFailure is a request that could not be completed
	OutcomeTransportFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeAnswer:
		return "answer"
	case OutcomeServerError:
		return "server_error"
	case OutcomeMalformedAnswer:
		return "malformed_answer"
	case OutcomeTransportFailure:
		return "transport_failure"
	default:
		return "unknown"
	}
}

// Outcome is the settled result of one question.
// Exactly one of the kind-specific fields is meaningful for a given Kind.
type Outcome struct {
	Kind OutcomeKind

	// Answer is set for OutcomeAnswer
	Answer string

	// StatusCode is the HTTP status when a response was received
	StatusCode int

	// ServerMessage is the "error" text extracted from a failure body.
	// Empty when the body was unparsable, lacked the field or the field was empty.
	ServerMessage string

	// Err describes the failure for every kind except OutcomeAnswer
	Err error

	// Duration is the wall time of the round trip
	Duration time.Duration
}

// Answered creates an OutcomeAnswer
func Answered(statusCode int, answer string) Outcome {
	return Outcome{Kind: OutcomeAnswer, StatusCode: statusCode, Answer: answer}
}

// ServerFailure creates an OutcomeServerError
func ServerFailure(statusCode int, message string, err error) Outcome {
	return Outcome{Kind: OutcomeServerError, StatusCode: statusCode, ServerMessage: message, Err: err}
}

// Malformed creates an OutcomeMalformedAnswer
func Malformed(statusCode int, err error) Outcome {
	return Outcome{Kind: OutcomeMalformedAnswer, StatusCode: statusCode, Err: err}
}

// TransportFailure creates an OutcomeTransportFailure
func TransportFailure(err error) Outcome {
	return Outcome{Kind: OutcomeTransportFailure, Err: err}
}

// OK reports whether the outcome carries an answer
func (o Outcome) OK() bool {
	return o.Kind == OutcomeAnswer
}
