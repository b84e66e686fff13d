/*
Package errs provides custom error types and application-level error code constants.

These codes identify specific business or system failures both inside the
server and on the wire to clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON is malformed.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates trailing content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1005
)

// 2xxx: Hub Protocol Errors
const (
	// ErrUnsupportedEvent indicates an inbound event type the hub does not handle.
	ErrUnsupportedEvent = 2001

	// ErrInvalidPayload indicates an event payload that could not be decoded.
	ErrInvalidPayload = 2002
)

// 3xxx: Authentication and Security Errors
const (
	// ErrInvalidAuthToken indicates a missing, expired, or tampered admin credential.
	ErrInvalidAuthToken = 3001

	// ErrInvalidCredentials indicates a failed admin password exchange.
	ErrInvalidCredentials = 3002
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified internal server error.
	ErrUnknown = 5000
)
