/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to
standardize HTTP responses and hub error acks.
*/
package errs

import "net/http"

// errorMap stores the CustomError template for every application error code.
// Messages are client-safe; Status defaults to 200 when unset so hub-level
// errors can reuse the same codes without an HTTP meaning.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters."},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format."},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Unsupported request format."},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data."},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Hub Protocol Errors
	ErrUnsupportedEvent: {Code: ErrUnsupportedEvent, Message: "Unsupported event."},
	ErrInvalidPayload:   {Code: ErrInvalidPayload, Message: "Invalid event payload."},

	// 3xxx: Authentication and Security Errors
	ErrInvalidAuthToken:   {Code: ErrInvalidAuthToken, Message: "Invalid auth token.", Status: http.StatusUnauthorized},
	ErrInvalidCredentials: {Code: ErrInvalidCredentials, Message: "Incorrect password.", Status: http.StatusUnauthorized},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
