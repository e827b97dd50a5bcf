package types

// HTTP header names used across the API surface
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderAuthorization = "Authorization"
)
