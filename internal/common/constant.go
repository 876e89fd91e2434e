package common

// SessionTokenKey is the durable-storage key under which the bearer token
// is persisted between runs. Absence of the key means signed out.
const SessionTokenKey = "session_token"

// RequestIDHeaderName is the HTTP header carrying the per-request
// correlation id on outbound API calls.
const RequestIDHeaderName = "X-Request-ID"
