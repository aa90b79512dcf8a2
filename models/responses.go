package models

// KeyListResponse contains the config-store entries matching a prefix
// query. The console client uses it to populate its key browser.
type KeyListResponse struct {
	// Keys is the list of entries, ordered by key.
	Keys []ConfigKey `json:"keys"`

	// Length is the total number of entries in Keys. Provided for
	// convenience so the client can pre-allocate or validate the response
	// without iterating the slice.
	Length int `json:"length"`
}

// APIError is the uniform error body returned by the management API.
type APIError struct {
	// Error is the operator-facing message. Internal detail is logged
	// server-side, never echoed to the client.
	Error string `json:"error"`
}
