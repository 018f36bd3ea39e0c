// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package backend

import (
	"encoding/json"
	"fmt"
)

// APIError is a non-2xx response from the backend. Message carries the
// server-provided message when the error body had one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP error (status %d)", e.Status)
}

// newAPIError builds an APIError from a non-2xx response body. Error bodies
// are JSON with an optional "message" field; anything unparsable is treated
// as having no message.
func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Message string `json:"message"`
	}
	// Best effort; a missing or malformed body just means a generic message.
	_ = json.Unmarshal(body, &payload)

	return &APIError{Status: status, Message: payload.Message}
}
