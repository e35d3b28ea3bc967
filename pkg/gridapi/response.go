// SPDX-License-Identifier: GPL-3.0-or-later

package gridapi

import (
	"encoding/json"
	"fmt"
)

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"errorMessage"`
}

// NewErrorResponse creates an ErrorResponse, formatting the message when args are given.
func NewErrorResponse(status int, format string, args ...any) *ErrorResponse {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &ErrorResponse{Status: status, Message: msg}
}

// NotFoundResponse returns a 404 response for unknown paths.
func NotFoundResponse(path string) *ErrorResponse {
	return &ErrorResponse{Status: 404, Message: "unknown path: " + path}
}

// UnavailableResponse returns a 503 response when nothing has been drawn yet.
func UnavailableResponse(msg string) *ErrorResponse {
	return &ErrorResponse{Status: 503, Message: msg}
}

// Bytes encodes the response.
func (r *ErrorResponse) Bytes() []byte {
	bs, _ := json.Marshal(r)
	return bs
}
