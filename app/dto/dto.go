// Package dto defines the request and response shapes of the suggestion box API
package dto

// APIResponse is the envelope returned by the admin endpoints and by the
// router's error handlers. The public ingestion endpoint uses its own fixed
// shapes instead.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty" validate:"omitempty"`
	Error   any    `json:"error,omitempty" validate:"omitempty"`
}

// ErrorDetail carries a stable error code plus optional structured detail
// inside an APIResponse
type ErrorDetail struct {
	Code    string `json:"code"`
	Details any    `json:"details,omitempty" validate:"omitempty"`
}
