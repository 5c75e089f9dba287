// Package web defines common components for a web application.
package web

import "github.com/go-playground/validator/v10"

// JSONError provides type for explicit json encoded error response.
type JSONError struct {
	Error string `json:"error"`
}

// Error wraps a given err into json frinedly struct.
func Error(err error) JSONError {
	return JSONError{Error: err.Error()}
}

// Response holds the common response type for all APIs.
type Response struct {
	AccessToken          string `json:"access_token,omitempty"`
	AccessTokenExpiresAt string `json:"access_token_expires_at,omitempty"`
	Data                 any    `json:"data,omitempty"`
	Error                string `json:"error,omitempty"`
}

// GetErrorMsg returns a human readable message for a failed validation tag.
// The caller prepends the field name.
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " is required"
	case "min":
		return " must be greater or equal than " + fe.Param()
	case "max":
		return " must be less or equal than " + fe.Param()
	case "alphanum":
		return " must contain only letters and numbers"
	case "oneof":
		return " must be one of " + fe.Param()
	default:
		return " is invalid"
	}
}
