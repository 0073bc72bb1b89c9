// Package errors provides coded domain errors shared by the setup assistant
// packages and their HTTP mapping.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Setup assistant errors
	CodeStepsRequired     Code = "SETUP_ASSISTANT_STEPS_REQUIRED"
	CodeStepNotFound      Code = "SETUP_ASSISTANT_STEP_NOT_FOUND"
	CodeStepNotExpandable Code = "SETUP_ASSISTANT_STEP_NOT_EXPANDABLE"

	// Plan errors
	CodePlanNotFound Code = "PLAN_NOT_FOUND"
	CodePlanInvalid  Code = "PLAN_INVALID"

	// Request errors
	CodeInvalidRequest Code = "INVALID_REQUEST"
)

// HTTPStatus returns the HTTP status code for this error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeStepNotFound, CodePlanNotFound:
		return http.StatusNotFound
	case CodeStepNotExpandable:
		return http.StatusConflict
	case CodeInvalidRequest, CodeStepsRequired, CodePlanInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
