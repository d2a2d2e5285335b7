package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/John-Robertt/override-go/internal/compiler"
	"github.com/John-Robertt/override-go/internal/fetch"
	"github.com/John-Robertt/override-go/internal/model"
	"github.com/John-Robertt/override-go/internal/render"
	"github.com/John-Robertt/override-go/internal/rules"
	"github.com/John-Robertt/override-go/internal/source"
)

// APIError is used by the HTTP layer for request validation and a few
// HTTP-specific errors.
type APIError struct {
	Status   int
	AppError model.AppError
	Cause    error
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.AppError.Code, e.AppError.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.AppError.Code, e.AppError.Message, e.Cause)
}

func (e *APIError) Unwrap() error { return e.Cause }

func apiError(status int, app model.AppError, cause error) error {
	return &APIError{Status: status, AppError: app, Cause: cause}
}

func requestError(code, message, hint string) error {
	return apiError(http.StatusBadRequest, model.AppError{
		Code:    code,
		Message: message,
		Stage:   "validate_request",
		Hint:    hint,
	}, nil)
}

// AppErrorOf maps err to its client payload and HTTP status.
func AppErrorOf(err error) (int, model.AppError) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Status, ae.AppError
	}

	var fe *fetch.FetchError
	if errors.As(err, &fe) {
		return fe.Status, fe.AppError
	}

	// Parse/compile/render errors are user content errors => 422.
	var se *source.ParseError
	if errors.As(err, &se) {
		return http.StatusUnprocessableEntity, se.AppError
	}

	var rpe *rules.ParseError
	if errors.As(err, &rpe) {
		return http.StatusUnprocessableEntity, rpe.AppError
	}

	var ce *compiler.CompileError
	if errors.As(err, &ce) {
		return http.StatusUnprocessableEntity, ce.AppError
	}

	var re *render.RenderError
	if errors.As(err, &re) {
		return http.StatusUnprocessableEntity, re.AppError
	}

	// Fallback: internal bug.
	return http.StatusInternalServerError, model.AppError{
		Code:    "INTERNAL_ERROR",
		Message: "服务端内部错误",
		Stage:   "internal",
		Hint:    err.Error(),
	}
}

func writeErrorFromErr(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	status, app := AppErrorOf(err)
	WriteError(w, status, app)
}
