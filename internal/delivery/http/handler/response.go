package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// bindingError turns a ShouldBindJSON failure into a readable message,
// listing the failed fields when validation produced them.
func bindingError(err error) ErrorResponse {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return ErrorResponse{Error: "invalid request body"}
	}

	fields := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields = append(fields, fmt.Sprintf("%s (%s)",
			strings.ToLower(fieldErr.Field()), fieldErr.Tag()))
	}
	return ErrorResponse{Error: "validation failed: " + strings.Join(fields, ", ")}
}
