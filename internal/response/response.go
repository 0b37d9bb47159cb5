package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sharespot/service-sharing/internal/domain"
)

// ErrorBody is the JSON envelope for error responses.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusCreated, payload)
}

// NoContent writes a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorBody{Error: message})
}

// Error writes an error response with the status that matches the domain
// error code. Ownership failures are reported as not-found so that the
// response does not reveal whether the entity exists.
func Error(c *gin.Context, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		c.JSON(http.StatusInternalServerError, ErrorBody{Error: "internal server error"})
		return
	}
	c.JSON(statusFor(de.Code), ErrorBody{Error: de.Message, Code: string(de.Code)})
}

func statusFor(code domain.ErrorCode) int {
	switch code {
	case domain.CodeNotFound, domain.CodeNotAuthorized, domain.CodeSelfBooking:
		return http.StatusNotFound
	case domain.CodeValidation, domain.CodeInvalidInterval, domain.CodeUnavailable,
		domain.CodeAlreadyApproved, domain.CodeUnknownState:
		return http.StatusBadRequest
	case domain.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
