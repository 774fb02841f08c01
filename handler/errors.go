package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/tour-diary-generator/dto"
)

const (
	codeInvalidRequest = "INVALID_REQUEST"
	codeNoTourData     = "NO_TOUR_DATA"
	codeNotFound       = "NOT_FOUND"
	codeTimeout        = "TIMEOUT"
	codeInternal       = "INTERNAL_ERROR"
)

// statusFor maps pipeline errors to an HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, dto.ErrNoFiles),
		errors.Is(err, dto.ErrUnknownFormat),
		errors.Is(err, dto.ErrUnknownPayLevel),
		errors.Is(err, dto.ErrUnknownCityClass):
		return http.StatusBadRequest, codeInvalidRequest
	case errors.Is(err, dto.ErrNoTourData):
		return http.StatusUnprocessableEntity, codeNoTourData
	case errors.Is(err, dto.ErrNoRoute):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, codeTimeout
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

// sendError sends a structured error response. err is logged; its text only
// reaches the client for 4xx responses, where it describes the caller's input.
func sendError(c *gin.Context, statusCode int, code, message string, err error) {
	reqID := GetRequestID(c)
	if err != nil {
		log.Printf("[%s] Error: %s - %v", reqID, message, err)
		if statusCode < http.StatusInternalServerError && err.Error() != message {
			message = message + ": " + err.Error()
		}
	}

	c.AbortWithStatusJSON(statusCode, dto.ErrorResponse{
		Error:     code,
		Message:   message,
		Code:      statusCode,
		RequestID: reqID,
	})
}

// sendServiceError picks the status from the error itself.
func sendServiceError(c *gin.Context, message string, err error) {
	status, code := statusFor(err)
	sendError(c, status, code, message, err)
}
