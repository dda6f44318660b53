package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerr "github.com/skyloyalty/miles-ledger/internal/domain/error"
	"github.com/skyloyalty/miles-ledger/internal/infrastructure/adapter/api/dto"
)

// respondError maps a domain error onto the HTTP surface. Insufficient
// balance rejections carry the current balance so callers can render a
// useful message without a second round trip.
func respondError(c *gin.Context, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"
	var details map[string]any

	switch {
	case errors.Is(err, domainerr.ErrUnauthorized):
		statusCode = http.StatusForbidden
		message = "Not allowed"
	case errors.Is(err, domainerr.ErrInsufficientBalance):
		statusCode = http.StatusUnprocessableEntity
		message = "Insufficient balance"
		var insufficientErr *domainerr.InsufficientBalanceError
		if errors.As(err, &insufficientErr) {
			details = map[string]any{
				"currentBalance": insufficientErr.CurrentBalance,
				"requested":      insufficientErr.Requested,
			}
		}
	case errors.Is(err, domainerr.ErrUserNotFound):
		statusCode = http.StatusNotFound
		message = "User not found"
	case errors.Is(err, domainerr.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "Not found"
	case errors.Is(err, domainerr.ErrInvalidAmount):
		statusCode = http.StatusBadRequest
		message = "Invalid amount"
	case errors.Is(err, domainerr.ErrInvalidUserID):
		statusCode = http.StatusBadRequest
		message = "Invalid user ID"
	case errors.Is(err, domainerr.ErrStorageUnavailable):
		statusCode = http.StatusServiceUnavailable
		message = "Storage unavailable"
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
		Details: details,
	})
}

// respondBadRequest rejects a malformed request body or parameter.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
		Message: message,
	})
}

// respondForbidden rejects a request whose actor lacks the required role.
func respondForbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(domainerr.ErrUnauthorized),
		Message: "Not allowed",
	})
}
