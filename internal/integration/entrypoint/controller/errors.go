// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// handleError maps domain errors to HTTP responses.
func handleError(ctx *gin.Context, err error) {
	var statsErr *domainerror.StatisticsError
	if errors.As(err, &statsErr) {
		writeError(ctx, err, statusForStatisticsError(statsErr.Code), statsErr.Message, string(statsErr.Code))
		return
	}

	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		writeError(ctx, err, statusForTransactionError(txnErr.Code), txnErr.Message, string(txnErr.Code))
		return
	}

	var catErr *domainerror.CategoryError
	if errors.As(err, &catErr) {
		writeError(ctx, err, statusForCategoryError(catErr.Code), catErr.Message, string(catErr.Code))
		return
	}

	writeError(ctx, err, http.StatusInternalServerError, "An internal error occurred", "")
}

func writeError(ctx *gin.Context, err error, status int, message, code string) {
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(ctx.Request.Context(), "request failed",
			"path", ctx.Request.URL.Path,
			"code", code,
			"error", err,
		)
		message = "An internal error occurred"
	}
	ctx.JSON(status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func statusForStatisticsError(code domainerror.StatisticsErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidTimeRange,
		domainerror.ErrCodeInvalidDateFormat,
		domainerror.ErrCodeInvalidSortOrder:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidSnapshot:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func statusForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound,
		domainerror.ErrCodeTxnCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidTransactionType,
		domainerror.ErrCodeInvalidTransactionDate,
		domainerror.ErrCodeInvalidTransactionAmount,
		domainerror.ErrCodeNoteTooLong,
		domainerror.ErrCodeMissingTransactionFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func statusForCategoryError(code domainerror.CategoryErrorCode) int {
	switch code {
	case domainerror.ErrCodeCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeCategoryNameExists,
		domainerror.ErrCodeCategoryInUse:
		return http.StatusConflict
	case domainerror.ErrCodeCategoryNameTooLong,
		domainerror.ErrCodeInvalidColorFormat,
		domainerror.ErrCodeInvalidCategoryType,
		domainerror.ErrCodeMissingCategoryFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
