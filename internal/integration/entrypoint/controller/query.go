package controller

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// parseTypeQuery reads the optional "type" query parameter.
func parseTypeQuery(ctx *gin.Context) (*entity.TransactionType, error) {
	raw := strings.TrimSpace(ctx.Query("type"))
	if raw == "" {
		return nil, nil
	}
	txnType := entity.TransactionType(raw)
	if !txnType.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"type must be 'expense', 'income' or 'transfer'",
			domainerror.ErrInvalidTransactionType,
		)
	}
	return &txnType, nil
}

// parseCategoryIDsQuery reads the comma separated "categoryIds" query parameter.
func parseCategoryIDsQuery(ctx *gin.Context) ([]uuid.UUID, error) {
	raw := ctx.Query("categoryIds")
	if raw == "" {
		return nil, nil
	}

	var ids []uuid.UUID
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			return nil, fmt.Errorf("invalid category id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseIDParam reads the ":id" path parameter.
func parseIDParam(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func badRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: message,
	})
}
