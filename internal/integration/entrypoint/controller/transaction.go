package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/usecase/statistics"
	"github.com/finance-tracker/ledger/internal/application/usecase/transaction"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase   *transaction.ListTransactionsUseCase
	createUseCase *transaction.CreateTransactionUseCase
	updateUseCase *transaction.UpdateTransactionUseCase
	deleteUseCase *transaction.DeleteTransactionUseCase
	location      *time.Location
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	location *time.Location,
) *TransactionController {
	if location == nil {
		location = time.Local
	}
	return &TransactionController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		location:      location,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	sortBy, err := transaction.ParseSortOrder(ctx.Query("sortBy"))
	if err != nil {
		handleError(ctx, err)
		return
	}

	input := transaction.ListTransactionsInput{
		Criteria: transaction.Criteria{SortBy: sortBy},
	}

	if input.Criteria.TypeFilter, err = parseTypeQuery(ctx); err != nil {
		handleError(ctx, err)
		return
	}
	if input.Criteria.SelectedCategories, err = parseCategoryIDsQuery(ctx); err != nil {
		badRequest(ctx, err.Error())
		return
	}

	// Optional date window
	if input.StartDate, err = statistics.ParseBound(ctx.Query("startDate"), c.location, false); err != nil {
		handleError(ctx, err)
		return
	}
	if input.EndDate, err = statistics.ParseBound(ctx.Query("endDate"), c.location, true); err != nil {
		handleError(ctx, err)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingTransactionFields),
		})
		return
	}

	date, ok := c.parseDate(ctx, req.Date)
	if !ok {
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		badRequest(ctx, "Invalid category ID format")
		return
	}

	input := transaction.CreateTransactionInput{
		Type:       entity.TransactionType(req.Type),
		Amount:     req.Amount,
		Date:       date,
		CategoryID: categoryID,
		Note:       req.Note,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// Update handles PATCH /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	transactionID, ok := parseIDParam(ctx)
	if !ok {
		badRequest(ctx, "Invalid transaction ID format")
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error())
		return
	}

	input := transaction.UpdateTransactionInput{
		TransactionID: transactionID,
		Amount:        req.Amount,
		Note:          req.Note,
	}

	if req.Type != nil {
		txnType := entity.TransactionType(*req.Type)
		input.Type = &txnType
	}

	if req.Date != nil {
		date, ok := c.parseDate(ctx, *req.Date)
		if !ok {
			return
		}
		input.Date = &date
	}

	if req.CategoryID != nil {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			badRequest(ctx, "Invalid category ID format")
			return
		}
		input.CategoryID = &id
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	transactionID, ok := parseIDParam(ctx)
	if !ok {
		badRequest(ctx, "Invalid transaction ID format")
		return
	}

	if _, err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		TransactionID: transactionID,
	}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// parseDate accepts YYYY-MM-DD (midnight in the controller location) or RFC3339.
func (c *TransactionController) parseDate(ctx *gin.Context, value string) (time.Time, bool) {
	date, err := statistics.ParseBound(value, c.location, false)
	if err != nil || date == nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format. Use YYYY-MM-DD or RFC3339",
			Code:  string(domainerror.ErrCodeInvalidTransactionDate),
		})
		return time.Time{}, false
	}
	return *date, true
}
