package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/application/usecase/statistics"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// StatisticsController handles statistics endpoints.
type StatisticsController struct {
	getUseCase       *statistics.GetStatisticsUseCase
	compareUseCase   *statistics.ComparePeriodsUseCase
	dataRangeUseCase *statistics.GetDataRangeUseCase
	location         *time.Location
}

// NewStatisticsController creates a new statistics controller instance.
// Date-only query bounds are interpreted in location.
func NewStatisticsController(
	getUseCase *statistics.GetStatisticsUseCase,
	compareUseCase *statistics.ComparePeriodsUseCase,
	dataRangeUseCase *statistics.GetDataRangeUseCase,
	location *time.Location,
) *StatisticsController {
	if location == nil {
		location = time.Local
	}
	return &StatisticsController{
		getUseCase:       getUseCase,
		compareUseCase:   compareUseCase,
		dataRangeUseCase: dataRangeUseCase,
		location:         location,
	}
}

// Get handles GET /statistics requests.
func (c *StatisticsController) Get(ctx *gin.Context) {
	query, ok := c.parseQuery(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), query)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStatisticsResponse(output.Statistics, output.Cached))
}

// Compare handles GET /statistics/compare requests.
func (c *StatisticsController) Compare(ctx *gin.Context) {
	query, ok := c.parseQuery(ctx)
	if !ok {
		return
	}

	output, err := c.compareUseCase.Execute(ctx.Request.Context(), statistics.ComparePeriodsInput{
		Range:       query.Range,
		CustomStart: query.CustomStart,
		CustomEnd:   query.CustomEnd,
		Type:        query.Type,
		CategoryIDs: query.CategoryIDs,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToComparisonResponse(output.Comparison, output.Cached))
}

// DataRange handles GET /statistics/data-range requests.
func (c *StatisticsController) DataRange(ctx *gin.Context) {
	output, err := c.dataRangeUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDataRangeResponse(output))
}

// parseQuery reads range, start, end, type and categoryIds. It writes the
// error response itself and reports false when the query is malformed.
func (c *StatisticsController) parseQuery(ctx *gin.Context) (statistics.GetStatisticsInput, bool) {
	var query statistics.GetStatisticsInput

	timeRange, err := statistics.ResolveTimeRange(ctx.Query("range"))
	if err != nil {
		handleError(ctx, err)
		return query, false
	}
	query.Range = timeRange

	if timeRange == valueobject.TimeRangeCustom {
		if query.CustomStart, err = statistics.ParseBound(ctx.Query("start"), c.location, false); err != nil {
			handleError(ctx, err)
			return query, false
		}
		if query.CustomEnd, err = statistics.ParseBound(ctx.Query("end"), c.location, true); err != nil {
			handleError(ctx, err)
			return query, false
		}
	}

	if query.Type, err = parseTypeQuery(ctx); err != nil {
		handleError(ctx, err)
		return query, false
	}

	if query.CategoryIDs, err = parseCategoryIDsQuery(ctx); err != nil {
		badRequest(ctx, err.Error())
		return query, false
	}

	return query, true
}
