package v1

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tobscouts/troop-api/internal/api/handler/v1/response"
	"github.com/tobscouts/troop-api/internal/domain"
)

// Scouts below this attendance percentage show up on the follow-up list
// unless the caller asks for a different cutoff.
const defaultLowAttendanceThreshold = 50.0

type StatsService interface {
	Summary(ctx context.Context, badgeType, badgeName string) (domain.TroopSummary, error)
	AttendanceRates(ctx context.Context, activityType string) ([]domain.ScoutAttendanceRate, error)
	LowAttendance(ctx context.Context, threshold float64, activityType string) ([]domain.ScoutAttendanceRate, error)
}

type StatsHandler struct {
	svc StatsService
}

func NewStatsHandler(svc StatsService) *StatsHandler {
	return &StatsHandler{
		svc: svc,
	}
}

// HandleSummary godoc
// @Summary      Troop headline counts
// @Tags         stats
// @Produce      json
// @Param        badge_type  query  string false "narrow earned-badge count to one badge type"
// @Param        badge_name  query  string false "narrow earned-badge count to one badge name"
// @Success      200      {object}   domain.TroopSummary
// @Failure      500      {object}   response.Err
// @Router       /stats/summary [get]
// @Security     BearerAuth
func (h *StatsHandler) HandleSummary(ctx *gin.Context) {
	summary, err := h.svc.Summary(ctx.Request.Context(), ctx.Query("badge_type"), ctx.Query("badge_name"))
	if err != nil {
		err = fmt.Errorf("v1.HandleSummary -> h.svc.Summary -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// HandleAttendanceRates godoc
// @Summary      Per-scout attendance percentages
// @Tags         stats
// @Produce      json
// @Param        activity_type  query  string false "restrict to one activity type"
// @Success      200      {array}    domain.ScoutAttendanceRate
// @Failure      500      {object}   response.Err
// @Router       /stats/attendance [get]
// @Security     BearerAuth
func (h *StatsHandler) HandleAttendanceRates(ctx *gin.Context) {
	rates, err := h.svc.AttendanceRates(ctx.Request.Context(), ctx.Query("activity_type"))
	if err != nil {
		err = fmt.Errorf("v1.HandleAttendanceRates -> h.svc.AttendanceRates -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, rates)
}

// HandleLowAttendance godoc
// @Summary      Scouts whose attendance falls below a threshold
// @Tags         stats
// @Produce      json
// @Param        threshold      query  number false "percentage cutoff, default 50"
// @Param        activity_type  query  string false "restrict to one activity type"
// @Success      200      {array}    domain.ScoutAttendanceRate
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /stats/low-attendance [get]
// @Security     BearerAuth
func (h *StatsHandler) HandleLowAttendance(ctx *gin.Context) {
	threshold := defaultLowAttendanceThreshold
	if raw, exists := ctx.GetQuery("threshold"); exists {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 || parsed > 100 {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("threshold must be a number between 0 and 100")))
			return
		}
		threshold = parsed
	}

	low, err := h.svc.LowAttendance(ctx.Request.Context(), threshold, ctx.Query("activity_type"))
	if err != nil {
		err = fmt.Errorf("v1.HandleLowAttendance -> h.svc.LowAttendance -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, low)
}
