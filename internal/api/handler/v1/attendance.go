package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tobscouts/troop-api/internal/api/handler/v1/request"
	"github.com/tobscouts/troop-api/internal/api/handler/v1/response"
	"github.com/tobscouts/troop-api/internal/api/middleware"
	"github.com/tobscouts/troop-api/internal/domain"
	"github.com/tobscouts/troop-api/internal/service"
)

type AttendanceService interface {
	CreateRecord(ctx context.Context, record domain.AttendanceRecord) (domain.AttendanceRecord, error)
	GetRecord(ctx context.Context, id uint) (domain.AttendanceRecord, error)
	ListRecords(ctx context.Context) ([]domain.AttendanceRecord, error)
	UpdateRecord(ctx context.Context, record domain.AttendanceRecord) (domain.AttendanceRecord, error)
	DeleteRecord(ctx context.Context, id uint) error
	ActivityTypes(ctx context.Context) ([]string, error)
}

type AttendanceHandler struct {
	svc AttendanceService
}

func NewAttendanceHandler(svc AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{
		svc: svc,
	}
}

// HandleCreateRecord godoc
// @Summary      Record attendance for an activity
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        request   body      request.CreateAttendanceRequest true "request body"
// @Success      201      {object}   domain.AttendanceRecord
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /attendance [post]
// @Security     BearerAuth
func (h *AttendanceHandler) HandleCreateRecord(ctx *gin.Context) {
	var req request.CreateAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	record, err := h.svc.CreateRecord(ctx.Request.Context(), domain.AttendanceRecord{
		Date:               req.ParsedDate(),
		ActivityType:       req.ActivityType,
		CustomActivityName: req.CustomActivityName,
		CreatedBy:          ctx.GetString(middleware.ContextKeyAccountID),
		ScoutIDs:           req.ScoutIDs,
	})
	if err != nil {
		if errors.Is(err, service.ErrNoAttendees) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrNoAttendees))
			return
		}

		err = fmt.Errorf("v1.HandleCreateRecord -> h.svc.CreateRecord -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, record)
}

// HandleGetRecord godoc
// @Summary      Get an attendance record
// @Tags         attendance
// @Produce      json
// @Param        recordID  path      int true "record id"
// @Success      200      {object}   domain.AttendanceRecord
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /attendance/{recordID} [get]
// @Security     BearerAuth
func (h *AttendanceHandler) HandleGetRecord(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "recordID")
	if !ok {
		return
	}

	record, err := h.svc.GetRecord(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrAttendanceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("attendance record", "id", strconv.FormatUint(uint64(id), 10)))
			return
		}

		err = fmt.Errorf("v1.HandleGetRecord -> h.svc.GetRecord -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, record)
}

// HandleListRecords godoc
// @Summary      List attendance records
// @Tags         attendance
// @Produce      json
// @Success      200      {array}    domain.AttendanceRecord
// @Failure      500      {object}   response.Err
// @Router       /attendance [get]
// @Security     BearerAuth
func (h *AttendanceHandler) HandleListRecords(ctx *gin.Context) {
	records, err := h.svc.ListRecords(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListRecords -> h.svc.ListRecords -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, records)
}

// HandleUpdateRecord godoc
// @Summary      Update an attendance record
// @Description  Rewrites the record and reconciles the attendee list against the submitted scout ids
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        recordID  path      int true "record id"
// @Param        request   body      request.UpdateAttendanceRequest true "request body"
// @Success      200      {object}   domain.AttendanceRecord
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /attendance/{recordID} [put]
// @Security     BearerAuth
func (h *AttendanceHandler) HandleUpdateRecord(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "recordID")
	if !ok {
		return
	}

	var req request.UpdateAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	record, err := h.svc.UpdateRecord(ctx.Request.Context(), domain.AttendanceRecord{
		ID:                 id,
		Date:               req.ParsedDate(),
		ActivityType:       req.ActivityType,
		CustomActivityName: req.CustomActivityName,
		ScoutIDs:           req.ScoutIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAttendanceNotFound):
			response.RenderErr(ctx, response.ErrNotFound("attendance record", "id", strconv.FormatUint(uint64(id), 10)))
		case errors.Is(err, service.ErrNoAttendees):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrNoAttendees))
		default:
			err = fmt.Errorf("v1.HandleUpdateRecord -> h.svc.UpdateRecord -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, record)
}

// HandleDeleteRecord godoc
// @Summary      Delete an attendance record
// @Tags         attendance
// @Produce      json
// @Param        recordID  path      int true "record id"
// @Success      200      {object}   response.MessageResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /attendance/{recordID} [delete]
// @Security     BearerAuth
func (h *AttendanceHandler) HandleDeleteRecord(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "recordID")
	if !ok {
		return
	}

	if err := h.svc.DeleteRecord(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrAttendanceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("attendance record", "id", strconv.FormatUint(uint64(id), 10)))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteRecord -> h.svc.DeleteRecord -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "Attendance record deleted."})
}

// HandleActivityTypes godoc
// @Summary      List distinct activity types appearing in records
// @Tags         attendance
// @Produce      json
// @Success      200      {array}    string
// @Failure      500      {object}   response.Err
// @Router       /attendance/activity-types [get]
// @Security     BearerAuth
func (h *AttendanceHandler) HandleActivityTypes(ctx *gin.Context) {
	types, err := h.svc.ActivityTypes(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleActivityTypes -> h.svc.ActivityTypes -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, types)
}
