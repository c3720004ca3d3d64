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

type ScoutService interface {
	ListScouts(ctx context.Context) ([]domain.Scout, error)
	GetScout(ctx context.Context, id uint) (domain.Scout, error)
	GetProfile(ctx context.Context, id uint, physicallyObtained *bool) (domain.ScoutProfile, error)
	GetProfileByEmail(ctx context.Context, email string) (domain.ScoutProfile, error)
	GetAttendanceByEmail(ctx context.Context, email string) ([]domain.AttendanceRecord, error)
	UpdateScout(ctx context.Context, id uint, update service.ScoutUpdate) (domain.Scout, error)
	DeleteScout(ctx context.Context, id uint) error
}

type ScoutHandler struct {
	svc    ScoutService
	invite InviteService
}

func NewScoutHandler(svc ScoutService, invite InviteService) *ScoutHandler {
	return &ScoutHandler{
		svc:    svc,
		invite: invite,
	}
}

// HandleAddScout godoc
// @Summary      Provision a scout
// @Description  Creates the account, profile and role rows for a new scout and sends a password-reset email
// @Tags         scouts
// @Accept       json
// @Produce      json
// @Param        request   body      request.AddScoutRequest true "request body"
// @Success      200      {object}   response.InviteUserResponse
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /scout-management/add-scout [post]
func (h *ScoutHandler) HandleAddScout(ctx *gin.Context) {
	var req request.AddScoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	role := req.UserMetadata.UserRole
	if role == "" {
		role = domain.RoleScout
	}

	account, err := h.invite.InviteUser(ctx.Request.Context(), service.Invitation{
		Email: req.Email,
		Role:  role,
		Name:  req.UserMetadata.Name,
		Rank:  req.UserMetadata.Rank,
		Crew:  req.UserMetadata.Crew,
	})
	if err != nil {
		renderInviteErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response.InviteUserResponse{
		Message: "Scout added and password reset email sent.",
		User:    account,
	})
}

// HandleDeleteScout godoc
// @Summary      Deprovision a scout
// @Description  Removes history, attendance participation, badge awards and the profile row, then the account
// @Tags         scouts
// @Produce      json
// @Param        scoutID   path      int true "scout id"
// @Success      200      {object}   response.MessageResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /scout-management/delete-scout/{scoutID} [delete]
func (h *ScoutHandler) HandleDeleteScout(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "scoutID")
	if !ok {
		return
	}

	if err := h.svc.DeleteScout(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrScoutNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("scout", "id", strconv.FormatUint(uint64(id), 10)))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteScout -> h.svc.DeleteScout -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "Scout deleted successfully."})
}

// HandleListScouts godoc
// @Summary      List scout profiles
// @Tags         scouts
// @Produce      json
// @Success      200      {array}    domain.Scout
// @Failure      500      {object}   response.Err
// @Router       /scouts [get]
// @Security     BearerAuth
func (h *ScoutHandler) HandleListScouts(ctx *gin.Context) {
	scouts, err := h.svc.ListScouts(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListScouts -> h.svc.ListScouts -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, scouts)
}

// HandleGetScout godoc
// @Summary      Get a scout profile
// @Tags         scouts
// @Produce      json
// @Param        scoutID   path      int true "scout id"
// @Success      200      {object}   domain.Scout
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /scouts/{scoutID} [get]
// @Security     BearerAuth
func (h *ScoutHandler) HandleGetScout(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "scoutID")
	if !ok {
		return
	}

	scout, err := h.svc.GetScout(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrScoutNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("scout", "id", strconv.FormatUint(uint64(id), 10)))
			return
		}

		err = fmt.Errorf("v1.HandleGetScout -> h.svc.GetScout -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, scout)
}

// HandleGetScoutProfile godoc
// @Summary      Get a scout with history and badges
// @Tags         scouts
// @Produce      json
// @Param        scoutID              path   int     true  "scout id"
// @Param        physically_obtained  query  boolean false "narrow badges to physically handed out or not"
// @Success      200      {object}   domain.ScoutProfile
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /scouts/{scoutID}/profile [get]
// @Security     BearerAuth
func (h *ScoutHandler) HandleGetScoutProfile(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "scoutID")
	if !ok {
		return
	}

	physicallyObtained, ok := parseBoolQuery(ctx, "physically_obtained")
	if !ok {
		return
	}

	profile, err := h.svc.GetProfile(ctx.Request.Context(), id, physicallyObtained)
	if err != nil {
		if errors.Is(err, service.ErrScoutNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("scout", "id", strconv.FormatUint(uint64(id), 10)))
			return
		}

		err = fmt.Errorf("v1.HandleGetScoutProfile -> h.svc.GetProfile -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// HandleGetOwnProfile godoc
// @Summary      Get the caller's own profile
// @Tags         scouts
// @Produce      json
// @Success      200      {object}   domain.ScoutProfile
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /me/profile [get]
// @Security     BearerAuth
func (h *ScoutHandler) HandleGetOwnProfile(ctx *gin.Context) {
	email := ctx.GetString(middleware.ContextKeyEmail)
	if email == "" {
		response.RenderErr(ctx, response.ErrUnauthorized(errMissingAccessToken))
		return
	}

	profile, err := h.svc.GetProfileByEmail(ctx.Request.Context(), email)
	if err != nil {
		if errors.Is(err, service.ErrScoutNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("scout", "email", email))
			return
		}

		err = fmt.Errorf("v1.HandleGetOwnProfile -> h.svc.GetProfileByEmail -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// HandleGetOwnAttendance godoc
// @Summary      List the caller's own attendance records
// @Tags         scouts
// @Produce      json
// @Success      200      {array}    domain.AttendanceRecord
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /me/attendance [get]
// @Security     BearerAuth
func (h *ScoutHandler) HandleGetOwnAttendance(ctx *gin.Context) {
	email := ctx.GetString(middleware.ContextKeyEmail)
	if email == "" {
		response.RenderErr(ctx, response.ErrUnauthorized(errMissingAccessToken))
		return
	}

	records, err := h.svc.GetAttendanceByEmail(ctx.Request.Context(), email)
	if err != nil {
		if errors.Is(err, service.ErrScoutNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("scout", "email", email))
			return
		}

		err = fmt.Errorf("v1.HandleGetOwnAttendance -> h.svc.GetAttendanceByEmail -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, records)
}

// HandleUpdateScout godoc
// @Summary      Update a scout profile
// @Description  Rank and crew changes are recorded in the scout's history; an email change is pushed to the identity provider first
// @Tags         scouts
// @Accept       json
// @Produce      json
// @Param        scoutID   path      int true "scout id"
// @Param        request   body      request.UpdateScoutRequest true "request body"
// @Success      200      {object}   domain.Scout
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /scouts/{scoutID} [put]
// @Security     BearerAuth
func (h *ScoutHandler) HandleUpdateScout(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "scoutID")
	if !ok {
		return
	}

	var req request.UpdateScoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	scout, err := h.svc.UpdateScout(ctx.Request.Context(), id, service.ScoutUpdate{
		FullName: req.FullName,
		Email:    req.Email,
		Rank:     req.Rank,
		Crew:     req.Crew,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrScoutNotFound):
			response.RenderErr(ctx, response.ErrNotFound("scout", "id", strconv.FormatUint(uint64(id), 10)))
		case errors.Is(err, service.ErrEmailSync):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrEmailSync))
		default:
			err = fmt.Errorf("v1.HandleUpdateScout -> h.svc.UpdateScout -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, scout)
}
