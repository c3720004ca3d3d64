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

type BadgeService interface {
	CreateBadge(ctx context.Context, badge domain.Badge) (domain.Badge, error)
	GetBadge(ctx context.Context, id uint) (domain.Badge, error)
	ListBadges(ctx context.Context) ([]domain.Badge, error)
	UpdateBadge(ctx context.Context, badge domain.Badge) (domain.Badge, error)
	DeleteBadge(ctx context.Context, id uint) error
	AwardBadge(ctx context.Context, award domain.BadgeAward) (domain.BadgeAward, error)
	RevokeAward(ctx context.Context, id uint) error
	ScoutAwards(ctx context.Context, scoutID uint, physicallyObtained *bool) ([]domain.BadgeAward, error)
}

type BadgeHandler struct {
	svc BadgeService
}

func NewBadgeHandler(svc BadgeService) *BadgeHandler {
	return &BadgeHandler{
		svc: svc,
	}
}

// HandleCreateBadge godoc
// @Summary      Create a badge
// @Tags         badges
// @Accept       json
// @Produce      json
// @Param        request   body      request.CreateBadgeRequest true "request body"
// @Success      201      {object}   domain.Badge
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /badges [post]
// @Security     BearerAuth
func (h *BadgeHandler) HandleCreateBadge(ctx *gin.Context) {
	var req request.CreateBadgeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	badge, err := h.svc.CreateBadge(ctx.Request.Context(), domain.Badge{
		Name:         req.Name,
		Description:  req.Description,
		BadgeType:    req.BadgeType,
		Requirements: req.Requirements,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateBadge -> h.svc.CreateBadge -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, badge)
}

// HandleGetBadge godoc
// @Summary      Get a badge
// @Tags         badges
// @Produce      json
// @Param        badgeID   path      int true "badge id"
// @Success      200      {object}   domain.Badge
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /badges/{badgeID} [get]
// @Security     BearerAuth
func (h *BadgeHandler) HandleGetBadge(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "badgeID")
	if !ok {
		return
	}

	badge, err := h.svc.GetBadge(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrBadgeNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("badge", "id", strconv.FormatUint(uint64(id), 10)))
			return
		}

		err = fmt.Errorf("v1.HandleGetBadge -> h.svc.GetBadge -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, badge)
}

// HandleListBadges godoc
// @Summary      List badges
// @Tags         badges
// @Produce      json
// @Success      200      {array}    domain.Badge
// @Failure      500      {object}   response.Err
// @Router       /badges [get]
// @Security     BearerAuth
func (h *BadgeHandler) HandleListBadges(ctx *gin.Context) {
	badges, err := h.svc.ListBadges(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListBadges -> h.svc.ListBadges -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, badges)
}

// HandleUpdateBadge godoc
// @Summary      Update a badge
// @Tags         badges
// @Accept       json
// @Produce      json
// @Param        badgeID   path      int true "badge id"
// @Param        request   body      request.UpdateBadgeRequest true "request body"
// @Success      200      {object}   domain.Badge
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /badges/{badgeID} [put]
// @Security     BearerAuth
func (h *BadgeHandler) HandleUpdateBadge(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "badgeID")
	if !ok {
		return
	}

	var req request.UpdateBadgeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	badge, err := h.svc.UpdateBadge(ctx.Request.Context(), domain.Badge{
		ID:           id,
		Name:         req.Name,
		Description:  req.Description,
		BadgeType:    req.BadgeType,
		Requirements: req.Requirements,
	})
	if err != nil {
		if errors.Is(err, service.ErrBadgeNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("badge", "id", strconv.FormatUint(uint64(id), 10)))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateBadge -> h.svc.UpdateBadge -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, badge)
}

// HandleDeleteBadge godoc
// @Summary      Delete a badge
// @Tags         badges
// @Produce      json
// @Param        badgeID   path      int true "badge id"
// @Success      200      {object}   response.MessageResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /badges/{badgeID} [delete]
// @Security     BearerAuth
func (h *BadgeHandler) HandleDeleteBadge(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "badgeID")
	if !ok {
		return
	}

	if err := h.svc.DeleteBadge(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrBadgeNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("badge", "id", strconv.FormatUint(uint64(id), 10)))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteBadge -> h.svc.DeleteBadge -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "Badge deleted."})
}

// HandleAwardBadge godoc
// @Summary      Award a badge to a scout
// @Tags         badges
// @Accept       json
// @Produce      json
// @Param        request   body      request.AwardBadgeRequest true "request body"
// @Success      201      {object}   domain.BadgeAward
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /badges/awards [post]
// @Security     BearerAuth
func (h *BadgeHandler) HandleAwardBadge(ctx *gin.Context) {
	var req request.AwardBadgeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	award, err := h.svc.AwardBadge(ctx.Request.Context(), domain.BadgeAward{
		ScoutID:            req.ScoutID,
		BadgeID:            req.BadgeID,
		DateEarned:         req.ParsedDateEarned(),
		PhysicallyObtained: req.PhysicallyObtained,
		AwardedBy:          ctx.GetString(middleware.ContextKeyAccountID),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrScoutNotFound):
			response.RenderErr(ctx, response.ErrNotFound("scout", "id", strconv.FormatUint(uint64(req.ScoutID), 10)))
		case errors.Is(err, service.ErrBadgeNotFound):
			response.RenderErr(ctx, response.ErrNotFound("badge", "id", strconv.FormatUint(uint64(req.BadgeID), 10)))
		default:
			err = fmt.Errorf("v1.HandleAwardBadge -> h.svc.AwardBadge -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, award)
}

// HandleRevokeAward godoc
// @Summary      Revoke an awarded badge
// @Tags         badges
// @Produce      json
// @Param        awardID   path      int true "award id"
// @Success      200      {object}   response.MessageResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /badges/awards/{awardID} [delete]
// @Security     BearerAuth
func (h *BadgeHandler) HandleRevokeAward(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "awardID")
	if !ok {
		return
	}

	if err := h.svc.RevokeAward(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrAwardNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("badge award", "id", strconv.FormatUint(uint64(id), 10)))
			return
		}

		err = fmt.Errorf("v1.HandleRevokeAward -> h.svc.RevokeAward -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "Badge award revoked."})
}

// HandleScoutAwards godoc
// @Summary      List a scout's awarded badges
// @Tags         badges
// @Produce      json
// @Param        scoutID              path   int     true  "scout id"
// @Param        physically_obtained  query  boolean false "narrow to physically handed out or not"
// @Success      200      {array}    domain.BadgeAward
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /scouts/{scoutID}/badges [get]
// @Security     BearerAuth
func (h *BadgeHandler) HandleScoutAwards(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "scoutID")
	if !ok {
		return
	}

	physicallyObtained, ok := parseBoolQuery(ctx, "physically_obtained")
	if !ok {
		return
	}

	awards, err := h.svc.ScoutAwards(ctx.Request.Context(), id, physicallyObtained)
	if err != nil {
		err = fmt.Errorf("v1.HandleScoutAwards -> h.svc.ScoutAwards -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, awards)
}
