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

type NoticeService interface {
	CreateNotice(ctx context.Context, notice domain.Notice) (domain.Notice, error)
	GetNotice(ctx context.Context, id uint) (domain.Notice, error)
	ListNotices(ctx context.Context, activeOnly bool) ([]domain.Notice, error)
	UpdateNotice(ctx context.Context, notice domain.Notice) (domain.Notice, error)
	DeleteNotice(ctx context.Context, id uint) error
}

type NoticeHandler struct {
	svc NoticeService
}

func NewNoticeHandler(svc NoticeService) *NoticeHandler {
	return &NoticeHandler{
		svc: svc,
	}
}

// HandleCreateNotice godoc
// @Summary      Post a notice
// @Tags         notices
// @Accept       json
// @Produce      json
// @Param        request   body      request.CreateNoticeRequest true "request body"
// @Success      201      {object}   domain.Notice
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /notices [post]
// @Security     BearerAuth
func (h *NoticeHandler) HandleCreateNotice(ctx *gin.Context) {
	var req request.CreateNoticeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	notice, err := h.svc.CreateNotice(ctx.Request.Context(), domain.Notice{
		Title:       req.Title,
		Description: req.Description,
		CreatedBy:   ctx.GetString(middleware.ContextKeyAccountID),
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateNotice -> h.svc.CreateNotice -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, notice)
}

// HandleGetNotice godoc
// @Summary      Get a notice
// @Tags         notices
// @Produce      json
// @Param        noticeID  path      int true "notice id"
// @Success      200      {object}   domain.Notice
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /notices/{noticeID} [get]
// @Security     BearerAuth
func (h *NoticeHandler) HandleGetNotice(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "noticeID")
	if !ok {
		return
	}

	notice, err := h.svc.GetNotice(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNoticeNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("notice", "id", strconv.FormatUint(uint64(id), 10)))
			return
		}

		err = fmt.Errorf("v1.HandleGetNotice -> h.svc.GetNotice -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, notice)
}

// HandleListNotices lists every notice, active or not. Leaders only.
//
// HandleListNotices godoc
// @Summary      List notices
// @Tags         notices
// @Produce      json
// @Success      200      {array}    domain.Notice
// @Failure      500      {object}   response.Err
// @Router       /notices [get]
// @Security     BearerAuth
func (h *NoticeHandler) HandleListNotices(ctx *gin.Context) {
	h.listNotices(ctx, false)
}

// HandleListActiveNotices is the member-facing noticeboard: only active
// notices are returned regardless of caller role.
//
// HandleListActiveNotices godoc
// @Summary      List active notices
// @Tags         notices
// @Produce      json
// @Success      200      {array}    domain.Notice
// @Failure      500      {object}   response.Err
// @Router       /noticeboard [get]
// @Security     BearerAuth
func (h *NoticeHandler) HandleListActiveNotices(ctx *gin.Context) {
	h.listNotices(ctx, true)
}

func (h *NoticeHandler) listNotices(ctx *gin.Context, activeOnly bool) {
	notices, err := h.svc.ListNotices(ctx.Request.Context(), activeOnly)
	if err != nil {
		err = fmt.Errorf("v1.listNotices -> h.svc.ListNotices -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, notices)
}

// HandleUpdateNotice godoc
// @Summary      Update a notice
// @Tags         notices
// @Accept       json
// @Produce      json
// @Param        noticeID  path      int true "notice id"
// @Param        request   body      request.UpdateNoticeRequest true "request body"
// @Success      200      {object}   domain.Notice
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /notices/{noticeID} [put]
// @Security     BearerAuth
func (h *NoticeHandler) HandleUpdateNotice(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "noticeID")
	if !ok {
		return
	}

	var req request.UpdateNoticeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	notice, err := h.svc.UpdateNotice(ctx.Request.Context(), domain.Notice{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Active:      *req.Active,
	})
	if err != nil {
		if errors.Is(err, service.ErrNoticeNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("notice", "id", strconv.FormatUint(uint64(id), 10)))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateNotice -> h.svc.UpdateNotice -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, notice)
}

// HandleDeleteNotice godoc
// @Summary      Delete a notice
// @Tags         notices
// @Produce      json
// @Param        noticeID  path      int true "notice id"
// @Success      200      {object}   response.MessageResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /notices/{noticeID} [delete]
// @Security     BearerAuth
func (h *NoticeHandler) HandleDeleteNotice(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "noticeID")
	if !ok {
		return
	}

	if err := h.svc.DeleteNotice(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNoticeNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("notice", "id", strconv.FormatUint(uint64(id), 10)))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteNotice -> h.svc.DeleteNotice -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "Notice deleted."})
}
