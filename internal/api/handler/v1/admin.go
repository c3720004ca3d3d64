package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tobscouts/troop-api/internal/api/handler/v1/request"
	"github.com/tobscouts/troop-api/internal/api/handler/v1/response"
	"github.com/tobscouts/troop-api/internal/domain"
	"github.com/tobscouts/troop-api/internal/service"
)

var errMissingAccessToken = errors.New("no access token provided")

type AdminService interface {
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	DeleteAccount(ctx context.Context, id string) error
	ConfirmEmail(ctx context.Context, id string) (domain.Account, error)
	SignIn(ctx context.Context, email, password string) (domain.Session, error)
	ForgotPassword(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, token, newPassword string) (domain.Account, error)
	VisibleScouts(ctx context.Context, token string) ([]domain.Scout, error)
	ListLeaders(ctx context.Context) ([]domain.Scout, error)
	PromoteLeader(ctx context.Context, accountID string) (domain.RoleAssignment, error)
	DemoteLeader(ctx context.Context, accountID string) error
}

type InviteService interface {
	InviteUser(ctx context.Context, inv service.Invitation) (domain.Account, error)
}

type AdminHandler struct {
	svc    AdminService
	invite InviteService
}

func NewAdminHandler(svc AdminService, invite InviteService) *AdminHandler {
	return &AdminHandler{
		svc:    svc,
		invite: invite,
	}
}

// HandleInviteUser godoc
// @Summary      Invite a user
// @Description  Creates an account, profile and role rows, then sends a password-reset email
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request   body      request.InviteUserRequest true "request body"
// @Success      200      {object}   response.InviteUserResponse
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /invite-user [post]
func (h *AdminHandler) HandleInviteUser(ctx *gin.Context) {
	var req request.InviteUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	account, err := h.invite.InviteUser(ctx.Request.Context(), service.Invitation{
		Email: req.Email,
		Role:  req.UserMetadata.UserRole,
		Name:  req.UserMetadata.Name,
		Rank:  req.UserMetadata.Rank,
		Crew:  req.UserMetadata.Crew,
	})
	if err != nil {
		renderInviteErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response.InviteUserResponse{
		Message: "User invited and password reset email sent.",
		User:    account,
	})
}

func renderInviteErr(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDuplicateAccount):
		response.RenderErr(ctx, response.ErrConflict(service.ErrDuplicateAccount))
	case errors.Is(err, service.ErrInvalidRole):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	default:
		err = fmt.Errorf("v1.HandleInviteUser -> h.invite.InviteUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}

// HandleListUsers godoc
// @Summary      List provider accounts
// @Tags         admin
// @Produce      json
// @Success      200      {array}    domain.Account
// @Failure      500      {object}   response.Err
// @Router       /list-users [get]
func (h *AdminHandler) HandleListUsers(ctx *gin.Context) {
	accounts, err := h.svc.ListAccounts(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListUsers -> h.svc.ListAccounts -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, accounts)
}

// HandleDeleteUser godoc
// @Summary      Delete a provider account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request   body      request.DeleteUserRequest true "request body"
// @Success      200      {object}   response.DeleteUserResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /delete-user [post]
func (h *AdminHandler) HandleDeleteUser(ctx *gin.Context) {
	var req request.DeleteUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.DeleteAccount(ctx.Request.Context(), req.UserID); err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("account", "id", req.UserID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteUser -> h.svc.DeleteAccount -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.DeleteUserResponse{
		Message: "User deleted successfully",
		UserID:  req.UserID,
	})
}

// HandleConfirmUserEmail godoc
// @Summary      Mark an account's email as confirmed
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request   body      request.ConfirmUserEmailRequest true "request body"
// @Success      200      {object}   response.ConfirmUserEmailResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /confirm-user-email [post]
func (h *AdminHandler) HandleConfirmUserEmail(ctx *gin.Context) {
	var req request.ConfirmUserEmailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	account, err := h.svc.ConfirmEmail(ctx.Request.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("account", "id", req.UserID))
			return
		}

		err = fmt.Errorf("v1.HandleConfirmUserEmail -> h.svc.ConfirmEmail -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.ConfirmUserEmailResponse{
		Message: "User email confirmed successfully",
		User:    account,
	})
}

// HandleSignIn godoc
// @Summary      Sign in with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request   body      request.SignInRequest true "request body"
// @Success      200      {object}   response.SignInResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /sign-in [post]
func (h *AdminHandler) HandleSignIn(ctx *gin.Context) {
	var req request.SignInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	session, err := h.svc.SignIn(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.RenderErr(ctx, response.ErrWrongCredentials(service.ErrInvalidCredentials))
			return
		}

		err = fmt.Errorf("v1.HandleSignIn -> h.svc.SignIn -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.SignInResponse{
		AccessToken:  session.AccessToken,
		TokenType:    session.TokenType,
		ExpiresIn:    session.ExpiresIn,
		RefreshToken: session.RefreshToken,
		User:         session.User,
	})
}

// HandleForgotPassword godoc
// @Summary      Send a password reset email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request   body      request.ForgotPasswordRequest true "request body"
// @Success      200      {object}   response.MessageResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/forgot-password [post]
func (h *AdminHandler) HandleForgotPassword(ctx *gin.Context) {
	var req request.ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.ForgotPassword(ctx.Request.Context(), req.Email); err != nil {
		err = fmt.Errorf("v1.HandleForgotPassword -> h.svc.ForgotPassword -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "Password reset email sent."})
}

// HandleUpdatePassword godoc
// @Summary      Set a new password for the token's owner
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request   body      request.UpdatePasswordRequest true "request body"
// @Success      200      {object}   domain.Account
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/update-password [post]
// @Security     BearerAuth
func (h *AdminHandler) HandleUpdatePassword(ctx *gin.Context) {
	token := bearerToken(ctx)
	if token == "" {
		response.RenderErr(ctx, response.ErrUnauthorized(errMissingAccessToken))
		return
	}

	var req request.UpdatePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	account, err := h.svc.UpdatePassword(ctx.Request.Context(), token, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			response.RenderErr(ctx, response.ErrUnauthorized(service.ErrInvalidToken))
			return
		}

		err = fmt.Errorf("v1.HandleUpdatePassword -> h.svc.UpdatePassword -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, account)
}

// HandleVisibleScouts godoc
// @Summary      List the scout rows visible to the caller's token
// @Description  Diagnostic passthrough: resolves the bearer token and applies the same visibility the row policies grant
// @Tags         admin
// @Produce      json
// @Success      200      {array}    domain.Scout
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /test-rls [get]
// @Security     BearerAuth
func (h *AdminHandler) HandleVisibleScouts(ctx *gin.Context) {
	token := bearerToken(ctx)
	if token == "" {
		response.RenderErr(ctx, response.ErrUnauthorized(errMissingAccessToken))
		return
	}

	scouts, err := h.svc.VisibleScouts(ctx.Request.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrRoleNotFound):
			response.RenderErr(ctx, response.ErrUnauthorized(errors.New("token holds no role")))
		case errors.Is(err, service.ErrScoutNotFound):
			response.RenderErr(ctx, response.ErrNotFound("scout", "token", "self"))
		default:
			err = fmt.Errorf("v1.HandleVisibleScouts -> h.svc.VisibleScouts -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, scouts)
}

// HandleListLeaders godoc
// @Summary      List leader profiles
// @Tags         leaders
// @Produce      json
// @Success      200      {array}    domain.Scout
// @Failure      500      {object}   response.Err
// @Router       /leaders [get]
// @Security     BearerAuth
func (h *AdminHandler) HandleListLeaders(ctx *gin.Context) {
	leaders, err := h.svc.ListLeaders(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListLeaders -> h.svc.ListLeaders -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, leaders)
}

// HandlePromoteLeader godoc
// @Summary      Grant the leader role to an account
// @Tags         leaders
// @Accept       json
// @Produce      json
// @Param        request   body      request.PromoteLeaderRequest true "request body"
// @Success      201      {object}   domain.RoleAssignment
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /leaders [post]
// @Security     BearerAuth
func (h *AdminHandler) HandlePromoteLeader(ctx *gin.Context) {
	var req request.PromoteLeaderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	role, err := h.svc.PromoteLeader(ctx.Request.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, service.ErrRoleExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrRoleExists))
			return
		}

		err = fmt.Errorf("v1.HandlePromoteLeader -> h.svc.PromoteLeader -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, role)
}

// HandleDemoteLeader godoc
// @Summary      Remove the leader role from an account
// @Tags         leaders
// @Produce      json
// @Param        accountID  path      string true "account id"
// @Success      200      {object}   response.MessageResponse
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /leaders/{accountID} [delete]
// @Security     BearerAuth
func (h *AdminHandler) HandleDemoteLeader(ctx *gin.Context) {
	accountID := ctx.Param("accountID")

	if err := h.svc.DemoteLeader(ctx.Request.Context(), accountID); err != nil {
		if errors.Is(err, service.ErrRoleNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("leader role", "account id", accountID))
			return
		}

		err = fmt.Errorf("v1.HandleDemoteLeader -> h.svc.DemoteLeader -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "Leader role removed."})
}
