package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tobscouts/troop-api/internal/domain"
)

// Context keys set by VerifySession for downstream handlers.
const (
	ContextKeyAccountID = "accountID"
	ContextKeyEmail     = "email"
	ContextKeyRole      = "userRole"
)

var (
	errMissingToken = errors.New("no access token provided")
	errInvalidToken = errors.New("invalid or expired access token")
	errNoRole       = errors.New("account holds no role")
)

// RoleFinder resolves the role row for an account id.
type RoleFinder interface {
	FindRole(ctx context.Context, accountID string) (domain.RoleAssignment, error)
}

// Authenticator verifies the identity provider's access tokens. The
// provider signs them HS256 with a shared secret, so they can be checked
// locally without a round trip.
type Authenticator struct {
	jwtSecret string
	roles     RoleFinder
}

func NewAuthenticator(jwtSecret string, roles RoleFinder) *Authenticator {
	return &Authenticator{
		jwtSecret: jwtSecret,
		roles:     roles,
	}
}

// VerifySession rejects requests without a valid bearer token, then loads
// the caller's role. A token whose account holds no role row is treated as
// unauthenticated.
func (a *Authenticator) VerifySession() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(ctx, errMissingToken)
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}

			return []byte(a.jwtSecret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(ctx, errInvalidToken)
			return
		}

		accountID, err := claims.GetSubject()
		if err != nil || accountID == "" {
			abortUnauthorized(ctx, errInvalidToken)
			return
		}

		role, err := a.roles.FindRole(ctx.Request.Context(), accountID)
		if err != nil {
			abortUnauthorized(ctx, errNoRole)
			return
		}

		ctx.Set(ContextKeyAccountID, accountID)
		if email, ok := claims["email"].(string); ok {
			ctx.Set(ContextKeyEmail, email)
		}
		ctx.Set(ContextKeyRole, role.Role)

		ctx.Next()
	}
}

// RequireRole gates a route group to callers holding the given role. It
// must run after VerifySession.
func RequireRole(role string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.GetString(ContextKeyRole) != role {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": fmt.Sprintf("%v role required", role),
			})
			return
		}

		ctx.Next()
	}
}

func abortUnauthorized(ctx *gin.Context, err error) {
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": err.Error(),
	})
}
