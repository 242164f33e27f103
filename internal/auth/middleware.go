package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lshigami/Compass/internal/dto"
	"github.com/lshigami/Compass/internal/model"
	"github.com/rs/zerolog/log"
)

const (
	contextUserID = "auth.user_id"
	contextRole   = "auth.role"
)

// RequireAuth rejects requests without a valid bearer token and stores the
// caller's identity on the gin context.
func RequireAuth(issuer *TokenIssuer) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing or malformed bearer token"})
			return
		}
		claims, err := issuer.Parse(strings.TrimSpace(token))
		if err != nil {
			log.Debug().Err(err).Str("path", ctx.FullPath()).Msg("Rejected access token")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid or expired token"})
			return
		}
		ctx.Set(contextUserID, claims.UserID)
		ctx.Set(contextRole, claims.Role)
		ctx.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.GetString(contextRole) != model.RoleAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Admin access required"})
			return
		}
		ctx.Next()
	}
}

// UserID returns the authenticated caller, if any.
func UserID(ctx *gin.Context) (uuid.UUID, bool) {
	value, ok := ctx.Get(contextUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok && id != uuid.Nil
}
