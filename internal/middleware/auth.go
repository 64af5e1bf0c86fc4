package middleware

import (
	"strings"

	"cms-admin/auth"
	"cms-admin/internal/errors"

	"github.com/gin-gonic/gin"
)

type Auth struct {
	Secret []byte
}

// AuthMiddleWare accepts requests that carry a valid bearer token.
func (m *Auth) AuthMiddleWare() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if authHeader == "" || !ok || token == "" {
			ctx.Error(errors.Unauthorized("Authorization is not found!", nil))
			ctx.Abort()
			return
		}

		subject, err := auth.VerifyJWT(m.Secret, token)
		if err != nil {
			ctx.Error(errors.Unauthorized("Invalid token!", err))
			ctx.Abort()
			return
		}

		ctx.Set("subject", subject)
		ctx.Next()
	}
}
