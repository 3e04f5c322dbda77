package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitquest/fitquest/utils"
)

// ContextUserKey is the key under which the session's user snapshot is
// stored in the Gin context.
const ContextUserKey = "current_user"

// ContextTokenKey stores the raw session token for handlers that need to
// refresh or destroy the session.
const ContextTokenKey = "session_token"

// SessionRequired gates protected pages: a request without a valid session
// is redirected to /login with no side effect.
func SessionRequired(sessions *utils.SessionStore) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(utils.SessionCookieName)
		if err != nil || token == "" {
			ctx.Redirect(http.StatusFound, "/login")
			ctx.Abort()
			return
		}

		user, ok := sessions.Get(token)
		if !ok {
			ctx.Redirect(http.StatusFound, "/login")
			ctx.Abort()
			return
		}

		ctx.Set(ContextUserKey, user)
		ctx.Set(ContextTokenKey, token)
		ctx.Next()
	}
}
