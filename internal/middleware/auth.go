package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/go-nick/demo-bank/pkg/tokenpkg"
	"github.com/go-nick/demo-bank/pkg/web"
)

// Constants for the authorization header handling.
const (
	AuthHeaderKey  = "authorization"
	AuthTypeBearer = "bearer"
	AuthPayloadKey = "authorization_payload"
)

// AddAuthorization creates a token and sets the authorization header of
// the given request. Used by handler tests.
func AddAuthorization(r *http.Request, tokenMaker tokenpkg.Maker, authType, username string, duration time.Duration) error {
	token, _, err := tokenMaker.CreateToken(username, duration)
	if err != nil {
		return err
	}

	r.Header.Set(AuthHeaderKey, fmt.Sprintf("%s %s", authType, token))

	return nil
}

// AuthMiddleware aborts any request without a valid bearer token and
// stores the verified token payload in the gin context.
func AuthMiddleware(tokenMaker tokenpkg.Maker) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader(AuthHeaderKey)
		if len(authHeader) == 0 {
			err := errors.New("authorization header is not provided")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))

			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) < 2 {
			err := errors.New("invalid authorization header format")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))

			return
		}

		authType := strings.ToLower(fields[0])
		if authType != AuthTypeBearer {
			err := fmt.Errorf("unsupported authorization type %s", authType)
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))

			return
		}

		accessToken := fields[1]

		payload, err := tokenMaker.VerifyToken(accessToken)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		ctx.Set(AuthPayloadKey, payload)
		ctx.Next()
	}
}
