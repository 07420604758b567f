package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/satriajanaka/erp-backend/internal/domain/policy"
	"github.com/satriajanaka/erp-backend/internal/domain/repository"
	"github.com/satriajanaka/erp-backend/pkg/helpers"
	"github.com/satriajanaka/erp-backend/pkg/response"
)

const CtxPrincipalKey = "principal"

// Auth validates the bearer access token and resolves the caller into a
// policy principal. The principal (role, linked employee profile) is read
// from the database on every request so role or department changes apply
// immediately; the token only proves identity.
func Auth(principals repository.PrincipalRepository, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			resp := response.Error[any](c, http.StatusUnauthorized, "missing bearer token", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			resp := response.Error[any](c, http.StatusUnauthorized, "invalid access token", err.Error())
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		p, err := principals.GetPrincipal(c.Request.Context(), claims.UserID)
		if err != nil {
			resp := response.Error[any](c, http.StatusUnauthorized, "unknown user", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		c.Set(CtxPrincipalKey, p)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}

// PrincipalFrom returns the principal stored by Auth.
func PrincipalFrom(c *gin.Context) (policy.Principal, bool) {
	v, ok := c.Get(CtxPrincipalKey)
	if !ok {
		return policy.Principal{}, false
	}
	p, ok := v.(policy.Principal)
	return p, ok
}
