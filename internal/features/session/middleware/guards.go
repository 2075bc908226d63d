// Package middleware holds the route guards: predicate-gated wrappers that
// decide whether a request may reach a protected subtree or must be turned
// back. Guards are pure synchronous checks against the session store
// snapshot; they never call the upstream backend. A token that dies after the
// check is caught by the upstream client's 401 policy instead.
package middleware

import (
	"github.com/gin-gonic/gin"

	"qfs-ledger-gateway/internal/common/errors"
	"qfs-ledger-gateway/internal/features/session/models"
	"qfs-ledger-gateway/internal/features/session/store"
	"qfs-ledger-gateway/internal/upstream"
)

const (
	ctxKeySID     = "session_sid"
	ctxKeyToken   = "session_token"
	ctxKeyProfile = "session_profile"
)

type Guard struct {
	resolver   *store.Resolver
	cookieName string
}

func NewGuard(resolver *store.Resolver, cookieName string) *Guard {
	return &Guard{resolver: resolver, cookieName: cookieName}
}

// SID returns the session ID from the request cookie, which may name a
// session that no tier knows about.
func (g *Guard) SID(c *gin.Context) string {
	sid, err := c.Cookie(g.cookieName)
	if err != nil {
		return ""
	}
	return sid
}

// RequireSession gates the user subtree. The only predicate is token
// presence: a profile with an admin role passes too, admins may use the user
// dashboard.
func (g *Guard) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := g.SID(c)
		if sid == "" {
			reject(c, errors.NewUnauthorizedError("Authentication required"))
			return
		}

		token, ok, err := g.resolver.Token(c.Request.Context(), sid)
		if err != nil {
			reject(c, errors.Wrap(err, errors.ErrCodeInternal, "Session lookup failed"))
			return
		}
		if !ok {
			reject(c, errors.NewUnauthorizedError("Authentication required"))
			return
		}

		c.Set(ctxKeySID, sid)
		c.Set(ctxKeyToken, token)
		c.Next()
	}
}

// RequireAdmin gates the admin subtree. No token sends the request to the
// login route; a token without a stored admin profile sends it to the user
// dashboard. The check is exactly role == "admin"; super_admin does not
// qualify, matching the platform's historical behavior.
func (g *Guard) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := g.SID(c)
		if sid == "" {
			reject(c, errors.NewUnauthorizedError("Authentication required"))
			return
		}

		token, ok, err := g.resolver.Token(c.Request.Context(), sid)
		if err != nil {
			reject(c, errors.Wrap(err, errors.ErrCodeInternal, "Session lookup failed"))
			return
		}
		if !ok {
			reject(c, errors.NewUnauthorizedError("Authentication required"))
			return
		}

		profile, ok, err := g.resolver.Profile(c.Request.Context(), sid)
		if err != nil {
			reject(c, errors.Wrap(err, errors.ErrCodeInternal, "Session lookup failed"))
			return
		}
		if !ok || !profile.IsAdmin() {
			reject(c, errors.NewForbiddenError("Admin access required"))
			return
		}

		c.Set(ctxKeySID, sid)
		c.Set(ctxKeyToken, token)
		c.Set(ctxKeyProfile, profile)
		c.Next()
	}
}

func reject(c *gin.Context, err *errors.AppError) {
	_ = c.Error(err)
	c.Abort()
}

// CredentialsFrom returns the upstream credentials stored by a guard. Nil
// when the route was not guarded.
func CredentialsFrom(c *gin.Context) *upstream.Credentials {
	sid, okSID := c.Get(ctxKeySID)
	token, okToken := c.Get(ctxKeyToken)
	if !okSID || !okToken {
		return nil
	}
	return &upstream.Credentials{SID: sid.(string), Token: token.(string)}
}

// ProfileFrom returns the admin profile stored by RequireAdmin.
func ProfileFrom(c *gin.Context) *models.Profile {
	v, ok := c.Get(ctxKeyProfile)
	if !ok {
		return nil
	}
	profile, _ := v.(*models.Profile)
	return profile
}
