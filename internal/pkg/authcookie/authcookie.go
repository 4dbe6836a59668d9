package authcookie

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	AccessName  = "accessToken"
	RefreshName = "refreshToken"
)

// Setter centralizes cookie attributes so handlers and middleware stamp
// identical cookies. Both auth cookies are httpOnly; page scripts never
// read them.
type Setter struct {
	path   string
	secure bool
}

func NewSetter(secure bool) *Setter {
	return &Setter{path: "/", secure: secure}
}

func (s *Setter) Set(c *gin.Context, name, value string, ttl time.Duration) {
	c.SetCookie(name, value, int(ttl.Seconds()), s.path, "", s.secure, true)
}

func (s *Setter) Clear(c *gin.Context, name string) {
	c.SetCookie(name, "", -1, s.path, "", s.secure, true)
}

// ClearAuth drops both auth cookies. Any authentication failure clears
// them together so the client cannot hold a half-valid session.
func (s *Setter) ClearAuth(c *gin.Context) {
	s.Clear(c, AccessName)
	s.Clear(c, RefreshName)
}
