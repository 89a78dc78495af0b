package middleware

import (
	"fmt"
	"sync"

	"github.com/ariebrainware/cabinet-pediatrie/util"
	"github.com/gin-gonic/gin"
)

// Gate is the single authenticated flag of the application. There is no
// session or token: a successful login opens it and logout closes it.
type Gate struct {
	mu       sync.RWMutex
	open     bool
	username string
}

// Open marks username as logged in.
func (g *Gate) Open(username string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.open = true
	g.username = username
}

// Close logs out and returns the user that was logged in, if any.
func (g *Gate) Close() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	username := g.username
	g.open = false
	g.username = ""
	return username
}

// Status reports whether the gate is open and for whom.
func (g *Gate) Status() (bool, string) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.open, g.username
}

// RequireAuthentication rejects requests while the gate is closed.
func RequireAuthentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		gate := GetGate(c)
		if gate != nil {
			if open, _ := gate.Status(); open {
				c.Next()
				return
			}
		}
		util.LogUnauthorizedAccess(c.ClientIP(), c.Request.URL.Path)
		util.CallUserNotAuthorized(c, util.APIErrorParams{
			Msg: "Veuillez vous connecter",
			Err: fmt.Errorf("not authenticated"),
		})
		c.Abort()
	}
}
