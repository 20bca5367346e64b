// Package home renders the post-login dashboard.
package home

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/quotelab/internal/auth"
)

// Store is the slice of the student store the dashboard needs.
type Store interface {
	MarkLoggedIn(ctx context.Context, userID string) error
}

// Handler serves the dashboard.
type Handler struct {
	store Store
}

// NewHandler creates the dashboard handler.
func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// Show renders the dashboard. On the first view after a fresh login it
// records the login on the student record and drops the session flag,
// then renders with the pre-flip value so the page still greets a
// first-time user.
func (h *Handler) Show(c *gin.Context) {
	session := sessions.Default(c)
	id, ok := auth.IdentityFrom(session)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	if id.IsFirstLogin {
		if err := h.store.MarkLoggedIn(c.Request.Context(), id.UserID); err != nil {
			log.Printf("marking first login failed: %v", err)
			c.String(http.StatusInternalServerError, "internal server error")
			return
		}
		if err := auth.ClearFirstLogin(session); err != nil {
			log.Printf("saving session failed: %v", err)
			c.String(http.StatusInternalServerError, "internal server error")
			return
		}
	}

	c.HTML(http.StatusOK, "home.html", gin.H{
		"UserID":         id.UserID,
		"RegistrationID": id.RegistrationID,
		"FirstName":      id.FirstName,
		"LastName":       id.LastName,
		"IsFirstLogin":   id.IsFirstLogin,
	})
}
