// Package auth implements signup, login, logout and the login guard for
// the students collection.
package auth

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/quotelab/internal/student"
)

// Form error messages. Login deliberately uses one message for both
// unknown users and wrong passwords.
const (
	msgConflict           = "Email or User ID already exists"
	msgInvalidCredentials = "Invalid User ID or password"
)

// StudentStore is the slice of the student store the auth flow needs.
type StudentStore interface {
	Exists(ctx context.Context, email, userID string) (bool, error)
	Insert(ctx context.Context, st student.Student) (string, error)
	FindByUserID(ctx context.Context, userID string) (*student.Student, error)
}

// Manager wires the auth handlers to the store.
type Manager struct {
	store StudentStore
}

// NewManager creates the auth manager.
func NewManager(store StudentStore) *Manager {
	return &Manager{store: store}
}

// ShowSignup renders the signup form, sending an already authenticated
// browser to the dashboard instead.
func (m *Manager) ShowSignup(c *gin.Context) {
	if LoggedIn(sessions.Default(c)) {
		c.Redirect(http.StatusSeeOther, "/home")
		return
	}
	c.HTML(http.StatusOK, "signup.html", gin.H{})
}

// Signup handles the signup submission: validate, check uniqueness,
// hash, insert, establish the session.
func (m *Manager) Signup(c *gin.Context) {
	form, msg := parseSignupForm(c)
	if msg != "" {
		c.HTML(http.StatusOK, "signup.html", gin.H{"Error": msg, "Form": form})
		return
	}

	taken, err := m.store.Exists(c.Request.Context(), form.Email, form.UserID)
	if err != nil {
		serverError(c, err)
		return
	}
	if taken {
		c.HTML(http.StatusOK, "signup.html", gin.H{"Error": msgConflict, "Form": form})
		return
	}

	hash, err := HashPassword(form.Password)
	if err != nil {
		serverError(c, err)
		return
	}

	id, err := m.store.Insert(c.Request.Context(), student.Student{
		Email:             form.Email,
		FirstName:         form.FirstName,
		LastName:          form.LastName,
		UserID:            form.UserID,
		PasswordHash:      hash,
		HasLoggedInBefore: false,
	})
	if errors.Is(err, student.ErrDuplicate) {
		// Lost the race between the pre-check and the insert; the
		// unique index is the authoritative guard.
		c.HTML(http.StatusOK, "signup.html", gin.H{"Error": msgConflict, "Form": form})
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}

	if err := SaveIdentity(sessions.Default(c), Identity{
		UserID:         form.UserID,
		RegistrationID: id,
		FirstName:      form.FirstName,
		LastName:       form.LastName,
		IsFirstLogin:   true,
	}); err != nil {
		serverError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/home")
}

// ShowLogin renders the login form, sending an already authenticated
// browser to the dashboard instead.
func (m *Manager) ShowLogin(c *gin.Context) {
	if LoggedIn(sessions.Default(c)) {
		c.Redirect(http.StatusSeeOther, "/home")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// Login handles the login submission. The store is never mutated here;
// the first-login flag is flipped by the dashboard handler.
func (m *Manager) Login(c *gin.Context) {
	form, msg := parseLoginForm(c)
	if msg != "" {
		c.HTML(http.StatusOK, "login.html", gin.H{"Error": msg, "UserID": form.UserID})
		return
	}

	st, err := m.store.FindByUserID(c.Request.Context(), form.UserID)
	if err != nil && !errors.Is(err, student.ErrNotFound) {
		serverError(c, err)
		return
	}
	if err != nil || !VerifyPassword(st.PasswordHash, form.Password) {
		c.HTML(http.StatusOK, "login.html", gin.H{"Error": msgInvalidCredentials, "UserID": form.UserID})
		return
	}

	if err := SaveIdentity(sessions.Default(c), Identity{
		UserID:         st.UserID,
		RegistrationID: st.ID.Hex(),
		FirstName:      st.FirstName,
		LastName:       st.LastName,
		IsFirstLogin:   !st.HasLoggedInBefore,
	}); err != nil {
		serverError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/home")
}

// Logout clears the entire session, wizard draft included.
func (m *Manager) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		serverError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

func serverError(c *gin.Context, err error) {
	log.Printf("auth request failed: %v", err)
	c.String(http.StatusInternalServerError, "internal server error")
	c.Abort()
}
