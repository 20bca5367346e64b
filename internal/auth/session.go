package auth

import "github.com/gin-contrib/sessions"

// SessionCookieName is the signed cookie carrying the whole session.
const SessionCookieName = "ql_session"

// Session keys for the authenticated identity.
const (
	sessionKeyUserID         = "user_id"
	sessionKeyRegistrationID = "registration_id"
	sessionKeyFirstName      = "first_name"
	sessionKeyLastName       = "last_name"
	sessionKeyIsFirstLogin   = "is_first_login"
)

// Identity is the authenticated slice of the session.
type Identity struct {
	UserID         string
	RegistrationID string
	FirstName      string
	LastName       string
	IsFirstLogin   bool
}

// SaveIdentity writes the identity into the session and persists it.
func SaveIdentity(session sessions.Session, id Identity) error {
	session.Set(sessionKeyUserID, id.UserID)
	session.Set(sessionKeyRegistrationID, id.RegistrationID)
	session.Set(sessionKeyFirstName, id.FirstName)
	session.Set(sessionKeyLastName, id.LastName)
	session.Set(sessionKeyIsFirstLogin, id.IsFirstLogin)
	return session.Save()
}

// IdentityFrom reads the identity back out of the session. ok is false
// when no user is logged in.
func IdentityFrom(session sessions.Session) (Identity, bool) {
	userID, ok := session.Get(sessionKeyUserID).(string)
	if !ok || userID == "" {
		return Identity{}, false
	}
	id := Identity{UserID: userID}
	id.RegistrationID, _ = session.Get(sessionKeyRegistrationID).(string)
	id.FirstName, _ = session.Get(sessionKeyFirstName).(string)
	id.LastName, _ = session.Get(sessionKeyLastName).(string)
	id.IsFirstLogin, _ = session.Get(sessionKeyIsFirstLogin).(bool)
	return id, true
}

// ClearFirstLogin drops the first-login marker for the current login,
// so the greeting fires once per login rather than once per page view.
func ClearFirstLogin(session sessions.Session) error {
	session.Set(sessionKeyIsFirstLogin, false)
	return session.Save()
}

// LoggedIn reports whether the session carries an authenticated user.
func LoggedIn(session sessions.Session) bool {
	_, ok := IdentityFrom(session)
	return ok
}
