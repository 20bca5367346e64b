package auth

import "github.com/gin-gonic/gin"

// signupForm is the validated signup submission. Fields are extracted
// explicitly at the boundary before any business logic runs.
type signupForm struct {
	Email           string
	FirstName       string
	LastName        string
	UserID          string
	Password        string
	ConfirmPassword string
}

// parseSignupForm extracts and validates the signup fields. The second
// return value is the inline form error, empty on success.
func parseSignupForm(c *gin.Context) (signupForm, string) {
	f := signupForm{
		Email:           c.PostForm("email"),
		FirstName:       c.PostForm("first_name"),
		LastName:        c.PostForm("last_name"),
		UserID:          c.PostForm("user_id"),
		Password:        c.PostForm("password"),
		ConfirmPassword: c.PostForm("confirm_password"),
	}
	switch {
	case f.Email == "" || f.FirstName == "" || f.LastName == "" ||
		f.UserID == "" || f.Password == "" || f.ConfirmPassword == "":
		return f, "All fields are required"
	case f.Password != f.ConfirmPassword:
		return f, "Passwords do not match"
	case len(f.Password) < minPasswordLength:
		return f, "Password must be at least 6 characters"
	}
	return f, ""
}

// loginForm is the validated login submission.
type loginForm struct {
	UserID   string
	Password string
}

func parseLoginForm(c *gin.Context) (loginForm, string) {
	f := loginForm{
		UserID:   c.PostForm("user_id"),
		Password: c.PostForm("password"),
	}
	if f.UserID == "" || f.Password == "" {
		return f, "User ID and password are required"
	}
	return f, ""
}
