package auth

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/yourusername/quotelab/internal/student"
)

type stubStore struct {
	byUserID  map[string]*student.Student
	byEmail   map[string]bool
	inserted  []student.Student
	existsErr error
	insertErr error
}

func newStubStore() *stubStore {
	return &stubStore{
		byUserID: make(map[string]*student.Student),
		byEmail:  make(map[string]bool),
	}
}

func (s *stubStore) Exists(_ context.Context, email, userID string) (bool, error) {
	if s.existsErr != nil {
		return false, s.existsErr
	}
	if s.byEmail[email] {
		return true, nil
	}
	_, ok := s.byUserID[userID]
	return ok, nil
}

func (s *stubStore) Insert(_ context.Context, st student.Student) (string, error) {
	if s.insertErr != nil {
		return "", s.insertErr
	}
	s.inserted = append(s.inserted, st)
	return bson.NewObjectID().Hex(), nil
}

func (s *stubStore) FindByUserID(_ context.Context, userID string) (*student.Student, error) {
	st, ok := s.byUserID[userID]
	if !ok {
		return nil, student.ErrNotFound
	}
	return st, nil
}

const authTemplates = `{{define "signup.html"}}signup error={{.Error}}{{end}}` +
	`{{define "login.html"}}login error={{.Error}}{{end}}`

func newAuthRouter(store StudentStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(sessions.Sessions(SessionCookieName, cookie.NewStore([]byte("test-secret"))))
	router.SetHTMLTemplate(template.Must(template.New("auth").Parse(authTemplates)))

	m := NewManager(store)
	router.GET("/signup", m.ShowSignup)
	router.POST("/signup", m.Signup)
	router.GET("/login", m.ShowLogin)
	router.POST("/login", m.Login)
	router.GET("/logout", m.Logout)
	router.GET("/home", m.RequireLogin(), func(c *gin.Context) {
		id, _ := IdentityFrom(sessions.Default(c))
		c.String(http.StatusOK, "user=%s first=%t", id.UserID, id.IsFirstLogin)
	})
	return router
}

func postForm(router *gin.Engine, path string, values url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func get(router *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func validSignupForm() url.Values {
	return url.Values{
		"email":            {"jane@example.com"},
		"first_name":       {"Jane"},
		"last_name":        {"Doe"},
		"user_id":          {"jdoe"},
		"password":         {"secret123"},
		"confirm_password": {"secret123"},
	}
}

func TestSignupMissingFieldRejected(t *testing.T) {
	fields := []string{"email", "first_name", "last_name", "user_id", "password", "confirm_password"}
	for _, field := range fields {
		store := newStubStore()
		router := newAuthRouter(store)

		form := validSignupForm()
		form.Del(field)
		rec := postForm(router, "/signup", form, nil)

		if rec.Code != http.StatusOK {
			t.Fatalf("missing %s: status = %d, want 200", field, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "All fields are required") {
			t.Fatalf("missing %s: body = %q, want required-fields error", field, rec.Body.String())
		}
		if len(store.inserted) != 0 {
			t.Fatalf("missing %s: %d records inserted, want 0", field, len(store.inserted))
		}
	}
}

func TestSignupPasswordMismatchRejected(t *testing.T) {
	store := newStubStore()
	router := newAuthRouter(store)

	form := validSignupForm()
	form.Set("confirm_password", "different123")
	rec := postForm(router, "/signup", form, nil)

	if !strings.Contains(rec.Body.String(), "Passwords do not match") {
		t.Fatalf("body = %q, want mismatch error", rec.Body.String())
	}
	if len(store.inserted) != 0 {
		t.Fatalf("%d records inserted, want 0", len(store.inserted))
	}
}

func TestSignupShortPasswordRejected(t *testing.T) {
	store := newStubStore()
	router := newAuthRouter(store)

	form := validSignupForm()
	form.Set("password", "abc12")
	form.Set("confirm_password", "abc12")
	rec := postForm(router, "/signup", form, nil)

	if !strings.Contains(rec.Body.String(), "Password must be at least 6 characters") {
		t.Fatalf("body = %q, want short-password error", rec.Body.String())
	}
	if len(store.inserted) != 0 {
		t.Fatalf("%d records inserted, want 0", len(store.inserted))
	}
}

func TestSignupConflictRejected(t *testing.T) {
	store := newStubStore()
	store.byEmail["jane@example.com"] = true
	router := newAuthRouter(store)

	rec := postForm(router, "/signup", validSignupForm(), nil)

	if !strings.Contains(rec.Body.String(), "Email or User ID already exists") {
		t.Fatalf("body = %q, want conflict error", rec.Body.String())
	}
	if len(store.inserted) != 0 {
		t.Fatalf("%d records inserted, want 0", len(store.inserted))
	}
}

func TestSignupInsertRaceReportedAsConflict(t *testing.T) {
	// The pre-check passes but a concurrent signup wins the insert; the
	// duplicate-key error must surface as the same form error.
	store := newStubStore()
	store.insertErr = student.ErrDuplicate
	router := newAuthRouter(store)

	rec := postForm(router, "/signup", validSignupForm(), nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Email or User ID already exists") {
		t.Fatalf("body = %q, want conflict error", rec.Body.String())
	}
}

func TestSignupSuccess(t *testing.T) {
	store := newStubStore()
	router := newAuthRouter(store)

	rec := postForm(router, "/signup", validSignupForm(), nil)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/home" {
		t.Fatalf("Location = %q, want /home", loc)
	}
	if len(store.inserted) != 1 {
		t.Fatalf("%d records inserted, want 1", len(store.inserted))
	}

	st := store.inserted[0]
	if st.HasLoggedInBefore {
		t.Fatal("new record has HasLoggedInBefore = true, want false")
	}
	if st.PasswordHash == "secret123" {
		t.Fatal("password stored in plaintext")
	}
	if !VerifyPassword(st.PasswordHash, "secret123") {
		t.Fatal("stored hash does not verify against the plaintext")
	}

	// The session established by signup must open the protected area
	// with the first-login flag set.
	home := get(router, "/home", rec.Result().Cookies())
	if home.Code != http.StatusOK {
		t.Fatalf("GET /home status = %d, want 200", home.Code)
	}
	if body := home.Body.String(); body != "user=jdoe first=true" {
		t.Fatalf("GET /home body = %q", body)
	}
}

func TestLoginValidationError(t *testing.T) {
	store := newStubStore()
	router := newAuthRouter(store)

	rec := postForm(router, "/login", url.Values{"user_id": {"jdoe"}}, nil)

	if !strings.Contains(rec.Body.String(), "User ID and password are required") {
		t.Fatalf("body = %q, want validation error", rec.Body.String())
	}
}

func TestLoginGenericErrorForUnknownUserAndWrongPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	store := newStubStore()
	store.byUserID["jdoe"] = &student.Student{UserID: "jdoe", PasswordHash: hash}
	router := newAuthRouter(store)

	wrongPassword := postForm(router, "/login", url.Values{
		"user_id": {"jdoe"}, "password": {"not-it"},
	}, nil)
	unknownUser := postForm(router, "/login", url.Values{
		"user_id": {"nobody"}, "password": {"not-it"},
	}, nil)

	if wrongPassword.Body.String() != unknownUser.Body.String() {
		t.Fatalf("error bodies differ: %q vs %q", wrongPassword.Body.String(), unknownUser.Body.String())
	}
	if !strings.Contains(wrongPassword.Body.String(), "Invalid User ID or password") {
		t.Fatalf("body = %q, want generic credentials error", wrongPassword.Body.String())
	}
}

func TestLoginSetsFirstLoginFromRecord(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	tests := []struct {
		name              string
		hasLoggedInBefore bool
		wantBody          string
	}{
		{"never logged in", false, "user=jdoe first=true"},
		{"returning user", true, "user=jdoe first=false"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := newStubStore()
			store.byUserID["jdoe"] = &student.Student{
				UserID:            "jdoe",
				FirstName:         "Jane",
				LastName:          "Doe",
				PasswordHash:      hash,
				HasLoggedInBefore: tc.hasLoggedInBefore,
			}
			router := newAuthRouter(store)

			rec := postForm(router, "/login", url.Values{
				"user_id": {"jdoe"}, "password": {"correct-horse"},
			}, nil)
			if rec.Code != http.StatusSeeOther {
				t.Fatalf("status = %d, want 303", rec.Code)
			}

			home := get(router, "/home", rec.Result().Cookies())
			if body := home.Body.String(); body != tc.wantBody {
				t.Fatalf("GET /home body = %q, want %q", body, tc.wantBody)
			}
		})
	}
}

func TestLogoutClearsSession(t *testing.T) {
	store := newStubStore()
	router := newAuthRouter(store)

	signedUp := postForm(router, "/signup", validSignupForm(), nil)
	loggedOut := get(router, "/logout", signedUp.Result().Cookies())

	if loggedOut.Code != http.StatusSeeOther {
		t.Fatalf("logout status = %d, want 303", loggedOut.Code)
	}
	if loc := loggedOut.Header().Get("Location"); loc != "/login" {
		t.Fatalf("logout Location = %q, want /login", loc)
	}

	home := get(router, "/home", loggedOut.Result().Cookies())
	if home.Code != http.StatusSeeOther || home.Header().Get("Location") != "/login" {
		t.Fatalf("protected route after logout: status = %d, Location = %q", home.Code, home.Header().Get("Location"))
	}
}

func TestRequireLoginRedirectsAnonymous(t *testing.T) {
	router := newAuthRouter(newStubStore())

	rec := get(router, "/home", nil)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("Location = %q, want /login", loc)
	}
}

func TestAuthFormsRedirectWhenLoggedIn(t *testing.T) {
	store := newStubStore()
	router := newAuthRouter(store)

	signedUp := postForm(router, "/signup", validSignupForm(), nil)

	for _, path := range []string{"/signup", "/login"} {
		rec := get(router, path, signedUp.Result().Cookies())
		if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/home" {
			t.Fatalf("GET %s logged in: status = %d, Location = %q", path, rec.Code, rec.Header().Get("Location"))
		}
	}
}
