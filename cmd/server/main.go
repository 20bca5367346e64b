// Package main is the entry point for the enrollment and quote practice
// server.
package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/yourusername/quotelab/internal/auth"
	"github.com/yourusername/quotelab/internal/config"
	"github.com/yourusername/quotelab/internal/home"
	"github.com/yourusername/quotelab/internal/middleware"
	"github.com/yourusername/quotelab/internal/practice"
	"github.com/yourusername/quotelab/internal/student"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to reach MongoDB: %v", err)
	}

	store := student.NewStore(client.Database(cfg.MongoDB))
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create student indexes: %v", err)
	}

	// Default middleware: Logger, Recovery.
	router := gin.Default()
	router.Use(middleware.RequestID())

	// Session cookies are signed with the secret key; tampering
	// invalidates the whole session. SameSite is Lax so the cookie
	// survives the redirect after login.
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Production(),
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions(auth.SessionCookieName, sessionStore))

	router.LoadHTMLGlob("web/templates/*.html")

	setupRoutes(router, store)

	addr := ":" + cfg.Port
	log.Printf("Starting server on %s (environment: %s)", addr, cfg.Environment)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRoutes wires the route table. Everything inside the RequireLogin
// group redirects to /login when no session is present.
func setupRoutes(router *gin.Engine, store *student.Store) {
	router.GET("/health", handleHealth)

	authManager := auth.NewManager(store)
	dashboard := home.NewHandler(store)
	wizard := practice.NewHandler()

	router.GET("/", handleIndex)
	router.GET("/signup", authManager.ShowSignup)
	router.POST("/signup", authManager.Signup)
	router.GET("/login", authManager.ShowLogin)
	router.POST("/login", authManager.Login)
	router.GET("/logout", authManager.Logout)

	protected := router.Group("", authManager.RequireLogin())
	{
		protected.GET("/home", dashboard.Show)

		protected.GET("/practice", wizard.ShowStep1)
		protected.GET("/practice/step1", wizard.ShowStep1)
		protected.POST("/practice/step1", wizard.SubmitStep1)
		protected.GET("/practice/step2", wizard.ShowStep2)
		protected.POST("/practice/step2", wizard.SubmitStep2)
		protected.GET("/practice/step3", wizard.ShowStep3)
		protected.POST("/practice/step3", wizard.SubmitStep3)
		protected.GET("/practice/step4", wizard.ShowStep4)
		protected.GET("/practice/step5", wizard.ShowStep5)
		protected.GET("/practice/reset", wizard.Reset)
	}
}

// handleIndex sends the browser to the dashboard or the login form
// depending on whether a session exists.
func handleIndex(c *gin.Context) {
	if auth.LoggedIn(sessions.Default(c)) {
		c.Redirect(http.StatusSeeOther, "/home")
		return
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

// handleHealth is the liveness check endpoint.
func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "quotelab",
	})
}
