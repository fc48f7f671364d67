package api

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"

	"techpulse/app/auth"
	"techpulse/app/database"
)

const (
	sessionCookieName = "techpulse_session"
	sessionMaxAge     = 7 * 24 * 3600

	ctxUserKey = "user"
)

// NewServer creates the HTTP engine with all routes configured
func NewServer(handler *Handler, authService *auth.Service, corsOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())
	r.Use(corsMiddleware(corsOrigins))

	setupRoutes(r, handler, authService)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler, authService *auth.Service) {
	api := r.Group("/api")

	api.GET("/health", handler.GetHealth)
	api.GET("/test", handler.GetTest)

	api.GET("/news", handler.GetNews)
	api.POST("/ask", handler.Ask)
	api.POST("/generate-article", handler.GenerateArticle)

	api.POST("/register", handler.Register)
	api.POST("/login", handler.Login)

	authed := api.Group("")
	authed.Use(requireAuth(authService))
	{
		authed.POST("/logout", handler.Logout)
		authed.GET("/user", handler.GetUser)
	}

	api.GET("/big-tech-matrix", handler.GetMatrix)
	api.POST("/big-tech-updates", handler.CreateUpdate)
	api.GET("/big-tech/companies/:company/updates", handler.GetCompanyUpdates)
	api.GET("/big-tech/categories/:category/updates", handler.GetCategoryUpdates)
}

// corsMiddleware allows the configured browser origins. A "*" entry allows
// everyone but disables credentials, per the fetch spec.
func corsMiddleware(origins []string) gin.HandlerFunc {
	allowAll := slices.Contains(origins, "*")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		switch {
		case allowAll:
			c.Header("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(origins, origin):
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Vary", "Origin")
		}

		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// requireAuth gates a route on a valid session cookie and stores the
// resolved account in the request context.
func requireAuth(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookieName)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		user, err := authService.UserForToken(token)
		if err != nil {
			if !errors.Is(err, auth.ErrNotAuthenticated) {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Session lookup failed"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		c.Set(ctxUserKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) *database.User {
	return c.MustGet(ctxUserKey).(*database.User)
}

func setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetCookie(sessionCookieName, token, maxAge, "/", "", false, true)
}
