package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"techpulse/app/auth"
	"techpulse/app/database"
	"techpulse/app/llm"
	"techpulse/app/news"
)

func NewHandler(aggregator ArticleFetcher, extractor ContentEnricher,
	assistant Assistant, authService *auth.Service,
	updates database.UpdateRepository) *Handler {
	return &Handler{
		aggregator: aggregator,
		extractor:  extractor,
		assistant:  assistant,
		auth:       authService,
		updates:    updates,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "Service is running"})
}

func (h *Handler) GetTest(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Backend API is working"})
}

func (h *Handler) GetNews(c *gin.Context) {
	selector := c.DefaultQuery("source", news.SelectorAll)

	articles, err := h.aggregator.Fetch(c.Request.Context(), selector)
	if err != nil {
		slog.Error("Article aggregation failed", "selector", selector, "error", err)

		switch {
		case errors.Is(err, news.ErrInvalidAPIKey):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid news search API key"})
		case errors.Is(err, news.ErrRateLimited):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "News search rate limit exceeded"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch articles"})
		}
		return
	}

	if c.Query("full") == "true" && h.extractor != nil {
		articles = h.extractor.Enrich(c.Request.Context(), articles)
	}

	c.JSON(http.StatusOK, articles)
}

func (h *Handler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Question == "" || req.Title == "" || req.Summary == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	answer, err := h.assistant.Ask(c.Request.Context(), req.Question, req.Title, req.Summary)
	if errors.Is(err, llm.ErrMissingFields) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if err != nil {
		slog.Error("Answer generation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate answer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

func (h *Handler) GenerateArticle(c *gin.Context) {
	var req generateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Topic == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Topic is required"})
		return
	}

	article, err := h.assistant.WriteArticle(c.Request.Context(), req.Topic)
	if err != nil {
		slog.Error("Article generation failed", "topic", req.Topic, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate article"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": article, "status": "success"})
}

func (h *Handler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	user, err := h.auth.Register(req.Username, req.Password)
	if errors.Is(err, database.ErrUsernameTaken) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already taken"})
		return
	}
	if err != nil {
		slog.Error("Registration failed", "username", req.Username, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Registration successful", "username": user.Username})
}

func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	token, err := h.auth.Login(req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}
	if err != nil {
		slog.Error("Login failed", "username", req.Username, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	setSessionCookie(c, token, sessionMaxAge)
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "username": req.Username})
}

func (h *Handler) Logout(c *gin.Context) {
	if token, err := c.Cookie(sessionCookieName); err == nil {
		h.auth.Logout(token)
	}

	setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

func (h *Handler) GetUser(c *gin.Context) {
	user := currentUser(c)
	c.JSON(http.StatusOK, gin.H{"id": user.ID, "username": user.Username})
}

func (h *Handler) GetMatrix(c *gin.Context) {
	matrix, err := h.updates.Matrix()
	if err != nil {
		slog.Error("Database error", "operation", "matrix", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load company matrix"})
		return
	}

	c.JSON(http.StatusOK, matrix)
}

func (h *Handler) CreateUpdate(c *gin.Context) {
	var req createUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" || req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company, category, title and content are required"})
		return
	}

	company, err := database.ParseCompany(req.Company)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := database.ParseUpdateCategory(req.Category)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update, err := h.updates.CreateUpdate(company, category, req.Title, req.Content, req.SourceURL)
	if err != nil {
		slog.Error("Database error", "operation", "create_update", "company", company, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create update"})
		return
	}

	c.JSON(http.StatusCreated, update)
}

func (h *Handler) GetCompanyUpdates(c *gin.Context) {
	company, err := database.ParseCompany(c.Param("company"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates, err := h.updates.LatestByCompany(company, queryLimit(c, 5))
	if err != nil {
		slog.Error("Database error", "operation", "latest_by_company", "company", company, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load updates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"company": company, "updates": emptyIfNil(updates)})
}

func (h *Handler) GetCategoryUpdates(c *gin.Context) {
	category, err := database.ParseUpdateCategory(c.Param("category"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates, err := h.updates.ByCategory(category, queryLimit(c, 10))
	if err != nil {
		slog.Error("Database error", "operation", "by_category", "category", category, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load updates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category, "updates": emptyIfNil(updates)})
}

func queryLimit(c *gin.Context, fallback int) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		return fallback
	}
	return limit
}

func emptyIfNil(updates []database.CompanyUpdate) []database.CompanyUpdate {
	if updates == nil {
		return []database.CompanyUpdate{}
	}
	return updates
}
