package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Oohevt/Eco-Learn/internal/auth"
	"github.com/Oohevt/Eco-Learn/internal/domain"
	"github.com/Oohevt/Eco-Learn/internal/repository"
	"github.com/Oohevt/Eco-Learn/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users    service.UserService
	chapters service.ChapterService
	progress service.ProgressService
	tokens   auth.TokenService
	logger   *logrus.Logger
}

func NewHandler(
	users service.UserService,
	chapters service.ChapterService,
	progress service.ProgressService,
	tokens auth.TokenService,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		users:    users,
		chapters: chapters,
		progress: progress,
		tokens:   tokens,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := router.Group("/api")
	api.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "EconoLearn API",
			"version": "1.0.0",
		})
	})

	authRequired := authMiddleware(h.tokens)
	adminRequired := adminMiddleware(h.users)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
		authGroup.GET("/me", authRequired, h.currentUser)
		authGroup.POST("/logout", authRequired, h.logout)
	}

	chapterGroup := api.Group("/chapters")
	{
		chapterGroup.GET("", h.listChapters)
		chapterGroup.GET("/stats", h.categoryStats)
		chapterGroup.GET("/:chapterId", h.getChapter)
		chapterGroup.POST("", authRequired, adminRequired, h.createChapter)
		chapterGroup.PUT("/:chapterId", authRequired, adminRequired, h.updateChapter)
		chapterGroup.DELETE("/:chapterId", authRequired, adminRequired, h.deleteChapter)
	}

	userGroup := api.Group("/user", authRequired)
	{
		userGroup.GET("/progress", h.listProgress)
		userGroup.POST("/progress", h.updateProgress)
		userGroup.GET("/progress/:chapterId", h.getProgress)
		userGroup.DELETE("/progress", h.clearProgress)
		userGroup.GET("/favorites", h.listFavorites)
		userGroup.POST("/favorites", h.addFavorite)
		userGroup.DELETE("/favorites/:chapterId", h.removeFavorite)
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

func userToResponse(user *domain.User) userResponse {
	return userResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsAdmin:  user.IsAdmin,
	}
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username or email already taken"})
			return
		}
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "user " + user.Username + " registered",
		"success": true,
	})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
			return
		}
		h.fail(c, err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"user":         userToResponse(user),
	})
}

func (h *Handler) currentUser(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *Handler) logout(c *gin.Context) {
	// tokens are stateless; nothing to revoke server side
	c.JSON(http.StatusOK, gin.H{"message": "logged out", "success": true})
}

func (h *Handler) listChapters(c *gin.Context) {
	category := domain.Category(c.Query("category"))
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	if err != nil || pageSize < 1 {
		pageSize = 50
	}
	if pageSize > 100 {
		pageSize = 100
	}

	chapters, err := h.chapters.List(c.Request.Context(), category, true)
	if err != nil {
		h.fail(c, err)
		return
	}

	total := len(chapters)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{
		"items":     chapters[start:end],
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *Handler) categoryStats(c *gin.Context) {
	stats, err := h.chapters.CategoryStats(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) getChapter(c *gin.Context) {
	chapter, err := h.chapters.GetByChapterID(c.Request.Context(), c.Param("chapterId"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "chapter not found"})
			return
		}
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, chapter)
}

type createChapterRequest struct {
	ChapterID         string           `json:"chapter_id" binding:"required"`
	Title             string           `json:"title" binding:"required"`
	Description       string           `json:"description"`
	Content           string           `json:"content"`
	SimpleExplanation string           `json:"simple_explanation"`
	Category          string           `json:"category" binding:"required"`
	Difficulty        int              `json:"difficulty" binding:"required,min=1,max=5"`
	Order             int              `json:"order"`
	Examples          []domain.Example `json:"examples"`
	RelatedCharts     []string         `json:"related_charts"`
	IsPublished       bool             `json:"is_published"`
}

func (h *Handler) createChapter(c *gin.Context) {
	var req createChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chapter := &domain.Chapter{
		ChapterID:         req.ChapterID,
		Title:             req.Title,
		Description:       req.Description,
		Content:           req.Content,
		SimpleExplanation: req.SimpleExplanation,
		Category:          domain.Category(req.Category),
		Difficulty:        req.Difficulty,
		Order:             req.Order,
		Examples:          req.Examples,
		RelatedCharts:     req.RelatedCharts,
		IsPublished:       req.IsPublished,
	}

	if err := h.chapters.Create(c.Request.Context(), chapter); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "chapter id already exists"})
			return
		}
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, chapter)
}

func (h *Handler) updateChapter(c *gin.Context) {
	var update domain.ChapterUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chapter, err := h.chapters.Update(c.Request.Context(), c.Param("chapterId"), update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "chapter not found"})
			return
		}
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, chapter)
}

func (h *Handler) deleteChapter(c *gin.Context) {
	if err := h.chapters.Delete(c.Request.Context(), c.Param("chapterId")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "chapter not found"})
			return
		}
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "chapter deleted", "success": true})
}

type progressRequest struct {
	ChapterID string `json:"chapter_id" binding:"required"`
	Completed *bool  `json:"completed"`
	Score     *int   `json:"score" binding:"omitempty,min=0,max=100"`
}

func (h *Handler) listProgress(c *gin.Context) {
	records, err := h.progress.ListByUser(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *Handler) updateProgress(c *gin.Context) {
	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.progress.Upsert(c.Request.Context(), c.GetString(userIDKey), req.ChapterID, domain.ProgressUpdate{
		Completed: req.Completed,
		Score:     req.Score,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Handler) getProgress(c *gin.Context) {
	record, err := h.progress.Get(c.Request.Context(), c.GetString(userIDKey), c.Param("chapterId"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "progress not found"})
			return
		}
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Handler) clearProgress(c *gin.Context) {
	if err := h.progress.Clear(c.Request.Context(), c.GetString(userIDKey)); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "progress cleared", "success": true})
}

type favoriteRequest struct {
	ChapterID string `json:"chapter_id" binding:"required"`
}

func (h *Handler) listFavorites(c *gin.Context) {
	favorites, err := h.progress.ListFavorites(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, favorites)
}

func (h *Handler) addFavorite(c *gin.Context) {
	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	favorite, err := h.progress.AddFavorite(c.Request.Context(), c.GetString(userIDKey), req.ChapterID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, favorite)
}

func (h *Handler) removeFavorite(c *gin.Context) {
	err := h.progress.RemoveFavorite(c.Request.Context(), c.GetString(userIDKey), c.Param("chapterId"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "favorite not found"})
			return
		}
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "favorite removed", "success": true})
}

// fail logs the underlying error and answers with a generic body so store
// internals never leak to clients.
func (h *Handler) fail(c *gin.Context, err error) {
	if h.logger != nil {
		h.logger.WithError(err).Errorf("%s %s failed", c.Request.Method, c.FullPath())
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
