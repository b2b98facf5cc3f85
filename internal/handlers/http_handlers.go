package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"

	"giftexchange/internal/auth"
	"giftexchange/internal/services"
)

// DefaultMaxBodyBytes caps request bodies; wish lists carry base64 images.
const DefaultMaxBodyBytes = 32 << 20

// HTTPHandler holds the dependencies for the HTTP handlers, like the exchange service.
type HTTPHandler struct {
	service      *services.ExchangeService
	admin        *auth.Admin
	baseURL      string
	maxBodyBytes int64
}

// NewHTTPHandler creates a new HTTPHandler. baseURL is used to build the links
// shared with participants.
func NewHTTPHandler(service *services.ExchangeService, admin *auth.Admin, baseURL string) *HTTPHandler {
	return &HTTPHandler{
		service:      service,
		admin:        admin,
		baseURL:      strings.TrimRight(baseURL, "/"),
		maxBodyBytes: DefaultMaxBodyBytes,
	}
}

// RegisterPublicRoutes registers the routes participants use through shared links.
func (h *HTTPHandler) RegisterPublicRoutes(router gin.IRouter) {
	router.GET("/health", h.Health)
	router.POST("/login", h.Login)
	router.GET("/exchanges/:id/public", h.ShowPublicExchange)
	router.POST("/exchanges/:id/reveal/:participantID", h.Reveal)
	router.GET("/exchanges/:id/wishes", h.ListWishLists)
	router.GET("/exchanges/:id/wishes/:participantID", h.GetWishList)
	router.PUT("/exchanges/:id/wishes/:participantID", h.SaveWishList)
}

// RegisterAdminRoutes registers the administration routes. The group is
// expected to run AdminMiddleware.
func (h *HTTPHandler) RegisterAdminRoutes(router gin.IRouter) {
	router.GET("/exchanges", h.ListExchanges)
	router.POST("/exchanges", h.CreateExchange)
	router.DELETE("/exchanges", h.ClearAll)
	router.GET("/exchanges/:id", h.ShowExchange)
	router.DELETE("/exchanges/:id", h.DeleteExchange)
	router.POST("/exchanges/:id/participants", h.AddParticipant)
	router.POST("/exchanges/:id/participants/csv", h.UploadParticipantsCSV)
	router.DELETE("/exchanges/:id/participants/:participantID", h.RemoveParticipant)
	router.POST("/exchanges/:id/exclusions/toggle", h.ToggleExclusion)
	router.POST("/exchanges/:id/draw", h.PerformDraw)
	router.GET("/exchanges/:id/results", h.ShowResults)
	router.DELETE("/exchanges/:id/results", h.ClearResults)
	router.GET("/exchanges/:id/results.csv", h.ExportResultsCSV)
	router.GET("/exchanges/:id/links", h.ShowLinks)
}

// AdminMiddleware rejects requests without a valid admin bearer token.
func (h *HTTPHandler) AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		if err := h.admin.Authorize(token); err != nil {
			logger.Infof("Rejected admin token from %s: %v", c.ClientIP(), err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}
		c.Next()
	}
}

// Health reports that the server is up.
func (h *HTTPHandler) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login exchanges the admin password for a session token.
func (h *HTTPHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
		return
	}

	token, expiresAt, err := h.admin.Login(req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		logger.Infof("Failed admin login from %s", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "wrong password"})
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "expiresAt": expiresAt})
}

// respondError maps service errors to status codes. Unexpected errors are
// logged and hidden from the client.
func (h *HTTPHandler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrExchangeNotFound),
		errors.Is(err, services.ErrParticipantNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrEmptyName),
		errors.Is(err, services.ErrInvalidExclusion),
		errors.Is(err, services.ErrInvalidWish),
		errors.Is(err, services.ErrInvalidImage),
		errors.Is(err, services.ErrNotEnoughParticipants):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrTooManyExclusions),
		errors.Is(err, services.ErrNotDrawn):
		status = http.StatusConflict
	case errors.Is(err, services.ErrNoValidAssignment):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
