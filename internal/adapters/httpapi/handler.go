package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tunebridge/tunebridge/internal/domain"
	"github.com/tunebridge/tunebridge/internal/ports"
)

// Handler holds the HTTP handlers for the conversion API.
type Handler struct {
	service ports.ConversionService
}

// NewHandler creates a new HTTP handler with the given conversion service.
func NewHandler(service ports.ConversionService) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes sets up all API routes on the given Gin engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.Use(RequestID(), CORS())

	r.GET("/health", h.Health)

	api := r.Group("/api/v1")
	{
		api.POST("/convert", h.Convert)
	}
}

// Health returns a simple health check response.
//
//	@Summary		Health check
//	@Description	Returns the health status of the API
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Convert translates a music link from one streaming platform into the
// equivalent link on the other.
//
//	@Summary		Convert a music link
//	@Description	Accepts an Apple Music or Spotify link to a track, album or artist,
//	@Description	fetches its metadata and fuzzy-matches it against the other platform's
//	@Description	catalog. Returns the best match with a 0-100 confidence score.
//	@Tags			conversion
//	@Accept			json
//	@Produce		json
//	@Param			request	body		domain.ConversionRequest	true	"Link to convert"
//	@Success		200		{object}	domain.ConversionResult
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		502		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/v1/convert [post]
func (h *Handler) Convert(c *gin.Context) {
	var req domain.ConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "invalid request body: " + err.Error(),
		})
		return
	}

	result, err := h.service.Convert(c.Request.Context(), req.Link)
	if err != nil {
		status, code := statusFor(err)
		c.JSON(status, ErrorResponse{
			Error:   code,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// statusFor maps the domain error taxonomy onto HTTP status codes.
func statusFor(err error) (int, string) {
	var apiErr *domain.ExternalAPIError

	switch {
	case errors.Is(err, domain.ErrInvalidLink):
		return http.StatusBadRequest, "invalid_link"
	case errors.Is(err, domain.ErrMetadataNotFound):
		return http.StatusNotFound, "metadata_not_found"
	case errors.Is(err, domain.ErrNoMatchFound):
		return http.StatusNotFound, "no_match_found"
	case errors.Is(err, domain.ErrCredentialsMissing):
		return http.StatusInternalServerError, "credentials_missing"
	case errors.As(err, &apiErr):
		return http.StatusBadGateway, "upstream_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
