package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/vibecast/internal/domain/session"
	"github.com/yanqian/vibecast/internal/domain/stylist"
	"github.com/yanqian/vibecast/internal/domain/weather"
	apperrors "github.com/yanqian/vibecast/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	weatherSvc weather.Service
	stylistSvc stylist.Service
	sessionSvc session.Service
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(weatherSvc weather.Service, stylistSvc stylist.Service, sessionSvc session.Service, logger *slog.Logger) *Handler {
	return &Handler{
		weatherSvc: weatherSvc,
		stylistSvc: stylistSvc,
		sessionSvc: sessionSvc,
		logger:     logger.With("component", "http.handler"),
	}
}

type weatherResponse struct {
	Weather   weather.Snapshot `json:"weather"`
	Condition string           `json:"condition"`
}

type queryRequest struct {
	Text string `json:"text"`
}

type locationRequest struct {
	Name      string   `json:"name" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	Country   string   `json:"country"`
}

type deviceLocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Error     string   `json:"error"`
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SearchLocations resolves a place name into candidates.
func (h *Handler) SearchLocations(c *gin.Context) {
	locations, err := h.weatherSvc.SearchLocation(c.Request.Context(), c.Query("q"))
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": locations})
}

// CurrentWeather returns the conditions for a coordinate pair.
func (h *Handler) CurrentWeather(c *gin.Context) {
	latitude, err := strconv.ParseFloat(c.Query("latitude"), 64)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, apperrors.CodeInvalidInput, "latitude must be a number", err))
		return
	}
	longitude, err := strconv.ParseFloat(c.Query("longitude"), 64)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, apperrors.CodeInvalidInput, "longitude must be a number", err))
		return
	}
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		name = session.DeviceLocationName
	}

	snapshot, err := h.weatherSvc.FetchWeather(c.Request.Context(), latitude, longitude, name)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, weatherResponse{Weather: snapshot, Condition: weather.DescribeCode(snapshot.WeatherCode)})
}

// Advice styles a weather snapshot. Model failures are absorbed into the fallback advice.
func (h *Handler) Advice(c *gin.Context) {
	var snapshot weather.Snapshot
	if err := c.ShouldBindJSON(&snapshot); err != nil {
		abortWithError(c, badRequest(errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, h.stylistSvc.Generate(c.Request.Context(), snapshot))
}

// CreateSession starts an interactive session showing the default location.
func (h *Handler) CreateSession(c *gin.Context) {
	view, err := h.sessionSvc.Create(c.Request.Context())
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusCreated, view)
}

// GetSession returns the current view of a session.
func (h *Handler) GetSession(c *gin.Context) {
	view, err := h.sessionSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, view)
}

// CloseSession ends a session.
func (h *Handler) CloseSession(c *gin.Context) {
	if err := h.sessionSvc.Close(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateQuery feeds the search box text.
func (h *Handler) UpdateQuery(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest(errMessage(err), err))
		return
	}
	view, err := h.sessionSvc.Query(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusAccepted, view)
}

// SelectSuggestion picks a candidate by its position in the suggestion list.
func (h *Handler) SelectSuggestion(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, apperrors.CodeInvalidInput, "index must be an integer", err))
		return
	}
	view, err := h.sessionSvc.SelectSuggestion(c.Request.Context(), c.Param("id"), index)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusAccepted, view)
}

// ChooseLocation starts a lookup for an explicit location.
func (h *Handler) ChooseLocation(c *gin.Context) {
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest(errMessage(err), err))
		return
	}
	view, err := h.sessionSvc.ChooseLocation(c.Request.Context(), c.Param("id"), weather.Location{
		Name:      req.Name,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		Country:   req.Country,
	})
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusAccepted, view)
}

// RequestDeviceLocation asks the client to report its position.
func (h *Handler) RequestDeviceLocation(c *gin.Context) {
	view, err := h.sessionSvc.RequestDeviceLocation(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusAccepted, view)
}

// ReportDeviceLocation completes a pending device location request.
func (h *Handler) ReportDeviceLocation(c *gin.Context) {
	var req deviceLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest(errMessage(err), err))
		return
	}
	report := session.DeviceReport{Error: strings.TrimSpace(req.Error)}
	if report.Error == "" {
		if req.Latitude == nil || req.Longitude == nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, apperrors.CodeInvalidInput, "latitude and longitude are required", nil))
			return
		}
		report.Coordinates = &weather.Coordinates{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}

	view, err := h.sessionSvc.ResolveDeviceLocation(c.Request.Context(), c.Param("id"), report)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusAccepted, view)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
