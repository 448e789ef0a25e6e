package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/config"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/models"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	incidentService service.IncidentService
	alertService    service.AlertService
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
}

func NewHandler(incidentService service.IncidentService, alertService service.AlertService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		incidentService: incidentService,
		alertService:    alertService,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
	}
}

// respondServiceError maps each error kind of the engine to a stable HTTP
// status so clients can branch on cause.
func respondServiceError(c *gin.Context, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPermission):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDuplicateIncident), errors.Is(err, service.ErrAlreadyVoted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDependency):
		log.WithError(err).Error("Dependency failure")
		c.JSON(http.StatusBadGateway, gin.H{"error": "a required service is unavailable"})
	default:
		log.WithError(err).Error("Unhandled service error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// @Summary Submit a new incident
// @Description Report a geolocated incident. The reporter's exact coordinate is never exposed; the response carries the privacy-transformed public point.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param incident body CreateIncidentRequest true "Incident submission request"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 403 {object} map[string]string "Insufficient reputation for restricted type"
// @Failure 409 {object} map[string]string "Similar incident already reported nearby"
// @Failure 429 {object} map[string]string "Rate limit exceeded"
// @Router /incidents [post]
func (h *Handler) createIncident(c *gin.Context) {
	log := h.logger.WithField("method", "createIncident")
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user identity required"})
		return
	}

	var input CreateIncidentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incident, err := h.incidentService.SubmitIncident(c.Request.Context(), DTOToSubmitInput(input, userID))
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToIncidentResponse(incident))
}

// @Summary List incidents near a point
// @Description List incidents whose public location lies within a radius of the given point, newest first, with vote counts and the caller's own vote.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param lat query number true "Center latitude"
// @Param lon query number true "Center longitude"
// @Param radius_m query int false "Search radius in meters" default(1000)
// @Param status query string false "Status filter"
// @Param type query string false "Type filter"
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Page size" default(50)
// @Success 200 {object} IncidentListResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents")
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user identity required"})
		return
	}

	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lat/lon"})
		return
	}

	radiusM, _ := strconv.Atoi(c.DefaultQuery("radius_m", "1000"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	q := models.IncidentQuery{
		Latitude:     lat,
		Longitude:    lon,
		RadiusMeters: radiusM,
		Status:       models.IncidentStatus(c.Query("status")),
		Type:         models.IncidentType(c.Query("type")),
		Offset:       offset,
		Limit:        limit,
	}

	incidents, total, err := h.incidentService.ListIncidents(c.Request.Context(), q, userID)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, IncidentListResponse{
		Incidents: ModelsToIncidentResponses(incidents),
		Total:     total,
	})
}

// @Summary Get incident by ID
// @Description Get a single incident with vote counts and the caller's own vote.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 404 {object} map[string]string "Incident not found"
// @Router /incidents/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user identity required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "getIncident").WithField("id", id)

	incident, err := h.incidentService.GetIncident(c.Request.Context(), id, userID)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Vote on an incident
// @Description Cast a confirm/refute/resolved vote. One vote per user per incident, ever. The vote adjusts the author's reputation and may change the incident status.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param vote body VoteRequest true "Vote request"
// @Success 201 {object} VoteResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 409 {object} map[string]string "Already voted"
// @Router /incidents/{id}/vote [post]
func (h *Handler) voteIncident(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user identity required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "voteIncident").WithField("id", id)

	var input VoteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.incidentService.CastVote(c.Request.Context(), id, userID, models.VoteType(input.Vote))
	if err != nil {
		respondServiceError(c, log, err)
		return
	}

	c.JSON(http.StatusCreated, VoteResponse{
		Detail:        "Vote recorded",
		Status:        string(outcome.Status),
		Confirmations: outcome.Confirmations,
		Refutations:   outcome.Refutations,
	})
}

// @Summary Add a comment to an incident
// @Description Append a free-text comment to an incident.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param comment body CommentRequest true "Comment request"
// @Success 201 {object} CommentResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "Incident not found"
// @Router /incidents/{id}/comments [post]
func (h *Handler) addComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user identity required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "addComment").WithField("id", id)

	var input CommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.incidentService.AddComment(c.Request.Context(), id, userID, input.Text)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToCommentResponse(comment))
}

// @Summary List comments of an incident
// @Description List comments on an incident, oldest first.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Success 200 {array} CommentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Router /incidents/{id}/comments [get]
func (h *Handler) listComments(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "listComments").WithField("id", id)

	comments, err := h.incidentService.ListComments(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}

	responses := make([]*CommentResponse, len(comments))
	for i, comment := range comments {
		responses[i] = ModelToCommentResponse(comment)
	}
	c.JSON(http.StatusOK, responses)
}

// @Summary Create an alert preference
// @Description Subscribe to incident alerts in radius or neighborhood mode.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param preference body CreateAlertPreferenceRequest true "Alert preference request"
// @Success 201 {object} AlertPreferenceResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Router /alerts/preferences [post]
func (h *Handler) createAlertPreference(c *gin.Context) {
	log := h.logger.WithField("method", "createAlertPreference")
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user identity required"})
		return
	}

	var input CreateAlertPreferenceRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pref, err := h.alertService.CreatePreference(c.Request.Context(), DTOToPreferenceModel(input, userID))
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToPreferenceResponse(pref))
}

// @Summary List alert preferences
// @Description List the caller's alert preferences, newest first.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} AlertPreferenceResponse
// @Router /alerts/preferences [get]
func (h *Handler) listAlertPreferences(c *gin.Context) {
	log := h.logger.WithField("method", "listAlertPreferences")
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user identity required"})
		return
	}

	prefs, err := h.alertService.ListPreferences(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}

	responses := make([]*AlertPreferenceResponse, len(prefs))
	for i, pref := range prefs {
		responses[i] = ModelToPreferenceResponse(pref)
	}
	c.JSON(http.StatusOK, responses)
}

// @Summary Delete an alert preference
// @Description Delete one of the caller's alert preferences.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Preference ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid preference ID"
// @Failure 404 {object} map[string]string "Preference not found"
// @Router /alerts/preferences/{id} [delete]
func (h *Handler) deleteAlertPreference(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user identity required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid preference ID"})
		return
	}
	log := h.logger.WithField("method", "deleteAlertPreference").WithField("id", id)

	if err := h.alertService.DeletePreference(c.Request.Context(), id, userID); err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get the alert feed
// @Description Return recent open incidents matching the caller's enabled radius-mode alert preferences, deduplicated and sorted by creation time descending.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} AlertFeedItemResponse
// @Router /alerts/feed [get]
func (h *Handler) alertFeed(c *gin.Context) {
	log := h.logger.WithField("method", "alertFeed")
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user identity required"})
		return
	}

	items, err := h.alertService.Feed(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToFeedResponses(items))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
