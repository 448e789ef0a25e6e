package v1

import (
	"github.com/google/uuid"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/models"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/service"
)

// DTOToSubmitInput converts the creation DTO into the ingestion input.
func DTOToSubmitInput(dto CreateIncidentRequest, userID uuid.UUID) service.SubmitIncidentInput {
	return service.SubmitIncidentInput{
		UserID:      userID,
		Type:        models.IncidentType(dto.Type),
		Severity:    models.Severity(dto.Severity),
		Description: dto.Description,
		PhotoURL:    dto.PhotoURL,
		Latitude:    dto.Latitude,
		Longitude:   dto.Longitude,
	}
}

// ModelToIncidentResponse converts the read model into the response DTO.
func ModelToIncidentResponse(model *models.IncidentWithStats) *IncidentResponse {
	resp := &IncidentResponse{
		ID:            model.ID,
		UserID:        model.UserID,
		Type:          string(model.Type),
		Severity:      string(model.Severity),
		Status:        string(model.Status),
		Description:   model.Description,
		PhotoURL:      model.PhotoURL,
		Latitude:      model.Latitude,
		Longitude:     model.Longitude,
		CreatedAt:     model.CreatedAt,
		ExpiresAt:     model.ExpiresAt,
		Confirmations: model.Confirmations,
		Refutations:   model.Refutations,
	}
	if model.UserVote != nil {
		vote := string(*model.UserVote)
		resp.UserVote = &vote
	}
	return resp
}

// ModelsToIncidentResponses converts a slice of read models into DTOs.
func ModelsToIncidentResponses(items []*models.IncidentWithStats) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(items))
	for i, item := range items {
		responses[i] = ModelToIncidentResponse(item)
	}
	return responses
}

// ModelToCommentResponse converts a comment model into the response DTO.
func ModelToCommentResponse(model *models.IncidentComment) *CommentResponse {
	return &CommentResponse{
		ID:         model.ID,
		IncidentID: model.IncidentID,
		UserID:     model.UserID,
		UserName:   model.UserName,
		Text:       model.Text,
		CreatedAt:  model.CreatedAt,
	}
}

// DTOToPreferenceModel converts the creation DTO into a preference model.
func DTOToPreferenceModel(dto CreateAlertPreferenceRequest, userID uuid.UUID) *models.AlertPreference {
	pref := &models.AlertPreference{
		UserID:           userID,
		Mode:             models.AlertMode(dto.Mode),
		NeighborhoodName: dto.NeighborhoodName,
		CenterLatitude:   dto.CenterLatitude,
		CenterLongitude:  dto.CenterLongitude,
		RadiusKM:         dto.RadiusKM,
		MinSeverity:      models.SeverityBaixa,
		Enabled:          true,
	}
	if dto.MinSeverity != "" {
		pref.MinSeverity = models.Severity(dto.MinSeverity)
	}
	if dto.Enabled != nil {
		pref.Enabled = *dto.Enabled
	}
	for _, t := range dto.Types {
		pref.Types = append(pref.Types, models.IncidentType(t))
	}
	return pref
}

// ModelToPreferenceResponse converts a preference model into the response DTO.
func ModelToPreferenceResponse(model *models.AlertPreference) *AlertPreferenceResponse {
	resp := &AlertPreferenceResponse{
		ID:               model.ID,
		UserID:           model.UserID,
		Mode:             string(model.Mode),
		NeighborhoodName: model.NeighborhoodName,
		CenterLatitude:   model.CenterLatitude,
		CenterLongitude:  model.CenterLongitude,
		RadiusKM:         model.RadiusKM,
		MinSeverity:      string(model.MinSeverity),
		Enabled:          model.Enabled,
		CreatedAt:        model.CreatedAt,
	}
	for _, t := range model.Types {
		resp.Types = append(resp.Types, string(t))
	}
	return resp
}

// ModelsToFeedResponses converts feed items into response DTOs.
func ModelsToFeedResponses(items []*models.AlertFeedItem) []*AlertFeedItemResponse {
	responses := make([]*AlertFeedItemResponse, len(items))
	for i, item := range items {
		responses[i] = &AlertFeedItemResponse{
			IncidentID:  item.IncidentID,
			Type:        string(item.Type),
			Severity:    string(item.Severity),
			Description: item.Description,
			Latitude:    item.Latitude,
			Longitude:   item.Longitude,
			DistanceKM:  item.DistanceKM,
			CreatedAt:   item.CreatedAt,
		}
	}
	return responses
}
