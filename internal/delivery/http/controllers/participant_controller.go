package controllers

import (
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"secretsanta/internal/delivery/http/helpers"
	"secretsanta/internal/domain"
)

// AddParticipantRequest is the request body for POST /groups/{groupID}/participants.
type AddParticipantRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate implements Validator.
func (a AddParticipantRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(a.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(a.Email) == "" {
		errs = append(errs, "email is required")
	} else if !emailRegex.MatchString(strings.TrimSpace(a.Email)) {
		errs = append(errs, "email must be a valid email address")
	}
	return errs
}

// ParticipantSuccessResponse is the success envelope for POST /groups/{groupID}/participants.
type ParticipantSuccessResponse struct {
	Data  *domain.Participant `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

type ParticipantController struct {
	Logger  *slog.Logger
	Service domain.ParticipantService
}

func NewParticipantController(logger *slog.Logger, svc domain.ParticipantService) *ParticipantController {
	return &ParticipantController{
		Logger:  logger,
		Service: svc,
	}
}

// AddParticipant godoc
// @Summary Add a participant
// @Description Adds a participant to a group that has not been drawn yet. Emails are unique per group, case-insensitively.
// @Tags participants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param groupID path string true "Group ID (UUID)"
// @Param participant body AddParticipantRequest true "Participant data"
// @Success 201 {object} controllers.ParticipantSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /groups/{groupID}/participants [post]
func (c *ParticipantController) AddParticipant(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(w, r, "groupID", "Group not found")
	if !ok {
		return
	}
	var req AddParticipantRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	ownerID, ok := organizerID(w, r)
	if !ok {
		return
	}
	p, err := c.Service.Add(r.Context(), groupID, ownerID, req.Name, req.Email)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "Group not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, p)
}

// RemoveParticipant godoc
// @Summary Remove a participant
// @Description Removes a participant from a group that has not been drawn yet.
// @Tags participants
// @Security BearerAuth
// @Param groupID path string true "Group ID (UUID)"
// @Param participantID path string true "Participant ID (UUID)"
// @Success 204 "No Content"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /groups/{groupID}/participants/{participantID} [delete]
func (c *ParticipantController) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(w, r, "groupID", "Group not found")
	if !ok {
		return
	}
	participantID, ok := pathID(w, r, "participantID", "Participant not found")
	if !ok {
		return
	}
	ownerID, ok := organizerID(w, r)
	if !ok {
		return
	}
	if err := c.Service.Remove(r.Context(), groupID, participantID, ownerID); err != nil {
		writeServiceError(w, r, c.Logger, err, "Participant not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
