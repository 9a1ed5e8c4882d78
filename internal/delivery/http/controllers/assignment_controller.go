package controllers

import (
	"log/slog"
	"net/http"

	"secretsanta/internal/delivery/http/helpers"
	"secretsanta/internal/domain"
	"secretsanta/internal/i18n"
)

// RandomizeSuccessResponse is the success envelope for POST /groups/{groupID}/randomize.
type RandomizeSuccessResponse struct {
	Data  *domain.RandomizeResult `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// ResendSuccessResponse is the success envelope for POST /groups/{groupID}/resend.
type ResendSuccessResponse struct {
	Data  *domain.ResendResult `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// ResendOneResponse is the response body for a single resend.
type ResendOneResponse struct {
	ParticipantID   string `json:"participant_id"`
	ParticipantName string `json:"participant_name"`
}

// ResendOneSuccessResponse is the success envelope for POST /groups/{groupID}/participants/{participantID}/resend.
type ResendOneSuccessResponse struct {
	Data  ResendOneResponse `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// AssignmentViewSuccessResponse is the success envelope for GET /assignments/{token}.
type AssignmentViewSuccessResponse struct {
	Data  *domain.AssignmentView `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

type AssignmentController struct {
	Logger        *slog.Logger
	Service       domain.AssignmentService
	DefaultLocale string
}

func NewAssignmentController(logger *slog.Logger, svc domain.AssignmentService, defaultLocale string) *AssignmentController {
	return &AssignmentController{
		Logger:        logger,
		Service:       svc,
		DefaultLocale: defaultLocale,
	}
}

// Randomize godoc
// @Summary Draw assignments
// @Description Draws a single-cycle Secret Santa assignment over the group's participants, finalizes the group and emails every giver. Email failures are listed in the result and do not undo the draw.
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param groupID path string true "Group ID (UUID)"
// @Param lang query string false "Email language (en, es)"
// @Success 200 {object} controllers.RandomizeSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: not_enough_participants"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /groups/{groupID}/randomize [post]
func (c *AssignmentController) Randomize(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(w, r, "groupID", "Group not found")
	if !ok {
		return
	}
	ownerID, ok := organizerID(w, r)
	if !ok {
		return
	}
	res, err := c.Service.Randomize(r.Context(), groupID, ownerID, i18n.Resolve(r, c.DefaultLocale))
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "Group not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, res)
}

// ResendAll godoc
// @Summary Resend all assignment emails
// @Description Emails every giver of a drawn group their assignment again.
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param groupID path string true "Group ID (UUID)"
// @Param lang query string false "Email language (en, es)"
// @Success 200 {object} controllers.ResendSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /groups/{groupID}/resend [post]
func (c *AssignmentController) ResendAll(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(w, r, "groupID", "Group not found")
	if !ok {
		return
	}
	ownerID, ok := organizerID(w, r)
	if !ok {
		return
	}
	res, err := c.Service.ResendAll(r.Context(), groupID, ownerID, i18n.Resolve(r, c.DefaultLocale))
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "Group not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, res)
}

// ResendOne godoc
// @Summary Resend one assignment email
// @Description Emails a single giver of a drawn group their assignment again.
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param groupID path string true "Group ID (UUID)"
// @Param participantID path string true "Giver participant ID (UUID)"
// @Param lang query string false "Email language (en, es)"
// @Success 200 {object} controllers.ResendOneSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /groups/{groupID}/participants/{participantID}/resend [post]
func (c *AssignmentController) ResendOne(w http.ResponseWriter, r *http.Request) {
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
	giver, err := c.Service.ResendOne(r.Context(), groupID, participantID, ownerID, i18n.Resolve(r, c.DefaultLocale))
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "Assignment not found for this participant")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ResendOneResponse{ParticipantID: giver.ID, ParticipantName: giver.Name})
}

// GetAssignmentByToken godoc
// @Summary View an assignment
// @Description Public endpoint for the link sent by email. Shows the giver who they draw.
// @Tags assignments
// @Produce json
// @Param token path string true "View token"
// @Success 200 {object} controllers.AssignmentViewSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /assignments/{token} [get]
func (c *AssignmentController) GetAssignmentByToken(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing token")
		return
	}
	view, err := c.Service.GetByToken(r.Context(), token)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "Assignment not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, view)
}
