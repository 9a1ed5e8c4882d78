package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"secretsanta/internal/delivery/http/helpers"
	"secretsanta/internal/domain"
)

const maxGroupNameLength = 100

// CreateGroupRequest is the request body for POST /groups.
type CreateGroupRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// Validate implements Validator.
func (c CreateGroupRequest) Validate() []string {
	var errs []string
	name := strings.TrimSpace(c.Name)
	if name == "" {
		errs = append(errs, "Group name is required")
	} else if len(name) > maxGroupNameLength {
		errs = append(errs, "Group name must be at most 100 characters")
	}
	return errs
}

// UpdateGroupRequest is the request body for PATCH /groups/{groupID}. Omitted fields are unchanged.
type UpdateGroupRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Validate implements Validator.
func (u UpdateGroupRequest) Validate() []string {
	var errs []string
	if u.Name == nil && u.Description == nil {
		errs = append(errs, "at least one of name or description is required")
	}
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			errs = append(errs, "Group name is required")
		} else if len(name) > maxGroupNameLength {
			errs = append(errs, "Group name must be at most 100 characters")
		}
	}
	return errs
}

// GroupSuccessResponse is the success envelope for endpoints returning one group.
type GroupSuccessResponse struct {
	Data  *domain.Group     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListGroupsSuccessResponse is the success envelope for GET /groups.
type ListGroupsSuccessResponse struct {
	Data  []*domain.Group   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GroupDetailsSuccessResponse is the success envelope for GET /groups/{groupID}.
type GroupDetailsSuccessResponse struct {
	Data  *domain.GroupDetails `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

type GroupController struct {
	Logger  *slog.Logger
	Service domain.GroupService
}

func NewGroupController(logger *slog.Logger, svc domain.GroupService) *GroupController {
	return &GroupController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateGroup godoc
// @Summary Create a group
// @Description Creates a gift exchange group owned by the authenticated organizer.
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param group body CreateGroupRequest true "Group data"
// @Success 201 {object} controllers.GroupSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /groups [post]
func (c *GroupController) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req CreateGroupRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	ownerID, ok := organizerID(w, r)
	if !ok {
		return
	}
	group, err := c.Service.Create(r.Context(), ownerID, req.Name, req.Description)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "group not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, group)
}

// ListGroups godoc
// @Summary List my groups
// @Description Lists the groups owned by the authenticated organizer, newest first.
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListGroupsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /groups [get]
func (c *GroupController) ListGroups(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := organizerID(w, r)
	if !ok {
		return
	}
	groups, err := c.Service.ListByOwner(r.Context(), ownerID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "group not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, groups)
}

// GetGroup godoc
// @Summary Get a group
// @Description Returns the group with its participants and, once drawn, its assignments.
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param groupID path string true "Group ID (UUID)"
// @Success 200 {object} controllers.GroupDetailsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /groups/{groupID} [get]
func (c *GroupController) GetGroup(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(w, r, "groupID", "Group not found")
	if !ok {
		return
	}
	ownerID, ok := organizerID(w, r)
	if !ok {
		return
	}
	details, err := c.Service.Get(r.Context(), groupID, ownerID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "Group not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, details)
}

// UpdateGroup godoc
// @Summary Update a group
// @Description Renames a group or changes its description. Not allowed after the draw.
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param groupID path string true "Group ID (UUID)"
// @Param group body UpdateGroupRequest true "Fields to change"
// @Success 200 {object} controllers.GroupSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /groups/{groupID} [patch]
func (c *GroupController) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(w, r, "groupID", "Group not found")
	if !ok {
		return
	}
	var req UpdateGroupRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	ownerID, ok := organizerID(w, r)
	if !ok {
		return
	}
	group, err := c.Service.Update(r.Context(), groupID, ownerID, req.Name, req.Description)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "Group not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, group)
}

// DeleteGroup godoc
// @Summary Delete a group
// @Description Deletes a group with its participants and assignments.
// @Tags groups
// @Security BearerAuth
// @Param groupID path string true "Group ID (UUID)"
// @Success 204 "No Content"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /groups/{groupID} [delete]
func (c *GroupController) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(w, r, "groupID", "Group not found")
	if !ok {
		return
	}
	ownerID, ok := organizerID(w, r)
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), groupID, ownerID); err != nil {
		writeServiceError(w, r, c.Logger, err, "Group not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
