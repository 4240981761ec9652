package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/johangly/gpu/internal/domain/group"
	"github.com/johangly/gpu/internal/handler/http/response"
)

type GroupHandler interface {
	ListGroups(w http.ResponseWriter, r *http.Request)
	GetGroup(w http.ResponseWriter, r *http.Request)
	CreateGroup(w http.ResponseWriter, r *http.Request)
	UpdateGroup(w http.ResponseWriter, r *http.Request)
	DeleteGroup(w http.ResponseWriter, r *http.Request)
}

type groupHandlerImpl struct {
	groupService group.GroupService
}

func NewGroupHandler(groupService group.GroupService) GroupHandler {
	return &groupHandlerImpl{groupService: groupService}
}

// ListGroups implements GroupHandler
func (h *groupHandlerImpl) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupService.ListGroups(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, groups)
}

// GetGroup implements GroupHandler
func (h *groupHandlerImpl) GetGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		response.BadRequest(w, "Group ID must be a positive integer", nil)
		return
	}

	result, err := h.groupService.GetGroup(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateGroup implements GroupHandler
func (h *groupHandlerImpl) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req group.CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateGroup decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.groupService.CreateGroup(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Group created successfully", result)
}

// UpdateGroup implements GroupHandler
func (h *groupHandlerImpl) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		response.BadRequest(w, "Group ID must be a positive integer", nil)
		return
	}

	var req group.UpdateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateGroup decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.groupService.UpdateGroup(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Group updated successfully", result)
}

// DeleteGroup implements GroupHandler
func (h *groupHandlerImpl) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		response.BadRequest(w, "Group ID must be a positive integer", nil)
		return
	}

	if err := h.groupService.DeleteGroup(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Group deleted successfully", nil)
}
