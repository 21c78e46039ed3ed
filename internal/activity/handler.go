package activity

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tabshare/tabshare/pkg/response"
)

// Handler handles HTTP requests for the activity feed
type Handler struct {
	service *Service
}

// NewHandler creates a new activity handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for activity endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/group/{groupId}", h.ListByGroup)

	return r
}

// EntryResponse represents the response for a feed entry
type EntryResponse struct {
	ID         int64   `json:"id"`
	ActorID    int64   `json:"actor_id"`
	ActorName  string  `json:"actor_name,omitempty"`
	Message    string  `json:"message"`
	EntityType *string `json:"entity_type,omitempty"`
	EntityID   *int64  `json:"entity_id,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

func toResponse(e *Entry) *EntryResponse {
	return &EntryResponse{
		ID:         e.ID,
		ActorID:    e.ActorID,
		ActorName:  e.ActorName,
		Message:    e.Message,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		CreatedAt:  e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ListByGroup handles GET /activity/group/{groupId}
// @Summary      Group activity feed
// @Description  Recent expense and payment events for a group, newest first
// @Tags         activity
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]EntryResponse}
// @Router       /activity/group/{groupId} [get]
func (h *Handler) ListByGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	entries, total, err := h.service.ListByGroupID(r.Context(), groupID, page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list activity")
		return
	}

	entryResponses := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		entryResponses[i] = toResponse(e)
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, entryResponses, meta)
}
