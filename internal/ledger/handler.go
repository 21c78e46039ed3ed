package ledger

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tabshare/tabshare/pkg/response"
)

// Handler handles HTTP requests for balance and settlement queries
type Handler struct {
	service *Service
}

// NewHandler creates a new ledger handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for balance endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/groups/{groupId}", h.GetBalances)
	r.Get("/groups/{groupId}/suggestions", h.GetSuggestions)
	r.Get("/groups/{groupId}/details", h.GetDetails)

	return r
}

// GetBalances handles GET /balances/groups/{groupId}
// @Summary      Get group balances
// @Description  Net balance per member. Positive means the member is owed money, negative means they owe.
// @Tags         balances
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Success      200 {object} response.APIResponse{data=GroupBalancesResponse}
// @Failure      404 {object} response.APIResponse
// @Failure      422 {object} response.APIResponse
// @Router       /balances/groups/{groupId} [get]
func (h *Handler) GetBalances(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	balances, err := h.service.GetGroupBalances(r.Context(), groupID)
	if err != nil {
		h.handleComputeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, ToBalancesResponse(groupID, balances))
}

// GetSuggestions handles GET /balances/groups/{groupId}/suggestions
// @Summary      Get settlement suggestions
// @Description  Minimal list of transfers that settles all group debts
// @Tags         balances
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Success      200 {object} response.APIResponse{data=SuggestionsResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /balances/groups/{groupId}/suggestions [get]
func (h *Handler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	suggestions, err := h.service.GetSettlementSuggestions(r.Context(), groupID)
	if err != nil {
		h.handleComputeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, ToSuggestionsResponse(groupID, suggestions))
}

// GetDetails handles GET /balances/groups/{groupId}/details
func (h *Handler) GetDetails(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	details, err := h.service.GetPairwiseDetails(r.Context(), groupID)
	if err != nil {
		h.handleComputeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, ToDetailsResponse(groupID, details))
}

func (h *Handler) handleComputeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrGroupNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrMalformedAmount):
		response.UnprocessableEntity(w, err.Error())
	default:
		response.InternalError(w, "Failed to compute balances")
	}
}
