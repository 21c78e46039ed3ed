package payment

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tabshare/tabshare/pkg/middleware"
	"github.com/tabshare/tabshare/pkg/response"
)

// Handler handles HTTP requests for payment operations
type Handler struct {
	service *Service
}

// NewHandler creates a new payment handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for payment endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/{id}", h.GetByID)
	r.Delete("/{id}", h.Delete)
	r.Get("/group/{groupId}", h.ListByGroup)

	return r
}

// Create handles POST /payments
// @Summary      Record a payment
// @Description  Record money transferred between two group members, reducing outstanding debt
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body CreatePaymentRequest true "Payment request"
// @Success      201 {object} response.APIResponse{data=PaymentResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /payments [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	fromUserID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	payment, err := h.service.Create(r.Context(), fromUserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrCannotPaySelf), errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrInvalidReference):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrDuplicateReference):
			response.Conflict(w, err.Error())
		default:
			response.InternalError(w, "Failed to record payment")
		}
		return
	}

	response.JSON(w, http.StatusCreated, payment.ToResponse())
}

// GetByID handles GET /payments/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid payment ID")
		return
	}

	payment, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get payment")
		return
	}

	response.JSON(w, http.StatusOK, payment.ToResponse())
}

// ListByGroup handles GET /payments/group/{groupId}
// @Summary      List group payments
// @Tags         payments
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]PaymentResponse}
// @Router       /payments/group/{groupId} [get]
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

	payments, total, err := h.service.ListByGroupID(r.Context(), groupID, page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list payments")
		return
	}

	paymentResponses := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		paymentResponses[i] = p.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, paymentResponses, meta)
}

// Delete handles DELETE /payments/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid payment ID")
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete payment")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Payment deleted successfully"})
}
