package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"routeseven-be/internal/quotation"
	"routeseven-be/internal/user"
	"routeseven-be/internal/utils"

	"github.com/google/uuid"
)

type Handler struct {
	Quotations quotation.Service
	Users      user.Service
}

func NewHandler(quotations quotation.Service, users user.Service) *Handler {
	return &Handler{Quotations: quotations, Users: users}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/login", h.Login)
	mux.HandleFunc("/create-quotation", h.CreateQuotation)
	mux.HandleFunc("/download-quotation", h.DownloadQuotation)
	mux.HandleFunc("/quotations", h.ListQuotations)
	mux.HandleFunc("/update-quotation-status", h.UpdateQuotationStatus)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, u, err := h.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		utils.WriteJSONError(w, "Invalid email or password.", http.StatusUnauthorized)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user": map[string]interface{}{
			"id":    u.ID,
			"email": u.Email,
			"name":  utils.PtrString(u.Name),
		},
	})
}

func (h *Handler) CreateQuotation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "Unauthorized. Please log in to request a quotation.", http.StatusUnauthorized)
		return
	}

	q, err := h.Quotations.CreateFromCart(r.Context(), userID)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Quotation created successfully!",
		"quotation": toQuotationResponse(q),
	})
}

func (h *Handler) DownloadQuotation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	idParam := r.URL.Query().Get("id")
	if idParam == "" {
		utils.WriteJSONError(w, "Quotation ID is required", http.StatusBadRequest)
		return
	}

	id, err := uuid.Parse(idParam)
	if err != nil {
		utils.WriteJSONError(w, "Invalid quotation ID", http.StatusBadRequest)
		return
	}

	data, filename, err := h.Quotations.Download(r.Context(), userID, id)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) ListQuotations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	quotations, err := h.Quotations.ListByOwner(r.Context(), userID)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	out := make([]quotationResponse, 0, len(quotations))
	for _, q := range quotations {
		out = append(out, toQuotationResponse(q))
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"quotations": out})
}

type updateStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// UpdateQuotationStatus drives the draft -> sent -> expired workflow. Admin
// only; the renderer itself never touches status.
func (h *Handler) UpdateQuotationStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
		utils.WriteJSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if utils.GetUserRoleFromContext(r.Context()) != string(user.RoleAdmin) {
		utils.WriteJSONError(w, "Forbidden", http.StatusForbidden)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		utils.WriteJSONError(w, "Invalid quotation ID", http.StatusBadRequest)
		return
	}

	next := quotation.Status(req.Status)
	switch next {
	case quotation.StatusSent, quotation.StatusExpired:
	default:
		utils.WriteJSONError(w, "Invalid status", http.StatusBadRequest)
		return
	}

	if err := h.Quotations.UpdateStatus(r.Context(), id, next); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Quotation status updated."})
}
