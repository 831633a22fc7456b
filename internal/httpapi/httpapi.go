package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"shelfboard/backend/internal/domain"
	"shelfboard/backend/internal/predictor"
	"shelfboard/backend/internal/service"
)

const maxBodyBytes = 1 << 20

// API exposes the dashboard and inventory editor over HTTP.
type API struct {
	service       *service.Service
	allowedOrigin string
}

func New(svc *service.Service, allowedOrigin string) *API {
	return &API{service: svc, allowedOrigin: allowedOrigin}
}

func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", a.handleHealth)
	mux.HandleFunc("/api/v1/dashboard", a.handleDashboard)
	mux.HandleFunc("/api/v1/dashboard/sales", a.handleDashboardSales)
	mux.HandleFunc("/api/v1/dashboard/inventory", a.handleDashboardInventory)
	mux.HandleFunc("/api/v1/inventory/items", a.handleItems)
	mux.HandleFunc("/api/v1/inventory/items/remove", a.handleItemsRemove)
	mux.HandleFunc("/api/v1/predict-discount", a.handlePredictDiscount)

	return a.withMiddleware(mux)
}

func (a *API) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")

		w.Header().Set("Access-Control-Allow-Origin", a.allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		next.ServeHTTP(w, r)

		log.Printf("%s %s %s id=%s", r.Method, r.URL.Path, time.Since(start), requestID)
	})
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}
	referenceDate, err := parseReferenceDate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid reference_date, want YYYY-MM-DD")
		return
	}
	writeJSON(w, http.StatusOK, a.service.DashboardOverview(r.Context(), referenceDate))
}

func (a *API) handleDashboardSales(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}
	referenceDate, err := parseReferenceDate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid reference_date, want YYYY-MM-DD")
		return
	}
	writeJSON(w, http.StatusOK, a.service.SalesSummary(r.Context(), referenceDate))
}

func (a *API) handleDashboardInventory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}
	referenceDate, err := parseReferenceDate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid reference_date, want YYYY-MM-DD")
		return
	}
	writeJSON(w, http.StatusOK, a.service.InventorySummary(r.Context(), referenceDate))
}

func (a *API) handleItems(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		items := a.service.SearchItems(r.URL.Query().Get("q"))
		writeJSON(w, http.StatusOK, domain.ItemListResponse{Items: items})
	case http.MethodPost:
		var req domain.AddItemsRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		items, err := a.service.AddItems(r.Context(), req.Items)
		if err != nil {
			a.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, domain.ItemListResponse{Items: items})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleItemsRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}
	var req domain.RemoveItemsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	items, err := a.service.RemoveItems(req.Items)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.ItemListResponse{Items: items})
}

func (a *API) handlePredictDiscount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}
	var req domain.PredictionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	prediction, err := a.service.PredictDiscount(r.Context(), req)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prediction)
}

func (a *API) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "Please fill in all fields!")
	case errors.Is(err, predictor.ErrPredictionUnavailable):
		writeError(w, http.StatusBadGateway, "Error in fetching discount. Please try again.")
	default:
		log.Printf("[httpapi] internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// parseReferenceDate reads the optional reference_date query parameter,
// defaulting to the current time.
func parseReferenceDate(r *http.Request) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("reference_date"))
	if raw == "" {
		return time.Now().UTC(), nil
	}
	return time.Parse("2006-01-02", raw)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeMethodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}
