package health

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-care-journal/internal/domain/pets"
	"pet-care-journal/internal/middleware"
	"pet-care-journal/internal/platform/logger"
	"pet-care-journal/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petAccess pets.Authorizer) {
	r.Route("/pets/{petID}/health-records", func(hr chi.Router) {
		hr.Get("/", listRecordsHandler(svc, petAccess))
		hr.Post("/", createRecordHandler(svc, petAccess))
		hr.Get("/weights", weightSeriesHandler(svc, petAccess))

		hr.Patch("/{recordID}", updateRecordHandler(svc, petAccess))
		hr.Delete("/{recordID}", deleteRecordHandler(svc, petAccess))
	})
}

type createRecordRequest struct {
	Date     string   `json:"date" validate:"required"` // YYYY-MM-DD
	WeightKg *float64 `json:"weight_kg" validate:"required,finite,gte=0"`
	Notes    string   `json:"notes" validate:"max=2000"`
}

type updateRecordRequest struct {
	Date     *string  `json:"date"`
	WeightKg *float64 `json:"weight_kg" validate:"omitempty,finite,gte=0"`
	Notes    *string  `json:"notes" validate:"omitempty,max=2000"`
}

// recordResponse representa un registro de salud devuelto por la API.
type recordResponse struct {
	ID        string    `json:"id"`
	PetID     string    `json:"pet_id"`
	Date      string    `json:"date"`
	WeightKg  float64   `json:"weight_kg"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type weightPointResponse struct {
	Date     string  `json:"date"`
	WeightKg float64 `json:"weight_kg"`
}

// listRecordsHandler godoc
// @Summary Listar registros de salud
// @Tags health
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param order query string false "desc (default) o asc por fecha"
// @Success 200 {array} recordResponse
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/health-records [get]
func listRecordsHandler(svc *Service, petAccess pets.Authorizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := authorizePet(w, r, petAccess)
		if !ok {
			return
		}

		order, ok := ParseOrder(strings.ToLower(r.URL.Query().Get("order")))
		if !ok {
			http.Error(w, "order must be asc or desc", http.StatusBadRequest)
			return
		}

		items, err := svc.ListByPet(r.Context(), petID, order)
		if err != nil {
			logger.FromContext(r.Context(), nil).Error("list health records failed", logger.Fields{"err": err, "pet_id": petID})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]recordResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toRecordResponse(rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createRecordHandler godoc
// @Summary Registrar peso
// @Description weight_kg debe ser un número finito >= 0.
// @Tags health
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body createRecordRequest true "Medición"
// @Success 201 {object} recordResponse
// @Failure 400 {string} string "validación"
// @Router /pets/{petID}/health-records [post]
func createRecordHandler(svc *Service, petAccess pets.Authorizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := authorizePet(w, r, petAccess)
		if !ok {
			return
		}

		var req createRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validation.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		date, err := time.Parse(time.DateOnly, req.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		rec, err := svc.Create(r.Context(), petID, CreateInput{
			Date:     date,
			WeightKg: *req.WeightKg,
			Notes:    req.Notes,
		})
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, toRecordResponse(rec))
	}
}

// weightSeriesHandler godoc
// @Summary Serie de pesos
// @Tags health
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {array} weightPointResponse
// @Router /pets/{petID}/health-records/weights [get]
func weightSeriesHandler(svc *Service, petAccess pets.Authorizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := authorizePet(w, r, petAccess)
		if !ok {
			return
		}

		points, err := svc.WeightSeries(r.Context(), petID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		out := make([]weightPointResponse, 0, len(points))
		for _, p := range points {
			out = append(out, weightPointResponse{Date: p.Date.Format(time.DateOnly), WeightKg: p.WeightKg})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// updateRecordHandler godoc
// @Summary Actualizar registro de salud
// @Tags health
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param recordID path string true "ID del registro"
// @Param payload body updateRecordRequest true "Campos a modificar"
// @Success 200 {object} recordResponse
// @Failure 404 {string} string "health record not found"
// @Router /pets/{petID}/health-records/{recordID} [patch]
func updateRecordHandler(svc *Service, petAccess pets.Authorizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := authorizePet(w, r, petAccess)
		if !ok {
			return
		}

		var req updateRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validation.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		in := UpdateInput{WeightKg: req.WeightKg, Notes: req.Notes}
		if req.Date != nil {
			d, err := time.Parse(time.DateOnly, *req.Date)
			if err != nil {
				http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.Date = &d
		}

		rec, err := svc.Update(r.Context(), petID, chi.URLParam(r, "recordID"), in)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

func deleteRecordHandler(svc *Service, petAccess pets.Authorizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := authorizePet(w, r, petAccess)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), petID, chi.URLParam(r, "recordID")); err != nil {
			writeServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// authorizePet exige claims y que el usuario sea dueño de {petID}.
func authorizePet(w http.ResponseWriter, r *http.Request, petAccess pets.Authorizer) (string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}

	petID := chi.URLParam(r, "petID")
	if _, err := petAccess.Authorize(r.Context(), petID, claims.UserID); err != nil {
		status, msg := pets.AccessStatus(err)
		http.Error(w, msg, status)
		return "", false
	}
	return petID, true
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "health record not found", http.StatusNotFound)
	default:
		logger.FromContext(r.Context(), nil).Error("health records store error", logger.Fields{"err": err})
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toRecordResponse(rec Record) recordResponse {
	return recordResponse{
		ID:        rec.ID,
		PetID:     rec.PetID,
		Date:      rec.Date.Format(time.DateOnly),
		WeightKg:  rec.WeightKg,
		Notes:     rec.Notes,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
