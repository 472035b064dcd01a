package diary

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-care-journal/internal/domain/pets"
	"pet-care-journal/internal/middleware"
	"pet-care-journal/internal/platform/imaging"
	"pet-care-journal/internal/platform/logger"
	"pet-care-journal/internal/platform/markdown"
	"pet-care-journal/internal/platform/validation"
	"pet-care-journal/internal/ports/photos"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petAccess pets.Authorizer, maxUploadBytes int64) {
	r.Route("/pets/{petID}/diary", func(dr chi.Router) {
		dr.Get("/", listEntriesHandler(svc, petAccess))
		dr.Post("/", createEntryHandler(svc, petAccess))
		dr.Patch("/{entryID}", updateEntryHandler(svc, petAccess))
		dr.Delete("/{entryID}", deleteEntryHandler(svc, petAccess))

		dr.Post("/photos", uploadPhotoHandler(svc, petAccess, maxUploadBytes))

		// Vista calendario
		dr.Get("/calendar", calendarHandler(svc, petAccess))
		dr.Get("/calendar/{day}", dayDetailHandler(svc, petAccess))
	})
}

type createEntryRequest struct {
	Date      string   `json:"date" validate:"required"` // YYYY-MM-DD
	Content   string   `json:"content" validate:"required,max=10000"`
	PhotoURLs []string `json:"photo_urls" validate:"max=20,dive,uri"`
}

type updateEntryRequest struct {
	Date      *string   `json:"date"`
	Content   *string   `json:"content" validate:"omitempty,max=10000"`
	PhotoURLs *[]string `json:"photo_urls" validate:"omitempty,max=20,dive,uri"`
}

// entryResponse representa una entrada del diario.
type entryResponse struct {
	ID        string    `json:"id"`
	PetID     string    `json:"pet_id"`
	Date      string    `json:"date"`
	Content   string    `json:"content"`
	PhotoURLs []string  `json:"photo_urls"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// entryDetailResponse agrega el contenido renderizado (markdown sanitizado).
type entryDetailResponse struct {
	entryResponse
	ContentHTML string `json:"content_html"`
}

// daySummaryResponse es el badge de un día en el calendario.
type daySummaryResponse struct {
	Date      string   `json:"date"`
	Count     int      `json:"count"`
	PhotoURLs []string `json:"photo_urls"`
}

type uploadPhotoResponse struct {
	URL string `json:"url"`
}

// listEntriesHandler godoc
// @Summary Listar diario
// @Description Entradas ordenadas por fecha descendente.
// @Tags diary
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {array} entryResponse
// @Router /pets/{petID}/diary [get]
func listEntriesHandler(svc *Service, petAccess pets.Authorizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := authorizePet(w, r, petAccess)
		if !ok {
			return
		}

		items, err := svc.ListByPet(r.Context(), petID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		out := make([]entryResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEntryResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createEntryHandler godoc
// @Summary Escribir entrada de diario
// @Tags diary
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body createEntryRequest true "Entrada; photo_urls vienen de POST /diary/photos"
// @Success 201 {object} entryResponse
// @Failure 400 {string} string "validación"
// @Router /pets/{petID}/diary [post]
func createEntryHandler(svc *Service, petAccess pets.Authorizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := authorizePet(w, r, petAccess)
		if !ok {
			return
		}

		var req createEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validation.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		date, err := parseEntryDate(req.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD or RFC 3339", http.StatusBadRequest)
			return
		}

		e, err := svc.Create(r.Context(), petID, CreateInput{
			Date:      date,
			Content:   req.Content,
			PhotoURLs: req.PhotoURLs,
		})
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, toEntryResponse(e))
	}
}

// parseEntryDate acepta YYYY-MM-DD o RFC 3339. Con RFC 3339 se conserva el
// día calendario en el offset recibido; el servicio descarta la hora.
func parseEntryDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func updateEntryHandler(svc *Service, petAccess pets.Authorizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := authorizePet(w, r, petAccess)
		if !ok {
			return
		}

		var req updateEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validation.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		in := UpdateInput{Content: req.Content, PhotoURLs: req.PhotoURLs}
		if req.Date != nil {
			d, err := parseEntryDate(*req.Date)
			if err != nil {
				http.Error(w, "date must be YYYY-MM-DD or RFC 3339", http.StatusBadRequest)
				return
			}
			in.Date = &d
		}

		e, err := svc.Update(r.Context(), petID, chi.URLParam(r, "entryID"), in)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toEntryResponse(e))
	}
}

func deleteEntryHandler(svc *Service, petAccess pets.Authorizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := authorizePet(w, r, petAccess)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), petID, chi.URLParam(r, "entryID")); err != nil {
			writeServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// uploadPhotoHandler godoc
// @Summary Subir foto de diario
// @Description Guarda la imagen en el bucket de fotos y devuelve su URL pública.
// @Tags diary
// @Accept multipart/form-data
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param photo formData file true "Imagen jpeg/png/gif/webp"
// @Success 201 {object} uploadPhotoResponse
// @Failure 400 {string} string "imagen inválida"
// @Failure 413 {string} string "upload too large"
// @Failure 502 {string} string "upload failed"
// @Failure 503 {string} string "photo storage unavailable"
// @Router /pets/{petID}/diary/photos [post]
func uploadPhotoHandler(svc *Service, petAccess pets.Authorizer, maxUploadBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := authorizePet(w, r, petAccess)
		if !ok {
			return
		}

		data, _, err := imaging.ReadFormFile(r, "photo", maxUploadBytes)
		if err != nil {
			if errors.Is(err, imaging.ErrTooLarge) {
				http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		url, err := svc.UploadPhoto(r.Context(), petID, data)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, photos.ErrUnavailable):
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
			default:
				logger.FromContext(r.Context(), nil).Error("diary photo upload failed", logger.Fields{"err": err, "pet_id": petID})
				http.Error(w, "upload failed", http.StatusBadGateway)
			}
			return
		}

		writeJSON(w, http.StatusCreated, uploadPhotoResponse{URL: url})
	}
}

// calendarHandler godoc
// @Summary Calendario del diario
// @Description Días del mes con entradas: cantidad y hasta 3 fotos de vista previa.
// @Tags diary
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param month query string false "YYYY-MM (default: mes actual)"
// @Success 200 {array} daySummaryResponse
// @Failure 400 {string} string "month must be YYYY-MM"
// @Router /pets/{petID}/diary/calendar [get]
func calendarHandler(svc *Service, petAccess pets.Authorizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := authorizePet(w, r, petAccess)
		if !ok {
			return
		}

		month := svc.now()
		if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
			t, err := time.Parse("2006-01", v)
			if err != nil {
				http.Error(w, "month must be YYYY-MM", http.StatusBadRequest)
				return
			}
			month = t
		}

		sums, err := svc.Calendar(r.Context(), petID, month.Year(), month.Month())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		out := make([]daySummaryResponse, 0, len(sums))
		for _, s := range sums {
			out = append(out, daySummaryResponse{Date: string(s.Day), Count: s.Count, PhotoURLs: s.PhotoURLs})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// dayDetailHandler godoc
// @Summary Detalle de un día
// @Description Todas las entradas del día con content_html renderizado.
// @Tags diary
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param day path string true "YYYY-MM-DD"
// @Success 200 {array} entryDetailResponse
// @Router /pets/{petID}/diary/calendar/{day} [get]
func dayDetailHandler(svc *Service, petAccess pets.Authorizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := authorizePet(w, r, petAccess)
		if !ok {
			return
		}

		day, valid := ParseDayKey(chi.URLParam(r, "day"))
		if !valid {
			http.Error(w, "day must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		items, err := svc.Day(r.Context(), petID, day)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		out := make([]entryDetailResponse, 0, len(items))
		for _, e := range items {
			html, err := markdown.Render(e.Content)
			if err != nil {
				logger.FromContext(r.Context(), nil).Warn("render diary content failed", logger.Fields{"err": err, "entry_id": e.ID})
			}
			out = append(out, entryDetailResponse{entryResponse: toEntryResponse(e), ContentHTML: html})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

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
		http.Error(w, "diary entry not found", http.StatusNotFound)
	default:
		logger.FromContext(r.Context(), nil).Error("diary store error", logger.Fields{"err": err})
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toEntryResponse(e Entry) entryResponse {
	urls := e.PhotoURLs
	if urls == nil {
		urls = []string{}
	}
	return entryResponse{
		ID:        e.ID,
		PetID:     e.PetID,
		Date:      e.Date.Format(time.DateOnly),
		Content:   e.Content,
		PhotoURLs: urls,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
