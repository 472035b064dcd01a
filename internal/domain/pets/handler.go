package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-care-journal/internal/middleware"
	"pet-care-journal/internal/platform/imaging"
	"pet-care-journal/internal/platform/logger"
	"pet-care-journal/internal/platform/validation"
	"pet-care-journal/internal/ports/photos"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, maxUploadBytes int64) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))

		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))

		pr.Post("/{petID}/photo", uploadPetPhotoHandler(svc, maxUploadBytes))
	})
}

// createPetRequest es el cuerpo para registrar una mascota.
type createPetRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	Species   string `json:"species" validate:"required,oneof=dog cat other"`
	Breed     string `json:"breed" validate:"max=100"`
	Gender    string `json:"gender" validate:"omitempty,oneof=male female unknown"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD opcional
}

// petResponse representa una mascota devuelta por la API.
type petResponse struct {
	ID          string     `json:"id"`
	OwnerUserID string     `json:"owner_user_id"`
	Name        string     `json:"name"`
	Species     Species    `json:"species"`
	Breed       string     `json:"breed"`
	Gender      Gender     `json:"gender"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	PhotoURL    string     `json:"photo_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type updatePetRequest struct {
	Name    *string `json:"name" validate:"omitempty,max=100"`
	Species *string `json:"species" validate:"omitempty,oneof=dog cat other"`
	Breed   *string `json:"breed" validate:"omitempty,max=100"`
	Gender  *string `json:"gender" validate:"omitempty,oneof=male female unknown"`
	// birth_date se lee aparte para distinguir null de ausente.
}

// createPetHandler godoc
// @Summary Registrar mascota
// @Description Crea una mascota cuyo dueño es el usuario autenticado.
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createPetRequest true "Datos de la mascota"
// @Success 201 {object} petResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 401 {string} string "unauthorized"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validation.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse(time.DateOnly, req.BirthDate)
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			bd = &t
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:      req.Name,
			Species:   req.Species,
			Breed:     req.Breed,
			Gender:    req.Gender,
			BirthDate: bd,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			logger.FromContext(r.Context(), nil).Error("create pet failed", logger.Fields{"err": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// listPetsHandler godoc
// @Summary Listar mis mascotas
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Success 200 {array} petResponse
// @Failure 401 {string} string "unauthorized"
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			logger.FromContext(r.Context(), nil).Error("list pets failed", logger.Fields{"err": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
// @Summary Ver mascota
// @Tags pets
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.Authorize(r.Context(), chi.URLParam(r, "petID"), claims.UserID)
		if err != nil {
			status, msg := AccessStatus(err)
			http.Error(w, msg, status)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota
// @Description PATCH parcial. Enviar "birth_date": null limpia la fecha.
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body updatePetRequest true "Campos a modificar"
// @Success 200 {object} petResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [patch]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		if _, err := svc.Authorize(r.Context(), petID, claims.UserID); err != nil {
			status, msg := AccessStatus(err)
			http.Error(w, msg, status)
			return
		}

		// Primero a map para detectar presencia de birth_date.
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var req updatePetRequest
		b, _ := json.Marshal(raw)
		if err := json.Unmarshal(b, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validation.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var bd PatchDate
		if v, exists := raw["birth_date"]; exists {
			bd.Present = true
			if string(v) != "null" {
				var s string
				if err := json.Unmarshal(v, &s); err != nil {
					http.Error(w, "birth_date must be YYYY-MM-DD or null", http.StatusBadRequest)
					return
				}
				t, err := time.Parse(time.DateOnly, s)
				if err != nil {
					http.Error(w, "birth_date must be YYYY-MM-DD or null", http.StatusBadRequest)
					return
				}
				bd.Value = &t
			}
		}

		updated, err := svc.Update(r.Context(), petID, UpdateInput{
			Name:      req.Name,
			Species:   req.Species,
			Breed:     req.Breed,
			Gender:    req.Gender,
			BirthDate: bd,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "pet not found", http.StatusNotFound)
			default:
				logger.FromContext(r.Context(), nil).Error("update pet failed", logger.Fields{"err": err, "pet_id": petID})
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

// deletePetHandler godoc
// @Summary Borrar mascota
// @Description Borra la mascota junto con sus registros de salud, diario y recordatorios.
// @Tags pets
// @Param petID path string true "ID de la mascota"
// @Success 204
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [delete]
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		if _, err := svc.Authorize(r.Context(), petID, claims.UserID); err != nil {
			status, msg := AccessStatus(err)
			http.Error(w, msg, status)
			return
		}

		if err := svc.Delete(r.Context(), petID); err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "pet not found", http.StatusNotFound)
				return
			}
			logger.FromContext(r.Context(), nil).Error("delete pet failed", logger.Fields{"err": err, "pet_id": petID})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// uploadPetPhotoHandler godoc
// @Summary Subir foto de perfil
// @Tags pets
// @Accept multipart/form-data
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param photo formData file true "Imagen jpeg/png/gif/webp"
// @Success 200 {object} petResponse
// @Failure 400 {string} string "imagen inválida"
// @Failure 413 {string} string "upload too large"
// @Failure 503 {string} string "photo storage unavailable"
// @Router /pets/{petID}/photo [post]
func uploadPetPhotoHandler(svc *Service, maxUploadBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		if _, err := svc.Authorize(r.Context(), petID, claims.UserID); err != nil {
			status, msg := AccessStatus(err)
			http.Error(w, msg, status)
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

		p, err := svc.SetPhoto(r.Context(), petID, data)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, photos.ErrUnavailable):
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
			default:
				logger.FromContext(r.Context(), nil).Error("pet photo upload failed", logger.Fields{"err": err, "pet_id": petID})
				http.Error(w, "upload failed", http.StatusBadGateway)
			}
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:          p.ID,
		OwnerUserID: p.OwnerUserID,
		Name:        p.Name,
		Species:     p.Species,
		Breed:       p.Breed,
		Gender:      p.Gender,
		BirthDate:   p.BirthDate,
		PhotoURL:    p.PhotoURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// writeJSON está duplicado en cada módulo (pets/health/diary/reminders);
// todavía no justifica un paquete compartido.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
