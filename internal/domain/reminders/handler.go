package reminders

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
	r.Route("/pets/{petID}/reminders", func(rr chi.Router) {
		rr.Get("/", listRemindersHandler(svc, petAccess))
		rr.Post("/", createReminderHandler(svc, petAccess))
		rr.Patch("/{reminderID}", updateReminderHandler(svc, petAccess))
		rr.Delete("/{reminderID}", deleteReminderHandler(svc, petAccess))

		// Completar / descompletar (con rollover de recurrentes)
		rr.Post("/{reminderID}/toggle", toggleReminderHandler(svc, petAccess))
	})
}

// createReminderRequest es el cuerpo para crear un recordatorio.
type createReminderRequest struct {
	Title          string `json:"title" validate:"required,max=200"`
	Description    string `json:"description" validate:"max=2000"`
	DueDate        string `json:"due_date" validate:"required"` // YYYY-MM-DD
	RepeatInterval string `json:"repeat_interval" validate:"omitempty,oneof=none daily weekly monthly yearly" enums:"none,daily,weekly,monthly,yearly"`
}

type updateReminderRequest struct {
	Title          *string `json:"title" validate:"omitempty,max=200"`
	Description    *string `json:"description" validate:"omitempty,max=2000"`
	DueDate        *string `json:"due_date"`
	RepeatInterval *string `json:"repeat_interval" validate:"omitempty,oneof=none daily weekly monthly yearly"`
}

// reminderResponse representa un recordatorio. is_overdue se calcula al responder.
type reminderResponse struct {
	ID               string         `json:"id"`
	PetID            string         `json:"pet_id"`
	Title            string         `json:"title"`
	Description      string         `json:"description,omitempty"`
	DueDate          string         `json:"due_date"`
	RepeatInterval   RepeatInterval `json:"repeat_interval"`
	IsCompleted      bool           `json:"is_completed"`
	IsOverdue        bool           `json:"is_overdue"`
	SourceReminderID string         `json:"source_reminder_id,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// toggleResponse trae el recordatorio actualizado, el siguiente (si hubo rollover)
// y la lista refrescada de la mascota.
type toggleResponse struct {
	Reminder  reminderResponse   `json:"reminder"`
	Successor *reminderResponse  `json:"successor"`
	Reminders []reminderResponse `json:"reminders"`
}

// partialRolloverResponse se devuelve con 502 cuando el flag quedó guardado pero el siguiente no.
type partialRolloverResponse struct {
	Error    string           `json:"error"`
	Reminder reminderResponse `json:"reminder"`
}

// listRemindersHandler godoc
// @Summary Listar recordatorios
// @Description Ordenados por due_date ascendente, con is_overdue.
// @Tags reminders
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {array} reminderResponse
// @Router /pets/{petID}/reminders [get]
func listRemindersHandler(svc *Service, petAccess pets.Authorizer) http.HandlerFunc {
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
		writeJSON(w, http.StatusOK, toReminderResponses(items, svc.Now()))
	}
}

// createReminderHandler godoc
// @Summary Crear recordatorio
// @Tags reminders
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body createReminderRequest true "Recordatorio"
// @Success 201 {object} reminderResponse
// @Failure 400 {string} string "validación"
// @Router /pets/{petID}/reminders [post]
func createReminderHandler(svc *Service, petAccess pets.Authorizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := authorizePet(w, r, petAccess)
		if !ok {
			return
		}

		var req createReminderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validation.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		due, err := time.Parse(time.DateOnly, req.DueDate)
		if err != nil {
			http.Error(w, "due_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		rem, err := svc.Create(r.Context(), petID, CreateInput{
			Title:          req.Title,
			Description:    req.Description,
			DueDate:        due,
			RepeatInterval: req.RepeatInterval,
		})
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, toReminderResponse(rem, svc.Now()))
	}
}

func updateReminderHandler(svc *Service, petAccess pets.Authorizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := authorizePet(w, r, petAccess)
		if !ok {
			return
		}

		var req updateReminderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validation.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		in := UpdateInput{Title: req.Title, Description: req.Description, RepeatInterval: req.RepeatInterval}
		if req.DueDate != nil {
			d, err := time.Parse(time.DateOnly, *req.DueDate)
			if err != nil {
				http.Error(w, "due_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.DueDate = &d
		}

		rem, err := svc.Update(r.Context(), petID, chi.URLParam(r, "reminderID"), in)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toReminderResponse(rem, svc.Now()))
	}
}

func deleteReminderHandler(svc *Service, petAccess pets.Authorizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := authorizePet(w, r, petAccess)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), petID, chi.URLParam(r, "reminderID")); err != nil {
			writeServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// toggleReminderHandler godoc
// @Summary Completar / descompletar recordatorio
// @Description Invierte is_completed. Al completar un recordatorio recurrente se crea el siguiente con la fecha avanzada un intervalo. Si el siguiente no se pudo crear, responde 502 y el recordatorio queda completado.
// @Tags reminders
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param reminderID path string true "ID del recordatorio"
// @Success 200 {object} toggleResponse
// @Failure 404 {string} string "reminder not found"
// @Failure 409 {string} string "reminder toggle already in progress"
// @Failure 502 {object} partialRolloverResponse
// @Router /pets/{petID}/reminders/{reminderID}/toggle [post]
func toggleReminderHandler(svc *Service, petAccess pets.Authorizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := authorizePet(w, r, petAccess)
		if !ok {
			return
		}

		res, err := svc.ToggleCompletion(r.Context(), petID, chi.URLParam(r, "reminderID"))
		if err != nil {
			var rollErr *RolloverError
			switch {
			case errors.As(err, &rollErr):
				writeJSON(w, http.StatusBadGateway, partialRolloverResponse{
					Error:    ErrPartialRollover.Error(),
					Reminder: toReminderResponse(rollErr.Reminder, svc.Now()),
				})
			case errors.Is(err, ErrToggleInFlight):
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				writeServiceError(w, r, err)
			}
			return
		}

		now := svc.Now()
		out := toggleResponse{
			Reminder:  toReminderResponse(res.Reminder, now),
			Reminders: toReminderResponses(res.Reminders, now),
		}
		if res.Successor != nil {
			s := toReminderResponse(*res.Successor, now)
			out.Successor = &s
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
		http.Error(w, "reminder not found", http.StatusNotFound)
	default:
		logger.FromContext(r.Context(), nil).Error("reminders store error", logger.Fields{"err": err})
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toReminderResponse(rem Reminder, now time.Time) reminderResponse {
	return reminderResponse{
		ID:               rem.ID,
		PetID:            rem.PetID,
		Title:            rem.Title,
		Description:      rem.Description,
		DueDate:          rem.DueDate.Format(time.DateOnly),
		RepeatInterval:   rem.RepeatInterval,
		IsCompleted:      rem.IsCompleted,
		IsOverdue:        IsOverdue(rem, now),
		SourceReminderID: rem.SourceReminderID,
		CreatedAt:        rem.CreatedAt,
		UpdatedAt:        rem.UpdatedAt,
	}
}

func toReminderResponses(items []Reminder, now time.Time) []reminderResponse {
	out := make([]reminderResponse, 0, len(items))
	for _, rem := range items {
		out = append(out, toReminderResponse(rem, now))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
