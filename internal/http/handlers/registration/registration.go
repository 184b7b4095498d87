// Package registration contains the HTTP handlers for the registration
// form lifecycle and for stored registrations.
//
// Handlers are built by factory functions that receive their
// dependencies and return an http.HandlerFunc closing over them:
//
//	router.HandleFunc("POST /api/forms", registration.CreateForm(forms))
//
// CreateForm(forms) runs once at startup; the returned func runs on
// every request.
package registration

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strconv"

	"github.com/aanand-mishra/student-registration/internal/form"
	"github.com/aanand-mishra/student-registration/internal/storage"
	"github.com/aanand-mishra/student-registration/internal/types"
	"github.com/aanand-mishra/student-registration/internal/utils/response"
)

// FormResponse is returned by every form endpoint.
type FormResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
	form.View
}

// SubmitResponse is returned by a successful submit.
type SubmitResponse struct {
	Status         string            `json:"status"`
	RegistrationID int64             `json:"registrationId"`
	Notification   form.Notification `json:"notification"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Options handles GET /api/form/options
// Returns the select choices and the list of required fields.
// ─────────────────────────────────────────────────────────────────────────────
func Options() http.HandlerFunc {
	opts := types.FormOptions()
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, opts)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// CreateForm handles POST /api/forms
// Starts an empty form in the editing state.
//
// Success response (201 Created):
//
//	{ "status": "ok", "id": "9b1d…", "state": "editing", "values": { … } }
//
// ─────────────────────────────────────────────────────────────────────────────
func CreateForm(forms *form.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, c := forms.Create()
		slog.Info("form created", slog.String("form_id", id))

		writeForm(w, http.StatusCreated, id, c)
	}
}

// GetForm handles GET /api/forms/{id}
func GetForm(forms *form.Registry) http.HandlerFunc {
	return withForm(forms, func(w http.ResponseWriter, r *http.Request, id string, c *form.Controller) {
		writeForm(w, http.StatusOK, id, c)
	})
}

// ─────────────────────────────────────────────────────────────────────────────
// UpdateField handles PUT /api/forms/{id}/fields/{name}
//
// Request body (JSON):
//
//	{ "value": "Jane" }
//
// Error responses:
//
//	400 Bad Request  — unknown field, empty body, or malformed JSON
//	404 Not Found    — no such form
//	409 Conflict     — form is submitting or already submitted
//
// ─────────────────────────────────────────────────────────────────────────────
func UpdateField(forms *form.Registry) http.HandlerFunc {
	return withForm(forms, func(w http.ResponseWriter, r *http.Request, id string, c *form.Controller) {
		name := r.PathValue("name")

		var body struct {
			Value *string `json:"value"`
		}
		if !decodeBody(w, r, &body) {
			return
		}
		if body.Value == nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New(`request body must contain "value"`)))
			return
		}

		if err := c.UpdateField(name, *body.Value); err != nil {
			writeFormError(w, err)
			return
		}

		writeForm(w, http.StatusOK, id, c)
	})
}

// ─────────────────────────────────────────────────────────────────────────────
// UpdateFields handles PATCH /api/forms/{id}
// Sets several fields at once from a JSON object of name → value.
// All names are checked before any value is changed.
//
// Request body (JSON):
//
//	{ "firstName": "Jane", "lastName": "Doe" }
//
// ─────────────────────────────────────────────────────────────────────────────
func UpdateFields(forms *form.Registry) http.HandlerFunc {
	return withForm(forms, func(w http.ResponseWriter, r *http.Request, id string, c *form.Controller) {
		var body map[string]string
		if !decodeBody(w, r, &body) {
			return
		}

		names := make([]string, 0, len(body))
		for name := range body {
			if _, ok := types.LookupField(name); !ok {
				writeFormError(w, form.ErrUnknownField)
				return
			}
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			if err := c.UpdateField(name, body[name]); err != nil {
				writeFormError(w, err)
				return
			}
		}

		writeForm(w, http.StatusOK, id, c)
	})
}

// Validate handles POST /api/forms/{id}/validate
// Reports missing required fields without changing the form.
func Validate(forms *form.Registry) http.HandlerFunc {
	return withForm(forms, func(w http.ResponseWriter, r *http.Request, id string, c *form.Controller) {
		errs := c.Validate()
		if errs == nil {
			errs = form.FieldErrors{}
		}
		response.WriteJSON(w, http.StatusOK, map[string]any{
			"valid":  len(errs) == 0,
			"errors": errs,
		})
	})
}

// ─────────────────────────────────────────────────────────────────────────────
// Submit handles POST /api/forms/{id}/submit
//
// The request blocks for the configured submit delay. If the client goes
// away first, the submit is abandoned and the form returns to editing.
//
// Success response (201 Created):
//
//	{ "status": "ok", "registrationId": 1,
//	  "notification": { "level": "success", "message": "Registration submitted successfully!" } }
//
// Error responses:
//
//	400 Bad Request  — required fields missing (per-field errors in "fields")
//	404 Not Found    — no such form
//	409 Conflict     — form is submitting or already submitted
//	502 Bad Gateway  — the submit itself failed; the form is editable again
//
// ─────────────────────────────────────────────────────────────────────────────
func Submit(forms *form.Registry) http.HandlerFunc {
	return withForm(forms, func(w http.ResponseWriter, r *http.Request, id string, c *form.Controller) {
		slog.Info("submitting form", slog.String("form_id", id))

		res, err := c.Submit(r.Context())
		if err != nil {
			writeFormError(w, err)
			return
		}

		slog.Info("form submitted",
			slog.String("form_id", id),
			slog.Int64("registration_id", res.RegistrationID))

		response.WriteJSON(w, http.StatusCreated, SubmitResponse{
			Status:         response.StatusOK,
			RegistrationID: res.RegistrationID,
			Notification:   res.Notification,
		})
	})
}

// Reset handles POST /api/forms/{id}/reset
// Empties the form so another student can be registered.
func Reset(forms *form.Registry) http.HandlerFunc {
	return withForm(forms, func(w http.ResponseWriter, r *http.Request, id string, c *form.Controller) {
		if err := c.Reset(); err != nil {
			writeFormError(w, err)
			return
		}
		writeForm(w, http.StatusOK, id, c)
	})
}

// DeleteForm handles DELETE /api/forms/{id}
func DeleteForm(forms *form.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if err := forms.Delete(id); err != nil {
			writeFormError(w, err)
			return
		}
		slog.Info("form discarded", slog.String("form_id", id))
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/registrations
// Runs a whole form lifecycle in one request: a fresh form is filled from
// the JSON body and submitted.
//
// Request body (JSON): a Registration, e.g.
//
//	{ "firstName": "Jane", "lastName": "Doe", … }
//
// Success response (201 Created): same as Submit.
// ─────────────────────────────────────────────────────────────────────────────
func New(newForm func() *form.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a registration")

		var reg types.Registration
		if !decodeBody(w, r, &reg) {
			return
		}

		c := newForm()
		for _, f := range types.Fields {
			value, _ := reg.FieldRef(f.Name)
			if err := c.UpdateField(f.Name, *value); err != nil {
				writeFormError(w, err)
				return
			}
		}

		res, err := c.Submit(r.Context())
		if err != nil {
			writeFormError(w, err)
			return
		}

		slog.Info("registration created", slog.Int64("id", res.RegistrationID))
		response.WriteJSON(w, http.StatusCreated, SubmitResponse{
			Status:         response.StatusOK,
			RegistrationID: res.RegistrationID,
			Notification:   res.Notification,
		})
	}
}

// GetByID handles GET /api/registrations/{id}
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting a registration", slog.String("id", id))

		intID, ok := parseID(w, id)
		if !ok {
			return
		}

		reg, err := store.GetRegistrationByID(intID)
		if err != nil {
			writeStorageError(w, id, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, reg)
	}
}

// GetList handles GET /api/registrations
// Returns [] (not null) when nothing has been submitted.
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all registrations")

		regs, err := store.GetRegistrations()
		if err != nil {
			slog.Error("error getting registrations", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, regs)
	}
}

// Delete handles DELETE /api/registrations/{id}
func Delete(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a registration", slog.String("id", id))

		intID, ok := parseID(w, id)
		if !ok {
			return
		}

		if err := store.DeleteRegistrationByID(intID); err != nil {
			writeStorageError(w, id, err)
			return
		}

		slog.Info("registration deleted", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// formHandler is a handler that has already resolved its form.
type formHandler func(w http.ResponseWriter, r *http.Request, id string, c *form.Controller)

// withForm looks up the {id} form and answers 404 when it is missing.
func withForm(forms *form.Registry, next formHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		c, err := forms.Get(id)
		if err != nil {
			writeFormError(w, err)
			return
		}
		next(w, r, id, c)
	}
}

func writeForm(w http.ResponseWriter, status int, id string, c *form.Controller) {
	response.WriteJSON(w, status, FormResponse{
		Status: response.StatusOK,
		ID:     id,
		View:   c.View(),
	})
}

// decodeBody decodes the JSON request body into v. It writes a 400 and
// returns false when the body is empty or malformed.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("request body is empty")))
		return false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return false
	}
	return true
}

func parseID(w http.ResponseWriter, id string) (int64, bool) {
	intID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("invalid id: must be an integer")))
		return 0, false
	}
	return intID, true
}

// writeFormError maps form lifecycle errors to HTTP status codes.
func writeFormError(w http.ResponseWriter, err error) {
	var verr *form.ValidationError
	var serr *form.SubmitError

	switch {
	case errors.As(err, &verr):
		response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(verr))
	case errors.Is(err, form.ErrUnknownField):
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
	case errors.Is(err, form.ErrFormNotFound):
		response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
	case errors.Is(err, form.ErrSubmitInProgress), errors.Is(err, form.ErrNotEditing):
		response.WriteJSON(w, http.StatusConflict, response.GeneralError(err))
	case errors.As(err, &serr):
		response.WriteJSON(w, http.StatusBadGateway, response.GeneralError(err))
	default:
		slog.Error("unexpected form error", slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
	}
}

func writeStorageError(w http.ResponseWriter, id string, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
		return
	}
	slog.Error("storage error",
		slog.String("id", id),
		slog.String("error", err.Error()))
	response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
}
