package registration

import (
	"net/http"

	"github.com/aanand-mishra/student-registration/internal/form"
	"github.com/aanand-mishra/student-registration/internal/storage"
)

// Routes registers every endpoint on a new ServeMux.
//
// Route table:
//
//	GET    /health                          → liveness
//	GET    /api/form/options                → select choices, required fields
//	POST   /api/forms                       → start a form
//	GET    /api/forms/{id}                  → view a form
//	PATCH  /api/forms/{id}                  → set several fields
//	PUT    /api/forms/{id}/fields/{name}    → set one field
//	POST   /api/forms/{id}/validate         → check required fields
//	POST   /api/forms/{id}/submit           → submit
//	POST   /api/forms/{id}/reset            → empty the form
//	DELETE /api/forms/{id}                  → discard a form
//	POST   /api/registrations               → fill and submit in one call
//	GET    /api/registrations               → list stored registrations
//	GET    /api/registrations/{id}          → get one
//	DELETE /api/registrations/{id}          → delete one
func Routes(forms *form.Registry, store storage.Storage, newForm func() *form.Controller) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	router.HandleFunc("GET /api/form/options", Options())

	router.HandleFunc("POST /api/forms", CreateForm(forms))
	router.HandleFunc("GET /api/forms/{id}", GetForm(forms))
	router.HandleFunc("PATCH /api/forms/{id}", UpdateFields(forms))
	router.HandleFunc("PUT /api/forms/{id}/fields/{name}", UpdateField(forms))
	router.HandleFunc("POST /api/forms/{id}/validate", Validate(forms))
	router.HandleFunc("POST /api/forms/{id}/submit", Submit(forms))
	router.HandleFunc("POST /api/forms/{id}/reset", Reset(forms))
	router.HandleFunc("DELETE /api/forms/{id}", DeleteForm(forms))

	router.HandleFunc("POST /api/registrations", New(newForm))
	router.HandleFunc("GET /api/registrations", GetList(store))
	router.HandleFunc("GET /api/registrations/{id}", GetByID(store))
	router.HandleFunc("DELETE /api/registrations/{id}", Delete(store))

	return router
}
