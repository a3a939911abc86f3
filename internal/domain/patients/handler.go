package patients

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"vet-patient-records/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/patients", func(pr chi.Router) {
		pr.Get("/", listPatientsHandler(svc))
		pr.Post("/", createPatientHandler(svc))

		// Catálogo de chips (operaciones / estudios)
		pr.Get("/options", optionsHandler())
		pr.Get("/export", exportPatientsHandler(svc))

		// Vista de edición: el id llega por la URL
		pr.Get("/{patientID}", getPatientHandler(svc))
		pr.Patch("/{patientID}", updatePatientHandler(svc))
		pr.Delete("/{patientID}", deletePatientHandler(svc))
	})
}

// patientRequest es el cuerpo del formulario de alta.
type patientRequest struct {
	PatientName      string   `json:"patientName"`
	Species          string   `json:"species"`
	Breed            string   `json:"breed"`
	Age              Age      `json:"age" swaggertype:"string"`
	VaccinesUpToDate Vaccines `json:"vaccinesUpToDate" enums:"Si,No,"`
	Operations       []string `json:"operations"`
	RecentStudies    []string `json:"recentStudies"`
	OwnerName        string   `json:"ownerName"`
	OwnerPhone       string   `json:"ownerPhone"`
	Notes            string   `json:"notes"`
}

// patchPatientRequest: punteros para PATCH real, nil = no tocar.
type patchPatientRequest struct {
	PatientName      *string   `json:"patientName"`
	Species          *string   `json:"species"`
	Breed            *string   `json:"breed"`
	Age              *Age      `json:"age" swaggertype:"string"`
	VaccinesUpToDate *Vaccines `json:"vaccinesUpToDate" enums:"Si,No,"`
	Operations       *[]string `json:"operations"`
	RecentStudies    *[]string `json:"recentStudies"`
	OwnerName        *string   `json:"ownerName"`
	OwnerPhone       *string   `json:"ownerPhone"`
	Notes            *string   `json:"notes"`
}

type validationResponse struct {
	Errors ValidationErrors `json:"errors"`
}

type optionsResponse struct {
	Operations []string `json:"operations"`
	Studies    []string `json:"studies"`
}

// listPatientsHandler godoc
// @Summary Listar fichas
// @Description Devuelve las fichas de la más nueva a la más vieja. Requiere sesión activa.
// @Tags patients
// @Produce json
// @Param q query string false "Texto a buscar en nombre, especie, raza o responsable"
// @Success 200 {array} Patient
// @Failure 401 {string} string "unauthorized"
// @Router /patients [get]
func listPatientsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireSession(w, r) {
			return
		}

		items := svc.List(r.Context(), ListFilter{Query: r.URL.Query().Get("q")})
		writeJSON(w, http.StatusOK, items)
	}
}

// createPatientHandler godoc
// @Summary Crear ficha
// @Description Valida el formulario y guarda la ficha con id y fecha de alta nuevos.
// @Tags patients
// @Accept json
// @Produce json
// @Param payload body patientRequest true "Datos de la ficha"
// @Success 201 {object} Patient
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "unauthorized"
// @Failure 422 {object} validationResponse
// @Failure 500 {string} string "internal error"
// @Router /patients [post]
func createPatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireSession(w, r) {
			return
		}

		var req patientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d := Draft{
			PatientName:      req.PatientName,
			Species:          req.Species,
			Breed:            req.Breed,
			Age:              req.Age,
			VaccinesUpToDate: req.VaccinesUpToDate,
			Operations:       req.Operations,
			RecentStudies:    req.RecentStudies,
			OwnerName:        req.OwnerName,
			OwnerPhone:       req.OwnerPhone,
			Notes:            req.Notes,
		}
		if errs := Validate(d); len(errs) > 0 {
			writeJSON(w, http.StatusUnprocessableEntity, validationResponse{Errors: errs})
			return
		}

		p, err := svc.Create(r.Context(), d)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, p)
	}
}

// getPatientHandler godoc
// @Summary Ver ficha
// @Tags patients
// @Produce json
// @Param patientID path string true "ID de la ficha"
// @Success 200 {object} Patient
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "patient not found"
// @Router /patients/{patientID} [get]
func getPatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireSession(w, r) {
			return
		}

		p, err := svc.Get(r.Context(), chi.URLParam(r, "patientID"))
		if err != nil {
			http.Error(w, "patient not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// updatePatientHandler godoc
// @Summary Editar ficha
// @Description Aplica los campos enviados, valida la ficha resultante y la guarda. id y createdAt no cambian.
// @Tags patients
// @Accept json
// @Produce json
// @Param patientID path string true "ID de la ficha"
// @Param payload body patchPatientRequest true "Campos a modificar"
// @Success 200 {object} Patient
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "patient not found"
// @Failure 422 {object} validationResponse
// @Failure 500 {string} string "internal error"
// @Router /patients/{patientID} [patch]
func updatePatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireSession(w, r) {
			return
		}

		// id/createdAt no son editables: si vienen en el body se rechaza el request
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req patchPatientRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		patch := Patch{
			PatientName:      req.PatientName,
			Species:          req.Species,
			Breed:            req.Breed,
			Age:              req.Age,
			VaccinesUpToDate: req.VaccinesUpToDate,
			Operations:       req.Operations,
			RecentStudies:    req.RecentStudies,
			OwnerName:        req.OwnerName,
			OwnerPhone:       req.OwnerPhone,
			Notes:            req.Notes,
		}

		updated, err := svc.Edit(r.Context(), chi.URLParam(r, "patientID"), patch)
		if err != nil {
			var verrs ValidationErrors
			switch {
			case errors.As(err, &verrs):
				writeJSON(w, http.StatusUnprocessableEntity, validationResponse{Errors: verrs})
			case errors.Is(err, ErrNotFound):
				http.Error(w, "patient not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, updated)
	}
}

// deletePatientHandler godoc
// @Summary Borrar ficha
// @Tags patients
// @Param patientID path string true "ID de la ficha"
// @Success 204
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "patient not found"
// @Failure 500 {string} string "internal error"
// @Router /patients/{patientID} [delete]
func deletePatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireSession(w, r) {
			return
		}

		removed, err := svc.Delete(r.Context(), chi.URLParam(r, "patientID"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !removed {
			http.Error(w, "patient not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// optionsHandler godoc
// @Summary Opciones de operaciones y estudios
// @Tags patients
// @Produce json
// @Success 200 {object} optionsResponse
// @Router /patients/options [get]
func optionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, optionsResponse{
			Operations: OperationOptions,
			Studies:    StudyOptions,
		})
	}
}

// exportPatientsHandler godoc
// @Summary Exportar fichas
// @Tags patients
// @Produce json
// @Produce application/yaml
// @Param format query string false "json (default) o yaml"
// @Success 200 {array} Patient
// @Failure 400 {string} string "unknown export format"
// @Failure 401 {string} string "unauthorized"
// @Router /patients/export [get]
func exportPatientsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireSession(w, r) {
			return
		}

		format, err := ParseExportFormat(r.URL.Query().Get("format"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var buf bytes.Buffer
		if err := Encode(&buf, format, svc.List(r.Context(), ListFilter{})); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", format.ContentType())
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}

func requireSession(w http.ResponseWriter, r *http.Request) bool {
	if _, ok := middleware.GetSession(r.Context()); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
