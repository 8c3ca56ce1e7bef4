// Package student contains all HTTP handlers the dashboard UI talks to.
//
// HANDLER PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// Go's router expects handler functions with the signature:
//
//	func(http.ResponseWriter, *http.Request)
//
// That signature has no room for extra parameters like the dashboard.
// To inject dependencies we use a factory function that:
//  1. Accepts dependencies (the dashboard facade)
//  2. Returns a function with the exact signature the router needs
//
// Because the inner function "closes over" the outer parameters, it can
// access `dash` even after the factory call has returned. Example:
//
//	router.HandleFunc("POST /api/students", student.New(dash))
//	//                                      ^^^^^^^^^^^^^^^^^
//	//                    New(dash) is called ONCE at startup. It
//	//                    returns a handler func which is called on
//	//                    EVERY incoming request.
//
// Add and edit arrive as multipart forms because they may carry a photo
// file alongside the text fields; search and sort are small JSON events.
package student

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/aanand-mishra/student-registry/internal/dashboard"
	"github.com/aanand-mishra/student-registry/internal/registry"
	"github.com/aanand-mishra/student-registry/internal/types"
	"github.com/aanand-mishra/student-registry/internal/utils/response"
	"github.com/aanand-mishra/student-registry/internal/validation"
	"github.com/aanand-mishra/student-registry/internal/view"
)

// maxUploadSize bounds the whole multipart body, photo included. Encoded
// images are stored inline in the student list, so an oversized upload
// would bloat every subsequent persistence write.
const maxUploadSize = 10 << 20 // 10 MiB

// durabilityNote is the warning clients receive when a mutation succeeded
// in memory but the storage write failed.
const durabilityNote = "not persisted"

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/students
// Creates a new student from a multipart form.
//
// Form fields: name, email, rollNo, enrolledCourse, photo (optional file)
//
// Success response (201 Created):
//
//	{ "student": { "rollNo": "S111", ... } }
//
// Error responses:
//
//	400 Bad Request  — invalid form or failed admission validation
//	500 Internal     — image encoding or storage error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(dash *dashboard.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		candidate, photo, ok := decodeStudentForm(w, r)
		if !ok {
			return
		}
		if photo != nil {
			defer photo.Close()
		}

		student, err := dash.AddStudent(r.Context(), candidate, photoReader(photo))
		if isDurability(err) {
			response.WriteJSON(w, http.StatusCreated,
				response.StudentResult{Student: student, Durability: durabilityNote})
			return
		}
		if err != nil {
			writeMutationError(w, err)
			return
		}

		slog.Info("student created", slog.String("rollNo", student.RollNo))
		response.WriteJSON(w, http.StatusCreated,
			response.StudentResult{Student: student})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /api/students/{rollNo}
// Replaces the editable fields of an existing student. The roll number in
// the path is the key; it cannot be changed by this request.
//
// Form fields: name, email, enrolledCourse, profileImage (current value),
// photo (optional replacement file)
//
// Success response (200 OK) — the updated student.
//
// Error responses:
//
//	400 Bad Request  — invalid form
//	404 Not Found    — no student with that roll number
//	500 Internal     — image encoding or storage error
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(dash *dashboard.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rollNo := r.PathValue("rollNo")
		slog.Info("updating a student", slog.String("rollNo", rollNo))

		if err := parseMultipart(w, r); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		patch := types.StudentPatch{
			Name:           r.FormValue("name"),
			Email:          r.FormValue("email"),
			EnrolledCourse: r.FormValue("enrolledCourse"),
			ProfileImage:   r.FormValue("profileImage"),
		}

		photo, ok := formPhoto(w, r)
		if !ok {
			return
		}
		if photo != nil {
			defer photo.Close()
		}

		student, err := dash.EditStudent(r.Context(), rollNo, patch, photoReader(photo))
		if isDurability(err) {
			response.WriteJSON(w, http.StatusOK,
				response.StudentResult{Student: student, Durability: durabilityNote})
			return
		}
		if err != nil {
			writeMutationError(w, err)
			return
		}

		slog.Info("student updated", slog.String("rollNo", rollNo))
		response.WriteJSON(w, http.StatusOK, student)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /api/students/{rollNo}
// Permanently removes a student record.
//
// Success response (200 OK):
//
//	{ "status": "deleted" }
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete(dash *dashboard.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rollNo := r.PathValue("rollNo")
		slog.Info("deleting a student", slog.String("rollNo", rollNo))

		err := dash.DeleteStudent(r.Context(), rollNo)
		if isDurability(err) {
			response.WriteJSON(w, http.StatusOK,
				map[string]string{"status": "deleted", "durability": durabilityNote})
			return
		}
		if err != nil {
			writeMutationError(w, err)
			return
		}

		slog.Info("student deleted", slog.String("rollNo", rollNo))
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/students
// Returns the displayed list: the canonical records with the sticky
// search query and sort criterion applied. Returns an empty array [] (not
// null) when nothing matches.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(dash *dashboard.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting displayed students")
		response.WriteJSON(w, http.StatusOK, dash.Displayed())
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Search handles POST /api/search
// Replaces the active query and returns the recomputed displayed list.
// The query sticks until the next search; an empty query clears it.
//
// Request body (JSON):  { "query": "react" }
// ─────────────────────────────────────────────────────────────────────────────
func Search(dash *dashboard.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query string `json:"query"`
		}

		err := json.NewDecoder(r.Body).Decode(&req)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		slog.Info("searching students", slog.String("query", req.Query))
		response.WriteJSON(w, http.StatusOK, dash.Search(req.Query))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Sort handles POST /api/sort
// Replaces the active sort criterion and returns the recomputed displayed
// list. Valid criteria: "name", "serial", "course", "" (no sort).
//
// Request body (JSON):  { "by": "name" }
// ─────────────────────────────────────────────────────────────────────────────
func Sort(dash *dashboard.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			By string `json:"by"`
		}

		err := json.NewDecoder(r.Body).Decode(&req)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		criterion, err := view.ParseCriterion(req.By)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		slog.Info("sorting students", slog.String("by", criterion.String()))
		response.WriteJSON(w, http.StatusOK, dash.SortBy(criterion))
	}
}

// decodeStudentForm parses the add form into a candidate plus optional
// photo. On failure it has already written the error response; callers
// just return when ok is false.
func decodeStudentForm(w http.ResponseWriter, r *http.Request) (types.NewStudent, multipart.File, bool) {
	if err := parseMultipart(w, r); err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return types.NewStudent{}, nil, false
	}

	candidate := types.NewStudent{
		RollNo:         r.FormValue("rollNo"),
		Name:           r.FormValue("name"),
		Email:          r.FormValue("email"),
		EnrolledCourse: r.FormValue("enrolledCourse"),
	}

	photo, ok := formPhoto(w, r)
	if !ok {
		return types.NewStudent{}, nil, false
	}

	return candidate, photo, true
}

func parseMultipart(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return errors.New("form too large or invalid")
	}
	return nil
}

// formPhoto extracts the optional photo file. A missing file is fine;
// any other FormFile failure is a client error (already written).
func formPhoto(w http.ResponseWriter, r *http.Request) (multipart.File, bool) {
	file, _, err := r.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, true
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("invalid photo upload")))
		return nil, false
	}
	return file, true
}

// photoReader converts a possibly-nil multipart.File into the io.Reader
// the dashboard expects. A typed nil inside a non-nil interface would
// make the registry think an attachment exists, hence the explicit check.
func photoReader(f multipart.File) io.Reader {
	if f == nil {
		return nil
	}
	return f
}

func writeMutationError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(verr))
	case errors.Is(err, registry.ErrNotFound):
		response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
	default:
		slog.Error("student mutation failed", slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
	}
}

func isDurability(err error) bool {
	var de *registry.DurabilityError
	return errors.As(err, &de)
}
