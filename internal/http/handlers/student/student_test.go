package student_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-registry/internal/dashboard"
	"github.com/aanand-mishra/student-registry/internal/http/handlers/student"
	"github.com/aanand-mishra/student-registry/internal/registry"
	"github.com/aanand-mishra/student-registry/internal/storage/memory"
	"github.com/aanand-mishra/student-registry/internal/types"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := registry.New(memory.New(), log, registry.Options{
		Seed: []types.Student{
			{RollNo: "S101", Name: "Pankaj Pawara", Email: "pankaj.pawara@example.com", EnrolledCourse: types.CourseReactInDepth},
			{RollNo: "S102", Name: "Anita Deshmukh", Email: "anita.deshmukh@example.com", EnrolledCourse: types.CourseJavaScriptPro},
		},
		DefaultImage: "https://example.com/avatar.png",
	})

	dash := dashboard.New(store, log)
	require.NoError(t, dash.Start(context.Background()))

	router := http.NewServeMux()
	router.HandleFunc("POST /api/students", student.New(dash))
	router.HandleFunc("GET /api/students", student.GetList(dash))
	router.HandleFunc("PUT /api/students/{rollNo}", student.Update(dash))
	router.HandleFunc("DELETE /api/students/{rollNo}", student.Delete(dash))
	router.HandleFunc("POST /api/search", student.Search(dash))
	router.HandleFunc("POST /api/sort", student.Sort(dash))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

// studentForm builds a multipart body with the given text fields and an
// optional photo payload.
func studentForm(t *testing.T, fields map[string]string, photo []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if photo != nil {
		fw, err := mw.CreateFormFile("photo", "avatar.png")
		require.NoError(t, err)
		_, err = fw.Write(photo)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func doJSON(t *testing.T, method, url string, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func listStudents(t *testing.T, srv *httptest.Server) []types.Student {
	t.Helper()

	resp, err := http.Get(srv.URL + "/api/students")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var students []types.Student
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&students))
	return students
}

func TestAdd_Created(t *testing.T) {
	srv := newServer(t)

	body, ctype := studentForm(t, map[string]string{
		"rollNo":         "S201",
		"name":           "Asha Kulkarni",
		"email":          "asha.kulkarni@example.com",
		"enrolledCourse": types.CourseCSSMastery,
	}, nil)

	resp, err := http.Post(srv.URL+"/api/students", ctype, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Student types.Student `json:"student"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "S201", created.Student.RollNo)
	assert.Equal(t, "https://example.com/avatar.png", created.Student.ProfileImage)

	assert.Len(t, listStudents(t, srv), 3)
}

func TestAdd_WithPhotoStoresDataURI(t *testing.T) {
	srv := newServer(t)

	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	body, ctype := studentForm(t, map[string]string{
		"rollNo":         "S202",
		"name":           "Ishan Sawant",
		"email":          "ishan.sawant@example.com",
		"enrolledCourse": types.CourseHTMLBasics,
	}, png)

	resp, err := http.Post(srv.URL+"/api/students", ctype, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Student types.Student `json:"student"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.True(t, strings.HasPrefix(created.Student.ProfileImage, "data:image/png;base64,"))
}

func TestAdd_ValidationFailuresAreBadRequests(t *testing.T) {
	srv := newServer(t)

	tests := []struct {
		name   string
		fields map[string]string
		msg    string
	}{
		{
			"missing name",
			map[string]string{"rollNo": "S1", "email": "a@b.com", "enrolledCourse": types.CourseHTMLBasics},
			"field name is required",
		},
		{
			"bad email",
			map[string]string{"rollNo": "S1", "name": "A", "email": "bad", "enrolledCourse": types.CourseHTMLBasics},
			"field email must be a valid email address",
		},
		{
			"duplicate roll number",
			map[string]string{"rollNo": "S101", "name": "A", "email": "a@b.com", "enrolledCourse": types.CourseHTMLBasics},
			"roll number already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, ctype := studentForm(t, tt.fields, nil)
			resp, err := http.Post(srv.URL+"/api/students", ctype, body)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var envelope struct {
				Status string `json:"status"`
				Error  string `json:"error"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
			assert.Equal(t, "error", envelope.Status)
			assert.Equal(t, tt.msg, envelope.Error)
		})
	}

	assert.Len(t, listStudents(t, srv), 2, "no failed add may touch the list")
}

func TestUpdate_EditsFieldsButNeverTheKey(t *testing.T) {
	srv := newServer(t)

	body, ctype := studentForm(t, map[string]string{
		"name":           "Pankaj P.",
		"email":          "pankaj@new.example.com",
		"enrolledCourse": types.CourseCSSMastery,
		"profileImage":   "https://example.com/kept.png",
	}, nil)

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/api/students/S101", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", ctype)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated types.Student
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.Equal(t, "S101", updated.RollNo)
	assert.Equal(t, "Pankaj P.", updated.Name)
}

func TestUpdate_UnknownRollNoIs404(t *testing.T) {
	srv := newServer(t)

	body, ctype := studentForm(t, map[string]string{"name": "X"}, nil)
	req, err := http.NewRequest(http.MethodPut, srv.URL+"/api/students/S999", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", ctype)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDelete_RemovesAndReports404ForUnknown(t *testing.T) {
	srv := newServer(t)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/students/S101", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, listStudents(t, srv), 1)

	req, err = http.NewRequest(http.MethodDelete, srv.URL+"/api/students/S101", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSearchAndSort_AreStickyAcrossMutations(t *testing.T) {
	srv := newServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/search", `{"query":"react"}`)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/sort", `{"by":"name"}`)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Add a matching record; it must appear in the displayed list without
	// a new search request.
	body, ctype := studentForm(t, map[string]string{
		"rollNo":         "S203",
		"name":           "Aarav Mehta",
		"email":          "aarav.mehta@example.com",
		"enrolledCourse": types.CourseReactInDepth,
	}, nil)
	addResp, err := http.Post(srv.URL+"/api/students", ctype, body)
	require.NoError(t, err)
	addResp.Body.Close()
	require.Equal(t, http.StatusCreated, addResp.StatusCode)

	got := listStudents(t, srv)
	require.Len(t, got, 2)
	assert.Equal(t, "Aarav Mehta", got[0].Name, "sorted into place")
	assert.Equal(t, "Pankaj Pawara", got[1].Name)
}

func TestSort_RejectsUnknownCriterion(t *testing.T) {
	srv := newServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/sort", `{"by":"date"}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSearch_EmptyBodyIsBadRequest(t *testing.T) {
	srv := newServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/search", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
