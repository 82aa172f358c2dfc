package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"p9e.in/fabtrack/handlers"
	"p9e.in/fabtrack/middleware"
	"p9e.in/fabtrack/models"
	"p9e.in/fabtrack/pkg/drawings"
	"p9e.in/fabtrack/pkg/records"
	"p9e.in/fabtrack/routes"
	"p9e.in/fabtrack/testutil"
)

type testAPI struct {
	t          *testing.T
	handler    http.Handler
	svc        *records.Services
	uploadDir  string
	adminToken string
	staffToken string
}

func setupAPI(t *testing.T) *testAPI {
	t.Helper()
	db, svc := testutil.SetupServices(t)
	ctx := context.Background()

	uploadDir := t.TempDir()
	store, err := drawings.NewLocalStore(uploadDir)
	require.NoError(t, err)

	tokens := middleware.NewTokenIssuer(testutil.JWTSecret, time.Hour)
	h := handlers.New(db, svc, store, tokens, zap.NewNop(), handlers.Options{})
	api := &testAPI{
		t:         t,
		handler:   routes.RegisterRoutes(h, tokens, zap.NewNop()),
		svc:       svc,
		uploadDir: uploadDir,
	}

	_, err = svc.Credentials.Register(ctx, nil, "admin", "admin-pass", models.RoleAdmin)
	require.NoError(t, err)
	_, err = svc.Credentials.Register(ctx, nil, "meena", "staff-pass", models.RoleStaff)
	require.NoError(t, err)
	api.adminToken = api.login("admin", "admin-pass")
	api.staffToken = api.login("meena", "staff-pass")
	return api
}

func (a *testAPI) login(username, password string) string {
	a.t.Helper()
	rr := a.do(http.MethodPost, "/login", "", map[string]string{"username": username, "password": password})
	require.Equal(a.t, http.StatusOK, rr.Code, rr.Body.String())
	var resp struct {
		Token string `json:"token"`
		User  struct {
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"user"`
	}
	require.NoError(a.t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(a.t, username, resp.User.Username)
	return resp.Token
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func errorOf(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, rr)["error"]
}

func TestLoginAndAuth(t *testing.T) {
	api := setupAPI(t)

	rr := api.do(http.MethodPost, "/login", "", map[string]string{"username": "admin", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.NotEmpty(t, errorOf(t, rr))

	rr = api.do(http.MethodPost, "/login", "", "{not json")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = api.do(http.MethodGet, "/api/v1/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = api.do(http.MethodGet, "/api/v1/me", api.staffToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, map[string]string{"username": "meena", "role": "staff"}, decode[map[string]string](t, rr))

	rr = api.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = api.do(http.MethodGet, "/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "/api/v1/projects")
}

func TestChangePassword(t *testing.T) {
	api := setupAPI(t)

	rr := api.do(http.MethodPost, "/api/v1/change-password", api.staffToken,
		map[string]string{"current_password": "wrong", "new_password": "new-staff-pass"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = api.do(http.MethodPost, "/api/v1/change-password", api.staffToken,
		map[string]string{"current_password": "staff-pass", "new_password": "new-staff-pass"})
	require.Equal(t, http.StatusNoContent, rr.Code)

	api.login("meena", "new-staff-pass")
}

func TestMasterWritesRequireAdmin(t *testing.T) {
	api := setupAPI(t)

	rr := api.do(http.MethodPost, "/api/v1/vendors", api.staffToken, map[string]string{"name": "Sri Steels"})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = api.do(http.MethodPost, "/api/v1/vendors", api.adminToken, map[string]string{"name": "Sri Steels"})
	require.Equal(t, http.StatusCreated, rr.Code)
	vendor := decode[models.Vendor](t, rr)

	rr = api.do(http.MethodPut, fmt.Sprintf("/api/v1/vendors/%d", vendor.ID), api.staffToken,
		map[string]string{"name": "Sri Steels", "phone": "044 1234"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = api.do(http.MethodGet, "/api/v1/vendors/names", api.staffToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"Sri Steels"}, decode[[]string](t, rr))

	rr = api.do(http.MethodDelete, fmt.Sprintf("/api/v1/vendors/%d", vendor.ID), api.staffToken, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	rr = api.do(http.MethodDelete, fmt.Sprintf("/api/v1/vendors/%d", vendor.ID), api.adminToken, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = api.do(http.MethodGet, fmt.Sprintf("/api/v1/vendors/%d", vendor.ID), api.staffToken, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestEmployeeUsernameConflict(t *testing.T) {
	api := setupAPI(t)

	rr := api.do(http.MethodPost, "/api/v1/employees", api.adminToken,
		map[string]string{"name": "Ravi", "username": "ravi", "password": "ravi-pass"})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = api.do(http.MethodPost, "/api/v1/employees", api.adminToken,
		map[string]string{"name": "Ravi Two", "username": "ravi", "password": "ravi-pass"})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = api.do(http.MethodGet, "/api/v1/employees", api.staffToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]models.Employee](t, rr), 1)

	api.login("ravi", "ravi-pass")
}

func TestProjectLifecycle(t *testing.T) {
	api := setupAPI(t)
	token := api.staffToken

	rr := api.do(http.MethodPost, "/api/v1/projects", token, map[string]string{
		"client":     "Acme Foods",
		"start_date": "2024-05-01",
		"end_date":   "2024-06-30",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	project := decode[models.Project](t, rr)
	assert.Equal(t, fmt.Sprintf("VE/TN/%d/E001", time.Now().Year()), project.EnquiryID)
	assert.Equal(t, models.DesignPreparation, project.DesignStatus)
	base := fmt.Sprintf("/api/v1/projects/%d", project.ID)

	rr = api.do(http.MethodPost, "/api/v1/projects", token, map[string]string{"enquiry_id": project.EnquiryID, "client": "Other"})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = api.do(http.MethodPost, "/api/v1/projects", token, map[string]string{"client": "Acme", "start_date": "05/01/2024"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	for _, entry := range []map[string]any{
		{"duct_no": "D1", "length": 1000, "width": 500, "quantity": 2, "gauge": "22G"},
		{"duct_no": "D2", "length": 1000, "width": 250, "quantity": 2, "gauge": "22g"},
	} {
		rr = api.do(http.MethodPost, base+"/measurements", token, entry)
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	}
	rr = api.do(http.MethodPost, base+"/measurements", token, map[string]any{"length": 0, "width": 500, "quantity": 1, "gauge": "22G"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = api.do(http.MethodGet, base+"/area-by-gauge", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, map[string]float64{"22G": 1.5}, decode[map[string]float64](t, rr))

	rr = api.do(http.MethodGet, "/api/v1/production", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decode[[]records.ProductionRow](t, rr))

	rr = api.do(http.MethodPost, base+"/finalize", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = api.do(http.MethodPost, base+"/finalize", token, nil)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = api.do(http.MethodPut, base+"/production", token, map[string]float64{"sheet_cutting": 100, "plasma_fabrication": 50})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	rr = api.do(http.MethodPut, base+"/production", token, map[string]float64{"dispatch": 120})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = api.do(http.MethodGet, base+"/production", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	stages := decode[struct {
		Stages          records.Stages `json:"stages"`
		OverallProgress float64        `json:"overall_progress"`
	}](t, rr)
	assert.Equal(t, records.Stages{SheetCutting: 100, PlasmaFabrication: 50}, stages.Stages)
	assert.Equal(t, 30.0, stages.OverallProgress)

	rr = api.do(http.MethodGet, "/api/v1/production", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rows := decode[[]records.ProductionRow](t, rr)
	require.Len(t, rows, 1)
	assert.Equal(t, project.ID, rows[0].Project.ID)

	rr = api.do(http.MethodGet, base+"/summary", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	summary := decode[records.ProjectSummary](t, rr)
	assert.Equal(t, 1.5, summary.TotalArea)
	assert.Equal(t, "2024-05-01", summary.Project.StartDate.String())

	rr = api.do(http.MethodGet, "/api/v1/dashboard", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(1), decode[records.DashboardStats](t, rr).ProjectsCompleted)

	rr = api.do(http.MethodDelete, base, token, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = api.do(http.MethodGet, base+"/summary", token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestExports(t *testing.T) {
	api := setupAPI(t)
	ctx := context.Background()

	p, err := api.svc.Projects.Create(ctx, records.ProjectInput{EnquiryID: "VE/TN/2024/E007", Client: "Acme"})
	require.NoError(t, err)
	_, err = api.svc.Measurements.AddEntry(ctx, p.ID, records.EntryInput{DuctNo: "D1", Length: 1000, Width: 500, Quantity: 2, Gauge: "22G"})
	require.NoError(t, err)

	rr := api.do(http.MethodGet, fmt.Sprintf("/api/v1/projects/%d/measurements/export", p.ID), api.staffToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "VE_TN_2024_E007_measurements_")

	f, err := excelize.OpenReader(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	duct, err := f.GetCellValue("Measurements", "A5")
	require.NoError(t, err)
	assert.Equal(t, "D1", duct)
	gauge, err := f.GetCellValue("Measurements", "G5")
	require.NoError(t, err)
	assert.Equal(t, "22G", gauge)

	rr = api.do(http.MethodGet, fmt.Sprintf("/api/v1/projects/%d/summary/export", p.ID), api.staffToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	s, err := excelize.OpenReader(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
	defer s.Close()
	enquiry, err := s.GetCellValue("Summary", "B4")
	require.NoError(t, err)
	assert.Equal(t, "VE/TN/2024/E007", enquiry)

	rr = api.do(http.MethodGet, "/api/v1/projects/9999/summary/export", api.staffToken, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestProjectWithDrawingUpload(t *testing.T) {
	api := setupAPI(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("client", "Acme"))
	require.NoError(t, mw.WriteField("location", "Hosur"))
	require.NoError(t, mw.WriteField("start_date", "2024-05-01"))
	part, err := mw.CreateFormFile("drawing", "ground floor.pdf")
	require.NoError(t, err)
	part.Write([]byte("%PDF-1.4 drawing"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+api.staffToken)
	rr := httptest.NewRecorder()
	api.handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	project := decode[models.Project](t, rr)
	require.NotEmpty(t, project.SourceDrawing)
	assert.Equal(t, "Hosur", project.Location)
	assert.FileExists(t, filepath.Join(api.uploadDir, project.SourceDrawing))

	rr = api.do(http.MethodGet, fmt.Sprintf("/api/v1/projects/%d/drawing", project.ID), api.staffToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "%PDF-1.4 drawing", rr.Body.String())
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))

	rr = api.do(http.MethodDelete, fmt.Sprintf("/api/v1/projects/%d", project.ID), api.staffToken, nil)
	require.Equal(t, http.StatusNoContent, rr.Code)
	_, err = os.Stat(filepath.Join(api.uploadDir, project.SourceDrawing))
	assert.True(t, os.IsNotExist(err), "drawing is removed with the project")
}

func TestFailedCreateDiscardsDrawing(t *testing.T) {
	api := setupAPI(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	// no client: validation fails after the upload was stored
	part, err := mw.CreateFormFile("drawing", "plan.pdf")
	require.NoError(t, err)
	part.Write([]byte("%PDF"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+api.staffToken)
	rr := httptest.NewRecorder()
	api.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	files, err := os.ReadDir(api.uploadDir)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestProjectWithoutDrawing(t *testing.T) {
	api := setupAPI(t)

	rr := api.do(http.MethodPost, "/api/v1/projects", api.staffToken, map[string]string{"client": "Acme"})
	require.Equal(t, http.StatusCreated, rr.Code)
	project := decode[models.Project](t, rr)

	rr = api.do(http.MethodGet, fmt.Sprintf("/api/v1/projects/%d/drawing", project.ID), api.staffToken, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = api.do(http.MethodGet, "/api/v1/projects?status=archived", api.staffToken, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	rr = api.do(http.MethodGet, "/api/v1/projects?status=preparation", api.staffToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]models.Project](t, rr), 1)
}

func (a *testAPI) uploadProject(client, filename, content string) models.Project {
	a.t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(a.t, mw.WriteField("client", client))
	part, err := mw.CreateFormFile("drawing", filename)
	require.NoError(a.t, err)
	part.Write([]byte(content))
	require.NoError(a.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+a.staffToken)
	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)
	require.Equal(a.t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[models.Project](a.t, rr)
}

func TestDrawingNameIgnoredInJSONBody(t *testing.T) {
	api := setupAPI(t)
	alpha := api.uploadProject("Alpha", "a.pdf", "%PDF alpha")
	require.NotEmpty(t, alpha.SourceDrawing)

	rr := api.do(http.MethodPost, "/api/v1/projects", api.staffToken,
		map[string]string{"client": "Beta", "source_drawing": alpha.SourceDrawing})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	beta := decode[models.Project](t, rr)
	assert.Empty(t, beta.SourceDrawing)

	rr = api.do(http.MethodPut, fmt.Sprintf("/api/v1/projects/%d", beta.ID), api.staffToken,
		map[string]string{"client": "Beta", "source_drawing": "../x"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Empty(t, decode[models.Project](t, rr).SourceDrawing)

	rr = api.do(http.MethodGet, fmt.Sprintf("/api/v1/projects/%d/drawing", beta.ID), api.staffToken, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = api.do(http.MethodDelete, fmt.Sprintf("/api/v1/projects/%d", beta.ID), api.staffToken, nil)
	require.Equal(t, http.StatusNoContent, rr.Code)

	// a JSON edit keeps the uploaded drawing
	rr = api.do(http.MethodPut, fmt.Sprintf("/api/v1/projects/%d", alpha.ID), api.staffToken,
		map[string]string{"client": "Alpha Ltd", "source_drawing": "other.pdf"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, alpha.SourceDrawing, decode[models.Project](t, rr).SourceDrawing)

	rr = api.do(http.MethodGet, fmt.Sprintf("/api/v1/projects/%d/drawing", alpha.ID), api.staffToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "%PDF alpha", rr.Body.String())
}

func TestOversizedJSONBodyRejected(t *testing.T) {
	api := setupAPI(t)

	body := `{"client":"` + strings.Repeat("a", 2<<20) + `"}`
	rr := api.do(http.MethodPost, "/api/v1/projects", api.staffToken, body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = api.do(http.MethodPost, "/api/v1/vendors", api.adminToken, body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	projects, err := api.svc.Projects.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, projects)
}
