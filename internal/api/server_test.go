package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/intelligence"
	"github.com/alexanderramin/clientdesk/internal/repository"
	"github.com/alexanderramin/clientdesk/internal/service"
	"github.com/alexanderramin/clientdesk/internal/testutil"
	"github.com/gofiber/fiber/v2"
	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	modules []intelligence.GeneratedModule
	err     error
}

func (g *fakeGenerator) Generate(context.Context, string) ([]intelligence.GeneratedModule, error) {
	return g.modules, g.err
}

type testServer struct {
	app *fiber.App
	gen *fakeGenerator
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := repository.NewSQLiteStore(testutil.NewTestDB(t))
	clk := testclock.NewClock(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	rt := service.NewRuntime(store, clk)
	gen := &fakeGenerator{}
	app := New(Services{
		Projects:     service.NewProjectService(rt),
		Modules:      service.NewModuleService(rt, gen),
		Changes:      service.NewChangeRequestService(rt),
		Requirements: service.NewRequirementService(rt),
		Leads:        service.NewLeadService(rt),
		Portal:       service.NewClientPortalService(rt),
	}, Options{PublicURL: "https://desk.example.com", Now: clk.Now})
	return &testServer{app: app, gen: gen}
}

type envelope map[string]json.RawMessage

func (ts *testServer) do(t *testing.T, method, path string, body any) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &env))
	}
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, env envelope, key string) T {
	t.Helper()
	var out T
	require.Contains(t, env, key)
	require.NoError(t, json.Unmarshal(env[key], &out))
	return out
}

func (ts *testServer) createProject(t *testing.T) *domain.Project {
	t.Helper()
	status, env := ts.do(t, http.MethodPost, "/api/projects", map[string]any{
		"name": "Website Redesign", "startDate": "2024-01-01", "deadline": "2024-06-01",
	})
	require.Equal(t, http.StatusCreated, status)
	return decode[*domain.Project](t, env, "project")
}

func (ts *testServer) addModule(t *testing.T, projectID string, parts ...string) *domain.Module {
	t.Helper()
	status, env := ts.do(t, http.MethodPost, "/api/projects/"+projectID+"/modules", map[string]any{"name": "Auth"})
	require.Equal(t, http.StatusCreated, status)
	m := decode[*domain.Module](t, env, "module")
	if len(parts) == 0 {
		return m
	}
	body := make([]map[string]string, 0, len(parts))
	for _, p := range parts {
		body = append(body, map[string]string{"name": p})
	}
	status, env = ts.do(t, http.MethodPut, "/api/projects/"+projectID+"/modules/"+m.ID+"/parts", map[string]any{"parts": body})
	require.Equal(t, http.StatusOK, status)
	return decode[*domain.Module](t, env, "module")
}

func errorKind(t *testing.T, env envelope) string {
	t.Helper()
	return decode[string](t, env, "kind")
}

func TestProjects_CreateGetList(t *testing.T) {
	ts := newTestServer(t)
	p := ts.createProject(t)
	assert.Equal(t, domain.ProjectPlanning, p.Status)
	assert.NotEmpty(t, p.ShareableLinkID)

	status, env := ts.do(t, http.MethodGet, "/api/projects/"+p.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decode[bool](t, env, "success"))
	assert.Equal(t, p.ID, decode[*domain.Project](t, env, "project").ID)

	status, env = ts.do(t, http.MethodGet, "/api/projects", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]*domain.Project](t, env, "projects"), 1)
}

func TestProjects_ValidationErrors(t *testing.T) {
	ts := newTestServer(t)

	status, env := ts.do(t, http.MethodPost, "/api/projects", map[string]any{"name": "X", "startDate": "01/02/2024"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errorKind(t, env))
	assert.False(t, decode[bool](t, env, "retryable"))
	assert.Contains(t, decode[string](t, env, "error"), "startDate")

	status, env = ts.do(t, http.MethodPost, "/api/projects", map[string]any{
		"name": "X", "startDate": "2024-06-01", "deadline": "2024-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errorKind(t, env))
}

func TestProjects_NotFound(t *testing.T) {
	ts := newTestServer(t)
	status, env := ts.do(t, http.MethodGet, "/api/projects/proj-missing", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorKind(t, env))

	status, env = ts.do(t, http.MethodGet, "/no/such/route", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorKind(t, env))
}

func TestModules_Lifecycle(t *testing.T) {
	ts := newTestServer(t)
	p := ts.createProject(t)
	m := ts.addModule(t, p.ID, "Login form")
	require.Len(t, m.Parts, 1)
	base := "/api/projects/" + p.ID + "/modules/" + m.ID

	status, env := ts.do(t, http.MethodPatch, base+"/status", map[string]any{"status": "in_progress"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, domain.ModuleInProgress, decode[*domain.Module](t, env, "module").Status)

	status, env = ts.do(t, http.MethodPatch, base+"/status", map[string]any{"status": "done"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errorKind(t, env))

	status, env = ts.do(t, http.MethodPost, base+"/parts/"+m.Parts[0].ID+"/review", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, domain.PartInReview, decode[*domain.Part](t, env, "part").Status)

	status, env = ts.do(t, http.MethodPost, base+"/deliverables", map[string]any{"name": "Build", "url": "not a url"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = ts.do(t, http.MethodPost, base+"/deliverables", map[string]any{"name": "Build", "url": "https://example.com/build.zip"})
	assert.Equal(t, http.StatusCreated, status)

	status, env = ts.do(t, http.MethodDelete, base, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[*domain.Project](t, env, "project").Modules)
}

func TestModules_UpdatePartsStatus(t *testing.T) {
	ts := newTestServer(t)
	p := ts.createProject(t)
	m := ts.addModule(t, p.ID)
	path := "/api/projects/" + p.ID + "/modules/" + m.ID + "/parts"

	status, env := ts.do(t, http.MethodPut, path, map[string]any{"parts": []map[string]string{{"name": "Login", "status": "done"}}})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errorKind(t, env))
	assert.Contains(t, decode[string](t, env, "error"), "part status")

	status, env = ts.do(t, http.MethodPut, path, map[string]any{"parts": []map[string]string{
		{"name": "Login", "status": "completed"},
		{"name": "Signup"},
	}})
	require.Equal(t, http.StatusOK, status)
	parts := decode[*domain.Module](t, env, "module").Parts
	require.Len(t, parts, 2)
	assert.Equal(t, domain.PartCompleted, parts[0].Status)
	assert.Equal(t, domain.PartPending, parts[1].Status)
}

func TestModules_Generate(t *testing.T) {
	ts := newTestServer(t)
	p := ts.createProject(t)
	path := "/api/projects/" + p.ID + "/modules/generate"

	ts.gen.modules = []intelligence.GeneratedModule{
		{Name: "Auth", Deadline: "2024-02-01", EstimatedHours: 10},
		{Name: "Blog", Deadline: "2024-03-01", EstimatedHours: 20},
	}
	status, env := ts.do(t, http.MethodPost, path, map[string]any{"description": "A blog with accounts"})
	require.Equal(t, http.StatusCreated, status)
	assert.Len(t, decode[[]*domain.Module](t, env, "modules"), 2)

	ts.gen.err = domain.ExternalTimeout("generating modules", context.DeadlineExceeded)
	status, env = ts.do(t, http.MethodPost, path, map[string]any{"description": "More"})
	assert.Equal(t, http.StatusGatewayTimeout, status)
	assert.Equal(t, "EXTERNAL_TIMEOUT", errorKind(t, env))
	assert.True(t, decode[bool](t, env, "retryable"))

	ts.gen.err = domain.ExternalFailure("generating modules", io.ErrUnexpectedEOF)
	status, _ = ts.do(t, http.MethodPost, path, map[string]any{"description": "More"})
	assert.Equal(t, http.StatusBadGateway, status)
}

func TestChangeRequests_Decision(t *testing.T) {
	ts := newTestServer(t)
	p := ts.createProject(t)

	status, env := ts.do(t, http.MethodPost, "/client/"+p.ShareableLinkID+"/change-requests", map[string]any{"details": "Add dark mode"})
	require.Equal(t, http.StatusCreated, status)
	cr := decode[*domain.ChangeRequest](t, env, "changeRequest")

	path := "/api/projects/" + p.ID + "/change-requests/" + cr.ID
	status, env = ts.do(t, http.MethodPatch, path, map[string]any{"status": "approved"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, domain.ChangeApproved, decode[*domain.ChangeRequest](t, env, "changeRequest").Status)

	status, _ = ts.do(t, http.MethodPatch, path, map[string]any{"status": "rejected"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestRequirementsAndDocuments(t *testing.T) {
	ts := newTestServer(t)
	p := ts.createProject(t)

	status, env := ts.do(t, http.MethodPost, "/api/projects/"+p.ID+"/requirements", map[string]any{"title": "Brand guide", "url": "https://example.com/brand"})
	require.Equal(t, http.StatusCreated, status)
	req := decode[*domain.Requirement](t, env, "requirement")

	status, _ = ts.do(t, http.MethodPut, "/api/projects/"+p.ID+"/requirements/"+req.ID, map[string]any{"title": "Brand guide v2"})
	assert.Equal(t, http.StatusOK, status)

	status, _ = ts.do(t, http.MethodDelete, "/api/projects/"+p.ID+"/requirements/"+req.ID, nil)
	assert.Equal(t, http.StatusOK, status)

	status, env = ts.do(t, http.MethodPost, "/api/projects/"+p.ID+"/documents", map[string]any{"name": "Kickoff", "url": "https://example.com/k", "type": "meeting_minutes"})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, domain.DocMeetingMinutes, decode[*domain.Document](t, env, "document").Type)

	status, _ = ts.do(t, http.MethodPost, "/api/projects/"+p.ID+"/documents", map[string]any{"name": "Kickoff", "url": "https://example.com/k", "type": "invoice"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = ts.do(t, http.MethodGet, "/api/projects/"+p.ID+"/timeline", nil)
	require.Equal(t, http.StatusOK, status)
	timeline := decode[[]domain.TimelineEvent](t, env, "timeline")
	assert.Equal(t, `Project document "Kickoff" added`, timeline[0].Description)
}

func TestClientPortal(t *testing.T) {
	ts := newTestServer(t)
	p := ts.createProject(t)
	m := ts.addModule(t, p.ID, "Login form")
	link := "/client/" + p.ShareableLinkID

	status, env := ts.do(t, http.MethodPost, link+"/modules/"+m.ID+"/parts/"+m.Parts[0].ID+"/approve", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errorKind(t, env))

	status, env = ts.do(t, http.MethodPost, link+"/modules/"+m.ID+"/approve", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, domain.ModuleCompleted, decode[*domain.Module](t, env, "module").Status)

	status, env = ts.do(t, http.MethodGet, link, nil)
	require.Equal(t, http.StatusOK, status)
	progress := decode[map[string]int](t, env, "progress")
	assert.Equal(t, 1, progress["modulesCompleted"])
	assert.Equal(t, 1, progress["modulesTotal"])

	other := ts.createProject(t)
	status, _ = ts.do(t, http.MethodPost, "/client/"+other.ShareableLinkID+"/modules/"+m.ID+"/approve", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, env = ts.do(t, http.MethodGet, "/client/bogus-link", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.NotContains(t, decode[string](t, env, "error"), "bogus-link")
}

func TestLeads_FormFlow(t *testing.T) {
	ts := newTestServer(t)

	status, env := ts.do(t, http.MethodPost, "/api/leads", map[string]any{"name": "Ana", "email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, decode[string](t, env, "error"), "email")

	status, env = ts.do(t, http.MethodPost, "/api/leads", map[string]any{"name": "Ana", "email": "ana@example.com"})
	require.Equal(t, http.StatusCreated, status)
	lead := decode[*domain.Lead](t, env, "lead")
	assert.Equal(t, "/leads/"+lead.ID+"/form", lead.FormLink)

	status, env = ts.do(t, http.MethodGet, lead.FormLink, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Ana", decode[map[string]string](t, env, "lead")["name"])

	answers := testutil.NewTestRequirements("", "Bakery site")
	status, _ = ts.do(t, http.MethodPost, lead.FormLink, answers)
	require.Equal(t, http.StatusCreated, status)

	status, env = ts.do(t, http.MethodGet, "/api/leads/"+lead.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, domain.LeadProposalSent, decode[*domain.Lead](t, env, "lead").Status)

	status, env = ts.do(t, http.MethodGet, "/api/leads/"+lead.ID+"/requirements", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]*domain.ClientRequirements](t, env, "requirements"), 1)

	status, _ = ts.do(t, http.MethodPatch, "/api/leads/"+lead.ID+"/status", map[string]any{"status": "new"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = ts.do(t, http.MethodPost, "/leads/lead-missing/form", answers)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestExports(t *testing.T) {
	ts := newTestServer(t)
	p := ts.createProject(t)

	req := httptest.NewRequest(http.MethodGet, "/api/projects/"+p.ID+"/export.xlsx", nil)
	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "website-redesign_20240101.xlsx")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("PK")), "xlsx is a zip archive")

	req = httptest.NewRequest(http.MethodGet, "/api/projects/"+p.ID+"/qr.png", nil)
	resp2, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
	assert.Equal(t, "image/png", resp2.Header.Get(fiber.HeaderContentType))
}
