package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"solar_dashboard/internal/models"
	"solar_dashboard/internal/service"
	"solar_dashboard/internal/telemetry"

	"github.com/gin-gonic/gin"
	dto "github.com/prometheus/client_model/go"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseSession  service.Session
	parseErr      error

	lastSignUp      service.SignUpInput
	lastGenEmail    string
	lastGenPassword string
	lastParseToken  string
}

func (m *mockAuth) SignUp(_ context.Context, in service.SignUpInput) (int, error) {
	m.lastSignUp = in
	return m.signUpID, m.signUpErr
}

func (m *mockAuth) GenerateToken(email, password string) (string, error) {
	m.lastGenEmail = email
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}

func (m *mockAuth) ParseToken(token string) (service.Session, error) {
	m.lastParseToken = token
	return m.parseSession, m.parseErr
}

type mockProfile struct {
	user       models.User
	err        error
	updateErr  error
	lastUpdate service.ProfileUpdate
	lastUserID int
}

func (m *mockProfile) GetProfile(_ context.Context, userID int) (models.User, error) {
	m.lastUserID = userID
	return m.user, m.err
}

func (m *mockProfile) UpdateProfile(_ context.Context, userID int, p service.ProfileUpdate) (models.User, error) {
	m.lastUserID = userID
	m.lastUpdate = p
	if m.updateErr != nil {
		return models.User{}, m.updateErr
	}
	u := m.user
	if p.Name != "" {
		u.Name = p.Name
	}
	return u, nil
}

type mockDashboard struct {
	mu       sync.Mutex
	resp     models.Dashboard
	err      error
	calls    int
	lastSess service.Session
}

func (m *mockDashboard) GetDashboard(_ context.Context, sess service.Session) (models.Dashboard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastSess = sess
	return m.resp, m.err
}

func (m *mockDashboard) UpdateSettings(telemetry.Settings) {}

type mockDeveloper struct {
	override   models.DeveloperOverride
	getErr     error
	setErr     error
	endErr     error
	lastSet    models.DeveloperOverride
	lastSess   service.Session
	endedCalls int
}

func (m *mockDeveloper) GetOverride(_ context.Context, sessionID string) (models.DeveloperOverride, error) {
	m.lastSess.SessionID = sessionID
	return m.override, m.getErr
}

func (m *mockDeveloper) SetOverride(_ context.Context, sess service.Session, o models.DeveloperOverride) error {
	m.lastSess = sess
	m.lastSet = o
	return m.setErr
}

func (m *mockDeveloper) EndSession(_ context.Context, sess service.Session) error {
	m.lastSess = sess
	m.endedCalls++
	return m.endErr
}

type mockInfo struct{}

func (mockInfo) About() map[string]string   { return map[string]string{"version": "1.0.0"} }
func (mockInfo) Contact() map[string]string { return map[string]string{"phone": "+61 457 284 421"} }

type mockEventLog struct {
	resp     []models.ActivityEvent
	err      error
	calls    int
	lastFilt service.LogFilter
}

func (m *mockEventLog) List(_ context.Context, f service.LogFilter) ([]models.ActivityEvent, error) {
	m.calls++
	m.lastFilt = f
	return m.resp, m.err
}

type mockMetrics struct{ families []*dto.MetricFamily }

func (m mockMetrics) Gather() []*dto.MetricFamily { return m.families }

// ---- Shared Test Helpers ----

var testSession = service.Session{UserID: 7, SessionID: "sess-7"}

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewHandler(s, nil).InitRoutes()
}

// authedService returns a service whose token parsing always yields testSession.
func authedService() *service.Service {
	return &service.Service{Authorization: &mockAuth{parseSession: testSession}}
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func doRequest(r http.Handler, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vv := range header {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
}
