package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"smart_climate/internal/flow"
	"smart_climate/internal/models"
	"smart_climate/internal/schema"
	"smart_climate/internal/service"

	"github.com/gin-gonic/gin"
)

type mockAuth struct {
	signUpID  int
	signUpErr error
	token     string
	tokenErr  error
	parseID   int
	parseErr  error

	lastCred       models.Credentials
	lastParseToken string
}

func (m *mockAuth) SignUp(_ context.Context, cred models.Credentials) (int, error) {
	m.lastCred = cred
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(_ context.Context, cred models.Credentials) (string, error) {
	m.lastCred = cred
	return m.token, m.tokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockFlows struct {
	res flow.Result
	err error

	lastHandler string
	lastFlowID  string
	lastEntryID string
	lastInput   map[string]any
	calls       []string
}

func (m *mockFlows) record(call string) (flow.Result, error) {
	m.calls = append(m.calls, call)
	return m.res, m.err
}

func (m *mockFlows) StartSetup(_ context.Context, handler string) (flow.Result, error) {
	m.lastHandler = handler
	return m.record("StartSetup")
}
func (m *mockFlows) ProgressSetup(_ context.Context, flowID string) (flow.Result, error) {
	m.lastFlowID = flowID
	return m.record("ProgressSetup")
}
func (m *mockFlows) SubmitSetup(_ context.Context, flowID string, input map[string]any) (flow.Result, error) {
	m.lastFlowID = flowID
	m.lastInput = input
	return m.record("SubmitSetup")
}
func (m *mockFlows) AbortSetup(_ context.Context, flowID string) error {
	m.lastFlowID = flowID
	_, err := m.record("AbortSetup")
	return err
}
func (m *mockFlows) Import(_ context.Context, handler string, record map[string]any) (flow.Result, error) {
	m.lastHandler = handler
	m.lastInput = record
	return m.record("Import")
}
func (m *mockFlows) StartOptions(_ context.Context, entryID string) (flow.Result, error) {
	m.lastEntryID = entryID
	return m.record("StartOptions")
}
func (m *mockFlows) ProgressOptions(_ context.Context, flowID string) (flow.Result, error) {
	m.lastFlowID = flowID
	return m.record("ProgressOptions")
}
func (m *mockFlows) SubmitOptions(_ context.Context, flowID string, input map[string]any) (flow.Result, error) {
	m.lastFlowID = flowID
	m.lastInput = input
	return m.record("SubmitOptions")
}
func (m *mockFlows) AbortOptions(_ context.Context, flowID string) error {
	m.lastFlowID = flowID
	_, err := m.record("AbortOptions")
	return err
}

type mockEntries struct {
	mu      sync.Mutex
	list    []models.ConfigEntry
	listErr error
	entry   models.ConfigEntry
	err     error

	lastEntryID string
	removed     []string
}

func (m *mockEntries) ListEntries(context.Context) ([]models.ConfigEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list, m.listErr
}

func (m *mockEntries) set(list []models.ConfigEntry, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.list, m.listErr = list, err
}
func (m *mockEntries) GetEntry(_ context.Context, entryID string) (models.ConfigEntry, error) {
	m.lastEntryID = entryID
	return m.entry, m.err
}
func (m *mockEntries) RemoveEntry(_ context.Context, entryID string) error {
	m.lastEntryID = entryID
	if m.err == nil {
		m.removed = append(m.removed, entryID)
	}
	return m.err
}

type mockEntities struct {
	list       []models.Entity
	err        error
	lastDomain string
	upserted   []models.Entity
}

func (m *mockEntities) UpsertEntities(_ context.Context, entities []models.Entity) error {
	m.upserted = append(m.upserted, entities...)
	return m.err
}
func (m *mockEntities) ListEntities(_ context.Context, domain string) ([]models.Entity, error) {
	m.lastDomain = domain
	return m.list, m.err
}
func (m *mockEntities) Catalog(context.Context) (schema.Catalog, error) {
	return nil, m.err
}

type mockEventLog struct {
	resp []models.FlowEvent
	err  error

	lastFrom   time.Time
	lastTo     time.Time
	lastType   string
	lastFlowID string
}

func (m *mockEventLog) List(_ context.Context, f service.LogFilter) ([]models.FlowEvent, error) {
	m.lastFrom, m.lastTo = f.From, f.To
	m.lastType, m.lastFlowID = f.Type, f.FlowID
	return m.resp, m.err
}

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// doRequest sends an authorized request with an optional JSON body.
func doRequest(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
