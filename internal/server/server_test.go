package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/llm/llmtest"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/session"
	"github.com/jonathan/resume-builder/internal/summary"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const importedJSON = `{"contact": {"name": "Ada Lovelace"}, "experience": [{"company": "Analytical Engines", "title": "Analyst", "description": ["Wrote Note G"]}], "education": [], "skills": [{"category": "Math", "items": "Analysis"}]}`

type fakeCapturer struct {
	err error
}

func (c fakeCapturer) Capture(context.Context, []byte) ([]byte, error) {
	if c.err != nil {
		return nil, c.err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 10, 14))); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func newMockLLM() *llmtest.MockClient {
	return &llmtest.MockClient{
		GenerateJSONFromFileFunc: func(context.Context, string, llm.FilePart, llm.ModelTier) (string, error) {
			return importedJSON, nil
		},
		GenerateJSONFunc: func(context.Context, string, llm.ModelTier) (string, error) {
			return importedJSON, nil
		},
		GenerateContentFunc: func(context.Context, string, llm.ModelTier) (string, error) {
			return "Analyst with a flair for engines.", nil
		},
	}
}

func newServices(mock *llmtest.MockClient, capturer export.Capturer) session.Services {
	return session.Services{
		Importer:  ingestion.NewImporter(ingestion.NewExtractor(mock), 0),
		Summaries: summary.NewGenerator(mock),
		Exporter:  export.NewExporter(capturer, nil),
	}
}

type testServer struct {
	*Server
	handler http.Handler
	store   *session.Store
}

func newTestServer(t *testing.T, svc session.Services, limiter *ratelimit.Limiter) *testServer {
	t.Helper()
	if limiter == nil {
		limiter = ratelimit.NewLimiter(&ratelimit.Config{Enabled: false})
	}
	store := session.NewStore(svc, time.Hour, 0)
	srv, err := New(Options{
		Config:  &config.Config{MaxUploadBytes: 1 << 20, CORSOrigin: "https://app.example.com"},
		Store:   store,
		Tokens:  setupTestJWTService(t, 1),
		Limiter: limiter,
	})
	require.NoError(t, err)
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, handler: srv.Handler(), store: store}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}

func (ts *testServer) createSession(t *testing.T) types.CreateSessionResponse {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/sessions", "", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp types.CreateSessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func decodeSnapshot(t *testing.T, w *httptest.ResponseRecorder) session.Snapshot {
	t.Helper()
	var snap session.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap), w.Body.String())
	return snap
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp["error"]
}

func multipartUpload(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func (ts *testServer) upload(t *testing.T, token, filename, contentType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, ct := multipartUpload(t, filename, contentType, data)
	req := httptest.NewRequest(http.MethodPost, "/session/import", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}

func TestNew_RequiresCollaborators(t *testing.T) {
	store := session.NewStore(session.Services{}, time.Hour, 0)
	defer store.Stop()
	tokens := setupTestJWTService(t, 1)

	_, err := New(Options{Store: store, Tokens: tokens})
	assert.Error(t, err)
	_, err = New(Options{Config: &config.Config{}, Tokens: tokens})
	assert.Error(t, err)
	_, err = New(Options{Config: &config.Config{}, Store: store})
	assert.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t, session.Services{}, nil)

	w := ts.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())
}

func TestCORSHeaders(t *testing.T) {
	ts := newTestServer(t, session.Services{}, nil)

	w := ts.do(t, http.MethodOptions, "/session/contact", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	assert.Equal(t, "Content-Disposition", w.Header().Get("Access-Control-Expose-Headers"))
}

func TestListTemplates(t *testing.T) {
	ts := newTestServer(t, session.Services{}, nil)

	w := ts.do(t, http.MethodGet, "/templates", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var infos []types.TemplateInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &infos))
	require.Len(t, infos, 2)
	assert.Equal(t, types.TemplateInfo{Name: "Modern", Default: true, Pinned: []string{"education", "skills"}}, infos[0])
	assert.Equal(t, types.TemplateInfo{Name: "Classic", Default: false, Pinned: []string{}}, infos[1])
}

func TestCreateSession(t *testing.T) {
	ts := newTestServer(t, session.Services{}, nil)

	created := ts.createSession(t)
	assert.NotEmpty(t, created.SessionID)
	assert.NotEmpty(t, created.Token)
	assert.True(t, created.ExpiresAt.After(time.Now()))
	assert.Equal(t, 1, ts.store.Len())

	w := ts.do(t, http.MethodGet, "/session", created.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	snap := decodeSnapshot(t, w)
	assert.Equal(t, created.SessionID, snap.ID)
	assert.Equal(t, resume.Placeholder(), snap.Document)
	assert.Equal(t, "Modern", snap.Template)
}

func TestSessionRoutes_RequireToken(t *testing.T) {
	ts := newTestServer(t, session.Services{}, nil)

	w := ts.do(t, http.MethodGet, "/session", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(t, http.MethodGet, "/session", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionRoutes_DeletedSession(t *testing.T) {
	ts := newTestServer(t, session.Services{}, nil)
	created := ts.createSession(t)

	w := ts.do(t, http.MethodDelete, "/session", created.Token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 0, ts.store.Len())

	// The token is still valid but its session is gone.
	w = ts.do(t, http.MethodGet, "/session", created.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionsAreIsolated(t *testing.T) {
	ts := newTestServer(t, session.Services{}, nil)
	first := ts.createSession(t)
	second := ts.createSession(t)

	w := ts.do(t, http.MethodPut, "/session/contact", first.Token, types.UpdateContactRequest{Field: "name", Value: "Ada"})
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/session", second.Token, nil)
	assert.Equal(t, "Your Name", decodeSnapshot(t, w).Document.Contact.Name)
}

func TestUpdateContactAndSummary(t *testing.T) {
	ts := newTestServer(t, session.Services{}, nil)
	token := ts.createSession(t).Token

	w := ts.do(t, http.MethodPut, "/session/contact", token, types.UpdateContactRequest{Field: "email", Value: "ada@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ada@example.com", decodeSnapshot(t, w).Document.Contact.Email)

	w = ts.do(t, http.MethodPut, "/session/summary", token, types.UpdateSummaryRequest{Summary: "First programmer."})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "First programmer.", decodeSnapshot(t, w).Document.Summary)
}

func TestUpdateContact_BadRequests(t *testing.T) {
	ts := newTestServer(t, session.Services{}, nil)
	token := ts.createSession(t).Token

	tests := []struct {
		name string
		body any
	}{
		{"unknown field", types.UpdateContactRequest{Field: "twitter", Value: "@ada"}},
		{"missing field", map[string]string{"value": "x"}},
		{"unknown json key", map[string]string{"field": "name", "value": "x", "extra": "y"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(t, http.MethodPut, "/session/contact", token, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotEmpty(t, errorMessage(t, w))
		})
	}

	w := ts.do(t, http.MethodPut, "/session/contact", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorMessage(t, w), "empty")
}

func TestListItemLifecycle(t *testing.T) {
	ts := newTestServer(t, session.Services{}, nil)
	token := ts.createSession(t).Token

	w := ts.do(t, http.MethodPost, "/session/sections/projects/items", token, types.AddItemRequest{
		Fields: map[string]string{"name": "Note G", "link": "example.com"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var added types.AddItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &added))
	require.NotEmpty(t, added.ID)

	w = ts.do(t, http.MethodPatch, "/session/sections/projects/items/"+added.ID, token, types.UpdateItemRequest{Field: "description", Value: "Bernoulli numbers"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	projects := decodeSnapshot(t, w).Document.Projects
	require.Len(t, projects, 2)
	assert.Equal(t, resume.Project{ID: added.ID, Name: "Note G", Description: "Bernoulli numbers", Link: "example.com"}, projects[1])

	w = ts.do(t, http.MethodDelete, "/session/sections/projects/items/proj1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	projects = decodeSnapshot(t, w).Document.Projects
	require.Len(t, projects, 1)
	assert.Equal(t, added.ID, projects[0].ID)
}

func TestAddItem_EmptyBodyAddsBlankItem(t *testing.T) {
	ts := newTestServer(t, session.Services{}, nil)
	token := ts.createSession(t).Token

	w := ts.do(t, http.MethodPost, "/session/sections/experience/items", token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = ts.do(t, http.MethodGet, "/session", token, nil)
	experience := decodeSnapshot(t, w).Document.Experience
	require.Len(t, experience, 2)
	assert.Empty(t, experience[1].Company)
}

func TestListItem_Errors(t *testing.T) {
	ts := newTestServer(t, session.Services{}, nil)
	token := ts.createSession(t).Token

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"unknown section", http.MethodPost, "/session/sections/hobbies/items", nil},
		{"summary has no items", http.MethodPost, "/session/sections/summary/items", nil},
		{"unknown item field", http.MethodPatch, "/session/sections/skills/items/skill1", types.UpdateItemRequest{Field: "level", Value: "9"}},
		{"unknown add field", http.MethodPost, "/session/sections/skills/items", types.AddItemRequest{Fields: map[string]string{"level": "9"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(t, tt.method, tt.path, token, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestMoveSectionAndItem(t *testing.T) {
	ts := newTestServer(t, session.Services{}, nil)
	token := ts.createSession(t).Token
	from, to := 0, 4

	w := ts.do(t, http.MethodPost, "/session/sections/move", token, types.MoveRequest{From: &from, To: &to})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"moved": true}`, w.Body.String())

	w = ts.do(t, http.MethodPost, "/session/sections/skills/items/move", token, types.MoveRequest{From: &to, To: &from})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"moved": false}`, w.Body.String(), "out of range is a no-op")

	last := 2
	w = ts.do(t, http.MethodPost, "/session/sections/skills/items/move", token, types.MoveRequest{From: &from, To: &last})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"moved": true}`, w.Body.String())

	w = ts.do(t, http.MethodGet, "/session", token, nil)
	doc := decodeSnapshot(t, w).Document
	assert.Equal(t, []resume.SectionKey{
		resume.SectionExperience, resume.SectionEducation, resume.SectionProjects, resume.SectionSkills, resume.SectionSummary,
	}, doc.SectionOrder)
	assert.Equal(t, []string{"skill2", "skill3", "skill1"}, doc.ItemIDs(resume.SectionSkills))

	w = ts.do(t, http.MethodPost, "/session/sections/move", token, map[string]int{"from": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDragGesture(t *testing.T) {
	ts := newTestServer(t, session.Services{}, nil)
	token := ts.createSession(t).Token
	zero, two := 0, 2

	w := ts.do(t, http.MethodPost, "/session/drag/begin", token, types.DragRequest{Scope: "skills", Index: &zero})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var drag session.Drag
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &drag))
	require.NotNil(t, drag.Source)
	assert.Equal(t, "skill1", drag.Source.ID)

	w = ts.do(t, http.MethodPost, "/session/drag/enter", token, types.DragRequest{Scope: "skills", Index: &two})
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodPost, "/session/drag/drop", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"moved": true}`, w.Body.String())

	w = ts.do(t, http.MethodGet, "/session", token, nil)
	snap := decodeSnapshot(t, w)
	assert.Equal(t, []string{"skill2", "skill3", "skill1"}, snap.Document.ItemIDs(resume.SectionSkills))
	assert.Nil(t, snap.Drag.Source)

	// A drop with nothing pending does nothing.
	w = ts.do(t, http.MethodPost, "/session/drag/drop", token, nil)
	assert.JSONEq(t, `{"moved": false}`, w.Body.String())
}

func TestDragGesture_CancelAndBadScope(t *testing.T) {
	ts := newTestServer(t, session.Services{}, nil)
	token := ts.createSession(t).Token
	zero := 0

	w := ts.do(t, http.MethodPost, "/session/drag/begin", token, types.DragRequest{Scope: "sections", Index: &zero})
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodPost, "/session/drag/cancel", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = ts.do(t, http.MethodGet, "/session", token, nil)
	assert.Nil(t, decodeSnapshot(t, w).Drag.Source)

	w = ts.do(t, http.MethodPost, "/session/drag/begin", token, types.DragRequest{Scope: "summary", Index: &zero})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTemplateAndPreview(t *testing.T) {
	ts := newTestServer(t, session.Services{}, nil)
	token := ts.createSession(t).Token

	w := ts.do(t, http.MethodPut, "/session/template", token, types.SelectTemplateRequest{Template: "classic"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Classic", decodeSnapshot(t, w).Template)

	w = ts.do(t, http.MethodPut, "/session/template", token, types.SelectTemplateRequest{Template: "Fancy"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodGet, "/session/preview", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	page, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Find("#resume-preview").Length())
	assert.Contains(t, page.Find("#resume-preview").Text(), "Your Name")

	w = ts.do(t, http.MethodGet, "/session/preview.tex", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `\documentclass`)
}

func TestImport(t *testing.T) {
	ts := newTestServer(t, newServices(newMockLLM(), fakeCapturer{}), nil)
	token := ts.createSession(t).Token
	from, to := 0, 4
	ts.do(t, http.MethodPost, "/session/sections/move", token, types.MoveRequest{From: &from, To: &to})

	w := ts.upload(t, token, "resume.txt", "text/plain", []byte("Ada Lovelace\nAnalyst"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.ImportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Ada Lovelace", resp.Document.Contact.Name)
	require.Len(t, resp.Document.Experience, 1)
	assert.Equal(t, resume.SectionSummary, resp.Document.SectionOrder[4], "section order survives an import")
	require.NotNil(t, resp.Metadata)
	assert.Equal(t, "resume.txt", resp.Metadata.Filename)
	assert.Equal(t, ingestion.KindText, resp.Metadata.Kind)
}

func TestImport_UnsupportedFile(t *testing.T) {
	mock := newMockLLM()
	ts := newTestServer(t, newServices(mock, fakeCapturer{}), nil)
	token := ts.createSession(t).Token

	w := ts.upload(t, token, "photo.png", "image/png", []byte{0x89, 'P', 'N', 'G'})
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	assert.Equal(t, "Unsupported file type: image/png. Please upload a PDF, DOCX, or TXT file.", errorMessage(t, w))
	assert.Empty(t, mock.Calls())

	w = ts.do(t, http.MethodGet, "/session", token, nil)
	snap := decodeSnapshot(t, w)
	assert.Equal(t, "Unsupported file type: image/png. Please upload a PDF, DOCX, or TXT file.", snap.Error)
	assert.Equal(t, resume.Placeholder(), snap.Document)

	w = ts.do(t, http.MethodDelete, "/session/error", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeSnapshot(t, w).Error)
}

func TestImport_ModelFailure(t *testing.T) {
	mock := newMockLLM()
	mock.GenerateJSONFromFileFunc = func(context.Context, string, llm.FilePart, llm.ModelTier) (string, error) {
		return "not json at all", nil
	}
	ts := newTestServer(t, newServices(mock, fakeCapturer{}), nil)
	token := ts.createSession(t).Token

	w := ts.upload(t, token, "resume.txt", "text/plain", []byte("Ada"))
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, session.MsgImportFailed, errorMessage(t, w))
}

func TestImport_BadUploads(t *testing.T) {
	ts := newTestServer(t, newServices(newMockLLM(), fakeCapturer{}), nil)
	token := ts.createSession(t).Token

	w := ts.do(t, http.MethodPost, "/session/import", token, map[string]string{"file": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("other", "value"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/session/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "file")
}

func TestImport_Unavailable(t *testing.T) {
	ts := newTestServer(t, session.Services{}, nil)
	token := ts.createSession(t).Token

	w := ts.upload(t, token, "resume.txt", "text/plain", []byte("Ada"))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGenerateSummary(t *testing.T) {
	mock := newMockLLM()
	ts := newTestServer(t, newServices(mock, fakeCapturer{}), nil)
	token := ts.createSession(t).Token

	w := ts.do(t, http.MethodPost, "/session/summary/generate", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"summary": "Analyst with a flair for engines."}`, w.Body.String())

	w = ts.do(t, http.MethodGet, "/session", token, nil)
	assert.Equal(t, "Analyst with a flair for engines.", decodeSnapshot(t, w).Document.Summary)
}

func TestGenerateSummary_Failure(t *testing.T) {
	mock := newMockLLM()
	mock.GenerateContentFunc = func(context.Context, string, llm.ModelTier) (string, error) {
		return "", errors.New("quota exceeded")
	}
	ts := newTestServer(t, newServices(mock, fakeCapturer{}), nil)
	token := ts.createSession(t).Token

	w := ts.do(t, http.MethodPost, "/session/summary/generate", token, nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, session.MsgSummaryFailed, errorMessage(t, w))

	w = ts.do(t, http.MethodGet, "/session", token, nil)
	snap := decodeSnapshot(t, w)
	assert.Equal(t, session.MsgSummaryFailed, snap.Error)
	assert.False(t, snap.Busy[session.OpSummary])
}

func TestGenerateSummary_Busy(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	mock := newMockLLM()
	mock.GenerateContentFunc = func(context.Context, string, llm.ModelTier) (string, error) {
		close(started)
		<-release
		return "Done.", nil
	}
	ts := newTestServer(t, newServices(mock, fakeCapturer{}), nil)
	token := ts.createSession(t).Token

	first := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		first <- ts.do(t, http.MethodPost, "/session/summary/generate", token, nil)
	}()
	<-started

	w := ts.do(t, http.MethodPost, "/session/summary/generate", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = ts.do(t, http.MethodGet, "/session", token, nil)
	assert.True(t, decodeSnapshot(t, w).Busy[session.OpSummary])

	close(release)
	assert.Equal(t, http.StatusOK, (<-first).Code)
	assert.Len(t, mock.Calls(), 1)
}

func TestExport(t *testing.T) {
	ts := newTestServer(t, newServices(newMockLLM(), fakeCapturer{}), nil)
	token := ts.createSession(t).Token

	w := ts.do(t, http.MethodPut, "/session/contact", token, types.UpdateContactRequest{Field: "name", Value: "Ada  King Lovelace"})
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/session/export.pdf", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Ada_King_Lovelace_Resume.pdf"`, w.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
	assert.Empty(t, w.Header().Get("X-Export-Location"))
}

func TestExport_Failure(t *testing.T) {
	ts := newTestServer(t, newServices(newMockLLM(), fakeCapturer{err: errors.New("chrome crashed")}), nil)
	token := ts.createSession(t).Token

	w := ts.do(t, http.MethodGet, "/session/export.pdf", token, nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, session.MsgExportFailed, errorMessage(t, w))
}

func TestRateLimit_StrictTier(t *testing.T) {
	limiter := ratelimit.NewLimiter(&ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Tiers: []ratelimit.Tier{
			{Name: ratelimit.ModelTier, Path: "/session/summary/generate", Method: "POST", Limit: 1, Window: time.Hour, Burst: 1},
		},
	})
	ts := newTestServer(t, newServices(newMockLLM(), fakeCapturer{}), limiter)
	token := ts.createSession(t).Token

	w := ts.do(t, http.MethodPost, "/session/summary/generate", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = ts.do(t, http.MethodPost, "/session/summary/generate", token, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limit_exceeded", rateLimitError(t, w))

	// Other routes are still served.
	w = ts.do(t, http.MethodGet, "/session", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func rateLimitError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	msg, _ := resp["error"].(string)
	return msg
}
