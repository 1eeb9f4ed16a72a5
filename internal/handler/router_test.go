package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/capitalize-ai/gamebot/internal/catalog"
	"github.com/capitalize-ai/gamebot/internal/llm"
	"github.com/capitalize-ai/gamebot/internal/middleware"
	"github.com/capitalize-ai/gamebot/internal/model"
	"github.com/capitalize-ai/gamebot/internal/service"
	"github.com/capitalize-ai/gamebot/pkg/logger"
)

const testSecret = "test-secret"

type stubBackend struct{ reply string }

func (b *stubBackend) Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return &llm.CompletionResponse{Content: b.reply}, nil
}

func (b *stubBackend) Name() string     { return "stub" }
func (b *stubBackend) Models() []string { return nil }

// rawgServer serves a tiny fake of the game-metadata service.
func rawgServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/games", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("search") == "Portal" {
			w.Write([]byte(`{"results":[{"id":4200,"name":"Portal","released":"2007-10-10","rating":4.5}]}`))
			return
		}
		w.Write([]byte(`{"results":[]}`))
	})
	mux.HandleFunc("/games/4200", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":4200,"name":"Portal","released":"2007-10-10","rating":4.5,"platforms":[{"platform":{"name":"PC"}}]}`))
	})
	mux.HandleFunc("/games/9", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Not found."}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestRouter(t *testing.T, chatConfigured bool) http.Handler {
	t.Helper()
	log := logger.NewNop()

	cat := catalog.NewClient(catalog.Config{
		BaseURL:    rawgServer(t).URL,
		APIKey:     "rawg-key",
		Timeout:    time.Second,
		PageSize:   5,
		HTTPClient: http.DefaultClient,
	}, log)

	var factory service.BackendFactory
	if chatConfigured {
		factory = func(ctx context.Context) (llm.Client, error) {
			return &stubBackend{reply: "Try Stardew Valley!"}, nil
		}
	}

	sessions := service.NewSessions(factory, llm.DefaultOptions(), nil, log)
	orch := service.NewOrchestrator(cat, nil, log, service.Options{ChatConfigured: chatConfigured, SearchLimit: 5})

	return NewRouter(RouterConfig{
		Health:    NewHealthHandler(nil, chatConfigured, true),
		Sessions:  NewSessionHandler(sessions, log),
		Messages:  NewMessageHandler(sessions, orch, log),
		Games:     NewGameHandler(sessions, orch, log),
		JWTSecret: testSecret,
		Logger:    log,
	})
}

func do(t *testing.T, h http.Handler, method, path, user, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if user != "" {
		token, err := middleware.IssueToken(testSecret, user, time.Hour)
		if err != nil {
			t.Fatal(err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func createSession(t *testing.T, h http.Handler, user string) model.SessionView {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/v1/sessions", user, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var view model.SessionView
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatal(err)
	}
	return view
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t, true)

	if rec := do(t, h, http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
		t.Errorf("Expected 200 from /health, got %d", rec.Code)
	}
	rec := do(t, h, http.MethodGet, "/ready", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"catalog":true`) {
		t.Errorf("Unexpected /ready response %d %s", rec.Code, rec.Body.String())
	}
}

func TestAPIRequiresAuth(t *testing.T) {
	h := newTestRouter(t, true)
	if rec := do(t, h, http.MethodPost, "/api/v1/sessions", "", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", rec.Code)
	}
}

func TestCreateSession(t *testing.T) {
	h := newTestRouter(t, true)
	view := createSession(t, h, "alice")

	if view.State != "active" || view.Owner != "alice" {
		t.Errorf("Unexpected session %+v", view)
	}
	if len(view.Turns) != 1 || view.Turns[0].Role != model.RoleAssistant {
		t.Errorf("Expected a welcome turn, got %+v", view.Turns)
	}

	if rec := do(t, h, http.MethodGet, "/api/v1/sessions/"+view.ID, "bob", ""); rec.Code != http.StatusNotFound {
		t.Errorf("Expected another user to get 404, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/api/v1/sessions/not-a-uuid", "alice", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for a malformed id, got %d", rec.Code)
	}
}

func TestSendMessage_GameLookup(t *testing.T) {
	h := newTestRouter(t, true)
	view := createSession(t, h, "alice")

	rec := do(t, h, http.MethodPost, "/api/v1/sessions/"+view.ID+"/messages", "alice", `{"content":"/game Portal"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp model.SendMessageResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Turns) != 2 || !strings.HasPrefix(resp.Turns[1].Content, "## Portal") {
		t.Fatalf("Unexpected turns %+v", resp.Turns)
	}
	if !strings.Contains(resp.Turns[1].Content, "**Rating:** 4.5/5") {
		t.Errorf("Expected the rating in %q", resp.Turns[1].Content)
	}

	rec = do(t, h, http.MethodGet, "/api/v1/sessions/"+view.ID+"/turns", "alice", "")
	var turns model.ListTurnsResponse
	if err := json.NewDecoder(rec.Body).Decode(&turns); err != nil {
		t.Fatal(err)
	}
	if turns.Total != 3 {
		t.Errorf("Expected welcome plus two turns, got %d", turns.Total)
	}
}

func TestSendMessage_PlainChat(t *testing.T) {
	h := newTestRouter(t, true)
	view := createSession(t, h, "alice")

	rec := do(t, h, http.MethodPost, "/api/v1/sessions/"+view.ID+"/messages", "alice", `{"content":"Recommend a relaxing game"}`)
	if !strings.Contains(rec.Body.String(), "Try Stardew Valley!") {
		t.Errorf("Unexpected response %s", rec.Body.String())
	}
}

func TestSendMessage_ChatNotConfigured(t *testing.T) {
	h := newTestRouter(t, false)
	view := createSession(t, h, "alice")
	if view.State != "uninitialized" || len(view.Turns) != 0 {
		t.Fatalf("Unexpected session %+v", view)
	}

	rec := do(t, h, http.MethodPost, "/api/v1/sessions/"+view.ID+"/messages", "alice", `{"content":"Hello"}`)
	var resp model.SendMessageResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Turns) != 1 || !strings.Contains(resp.Turns[0].Content, "API key") {
		t.Errorf("Expected a single notice turn, got %+v", resp.Turns)
	}
}

func TestSendMessage_Validation(t *testing.T) {
	h := newTestRouter(t, true)
	view := createSession(t, h, "alice")

	for _, body := range []string{`not json`, `{"content":"   "}`} {
		rec := do(t, h, http.MethodPost, "/api/v1/sessions/"+view.ID+"/messages", "alice", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for %q, got %d", body, rec.Code)
		}
	}
}

func TestQuickSearchAndDetails(t *testing.T) {
	h := newTestRouter(t, true)
	view := createSession(t, h, "alice")
	base := "/api/v1/sessions/" + view.ID

	rec := do(t, h, http.MethodGet, base+"/games?search=Portal", "alice", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var search model.SearchGamesResponse
	if err := json.NewDecoder(rec.Body).Decode(&search); err != nil {
		t.Fatal(err)
	}
	if len(search.Results) != 1 || search.Results[0].ID != 4200 || !strings.Contains(search.Card, "**Portal**") {
		t.Errorf("Unexpected search response %+v", search)
	}

	if rec := do(t, h, http.MethodGet, base+"/games?search=", "alice", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for an empty search, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodPost, base+"/games/4200/details", "alice", "")
	if rec.Code != http.StatusCreated || !strings.Contains(rec.Body.String(), "## Portal") {
		t.Errorf("Unexpected details response %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodPost, base+"/games/9/details", "alice", "")
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "game not found") {
		t.Errorf("Expected 404 game not found, got %d %s", rec.Code, rec.Body.String())
	}

	if rec := do(t, h, http.MethodPost, base+"/games/abc/details", "alice", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for a bad game id, got %d", rec.Code)
	}
}

func TestPrompts(t *testing.T) {
	h := newTestRouter(t, true)
	rec := do(t, h, http.MethodGet, "/api/v1/prompts", "alice", "")

	var resp model.ExamplePromptsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Prompts) == 0 || resp.Prompts[len(resp.Prompts)-1] != "/game Elden Ring" {
		t.Errorf("Unexpected prompts %v", resp.Prompts)
	}
}
