package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Tougashi/Stunting-sub001/model"
	"github.com/Tougashi/Stunting-sub001/service"
	"github.com/gin-gonic/gin"
)

type stubGenerator struct {
	reply string
	err   error
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return g.reply, g.err
}

type memStore struct {
	mu        sync.Mutex
	msgs      []model.Message
	appendErr error
	queries   int
}

func (s *memStore) Append(ctx context.Context, messages []model.Message) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appendErr != nil {
		return s.appendErr
	}
	for i := range messages {
		messages[i].ID = uint(len(s.msgs) + 1)
		s.msgs = append(s.msgs, messages[i])
	}
	return nil
}

func (s *memStore) QueryByUser(ctx context.Context, userID string) ([]model.Message, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries++
	var out []model.Message
	for _, m := range s.msgs {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func newChatbotRouter(store service.ConversationStore, gen service.ReplyGenerator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := &ChatbotController{Service: service.NewConsultationService(store, gen)}
	r := gin.New()
	r.POST("/chatbot", ctrl.Consult)
	r.GET("/chatbot", func(c *gin.Context) {
		c.JSON(400, gin.H{"success": false, "error": "Missing userId"})
	})
	r.GET("/chatbot/:userId", ctrl.History)
	return r
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal response %q: %v", w.Body.String(), err)
	}
	return w, env
}

func TestConsultSuccess(t *testing.T) {
	store := &memStore{}
	r := newChatbotRouter(store, &stubGenerator{reply: "Stunting bisa dicegah dengan gizi seimbang."})

	w, env := doJSON(t, r, http.MethodPost, "/chatbot", `{"userId":"ibu-1","message":"Apa itu stunting?"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !env.Success {
		t.Fatalf("expected success envelope, got %s", w.Body.String())
	}
	var reply string
	if err := json.Unmarshal(env.Data, &reply); err != nil {
		t.Fatalf("data is not a string: %s", env.Data)
	}
	if reply != "Stunting bisa dicegah dengan gizi seimbang." {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if len(store.msgs) != 2 {
		t.Fatalf("expected the exchange pair to be stored, got %d messages", len(store.msgs))
	}
}

func TestConsultMissingFields(t *testing.T) {
	store := &memStore{}
	r := newChatbotRouter(store, &stubGenerator{reply: "ok"})

	w, env := doJSON(t, r, http.MethodPost, "/chatbot", `{"message":"halo"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if env.Success || env.Error != "Missing userId" {
		t.Fatalf("unexpected envelope: %s", w.Body.String())
	}

	w, env = doJSON(t, r, http.MethodPost, "/chatbot", `{"userId":"ibu-1"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if env.Success || env.Error != "Missing message" {
		t.Fatalf("unexpected envelope: %s", w.Body.String())
	}
	if len(store.msgs) != 0 {
		t.Fatalf("validation failures must not write to the store")
	}
}

func TestConsultGenerationFailure(t *testing.T) {
	store := &memStore{}
	r := newChatbotRouter(store, &stubGenerator{err: errors.New("model offline")})

	w, env := doJSON(t, r, http.MethodPost, "/chatbot", `{"userId":"ibu-1","message":"halo"}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
	if env.Success {
		t.Fatalf("expected failure envelope")
	}
	if len(store.msgs) != 0 {
		t.Fatalf("generation failure must not write to the store, got %d messages", len(store.msgs))
	}
}

func TestConsultPersistenceFailure(t *testing.T) {
	store := &memStore{appendErr: errors.New("connection reset")}
	r := newChatbotRouter(store, &stubGenerator{reply: "Jawaban uji"})

	w, env := doJSON(t, r, http.MethodPost, "/chatbot", `{"userId":"ibu-1","message":"halo"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if env.Success {
		t.Fatalf("expected failure envelope even though generation succeeded")
	}
	if len(store.msgs) != 0 {
		t.Fatalf("failed append must leave the store unchanged, got %d messages", len(store.msgs))
	}
}

func TestHistoryReturnsMessagesInOrder(t *testing.T) {
	store := &memStore{}
	base := time.Now().Add(-time.Hour)
	store.msgs = []model.Message{
		{ID: 1, UserID: "ibu-1", Role: model.ChatRoleUser, Content: "pertama", CreatedAt: base},
		{ID: 2, UserID: "ibu-1", Role: model.ChatRoleAssistant, Content: "jawaban", CreatedAt: base.Add(time.Second)},
		{ID: 3, UserID: "ibu-2", Role: model.ChatRoleUser, Content: "lain", CreatedAt: base},
	}
	r := newChatbotRouter(store, &stubGenerator{reply: "ok"})

	w, env := doJSON(t, r, http.MethodGet, "/chatbot/ibu-1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var msgs []model.Message
	if err := json.Unmarshal(env.Data, &msgs); err != nil {
		t.Fatalf("data is not a message list: %s", env.Data)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages for ibu-1, got %d", len(msgs))
	}
	if msgs[0].Content != "pertama" || msgs[1].Content != "jawaban" {
		t.Fatalf("unexpected transcript: %+v", msgs)
	}
}

func TestHistoryMissingUserID(t *testing.T) {
	store := &memStore{}
	r := newChatbotRouter(store, &stubGenerator{reply: "ok"})

	w, env := doJSON(t, r, http.MethodGet, "/chatbot", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if env.Success || env.Error != "Missing userId" {
		t.Fatalf("unexpected envelope: %s", w.Body.String())
	}
	if store.queries != 0 {
		t.Fatalf("missing userId must not query the store, got %d queries", store.queries)
	}
}
