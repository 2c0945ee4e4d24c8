package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Tougashi/Stunting-sub001/model"
)

// ConversationStore is the persistence boundary for consultation messages.
// Append must be all-or-nothing: a partial batch is treated as total failure.
type ConversationStore interface {
	Append(ctx context.Context, messages []model.Message) error
	QueryByUser(ctx context.Context, userID string) ([]model.Message, error)
}

// ConsultationService runs one consultation exchange: generate a reply for the
// user message, then persist both turns as one batch. The reply is returned
// only if the batch write succeeded.
type ConsultationService struct {
	store     ConversationStore
	generator ReplyGenerator

	mu       sync.Mutex
	inFlight map[string]*sync.Mutex
}

func NewConsultationService(store ConversationStore, generator ReplyGenerator) *ConsultationService {
	return &ConsultationService{
		store:     store,
		generator: generator,
		inFlight:  make(map[string]*sync.Mutex),
	}
}

// Submit performs exactly one generation call and one store append. Submissions
// from the same user are serialized, so one user's exchanges never interleave
// their appends.
func (s *ConsultationService) Submit(ctx context.Context, userID, message string) (string, error) {
	userID = strings.TrimSpace(userID)
	message = strings.TrimSpace(message)
	if userID == "" {
		return "", ErrMissingUserID
	}
	if message == "" {
		return "", ErrMissingMessage
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	askedAt := time.Now()
	reply, err := s.generator.Generate(ctx, message)
	if err != nil {
		return "", &GenerationError{Err: err}
	}

	pair := []model.Message{
		{UserID: userID, Role: model.ChatRoleUser, Content: message, CreatedAt: askedAt},
		{UserID: userID, Role: model.ChatRoleAssistant, Content: reply, CreatedAt: time.Now()},
	}
	if err := s.store.Append(ctx, pair); err != nil {
		return "", &PersistenceError{Err: err}
	}
	return reply, nil
}

// History returns the user's transcript oldest first. A user without messages
// gets an empty slice, not an error.
func (s *ConsultationService) History(ctx context.Context, userID string) ([]model.Message, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrMissingUserID
	}
	msgs, err := s.store.QueryByUser(ctx, userID)
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}
	if msgs == nil {
		msgs = []model.Message{}
	}
	return msgs, nil
}

func (s *ConsultationService) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.inFlight[userID]
	if !ok {
		l = &sync.Mutex{}
		s.inFlight[userID] = l
	}
	return l
}
