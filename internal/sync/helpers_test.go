package sync

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/quibbleapp/quibble-go/internal/models"
	"github.com/quibbleapp/quibble-go/internal/push"
	"github.com/quibbleapp/quibble-go/internal/session"
)

// stubChannel dispatches decoded payloads straight to subscribed handlers,
// standing in for a real transport.
type stubChannel struct {
	handlers map[string]map[string]push.Handler
}

func newStubChannel() *stubChannel {
	return &stubChannel{handlers: make(map[string]map[string]push.Handler)}
}

func (c *stubChannel) Subscribe(event, owner string, handler push.Handler) func() {
	if _, ok := c.handlers[event]; !ok {
		c.handlers[event] = make(map[string]push.Handler)
	}
	c.handlers[event][owner] = handler
	return func() {
		delete(c.handlers[event], owner)
	}
}

func (c *stubChannel) UnsubscribeAll(owner string) {
	for _, owners := range c.handlers {
		delete(owners, owner)
	}
}

func (c *stubChannel) Close() error { return nil }

func (c *stubChannel) emit(event string, payload any) {
	for _, handler := range c.handlers[event] {
		handler(payload)
	}
}

func (c *stubChannel) handlerCount(event string) int {
	return len(c.handlers[event])
}

type stubQuestionLister struct {
	questions []models.Question
	err       error
	calls     int
}

func (s *stubQuestionLister) ListQuestions(ctx context.Context, order, search, askedBy string) ([]models.Question, error) {
	s.calls++
	return s.questions, s.err
}

type stubQuestionGetter struct {
	question models.Question
	err      error
}

func (s *stubQuestionGetter) GetQuestionByID(ctx context.Context, id, viewer string) (models.Question, error) {
	return s.question, s.err
}

type stubCorrespondenceLister struct {
	correspondences []models.Correspondence
	err             error
}

func (s *stubCorrespondenceLister) ListCorrespondences(ctx context.Context, username string) ([]models.Correspondence, error) {
	return s.correspondences, s.err
}

type stubNotificationFetcher struct {
	unread  []models.Notification
	read    []models.Notification
	markErr error
}

func (s *stubNotificationFetcher) ListNotifications(ctx context.Context, username string, read bool) ([]models.Notification, error) {
	if read {
		return s.read, nil
	}
	return s.unread, nil
}

func (s *stubNotificationFetcher) MarkNotificationRead(ctx context.Context, id string) (models.Notification, error) {
	if s.markErr != nil {
		return models.Notification{}, s.markErr
	}
	for _, notification := range s.unread {
		if notification.ID == id {
			notification.Read = true
			return notification, nil
		}
	}
	return models.Notification{}, errors.New("notification not found")
}

type memoryCache struct {
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Save(page, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[page+"|"+key] = payload
	return nil
}

func (c *memoryCache) Load(page, key string, out any) (bool, error) {
	payload, ok := c.entries[page+"|"+key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(payload, out)
}

func testSession(username string) *session.Session {
	sess, err := session.New(username, "")
	if err != nil {
		panic(err)
	}
	return sess
}

func question(id, askedBy string, asked time.Time) models.Question {
	return models.Question{
		ID:          id,
		Title:       "title " + id,
		Text:        "text " + id,
		AskedBy:     askedBy,
		AskDateTime: asked,
	}
}
