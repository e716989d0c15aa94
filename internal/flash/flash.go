package flash

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
)

// order in which queued messages are rendered
var severities = []Severity{SeverityError, SeverityWarning, SeverityInfo, SeveritySuccess}

// a one-time notice shown on the next rendered page
type Message struct {
	Text     string   `json:"text"`
	Severity Severity `json:"severity"`
}

// queues flash messages on the user's cookie session
type Store struct {
	store sessions.Store
	name  string
}

// creates a flash store writing to the named session
func NewStore(store sessions.Store, sessionName string) *Store {
	return &Store{store: store, name: sessionName}
}

// queues msg for display on the next page render
func (s *Store) Add(w http.ResponseWriter, r *http.Request, msg Message) error {
	session, err := s.session(r)
	if err != nil {
		return err
	}

	if msg.Severity == "" {
		msg.Severity = SeverityInfo
	}

	session.AddFlash(msg.Text, string(msg.Severity))

	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to save flash message: %w", err)
	}

	return nil
}

// consumes every queued message
func (s *Store) Pop(w http.ResponseWriter, r *http.Request) ([]Message, error) {
	session, err := s.session(r)
	if err != nil {
		return nil, err
	}

	var messages []Message
	for _, severity := range severities {
		for _, v := range session.Flashes(string(severity)) {
			text, ok := v.(string)
			if !ok {
				continue
			}

			messages = append(messages, Message{Text: text, Severity: severity})
		}
	}

	if len(messages) == 0 {
		return nil, nil
	}

	if err := session.Save(r, w); err != nil {
		return messages, fmt.Errorf("failed to clear flash messages: %w", err)
	}

	return messages, nil
}

// a cookie that fails to decode still yields a fresh session, which is
// good enough for queuing messages
func (s *Store) session(r *http.Request) (*sessions.Session, error) {
	session, err := s.store.Get(r, s.name)
	if session == nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	return session, nil
}
