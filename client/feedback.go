package client

import "time"

// feedbackTTL is how long a message stays visible before the consumer
// stops seeing it.
const feedbackTTL = 4 * time.Second

type FeedbackKind string

const (
	FeedbackSuccess FeedbackKind = "success"
	FeedbackError   FeedbackKind = "error"
)

// Feedback is the single-slot, transient outcome of the last operation.
type Feedback struct {
	Kind FeedbackKind
	Text string

	at time.Time
}

// Feedback returns the current message, or nil once it has been dismissed
// or its display window has passed.
func (s *Store) Feedback() *Feedback {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.feedback == nil {
		return nil
	}
	if s.now().Sub(s.feedback.at) >= feedbackTTL {
		s.feedback = nil
		return nil
	}
	f := *s.feedback
	return &f
}

// Dismiss clears the message before its window expires.
func (s *Store) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedback = nil
}

// setFeedback overwrites the slot; each operation's outcome replaces the
// previous one.
func (s *Store) setFeedback(kind FeedbackKind, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedback = &Feedback{Kind: kind, Text: text, at: s.now()}
}
