// Package notification holds the single transient toast shown by the UI
// layer: one (message, severity, visibility) cell with an auto-dismiss
// timer for non-blocking severities.
package notification

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

const defaultDismissAfter = 5 * time.Second

type Service interface {
	ShowSuccess(message string)
	ShowError(message string)
	ShowWarning(message string)
	ShowInfo(message string)
	Hide()
	Message() string
	Severity() Severity
	Visible() bool
	Subscribe(fn func()) string
	Unsubscribe(id string)
}

type service struct {
	mu           sync.RWMutex
	message      string
	severity     Severity
	visible      bool
	dismissAfter time.Duration
	timer        *time.Timer
	subscribers  map[string]func()
}

func NewService() Service {
	return &service{
		dismissAfter: defaultDismissAfter,
		subscribers:  make(map[string]func()),
	}
}

func (s *service) ShowSuccess(message string) { s.show(message, SeveritySuccess) }
func (s *service) ShowError(message string)   { s.show(message, SeverityError) }
func (s *service) ShowWarning(message string) { s.show(message, SeverityWarning) }
func (s *service) ShowInfo(message string)    { s.show(message, SeverityInfo) }

func (s *service) Hide() {
	s.mu.Lock()
	s.visible = false
	s.stopTimerLocked()
	s.mu.Unlock()

	s.notifySubscribers()
}

func (s *service) Message() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.message
}

func (s *service) Severity() Severity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.severity
}

func (s *service) Visible() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.visible
}

func (s *service) Subscribe(fn func()) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.subscribers[id] = fn
	s.mu.Unlock()
	return id
}

func (s *service) Unsubscribe(id string) {
	s.mu.Lock()
	delete(s.subscribers, id)
	s.mu.Unlock()
}

func (s *service) show(message string, severity Severity) {
	s.mu.Lock()
	s.message = message
	s.severity = severity
	s.visible = true
	s.stopTimerLocked()

	// Errors and warnings stay until dismissed; success and info fade out.
	if severity == SeveritySuccess || severity == SeverityInfo {
		s.timer = time.AfterFunc(s.dismissAfter, s.Hide)
	}
	s.mu.Unlock()

	s.notifySubscribers()
}

func (s *service) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *service) notifySubscribers() {
	s.mu.RLock()
	fns := make([]func(), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}
