// Package voice runs an external speech recognizer and reports its
// lifecycle as events.
package voice

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// DefaultLang is the recognition locale.
const DefaultLang = "en-IN"

// ErrUnsupported means no recognizer is configured.
var ErrUnsupported = errors.New("voice: speech recognition is not supported")

// EventKind classifies recognizer events.
type EventKind int

const (
	EventStarted EventKind = iota
	EventResult
	EventEnded
	EventFailed
)

// Event is one recognizer lifecycle notification.
type Event struct {
	Kind       EventKind
	Transcript string
	Err        error
}

// Recognizer starts listening sessions.
type Recognizer interface {
	Start(ctx context.Context) (*Session, error)
}

// Session is a single listening run. Events is closed after the final
// Ended or Failed event.
type Session struct {
	events chan Event
	cancel context.CancelFunc
	once   sync.Once
}

// Events returns the session's event stream.
func (s *Session) Events() <-chan Event { return s.events }

// Stop aborts the session. Safe to call more than once.
func (s *Session) Stop() {
	s.once.Do(s.cancel)
}

// NewSession wires a session whose work is run by fn. fn receives a context
// cancelled by Stop and returns the transcript.
func NewSession(parent context.Context, fn func(ctx context.Context) (string, error)) *Session {
	ctx, cancel := context.WithCancel(parent)
	s := &Session{events: make(chan Event, 4), cancel: cancel}

	go func() {
		defer close(s.events)
		defer cancel()

		s.events <- Event{Kind: EventStarted}
		transcript, err := fn(ctx)
		switch {
		case ctx.Err() != nil:
			// Aborted: report a clean end without a result.
		case err != nil:
			s.events <- Event{Kind: EventFailed, Err: err}
			return
		case transcript != "":
			s.events <- Event{Kind: EventResult, Transcript: transcript}
		}
		s.events <- Event{Kind: EventEnded}
	}()

	return s
}

// CommandRecognizer runs a configured program and treats the first
// non-empty line it prints as the transcript.
type CommandRecognizer struct {
	Command []string
	Lang    string
}

// Start launches the recognizer process.
func (r *CommandRecognizer) Start(ctx context.Context) (*Session, error) {
	if len(r.Command) == 0 || r.Command[0] == "" {
		return nil, ErrUnsupported
	}
	if _, err := exec.LookPath(r.Command[0]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}

	lang := r.Lang
	if lang == "" {
		lang = DefaultLang
	}
	name, args := r.Command[0], r.Command[1:]

	return NewSession(ctx, func(ctx context.Context) (string, error) {
		cmd := exec.CommandContext(ctx, name, args...)
		cmd.Env = append(os.Environ(), "RECOGNIZER_LANG="+lang)
		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return "", fmt.Errorf("voice: recognizer: %w: %s", err, msg)
			}
			return "", fmt.Errorf("voice: recognizer: %w", err)
		}
		return firstLine(stdout.Bytes()), nil
	}), nil
}

func firstLine(out []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			return line
		}
	}
	return ""
}
