package app

import (
	"github.com/wilbur182/campusdesk/internal/assistant"
	"github.com/wilbur182/campusdesk/internal/config"
	"github.com/wilbur182/campusdesk/internal/voice"
)

// replyMsg carries the answer to a query issued at epoch.
type replyMsg struct {
	epoch   uint64
	reply   assistant.Reply
	offline bool
	err     error
}

// voiceMsg is one event from a listening session. closed is set once the
// session's stream has ended.
type voiceMsg struct {
	session *voice.Session
	event   voice.Event
	closed  bool
}

// voiceHideMsg hides the voice status box unless a newer update superseded it.
type voiceHideMsg struct{ id int }

// summaryMsg delivers the placeholder summary for a document.
type summaryMsg struct{ name string }

type toastExpiredMsg struct{ id int }

// configMsg carries a reloaded configuration.
type configMsg struct{ cfg *config.Config }
