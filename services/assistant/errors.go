package assistant

import "errors"

// ErrEmptyTurnInput rejects a turn carrying neither message text nor a UI
// event. Nothing is mutated when this is returned.
var ErrEmptyTurnInput = errors.New("turn requires a message or a UI event")

// ErrConversationNotFound distinguishes a missing or foreign conversation
// from generic failures so callers can offer a fresh chat.
var ErrConversationNotFound = errors.New("conversation not found")
