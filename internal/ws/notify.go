package ws

import (
	"encoding/json"

	"applytrack/internal/usecase"

	"github.com/google/uuid"
)

// Notify publishes ev to the user's open sockets.
func (h *Hub) Notify(userID uuid.UUID, ev usecase.ChangeEvent) {
	if h == nil {
		return
	}
	b, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error().Err(err).Msg("ws encode event")
		return
	}
	h.Send(userID, b)
}

var _ usecase.Notifier = (*Hub)(nil)
