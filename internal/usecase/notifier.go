package usecase

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ChangeEvent tells a user's other sessions that something they own changed.
type ChangeEvent struct {
	Type      string    `json:"type"`
	Entity    string    `json:"entity"`
	ID        uuid.UUID `json:"id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

type Notifier interface {
	Notify(userID uuid.UUID, ev ChangeEvent)
}

type nopNotifier struct{}

func (nopNotifier) Notify(uuid.UUID, ChangeEvent) {}

func notifierOrNoop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}

func notify(n Notifier, userID uuid.UUID, entity string, id uuid.UUID, action string) {
	n.Notify(userID, ChangeEvent{
		Type:      entity + "_updated",
		Entity:    entity,
		ID:        id,
		Action:    action,
		Timestamp: time.Now().UTC(),
	})
}
