// Package events публикует события изменения слотов во внешнюю шину
package events

import (
	"context"

	"github.com/Freeeeeet/slot_scheduler/internal/model"
)

// Publisher отправляет событие изменения слотов
type Publisher interface {
	Publish(ctx context.Context, event model.SlotEvent) error
}

// NopPublisher ничего не отправляет; используется когда шина выключена
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, model.SlotEvent) error {
	return nil
}
