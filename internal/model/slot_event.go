package model

import "time"

type SlotEventType string

const (
	SlotEventExtraAdded       SlotEventType = "extra_added"
	SlotEventExtraReactivated SlotEventType = "extra_reactivated"
	SlotEventFixedSuppressed  SlotEventType = "fixed_suppressed"
	SlotEventExtraRemoved     SlotEventType = "extra_removed"
	SlotEventExpiredPurged    SlotEventType = "expired_purged"
)

// SlotEvent событие изменения слотов, публикуется после успешной записи в хранилище
type SlotEvent struct {
	Type SlotEventType `json:"type"`
	ID   string        `json:"id,omitempty"`
	Date string        `json:"date,omitempty"`
	Time string        `json:"time,omitempty"`
	At   time.Time     `json:"at"`
}
