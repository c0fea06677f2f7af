package models

// TimeSlot is a derived, ephemeral candidate start time. Slots are recomputed
// on every calendar or service selection change and never persisted.
type TimeSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}
