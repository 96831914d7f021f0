package models

import "time"

// ToastSeverity classifies user-facing feedback messages.
type ToastSeverity string

const (
	ToastSuccess ToastSeverity = "success"
	ToastError   ToastSeverity = "error"
	ToastInfo    ToastSeverity = "info"
)

// Toast is an ephemeral feedback message. Toasts expire a fixed duration
// after creation unless dismissed first.
type Toast struct {
	ID        string        `json:"id"`
	Message   string        `json:"message"`
	Severity  ToastSeverity `json:"severity"`
	CreatedAt time.Time     `json:"createdAt"`
}
