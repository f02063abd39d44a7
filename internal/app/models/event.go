package models

import "time"

type Event struct {
	Type       string    `json:"type"`
	IdentityID string    `json:"identityId,omitempty"`
	Role       Role      `json:"role,omitempty"`
	Count      int       `json:"count,omitempty"`
	RequestID  string    `json:"requestId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}
