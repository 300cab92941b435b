package server

import (
	"github.com/clearday/clearday/pkg/sobriety"
)

type ProfileRequest struct {
	StartDate sobriety.Date `json:"start_date"`
	Timezone  string        `json:"timezone,omitempty"`
}

type ResetRequest struct {
	OccurredOn  sobriety.Date `json:"occurred_on"`
	RestartDate sobriety.Date `json:"restart_date,omitempty"`
	Note        string        `json:"note,omitempty"`
}

type ResetListResponse struct {
	UserID string                `json:"user_id"`
	Resets []sobriety.ResetEvent `json:"resets"`
}

type StreakResponse struct {
	UserID string `json:"user_id"`
	sobriety.StreakState
	Error string `json:"error,omitempty"`
}
