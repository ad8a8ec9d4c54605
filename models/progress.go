package models

import "time"

// ChoiceEvent is one learner decision at a mission checkpoint. Events are
// immutable once stored; At is recorded at write time.
type ChoiceEvent struct {
	BlockID    string `json:"block_id" firestore:"block_id"`
	ChoiceText string `json:"choice_text" firestore:"choice_text"`
	Tag        string `json:"tag,omitempty" firestore:"tag,omitempty"`
	At         string `json:"at" firestore:"at"`
}

// MissionRecord is the per-user, per-mission durable state as stored.
type MissionRecord struct {
	MissionID    string
	Choices      []ChoiceEvent
	FinalSummary *string
	CompletedAt  *time.Time
	UpdatedAt    time.Time
}

// MissionHistoryEntry is one mission as returned to the client.
type MissionHistoryEntry struct {
	MissionID    string        `json:"mission_id"`
	CompletedAt  *string       `json:"completed_at"`
	Choices      []ChoiceEvent `json:"choices"`
	FinalSummary *string       `json:"final_summary"`
}

type SaveChoiceRequest struct {
	UserID     string `json:"userId"`
	MissionID  string `json:"missionId"`
	BlockID    string `json:"blockId"`
	ChoiceText string `json:"choiceText"`
	Tag        string `json:"tag,omitempty"`
}

type SaveFinalSummaryRequest struct {
	UserID    string `json:"userId"`
	MissionID string `json:"missionId"`
	Summary   string `json:"summary"`
}

type AwardTraitsRequest struct {
	UserID string   `json:"userId"`
	Traits []string `json:"traits"`
	Amount int      `json:"amount,omitempty"`
}
