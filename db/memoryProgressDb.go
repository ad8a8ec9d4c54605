package db

import (
	"context"
	"sync"
	"time"

	"github.com/shashi997/spacey-mission/models"
)

// MemoryProgressRepository is an in-process ProgressRepository with the same
// merge semantics as the Firestore one: documents are created on first write,
// choice appends skip an element identical to one already stored (array-union
// contract), and increments never reset existing counters. Used by tests.
type MemoryProgressRepository struct {
	mu       sync.Mutex
	traits   map[string]map[string]int
	missions map[string]map[string]*models.MissionRecord
}

func NewMemoryProgressRepository() *MemoryProgressRepository {
	return &MemoryProgressRepository{
		traits:   make(map[string]map[string]int),
		missions: make(map[string]map[string]*models.MissionRecord),
	}
}

func (r *MemoryProgressRepository) mission(userID, missionID string) *models.MissionRecord {
	if r.missions[userID] == nil {
		r.missions[userID] = make(map[string]*models.MissionRecord)
	}
	record := r.missions[userID][missionID]
	if record == nil {
		record = &models.MissionRecord{MissionID: missionID}
		r.missions[userID][missionID] = record
	}
	return record
}

func (r *MemoryProgressRepository) AppendChoice(_ context.Context, userID, missionID string, choice models.ChoiceEvent, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record := r.mission(userID, missionID)
	for _, existing := range record.Choices {
		if existing == choice {
			record.UpdatedAt = updatedAt
			return nil
		}
	}
	record.Choices = append(record.Choices, choice)
	record.UpdatedAt = updatedAt
	return nil
}

func (r *MemoryProgressRepository) IncrementTraits(_ context.Context, userID string, counts map[string]int, _ time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.traits[userID] == nil {
		r.traits[userID] = make(map[string]int)
	}
	for tag, amount := range counts {
		r.traits[userID][tag] += amount
	}
	return nil
}

func (r *MemoryProgressRepository) SetFinalSummary(_ context.Context, userID, missionID, summary string, completedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record := r.mission(userID, missionID)
	summaryCopy := summary
	completedCopy := completedAt
	record.FinalSummary = &summaryCopy
	record.CompletedAt = &completedCopy
	record.UpdatedAt = completedAt
	return nil
}

func (r *MemoryProgressRepository) GetTraits(_ context.Context, userID string) (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make(map[string]int, len(r.traits[userID]))
	for tag, count := range r.traits[userID] {
		stored[tag] = count
	}
	return stored, nil
}

func (r *MemoryProgressRepository) GetMissions(_ context.Context, userID string) ([]models.MissionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	missions := make([]models.MissionRecord, 0, len(r.missions[userID]))
	for _, record := range r.missions[userID] {
		copied := *record
		copied.Choices = append([]models.ChoiceEvent(nil), record.Choices...)
		if record.FinalSummary != nil {
			summary := *record.FinalSummary
			copied.FinalSummary = &summary
		}
		if record.CompletedAt != nil {
			completed := *record.CompletedAt
			copied.CompletedAt = &completed
		}
		missions = append(missions, copied)
	}
	return missions, nil
}
