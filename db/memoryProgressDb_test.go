package db

import (
	"context"
	"testing"
	"time"

	"github.com/shashi997/spacey-mission/models"
)

func TestAppendChoiceCreatesAndAppends(t *testing.T) {
	repo := NewMemoryProgressRepository()
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	first := models.ChoiceEvent{BlockID: "b1", ChoiceText: "go left", At: "2024-03-01T12:00:00.000000Z"}
	second := models.ChoiceEvent{BlockID: "b2", ChoiceText: "go right", At: "2024-03-01T12:00:01.000000Z"}

	if err := repo.AppendChoice(ctx, "u1", "m1", first, now); err != nil {
		t.Fatalf("AppendChoice failed: %v", err)
	}
	if err := repo.AppendChoice(ctx, "u1", "m1", second, now.Add(time.Second)); err != nil {
		t.Fatalf("AppendChoice failed: %v", err)
	}

	missions, err := repo.GetMissions(ctx, "u1")
	if err != nil {
		t.Fatalf("GetMissions failed: %v", err)
	}
	if len(missions) != 1 {
		t.Fatalf("expected 1 mission record, got %d", len(missions))
	}
	if len(missions[0].Choices) != 2 {
		t.Fatalf("expected 2 choices, got %d", len(missions[0].Choices))
	}
	if missions[0].Choices[0] != first || missions[0].Choices[1] != second {
		t.Errorf("choices out of order: %+v", missions[0].Choices)
	}
	if !missions[0].UpdatedAt.Equal(now.Add(time.Second)) {
		t.Errorf("expected updated_at refreshed to %v, got %v", now.Add(time.Second), missions[0].UpdatedAt)
	}
}

func TestAppendChoiceUnionSkipsIdenticalElement(t *testing.T) {
	repo := NewMemoryProgressRepository()
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	choice := models.ChoiceEvent{BlockID: "b1", ChoiceText: "go left", At: "2024-03-01T12:00:00.000000Z"}
	if err := repo.AppendChoice(ctx, "u1", "m1", choice, now); err != nil {
		t.Fatalf("AppendChoice failed: %v", err)
	}
	if err := repo.AppendChoice(ctx, "u1", "m1", choice, now.Add(time.Second)); err != nil {
		t.Fatalf("AppendChoice failed: %v", err)
	}

	missions, _ := repo.GetMissions(ctx, "u1")
	if len(missions[0].Choices) != 1 {
		t.Errorf("expected identical element to be skipped, got %d choices", len(missions[0].Choices))
	}
	if !missions[0].UpdatedAt.Equal(now.Add(time.Second)) {
		t.Errorf("expected updated_at still refreshed, got %v", missions[0].UpdatedAt)
	}
}

func TestSetFinalSummaryMergesIntoExistingRecord(t *testing.T) {
	repo := NewMemoryProgressRepository()
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	choice := models.ChoiceEvent{BlockID: "b1", ChoiceText: "go left", At: "2024-03-01T12:00:00.000000Z"}
	if err := repo.AppendChoice(ctx, "u1", "m1", choice, now); err != nil {
		t.Fatalf("AppendChoice failed: %v", err)
	}

	completedAt := now.Add(time.Minute)
	if err := repo.SetFinalSummary(ctx, "u1", "m1", "mission accomplished", completedAt); err != nil {
		t.Fatalf("SetFinalSummary failed: %v", err)
	}

	missions, _ := repo.GetMissions(ctx, "u1")
	record := missions[0]
	if len(record.Choices) != 1 {
		t.Errorf("expected summary merge to preserve choices, got %d", len(record.Choices))
	}
	if record.FinalSummary == nil || *record.FinalSummary != "mission accomplished" {
		t.Errorf("expected final summary stored, got %v", record.FinalSummary)
	}
	if record.CompletedAt == nil || !record.CompletedAt.Equal(completedAt) {
		t.Errorf("expected completed_at %v, got %v", completedAt, record.CompletedAt)
	}

	// A later choice append must not revert the completed state.
	later := models.ChoiceEvent{BlockID: "b2", ChoiceText: "debrief", At: "2024-03-01T12:02:00.000000Z"}
	if err := repo.AppendChoice(ctx, "u1", "m1", later, completedAt.Add(time.Minute)); err != nil {
		t.Fatalf("AppendChoice failed: %v", err)
	}
	missions, _ = repo.GetMissions(ctx, "u1")
	if missions[0].CompletedAt == nil {
		t.Error("expected completed_at preserved after later choice append")
	}
}

func TestIncrementTraitsAggregates(t *testing.T) {
	repo := NewMemoryProgressRepository()
	ctx := context.Background()
	now := time.Now()

	if err := repo.IncrementTraits(ctx, "u1", map[string]int{"bold": 1}, now); err != nil {
		t.Fatalf("IncrementTraits failed: %v", err)
	}
	if err := repo.IncrementTraits(ctx, "u1", map[string]int{"bold": 2, "creative": 1}, now); err != nil {
		t.Fatalf("IncrementTraits failed: %v", err)
	}

	traits, err := repo.GetTraits(ctx, "u1")
	if err != nil {
		t.Fatalf("GetTraits failed: %v", err)
	}
	if traits["bold"] != 3 {
		t.Errorf("expected bold == 3, got %d", traits["bold"])
	}
	if traits["creative"] != 1 {
		t.Errorf("expected creative == 1, got %d", traits["creative"])
	}
}

func TestGetTraitsAbsentUser(t *testing.T) {
	repo := NewMemoryProgressRepository()

	traits, err := repo.GetTraits(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("GetTraits failed: %v", err)
	}
	if len(traits) != 0 {
		t.Errorf("expected no stored traits for absent user, got %v", traits)
	}
}

func TestGetMissionsReturnsCopies(t *testing.T) {
	repo := NewMemoryProgressRepository()
	ctx := context.Background()
	now := time.Now()

	choice := models.ChoiceEvent{BlockID: "b1", ChoiceText: "go left", At: "2024-03-01T12:00:00.000000Z"}
	if err := repo.AppendChoice(ctx, "u1", "m1", choice, now); err != nil {
		t.Fatalf("AppendChoice failed: %v", err)
	}

	missions, _ := repo.GetMissions(ctx, "u1")
	missions[0].Choices[0].ChoiceText = "mutated"

	again, _ := repo.GetMissions(ctx, "u1")
	if again[0].Choices[0].ChoiceText != "go left" {
		t.Error("expected stored record to be isolated from returned slice")
	}
}
