package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"

	"github.com/shashi997/spacey-mission/db"
	"github.com/shashi997/spacey-mission/models"
)

// ErrValidation marks caller input errors so handlers can map them to 400.
var ErrValidation = errors.New("invalid request")

// TimestampLayout is the wire format for completion timestamps: UTC with
// microseconds and an explicit Z suffix.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// baseTraits pads every traits read; stored counters override these zeros and
// tags outside the base set pass through untouched.
var baseTraits = map[string]int{
	"cautious":   0,
	"bold":       0,
	"creative":   0,
	"risk_taker": 0,
}

type ProgressService struct {
	repo db.ProgressRepository
	now  func() time.Time
}

func NewProgressService(repo db.ProgressRepository) *ProgressService {
	return &ProgressService{
		repo: repo,
		now:  time.Now,
	}
}

// SaveChoice appends one choice event to the mission record and, when the
// choice carries a trait tag, bumps that trait counter on the user. The two
// writes are independent store calls: if the increment fails after the append
// succeeded, the mission record stays correctly updated and the error is
// returned without retrying (re-appending could double-count the choice).
func (s *ProgressService) SaveChoice(ctx context.Context, req *models.SaveChoiceRequest) error {
	log.Printf("[INFO] Starting save choice for user %s, mission %s", req.UserID, req.MissionID)

	if err := s.validateIdentifiers(req.UserID, req.MissionID); err != nil {
		log.Printf("[ERROR] Save choice validation failed: %v", err)
		return err
	}

	now := s.now().UTC()
	choice := models.ChoiceEvent{
		BlockID:    req.BlockID,
		ChoiceText: req.ChoiceText,
		Tag:        req.Tag,
		At:         now.Format(TimestampLayout),
	}

	if err := s.repo.AppendChoice(ctx, req.UserID, req.MissionID, choice, now); err != nil {
		log.Printf("[ERROR] Failed to append choice for user %s, mission %s: %v", req.UserID, req.MissionID, err)
		return fmt.Errorf("failed to save choice: %w", err)
	}

	if req.Tag != "" {
		if err := s.repo.IncrementTraits(ctx, req.UserID, map[string]int{req.Tag: 1}, now); err != nil {
			log.Printf("[ERROR] Failed to increment trait %q for user %s: %v", req.Tag, req.UserID, err)
			return fmt.Errorf("failed to increment trait: %w", err)
		}
	}

	log.Printf("[INFO] Successfully saved choice at block %s for user %s", req.BlockID, req.UserID)
	return nil
}

// SaveFinalSummary records the mission outcome and returns the completion
// timestamp actually written. Calling it again overwrites the summary and
// advances the timestamp (last write wins).
func (s *ProgressService) SaveFinalSummary(ctx context.Context, req *models.SaveFinalSummaryRequest) (string, error) {
	log.Printf("[INFO] Starting save final summary for user %s, mission %s", req.UserID, req.MissionID)

	if err := s.validateIdentifiers(req.UserID, req.MissionID); err != nil {
		log.Printf("[ERROR] Save final summary validation failed: %v", err)
		return "", err
	}

	completedAt := s.now().UTC()
	if err := s.repo.SetFinalSummary(ctx, req.UserID, req.MissionID, req.Summary, completedAt); err != nil {
		log.Printf("[ERROR] Failed to save final summary for user %s, mission %s: %v", req.UserID, req.MissionID, err)
		return "", fmt.Errorf("failed to save final summary: %w", err)
	}

	log.Printf("[INFO] Successfully saved final summary for mission %s", req.MissionID)
	return completedAt.Format(TimestampLayout), nil
}

// AwardTraits bumps several trait counters at once, as the mission debrief
// does on completion. Blank trait names are skipped.
func (s *ProgressService) AwardTraits(ctx context.Context, req *models.AwardTraitsRequest) error {
	log.Printf("[INFO] Starting award traits for user %s with %d traits", req.UserID, len(req.Traits))

	if strings.TrimSpace(req.UserID) == "" {
		log.Printf("[ERROR] Award traits validation failed: missing userId")
		return fmt.Errorf("%w: userId is required", ErrValidation)
	}

	names := lo.Filter(req.Traits, func(name string, _ int) bool {
		return strings.TrimSpace(name) != ""
	})
	if len(names) == 0 {
		log.Printf("[ERROR] Award traits validation failed: no trait names provided")
		return fmt.Errorf("%w: at least one trait name is required", ErrValidation)
	}

	amount := req.Amount
	if amount <= 0 {
		amount = 1
	}

	counts := make(map[string]int, len(names))
	for _, name := range names {
		counts[name] += amount
	}

	if err := s.repo.IncrementTraits(ctx, req.UserID, counts, s.now().UTC()); err != nil {
		log.Printf("[ERROR] Failed to award traits for user %s: %v", req.UserID, err)
		return fmt.Errorf("failed to award traits: %w", err)
	}

	log.Printf("[INFO] Successfully awarded %d traits to user %s", len(counts), req.UserID)
	return nil
}

// GetUserTraits returns the user's trait counters merged over the base set.
// A user with no stored document reads as the base defaults.
func (s *ProgressService) GetUserTraits(ctx context.Context, userID string) (map[string]int, error) {
	log.Printf("[INFO] Starting get traits for user %s", userID)

	if strings.TrimSpace(userID) == "" {
		log.Printf("[ERROR] Get traits validation failed: missing userId")
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}

	stored, err := s.repo.GetTraits(ctx, userID)
	if err != nil {
		log.Printf("[ERROR] Failed to get traits for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to get traits: %w", err)
	}

	merged := lo.Assign(baseTraits, stored)

	log.Printf("[INFO] Successfully retrieved %d traits for user %s", len(merged), userID)
	return merged, nil
}

// GetMissionHistory returns every mission record for the user, newest
// completion first; missions never completed sort last. Optional search terms
// filter the result by fuzzy-matching choice texts and final summaries.
func (s *ProgressService) GetMissionHistory(ctx context.Context, userID string, searchTerms []string) ([]models.MissionHistoryEntry, error) {
	log.Printf("[INFO] Starting get mission history for user %s", userID)

	if strings.TrimSpace(userID) == "" {
		log.Printf("[ERROR] Get mission history validation failed: missing userId")
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}

	records, err := s.repo.GetMissions(ctx, userID)
	if err != nil {
		log.Printf("[ERROR] Failed to get missions for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to get mission history: %w", err)
	}

	entries := lo.Map(records, func(record models.MissionRecord, _ int) models.MissionHistoryEntry {
		entry := models.MissionHistoryEntry{
			MissionID:    record.MissionID,
			Choices:      record.Choices,
			FinalSummary: record.FinalSummary,
		}
		if entry.Choices == nil {
			entry.Choices = []models.ChoiceEvent{}
		}
		if record.CompletedAt != nil {
			completed := record.CompletedAt.UTC().Format(TimestampLayout)
			entry.CompletedAt = &completed
		}
		return entry
	})

	sort.SliceStable(entries, func(i, j int) bool {
		return completionKey(entries[i]) > completionKey(entries[j])
	})

	if len(searchTerms) > 0 {
		entries = lo.Filter(entries, func(entry models.MissionHistoryEntry, _ int) bool {
			return s.missionMatchesSearch(entry, searchTerms)
		})
	}

	log.Printf("[INFO] Successfully retrieved %d missions for user %s", len(entries), userID)
	return entries, nil
}

// completionKey treats a never-completed mission as the empty string, so it
// sorts after every ISO-8601 timestamp in descending order.
func completionKey(entry models.MissionHistoryEntry) string {
	if entry.CompletedAt == nil {
		return ""
	}
	return *entry.CompletedAt
}

func (s *ProgressService) validateIdentifiers(userID, missionID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: userId is required", ErrValidation)
	}
	if strings.TrimSpace(missionID) == "" {
		return fmt.Errorf("%w: missionId is required", ErrValidation)
	}
	return nil
}

func (s *ProgressService) missionMatchesSearch(entry models.MissionHistoryEntry, searchTerms []string) bool {
	var content strings.Builder
	for _, choice := range entry.Choices {
		content.WriteString(choice.ChoiceText)
		content.WriteString(" ")
	}
	if entry.FinalSummary != nil {
		content.WriteString(*entry.FinalSummary)
	}
	text := content.String()
	words := strings.Fields(strings.ToLower(text))

	for _, term := range searchTerms {
		if fuzzy.MatchFold(term, text) {
			return true
		}

		cleanWords := make([]string, 0, len(words))
		for _, word := range words {
			cleanWord := strings.Trim(word, ".,!?;:()[]{}\"'")
			if len(cleanWord) > 0 {
				cleanWords = append(cleanWords, cleanWord)
			}
		}

		if matches := fuzzy.Find(term, cleanWords); len(matches) > 0 {
			return true
		}
	}

	return false
}
