package db

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/shashi997/spacey-mission/models"
)

// ProgressRepository is the contract against the document store. Writes are
// merge-upserts: the user or mission document is created when absent, merged
// otherwise. Appends and increments must be atomic on the store side, never
// read-modify-write.
type ProgressRepository interface {
	AppendChoice(ctx context.Context, userID, missionID string, choice models.ChoiceEvent, updatedAt time.Time) error
	IncrementTraits(ctx context.Context, userID string, counts map[string]int, updatedAt time.Time) error
	SetFinalSummary(ctx context.Context, userID, missionID, summary string, completedAt time.Time) error
	GetTraits(ctx context.Context, userID string) (map[string]int, error)
	GetMissions(ctx context.Context, userID string) ([]models.MissionRecord, error)
}

type FirestoreProgressRepository struct {
	client *firestore.Client
}

// missionDoc mirrors users/{userId}/missions/{missionId}.
type missionDoc struct {
	MissionID    string               `firestore:"missionId"`
	Choices      []models.ChoiceEvent `firestore:"choices"`
	FinalSummary *string              `firestore:"final_summary"`
	CompletedAt  *time.Time           `firestore:"completed_at"`
	UpdatedAt    time.Time            `firestore:"updated_at"`
}

// userDoc mirrors users/{userId}.
type userDoc struct {
	Traits    map[string]int `firestore:"traits"`
	UpdatedAt time.Time      `firestore:"updatedAt"`
}

func NewFirestoreProgressRepository(ctx context.Context, projectID, credentialsFile string) (*FirestoreProgressRepository, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	return &FirestoreProgressRepository{client: client}, nil
}

func (r *FirestoreProgressRepository) userRef(userID string) *firestore.DocumentRef {
	return r.client.Collection("users").Doc(userID)
}

func (r *FirestoreProgressRepository) missionRef(userID, missionID string) *firestore.DocumentRef {
	return r.userRef(userID).Collection("missions").Doc(missionID)
}

func (r *FirestoreProgressRepository) AppendChoice(ctx context.Context, userID, missionID string, choice models.ChoiceEvent, updatedAt time.Time) error {
	_, err := r.missionRef(userID, missionID).Set(ctx, map[string]any{
		"missionId":  missionID,
		"choices":    firestore.ArrayUnion(choice),
		"updated_at": updatedAt,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to append choice: %w", err)
	}

	return nil
}

func (r *FirestoreProgressRepository) IncrementTraits(ctx context.Context, userID string, counts map[string]int, updatedAt time.Time) error {
	traits := make(map[string]any, len(counts))
	for tag, amount := range counts {
		traits[tag] = firestore.Increment(amount)
	}

	_, err := r.userRef(userID).Set(ctx, map[string]any{
		"traits":    traits,
		"updatedAt": updatedAt,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to increment traits: %w", err)
	}

	return nil
}

func (r *FirestoreProgressRepository) SetFinalSummary(ctx context.Context, userID, missionID, summary string, completedAt time.Time) error {
	_, err := r.missionRef(userID, missionID).Set(ctx, map[string]any{
		"missionId":     missionID,
		"final_summary": summary,
		"completed_at":  completedAt,
		"updated_at":    completedAt,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to set final summary: %w", err)
	}

	return nil
}

func (r *FirestoreProgressRepository) GetTraits(ctx context.Context, userID string) (map[string]int, error) {
	snap, err := r.userRef(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return map[string]int{}, nil
		}
		return nil, fmt.Errorf("failed to get user document: %w", err)
	}

	var user userDoc
	if err := snap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user document: %w", err)
	}

	if user.Traits == nil {
		return map[string]int{}, nil
	}
	return user.Traits, nil
}

func (r *FirestoreProgressRepository) GetMissions(ctx context.Context, userID string) ([]models.MissionRecord, error) {
	iter := r.userRef(userID).Collection("missions").Documents(ctx)
	defer iter.Stop()

	missions := make([]models.MissionRecord, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate missions: %w", err)
		}

		var doc missionDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode mission %s: %w", snap.Ref.ID, err)
		}

		missions = append(missions, models.MissionRecord{
			MissionID:    snap.Ref.ID,
			Choices:      doc.Choices,
			FinalSummary: doc.FinalSummary,
			CompletedAt:  doc.CompletedAt,
			UpdatedAt:    doc.UpdatedAt,
		})
	}

	return missions, nil
}

func (r *FirestoreProgressRepository) Close() error {
	return r.client.Close()
}
