package interaction

import (
	"context"
	"fmt"

	"github.com/pappi-team/pappi-matching/internal/domain"
	"github.com/pappi-team/pappi-matching/internal/repository"
	"go.uber.org/zap"
)

// UseCase appends behavioral signals to the interaction ledger. The ledger
// is append-only; recorded events are never edited.
type UseCase struct {
	interactionRepo repository.InteractionRepository
	animalRepo      repository.AnimalRepository
	recRepo         repository.RecommendationRepository
	logger          *zap.Logger
}

func NewUseCase(
	interactionRepo repository.InteractionRepository,
	animalRepo repository.AnimalRepository,
	recRepo repository.RecommendationRepository,
	logger *zap.Logger,
) *UseCase {
	return &UseCase{
		interactionRepo: interactionRepo,
		animalRepo:      animalRepo,
		recRepo:         recRepo,
		logger:          logger,
	}
}

// RecordRequest represents one behavioral event
type RecordRequest struct {
	AnimalID int    `json:"animal_id" binding:"required"`
	Type     string `json:"type" binding:"required"`
}

// Record validates and appends one interaction, and flags any matching
// recommendation history rows as interacted.
func (uc *UseCase) Record(ctx context.Context, userID int, req *RecordRequest) (*domain.Interaction, error) {
	kind, err := domain.ParseInteractionType(req.Type)
	if err != nil {
		return nil, err
	}

	if _, err := uc.animalRepo.GetByID(ctx, req.AnimalID); err != nil {
		return nil, err
	}

	interaction := &domain.Interaction{
		UserID:   userID,
		AnimalID: req.AnimalID,
		Type:     kind,
	}
	if err := uc.interactionRepo.Create(ctx, interaction); err != nil {
		return nil, fmt.Errorf("failed to record interaction: %w", err)
	}

	// Audit-trail upkeep; the recorded interaction stands either way.
	if err := uc.recRepo.MarkInteracted(ctx, userID, req.AnimalID); err != nil {
		uc.logger.Warn("failed to flag recommendation history",
			zap.Int("user_id", userID),
			zap.Int("animal_id", req.AnimalID),
			zap.Error(err))
	}

	return interaction, nil
}
