// Package tag manages the unique tag catalog and question-tag associations.
package tag

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/forumhub/backend/domain"
	"github.com/forumhub/backend/repository"
)

type UseCase struct {
	tx        repository.Transactor
	tags      repository.TagRepository
	questions repository.QuestionRepository
	logger    *zap.Logger
}

func New(tx repository.Transactor, tags repository.TagRepository, questions repository.QuestionRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tx:        tx,
		tags:      tags,
		questions: questions,
		logger:    logger,
	}
}

// CreateOrGet returns the tag with the given name, creating it on first use.
func (uc *UseCase) CreateOrGet(ctx context.Context, name string) (*domain.Tag, error) {
	if name == "" {
		return nil, domain.ErrInvalidPayload
	}
	return uc.tags.Create(ctx, &domain.Tag{ID: uuid.NewString(), Name: name})
}

func (uc *UseCase) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return uc.tags.List(ctx)
}

func (uc *UseCase) TagsForQuestion(ctx context.Context, questionID string) ([]domain.Tag, error) {
	return uc.tags.ListForQuestion(ctx, questionID)
}

// AddTagToQuestion associates a tag (created if missing) with the question.
func (uc *UseCase) AddTagToQuestion(ctx context.Context, questionID, name string) (*domain.Tag, error) {
	if name == "" {
		return nil, domain.ErrInvalidPayload
	}

	var tag *domain.Tag
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := uc.questions.GetByID(ctx, questionID); err != nil {
			return err
		}
		var err error
		tag, err = uc.tags.Create(ctx, &domain.Tag{ID: uuid.NewString(), Name: name})
		if err != nil {
			return err
		}
		return uc.tags.Associate(ctx, questionID, tag.ID)
	})
	if err != nil {
		return nil, err
	}
	return tag, nil
}

// RemoveTagFromQuestion drops the association. The tag itself stays.
func (uc *UseCase) RemoveTagFromQuestion(ctx context.Context, questionID, name string) error {
	return uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := uc.questions.GetByID(ctx, questionID); err != nil {
			return err
		}
		tag, err := uc.tags.GetByName(ctx, name)
		if err != nil {
			return err
		}
		return uc.tags.Dissociate(ctx, questionID, tag.ID)
	})
}
