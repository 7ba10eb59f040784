// Package question covers question CRUD, tagging at creation time and the
// accept-answer transition of the lifecycle.
package question

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/forumhub/backend/domain"
	"github.com/forumhub/backend/repository"
	"github.com/forumhub/backend/usecase"
)

type UseCase struct {
	tx        repository.Transactor
	questions repository.QuestionRepository
	answers   repository.AnswerRepository
	users     repository.UserRepository
	tags      repository.TagRepository
	blobs     usecase.BlobStore
	logger    *zap.Logger
}

func New(
	tx repository.Transactor,
	questions repository.QuestionRepository,
	answers repository.AnswerRepository,
	users repository.UserRepository,
	tags repository.TagRepository,
	blobs usecase.BlobStore,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tx:        tx,
		questions: questions,
		answers:   answers,
		users:     users,
		tags:      tags,
		blobs:     blobs,
		logger:    logger,
	}
}

// CreateQuestion stores a new question for the author and attaches the named
// tags, creating missing ones. Banned authors are rejected.
func (uc *UseCase) CreateQuestion(ctx context.Context, authorID string, question *domain.Question, tagNames []string) (*domain.Question, error) {
	if question == nil {
		return nil, domain.ErrInvalidPayload
	}

	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		author, err := uc.users.GetByID(ctx, authorID)
		if err != nil {
			return err
		}
		if !author.CanPost() {
			return domain.ErrUserBanned
		}

		question.ID = uuid.NewString()
		question.AuthorID = authorID
		question.Status = domain.StatusReceived
		question.AcceptedAnswerID = nil
		if _, err := uc.questions.Create(ctx, question); err != nil {
			return err
		}

		for _, name := range tagNames {
			if name == "" {
				continue
			}
			tag, err := uc.tags.Create(ctx, &domain.Tag{ID: uuid.NewString(), Name: name})
			if err != nil {
				return err
			}
			if err := uc.tags.Associate(ctx, question.ID, tag.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("question created",
		zap.String("question_id", question.ID),
		zap.String("author_id", authorID),
		zap.Int("tags", len(tagNames)),
	)
	return question, nil
}

func (uc *UseCase) GetQuestion(ctx context.Context, id string) (*domain.Question, error) {
	return uc.questions.GetByID(ctx, id)
}

func (uc *UseCase) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	return uc.questions.List(ctx)
}

func (uc *UseCase) ListByAuthor(ctx context.Context, authorID string) ([]domain.Question, error) {
	return uc.questions.ListByAuthor(ctx, authorID)
}

func (uc *UseCase) ListByTag(ctx context.Context, tagName string) ([]domain.Question, error) {
	return uc.questions.ListByTagName(ctx, tagName)
}

func (uc *UseCase) SearchByTitle(ctx context.Context, title string) ([]domain.Question, error) {
	return uc.questions.SearchByTitle(ctx, title)
}

// UpdateQuestion changes title, text and picture. Status and accepted answer
// only move through the lifecycle operations.
func (uc *UseCase) UpdateQuestion(ctx context.Context, id string, data *domain.Question) (*domain.Question, error) {
	if data == nil {
		return nil, domain.ErrInvalidPayload
	}

	question, err := uc.questions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	question.Title = data.Title
	question.Text = data.Text
	question.Picture = data.Picture
	if err := uc.questions.Update(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// DeleteQuestion removes the question and everything hanging off it. The
// uploaded picture is deleted best-effort before the row goes away.
func (uc *UseCase) DeleteQuestion(ctx context.Context, id string) error {
	question, err := uc.questions.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if question.Picture != "" && uc.blobs != nil {
		if err := uc.blobs.Delete(question.Picture); err != nil {
			uc.logger.Warn("question picture cleanup failed",
				zap.String("question_id", id),
				zap.String("picture", question.Picture),
				zap.Error(err),
			)
		}
	}

	return uc.questions.Delete(ctx, id)
}

// AcceptAnswer marks the question SOLVED with the given answer. Only the
// question author may accept; accepting another answer later just replaces
// the pointer.
func (uc *UseCase) AcceptAnswer(ctx context.Context, questionID, answerID, actingUserID string) (*domain.Question, error) {
	var question *domain.Question
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		question, err = uc.questions.GetByID(ctx, questionID)
		if err != nil {
			return err
		}
		if question.AuthorID != actingUserID {
			return domain.ErrNotQuestionAuthor
		}

		answer, err := uc.answers.GetByID(ctx, answerID)
		if err != nil {
			return err
		}
		if answer.QuestionID != questionID {
			return domain.ErrAnswerMismatch
		}

		question.Status = domain.StatusSolved
		question.AcceptedAnswerID = &answer.ID
		return uc.questions.Update(ctx, question)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("answer accepted",
		zap.String("question_id", questionID),
		zap.String("answer_id", answerID),
	)
	return question, nil
}
