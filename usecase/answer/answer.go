// Package answer covers answer CRUD and the RECEIVED to IN_PROGRESS lifecycle
// transition triggered by a question's first answer.
package answer

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
	answers   repository.AnswerRepository
	questions repository.QuestionRepository
	users     repository.UserRepository
	blobs     usecase.BlobStore
	logger    *zap.Logger
}

func New(
	tx repository.Transactor,
	answers repository.AnswerRepository,
	questions repository.QuestionRepository,
	users repository.UserRepository,
	blobs usecase.BlobStore,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tx:        tx,
		answers:   answers,
		questions: questions,
		users:     users,
		blobs:     blobs,
		logger:    logger,
	}
}

// CreateAnswer stores the answer and, when it is the question's first one,
// moves the question to IN_PROGRESS in the same transaction. Later answers
// leave the status untouched.
func (uc *UseCase) CreateAnswer(ctx context.Context, authorID, questionID string, answer *domain.Answer) (*domain.Answer, error) {
	if answer == nil {
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

		question, err := uc.questions.GetByID(ctx, questionID)
		if err != nil {
			return err
		}

		answer.ID = uuid.NewString()
		answer.AuthorID = authorID
		answer.QuestionID = questionID
		if _, err := uc.answers.Create(ctx, answer); err != nil {
			return err
		}

		if question.Status == domain.StatusReceived {
			question.Status = domain.StatusInProgress
			if err := uc.questions.Update(ctx, question); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("answer created",
		zap.String("answer_id", answer.ID),
		zap.String("question_id", questionID),
		zap.String("author_id", authorID),
	)
	return answer, nil
}

func (uc *UseCase) GetAnswer(ctx context.Context, id string) (*domain.Answer, error) {
	return uc.answers.GetByID(ctx, id)
}

func (uc *UseCase) ListAnswers(ctx context.Context) ([]domain.Answer, error) {
	return uc.answers.List(ctx)
}

func (uc *UseCase) ListForQuestion(ctx context.Context, questionID string) ([]domain.Answer, error) {
	return uc.answers.ListByQuestion(ctx, questionID)
}

// UpdateAnswer replaces text and picture. When the picture changes or is
// cleared the previous upload is deleted best-effort.
func (uc *UseCase) UpdateAnswer(ctx context.Context, id string, data *domain.Answer) (*domain.Answer, error) {
	if data == nil {
		return nil, domain.ErrInvalidPayload
	}

	answer, err := uc.answers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldPicture := answer.Picture
	answer.Text = data.Text
	switch {
	case data.Picture == "":
		answer.Picture = ""
	case data.Picture != oldPicture:
		answer.Picture = data.Picture
	}
	if oldPicture != "" && answer.Picture != oldPicture {
		uc.deleteBlob(id, oldPicture)
	}

	if err := uc.answers.Update(ctx, answer); err != nil {
		return nil, err
	}
	return answer, nil
}

// DeleteAnswer removes the answer and its votes. It deliberately does not
// touch the owning question's accepted-answer pointer; only the user-deletion
// cascade performs that repair.
func (uc *UseCase) DeleteAnswer(ctx context.Context, id string) error {
	answer, err := uc.answers.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if answer.Picture != "" {
		uc.deleteBlob(id, answer.Picture)
	}
	return uc.answers.Delete(ctx, id)
}

func (uc *UseCase) deleteBlob(answerID, name string) {
	if uc.blobs == nil {
		return
	}
	if err := uc.blobs.Delete(name); err != nil {
		uc.logger.Warn("answer picture cleanup failed",
			zap.String("answer_id", answerID),
			zap.String("picture", name),
			zap.Error(err),
		)
	}
}
