// Package vote implements the voting ledger: one vote per (target, voter),
// with score deltas applied to the target author's running total in the same
// transaction as the vote row mutation.
package vote

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/forumhub/backend/domain"
	"github.com/forumhub/backend/repository"
)

type UseCase struct {
	tx            repository.Transactor
	users         repository.UserRepository
	questions     repository.QuestionRepository
	answers       repository.AnswerRepository
	questionVotes repository.QuestionVoteRepository
	answerVotes   repository.AnswerVoteRepository
	logger        *zap.Logger
}

func New(
	tx repository.Transactor,
	users repository.UserRepository,
	questions repository.QuestionRepository,
	answers repository.AnswerRepository,
	questionVotes repository.QuestionVoteRepository,
	answerVotes repository.AnswerVoteRepository,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tx:            tx,
		users:         users,
		questions:     questions,
		answers:       answers,
		questionVotes: questionVotes,
		answerVotes:   answerVotes,
		logger:        logger,
	}
}

// VoteQuestion casts, flips or retracts a vote on a question. A repeated vote
// with the same value is a retraction and returns a nil vote. The retraction
// reverses the author's delta but never the voter's downvote penalty.
func (uc *UseCase) VoteQuestion(ctx context.Context, questionID, voterID string, value int) (*domain.QuestionVote, error) {
	if !domain.ValidVoteValue(value) {
		return nil, domain.ErrInvalidVoteValue
	}

	var result *domain.QuestionVote
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		question, err := uc.questions.GetByID(ctx, questionID)
		if err != nil {
			return err
		}
		if _, err := uc.users.GetByID(ctx, voterID); err != nil {
			return err
		}
		if question.AuthorID == voterID {
			return domain.ErrSelfVote
		}

		existing, err := uc.questionVotes.GetByQuestionAndVoter(ctx, questionID, voterID)
		if err != nil && !errors.Is(err, repository.ErrNoQuestionVote) {
			return err
		}

		switch {
		case existing == nil:
			vote := &domain.QuestionVote{
				ID:         uuid.NewString(),
				QuestionID: questionID,
				VoterID:    voterID,
				Value:      value,
			}
			if _, err := uc.questionVotes.Create(ctx, vote); err != nil {
				return err
			}
			if err := uc.users.AdjustScore(ctx, question.AuthorID, domain.QuestionVoteDelta(value)); err != nil {
				return err
			}
			if penalty := domain.VoterPenalty(value); penalty != 0 {
				if err := uc.users.AdjustScore(ctx, voterID, penalty); err != nil {
					return err
				}
			}
			result = vote

		case existing.Value == value:
			// retraction: remove the vote and revert the author's delta
			if err := uc.questionVotes.Delete(ctx, existing.ID); err != nil {
				return err
			}
			if err := uc.users.AdjustScore(ctx, question.AuthorID, -domain.QuestionVoteDelta(existing.Value)); err != nil {
				return err
			}
			result = nil

		default:
			// flip: swap the stored value and move the author's score by the
			// difference, with no extra voter penalty
			delta := -domain.QuestionVoteDelta(existing.Value) + domain.QuestionVoteDelta(value)
			existing.Value = value
			if err := uc.questionVotes.Update(ctx, existing); err != nil {
				return err
			}
			if err := uc.users.AdjustScore(ctx, question.AuthorID, delta); err != nil {
				return err
			}
			result = existing
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Debug("question vote processed",
		zap.String("question_id", questionID),
		zap.String("voter_id", voterID),
		zap.Int("value", value),
		zap.Bool("retracted", result == nil),
	)
	return result, nil
}

// VoteAnswer is the answer-target counterpart of VoteQuestion.
func (uc *UseCase) VoteAnswer(ctx context.Context, answerID, voterID string, value int) (*domain.AnswerVote, error) {
	if !domain.ValidVoteValue(value) {
		return nil, domain.ErrInvalidVoteValue
	}

	var result *domain.AnswerVote
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		answer, err := uc.answers.GetByID(ctx, answerID)
		if err != nil {
			return err
		}
		if _, err := uc.users.GetByID(ctx, voterID); err != nil {
			return err
		}
		if answer.AuthorID == voterID {
			return domain.ErrSelfVote
		}

		existing, err := uc.answerVotes.GetByAnswerAndVoter(ctx, answerID, voterID)
		if err != nil && !errors.Is(err, repository.ErrNoAnswerVote) {
			return err
		}

		switch {
		case existing == nil:
			vote := &domain.AnswerVote{
				ID:       uuid.NewString(),
				AnswerID: answerID,
				VoterID:  voterID,
				Value:    value,
			}
			if _, err := uc.answerVotes.Create(ctx, vote); err != nil {
				return err
			}
			if err := uc.users.AdjustScore(ctx, answer.AuthorID, domain.AnswerVoteDelta(value)); err != nil {
				return err
			}
			if penalty := domain.VoterPenalty(value); penalty != 0 {
				if err := uc.users.AdjustScore(ctx, voterID, penalty); err != nil {
					return err
				}
			}
			result = vote

		case existing.Value == value:
			if err := uc.answerVotes.Delete(ctx, existing.ID); err != nil {
				return err
			}
			if err := uc.users.AdjustScore(ctx, answer.AuthorID, -domain.AnswerVoteDelta(existing.Value)); err != nil {
				return err
			}
			result = nil

		default:
			delta := -domain.AnswerVoteDelta(existing.Value) + domain.AnswerVoteDelta(value)
			existing.Value = value
			if err := uc.answerVotes.Update(ctx, existing); err != nil {
				return err
			}
			if err := uc.users.AdjustScore(ctx, answer.AuthorID, delta); err != nil {
				return err
			}
			result = existing
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Debug("answer vote processed",
		zap.String("answer_id", answerID),
		zap.String("voter_id", voterID),
		zap.Int("value", value),
		zap.Bool("retracted", result == nil),
	)
	return result, nil
}
