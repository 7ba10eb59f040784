package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/forumhub/backend/domain"
	"github.com/forumhub/backend/repository"
)

type questionVoteRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionVoteRepository returns a Postgres-backed QuestionVoteRepository.
// The unique (question_id, voter_id) index makes concurrent duplicate votes
// fail instead of producing two rows; callers retry on the Conflict error.
func NewQuestionVoteRepository(pool *pgxpool.Pool) repository.QuestionVoteRepository {
	return &questionVoteRepository{pool: pool}
}

func (r *questionVoteRepository) GetByQuestionAndVoter(ctx context.Context, questionID, voterID string) (*domain.QuestionVote, error) {
	const query = `
	SELECT id, question_id, voter_id, value, created_at, updated_at
	FROM question_votes
	WHERE question_id = $1 AND voter_id = $2
	`
	var vote domain.QuestionVote
	if err := db(ctx, r.pool).QueryRow(ctx, query, questionID, voterID).Scan(
		&vote.ID, &vote.QuestionID, &vote.VoterID, &vote.Value, &vote.CreatedAt, &vote.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNoQuestionVote
		}
		return nil, err
	}
	return &vote, nil
}

func (r *questionVoteRepository) Create(ctx context.Context, vote *domain.QuestionVote) (*domain.QuestionVote, error) {
	if vote == nil {
		return nil, domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO question_votes (id, question_id, voter_id, value)
	VALUES ($1, $2, $3, $4)
	RETURNING created_at, updated_at
	`
	if err := db(ctx, r.pool).QueryRow(ctx, query,
		vote.ID, vote.QuestionID, vote.VoterID, vote.Value,
	).Scan(&vote.CreatedAt, &vote.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrVoteConflict
		}
		return nil, err
	}
	return vote, nil
}

func (r *questionVoteRepository) Update(ctx context.Context, vote *domain.QuestionVote) error {
	if vote == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE question_votes SET value = $2, updated_at = NOW() WHERE id = $1
	RETURNING updated_at
	`
	if err := db(ctx, r.pool).QueryRow(ctx, query, vote.ID, vote.Value).Scan(&vote.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNoQuestionVote
		}
		return err
	}
	return nil
}

func (r *questionVoteRepository) Delete(ctx context.Context, id string) error {
	tag, err := db(ctx, r.pool).Exec(ctx, `DELETE FROM question_votes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNoQuestionVote
	}
	return nil
}

func (r *questionVoteRepository) DeleteByVoter(ctx context.Context, voterID string) error {
	_, err := db(ctx, r.pool).Exec(ctx, `DELETE FROM question_votes WHERE voter_id = $1`, voterID)
	return err
}

type answerVoteRepository struct {
	pool *pgxpool.Pool
}

// NewAnswerVoteRepository returns a Postgres-backed AnswerVoteRepository.
func NewAnswerVoteRepository(pool *pgxpool.Pool) repository.AnswerVoteRepository {
	return &answerVoteRepository{pool: pool}
}

func (r *answerVoteRepository) GetByAnswerAndVoter(ctx context.Context, answerID, voterID string) (*domain.AnswerVote, error) {
	const query = `
	SELECT id, answer_id, voter_id, value, created_at, updated_at
	FROM answer_votes
	WHERE answer_id = $1 AND voter_id = $2
	`
	var vote domain.AnswerVote
	if err := db(ctx, r.pool).QueryRow(ctx, query, answerID, voterID).Scan(
		&vote.ID, &vote.AnswerID, &vote.VoterID, &vote.Value, &vote.CreatedAt, &vote.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNoAnswerVote
		}
		return nil, err
	}
	return &vote, nil
}

func (r *answerVoteRepository) Create(ctx context.Context, vote *domain.AnswerVote) (*domain.AnswerVote, error) {
	if vote == nil {
		return nil, domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO answer_votes (id, answer_id, voter_id, value)
	VALUES ($1, $2, $3, $4)
	RETURNING created_at, updated_at
	`
	if err := db(ctx, r.pool).QueryRow(ctx, query,
		vote.ID, vote.AnswerID, vote.VoterID, vote.Value,
	).Scan(&vote.CreatedAt, &vote.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrVoteConflict
		}
		return nil, err
	}
	return vote, nil
}

func (r *answerVoteRepository) Update(ctx context.Context, vote *domain.AnswerVote) error {
	if vote == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE answer_votes SET value = $2, updated_at = NOW() WHERE id = $1
	RETURNING updated_at
	`
	if err := db(ctx, r.pool).QueryRow(ctx, query, vote.ID, vote.Value).Scan(&vote.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNoAnswerVote
		}
		return err
	}
	return nil
}

func (r *answerVoteRepository) Delete(ctx context.Context, id string) error {
	tag, err := db(ctx, r.pool).Exec(ctx, `DELETE FROM answer_votes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNoAnswerVote
	}
	return nil
}

func (r *answerVoteRepository) DeleteByVoter(ctx context.Context, voterID string) error {
	_, err := db(ctx, r.pool).Exec(ctx, `DELETE FROM answer_votes WHERE voter_id = $1`, voterID)
	return err
}
