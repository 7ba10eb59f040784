package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/forumhub/backend/domain"
	"github.com/forumhub/backend/repository"
)

type answerRepository struct {
	pool *pgxpool.Pool
}

// NewAnswerRepository returns a Postgres-backed implementation of AnswerRepository.
func NewAnswerRepository(pool *pgxpool.Pool) repository.AnswerRepository {
	return &answerRepository{pool: pool}
}

const answerColumns = `id, question_id, author_id, text, picture, created_at, updated_at`

func (r *answerRepository) GetByID(ctx context.Context, id string) (*domain.Answer, error) {
	query := `SELECT ` + answerColumns + ` FROM answers WHERE id = $1`
	return scanAnswer(db(ctx, r.pool).QueryRow(ctx, query, id))
}

func (r *answerRepository) List(ctx context.Context) ([]domain.Answer, error) {
	query := `SELECT ` + answerColumns + ` FROM answers ORDER BY created_at DESC`
	return r.queryMany(ctx, query)
}

func (r *answerRepository) ListByQuestion(ctx context.Context, questionID string) ([]domain.Answer, error) {
	query := `SELECT ` + answerColumns + ` FROM answers WHERE question_id = $1 ORDER BY created_at DESC`
	return r.queryMany(ctx, query, questionID)
}

func (r *answerRepository) ListByAuthor(ctx context.Context, authorID string) ([]domain.Answer, error) {
	query := `SELECT ` + answerColumns + ` FROM answers WHERE author_id = $1 ORDER BY created_at DESC`
	return r.queryMany(ctx, query, authorID)
}

func (r *answerRepository) Create(ctx context.Context, answer *domain.Answer) (*domain.Answer, error) {
	if answer == nil {
		return nil, domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO answers (id, question_id, author_id, text, picture)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at, updated_at
	`
	if err := db(ctx, r.pool).QueryRow(ctx, query,
		answer.ID,
		answer.QuestionID,
		answer.AuthorID,
		answer.Text,
		answer.Picture,
	).Scan(&answer.CreatedAt, &answer.UpdatedAt); err != nil {
		return nil, err
	}
	return answer, nil
}

func (r *answerRepository) Update(ctx context.Context, answer *domain.Answer) error {
	if answer == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE answers
	SET text = $2,
		picture = $3,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := db(ctx, r.pool).QueryRow(ctx, query,
		answer.ID,
		answer.Text,
		answer.Picture,
	).Scan(&answer.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrAnswerNotFound
		}
		return err
	}
	return nil
}

func (r *answerRepository) Delete(ctx context.Context, id string) error {
	tag, err := db(ctx, r.pool).Exec(ctx, `DELETE FROM answers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAnswerNotFound
	}
	return nil
}

func (r *answerRepository) DeleteByAuthor(ctx context.Context, authorID string) error {
	_, err := db(ctx, r.pool).Exec(ctx, `DELETE FROM answers WHERE author_id = $1`, authorID)
	return err
}

func (r *answerRepository) queryMany(ctx context.Context, query string, args ...any) ([]domain.Answer, error) {
	rows, err := db(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []domain.Answer
	for rows.Next() {
		answer, err := scanAnswer(rows)
		if err != nil {
			return nil, err
		}
		answers = append(answers, *answer)
	}
	return answers, rows.Err()
}

func scanAnswer(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Answer, error) {
	var answer domain.Answer
	if err := row.Scan(
		&answer.ID,
		&answer.QuestionID,
		&answer.AuthorID,
		&answer.Text,
		&answer.Picture,
		&answer.CreatedAt,
		&answer.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAnswerNotFound
		}
		return nil, err
	}
	return &answer, nil
}
