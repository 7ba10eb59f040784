package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/forumhub/backend/domain"
	"github.com/forumhub/backend/repository"
)

type questionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository returns a Postgres-backed implementation of QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) repository.QuestionRepository {
	return &questionRepository{pool: pool}
}

const questionColumns = `id, author_id, title, text, status, accepted_answer_id, picture, created_at, updated_at`

func (r *questionRepository) GetByID(ctx context.Context, id string) (*domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = $1`
	return scanQuestion(db(ctx, r.pool).QueryRow(ctx, query, id))
}

func (r *questionRepository) List(ctx context.Context) ([]domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions ORDER BY created_at DESC`
	return r.queryMany(ctx, query)
}

func (r *questionRepository) ListByAuthor(ctx context.Context, authorID string) ([]domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE author_id = $1 ORDER BY created_at DESC`
	return r.queryMany(ctx, query, authorID)
}

func (r *questionRepository) ListByTagName(ctx context.Context, tagName string) ([]domain.Question, error) {
	query := `
	SELECT ` + questionColumns + ` FROM questions q
	JOIN question_tags qt ON qt.question_id = q.id
	JOIN tags t ON t.id = qt.tag_id
	WHERE t.name = $1
	ORDER BY q.created_at DESC
	`
	return r.queryMany(ctx, query, tagName)
}

func (r *questionRepository) ListByAcceptedAnswerIDs(ctx context.Context, answerIDs []string) ([]domain.Question, error) {
	if len(answerIDs) == 0 {
		return nil, nil
	}
	query := `SELECT ` + questionColumns + ` FROM questions WHERE accepted_answer_id = ANY($1)`
	return r.queryMany(ctx, query, answerIDs)
}

func (r *questionRepository) SearchByTitle(ctx context.Context, title string) ([]domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE title ILIKE '%' || $1 || '%' ORDER BY created_at DESC`
	return r.queryMany(ctx, query, title)
}

func (r *questionRepository) Create(ctx context.Context, question *domain.Question) (*domain.Question, error) {
	if question == nil {
		return nil, domain.ErrInvalidPayload
	}
	if question.Status == "" {
		question.Status = domain.StatusReceived
	}

	const query = `
	INSERT INTO questions (id, author_id, title, text, status, accepted_answer_id, picture)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING created_at, updated_at
	`
	if err := db(ctx, r.pool).QueryRow(ctx, query,
		question.ID,
		question.AuthorID,
		question.Title,
		question.Text,
		question.Status,
		question.AcceptedAnswerID,
		question.Picture,
	).Scan(&question.CreatedAt, &question.UpdatedAt); err != nil {
		return nil, err
	}
	return question, nil
}

func (r *questionRepository) Update(ctx context.Context, question *domain.Question) error {
	if question == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE questions
	SET title = $2,
		text = $3,
		status = $4,
		accepted_answer_id = $5,
		picture = $6,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := db(ctx, r.pool).QueryRow(ctx, query,
		question.ID,
		question.Title,
		question.Text,
		question.Status,
		question.AcceptedAnswerID,
		question.Picture,
	).Scan(&question.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrQuestionNotFound
		}
		return err
	}
	return nil
}

func (r *questionRepository) Delete(ctx context.Context, id string) error {
	tag, err := db(ctx, r.pool).Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrQuestionNotFound
	}
	return nil
}

func (r *questionRepository) DeleteByAuthor(ctx context.Context, authorID string) error {
	_, err := db(ctx, r.pool).Exec(ctx, `DELETE FROM questions WHERE author_id = $1`, authorID)
	return err
}

func (r *questionRepository) queryMany(ctx context.Context, query string, args ...any) ([]domain.Question, error) {
	rows, err := db(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		question, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *question)
	}
	return questions, rows.Err()
}

func scanQuestion(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Question, error) {
	var question domain.Question
	if err := row.Scan(
		&question.ID,
		&question.AuthorID,
		&question.Title,
		&question.Text,
		&question.Status,
		&question.AcceptedAnswerID,
		&question.Picture,
		&question.CreatedAt,
		&question.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, err
	}
	return &question, nil
}
