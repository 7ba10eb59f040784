package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/forumhub/backend/domain"
	"github.com/forumhub/backend/repository"
)

type tagRepository struct {
	pool *pgxpool.Pool
}

// NewTagRepository returns a Postgres-backed implementation of TagRepository.
func NewTagRepository(pool *pgxpool.Pool) repository.TagRepository {
	return &tagRepository{pool: pool}
}

func (r *tagRepository) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	row := db(ctx, r.pool).QueryRow(ctx, `SELECT id, name, created_at FROM tags WHERE name = $1`, name)
	return scanTag(row)
}

func (r *tagRepository) List(ctx context.Context) ([]domain.Tag, error) {
	rows, err := db(ctx, r.pool).Query(ctx, `SELECT id, name, created_at FROM tags ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTags(rows)
}

func (r *tagRepository) Create(ctx context.Context, tag *domain.Tag) (*domain.Tag, error) {
	if tag == nil || tag.Name == "" {
		return nil, domain.ErrInvalidPayload
	}

	// ON CONFLICT keeps the surrounding transaction usable when the name
	// already exists; a raised unique violation would abort it and make the
	// recovery SELECT fail with 25P02.
	const query = `INSERT INTO tags (id, name) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING RETURNING created_at`
	if err := db(ctx, r.pool).QueryRow(ctx, query, tag.ID, tag.Name).Scan(&tag.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// lost the race to another creator, fetch the winner
			return r.GetByName(ctx, tag.Name)
		}
		return nil, err
	}
	return tag, nil
}

func (r *tagRepository) ListForQuestion(ctx context.Context, questionID string) ([]domain.Tag, error) {
	const query = `
	SELECT t.id, t.name, t.created_at FROM tags t
	JOIN question_tags qt ON qt.tag_id = t.id
	WHERE qt.question_id = $1
	ORDER BY t.name
	`
	rows, err := db(ctx, r.pool).Query(ctx, query, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTags(rows)
}

func (r *tagRepository) Associate(ctx context.Context, questionID, tagID string) error {
	const query = `
	INSERT INTO question_tags (question_id, tag_id)
	VALUES ($1, $2)
	ON CONFLICT (question_id, tag_id) DO NOTHING
	`
	_, err := db(ctx, r.pool).Exec(ctx, query, questionID, tagID)
	return err
}

func (r *tagRepository) Dissociate(ctx context.Context, questionID, tagID string) error {
	_, err := db(ctx, r.pool).Exec(ctx,
		`DELETE FROM question_tags WHERE question_id = $1 AND tag_id = $2`, questionID, tagID)
	return err
}

func scanTag(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Tag, error) {
	var tag domain.Tag
	if err := row.Scan(&tag.ID, &tag.Name, &tag.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

func collectTags(rows pgx.Rows) ([]domain.Tag, error) {
	var tags []domain.Tag
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, rows.Err()
}
