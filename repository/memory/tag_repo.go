package memory

import (
	"context"
	"sort"

	"github.com/forumhub/backend/domain"
	"github.com/forumhub/backend/repository"
)

type tagRepository struct {
	store *Store
}

func NewTagRepository(store *Store) repository.TagRepository {
	return &tagRepository{store: store}
}

func (r *tagRepository) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	defer r.store.lock(ctx)()
	for _, tag := range r.store.tags {
		if tag.Name == name {
			return &tag, nil
		}
	}
	return nil, domain.ErrTagNotFound
}

func (r *tagRepository) List(ctx context.Context) ([]domain.Tag, error) {
	defer r.store.lock(ctx)()
	tags := make([]domain.Tag, 0, len(r.store.tags))
	for _, tag := range r.store.tags {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, nil
}

func (r *tagRepository) Create(ctx context.Context, tag *domain.Tag) (*domain.Tag, error) {
	if tag == nil || tag.Name == "" {
		return nil, domain.ErrInvalidPayload
	}
	defer r.store.lock(ctx)()

	for _, existing := range r.store.tags {
		if existing.Name == tag.Name {
			return &existing, nil
		}
	}
	tag.CreatedAt = now()
	r.store.tags[tag.ID] = *tag
	return tag, nil
}

func (r *tagRepository) ListForQuestion(ctx context.Context, questionID string) ([]domain.Tag, error) {
	defer r.store.lock(ctx)()
	var tags []domain.Tag
	for _, link := range r.store.questionTags {
		if link.QuestionID == questionID {
			if tag, ok := r.store.tags[link.TagID]; ok {
				tags = append(tags, tag)
			}
		}
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, nil
}

func (r *tagRepository) Associate(ctx context.Context, questionID, tagID string) error {
	defer r.store.lock(ctx)()
	r.store.questionTags[linkKey(questionID, tagID)] = domain.QuestionTag{
		QuestionID: questionID,
		TagID:      tagID,
	}
	return nil
}

func (r *tagRepository) Dissociate(ctx context.Context, questionID, tagID string) error {
	defer r.store.lock(ctx)()
	delete(r.store.questionTags, linkKey(questionID, tagID))
	return nil
}
