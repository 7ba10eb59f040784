package question

import (
	"context"
	"errors"
	"testing"

	"github.com/forumhub/backend/domain"
	"github.com/forumhub/backend/repository/memory"
)

func newFixture() (*UseCase, *memory.Store) {
	store := memory.NewStore()
	uc := New(
		memory.NewTransactor(store),
		memory.NewQuestionRepository(store),
		memory.NewAnswerRepository(store),
		memory.NewUserRepository(store),
		memory.NewTagRepository(store),
		nil,
		nil,
	)
	return uc, store
}

func seedUser(t *testing.T, store *memory.Store, id string, banned bool) {
	t.Helper()
	if _, err := memory.NewUserRepository(store).Create(context.Background(), &domain.User{
		ID:       id,
		Username: id,
		Email:    id + "@forumhub.dev",
		IsBanned: banned,
		Role:     domain.RoleUser,
	}); err != nil {
		t.Fatalf("seed user %s: %v", id, err)
	}
}

func TestCreateQuestion(t *testing.T) {
	uc, store := newFixture()
	seedUser(t, store, "alice", false)

	ctx := context.Background()
	question, err := uc.CreateQuestion(ctx, "alice", &domain.Question{
		Title: "why is my goroutine leaking",
		Text:  "details inside",
	}, []string{"go", "concurrency"})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	if question.ID == "" {
		t.Error("expected a generated id")
	}
	if question.Status != domain.StatusReceived {
		t.Errorf("status = %s, want RECEIVED", question.Status)
	}
	if question.AcceptedAnswerID != nil {
		t.Error("new question must have no accepted answer")
	}

	tags, err := memory.NewTagRepository(store).ListForQuestion(ctx, question.ID)
	if err != nil {
		t.Fatalf("ListForQuestion: %v", err)
	}
	if len(tags) != 2 {
		t.Errorf("attached tags = %d, want 2", len(tags))
	}
}

func TestCreateQuestionReusesExistingTag(t *testing.T) {
	uc, store := newFixture()
	seedUser(t, store, "alice", false)
	seedUser(t, store, "bob", false)

	ctx := context.Background()
	if _, err := uc.CreateQuestion(ctx, "alice", &domain.Question{Title: "one"}, []string{"go"}); err != nil {
		t.Fatalf("first question: %v", err)
	}
	if _, err := uc.CreateQuestion(ctx, "bob", &domain.Question{Title: "two"}, []string{"go"}); err != nil {
		t.Fatalf("second question: %v", err)
	}

	tags, err := memory.NewTagRepository(store).List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tags) != 1 {
		t.Errorf("tag count = %d, want 1", len(tags))
	}

	byTag, err := uc.ListByTag(ctx, "go")
	if err != nil {
		t.Fatalf("ListByTag: %v", err)
	}
	if len(byTag) != 2 {
		t.Errorf("questions tagged go = %d, want 2", len(byTag))
	}
}

func TestCreateQuestionBannedAuthor(t *testing.T) {
	uc, store := newFixture()
	seedUser(t, store, "troll", true)

	_, err := uc.CreateQuestion(context.Background(), "troll", &domain.Question{Title: "x"}, nil)
	if !errors.Is(err, domain.ErrUserBanned) {
		t.Errorf("err = %v, want ErrUserBanned", err)
	}
}

func TestUpdateQuestionKeepsLifecycleFields(t *testing.T) {
	uc, store := newFixture()
	seedUser(t, store, "alice", false)
	seedUser(t, store, "bob", false)

	ctx := context.Background()
	question, err := uc.CreateQuestion(ctx, "alice", &domain.Question{Title: "old"}, nil)
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}

	answers := memory.NewAnswerRepository(store)
	if _, err := answers.Create(ctx, &domain.Answer{ID: "a1", QuestionID: question.ID, AuthorID: "bob", Text: "hi"}); err != nil {
		t.Fatalf("seed answer: %v", err)
	}
	if _, err := uc.AcceptAnswer(ctx, question.ID, "a1", "alice"); err != nil {
		t.Fatalf("AcceptAnswer: %v", err)
	}

	updated, err := uc.UpdateQuestion(ctx, question.ID, &domain.Question{Title: "new", Text: "body"})
	if err != nil {
		t.Fatalf("UpdateQuestion: %v", err)
	}
	if updated.Title != "new" || updated.Text != "body" {
		t.Errorf("updated = %+v", updated)
	}
	if updated.Status != domain.StatusSolved || !updated.HasAccepted("a1") {
		t.Error("editing must not touch status or the accepted answer")
	}
}

func TestAcceptAnswer(t *testing.T) {
	uc, store := newFixture()
	seedUser(t, store, "alice", false)
	seedUser(t, store, "bob", false)

	ctx := context.Background()
	question, err := uc.CreateQuestion(ctx, "alice", &domain.Question{Title: "q"}, nil)
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	answers := memory.NewAnswerRepository(store)
	for _, id := range []string{"a1", "a2"} {
		if _, err := answers.Create(ctx, &domain.Answer{ID: id, QuestionID: question.ID, AuthorID: "bob", Text: id}); err != nil {
			t.Fatalf("seed answer %s: %v", id, err)
		}
	}

	solved, err := uc.AcceptAnswer(ctx, question.ID, "a1", "alice")
	if err != nil {
		t.Fatalf("AcceptAnswer: %v", err)
	}
	if solved.Status != domain.StatusSolved || !solved.HasAccepted("a1") {
		t.Fatalf("solved = %+v", solved)
	}

	// Accepting a different answer later replaces the pointer.
	replaced, err := uc.AcceptAnswer(ctx, question.ID, "a2", "alice")
	if err != nil {
		t.Fatalf("second accept: %v", err)
	}
	if !replaced.HasAccepted("a2") {
		t.Errorf("accepted = %v, want a2", *replaced.AcceptedAnswerID)
	}
}

func TestAcceptAnswerOnlyAuthor(t *testing.T) {
	uc, store := newFixture()
	seedUser(t, store, "alice", false)
	seedUser(t, store, "bob", false)

	ctx := context.Background()
	question, err := uc.CreateQuestion(ctx, "alice", &domain.Question{Title: "q"}, nil)
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	if _, err := memory.NewAnswerRepository(store).Create(ctx, &domain.Answer{ID: "a1", QuestionID: question.ID, AuthorID: "bob", Text: "x"}); err != nil {
		t.Fatalf("seed answer: %v", err)
	}

	if _, err := uc.AcceptAnswer(ctx, question.ID, "a1", "bob"); !errors.Is(err, domain.ErrNotQuestionAuthor) {
		t.Errorf("err = %v, want ErrNotQuestionAuthor", err)
	}
}

func TestAcceptAnswerWrongQuestion(t *testing.T) {
	uc, store := newFixture()
	seedUser(t, store, "alice", false)
	seedUser(t, store, "bob", false)

	ctx := context.Background()
	q1, err := uc.CreateQuestion(ctx, "alice", &domain.Question{Title: "one"}, nil)
	if err != nil {
		t.Fatalf("q1: %v", err)
	}
	q2, err := uc.CreateQuestion(ctx, "alice", &domain.Question{Title: "two"}, nil)
	if err != nil {
		t.Fatalf("q2: %v", err)
	}
	if _, err := memory.NewAnswerRepository(store).Create(ctx, &domain.Answer{ID: "a1", QuestionID: q2.ID, AuthorID: "bob", Text: "x"}); err != nil {
		t.Fatalf("seed answer: %v", err)
	}

	if _, err := uc.AcceptAnswer(ctx, q1.ID, "a1", "alice"); !errors.Is(err, domain.ErrAnswerMismatch) {
		t.Errorf("err = %v, want ErrAnswerMismatch", err)
	}

	// The failed transaction must not leave a partial status change behind.
	got, err := uc.GetQuestion(ctx, q1.ID)
	if err != nil {
		t.Fatalf("GetQuestion: %v", err)
	}
	if got.Status != domain.StatusReceived || got.AcceptedAnswerID != nil {
		t.Errorf("q1 after failed accept = %+v", got)
	}
}

func TestDeleteQuestionCascades(t *testing.T) {
	uc, store := newFixture()
	seedUser(t, store, "alice", false)
	seedUser(t, store, "bob", false)

	ctx := context.Background()
	question, err := uc.CreateQuestion(ctx, "alice", &domain.Question{Title: "q"}, []string{"go"})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	answers := memory.NewAnswerRepository(store)
	if _, err := answers.Create(ctx, &domain.Answer{ID: "a1", QuestionID: question.ID, AuthorID: "bob", Text: "x"}); err != nil {
		t.Fatalf("seed answer: %v", err)
	}

	if err := uc.DeleteQuestion(ctx, question.ID); err != nil {
		t.Fatalf("DeleteQuestion: %v", err)
	}
	if _, err := uc.GetQuestion(ctx, question.ID); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Errorf("get deleted: err = %v, want not found", err)
	}
	if _, err := answers.GetByID(ctx, "a1"); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Errorf("answer survived the cascade: %v", err)
	}
}

func TestSearchByTitle(t *testing.T) {
	uc, store := newFixture()
	seedUser(t, store, "alice", false)

	ctx := context.Background()
	for _, title := range []string{"Goroutine leak", "Channel deadlock", "generics and goroutines"} {
		if _, err := uc.CreateQuestion(ctx, "alice", &domain.Question{Title: title}, nil); err != nil {
			t.Fatalf("create %q: %v", title, err)
		}
	}

	found, err := uc.SearchByTitle(ctx, "goroutine")
	if err != nil {
		t.Fatalf("SearchByTitle: %v", err)
	}
	if len(found) != 2 {
		t.Errorf("matches = %d, want 2", len(found))
	}
}
