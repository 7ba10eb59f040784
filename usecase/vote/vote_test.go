package vote

import (
	"context"
	"errors"
	"testing"

	"github.com/forumhub/backend/domain"
	"github.com/forumhub/backend/repository"
	"github.com/forumhub/backend/repository/memory"
)

func newFixture(t *testing.T) (*UseCase, *memory.Store, func(id string) float64) {
	t.Helper()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	questions := memory.NewQuestionRepository(store)
	answers := memory.NewAnswerRepository(store)
	questionVotes := memory.NewQuestionVoteRepository(store)
	answerVotes := memory.NewAnswerVoteRepository(store)

	uc := New(memory.NewTransactor(store), users, questions, answers, questionVotes, answerVotes, nil)

	score := func(id string) float64 {
		user, err := users.GetByID(context.Background(), id)
		if err != nil {
			t.Fatalf("score lookup for %s: %v", id, err)
		}
		return user.Score
	}
	return uc, store, score
}

func seedUser(t *testing.T, store *memory.Store, id string) {
	t.Helper()
	users := memory.NewUserRepository(store)
	if _, err := users.Create(context.Background(), &domain.User{
		ID:       id,
		Username: id,
		Email:    id + "@forumhub.dev",
		Role:     domain.RoleUser,
	}); err != nil {
		t.Fatalf("seed user %s: %v", id, err)
	}
}

func seedQuestion(t *testing.T, store *memory.Store, id, authorID string) {
	t.Helper()
	questions := memory.NewQuestionRepository(store)
	if _, err := questions.Create(context.Background(), &domain.Question{
		ID:       id,
		AuthorID: authorID,
		Title:    "how to test",
		Status:   domain.StatusReceived,
	}); err != nil {
		t.Fatalf("seed question %s: %v", id, err)
	}
}

func seedAnswer(t *testing.T, store *memory.Store, id, questionID, authorID string) {
	t.Helper()
	answers := memory.NewAnswerRepository(store)
	if _, err := answers.Create(context.Background(), &domain.Answer{
		ID:         id,
		QuestionID: questionID,
		AuthorID:   authorID,
		Text:       "like this",
	}); err != nil {
		t.Fatalf("seed answer %s: %v", id, err)
	}
}

func TestVoteQuestionUpvote(t *testing.T) {
	uc, store, score := newFixture(t)
	seedUser(t, store, "author")
	seedUser(t, store, "voter")
	seedQuestion(t, store, "q1", "author")

	vote, err := uc.VoteQuestion(context.Background(), "q1", "voter", domain.VoteUp)
	if err != nil {
		t.Fatalf("VoteQuestion: %v", err)
	}
	if vote == nil || vote.Value != domain.VoteUp {
		t.Fatalf("vote = %+v, want value %d", vote, domain.VoteUp)
	}
	if got := score("author"); got != 2.5 {
		t.Errorf("author score = %v, want 2.5", got)
	}
	if got := score("voter"); got != 0 {
		t.Errorf("voter score = %v, want 0", got)
	}
}

func TestVoteQuestionDownvotePenalizesVoter(t *testing.T) {
	uc, store, score := newFixture(t)
	seedUser(t, store, "author")
	seedUser(t, store, "voter")
	seedQuestion(t, store, "q1", "author")

	if _, err := uc.VoteQuestion(context.Background(), "q1", "voter", domain.VoteDown); err != nil {
		t.Fatalf("VoteQuestion: %v", err)
	}
	if got := score("author"); got != -1.5 {
		t.Errorf("author score = %v, want -1.5", got)
	}
	if got := score("voter"); got != -1.5 {
		t.Errorf("voter score = %v, want -1.5", got)
	}
}

func TestVoteQuestionRetractionKeepsPenalty(t *testing.T) {
	uc, store, score := newFixture(t)
	seedUser(t, store, "author")
	seedUser(t, store, "voter")
	seedQuestion(t, store, "q1", "author")

	ctx := context.Background()
	if _, err := uc.VoteQuestion(ctx, "q1", "voter", domain.VoteDown); err != nil {
		t.Fatalf("first vote: %v", err)
	}
	retracted, err := uc.VoteQuestion(ctx, "q1", "voter", domain.VoteDown)
	if err != nil {
		t.Fatalf("retraction: %v", err)
	}
	if retracted != nil {
		t.Fatalf("retraction returned %+v, want nil", retracted)
	}
	// The author's delta is reverted, the voter's penalty is not.
	if got := score("author"); got != 0 {
		t.Errorf("author score = %v, want 0", got)
	}
	if got := score("voter"); got != -1.5 {
		t.Errorf("voter score = %v, want -1.5", got)
	}
}

func TestVoteQuestionFlipDownToUp(t *testing.T) {
	uc, store, score := newFixture(t)
	seedUser(t, store, "author")
	seedUser(t, store, "voter")
	seedQuestion(t, store, "q1", "author")

	ctx := context.Background()
	if _, err := uc.VoteQuestion(ctx, "q1", "voter", domain.VoteDown); err != nil {
		t.Fatalf("first vote: %v", err)
	}
	flipped, err := uc.VoteQuestion(ctx, "q1", "voter", domain.VoteUp)
	if err != nil {
		t.Fatalf("flip: %v", err)
	}
	if flipped == nil || flipped.Value != domain.VoteUp {
		t.Fatalf("flipped vote = %+v, want up", flipped)
	}
	// -(-1.5) + 2.5 applied on top of the original -1.5.
	if got := score("author"); got != 2.5 {
		t.Errorf("author score = %v, want 2.5", got)
	}
	// The penalty from the original downvote stays.
	if got := score("voter"); got != -1.5 {
		t.Errorf("voter score = %v, want -1.5", got)
	}
}

func TestVoteQuestionFlipUpToDownAddsNoPenalty(t *testing.T) {
	uc, store, score := newFixture(t)
	seedUser(t, store, "author")
	seedUser(t, store, "voter")
	seedQuestion(t, store, "q1", "author")

	ctx := context.Background()
	if _, err := uc.VoteQuestion(ctx, "q1", "voter", domain.VoteUp); err != nil {
		t.Fatalf("first vote: %v", err)
	}
	if _, err := uc.VoteQuestion(ctx, "q1", "voter", domain.VoteDown); err != nil {
		t.Fatalf("flip: %v", err)
	}
	if got := score("author"); got != -1.5 {
		t.Errorf("author score = %v, want -1.5", got)
	}
	// Flipping onto a downvote is not a first-time downvote.
	if got := score("voter"); got != 0 {
		t.Errorf("voter score = %v, want 0", got)
	}
}

// Down, retract, down again: the penalty applies on each fresh downvote
// creation, so the voter ends at -3.0 while the author is back to -1.5.
func TestVoteQuestionRepeatedDownvoteCycle(t *testing.T) {
	uc, store, score := newFixture(t)
	seedUser(t, store, "author")
	seedUser(t, store, "voter")
	seedQuestion(t, store, "q1", "author")

	ctx := context.Background()
	for _, value := range []int{domain.VoteDown, domain.VoteDown, domain.VoteDown} {
		if _, err := uc.VoteQuestion(ctx, "q1", "voter", value); err != nil {
			t.Fatalf("vote: %v", err)
		}
	}
	if got := score("author"); got != -1.5 {
		t.Errorf("author score = %v, want -1.5", got)
	}
	if got := score("voter"); got != -3.0 {
		t.Errorf("voter score = %v, want -3.0", got)
	}
}

func TestVoteAnswerUpvote(t *testing.T) {
	uc, store, score := newFixture(t)
	seedUser(t, store, "asker")
	seedUser(t, store, "answerer")
	seedUser(t, store, "voter")
	seedQuestion(t, store, "q1", "asker")
	seedAnswer(t, store, "a1", "q1", "answerer")

	vote, err := uc.VoteAnswer(context.Background(), "a1", "voter", domain.VoteUp)
	if err != nil {
		t.Fatalf("VoteAnswer: %v", err)
	}
	if vote == nil || vote.AnswerID != "a1" {
		t.Fatalf("vote = %+v", vote)
	}
	if got := score("answerer"); got != 5.0 {
		t.Errorf("answerer score = %v, want 5.0", got)
	}
}

func TestVoteAnswerFlipUpToDown(t *testing.T) {
	uc, store, score := newFixture(t)
	seedUser(t, store, "asker")
	seedUser(t, store, "answerer")
	seedUser(t, store, "voter")
	seedQuestion(t, store, "q1", "asker")
	seedAnswer(t, store, "a1", "q1", "answerer")

	ctx := context.Background()
	if _, err := uc.VoteAnswer(ctx, "a1", "voter", domain.VoteUp); err != nil {
		t.Fatalf("first vote: %v", err)
	}
	if _, err := uc.VoteAnswer(ctx, "a1", "voter", domain.VoteDown); err != nil {
		t.Fatalf("flip: %v", err)
	}
	// 5.0 then -5.0 - 2.5.
	if got := score("answerer"); got != -2.5 {
		t.Errorf("answerer score = %v, want -2.5", got)
	}
	if got := score("voter"); got != 0 {
		t.Errorf("voter score = %v, want 0", got)
	}
}

func TestVoteAnswerRetractionKeepsPenalty(t *testing.T) {
	uc, store, score := newFixture(t)
	seedUser(t, store, "asker")
	seedUser(t, store, "answerer")
	seedUser(t, store, "voter")
	seedQuestion(t, store, "q1", "asker")
	seedAnswer(t, store, "a1", "q1", "answerer")

	ctx := context.Background()
	if _, err := uc.VoteAnswer(ctx, "a1", "voter", domain.VoteDown); err != nil {
		t.Fatalf("first vote: %v", err)
	}
	retracted, err := uc.VoteAnswer(ctx, "a1", "voter", domain.VoteDown)
	if err != nil {
		t.Fatalf("retraction: %v", err)
	}
	if retracted != nil {
		t.Fatalf("retraction returned %+v, want nil", retracted)
	}
	if got := score("answerer"); got != 0 {
		t.Errorf("answerer score = %v, want 0", got)
	}
	if got := score("voter"); got != -1.5 {
		t.Errorf("voter score = %v, want -1.5", got)
	}
}

func TestVoteSelfVoteRejected(t *testing.T) {
	uc, store, _ := newFixture(t)
	seedUser(t, store, "author")
	seedQuestion(t, store, "q1", "author")
	seedAnswer(t, store, "a1", "q1", "author")

	ctx := context.Background()
	if _, err := uc.VoteQuestion(ctx, "q1", "author", domain.VoteUp); !errors.Is(err, domain.ErrSelfVote) {
		t.Errorf("question self-vote err = %v, want ErrSelfVote", err)
	}
	if _, err := uc.VoteAnswer(ctx, "a1", "author", domain.VoteUp); !errors.Is(err, domain.ErrSelfVote) {
		t.Errorf("answer self-vote err = %v, want ErrSelfVote", err)
	}
}

func TestVoteInvalidValue(t *testing.T) {
	uc, store, _ := newFixture(t)
	seedUser(t, store, "author")
	seedUser(t, store, "voter")
	seedQuestion(t, store, "q1", "author")

	for _, value := range []int{0, 2, -3} {
		if _, err := uc.VoteQuestion(context.Background(), "q1", "voter", value); !errors.Is(err, domain.ErrInvalidVoteValue) {
			t.Errorf("value %d: err = %v, want ErrInvalidVoteValue", value, err)
		}
	}
}

func TestVoteUnknownTargets(t *testing.T) {
	uc, store, _ := newFixture(t)
	seedUser(t, store, "voter")

	ctx := context.Background()
	if _, err := uc.VoteQuestion(ctx, "missing", "voter", domain.VoteUp); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Errorf("question err = %v, want not found", err)
	}
	if _, err := uc.VoteAnswer(ctx, "missing", "voter", domain.VoteUp); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Errorf("answer err = %v, want not found", err)
	}

	seedUser(t, store, "author")
	seedQuestion(t, store, "q1", "author")
	if _, err := uc.VoteQuestion(ctx, "q1", "ghost", domain.VoteUp); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Errorf("voter err = %v, want not found", err)
	}
}

// staleReadVoteRepo answers "no vote" on lookup even when a row exists, the
// way a concurrent request sees the table before the other insert commits.
type staleReadVoteRepo struct {
	repository.QuestionVoteRepository
}

func (r *staleReadVoteRepo) GetByQuestionAndVoter(ctx context.Context, questionID, voterID string) (*domain.QuestionVote, error) {
	return nil, repository.ErrNoQuestionVote
}

// A duplicate insert racing past the lookup must surface the conflict so the
// caller can retry, and the losing transaction must not move any score.
func TestVoteQuestionConcurrentDuplicateConflicts(t *testing.T) {
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	questionVotes := memory.NewQuestionVoteRepository(store)
	uc := New(
		memory.NewTransactor(store),
		users,
		memory.NewQuestionRepository(store),
		memory.NewAnswerRepository(store),
		&staleReadVoteRepo{QuestionVoteRepository: questionVotes},
		memory.NewAnswerVoteRepository(store),
		nil,
	)
	seedUser(t, store, "author")
	seedUser(t, store, "voter")
	seedQuestion(t, store, "q1", "author")

	ctx := context.Background()
	if _, err := questionVotes.Create(ctx, &domain.QuestionVote{
		ID:         "v1",
		QuestionID: "q1",
		VoterID:    "voter",
		Value:      domain.VoteUp,
	}); err != nil {
		t.Fatalf("seed vote: %v", err)
	}

	if _, err := uc.VoteQuestion(ctx, "q1", "voter", domain.VoteUp); !errors.Is(err, domain.ErrVoteConflict) {
		t.Fatalf("err = %v, want ErrVoteConflict", err)
	}

	author, err := users.GetByID(ctx, "author")
	if err != nil {
		t.Fatalf("author lookup: %v", err)
	}
	if author.Score != 0 {
		t.Errorf("author score = %v, want 0 after rollback", author.Score)
	}
}

// Two voters on the same answer: an upvote and a downvote net the answerer
// +2.5 while each voter carries only their own penalty.
func TestVoteAnswerMixedVoters(t *testing.T) {
	uc, store, score := newFixture(t)
	seedUser(t, store, "asker")
	seedUser(t, store, "answerer")
	seedUser(t, store, "fan")
	seedUser(t, store, "critic")
	seedQuestion(t, store, "q1", "asker")
	seedAnswer(t, store, "a1", "q1", "answerer")

	ctx := context.Background()
	if _, err := uc.VoteAnswer(ctx, "a1", "fan", domain.VoteUp); err != nil {
		t.Fatalf("fan vote: %v", err)
	}
	if _, err := uc.VoteAnswer(ctx, "a1", "critic", domain.VoteDown); err != nil {
		t.Fatalf("critic vote: %v", err)
	}
	if got := score("answerer"); got != 2.5 {
		t.Errorf("answerer score = %v, want 2.5", got)
	}
	if got := score("fan"); got != 0 {
		t.Errorf("fan score = %v, want 0", got)
	}
	if got := score("critic"); got != -1.5 {
		t.Errorf("critic score = %v, want -1.5", got)
	}
}
