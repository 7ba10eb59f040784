// Package memory provides in-memory repository implementations mirroring the
// Postgres semantics, including cascade deletes and transactional rollback.
// They back the usecase tests and local development without a database.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/forumhub/backend/domain"
	"github.com/forumhub/backend/repository"
)

type txKey struct{}

// Store holds every table in plain maps keyed by id. All access goes through
// lock(ctx) so a transaction owns the store exclusively for its duration,
// which gives the same serialization the row-locked SQL store provides.
type Store struct {
	mu sync.Mutex

	users         map[string]domain.User
	questions     map[string]domain.Question
	answers       map[string]domain.Answer
	tags          map[string]domain.Tag
	questionTags  map[string]domain.QuestionTag
	questionVotes map[string]domain.QuestionVote
	answerVotes   map[string]domain.AnswerVote
}

func NewStore() *Store {
	return &Store{
		users:         make(map[string]domain.User),
		questions:     make(map[string]domain.Question),
		answers:       make(map[string]domain.Answer),
		tags:          make(map[string]domain.Tag),
		questionTags:  make(map[string]domain.QuestionTag),
		questionVotes: make(map[string]domain.QuestionVote),
		answerVotes:   make(map[string]domain.AnswerVote),
	}
}

// lock acquires the store mutex unless the context already runs inside a
// transaction, which holds the lock for its whole lifetime.
func (s *Store) lock(ctx context.Context) func() {
	if ctx.Value(txKey{}) != nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type snapshot struct {
	users         map[string]domain.User
	questions     map[string]domain.Question
	answers       map[string]domain.Answer
	tags          map[string]domain.Tag
	questionTags  map[string]domain.QuestionTag
	questionVotes map[string]domain.QuestionVote
	answerVotes   map[string]domain.AnswerVote
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		users:         cloneMap(s.users),
		questions:     cloneMap(s.questions),
		answers:       cloneMap(s.answers),
		tags:          cloneMap(s.tags),
		questionTags:  cloneMap(s.questionTags),
		questionVotes: cloneMap(s.questionVotes),
		answerVotes:   cloneMap(s.answerVotes),
	}
}

func (s *Store) restore(snap snapshot) {
	s.users = snap.users
	s.questions = snap.questions
	s.answers = snap.answers
	s.tags = snap.tags
	s.questionTags = snap.questionTags
	s.questionVotes = snap.questionVotes
	s.answerVotes = snap.answerVotes
}

func cloneMap[V any](src map[string]V) map[string]V {
	dst := make(map[string]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

type transactor struct {
	store *Store
}

// NewTransactor returns a Transactor that snapshots the store and restores it
// when fn fails, so partial mutations never leak out of a failed unit of work.
func NewTransactor(store *Store) repository.Transactor {
	return &transactor{store: store}
}

func (t *transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	snap := t.store.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, struct{}{})); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

// deleteQuestionLocked removes a question plus its answers, tag links and
// votes, mirroring the SQL ON DELETE CASCADE chain. Caller holds the lock.
func (s *Store) deleteQuestionLocked(id string) {
	for answerID, answer := range s.answers {
		if answer.QuestionID == id {
			s.deleteAnswerLocked(answerID)
		}
	}
	for key, link := range s.questionTags {
		if link.QuestionID == id {
			delete(s.questionTags, key)
		}
	}
	for voteID, vote := range s.questionVotes {
		if vote.QuestionID == id {
			delete(s.questionVotes, voteID)
		}
	}
	delete(s.questions, id)
}

// deleteAnswerLocked removes an answer and its votes. Caller holds the lock.
func (s *Store) deleteAnswerLocked(id string) {
	for voteID, vote := range s.answerVotes {
		if vote.AnswerID == id {
			delete(s.answerVotes, voteID)
		}
	}
	delete(s.answers, id)
}

func now() time.Time {
	return time.Now().UTC()
}

func linkKey(questionID, tagID string) string {
	return questionID + "|" + tagID
}
