package domain

import "time"

// Vote values. Anything else is rejected before it reaches storage.
const (
	VoteUp   = 1
	VoteDown = -1
)

// ValidVoteValue reports whether value is one of the two accepted vote values.
func ValidVoteValue(value int) bool {
	return value == VoteUp || value == VoteDown
}

// QuestionVote records a single user's vote on a question. At most one row
// exists per (question, voter) pair.
type QuestionVote struct {
	ID         string    `json:"id"`
	QuestionID string    `json:"question_id"`
	VoterID    string    `json:"voter_id"`
	Value      int       `json:"value"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AnswerVote records a single user's vote on an answer. At most one row exists
// per (answer, voter) pair.
type AnswerVote struct {
	ID        string    `json:"id"`
	AnswerID  string    `json:"answer_id"`
	VoterID   string    `json:"voter_id"`
	Value     int       `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
