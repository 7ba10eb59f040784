package domain

import "time"

// QuestionStatus models the question lifecycle. A question starts as RECEIVED,
// moves to IN_PROGRESS when its first answer arrives and to SOLVED when the
// author accepts an answer. The only way back to RECEIVED is the repair step of
// the user-deletion cascade.
type QuestionStatus string

const (
	StatusReceived   QuestionStatus = "RECEIVED"
	StatusInProgress QuestionStatus = "IN_PROGRESS"
	StatusSolved     QuestionStatus = "SOLVED"
)

// Question is a post asked by a user. Answers, tag associations and votes
// reference it by id; the question never embeds them.
type Question struct {
	ID               string         `json:"id"`
	AuthorID         string         `json:"author_id"`
	Title            string         `json:"title"`
	Text             string         `json:"text"`
	Status           QuestionStatus `json:"status"`
	AcceptedAnswerID *string        `json:"accepted_answer_id,omitempty"`
	Picture          string         `json:"picture,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func (q *Question) IsSolved() bool {
	return q != nil && q.Status == StatusSolved
}

// HasAccepted reports whether the given answer is the accepted one.
func (q *Question) HasAccepted(answerID string) bool {
	return q != nil && q.AcceptedAnswerID != nil && *q.AcceptedAnswerID == answerID
}
