package domain

import "time"

// Answer is a reply to a single question by a single author.
type Answer struct {
	ID         string    `json:"id"`
	QuestionID string    `json:"question_id"`
	AuthorID   string    `json:"author_id"`
	Text       string    `json:"text"`
	Picture    string    `json:"picture,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsAccepted is derived from the owning question, never stored on the answer.
func (a *Answer) IsAccepted(q *Question) bool {
	return a != nil && q != nil && q.HasAccepted(a.ID)
}
