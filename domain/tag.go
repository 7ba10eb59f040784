package domain

import "time"

// Tag is a label with a unique name, attached to questions through QuestionTag.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// QuestionTag links a question to a tag. It carries no data beyond the link.
type QuestionTag struct {
	QuestionID string `json:"question_id"`
	TagID      string `json:"tag_id"`
}
