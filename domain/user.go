package domain

import "time"

// Role determines what moderation actions a user may perform.
type Role string

const (
	RoleUser      Role = "USER"
	RoleModerator Role = "MODERATOR"
)

// User represents a registered identity in the forum.
type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Password    string    `json:"-"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Score       float64   `json:"score"`
	IsBanned    bool      `json:"is_banned"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (u *User) IsModerator() bool {
	return u != nil && u.Role == RoleModerator
}

// CanPost reports whether the user is allowed to create content.
func (u *User) CanPost() bool {
	return u != nil && !u.IsBanned
}
