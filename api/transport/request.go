package transport

type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
}

type UserUpdateRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	SessionID string `json:"session_id"`
	TTL       int    `json:"ttl_seconds"`
}

type QuestionRequest struct {
	Title   string   `json:"title"`
	Text    string   `json:"text"`
	Picture string   `json:"picture"`
	Tags    []string `json:"tags"`
}

type AnswerRequest struct {
	Text    string `json:"text"`
	Picture string `json:"picture"`
}

type VoteRequest struct {
	Value int `json:"value"`
}

type TagRequest struct {
	Name string `json:"name"`
}
