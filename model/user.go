package model

type User struct {
	ID int `json:"id"`

	Name  string `json:"name"`
	Email string `json:"email"`
	// PasswordHash never leaves the server. Use SessionUser for responses.
	PasswordHash string `json:"-"`

	CreatedTs int64 `json:"created_ts"`
}

type FindUser struct {
	ID    *int    `json:"id"`
	Email *string `json:"email"`

	// The maximum number of users to return.
	Limit *int
}

// SessionUser is the client's record of who is signed in. It is what the
// login response carries and what gets mirrored to durable local state.
type SessionUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token,omitempty"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	OK    bool         `json:"ok"`
	User  *SessionUser `json:"user"`
	Token string       `json:"token,omitempty"`
}

type RegisterResponse struct {
	OK bool `json:"ok"`
}
