package model

// Favorite is unique per (BookID, UserEmail) pair. It lives in local state
// only and is never synced to the server.
type Favorite struct {
	BookID    string `json:"bookId"`
	UserEmail string `json:"userEmail"`
	// AddedAt is an RFC3339 timestamp.
	AddedAt string `json:"addedAt"`
}
