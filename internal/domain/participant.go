package domain

// Participant is one live connection inside a room. ConnID is the
// transport-assigned handle; UserID and UserName come from the client
// as-is and are not checked against the user store.
type Participant struct {
	ConnID   string `json:"conn_id"`
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
}
