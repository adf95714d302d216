package domain

// User is one participant in a room. ID is the opaque per-connection
// identifier; Name is whatever the client supplied and is not trusted.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
