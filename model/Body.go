package model

// PostBody defines the body of the new post form
type PostBody struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Username string `json:"username"`
}
