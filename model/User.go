package model

// User is a read only account of the feed API
type User struct {
	Id   ID     `json:"id"`
	Name string `json:"name"`
}
