package router

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Gravitalia/feed/feed"
	"github.com/Gravitalia/feed/model"
)

// Every possible error list
const (
	ErrorCreatingPost     = "Could not create post"
	ErrorInvalidAction    = "Invalid action"
	ErrorInvalidBody      = "Invalid body"
	ErrorMethodNotAllowed = "Method not allowed"
	ErrorUnableReadBody   = "Unable to read body"
)

// Every OK message reponse
const (
	Ok = "OK"
)

// Screen is the feed screen driven by the routes
type Screen interface {
	View() feed.View
	Refresh(ctx context.Context) error
	OpenModal()
	CloseModal()
	DismissError()
	SubmitNewPost(ctx context.Context, title, body, username string) (model.Post, error)
}

func Index(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprintf(w, Ok)
}
