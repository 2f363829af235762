package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Gravitalia/feed/feed"
	"github.com/Gravitalia/feed/model"
)

const NEW = "new"

// New routes allows to create a new post from the open form
func New(screen Screen) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		jsonEncoder := json.NewEncoder(w)

		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			jsonEncoder.Encode(model.RequestError{
				Error:   true,
				Message: ErrorMethodNotAllowed,
			})
			return
		}

		// Read body
		defer req.Body.Close()
		body, err := io.ReadAll(req.Body)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			jsonEncoder.Encode(model.RequestError{
				Error:   true,
				Message: ErrorUnableReadBody,
			})
			return
		}

		var getbody model.PostBody
		if err = json.Unmarshal(body, &getbody); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			jsonEncoder.Encode(model.RequestError{
				Error:   true,
				Message: ErrorInvalidBody,
			})
			return
		}

		// the API may store the post even if the caller hangs up
		post, err := screen.SubmitNewPost(context.WithoutCancel(req.Context()), getbody.Title, getbody.Body, getbody.Username)
		if err != nil {
			status, message := submitError(err)
			w.WriteHeader(status)
			jsonEncoder.Encode(model.RequestError{
				Error:   true,
				Message: message,
			})
			return
		}

		w.WriteHeader(http.StatusCreated)
		jsonEncoder.Encode(post)
	}
}

// submitError maps a submission failure to a status and a message
// shown to the user
func submitError(err error) (int, string) {
	switch {
	case errors.Is(err, feed.ErrEmptyPost), errors.Is(err, feed.ErrUnknownUser):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, feed.ErrModalNotOpen),
		errors.Is(err, feed.ErrSubmitInProgress),
		errors.Is(err, feed.ErrDuplicateSubmission):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusBadGateway, ErrorCreatingPost
	}
}
