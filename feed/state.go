package feed

import (
	"fmt"

	"github.com/Gravitalia/feed/api"
	"github.com/Gravitalia/feed/model"
)

// ModalState is the state of the new post form
type ModalState int

const (
	ModalClosed ModalState = iota
	ModalOpen
	// ModalSubmitting means a create call is in flight, further submits are refused
	ModalSubmitting
)

func (m ModalState) String() string {
	switch m {
	case ModalOpen:
		return "open"
	case ModalSubmitting:
		return "submitting"
	default:
		return "closed"
	}
}

// MarshalText writes the modal state by name in the view-model
func (m ModalState) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// State is the whole feed screen. Values are never mutated in place,
// Reduce always returns a new State.
type State struct {
	Posts []model.Post
	Users []model.User
	// Created holds posts submitted while a posts load was in flight
	Created []model.Post

	UsersGeneration uint64
	PostsGeneration uint64
	UsersDone       bool
	PostsDone       bool
	Refreshing      bool

	Modal     ModalState
	Error     string
	FormError string
}

// Ready reports whether both loads of the current generation completed,
// successfully or not
func (s State) Ready() bool {
	return s.UsersDone && s.PostsDone
}

// Action is an event applied to the State by Reduce
type Action interface {
	action()
}

// LoadStarted begins a new generation for Resource
type LoadStarted struct {
	Resource string
	Refresh  bool
}

// UsersLoaded carries a successful users load
type UsersLoaded struct {
	Generation uint64
	Users      []model.User
}

// PostsLoaded carries a successful posts load, in API order
type PostsLoaded struct {
	Generation uint64
	Posts      []model.Post
}

// LoadFailed carries a failed load, whatever the reason
type LoadFailed struct {
	Resource   string
	Generation uint64
	Err        error
}

type ModalOpened struct{}

type ModalDismissed struct{}

type SubmitStarted struct{}

// PostSubmitted carries the record returned by the API
type PostSubmitted struct {
	Post model.Post
}

type SubmitFailed struct {
	Err error
}

type ErrorDismissed struct{}

func (LoadStarted) action()    {}
func (UsersLoaded) action()    {}
func (PostsLoaded) action()    {}
func (LoadFailed) action()     {}
func (ModalOpened) action()    {}
func (ModalDismissed) action() {}
func (SubmitStarted) action()  {}
func (PostSubmitted) action()  {}
func (SubmitFailed) action()   {}
func (ErrorDismissed) action() {}

// Reduce returns the state following action.
// Load results of an older generation leave the state untouched.
func Reduce(s State, action Action) State {
	switch a := action.(type) {
	case LoadStarted:
		switch a.Resource {
		case api.Users:
			s.UsersGeneration++
			s.UsersDone = false
		case api.Posts:
			s.PostsGeneration++
			s.PostsDone = false
			s.Created = nil
		default:
			return s
		}
		if a.Refresh {
			s.Refreshing = true
		}

	case UsersLoaded:
		if a.Generation != s.UsersGeneration {
			return s
		}
		s.Users = a.Users
		s.UsersDone = true

	case PostsLoaded:
		if a.Generation != s.PostsGeneration {
			return s
		}
		s.Posts = SortByTimestamp(mergeCreated(a.Posts, s.Created))
		s.PostsDone = true
		s.Created = nil

	case LoadFailed:
		switch {
		case a.Resource == api.Users && a.Generation == s.UsersGeneration:
			s.UsersDone = true
		case a.Resource == api.Posts && a.Generation == s.PostsGeneration:
			s.PostsDone = true
			s.Created = nil
		default:
			return s
		}
		s.Error = fmt.Sprintf("could not load %s", a.Resource)

	case ModalOpened:
		if s.Modal == ModalClosed {
			s.Modal = ModalOpen
			s.FormError = ""
		}

	case ModalDismissed:
		if s.Modal == ModalOpen {
			s.Modal = ModalClosed
			s.FormError = ""
		}

	case SubmitStarted:
		if s.Modal == ModalOpen {
			s.Modal = ModalSubmitting
			s.FormError = ""
		}

	case PostSubmitted:
		posts := make([]model.Post, 0, len(s.Posts)+1)
		s.Posts = append(append(posts, a.Post), s.Posts...)
		if !s.PostsDone {
			s.Created = append(append([]model.Post(nil), s.Created...), a.Post)
		}
		s.Modal = ModalClosed
		s.FormError = ""

	case SubmitFailed:
		if s.Modal == ModalSubmitting {
			s.Modal = ModalOpen
		}
		if a.Err != nil {
			s.FormError = a.Err.Error()
		}

	case ErrorDismissed:
		s.Error = ""
	}

	if s.Refreshing && s.Ready() {
		s.Refreshing = false
	}

	return s
}

// mergeCreated adds to loaded the created posts it does not hold yet
func mergeCreated(loaded, created []model.Post) []model.Post {
	if len(created) == 0 {
		return loaded
	}

	posts := append([]model.Post(nil), loaded...)
	for _, post := range created {
		found := false
		for _, p := range loaded {
			if p.Id == post.Id {
				found = true
				break
			}
		}
		if !found {
			posts = append(posts, post)
		}
	}

	return posts
}
