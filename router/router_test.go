package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Gravitalia/feed/feed"
	"github.com/Gravitalia/feed/model"
)

type fakeScreen struct {
	view      feed.View
	actions   []string
	submitErr error
	refreshed context.Context
	submitted context.Context
}

func (s *fakeScreen) View() feed.View { return s.view }

func (s *fakeScreen) Refresh(ctx context.Context) error {
	s.actions = append(s.actions, "refresh")
	s.refreshed = ctx
	return nil
}

func (s *fakeScreen) OpenModal()    { s.actions = append(s.actions, "open") }
func (s *fakeScreen) CloseModal()   { s.actions = append(s.actions, "close") }
func (s *fakeScreen) DismissError() { s.actions = append(s.actions, "dismiss") }

func (s *fakeScreen) SubmitNewPost(ctx context.Context, title, body, username string) (model.Post, error) {
	s.submitted = ctx
	if s.submitErr != nil {
		return model.Post{}, s.submitErr
	}
	return model.Post{Id: 7, Title: title, Body: body, UserId: "1", Timestamp: "1700000000"}, nil
}

func TestIndex(t *testing.T) {
	w := httptest.NewRecorder()
	Index(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Body.String() != "OK" {
		t.Fatalf("Index = %q, want \"OK\"", w.Body.String())
	}
}

func TestFeed(t *testing.T) {
	screen := &fakeScreen{view: feed.View{
		Posts: []feed.FeedItem{{Post: model.Post{Id: 6, UserId: "1", Timestamp: "200"}, User: &model.User{Id: "1", Name: "Alice"}}},
		Ready: true,
		Modal: feed.ModalOpen,
	}}

	w := httptest.NewRecorder()
	Feed(screen)(w, httptest.NewRequest(http.MethodGet, "/feed", nil))

	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("Feed = %d %q, want 200 application/json", w.Code, w.Header().Get("Content-Type"))
	}

	var got struct {
		Posts []struct {
			Id   int64 `json:"id"`
			User struct {
				Name string `json:"name"`
			} `json:"user"`
		} `json:"posts"`
		Ready bool   `json:"ready"`
		Modal string `json:"modal"`
	}
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("Feed body is not JSON: %v", err)
	}
	if len(got.Posts) != 1 || got.Posts[0].Id != 6 || got.Posts[0].User.Name != "Alice" || !got.Ready || got.Modal != "open" {
		t.Fatalf("Feed = %+v", got)
	}

	w = httptest.NewRecorder()
	Feed(screen)(w, httptest.NewRequest(http.MethodDelete, "/feed", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("DELETE /feed = %d, want 405", w.Code)
	}
}

func TestAction(t *testing.T) {
	screen := &fakeScreen{}
	handler := Action(screen)

	for _, name := range []string{"refresh", "OPEN", "Close", "dismiss"} {
		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest(http.MethodPost, "/action/"+name, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("POST /action/%s = %d, want 200", name, w.Code)
		}
	}

	want := "refresh open close dismiss"
	if got := strings.Join(screen.actions, " "); got != want {
		t.Fatalf("actions = %q, want %q", got, want)
	}
	if screen.refreshed == nil || screen.refreshed.Done() != nil {
		t.Fatalf("Refresh should run with a context detached from the request")
	}

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodPost, "/action/delete", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("POST /action/delete = %d, want 400", w.Code)
	}

	w = httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/action/open", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET /action/open = %d, want 405", w.Code)
	}
}

func TestNew(t *testing.T) {
	w := httptest.NewRecorder()
	New(&fakeScreen{})(w, httptest.NewRequest(http.MethodPost, "/posts/new", strings.NewReader(`{"title":"Hi","body":"World","username":"Alice"}`)))

	if w.Code != http.StatusCreated {
		t.Fatalf("POST /posts/new = %d, want 201", w.Code)
	}

	var post model.Post
	if err := json.NewDecoder(w.Body).Decode(&post); err != nil || post.Id != 7 || post.Title != "Hi" {
		t.Fatalf("POST /posts/new returned %+v, %v", post, err)
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		body   string
		err    error
		status int
	}{
		{`{`, nil, http.StatusBadRequest},
		{`{}`, feed.ErrEmptyPost, http.StatusBadRequest},
		{`{}`, fmt.Errorf("%w %q", feed.ErrUnknownUser, "Mallory"), http.StatusBadRequest},
		{`{}`, feed.ErrModalNotOpen, http.StatusConflict},
		{`{}`, feed.ErrSubmitInProgress, http.StatusConflict},
		{`{}`, feed.ErrDuplicateSubmission, http.StatusConflict},
		{`{}`, errors.New("could not create post: boom"), http.StatusBadGateway},
	}

	for _, test := range tests {
		w := httptest.NewRecorder()
		New(&fakeScreen{submitErr: test.err})(w, httptest.NewRequest(http.MethodPost, "/posts/new", strings.NewReader(test.body)))

		if w.Code != test.status {
			t.Fatalf("POST /posts/new with %v = %d, want %d", test.err, w.Code, test.status)
		}

		var got model.RequestError
		if err := json.NewDecoder(w.Body).Decode(&got); err != nil || !got.Error || got.Message == "" {
			t.Fatalf("POST /posts/new with %v returned %+v", test.err, got)
		}
	}
}

func TestNewCallerGone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	screen := &fakeScreen{}
	req := httptest.NewRequest(http.MethodPost, "/posts/new", strings.NewReader(`{"title":"Hi","body":"World","username":"Alice"}`)).WithContext(ctx)
	New(screen)(httptest.NewRecorder(), req)

	if screen.submitted == nil || screen.submitted.Err() != nil {
		t.Fatalf("SubmitNewPost ran with a canceled context, the create call would be dropped")
	}
}
