package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Gravitalia/feed/api"
	"github.com/Gravitalia/feed/helpers"
	"github.com/Gravitalia/feed/model"
)

var (
	ErrModalNotOpen        = errors.New("new post form is not open")
	ErrSubmitInProgress    = errors.New("a post is already being submitted")
	ErrUnknownUser         = errors.New("unknown user")
	ErrEmptyPost           = errors.New("title and body are required")
	ErrDuplicateSubmission = errors.New("this post was just submitted")
)

// Source reads and creates resources, see api.Client
type Source interface {
	FetchCollection(ctx context.Context, resource string) (api.Result, error)
	CreateResource(ctx context.Context, resource string, payload any) (api.Result, error)
}

// Guard refuses identical submissions for a short while.
// Acquire returns false when key is already held.
type Guard interface {
	Acquire(key string) (bool, error)
	Release(key string) error
}

// Notifier is told about every post created from the feed
type Notifier interface {
	PostCreated(post model.Post)
}

// Option configures a Controller
type Option func(*Controller)

func WithUserPolicy(policy UserPolicy) Option {
	return func(c *Controller) { c.userPolicy = policy }
}

func WithIDPolicy(policy IDPolicy) Option {
	return func(c *Controller) { c.idPolicy = policy }
}

func WithGuard(guard Guard) Option {
	return func(c *Controller) { c.guard = guard }
}

func WithNotifier(notifier Notifier) Option {
	return func(c *Controller) { c.notifier = notifier }
}

// WithClock replaces time.Now for post timestamps
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// Controller drives the feed screen: loads, refreshes and post submission
type Controller struct {
	source     Source
	store      *Store
	userPolicy UserPolicy
	idPolicy   IDPolicy
	guard      Guard
	notifier   Notifier
	now        func() time.Time

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
}

// New creates a controller reading from source
func New(source Source, options ...Option) *Controller {
	c := &Controller{
		source:  source,
		store:   NewStore(State{}),
		now:     time.Now,
		cancels: make(map[string]context.CancelFunc),
	}
	for _, option := range options {
		option(c)
	}

	return c
}

// State returns the current state
func (c *Controller) State() State {
	return c.store.State()
}

// View returns the view-model of the current state
func (c *Controller) View() View {
	return Render(c.store.State())
}

// ticket is a load of one resource for one generation
type ticket struct {
	ctx        context.Context
	cancel     context.CancelFunc
	resource   string
	generation uint64
}

// start opens a new generation for each resource and cancels
// the loads still running for the previous one
func (c *Controller) start(ctx context.Context, refresh bool, resources ...string) []ticket {
	c.mu.Lock()
	defer c.mu.Unlock()

	tickets := make([]ticket, len(resources))
	for i, resource := range resources {
		if previous, ok := c.cancels[resource]; ok {
			previous()
		}

		loadCtx, cancel := context.WithCancel(ctx)
		c.cancels[resource] = cancel

		_, after := c.store.Dispatch(LoadStarted{Resource: resource, Refresh: refresh})
		generation := after.PostsGeneration
		if resource == api.Users {
			generation = after.UsersGeneration
		}

		tickets[i] = ticket{ctx: loadCtx, cancel: cancel, resource: resource, generation: generation}
	}

	return tickets
}

// LoadUsers replaces the users with the first page of the API
func (c *Controller) LoadUsers(ctx context.Context) error {
	return c.load(c.start(ctx, false, api.Users)[0])
}

// LoadPosts replaces the posts with the first page of the API,
// newest first
func (c *Controller) LoadPosts(ctx context.Context) error {
	return c.load(c.start(ctx, false, api.Posts)[0])
}

// Mount loads users and posts concurrently
func (c *Controller) Mount(ctx context.Context) error {
	return c.reload(ctx, false)
}

// Refresh reloads users and posts concurrently.
// The refreshing flag stays up until both loads completed.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.reload(ctx, true)
}

func (c *Controller) reload(ctx context.Context, refresh bool) error {
	tickets := c.start(ctx, refresh, api.Users, api.Posts)

	var usersErr, postsErr error
	wg := sync.WaitGroup{}
	wg.Add(2)

	go func() {
		defer wg.Done()
		usersErr = c.load(tickets[0])
	}()

	go func() {
		defer wg.Done()
		postsErr = c.load(tickets[1])
	}()

	wg.Wait()

	return errors.Join(usersErr, postsErr)
}

func (c *Controller) load(t ticket) error {
	defer t.cancel()
	resource, generation := t.resource, t.generation

	action, err := c.fetch(t.ctx, resource, generation)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			helpers.Debug("load canceled", "resource", resource, "generation", generation)
			helpers.CountLoad(resource, "canceled")
		} else {
			helpers.Error("could not load resource", "resource", resource, "generation", generation, "error", err)
			helpers.CountLoad(resource, "failure")
		}

		c.store.Dispatch(LoadFailed{Resource: resource, Generation: generation, Err: err})
		return err
	}

	helpers.CountLoad(resource, "success")
	c.store.Dispatch(action)

	return nil
}

func (c *Controller) fetch(ctx context.Context, resource string, generation uint64) (Action, error) {
	result, err := c.source.FetchCollection(ctx, resource)
	if err != nil {
		return nil, err
	}
	if result.Status != http.StatusOK {
		return nil, &api.StatusError{Op: http.MethodGet, Resource: resource, Status: result.Status}
	}

	if resource == api.Users {
		var users []model.User
		if err := result.Decode(&users); err != nil {
			return nil, err
		}
		return UsersLoaded{Generation: generation, Users: users}, nil
	}

	var posts []model.Post
	if err := result.Decode(&posts); err != nil {
		return nil, err
	}
	return PostsLoaded{Generation: generation, Posts: posts}, nil
}

// OpenModal opens the new post form
func (c *Controller) OpenModal() {
	c.store.Dispatch(ModalOpened{})
}

// CloseModal closes the new post form, unless a submission is in flight
func (c *Controller) CloseModal() {
	c.store.Dispatch(ModalDismissed{})
}

// DismissError hides the load error banner
func (c *Controller) DismissError() {
	c.store.Dispatch(ErrorDismissed{})
}

// newPost is the payload sent to the API
type newPost struct {
	Title     string          `json:"title"`
	Body      string          `json:"body"`
	UserId    model.ID        `json:"userId"`
	Id        int64           `json:"id,omitempty"`
	Timestamp model.Timestamp `json:"timestamp"`
}

// SubmitNewPost creates a post written by the user named username,
// prepends the record returned by the API and closes the form
func (c *Controller) SubmitNewPost(ctx context.Context, title, body, username string) (model.Post, error) {
	before, state := c.store.Dispatch(SubmitStarted{})
	switch before.Modal {
	case ModalSubmitting:
		return model.Post{}, ErrSubmitInProgress
	case ModalClosed:
		return model.Post{}, ErrModalNotOpen
	}

	if strings.TrimSpace(title) == "" || strings.TrimSpace(body) == "" {
		return model.Post{}, c.fail(ErrEmptyPost)
	}

	payload := newPost{
		Title:     title,
		Body:      body,
		Timestamp: model.NewTimestamp(c.now()),
	}

	if user, ok := FindUser(state.Users, username); ok {
		payload.UserId = user.Id
	} else if c.userPolicy == PlaceholderUser {
		payload.UserId = placeholderID(state.Users)
		helpers.Warn("unknown user, using a placeholder id", "username", username, "userId", payload.UserId)
	} else {
		return model.Post{}, c.fail(fmt.Errorf("%w %q", ErrUnknownUser, username))
	}

	if c.idPolicy == ClientIDs {
		payload.Id = NextPostId(state.Posts)
	}

	key := submissionKey(username, title, body)
	if c.guard != nil {
		acquired, err := c.guard.Acquire(key)
		if err != nil {
			helpers.Warn("submission guard unavailable", "error", err)
		} else if !acquired {
			return model.Post{}, c.fail(ErrDuplicateSubmission)
		}
	}

	post, err := c.create(ctx, payload)
	if err != nil {
		if c.guard != nil {
			if err := c.guard.Release(key); err != nil {
				helpers.Warn("could not release submission guard", "error", err)
			}
		}
		helpers.Error("could not create post", "error", err)
		return model.Post{}, c.fail(fmt.Errorf("could not create post: %w", err))
	}

	c.store.Dispatch(PostSubmitted{Post: post})
	if c.notifier != nil {
		c.notifier.PostCreated(post)
	}

	return post, nil
}

// create sends payload and merges the record returned by the API.
// Fields missing from the response are taken from the payload.
func (c *Controller) create(ctx context.Context, payload newPost) (model.Post, error) {
	result, err := c.source.CreateResource(ctx, api.Posts, payload)
	if err != nil {
		return model.Post{}, err
	}

	var post model.Post
	if len(result.Data) > 0 {
		if err := result.Decode(&post); err != nil {
			return model.Post{}, err
		}
	}

	if post.Id == 0 {
		post.Id = payload.Id
	} else if payload.Id != 0 && post.Id != payload.Id {
		helpers.Warn("API assigned another id than the proposed one", "proposed", payload.Id, "assigned", post.Id)
	}
	if post.Title == "" {
		post.Title = payload.Title
	}
	if post.Body == "" {
		post.Body = payload.Body
	}
	if post.UserId == "" {
		post.UserId = payload.UserId
	}
	if post.Timestamp == "" {
		post.Timestamp = payload.Timestamp
	}

	return post, nil
}

func (c *Controller) fail(err error) error {
	c.store.Dispatch(SubmitFailed{Err: err})
	return err
}
