package feed

import "github.com/Gravitalia/feed/model"

// FeedItem is a post with its resolved author
type FeedItem struct {
	model.Post
	User *model.User `json:"user,omitempty"`
}

// View is what a renderer needs to draw the feed screen
type View struct {
	Posts      []FeedItem `json:"posts"`
	Ready      bool       `json:"ready"`
	Loading    bool       `json:"loading"`
	Refreshing bool       `json:"refreshing"`
	Modal      ModalState `json:"modal"`
	Error      string     `json:"error,omitempty"`
	FormError  string     `json:"formError,omitempty"`
}

// Render builds the view-model of s
func Render(s State) View {
	items := make([]FeedItem, len(s.Posts))
	for i, post := range s.Posts {
		items[i] = FeedItem{Post: post}
		if user := UserFor(s.Users, post.UserId); user != nil {
			author := *user
			items[i].User = &author
		}
	}

	return View{
		Posts:      items,
		Ready:      s.Ready(),
		Loading:    !s.Ready(),
		Refreshing: s.Refreshing,
		Modal:      s.Modal,
		Error:      s.Error,
		FormError:  s.FormError,
	}
}
