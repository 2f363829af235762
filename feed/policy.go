package feed

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/Gravitalia/feed/model"
	"github.com/google/uuid"
)

// UserPolicy decides what happens when the submitted username
// matches no loaded user
type UserPolicy int

const (
	// RejectUnknownUser refuses the submission with ErrUnknownUser
	RejectUnknownUser UserPolicy = iota
	// PlaceholderUser sends the post with a random userId
	PlaceholderUser
)

func (p UserPolicy) String() string {
	if p == PlaceholderUser {
		return "placeholder"
	}
	return "reject"
}

// ParseUserPolicy reads "reject" or "placeholder", empty means reject
func ParseUserPolicy(s string) (UserPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reject":
		return RejectUnknownUser, nil
	case "placeholder":
		return PlaceholderUser, nil
	}

	return RejectUnknownUser, fmt.Errorf("unknown user policy %q", s)
}

// IDPolicy decides who assigns the id of a new post
type IDPolicy int

const (
	// ClientIDs proposes the highest loaded id plus one.
	// The id returned by the API still wins.
	ClientIDs IDPolicy = iota
	// ServerIDs sends no id and lets the API assign it
	ServerIDs
)

func (p IDPolicy) String() string {
	if p == ServerIDs {
		return "server"
	}
	return "client"
}

// ParseIDPolicy reads "client" or "server", empty means client
func ParseIDPolicy(s string) (IDPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "client":
		return ClientIDs, nil
	case "server":
		return ServerIDs, nil
	}

	return ClientIDs, fmt.Errorf("unknown id policy %q", s)
}

// SortByTimestamp returns a copy of posts, newest first.
// Posts with an unreadable timestamp go last, in their original order.
func SortByTimestamp(posts []model.Post) []model.Post {
	sorted := make([]model.Post, len(posts))
	copy(sorted, posts)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Seconds() > sorted[j].Timestamp.Seconds()
	})

	return sorted
}

// NextPostId returns the highest id in posts plus one, 1 when posts is empty
func NextPostId(posts []model.Post) int64 {
	var max int64
	for _, post := range posts {
		if post.Id > max {
			max = post.Id
		}
	}

	return max + 1
}

// FindUser returns the user named exactly name
func FindUser(users []model.User, name string) (model.User, bool) {
	for _, user := range users {
		if user.Name == name {
			return user, true
		}
	}

	return model.User{}, false
}

// UserFor returns the author of a post, nil when no user matches
func UserFor(users []model.User, id model.ID) *model.User {
	for i := range users {
		if users[i].Id.Matches(id) {
			return &users[i]
		}
	}

	return nil
}

// placeholderID builds a random id matching none of users
func placeholderID(users []model.User) model.ID {
	for {
		id := model.ID(uuid.NewString())
		if UserFor(users, id) == nil {
			return id
		}
	}
}

// submissionKey identifies a submission for the duplicate guard.
// Memcached keys are limited to 250 bytes without spaces, hence the hash.
func submissionKey(username, title, body string) string {
	sum := sha256.Sum256([]byte(username + "\x00" + title + "\x00" + body))
	return "feed:submit:" + hex.EncodeToString(sum[:])
}
