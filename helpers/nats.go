package helpers

import (
	"encoding/json"
	"strconv"

	"github.com/Gravitalia/feed/model"
	"github.com/nats-io/nats.go"
)

// PostCreatedType is the message type sent once a post is created
const PostCreatedType = "post_created"

// InitNATS starts a new NATS connection
func InitNATS(url string) (*nats.Conn, error) {
	connection, err := nats.Connect(url)
	if err != nil {
		Error("cannot connect to NATS", "url", url, "error", err)
		return nil, err
	}

	return connection, nil
}

// Publisher publishes feed events on a NATS subject
type Publisher struct {
	Conn    *nats.Conn
	Subject string
}

// Publish allows publishing message on NATS
func (p *Publisher) Publish(message []byte) {
	if err := p.Conn.Publish(p.Subject, message); err != nil {
		Error("failed to send message", "subject", p.Subject, "error", err)
	}
}

// PostCreated notifies subscribers that a post was created
func (p *Publisher) PostCreated(post model.Post) {
	msg, err := json.Marshal(model.Message{
		Type: PostCreatedType,
		From: string(post.UserId),
		To:   strconv.FormatInt(post.Id, 10),
		Post: &post,
	})
	if err != nil {
		Error("failed to encode message", "type", PostCreatedType, "error", err)
		return
	}

	p.Publish(msg)
}
