package events

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/kartike996/chatterbox-post-service/model"
)

// PostCreatedEvent is the payload announced on the bus after a post has been
// persisted. Downstream services (feed, notifications) consume it.
type PostCreatedEvent struct {
	EventID   string    `json:"eventId"`
	PostID    string    `json:"postId"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Publisher announces post creation to the message bus. Callers invoke it only
// after the post has been persisted; a failed publish never rolls the post back.
type Publisher interface {
	PublishPostCreated(post *model.Post) error
}

type natsPublisher struct {
	conn    *nats.Conn
	subject string
}

func NewNATSPublisher(conn *nats.Conn, subject string) Publisher {
	return &natsPublisher{conn: conn, subject: subject}
}

func (p *natsPublisher) PublishPostCreated(post *model.Post) error {
	event := PostCreatedEvent{
		EventID:   uuid.New().String(),
		PostID:    post.ID.Hex(),
		Username:  post.Username,
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal post created event: %w", err)
	}
	// Per-user ordering comes from the subject suffix.
	subject := p.subject + "." + post.Username
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("publish to %s: %w", subject, err)
	}
	return nil
}

// Connect dials NATS with a short retry loop so the service survives the bus
// coming up after it in compose environments.
func Connect(url string) (*nats.Conn, error) {
	var conn *nats.Conn
	var err error
	for i := 0; i < 10; i++ {
		conn, err = nats.Connect(url)
		if err == nil {
			return conn, nil
		}
		log.Printf("Waiting for NATS to be ready... (%v)", err)
		time.Sleep(2 * time.Second)
	}
	return nil, fmt.Errorf("connect to NATS at %s: %w", url, err)
}
