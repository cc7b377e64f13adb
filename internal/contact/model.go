package contact

import (
	"time"
)

// Message is a note left through the public contact form.
type Message struct {
	ID        string
	Name      string
	Email     string
	Subject   string
	Body      string
	CreatedAt time.Time
}

// MessageFilter defines pagination for the admin inbox.
type MessageFilter struct {
	Page     int
	PageSize int
}
