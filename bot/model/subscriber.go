package model

import "time"

// Subscriber is a telegram chat that receives match announcements.
type Subscriber struct {
	ChatID    int64
	FirstName string
	Username  string
	CreatedAt time.Time
}
