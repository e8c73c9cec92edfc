package model

import "time"

// ContactMessage is a contact-form submission waiting to be relayed by email.
type ContactMessage struct {
	Name       string    `json:"name" binding:"required,notblank,max=100"`
	Email      string    `json:"email" binding:"required,email,max=255"`
	Message    string    `json:"message" binding:"required,notblank,max=5000"`
	ReceivedAt time.Time `json:"receivedAt"`
}
