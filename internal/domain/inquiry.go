package domain

import "time"

const InquiryStatusNew = "new"

// Inquiry is a contact-form submission, optionally linked to a property.
// The link is severed (set to NULL), not cascaded, when the property goes.
type Inquiry struct {
	ID         int64     `json:"id"`
	PropertyID *int64    `json:"property_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      *string   `json:"phone"`
	Message    string    `json:"message"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type NewInquiry struct {
	PropertyID *int64
	Name       string
	Email      string
	Phone      *string
	Message    string
}
