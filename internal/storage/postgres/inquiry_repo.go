package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jatinm79/Real-Estate-App/internal/domain"
)

type InquiryRepo struct{ db *sql.DB }

func NewInquiryRepo(db *sql.DB) *InquiryRepo { return &InquiryRepo{db: db} }

// Submit appends a contact inquiry. A supplied property id must reference
// an existing property; status always starts as "new".
func (r *InquiryRepo) Submit(ctx context.Context, ni domain.NewInquiry) (domain.Inquiry, error) {
	if ni.PropertyID != nil {
		var one int
		err := r.db.QueryRowContext(ctx, `SELECT 1 FROM properties WHERE id = $1`, *ni.PropertyID).Scan(&one)
		if err == sql.ErrNoRows {
			return domain.Inquiry{}, domain.ErrNotFound
		}
		if err != nil {
			return domain.Inquiry{}, fmt.Errorf("submit inquiry: %w", err)
		}
	}

	var pid any
	if ni.PropertyID != nil {
		pid = *ni.PropertyID
	}
	inq := domain.Inquiry{
		PropertyID: ni.PropertyID,
		Name:       ni.Name,
		Email:      ni.Email,
		Phone:      ni.Phone,
		Message:    ni.Message,
	}
	err := r.db.QueryRowContext(ctx, `
INSERT INTO contact_inquiries (property_id, name, email, phone, message, status)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, status, created_at`,
		pid, ni.Name, ni.Email, valStr(ni.Phone), ni.Message, domain.InquiryStatusNew,
	).Scan(&inq.ID, &inq.Status, &inq.CreatedAt)
	if err != nil {
		return domain.Inquiry{}, fmt.Errorf("submit inquiry: %w", classify(err))
	}
	return inq, nil
}
