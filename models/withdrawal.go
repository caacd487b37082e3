package models

import "time"

// Withdrawal is an append-only audit record of payout intent. It is created
// Pending in the same transaction as the points debit and is never created
// without one. The approve/reject transition belongs to an external review
// process; this service only inserts.
type Withdrawal struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Amount    int64     `gorm:"not null" json:"amount"`
	Method    string    `gorm:"size:20;not null" json:"method"`
	Details   string    `gorm:"type:text;not null" json:"details"`
	Status    string    `gorm:"size:20;not null;default:'Pending'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (Withdrawal) TableName() string {
	return "withdrawals"
}

const (
	WithdrawalPending  = "Pending"
	WithdrawalApproved = "Approved"
	WithdrawalRejected = "Rejected"
)
