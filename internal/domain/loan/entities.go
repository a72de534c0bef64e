package loan

import (
	"errors"
	"time"
)

type Status string

const (
	StatusRequested Status = "requested"
	StatusActive    Status = "active"
	StatusReturned  Status = "returned"
	StatusRejected  Status = "rejected"
)

// Terminal reports whether no transition may leave s.
func (s Status) Terminal() bool { return s == StatusReturned || s == StatusRejected }

var (
	ErrNotFound       = errors.New("loan not found")
	ErrInvalidState   = errors.New("operation not allowed in current loan status")
	ErrNoCopyAssigned = errors.New("loan has no copy assigned")
)

type Loan struct {
	ID         uint64     `gorm:"primaryKey;column:id" json:"-"`
	LoanID     string     `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	MaterialID uint64     `gorm:"column:material_id;not null;index" json:"-"`
	CopyID     *uint64    `gorm:"column:copy_id;index" json:"-"`
	BorrowerID string     `gorm:"size:32;index:idx_loans_borrower" json:"borrower_id,omitempty"`
	GuestName  string     `gorm:"size:120" json:"guest_name,omitempty"`
	GuestEmail string     `gorm:"size:120" json:"guest_email,omitempty"`
	Status     Status     `gorm:"type:enum('requested','active','returned','rejected');default:'requested'" json:"status"`
	LoanDate   time.Time  `gorm:"column:loan_date" json:"loan_date"`
	DueDate    time.Time  `gorm:"column:due_date" json:"due_date"`
	ReturnDate *time.Time `gorm:"column:return_date" json:"return_date,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }
