package loan

import "time"

type RequestLoanInput struct {
	MaterialID uint64    `json:"material_id"`
	BorrowerID string    `json:"borrower_id"`
	GuestName  string    `json:"guest_name"`
	GuestEmail string    `json:"guest_email"`
	DueDate    time.Time `json:"due_date"`
}

type MaterialSummary struct {
	ID       uint64 `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author,omitempty"`
	ISBN     string `json:"isbn,omitempty"`
	Quantity int    `json:"quantity"`
}

type CopySummary struct {
	RegistrationNumber string `json:"registration_number"`
	Status             string `json:"status"`
}

type LoanDTO struct {
	LoanID     string           `json:"loan_id"`
	Status     string           `json:"status"`
	BorrowerID string           `json:"borrower_id,omitempty"`
	GuestName  string           `json:"guest_name,omitempty"`
	GuestEmail string           `json:"guest_email,omitempty"`
	LoanDate   time.Time        `json:"loan_date"`
	DueDate    time.Time        `json:"due_date"`
	ReturnDate *time.Time       `json:"return_date,omitempty"`
	Material   *MaterialSummary `json:"material,omitempty"`
	Copy       *CopySummary     `json:"copy,omitempty"`
}
