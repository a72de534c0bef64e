package catalog

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("catalog entry not found")
	ErrNoAvailableCopy = errors.New("no available copy for material")
)

type CopyStatus string

const (
	CopyAvailable CopyStatus = "available"
	CopyOnLoan    CopyStatus = "on loan"
	CopyInRepair  CopyStatus = "repair"
	CopyLost      CopyStatus = "lost"
)

// Material is a catalog entry. Quantity counts the copies currently
// available for loan, not the copies owned.
type Material struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Author    string    `gorm:"size:255" json:"author"`
	ISBN      string    `gorm:"size:20;index" json:"isbn"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Material) TableName() string { return "materials" }

// Copy is one physical instance of a Material. Its status must match the
// set of active loans: exactly one active loan references a copy iff the
// copy is on loan.
type Copy struct {
	ID                 uint64     `gorm:"primaryKey;column:id" json:"-"`
	RegistrationNumber string     `gorm:"size:32;uniqueIndex:ux_copies_regnum" json:"registration_number"`
	MaterialID         uint64     `gorm:"column:material_id;not null;index" json:"-"`
	Status             CopyStatus `gorm:"type:enum('available','on loan','repair','lost');default:'available'" json:"status"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Copy) TableName() string { return "copies" }
