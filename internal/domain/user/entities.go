package user

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("user not found")

type Role string

const (
	RoleLibrarian Role = "librarian"
	RoleMember    Role = "member"
	RoleAdmin     Role = "admin"
)

type User struct {
	ID           uint64    `gorm:"primaryKey;column:id" json:"-"`
	UserID       string    `gorm:"size:32;uniqueIndex:ux_users_user_id" json:"user_id"`
	Name         string    `gorm:"size:120" json:"name"`
	Email        string    `gorm:"size:120;uniqueIndex:ux_users_email" json:"email"`
	PasswordHash string    `gorm:"size:60" json:"-"`
	Role         Role      `gorm:"type:enum('librarian','member','admin');default:'member'" json:"role"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }
