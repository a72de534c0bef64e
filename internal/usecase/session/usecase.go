package session

import (
	"context"
	"errors"

	"librarium-backend/internal/domain/user"
	"librarium-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

var ErrBadCredentials = errors.New("invalid email or password")

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionDTO struct {
	Token  string    `json:"token"`
	UserID string    `json:"user_id"`
	Name   string    `json:"name"`
	Role   user.Role `json:"role"`
}

type Usecase struct {
	users  user.Repository
	tokens security.TokenManager
}

func NewUsecase(users user.Repository, tokens security.TokenManager) *Usecase {
	return &Usecase{users: users, tokens: tokens}
}

func (u *Usecase) Login(ctx context.Context, in LoginInput) (*SessionDTO, error) {
	acct, err := u.users.GetByEmail(ctx, in.Email)
	if err != nil {
		// same error whether the account or the password is wrong
		return nil, ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrBadCredentials
	}
	tok, err := u.tokens.Generate(acct.UserID, acct.Role)
	if err != nil {
		return nil, err
	}
	return &SessionDTO{Token: tok, UserID: acct.UserID, Name: acct.Name, Role: acct.Role}, nil
}
