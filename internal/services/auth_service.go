package services

import (
	"context"
	"fmt"
	"strings"

	"casebackend/internal/auth"
	"casebackend/internal/domain"
	"casebackend/internal/domain/models"
	"casebackend/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

type UserStore interface {
	GetUserByMobile(ctx context.Context, mobile string) (models.User, error)
	CreateUser(ctx context.Context, u models.User) (models.User, error)
}

// AuthService registers users and exchanges credentials for tokens.
type AuthService struct {
	Users     UserStore
	Signer    auth.Signer
	RequestID string
	// Cost is the bcrypt cost; zero means bcrypt.DefaultCost.
	Cost int
}

var errBadCredentials = domain.UnauthorizedError{Msg: "mobile or password is incorrect"}

// Login returns a signed token for a matching mobile/password pair.
func (s AuthService) Login(ctx context.Context, mobile, password string) (string, models.User, error) {
	mobile = strings.TrimSpace(mobile)
	if mobile == "" || password == "" {
		return "", models.User{}, errBadCredentials
	}

	u, err := s.Users.GetUserByMobile(ctx, mobile)
	if err != nil {
		if domain.IsNotFound(err) {
			return "", models.User{}, errBadCredentials
		}
		return "", models.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", models.User{}, errBadCredentials
	}

	token, err := s.Signer.Sign(u.ID, u.Mobile)
	if err != nil {
		return "", models.User{}, domain.InternalError{Msg: "failed to sign token", Err: err}
	}
	utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("user_id=%d", u.ID))
	return token, u, nil
}

// Register stores a new user with a bcrypt password hash.
func (s AuthService) Register(ctx context.Context, name, mobile, password string) (models.User, error) {
	fields := domain.FieldErrors{}
	mobile = strings.TrimSpace(mobile)
	if mobile == "" {
		fields.Add("mobile", "This field is required.")
	}
	if len(password) < 6 {
		fields.Add("password", "Ensure this field has at least 6 characters.")
	}
	if err := fields.OrNil(); err != nil {
		return models.User{}, err
	}

	cost := s.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "failed to hash password", Err: err}
	}

	u, err := s.Users.CreateUser(ctx, models.User{
		Name:         strings.TrimSpace(name),
		Mobile:       mobile,
		PasswordHash: string(hash),
	})
	if err != nil {
		return models.User{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "register", fmt.Sprintf("user_id=%d", u.ID))
	return u, nil
}
