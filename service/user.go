package service

import (
	"context"
	"errors"

	"github.com/Tougashi/Stunting-sub001/model"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	Repo   *model.UserRepo
	Tokens *TokenService
}

type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *UserService) Register(ctx context.Context, user *User) error {
	exists, err := s.Repo.Exists(ctx, user.Username, user.Email)
	if err != nil {
		return errors.New("internal server error")
	}
	if exists {
		return errors.New("user already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return errors.New("internal server error")
	}

	newUser := &model.User{
		Username: user.Username,
		Email:    user.Email,
		Password: string(hashedPassword),
	}
	if err := s.Repo.Create(ctx, newUser); err != nil {
		return errors.New("internal server error")
	}
	return nil
}

func (s *UserService) Login(ctx context.Context, user *User) (string, error) {
	registered, err := s.Repo.GetByUsername(ctx, user.Username)
	if err != nil {
		return "", errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(registered.Password), []byte(user.Password)); err != nil {
		return "", errors.New("invalid credentials")
	}

	token, err := s.Tokens.CreateToken(registered.ID, registered.Username)
	if err != nil {
		logger.Warnf("error generating token for %s: %s", registered.Username, err)
		return "", errors.New("failed to generate token")
	}

	return token.AccessToken, nil
}
