package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/brecholab/brecho-backend/internal/apperror"
	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrRegistrationClosed is returned once the shop has its operator account.
var ErrRegistrationClosed = errors.New("registration is closed")

// Service defines operator authentication business logic.
type Service interface {
	// Register bootstraps the first operator account. Once any operator
	// exists it fails with ErrRegistrationClosed.
	Register(ctx context.Context, req RegisterRequest) (*Operator, error)
	Login(ctx context.Context, req LoginRequest) (string, error)
	// VerifyToken returns the operator id a valid token was issued for.
	VerifyToken(token string) (string, error)
}

type service struct {
	repo      Repository
	jwtSecret []byte
	now       func() time.Time
}

func NewService(repo Repository, jwtSecret string) Service {
	return &service{repo: repo, jwtSecret: []byte(jwtSecret), now: time.Now}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Operator, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperror.Invalid("name", "is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, apperror.Invalid("email", "is required")
	}
	if len(req.Password) < 8 {
		return nil, apperror.Invalid("password", "must be at least 8 characters")
	}

	n, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrRegistrationClosed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	o := &Operator{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (string, error) {
	o, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return "", errors.New("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(o.PasswordHash), []byte(req.Password)); err != nil {
		return "", errors.New("invalid credentials")
	}

	claims := &jwt.StandardClaims{
		Subject:   o.ID.String(),
		ExpiresAt: s.now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *service) VerifyToken(tokenString string) (string, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}
