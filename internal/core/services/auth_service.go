package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/taskman/api/internal/core/domain"
	"github.com/taskman/api/internal/core/ports"
)

const resetTokenTTL = 10 * time.Minute

type AuthService struct {
	userRepo  ports.UserRepository
	mailer    ports.Mailer
	hasher    *PasswordHasher
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(userRepo ports.UserRepository, mailer ports.Mailer, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		mailer:    mailer,
		hasher:    NewPasswordHasher(),
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

func (s *AuthService) Signup(ctx context.Context, input ports.SignupInput) (*domain.User, string, error) {
	email := normalizeEmail(input.Email)
	if email == "" {
		return nil, "", domain.ErrInvalidCredentials
	}
	if err := validatePassword(input.Password, input.PasswordConfirm); err != nil {
		return nil, "", err
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up email: %w", err)
	}
	if existing != nil {
		return nil, "", domain.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:             email,
		Name:              strings.TrimSpace(input.Name),
		Role:              domain.RoleUser,
		PasswordHash:      hash,
		PasswordChangedAt: time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.signToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up email: %w", err)
	}
	if user == nil || !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.signToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}
	return user, token, nil
}

func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	userID, issuedAt, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrInvalidToken
	}
	if user.ChangedPasswordAfter(issuedAt) {
		return nil, domain.ErrPasswordChanged
	}
	return user, nil
}

func (s *AuthService) ForgotPassword(ctx context.Context, email, resetURLBase string) error {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return fmt.Errorf("failed to look up email: %w", err)
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	resetToken, err := generateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	expiresAt := time.Now().Add(resetTokenTTL)
	if err := s.userRepo.SetResetToken(ctx, user.ID, hashToken(resetToken), expiresAt); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/%s", strings.TrimRight(resetURLBase, "/"), resetToken)
	mail := ports.Email{
		To:      user.Email,
		Subject: "Your password reset token (valid for 10 minutes)",
		Body: fmt.Sprintf("Forgot your password? Submit a PATCH request with your new password and passwordConfirm to: %s\n"+
			"If you didn't forget your password, please ignore this email.", resetURL),
	}

	if err := s.mailer.Send(ctx, mail); err != nil {
		// The token is unusable if the user never receives it, so roll
		// the stored hash back before reporting the failure.
		if clearErr := s.userRepo.ClearResetToken(ctx, user.ID); clearErr != nil {
			return fmt.Errorf("failed to clear reset token after send failure: %w", clearErr)
		}
		return domain.ErrEmailDelivery
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, password, passwordConfirm string) (string, error) {
	if err := validatePassword(password, passwordConfirm); err != nil {
		return "", err
	}

	user, err := s.userRepo.GetByValidResetToken(ctx, hashToken(token), time.Now())
	if err != nil {
		return "", fmt.Errorf("failed to look up reset token: %w", err)
	}
	if user == nil {
		return "", domain.ErrInvalidResetToken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash, time.Now()); err != nil {
		return "", fmt.Errorf("failed to update password: %w", err)
	}

	return s.signToken(user.ID)
}

func (s *AuthService) UpdatePassword(ctx context.Context, userID uuid.UUID, current, password, passwordConfirm string) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return "", domain.ErrUserNotFound
	}
	if !s.hasher.Verify(current, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}
	if err := validatePassword(password, passwordConfirm); err != nil {
		return "", err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash, time.Now()); err != nil {
		return "", fmt.Errorf("failed to update password: %w", err)
	}

	return s.signToken(userID)
}

func (s *AuthService) signToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) parseToken(tokenString string) (uuid.UUID, time.Time, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, time.Time{}, domain.ErrInvalidToken
	}
	if claims.IssuedAt == nil {
		return uuid.Nil, time.Time{}, domain.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, time.Time{}, domain.ErrInvalidToken
	}
	return userID, claims.IssuedAt.Time, nil
}

func generateResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

func validatePassword(password, passwordConfirm string) error {
	if len(password) < 6 {
		return domain.ErrPasswordTooShort
	}
	if password != passwordConfirm {
		return domain.ErrPasswordMismatch
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
