package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Khushi2755/academix/internal/dto"
	"github.com/Khushi2755/academix/internal/model"
	"github.com/Khushi2755/academix/internal/repository"
	"github.com/Khushi2755/academix/pkg/apperror"
	"github.com/Khushi2755/academix/pkg/mailer"
	"github.com/Khushi2755/academix/pkg/storage"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AvatarFile is an optional avatar uploaded during registration.
type AvatarFile struct {
	Reader   io.Reader
	FileName string
}

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterInput, avatar *AvatarFile) (*dto.AuthResponse, error)
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
}

type authService struct {
	repo         repository.UserRepository
	imageStorage storage.ImageStorage
	mail         *mailer.Mailer
	secret       string
	tokenTTL     time.Duration
}

func NewAuthService(repo repository.UserRepository, imageStorage storage.ImageStorage, mail *mailer.Mailer) AuthService {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "change-me"
	}

	ttl := 24 * time.Hour
	if ttlStr := os.Getenv("JWT_TTL_MINUTES"); ttlStr != "" {
		if minutes, err := strconv.Atoi(ttlStr); err == nil {
			ttl = time.Duration(minutes) * time.Minute
		}
	}

	return &authService{
		repo:         repo,
		imageStorage: imageStorage,
		mail:         mail,
		secret:       secret,
		tokenTTL:     ttl,
	}
}

func validRole(name string) bool {
	switch name {
	case model.RoleStudent, model.RoleTeacher, model.RoleCoordinator:
		return true
	}
	return false
}

func (s *authService) Register(ctx context.Context, input dto.RegisterInput, avatar *AvatarFile) (*dto.AuthResponse, error) {
	if !validRole(input.Role) {
		return nil, apperror.InvalidInput("Invalid role")
	}

	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperror.Conflict("User already exists with this email")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	studentID := normalizeOptional(input.StudentID)
	if studentID != nil {
		if _, err := s.repo.FindByStudentID(ctx, *studentID); err == nil {
			return nil, apperror.Conflict("Student ID already exists")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	// Roles are created lazily on first registration of that name.
	role, err := s.repo.FirstOrCreateRole(ctx, input.Role)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var avatarURL *string
	if avatar != nil && avatar.Reader != nil && s.imageStorage != nil {
		url, err := s.imageStorage.UploadImage(ctx, avatar.Reader, "avatars", avatar.FileName)
		if err != nil {
			return nil, err
		}
		avatarURL = &url
	}

	roleID := role.ID
	now := time.Now()
	user := &model.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		RoleID:       &roleID,
		Department:   normalizeOptional(input.Department),
		AvatarURL:    avatarURL,
		IsActive:     true,
		LastLogin:    &now,
	}

	switch input.Role {
	case model.RoleStudent:
		user.StudentID = studentID
		user.Year = input.Year
	case model.RoleCoordinator:
		coordinatorID, err := s.generateCoordinatorID(ctx)
		if err != nil {
			return nil, err
		}
		user.CoordinatorID = &coordinatorID
		user.Year = input.Year
	}
	// Teachers carry no studentId, coordinatorId or year.

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	user.Role = *role

	if s.mail.Configured() {
		if err := s.mail.Send(user.Email, "Welcome to Academix",
			fmt.Sprintf("Hi %s, your %s account is ready.", user.Name, role.Name)); err != nil {
			log.Printf("welcome email to %s failed: %v", user.Email, err)
		}
	}

	return s.buildAuthResponse(user)
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorized("Invalid credentials")
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, apperror.Unauthorized("User account is deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperror.Unauthorized("Invalid credentials")
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	return s.buildAuthResponse(user)
}

// generateCoordinatorID produces a unique CC-prefixed id for new coordinators.
func (s *authService) generateCoordinatorID(ctx context.Context) (string, error) {
	for {
		candidate := fmt.Sprintf("CC%d%03d", time.Now().UnixMilli(), rand.Intn(1000))
		_, err := s.repo.FindByCoordinatorID(ctx, candidate)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
	}
}

func (s *authService) buildAuthResponse(user *model.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresAt,
		User:        UserToResponse(user),
	}, nil
}

func (s *authService) generateToken(user *model.User) (string, int64, error) {
	expiresAt := time.Now().Add(s.tokenTTL)

	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", 0, err
	}

	return signed, expiresAt.Unix(), nil
}

// UserToResponse projects a user into the profile shape the API returns.
func UserToResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Role:          user.RoleName(),
		StudentID:     user.StudentID,
		CoordinatorID: user.CoordinatorID,
		Department:    user.Department,
		Year:          user.Year,
		AvatarURL:     user.AvatarURL,
		LastLogin:     user.LastLogin,
	}
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}

	result := trimmed
	return &result
}
