package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/Khushi2755/academix/internal/model"
	"github.com/Khushi2755/academix/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// unique in-memory DB per test name to avoid leakage via shared cache
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Role{}, &model.User{},
		&model.Club{}, &model.ClubMember{}, &model.Event{},
		&model.Notification{},
		&model.Course{}, &model.CourseStudent{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

var testHashOnce string

func testPasswordHash(t *testing.T) string {
	t.Helper()
	if testHashOnce == "" {
		hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("hash password: %v", err)
		}
		testHashOnce = string(hash)
	}
	return testHashOnce
}

// createUser seeds an active user with the given role, creating the role row
// on first use.
func createUser(t *testing.T, db *gorm.DB, name, email, roleName string, studentID *string) *model.User {
	t.Helper()
	repo := repository.NewUserRepository(db)
	role, err := repo.FirstOrCreateRole(context.Background(), roleName)
	if err != nil {
		t.Fatalf("create role %s: %v", roleName, err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: testPasswordHash(t),
		RoleID:       &role.ID,
		StudentID:    studentID,
		IsActive:     true,
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	user.Role = *role
	return user
}

func strp(s string) *string { return &s }
