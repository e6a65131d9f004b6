package users

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/coauto/coauto-backend/pkg/db/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Status{}, &models.Role{}, &models.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func mustSeedUser(t *testing.T, conn *gorm.DB, n int) *models.User {
	t.Helper()

	status := &models.Status{Description: "to_user", Value: true}
	if err := conn.FirstOrCreate(status, models.Status{Description: "to_user", Value: true}).Error; err != nil {
		t.Fatalf("seed status: %v", err)
	}
	role := &models.Role{Name: "customer"}
	if err := conn.FirstOrCreate(role, models.Role{Name: "customer"}).Error; err != nil {
		t.Fatalf("seed role: %v", err)
	}
	user := &models.User{
		Sub:      fmt.Sprintf("sub-%d", n),
		Email:    fmt.Sprintf("user%d@example.com", n),
		Name:     "Repo",
		Lastname: "Tester",
		IDRole:   role.ID,
		IDStatus: status.ID,
	}
	if err := conn.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}
