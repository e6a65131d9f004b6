package ratings

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
	err = conn.AutoMigrate(
		&models.Status{},
		&models.Role{},
		&models.User{},
		&models.Auto{},
		&models.Rate{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func seedFixtures(t *testing.T, conn *gorm.DB) (*models.User, *models.Auto) {
	t.Helper()

	status := &models.Status{Description: "to_user", Value: true}
	if err := conn.Create(status).Error; err != nil {
		t.Fatalf("seed status: %v", err)
	}
	role := &models.Role{Name: fmt.Sprintf("role-%d", status.ID)}
	if err := conn.Create(role).Error; err != nil {
		t.Fatalf("seed role: %v", err)
	}
	user := &models.User{
		Sub:      fmt.Sprintf("sub-%d", status.ID),
		Email:    fmt.Sprintf("user%d@example.com", status.ID),
		Name:     "Repo",
		Lastname: "Tester",
		IDRole:   role.ID,
		IDStatus: status.ID,
	}
	if err := conn.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	auto := &models.Auto{
		Model:    "Corolla",
		Brand:    "Toyota",
		Year:     2020,
		Price:    15000,
		BodyType: "sedan",
		Fuel:     "gasoline",
		Doors:    4,
		Motor:    "1.8L",
		Height:   1.45,
		Width:    1.78,
		Length:   4.63,
		IDStatus: status.ID,
	}
	if err := conn.Create(auto).Error; err != nil {
		t.Fatalf("seed auto: %v", err)
	}
	return user, auto
}
