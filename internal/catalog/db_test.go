package catalog

import (
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
		&models.AutoImage{},
		&models.Rate{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func mustSeedStatus(t *testing.T, conn *gorm.DB, description string, value bool) *models.Status {
	t.Helper()
	status := &models.Status{Description: description, Value: value}
	if err := conn.Create(status).Error; err != nil {
		t.Fatalf("seed status: %v", err)
	}
	return status
}

func mustSeedAuto(t *testing.T, conn *gorm.DB, statusID int64, brand, model string) *models.Auto {
	t.Helper()
	auto := &models.Auto{
		Model:    model,
		Brand:    brand,
		Year:     2020,
		Price:    15000,
		BodyType: "sedan",
		Fuel:     "gasoline",
		Doors:    4,
		Motor:    "1.8L",
		Height:   1.45,
		Width:    1.78,
		Length:   4.63,
		IDStatus: statusID,
	}
	if err := conn.Create(auto).Error; err != nil {
		t.Fatalf("seed auto: %v", err)
	}
	return auto
}
