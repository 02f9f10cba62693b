package db

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/models"
)

func TestSeedIdempotent(t *testing.T) {
	d, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.AutoMigrate(&models.Role{}, &models.Branch{}); err != nil {
		t.Fatal(err)
	}
	seed(d)
	seed(d)
	var roleCount, branchCount int64
	d.Model(&models.Role{}).Count(&roleCount)
	d.Model(&models.Branch{}).Count(&branchCount)
	if roleCount != 4 {
		t.Fatalf("expected 4 roles got %d", roleCount)
	}
	if branchCount != 1 {
		t.Fatalf("expected 1 branch got %d", branchCount)
	}
	// Ensure baseline entries exist exactly once (idempotency)
	var c1, c2 int64
	d.Model(&models.Role{}).Where("kind = ?", models.RoleKindMarketing).Count(&c1)
	d.Model(&models.Role{}).Where("kind = ?", models.RoleKindDriver).Count(&c2)
	if c1 != 1 || c2 != 1 {
		t.Fatalf("baseline roles duplicated or missing: marketing=%d driver=%d", c1, c2)
	}
}
