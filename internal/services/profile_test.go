package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/models"
)

func setupProfileDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Role{}, &models.User{}, &models.EmployeeProfile{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUserWithRole(t *testing.T, db *gorm.DB, kind string) models.User {
	t.Helper()
	role := models.Role{Name: "role-" + kind, Kind: kind}
	require.NoError(t, db.Create(&role).Error)
	user := models.User{Email: kind + "@example.com", Password: "x", RoleID: role.ID}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestProfileGateMarketing(t *testing.T) {
	db := setupProfileDB(t)
	svc := NewProfileService(db)
	user := seedUserWithRole(t, db, models.RoleKindMarketing)

	st, err := svc.Status(user.ID)
	require.NoError(t, err)
	assert.False(t, st.BasicComplete)
	assert.Equal(t, "basic", st.NextStep)

	// role step is gated on the basic step
	err = svc.SaveRole(user.ID, RoleInfo{Region: "Coast"})
	assert.ErrorIs(t, err, ErrBasicIncomplete)

	require.NoError(t, svc.SaveBasic(user.ID, BasicInfo{Address: "P.O. Box 12", EmergencyContact: "0711000111"}))
	st, err = svc.Status(user.ID)
	require.NoError(t, err)
	assert.True(t, st.BasicComplete)
	assert.False(t, st.RoleComplete)
	assert.Equal(t, "role", st.NextStep)

	require.NoError(t, svc.SaveRole(user.ID, RoleInfo{Region: "Coast", CommissionRate: 0.05}))
	st, err = svc.Status(user.ID)
	require.NoError(t, err)
	assert.True(t, st.RoleComplete)
	assert.Equal(t, "done", st.NextStep)
}

func TestProfileGateStaffHasNoRoleStep(t *testing.T) {
	db := setupProfileDB(t)
	svc := NewProfileService(db)
	user := seedUserWithRole(t, db, models.RoleKindStaff)

	require.NoError(t, svc.SaveBasic(user.ID, BasicInfo{Address: "addr", EmergencyContact: "ec"}))
	st, err := svc.Status(user.ID)
	require.NoError(t, err)
	assert.True(t, st.RoleComplete)
	assert.Equal(t, "done", st.NextStep)
}
