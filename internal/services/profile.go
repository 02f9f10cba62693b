package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/models"
)

var ErrBasicIncomplete = errors.New("basic profile step must be completed first")

// ProfileService implements the two-step employee profile gate: basic info
// first, then role-specific info. The role-specific requirements key off
// Role.Kind, a stable enum column, never off the display name.
type ProfileService struct{ DB *gorm.DB }

func NewProfileService(db *gorm.DB) *ProfileService { return &ProfileService{DB: db} }

type ProfileStatus struct {
	BasicComplete bool   `json:"basic_complete"`
	RoleComplete  bool   `json:"role_complete"`
	NextStep      string `json:"next_step"` // "basic", "role", or "done"
}

type BasicInfo struct {
	Address          string `json:"address"`
	EmergencyContact string `json:"emergency_contact"`
}

type RoleInfo struct {
	Region         string  `json:"region"`
	CommissionRate float64 `json:"commission_rate"`
	LicenseClass   string  `json:"license_class"`
}

func basicComplete(p *models.EmployeeProfile) bool {
	return p != nil && strings.TrimSpace(p.Address) != "" && strings.TrimSpace(p.EmergencyContact) != ""
}

func roleComplete(kind string, p *models.EmployeeProfile) bool {
	if p == nil {
		return false
	}
	switch kind {
	case models.RoleKindMarketing:
		return strings.TrimSpace(p.Region) != ""
	case models.RoleKindDriver:
		return strings.TrimSpace(p.LicenseClass) != ""
	default:
		// roles without a specific step are complete once basic info is in
		return true
	}
}

func (s *ProfileService) load(userID uint) (*models.EmployeeProfile, string, error) {
	var user models.User
	if err := s.DB.Preload("Role").First(&user, userID).Error; err != nil {
		return nil, "", err
	}
	var profile models.EmployeeProfile
	err := s.DB.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.Role.Kind, nil
	}
	if err != nil {
		return nil, "", err
	}
	return &profile, user.Role.Kind, nil
}

// Status reports which step the user is on.
func (s *ProfileService) Status(userID uint) (ProfileStatus, error) {
	profile, kind, err := s.load(userID)
	if err != nil {
		return ProfileStatus{}, err
	}
	st := ProfileStatus{
		BasicComplete: basicComplete(profile),
	}
	st.RoleComplete = st.BasicComplete && roleComplete(kind, profile)
	switch {
	case !st.BasicComplete:
		st.NextStep = "basic"
	case !st.RoleComplete:
		st.NextStep = "role"
	default:
		st.NextStep = "done"
	}
	return st, nil
}

// SaveBasic upserts the basic step.
func (s *ProfileService) SaveBasic(userID uint, in BasicInfo) error {
	profile, _, err := s.load(userID)
	if err != nil {
		return err
	}
	if profile == nil {
		profile = &models.EmployeeProfile{UserID: userID}
	}
	profile.Address = in.Address
	profile.EmergencyContact = in.EmergencyContact
	return s.DB.Save(profile).Error
}

// SaveRole upserts the role-specific step; gated on the basic step.
func (s *ProfileService) SaveRole(userID uint, in RoleInfo) error {
	profile, _, err := s.load(userID)
	if err != nil {
		return err
	}
	if !basicComplete(profile) {
		return ErrBasicIncomplete
	}
	profile.Region = in.Region
	profile.CommissionRate = in.CommissionRate
	profile.LicenseClass = in.LicenseClass
	return s.DB.Save(profile).Error
}
