package services

import (
	"applicant-tracking-api/models"

	"gorm.io/gorm"
)

// Permissions is the resolved capability set for one user. Fetch errors are
// swallowed: a resolver that cannot load its rows answers false to everything.
type Permissions struct {
	RoleID   int
	IsActive bool
	matrix   map[string]models.RolePermission
}

// ResolvePermissions loads the caller's role and permission matrix rows.
// Inactive or missing users get an empty (deny-all) set.
func ResolvePermissions(db *gorm.DB, userID int) *Permissions {
	p := &Permissions{matrix: map[string]models.RolePermission{}}

	var user models.User
	if err := db.Where("user_id = ? AND delete_at IS NULL", userID).First(&user).Error; err != nil {
		return p
	}
	p.RoleID = user.RoleID
	p.IsActive = user.IsActive

	if !user.IsActive || user.RoleID == models.RolePending {
		return p
	}

	var rows []models.RolePermission
	if err := db.Where("role_id = ?", user.RoleID).Find(&rows).Error; err != nil {
		return p
	}
	for _, row := range rows {
		p.matrix[row.Resource] = row
	}
	return p
}

func (p *Permissions) lookup(resource string) (models.RolePermission, bool) {
	if !p.IsActive || p.RoleID == models.RolePending {
		return models.RolePermission{}, false
	}
	row, ok := p.matrix[resource]
	return row, ok
}

// CanCreate reports create permission on the exact resource name.
func (p *Permissions) CanCreate(resource string) bool {
	row, ok := p.lookup(resource)
	return ok && row.CanCreate
}

func (p *Permissions) CanRead(resource string) bool {
	row, ok := p.lookup(resource)
	return ok && row.CanRead
}

func (p *Permissions) CanUpdate(resource string) bool {
	row, ok := p.lookup(resource)
	return ok && row.CanUpdate
}

func (p *Permissions) CanDelete(resource string) bool {
	row, ok := p.lookup(resource)
	return ok && row.CanDelete
}

// Identity convenience flags.
func (p *Permissions) IsHRAdmin() bool     { return p.IsActive && p.RoleID == models.RoleHRAdmin }
func (p *Permissions) IsHRStaff() bool     { return p.IsActive && p.RoleID == models.RoleHRStaff }
func (p *Permissions) IsHRManager() bool   { return p.IsActive && p.RoleID == models.RoleHRManager }
func (p *Permissions) IsInterviewer() bool { return p.IsActive && p.RoleID == models.RoleInterviewer }

// Matrix returns the raw rows keyed by resource, for the permissions endpoint.
func (p *Permissions) Matrix() map[string]models.RolePermission {
	return p.matrix
}
