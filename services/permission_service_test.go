package services

import (
	"database/sql/driver"
	"regexp"
	"testing"

	"applicant-tracking-api/models"
)

var userQueryPattern = regexp.MustCompile("SELECT .* FROM `users` WHERE user_id = \\? AND delete_at IS NULL")

func TestResolvePermissionsBuildsMatrix(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: userQueryPattern,
			columns: []string{"user_id", "role_id", "is_active"},
			rows:    [][]driver.Value{{int64(4), int64(models.RoleHRStaff), true}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `role_permissions` WHERE role_id = \\?"),
			args:    []driver.Value{int64(models.RoleHRStaff)},
			columns: []string{"permission_id", "role_id", "resource", "can_create", "can_read", "can_update", "can_delete"},
			rows: [][]driver.Value{
				{int64(1), int64(models.RoleHRStaff), "candidates", true, true, true, false},
				{int64(2), int64(models.RoleHRStaff), "proposals", true, true, false, false},
			},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	p := ResolvePermissions(db, 4)
	if !p.IsHRStaff() {
		t.Fatalf("expected HR staff, got role %d", p.RoleID)
	}
	if !p.CanCreate("candidates") || !p.CanUpdate("candidates") {
		t.Fatal("expected create/update on candidates")
	}
	if p.CanDelete("candidates") {
		t.Fatal("delete on candidates should be denied")
	}
	if p.CanUpdate("proposals") {
		t.Fatal("update on proposals should be denied")
	}
	if p.CanRead("users") {
		t.Fatal("unknown resource should be denied")
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestResolvePermissionsDeniesInactiveUser(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: userQueryPattern,
			columns: []string{"user_id", "role_id", "is_active"},
			rows:    [][]driver.Value{{int64(8), int64(models.RoleHRManager), false}},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	p := ResolvePermissions(db, 8)
	if p.IsHRManager() {
		t.Fatal("inactive user must not pass role checks")
	}
	if p.CanRead("candidates") {
		t.Fatal("inactive user must be denied all resources")
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestResolvePermissionsDeniesPendingRole(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: userQueryPattern,
			columns: []string{"user_id", "role_id", "is_active"},
			rows:    [][]driver.Value{{int64(9), int64(models.RolePending), true}},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	p := ResolvePermissions(db, 9)
	if p.CanRead("candidates") || p.CanCreate("candidates") {
		t.Fatal("pending-approval user must be denied all resources")
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestResolvePermissionsUnknownUserDeniesAll(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: userQueryPattern,
			columns: []string{"user_id", "role_id", "is_active"},
			rows:    [][]driver.Value{},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	p := ResolvePermissions(db, 12345)
	if p.CanRead("candidates") || p.IsHRAdmin() {
		t.Fatal("missing user must resolve to deny-all")
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
