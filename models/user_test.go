package models

import "testing"

func TestUserFullName(t *testing.T) {
	cases := []struct {
		fname, lname, want string
	}{
		{"Ava", "Stone", "Ava Stone"},
		{"Ava", "", "Ava"},
		{"", "Stone", "Stone"},
		{"", "", ""},
	}

	for _, c := range cases {
		u := User{UserFname: c.fname, UserLname: c.lname}
		if got := u.FullName(); got != c.want {
			t.Errorf("FullName(%q, %q) = %q, want %q", c.fname, c.lname, got, c.want)
		}
	}
}
