package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last+tag@sub.example.co.th",
	}
	invalid := []string{
		"",
		"not-an-email",
		"missing@tld",
		"@example.com",
		"user@.com",
	}

	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = true, want false", email)
		}
	}
}

func TestValidateNationalID(t *testing.T) {
	// 1101700207340: checksum digit 0 matches the mod-11 weighted sum.
	if !ValidateNationalID("1101700207340") {
		t.Error("expected valid national ID to pass")
	}
	if !ValidateNationalID(" 1101700207340 ") {
		t.Error("surrounding whitespace should be trimmed")
	}

	invalid := []string{
		"1101700207341", // wrong checksum
		"110170020734",  // 12 digits
		"11017002073400",
		"110170020734a",
		"",
	}
	for _, id := range invalid {
		if ValidateNationalID(id) {
			t.Errorf("ValidateNationalID(%q) = true, want false", id)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if ok, _ := ValidatePassword("short"); ok {
		t.Error("passwords under 8 characters must be rejected")
	}
	if ok, msg := ValidatePassword("longenough"); !ok {
		t.Errorf("expected password to pass, got %q", msg)
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := SanitizeInput("  hello\x00world  "); got != "helloworld" {
		t.Errorf("SanitizeInput = %q, want %q", got, "helloworld")
	}
}
