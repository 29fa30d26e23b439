package domain

import "testing"

func TestParseRole(t *testing.T) {
	valid := []string{"ADMIN", "STORE", "USER"}
	for _, s := range valid {
		role, err := ParseRole(s)
		if err != nil {
			t.Fatalf("ParseRole(%q) error: %v", s, err)
		}
		if string(role) != s {
			t.Fatalf("ParseRole(%q) = %q", s, role)
		}
		if !role.Valid() {
			t.Fatalf("role %q should be valid", role)
		}
	}

	invalid := []string{"", "admin", "OWNER", "Store", "USER "}
	for _, s := range invalid {
		if _, err := ParseRole(s); err == nil {
			t.Fatalf("ParseRole(%q) should fail", s)
		}
	}

	if Role("MODERATOR").Valid() {
		t.Fatalf("unknown role should not be valid")
	}
}
