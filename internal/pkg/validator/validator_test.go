package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		if got := IsEmpty(c.input); got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2026-02-28"); !ok {
		t.Error("IsValidDate(2026-02-28) = false, want true")
	}
	for _, s := range []string{"2026-02-30", "28-02-2026", "2026/02/28", ""} {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	kinds := []string{"USER", "WORKPLACE", "POSITION"}
	if !IsInSlice("USER", kinds) {
		t.Error("IsInSlice(USER) = false, want true")
	}
	if IsInSlice("user", kinds) {
		t.Error("IsInSlice is case sensitive; lowercase must not match")
	}
	if IsInSlice("HOLIDAY", kinds) {
		t.Error("IsInSlice(HOLIDAY) = true, want false")
	}
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "name", Message: "name is required"},
		{Field: "limit", Message: "limit must not exceed 100"},
	}
	m := errs.ToMap()
	if len(m) != 2 || m["name"] != "name is required" || m["limit"] != "limit must not exceed 100" {
		t.Errorf("ToMap() = %v", m)
	}
}
