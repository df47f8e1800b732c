package models

import "testing"

func TestUserDisplayName(t *testing.T) {
	t.Parallel()

	name := "Ada Obi"
	empty := ""

	tests := []struct {
		name string
		user *User
		want string
	}{
		{"nil user", nil, ""},
		{"name set", &User{Name: &name, Email: "ada@example.com"}, "Ada Obi"},
		{"empty name falls back to email local part", &User{Name: &empty, Email: "ada@example.com"}, "ada"},
		{"no name falls back to email local part", &User{Email: "ibrahim@farm.academy"}, "ibrahim"},
		{"email without at sign", &User{Email: "not-an-email"}, "not-an-email"},
		{"no name no email", &User{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.user.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}
