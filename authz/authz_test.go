package authz

import (
	"testing"

	"github.com/bookbazaar/bookbazaar/config"
)

func TestIsAdmin(t *testing.T) {
	config.Opts = config.GetDefaultOptions()
	config.Opts.AdminEmail = "admin@bookbazaar.com"

	cases := []struct {
		email string
		want  bool
	}{
		{"admin@bookbazaar.com", true},
		{"Admin@BookBazaar.com", true},
		{"ADMIN@BOOKBAZAAR.COM", true},
		{"reader@bookbazaar.com", false},
		{"", false},
	}

	for _, c := range cases {
		if got := IsAdmin(c.email); got != c.want {
			t.Errorf("IsAdmin(%q) = %v, want %v", c.email, got, c.want)
		}
	}
}
