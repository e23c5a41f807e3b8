// SPDX-License-Identifier: GPL-3.0-only

package passwordcheck

import (
	"context"
	"testing"
)

func TestValidatePassword(t *testing.T) {
	t.Setenv("PWNED_PASSWORDS_ENABLED", "false")
	ctx := context.Background()

	cases := []struct {
		password string
		ok       bool
	}{
		{"Val1d$Password", true},
		{"short1$A", true},
		{"S1$a", false},
		{"nouppercase1$", false},
		{"NOLOWERCASE1$", false},
		{"NoDigits$$here", false},
		{"NoSpecial1234", false},
	}
	for _, tc := range cases {
		err := ValidatePassword(ctx, tc.password)
		if tc.ok && err != nil {
			t.Errorf("ValidatePassword(%q) failed: %v", tc.password, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("ValidatePassword(%q) should fail", tc.password)
		}
	}
}
