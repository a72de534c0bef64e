package id

import (
	"encoding/hex"
	"regexp"
	"testing"
)

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

func TestNewID32_FormatAndDecode(t *testing.T) {
	got := NewID32()

	if len(got) != 32 {
		t.Fatalf("length = %d, want 32 (got=%q)", len(got), got)
	}
	// lowercase hex only, no separators or prefixes
	if !reHex32.MatchString(got) {
		t.Fatalf("not 32-char lowercase hex: %q", got)
	}
	b, err := hex.DecodeString(got)
	if err != nil {
		t.Fatalf("hex.DecodeString error: %v", err)
	}
	if len(b) != 16 {
		t.Fatalf("decoded bytes = %d, want 16", len(b))
	}
}

func TestNewID32_Uniqueness(t *testing.T) {
	const n = 200
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		id := NewID32()
		if _, ok := seen[id]; ok {
			t.Fatalf("duplicate id after %d iterations: %q", i, id)
		}
		seen[id] = struct{}{}
	}
}

func TestNewRegistrationNumber(t *testing.T) {
	cases := []struct {
		seq  uint64
		want string
	}{
		{0, "REG-0000000000"},
		{42, "REG-0000000042"},
		{9999999999, "REG-9999999999"},
	}
	re := regexp.MustCompile(`^[A-Z]{1,4}-?[0-9]{1,10}$`)
	for _, tc := range cases {
		got := NewRegistrationNumber(tc.seq)
		if got != tc.want {
			t.Errorf("NewRegistrationNumber(%d) = %q, want %q", tc.seq, got, tc.want)
		}
		if !re.MatchString(got) {
			t.Errorf("%q does not match the registration number format", got)
		}
	}
}
