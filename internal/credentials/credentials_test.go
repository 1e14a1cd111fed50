package credentials

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testOwner  = "canteen@vit.edu"
	testDomain = "vit.edu"
)

func TestExpectedDerivesPRN(t *testing.T) {
	d := NewPRNDeriver(testOwner, testDomain)

	cases := []struct {
		email string
		want  string
	}{
		{"jane.123@vit.edu", "123"},
		{"arjun.22010456@vit.edu", "22010456"},
		{"a.1@vit.edu", "1"},
	}
	for _, tc := range cases {
		got, err := d.Expected(tc.email)
		require.NoError(t, err, tc.email)
		require.Equal(t, tc.want, got)
	}
}

func TestExpectedOwnerLiteral(t *testing.T) {
	d := NewPRNDeriver(testOwner, testDomain)

	got, err := d.Expected(testOwner)
	require.NoError(t, err)
	require.Equal(t, OwnerToken, got)
}

func TestExpectedRejectsBadShapes(t *testing.T) {
	d := NewPRNDeriver(testOwner, testDomain)

	bad := []string{
		"",
		"jane@vit.edu",          // no PRN segment
		"jane.abc@vit.edu",      // PRN not numeric
		"jane.123@gmail.com",    // wrong domain
		"jane.123@vit.edu.evil", // trailing junk
		"123.jane@vit.edu",      // segments swapped
		"jane.123@VIT.edu",      // domain is case sensitive
	}
	for _, email := range bad {
		_, err := d.Expected(email)
		require.ErrorIs(t, err, ErrInvalidEmailFormat, email)
	}
}

func TestVerify(t *testing.T) {
	d := NewPRNDeriver(testOwner, testDomain)

	require.NoError(t, Verify(d, "jane.123@vit.edu", "123"))
	require.NoError(t, Verify(d, testOwner, OwnerToken))

	require.ErrorIs(t, Verify(d, "jane.123@vit.edu", "999"), ErrInvalidCredentials)
	require.ErrorIs(t, Verify(d, testOwner, "123"), ErrInvalidCredentials)
	// format failure wins before the credential check
	require.ErrorIs(t, Verify(d, "not-an-email", "123"), ErrInvalidEmailFormat)
}
