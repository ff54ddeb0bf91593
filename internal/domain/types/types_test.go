package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientTypeFromCode(t *testing.T) {
	ct, err := ClientTypeFromCode(1)
	require.NoError(t, err)
	assert.Equal(t, ClientTypeIndividual, ct)

	ct, err = ClientTypeFromCode(2)
	require.NoError(t, err)
	assert.Equal(t, ClientTypeCompany, ct)

	for _, code := range []int{0, 3, -1} {
		_, err := ClientTypeFromCode(code)
		assert.Error(t, err, "code %d", code)
	}
}

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"ROLE_ADMIN":   RoleAdmin,
		"admin":        RoleAdmin,
		" ADMIN ":      RoleAdmin,
		"ROLE_CLIENTE": RoleClient,
		"cliente":      RoleClient,
	}
	for in, want := range cases {
		got, err := ParseRole(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseRole("root")
	assert.Error(t, err)
}

func TestRoleFromCode(t *testing.T) {
	r, err := RoleFromCode(1)
	require.NoError(t, err)
	assert.Equal(t, "ROLE_ADMIN", r.String())

	_, err = RoleFromCode(9)
	assert.Error(t, err)
}
