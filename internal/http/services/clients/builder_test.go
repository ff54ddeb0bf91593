package clients

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/cursomvc/internal/domain/types"
	dto "github.com/dropDatabas3/cursomvc/internal/http/dto/clients"
	"github.com/dropDatabas3/cursomvc/internal/http/services/common"
	"github.com/dropDatabas3/cursomvc/internal/security/password"
)

func testBuilder() Builder {
	return Builder{Hasher: password.BCrypt{Cost: 4}}
}

func TestBuildNew_Maria(t *testing.T) {
	in := dto.ClientNewDTO{
		Name:     "Maria",
		Email:    "m@x.com",
		TaxID:    "123",
		Type:     1,
		Password: "pw",
		Phone1:   "111",
		Street:   "Flores",
		Number:   "10",
		CityID:   1,
	}

	c, err := testBuilder().BuildNew(in)
	require.NoError(t, err)

	assert.Zero(t, c.ID)
	assert.Len(t, c.Addresses, 1)
	assert.Equal(t, []string{"111"}, c.Phones)
	assert.NotEqual(t, "pw", c.PasswordHash)
	assert.True(t, testBuilder().Hasher.Verify("pw", c.PasswordHash))
	assert.Equal(t, types.ClientTypeIndividual, c.Type)
	assert.Equal(t, []types.Role{types.RoleClient}, c.Roles)
	assert.Equal(t, int64(1), c.Addresses[0].City.ID)
	assert.Empty(t, c.Addresses[0].City.Name)
}

func TestBuildNew_Phones(t *testing.T) {
	base := dto.ClientNewDTO{Name: "Ana", Email: "a@x.com", Type: 2, Password: "pw", CityID: 3}

	t.Run("second optional missing", func(t *testing.T) {
		in := base
		in.Phone1, in.Phone2 = "111", "222"
		c, err := testBuilder().BuildNew(in)
		require.NoError(t, err)
		assert.Equal(t, []string{"111", "222"}, c.Phones)
	})

	t.Run("gap keeps order", func(t *testing.T) {
		in := base
		in.Phone1, in.Phone3 = "111", "333"
		c, err := testBuilder().BuildNew(in)
		require.NoError(t, err)
		assert.Equal(t, []string{"111", "333"}, c.Phones)
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		in := base
		in.Phone1, in.Phone2, in.Phone3 = "111", "111", "222"
		c, err := testBuilder().BuildNew(in)
		require.NoError(t, err)
		assert.Equal(t, []string{"111", "222"}, c.Phones)
	})

	t.Run("no phone", func(t *testing.T) {
		_, err := testBuilder().BuildNew(base)
		assert.ErrorIs(t, err, common.ErrValidation)
	})
}

func TestBuildNew_BackReferences(t *testing.T) {
	in := dto.ClientNewDTO{Name: "Ana", Type: 1, Password: "pw", Phone1: "1", CityID: 3}
	c, err := testBuilder().BuildNew(in)
	require.NoError(t, err)
	for _, a := range c.Addresses {
		assert.Same(t, c, a.Client)
	}
}

func TestBuildNew_UnknownType(t *testing.T) {
	for _, code := range []int{0, 3, -1} {
		_, err := testBuilder().BuildNew(dto.ClientNewDTO{Type: code, Password: "pw", Phone1: "1"})
		var ve *common.ValidationError
		require.ErrorAs(t, err, &ve, "code %d", code)
		assert.Equal(t, "tipo", ve.Violations[0].Field)
	}
}

func TestBuildNew_EmptyPassword(t *testing.T) {
	_, err := testBuilder().BuildNew(dto.ClientNewDTO{Type: 1, Phone1: "1"})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestBuildUpdate_OnlyEditableFields(t *testing.T) {
	c := testBuilder().BuildUpdate(dto.ClientDTO{ID: 9, Name: "Novo", Email: "n@x.com"})
	assert.Equal(t, int64(9), c.ID)
	assert.Equal(t, "Novo", c.Name)
	assert.Equal(t, "n@x.com", c.Email)
	assert.Empty(t, c.PasswordHash)
	assert.Empty(t, c.Addresses)
	assert.Empty(t, c.Phones)
}
