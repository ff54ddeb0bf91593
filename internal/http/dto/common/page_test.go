package common

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/cursomvc/internal/domain/repository"
)

func TestFromPage(t *testing.T) {
	p := repository.Page[int]{Content: []int{1, 2}, TotalElements: 14, Number: 1, Size: 12, OrderBy: "nome", Direction: repository.Asc}
	resp := FromPage(p)

	assert.Equal(t, 2, resp.TotalPages)
	assert.Equal(t, 2, resp.NumberOfElements)
	assert.False(t, resp.First)
	assert.True(t, resp.Last)
	assert.False(t, resp.Empty)
	assert.Equal(t, []SortOrder{{Property: "nome", Direction: "ASC"}}, resp.Sort)
}

func TestFromPage_EmptyBeyondLast(t *testing.T) {
	resp := FromPage(repository.Page[string]{TotalElements: 30, Number: 5, Size: 12})

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"content":[]`)
	assert.True(t, resp.Empty)
	assert.True(t, resp.Last)
	assert.Equal(t, 3, resp.TotalPages)
}
