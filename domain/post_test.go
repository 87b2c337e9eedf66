package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostInputValidate(t *testing.T) {
	d, err := PostInput{Date: "2024-05-01", Time: "09:00", Type: "M"}.Validate()
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", FormatDate(d))

	_, err = PostInput{Time: "09:00", Type: "M"}.Validate()
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "date")

	_, err = PostInput{Date: "2024-05-01"}.Validate()
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "time, type")

	_, err = PostInput{Date: "2024/05/01", Time: "09:00", Type: "M"}.Validate()
	assert.ErrorIs(t, err, ErrValidation)

	_, err = PostInput{Date: "2024-5-1", Time: "09:00", Type: "M"}.Validate()
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry([]Program{
		{ID: "hybrid", Name: "ハイブリッドモーニング", Color: "#FFD700"},
		{ID: "baby", Name: "濱田兄弟のグンナイベイビー", Color: "#4169E1"},
	})

	p, ok := r.Lookup("hybrid")
	assert.True(t, ok)
	assert.Equal(t, "#FFD700", p.Color)

	p, ok = r.Lookup("nope")
	assert.False(t, ok)
	assert.Equal(t, Program{ID: "nope", Name: "nope"}, p)

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, "hybrid", all[0].ID)
}
