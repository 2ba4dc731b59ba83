package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateGenres(t *testing.T) {
	assert.NoError(t, ValidateGenres(nil))
	assert.NoError(t, ValidateGenres([]string{"Fantasy"}))
	assert.NoError(t, ValidateGenres([]string{"Fantasy", "Romance", "Sci-Fi"}))

	err := ValidateGenres([]string{"Fantasy", "Romance", "Sci-Fi", "Horror"})
	assert.ErrorIs(t, err, ErrTooManyGenres)

	err = ValidateGenres([]string{"Fantasy", "Cooking"})
	assert.ErrorIs(t, err, ErrUnknownGenre)
}

func TestGenreList_RoundTrip(t *testing.T) {
	genres := GenreList{"Fantasy", "LGBT+"}

	value, err := genres.Value()
	assert.NoError(t, err)
	assert.Equal(t, `["Fantasy","LGBT+"]`, value)

	var scanned GenreList
	assert.NoError(t, scanned.Scan(value))
	assert.Equal(t, genres, scanned)
}

func TestGenreList_ScanEmpty(t *testing.T) {
	var g GenreList
	assert.NoError(t, g.Scan(nil))
	assert.Empty(t, g)

	assert.NoError(t, g.Scan(""))
	assert.Empty(t, g)
}

func TestGenreList_NilValue(t *testing.T) {
	var g GenreList
	value, err := g.Value()
	assert.NoError(t, err)
	assert.Equal(t, "[]", value)
}

func TestGenreList_Contains(t *testing.T) {
	g := GenreList{"Fantasy", "Romance"}
	assert.True(t, g.Contains("Romance"))
	assert.False(t, g.Contains("Horror"))
}
