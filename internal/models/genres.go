package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// MaxGenres is the cap on genre tags per novel and per user profile.
const MaxGenres = 3

// Genres is the fixed catalog selectable across the platform.
var Genres = []string{
	"Horror", "Fantasy", "Adventure", "Mystery", "Literary", "Dystopian",
	"Romance", "Sci-Fi", "Thriller", "Detective", "Urban", "Action",
	"ACG", "Games", "LGBT+", "War", "Realistic", "History", "Cherads",
	"General", "Teen", "Devotional", "Poetry",
}

var genreSet = func() map[string]bool {
	m := make(map[string]bool, len(Genres))
	for _, g := range Genres {
		m[g] = true
	}
	return m
}()

var (
	ErrTooManyGenres = errors.New("at most 3 genres may be selected")
	ErrUnknownGenre  = errors.New("unknown genre")
)

// ValidateGenres rejects oversized or unknown selections before any store
// call is issued.
func ValidateGenres(genres []string) error {
	if len(genres) > MaxGenres {
		return ErrTooManyGenres
	}
	for _, g := range genres {
		if !genreSet[g] {
			return fmt.Errorf("%w: %s", ErrUnknownGenre, g)
		}
	}
	return nil
}

// GenreList is an ordered genre selection persisted as a JSON array in a
// single text column.
type GenreList []string

func (g GenreList) Value() (driver.Value, error) {
	if g == nil {
		g = GenreList{}
	}
	b, err := json.Marshal([]string(g))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (g *GenreList) Scan(src any) error {
	if src == nil {
		*g = GenreList{}
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported genre column type %T", src)
	}
	if len(raw) == 0 {
		*g = GenreList{}
		return nil
	}
	return json.Unmarshal(raw, (*[]string)(g))
}

func (g GenreList) Contains(genre string) bool {
	for _, have := range g {
		if have == genre {
			return true
		}
	}
	return false
}
