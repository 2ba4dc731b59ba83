package models

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Shelved rows must not block deleting the user or the novel they point at.
func TestLibraryEntryAssociationsCascade(t *testing.T) {
	typ := reflect.TypeOf(LibraryEntry{})

	for _, name := range []string{"User", "Novel"} {
		field, ok := typ.FieldByName(name)
		assert.True(t, ok, "missing association field %s", name)
		assert.True(t, strings.Contains(field.Tag.Get("gorm"), "constraint:OnDelete:CASCADE"),
			"%s association must cascade on delete", name)
	}
}
