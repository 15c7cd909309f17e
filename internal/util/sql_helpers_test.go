package util

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringToNullString(t *testing.T) {
	assert.Equal(t, sql.NullString{}, StringToNullString(""))
	assert.Equal(t, sql.NullString{String: "x", Valid: true}, StringToNullString("x"))
}

func TestNullStringValue(t *testing.T) {
	assert.Equal(t, "", NullStringValue(sql.NullString{}))
	assert.Equal(t, "", NullStringValue(sql.NullString{String: "stale"}))
	assert.Equal(t, "x", NullStringValue(sql.NullString{String: "x", Valid: true}))
}
