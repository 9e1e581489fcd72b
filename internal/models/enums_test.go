package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumLists(t *testing.T) {
	assert.Equal(t, []Condition{"Like New", "Very Good", "Good", "Acceptable"}, Conditions())
	assert.Equal(t, []Format{"Hardcover", "Paperback", "Boxed Set"}, Formats())
	assert.Len(t, Categories(), 10)
	assert.Equal(t, OrderStatusPending, OrderStatuses()[0])

	list := Formats()
	list[0] = "Scroll"
	assert.Equal(t, FormatHardcover, Formats()[0])
}

func TestParseRejectsUnknownValues(t *testing.T) {
	_, err := ParseCategory("Poetry")
	var invalid *ErrInvalidEnum
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "category", invalid.Kind)

	_, err = ParseCondition("like new")
	assert.Error(t, err)

	c, err := ParseCategory("Sci-Fi")
	require.NoError(t, err)
	assert.Equal(t, CategorySciFi, c)
}

func TestBookJSONRejectsInvalidEnum(t *testing.T) {
	var b Book
	err := json.Unmarshal([]byte(`{"title":"x","condition":"Mint","format":"Paperback","category":"Fiction"}`), &b)
	assert.Error(t, err)

	err = json.Unmarshal([]byte(`{"title":"x","condition":"Good","format":"Boxed Set","category":"Self-Help"}`), &b)
	require.NoError(t, err)
	assert.Equal(t, FormatBoxedSet, b.Format)
	assert.Equal(t, CategorySelfHelp, b.Category)
}

func TestUserPasswordHashNotSerialized(t *testing.T) {
	data, err := json.Marshal(User{ID: 1, Username: "admin", PasswordHash: "secret"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")
}
