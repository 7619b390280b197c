package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/borgmon/race-alarm/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	races, err := DecodeJSON(strings.NewReader(`[
		{"time":"14:00","place":"Ascot","details":"Handicap","runners":8},
		{"time":"14:30","place":"York","details":"Maiden Stakes","runners":11}
	]`))
	require.NoError(t, err)
	assert.Equal(t, []models.Race{
		{Time: "14:00", Place: "Ascot", Details: "Handicap", Runners: 8},
		{Time: "14:30", Place: "York", Details: "Maiden Stakes", Runners: 11},
	}, races)
}

func TestDecodeJSONRejectsGarbage(t *testing.T) {
	_, err := DecodeJSON(strings.NewReader(`<html>`))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate([]models.Race{{Time: "14:00", Place: "Ascot"}}))
	assert.ErrorIs(t, Validate(nil), ErrEmpty)

	err := Validate([]models.Race{
		{Time: "14:00", Place: "Ascot"},
		{Time: "2pm", Place: "York"},
		{Time: "15:00", Place: " "},
		{Time: "16:00", Place: "Kelso", Runners: -1},
		{Time: "14:00", Place: "Ascot"},
	})
	require.Error(t, err)

	var fields []string
	for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
		var ve *ValidationError
		require.True(t, errors.As(e, &ve))
		fields = append(fields, ve.Field)
	}
	assert.Equal(t, []string{"time", "place", "runners", "id"}, fields)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, 1, ve.Index)
	assert.Contains(t, ve.Error(), `"2pm"`)
}

func TestStaticCardIsValid(t *testing.T) {
	races := Static()
	require.NotEmpty(t, races)
	assert.NoError(t, Validate(races))
}
