package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONObject(t *testing.T) {
	t.Run("plain object", func(t *testing.T) {
		got, err := parseJSONObject(`{"Amount": 12.5, "Currency": "USD"}`)
		require.NoError(t, err)
		assert.Equal(t, 12.5, got["Amount"])
	})

	t.Run("object wrapped in prose", func(t *testing.T) {
		got, err := parseJSONObject(`Here is the result: {"Vendor/Store": "Cafe"} hope it helps`)
		require.NoError(t, err)
		assert.Equal(t, "Cafe", got["Vendor/Store"])
	})

	t.Run("markdown fenced object", func(t *testing.T) {
		content := "```json\n{\"Amount\": 3}\n```"
		got, err := parseJSONObject(content)
		require.NoError(t, err)
		assert.Equal(t, float64(3), got["Amount"])
	})

	t.Run("no object", func(t *testing.T) {
		_, err := parseJSONObject("sorry, I cannot read this receipt")
		assert.Error(t, err)
	})
}
