package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseParams(t *testing.T, raw string) Params {
	t.Helper()
	var p Params
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	return p
}

func TestWebhookRequest_SessionID(t *testing.T) {
	req := WebhookRequest{Session: "projects/habesha/agent/sessions/abc-123"}
	assert.Equal(t, "abc-123", req.SessionID())

	req = WebhookRequest{Session: "bare-id"}
	assert.Equal(t, "bare-id", req.SessionID())
}

func TestParams_Strings(t *testing.T) {
	t.Run("list of strings", func(t *testing.T) {
		p := parseParams(t, `{"Ethiopian-food": ["Doro Wat", "Kitfo"]}`)
		values, err := p.Strings("Ethiopian-food")
		require.NoError(t, err)
		assert.Equal(t, []string{"Doro Wat", "Kitfo"}, values)
	})

	t.Run("scalar string becomes single element", func(t *testing.T) {
		p := parseParams(t, `{"Ethiopian-food": "Tibs"}`)
		values, err := p.Strings("Ethiopian-food")
		require.NoError(t, err)
		assert.Equal(t, []string{"Tibs"}, values)
	})

	t.Run("absent key and empty list yield nil", func(t *testing.T) {
		p := parseParams(t, `{"Ethiopian-food": []}`)
		values, err := p.Strings("Ethiopian-food")
		require.NoError(t, err)
		assert.Nil(t, values)

		values, err = p.Strings("missing")
		require.NoError(t, err)
		assert.Nil(t, values)
	})

	t.Run("numeric element is an error", func(t *testing.T) {
		p := parseParams(t, `{"Ethiopian-food": [7]}`)
		_, err := p.Strings("Ethiopian-food")
		assert.Error(t, err)
	})
}

func TestParams_Floats(t *testing.T) {
	t.Run("list of numbers", func(t *testing.T) {
		p := parseParams(t, `{"number": [2, 1.5]}`)
		values, err := p.Floats("number")
		require.NoError(t, err)
		assert.Equal(t, []float64{2, 1.5}, values)
	})

	t.Run("numeric strings are accepted", func(t *testing.T) {
		p := parseParams(t, `{"number": ["3"]}`)
		values, err := p.Floats("number")
		require.NoError(t, err)
		assert.Equal(t, []float64{3}, values)
	})

	t.Run("non-numeric string is an error", func(t *testing.T) {
		p := parseParams(t, `{"number": ["abc"]}`)
		_, err := p.Floats("number")
		assert.Error(t, err)
	})
}

func TestParams_Float(t *testing.T) {
	t.Run("scalar number", func(t *testing.T) {
		p := parseParams(t, `{"number": 63321}`)
		value, present, err := p.Float("number")
		require.NoError(t, err)
		assert.True(t, present)
		assert.Equal(t, float64(63321), value)
	})

	t.Run("unwraps first list element", func(t *testing.T) {
		p := parseParams(t, `{"number": [63321, 99]}`)
		value, present, err := p.Float("number")
		require.NoError(t, err)
		assert.True(t, present)
		assert.Equal(t, float64(63321), value)
	})

	t.Run("absent, null and empty list read as not present", func(t *testing.T) {
		for _, raw := range []string{`{}`, `{"number": null}`, `{"number": []}`} {
			p := parseParams(t, raw)
			_, present, err := p.Float("number")
			require.NoError(t, err)
			assert.False(t, present, "raw: %s", raw)
		}
	})

	t.Run("non-numeric content is an error", func(t *testing.T) {
		p := parseParams(t, `{"number": "abc"}`)
		_, present, err := p.Float("number")
		assert.True(t, present)
		assert.Error(t, err)
	})
}
