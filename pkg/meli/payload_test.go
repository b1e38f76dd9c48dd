package meli_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meliview/meli_api/pkg/meli"
)

func TestPayloadGettersDefaultOnMissingFields(t *testing.T) {
	var payload meli.Payload
	require.NoError(t, json.Unmarshal([]byte(`{
		"title": "Widget",
		"price": 9.5,
		"sold_quantity": 3,
		"accepts_mercadopago": true,
		"shipping": {"mode": "me2", "tags": ["self_service_in", 7]},
		"pictures": [{"url": "http://x/1.jpg"}, "not-an-object"]
	}`), &payload))

	assert.Equal(t, "Widget", payload.String("title"))
	assert.Equal(t, 9.5, payload.Float("price"))
	assert.Equal(t, 3, payload.Int("sold_quantity"))
	assert.True(t, payload.Bool("accepts_mercadopago"))

	// missing or mistyped fields fall back to zero values
	assert.Equal(t, "", payload.String("permalink"))
	assert.Equal(t, "", payload.String("price"))
	assert.Zero(t, payload.Float("title"))
	assert.False(t, payload.Bool("shipping"))
	assert.Empty(t, payload.Object("title"))
	assert.Nil(t, payload.List("missing"))

	assert.Equal(t, "me2", payload.Object("shipping").String("mode"))
	assert.Equal(t, []string{"self_service_in"}, payload.Object("shipping").Strings("tags"))

	pictures := payload.Objects("pictures")
	require.Len(t, pictures, 1, "non-object entries are skipped")
	assert.Equal(t, "http://x/1.jpg", pictures[0].String("url"))
}
