package qr

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"live-reservation/internal/models"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	gen := NewQRGenerator("door-secret")

	res := models.Reservation{ID: 7, EventID: 1, Name: "A", People: 3, Email: "a@x.com", Status: "active"}
	data, err := json.Marshal(res)
	require.NoError(t, err)

	payload, err := encryptAES(data, gen.secret)
	require.NoError(t, err)
	assert.NotContains(t, payload, "a@x.com")

	decoded, err := gen.DecryptPayload(payload)
	require.NoError(t, err)
	assert.Equal(t, res, *decoded)
}

func TestDecryptWithWrongSecret(t *testing.T) {
	gen := NewQRGenerator("door-secret")
	other := NewQRGenerator("some-other-secret")

	data, err := json.Marshal(models.Reservation{ID: 7, Name: "A"})
	require.NoError(t, err)

	payload, err := encryptAES(data, gen.secret)
	require.NoError(t, err)

	// Wrong key yields garbage that fails to decode as JSON.
	_, err = other.DecryptPayload(payload)
	assert.Error(t, err)
}

func TestGenerateEncryptedQRProducesPNG(t *testing.T) {
	gen := NewQRGenerator("door-secret")

	png, err := gen.GenerateEncryptedQR(models.Reservation{ID: 7, EventID: 1, Name: "A", People: 3})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}
