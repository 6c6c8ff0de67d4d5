package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePrefersCanonicalKey(t *testing.T) {
	in := normalizeProperty(map[string]interface{}{
		"title":  "Canonical",
		"titulo": "Alias",
	}, false)

	require.NotNil(t, in.Title)
	assert.Equal(t, "Canonical", *in.Title)
}

func TestNormalizePriceFromString(t *testing.T) {
	in := normalizeProperty(map[string]interface{}{"precio": " 350000 "}, false)
	require.NotNil(t, in.Price)
	assert.Equal(t, 350000.0, *in.Price)

	in = normalizeProperty(map[string]interface{}{"precio": "no-un-numero"}, false)
	require.NotNil(t, in.Price)
	assert.Zero(t, *in.Price)
}

func TestNormalizeMediaScalarOrArray(t *testing.T) {
	// Scalar string for a list field becomes a one-item list.
	in := normalizeProperty(map[string]interface{}{"imagenes": "/uploads/a.jpg"}, false)
	assert.Equal(t, []string{"/uploads/a.jpg"}, in.Images)
	require.NotNil(t, in.ImageURL)
	assert.Equal(t, "/uploads/a.jpg", *in.ImageURL)

	// Arrays keep order and drop blanks.
	in = normalizeProperty(map[string]interface{}{
		"images": []interface{}{"/uploads/a.jpg", "", "/uploads/b.jpg"},
	}, false)
	assert.Equal(t, []string{"/uploads/a.jpg", "/uploads/b.jpg"}, in.Images)
}

func TestNormalizeVideoCrossFallbacks(t *testing.T) {
	in := normalizeProperty(map[string]interface{}{"videoUrl": "/uploads/v.mp4"}, false)
	require.NotNil(t, in.VideoURL)
	assert.Equal(t, []string{"/uploads/v.mp4"}, in.Videos)

	in = normalizeProperty(map[string]interface{}{
		"videos": []interface{}{"/uploads/v1.mp4", "/uploads/v2.mp4"},
	}, false)
	require.NotNil(t, in.VideoURL)
	assert.Equal(t, "/uploads/v1.mp4", *in.VideoURL)
}

func TestNormalizeUpdateLeavesAbsentFieldsNil(t *testing.T) {
	in := normalizeProperty(map[string]interface{}{"precio": float64(1000)}, true)

	assert.Nil(t, in.Title)
	assert.Nil(t, in.Description)
	assert.Nil(t, in.Images)
	require.NotNil(t, in.Price)
	assert.Equal(t, 1000.0, *in.Price)
}

func TestNormalizeOwnerAliases(t *testing.T) {
	in := normalizeProperty(map[string]interface{}{"empresaId": float64(12)}, false)
	require.NotNil(t, in.CompanyID)
	assert.Equal(t, uint(12), *in.CompanyID)

	// Zero and negative ids are treated as absent.
	in = normalizeProperty(map[string]interface{}{"user_id": float64(0)}, false)
	assert.Nil(t, in.UserID)
}

func TestNormalizeMetadataString(t *testing.T) {
	in := normalizeProperty(map[string]interface{}{
		"metadata": `{"piscina": true}`,
	}, false)

	meta, ok := in.Metadata.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, meta["piscina"])
}
