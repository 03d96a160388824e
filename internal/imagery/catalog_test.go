package imagery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"İstanbul", "istanbul"},
		{"IZMIR", "izmir"},
		{"Çanakkale", "canakkale"},
		{"Şanlıurfa", "sanliurfa"},
		{"Gümüşhane", "gumushane"},
		{"Ağrı", "agri"},
		{"Adapazarı ", "adapazari"},
		{"Kahramanmaraş", "kahramanmaras"},
		{"New York", "newyork"},
		{"St. Petersburg", "stpetersburg"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Normalize(tc.in), tc.in)
	}
}

func TestIsTurkishCity(t *testing.T) {
	assert.True(t, IsTurkishCity("İzmir", "TR"))
	assert.True(t, IsTurkishCity("Izmir", ""), "missing country code does not disqualify")
	assert.True(t, IsTurkishCity("Kahramanmaraş", "TR"), "alias resolves")
	assert.True(t, IsTurkishCity("Afyonkarahisar", "TR"))

	assert.False(t, IsTurkishCity("Izmir", "US"), "foreign code wins over the name")
	assert.False(t, IsTurkishCity("Paris", "FR"))
	assert.False(t, IsTurkishCity("Paris", ""), "not in the catalog")
}

func TestLocalAsset(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "images"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "images", "kocaeli.jpg"), []byte("jpg"), 0o644))

	c := NewCatalog(dir)

	rel, ok := c.LocalAsset("Kocaeli")
	require.True(t, ok)
	assert.Equal(t, "images/kocaeli.jpg", rel)

	_, ok = c.LocalAsset("Ankara")
	assert.False(t, ok, "catalog entry without a file on disk")

	_, ok = c.LocalAsset("Paris")
	assert.False(t, ok, "not in the catalog at all")
}

func TestLocalAssetRejectsEmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "images"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "images", "ankara.png"), nil, 0o644))

	_, ok := NewCatalog(dir).LocalAsset("Ankara")
	assert.False(t, ok)
}
