package service

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeBadge(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	path, err := EmployeeBadge(42, "aiko")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("statics", "qrcode", "employee-42.png"), path)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	img, err := png.Decode(file)
	require.NoError(t, err)
	assert.Equal(t, badgeSize, img.Bounds().Dx())
	assert.Equal(t, badgeSize, img.Bounds().Dy())
}
