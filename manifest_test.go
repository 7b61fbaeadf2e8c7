// Copyright 2017, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifestFile(t *testing.T, contents string) string {
	t.Helper()
	fp := filepath.Join(t.TempDir(), "backgrounds.json")
	err := os.WriteFile(fp, []byte(contents), 0644)
	require.NoError(t, err)
	return fp
}

func TestLoadAssetManifest(t *testing.T) {
	fp := writeManifestFile(t, `{"backgrounds": ["a.png", "b.png", "c.jpg"]}`)

	manifest, err := LoadAssetManifest(fp)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png", "b.png", "c.jpg"}, manifest.Backgrounds)
}

func TestLoadAssetManifestMissingFile(t *testing.T) {
	manifest, err := LoadAssetManifest(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
	assert.Nil(t, manifest)

	// a nil manifest must still be safe to choose from
	_, okay := manifest.ChooseBackground()
	assert.False(t, okay)
}

func TestLoadAssetManifestMalformed(t *testing.T) {
	fp := writeManifestFile(t, `{"backgrounds": [`)

	manifest, err := LoadAssetManifest(fp)
	assert.Error(t, err)
	assert.Nil(t, manifest)
}

func TestChooseBackgroundStaysInList(t *testing.T) {
	manifest := &AssetManifest{Backgrounds: []string{"a.png", "b.png", "c.jpg"}}
	listed := map[string]bool{"a.png": true, "b.png": true, "c.jpg": true}

	for i := 0; i < 200; i++ {
		background, okay := manifest.ChooseBackground()
		require.True(t, okay)
		assert.True(t, listed[background], "chose unlisted background %s", background)
	}
}

func TestChooseBackgroundSingleEntry(t *testing.T) {
	manifest := &AssetManifest{Backgrounds: []string{"a.png"}}

	for i := 0; i < 20; i++ {
		background, okay := manifest.ChooseBackground()
		require.True(t, okay)
		assert.Equal(t, "a.png", background)
	}
}

func TestChooseBackgroundEmptyList(t *testing.T) {
	manifest := &AssetManifest{}
	background, okay := manifest.ChooseBackground()
	assert.False(t, okay)
	assert.Equal(t, "", background)
}

func TestShippedManifestFilesExist(t *testing.T) {
	manifest, err := LoadAssetManifest("assets/backgrounds.json")
	require.NoError(t, err)
	require.NotEmpty(t, manifest.Backgrounds)

	// every listed background must actually ship with the demo so the
	// out-of-box run gets a textured environment
	for _, background := range manifest.Backgrounds {
		_, err := os.Stat(background)
		assert.NoError(t, err, "listed background %s is missing", background)
	}
}
