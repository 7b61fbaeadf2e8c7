// Copyright 2017, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
)

// AssetManifest lists the background images the demo can wrap around the
// viewer. It is read once at startup; a missing or malformed manifest is not
// fatal and just leaves the environment untextured.
type AssetManifest struct {
	Backgrounds []string `json:"backgrounds"`
}

// LoadAssetManifest reads and parses the manifest JSON file.
func LoadAssetManifest(filepath string) (*AssetManifest, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read the asset manifest %s: %v", filepath, err)
	}

	manifest := new(AssetManifest)
	err = json.Unmarshal(data, manifest)
	if err != nil {
		return nil, fmt.Errorf("failed to parse the asset manifest %s: %v", filepath, err)
	}

	return manifest, nil
}

// ChooseBackground picks one background uniformly at random. The second
// return value is false when there is nothing to choose from, in which case
// the caller should fall back to the untextured environment.
func (m *AssetManifest) ChooseBackground() (string, bool) {
	if m == nil || len(m.Backgrounds) == 0 {
		return "", false
	}
	return m.Backgrounds[rand.Intn(len(m.Backgrounds))], true
}
