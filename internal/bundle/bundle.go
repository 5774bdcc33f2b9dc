// Package bundle embeds the baseline table set shipped with the tool, used
// when the caller selects no explicit input directory.
package bundle

import (
	"embed"
	"fmt"

	"github.com/M4rkoza7/aces/internal/codec"
	"github.com/M4rkoza7/aces/internal/schema"
)

//go:embed data
var dataFiles embed.FS

// Load decodes one embedded table.
func Load(s *schema.Schema) ([]*schema.Record, error) {
	data, err := dataFiles.ReadFile("data/" + s.Name + ".json")
	if err != nil {
		return nil, fmt.Errorf("bundled table %s: %w", s.Name, err)
	}
	return codec.DecodeJSON(data, s)
}

// LoadPlanes returns the bundled plane and skin tables. The viewer table is
// derived state and is rebuilt by the model, so it is not loaded here.
func LoadPlanes() (planes, skins []*schema.Record, err error) {
	planes, err = Load(schema.PlayerPlane)
	if err != nil {
		return nil, nil, err
	}
	skins, err = Load(schema.Skin)
	if err != nil {
		return nil, nil, err
	}
	return planes, skins, nil
}
