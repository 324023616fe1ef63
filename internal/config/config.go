// Package config loads the map views rendered by the timeline command.
package config

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/chaisql/locationhistory/internal/projection"
	"github.com/cockroachdb/errors"
)

// View is a named map rectangle rendered to its own image.
type View struct {
	Name      string  `toml:"name"`
	Width     int     `toml:"width"`
	Height    int     `toml:"height"`
	LngLeft   float32 `toml:"lng_left"`
	LngRight  float32 `toml:"lng_right"`
	LatBottom float32 `toml:"lat_bottom"`
}

// Projection returns the projection drawing the view.
func (v *View) Projection() projection.CroppedWebMercator {
	return projection.CroppedWebMercator{
		Width:     v.Width,
		Height:    v.Height,
		LngLeft:   v.LngLeft,
		LngRight:  v.LngRight,
		LatBottom: v.LatBottom,
	}
}

// Validate reports the first invalid setting of the view.
func (v *View) Validate() error {
	switch {
	case v.Width <= 0 || v.Height <= 0:
		return errors.Newf("view %q: size must be positive, got %dx%d", v.Name, v.Width, v.Height)
	case v.LngLeft >= v.LngRight:
		return errors.Newf("view %q: lng_left %g must be west of lng_right %g", v.Name, v.LngLeft, v.LngRight)
	case v.LngLeft < -180 || v.LngRight > 180:
		return errors.Newf("view %q: longitudes must be within [-180, 180]", v.Name)
	case v.LatBottom <= -85 || v.LatBottom >= 85:
		return errors.Newf("view %q: lat_bottom %g out of the mercator range", v.Name, v.LatBottom)
	}

	return nil
}

// Config lists the views to render.
type Config struct {
	Output string
	Views  []View
}

// fileConfig is the layout of a views file.
type fileConfig struct {
	Output string `toml:"output"`
	Views  []View `toml:"view"`
}

// Default returns the built-in views.
func Default() Config {
	return Config{
		Output: "out",
		Views: []View{
			{Name: "sodermalm", Width: 1920, Height: 1080, LngLeft: 18.0117, LngRight: 18.1208, LatBottom: 59.2967},
			{Name: "stockholm", Width: 3840, Height: 2160, LngLeft: 17.7499, LngRight: 18.3808, LatBottom: 59.2226},
			{Name: "sweden", Width: 2160, Height: 3840, LngLeft: 8.296, LngRight: 25.5124, LatBottom: 54.2021},
			{Name: "north-atlantic", Width: 3840, Height: 2160, LngLeft: -133.1357, LngRight: 35.958, LatBottom: 20.8103},
		},
	}
}

// LoadFile reads a views file. Settings it leaves out keep their default.
func LoadFile(path string) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, errors.Wrapf(err, "load views file %s", path)
	}

	return fromFile(raw, meta)
}

// Parse is like LoadFile, reading the views from a string.
func Parse(data string) (Config, error) {
	var raw fileConfig
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return Config{}, errors.Wrap(err, "parse views")
	}

	return fromFile(raw, meta)
}

func fromFile(raw fileConfig, meta toml.MetaData) (Config, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.Newf("unknown setting %q", undecoded[0].String())
	}

	cfg := Default()
	if meta.IsDefined("output") {
		cfg.Output = strings.TrimSpace(raw.Output)
	}
	if meta.IsDefined("view") {
		cfg.Views = raw.Views
	}

	if len(cfg.Views) == 0 {
		return Config{}, errors.New("no view to render")
	}

	names := make(map[string]struct{}, len(cfg.Views))
	for i := range cfg.Views {
		v := &cfg.Views[i]
		v.Name = strings.TrimSpace(v.Name)
		if v.Name == "" {
			return Config{}, errors.Newf("view %d: missing name", i)
		}
		if _, ok := names[v.Name]; ok {
			return Config{}, errors.Newf("view %q declared twice", v.Name)
		}
		names[v.Name] = struct{}{}

		if err := v.Validate(); err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}
