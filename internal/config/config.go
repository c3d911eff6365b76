// Package config handles observer site and tool configuration.
package config

import (
	"fmt"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like "30s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Site is an observer location on the ground.
type Site struct {
	Name      string  `yaml:"name"`
	Latitude  float64 `yaml:"latitude"`  // degrees, north positive
	Longitude float64 `yaml:"longitude"` // degrees, east positive
}

// KnownSites maps site keys to built-in observer locations.
var KnownSites = map[string]Site{
	"greenwich": {Name: "Greenwich", Latitude: 51.4769, Longitude: 0.0005},
	"tokyo":     {Name: "Tokyo", Latitude: 35.6762, Longitude: 139.6503},
	"sydney":    {Name: "Sydney", Latitude: -33.8688, Longitude: 151.2093},
	"nairobi":   {Name: "Nairobi", Latitude: -1.2921, Longitude: 36.8219},
	"reykjavik": {Name: "Reykjavik", Latitude: 64.1466, Longitude: -21.9426},
	"quito":     {Name: "Quito", Latitude: -0.1807, Longitude: -78.4678},
}

// SiteByKey looks up a built-in site by key.
func SiteByKey(key string) (Site, error) {
	s, ok := KnownSites[key]
	if !ok {
		return Site{}, fmt.Errorf("unknown site %q (known: %v)", key, siteKeys())
	}
	return s, nil
}

func siteKeys() []string {
	keys := make([]string, 0, len(KnownSites))
	for k := range KnownSites {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SkyConfig holds sky view camera defaults. These are configuration-style
// angle fields: out-of-range values are clamped, not rejected, so a stale or
// hand-edited config file never prevents startup.
type SkyConfig struct {
	CameraElevation float64 `yaml:"camera_elevation"` // degrees, clamped to [-90, 90]
	CameraAzimuth   float64 `yaml:"camera_azimuth"`   // degrees, wrapped to [0, 360)
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // non-empty routes logs to a rotated file
}

// Config holds all tool settings.
type Config struct {
	Site    Site          `yaml:"site"`
	Refresh Duration      `yaml:"refresh"`
	Sky     SkyConfig     `yaml:"sky"`
	Logging LoggingConfig `yaml:"logging"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Site:    KnownSites["greenwich"],
		Refresh: Duration(30 * time.Second),
		Sky: SkyConfig{
			CameraElevation: 30,
			CameraAzimuth:   180,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// ClampElevation clamps a configuration elevation angle to [-90, 90].
// Configuration fields clamp; the ephemeris entry point rejects instead.
func ClampElevation(deg float64) float64 {
	if deg < -90 {
		return -90
	}
	if deg > 90 {
		return 90
	}
	return deg
}

// ClampAzimuth wraps a configuration azimuth angle into [0, 360).
func ClampAzimuth(deg float64) float64 {
	for deg < 0 {
		deg += 360
	}
	for deg >= 360 {
		deg -= 360
	}
	return deg
}

// Normalize applies the configuration clamping rules in place.
func (c *Config) Normalize() {
	c.Sky.CameraElevation = ClampElevation(c.Sky.CameraElevation)
	c.Sky.CameraAzimuth = ClampAzimuth(c.Sky.CameraAzimuth)
	if c.Refresh <= 0 {
		c.Refresh = Default().Refresh
	}
}
