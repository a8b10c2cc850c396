package immerse

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the pipeline and viewer settings.
type Config struct {
	// PixelsPerMeter is the one canvas-to-meters scale used for widget sizes
	// in every mode.
	PixelsPerMeter float64 `toml:"pixels_per_meter"`
	// Volumes holds the viewing volume for each mode.
	Volumes VolumeSet `toml:"volumes"`
	// ForceRender renders the spatial layer even in modes that suppress it.
	ForceRender bool `toml:"force_render"`
	// TransitionSeconds is how long preview renderers ease poses after a
	// mode change. Zero snaps.
	TransitionSeconds float64 `toml:"transition_seconds"`
	// ScreenshotDir is where labeled screenshots are written.
	ScreenshotDir string `toml:"screenshot_dir"`
	// Debug enables per-frame stats logging.
	Debug bool `toml:"debug"`
}

// DefaultConfig returns the built-in configuration.
//
// The default scale does not match the default volumes, so on a 1920x1080
// canvas a widget clipped in 2D can be unclipped in 3D. The preview volume
// corresponds to 1200 px/m and the immersive volume to 480 px/m
// across its width. Use
// MatchedVolume when the two clips must agree.
func DefaultConfig() Config {
	return Config{
		PixelsPerMeter:    DefaultPixelsPerMeter,
		Volumes:           DefaultVolumes(),
		TransitionSeconds: 0.4,
		ScreenshotDir:     "screenshots",
	}
}

// LoadConfig decodes TOML on top of DefaultConfig and validates the result.
// Keys that are absent keep their defaults.
//
//	pixels_per_meter = 480
//	force_render = true
//
//	[volumes.vr]
//	width = 4.0
//	height = 1.5
//	eye_height = 1.6
//	depth = 2.0
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks the scale, every volume and the transition time.
func (c Config) Validate() error {
	if !isFinite(c.PixelsPerMeter) || c.PixelsPerMeter <= 0 {
		return fmt.Errorf("%w: pixels_per_meter %v", ErrInvalidGeometry, c.PixelsPerMeter)
	}
	if err := c.Volumes.Validate(); err != nil {
		return err
	}
	if !isFinite(c.TransitionSeconds) || c.TransitionSeconds < 0 {
		return fmt.Errorf("transition_seconds %v must be >= 0", c.TransitionSeconds)
	}
	return nil
}

// Mapper returns a Mapper using the configured scale.
func (c Config) Mapper() Mapper {
	return NewMapper(c.PixelsPerMeter)
}
