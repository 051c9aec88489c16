// Package config loads a capture profile from a TOML file via viper,
// in the same role jbrzusto/ogdar's config.go plays for its FPGA
// registers: loadConfig there searches /opt then '.' for ogdar.toml
// and unmarshals into the digdar register struct; Load here
// searches /etc/ramdebug then '.' for ramdebug.toml and unmarshals
// into ProfileConfig, which cmd/ramdebugctl applies to an engine via
// Engine.ApplyProfile.
package config

import "github.com/spf13/viper"

// ChannelConfig mirrors one entry of the channel array a profile
// wants configured.
type ChannelConfig struct {
	Kind    uint8  `mapstructure:"kind"`
	Board   uint8  `mapstructure:"board"`
	Address uint32 `mapstructure:"address"`
}

// TriggerConfig mirrors the trigger descriptor plus comparator fields.
type TriggerConfig struct {
	Kind      uint8  `mapstructure:"kind"`
	Board     uint8  `mapstructure:"board"`
	Address   uint32 `mapstructure:"address"`
	Edge      uint8  `mapstructure:"edge"`
	Threshold uint32 `mapstructure:"threshold"`
	Mask      uint32 `mapstructure:"mask"`
	Shift     uint8  `mapstructure:"shift"`
}

// ProfileConfig is the full set of tunables a host applies in one shot
// to arm a capture, loaded from ramdebug.toml.
type ProfileConfig struct {
	// BoardModel is informational only (printed on cmd/ramdebugctl's
	// status line); it drives no behavior, since
	// board-specific glue is out of this module's scope. Grounded on
	// original_source/boards/TMC9660_STEPPER_eval.c and
	// TMC2208_eval.c both existing side by side in the retrieval pack.
	BoardModel string `mapstructure:"board_model"`

	Channels        []ChannelConfig `mapstructure:"channels"`
	Trigger         TriggerConfig   `mapstructure:"trigger"`
	Prescaler       uint32          `mapstructure:"prescaler"`
	SampleCount     uint32          `mapstructure:"sample_count"`
	PretriggerCount uint32          `mapstructure:"pretrigger_count"`
	SamplingFreqHz  uint32          `mapstructure:"sampling_freq_hz"`
}

// Default returns sane defaults, used when no config file is found.
// There is no guarantee these values suit any particular board; they
// merely let cmd/ramdebugctl run out of the box.
func Default() ProfileConfig {
	const sysTickKind = 4 // ramdebug.SysTick; kept numeric here to avoid an
	// import cycle (ramdebug imports config for ApplyProfile's parameter type)
	return ProfileConfig{
		BoardModel:      "unknown (ramdebug.toml not found, using defaults)",
		Channels:        []ChannelConfig{{Kind: sysTickKind}},
		Trigger:         TriggerConfig{Mask: 0xFFFFFFFF},
		Prescaler:       1,
		SampleCount:     128,
		PretriggerCount: 0,
		SamplingFreqHz:  1000,
	}
}

// Load reads ramdebug.toml from /etc/ramdebug, then from the current
// directory, returning Default() and false if neither is found.
func Load() (ProfileConfig, bool) {
	v := viper.New()
	v.SetConfigName("ramdebug")
	v.SetConfigType("toml")
	v.AddConfigPath("/etc/ramdebug")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		return Default(), false
	}

	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return Default(), false
	}
	return cfg, true
}
