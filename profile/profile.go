// Package profile holds the decoder configuration: segment bases, output dialect and instruction layout.
package profile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Dialect selects how the listing is rendered.
type Dialect string

const (
	DialectPlain Dialect = "plain"
	// DialectMars renders memory operands relative to the data label and emits a data-segment prologue.
	DialectMars Dialect = "mars"
)

// RegImmSelector names the 5-bit field that keys the register-immediate table.
type RegImmSelector string

const (
	SelectorRD RegImmSelector = "rd"
	SelectorRT RegImmSelector = "rt"
)

const (
	DefaultTextBase       uint32 = 0x00003000
	DefaultDataBase       uint32 = 0x00000000
	DefaultSkipMarker            = "raw"
	DefaultDataLabel             = "dat"
	DefaultDataReserve           = 1
	DefaultJumpTargetBits        = 26
)

// ErrInvalidProfile is returned when a profile fails validation.
var ErrInvalidProfile = errors.New("invalid profile")

// Profile represents the configuration for a decoding run.
type Profile struct {
	Name           string         `yaml:"name"`
	TextBase       uint32         `yaml:"text_base"`
	DataBase       uint32         `yaml:"data_base"`
	Dialect        Dialect        `yaml:"dialect"`
	SkipMarker     string         `yaml:"skip_marker"`
	DataLabel      string         `yaml:"data_label"`
	DataReserve    int            `yaml:"data_reserve"`
	JumpTargetBits uint           `yaml:"jump_target_bits"`
	RegImmSelector RegImmSelector `yaml:"regimm_selector"`
}

// Default returns the profile used when no file is given.
func Default() *Profile {
	return &Profile{
		Name:           "mips-c",
		TextBase:       DefaultTextBase,
		DataBase:       DefaultDataBase,
		Dialect:        DialectPlain,
		SkipMarker:     DefaultSkipMarker,
		DataLabel:      DefaultDataLabel,
		DataReserve:    DefaultDataReserve,
		JumpTargetBits: DefaultJumpTargetBits,
		RegImmSelector: SelectorRD,
	}
}

// LoadProfile loads a profile from a YAML file. Keys missing from the file keep their default values.
func LoadProfile(filename string) (*Profile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	prof := Default()
	if err := yaml.NewDecoder(file).Decode(prof); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if err := prof.Validate(); err != nil {
		return nil, err
	}
	return prof, nil
}

// Validate checks that every field holds a usable value.
func (p *Profile) Validate() error {
	switch p.Dialect {
	case DialectPlain, DialectMars:
	default:
		return fmt.Errorf("%w: unknown dialect %q", ErrInvalidProfile, p.Dialect)
	}
	switch p.RegImmSelector {
	case SelectorRD, SelectorRT:
	default:
		return fmt.Errorf("%w: unknown regimm selector %q", ErrInvalidProfile, p.RegImmSelector)
	}
	if p.JumpTargetBits == 0 || p.JumpTargetBits > 26 {
		return fmt.Errorf("%w: jump_target_bits must be within 1..26, got %d", ErrInvalidProfile, p.JumpTargetBits)
	}
	if p.SkipMarker == "" {
		return fmt.Errorf("%w: skip_marker must not be empty", ErrInvalidProfile)
	}
	if p.DataLabel == "" {
		return fmt.Errorf("%w: data_label must not be empty", ErrInvalidProfile)
	}
	if p.DataReserve < 1 {
		return fmt.Errorf("%w: data_reserve must be positive, got %d", ErrInvalidProfile, p.DataReserve)
	}
	return nil
}

// Mars reports whether the alternate output dialect is selected.
func (p *Profile) Mars() bool {
	return p.Dialect == DialectMars
}
