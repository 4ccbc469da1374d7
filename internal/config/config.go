// Package config holds the runtime tunables the virtual machine needs at
// startup. The spec hard-codes these as constants; config exposes them as
// environment-overridable defaults so the same binary can be tuned for
// embedding or testing without a recompile.
package config

import "github.com/caarlos0/env/v6"

// Config carries the VM's resource limits and diagnostic switches.
type Config struct {
	// FramesMax bounds the call-frame stack depth; exceeding it is a
	// runtime "Stack overflow" error.
	FramesMax int `env:"LOXEN_FRAMES_MAX" envDefault:"64"`

	// StackSlotsPerFrame, multiplied by FramesMax, sizes the flat value
	// stack backing every frame's local slots.
	StackSlotsPerFrame int `env:"LOXEN_STACK_SLOTS_PER_FRAME" envDefault:"256"`

	// ReplLineBytes bounds a single REPL input line.
	ReplLineBytes int `env:"LOXEN_REPL_LINE_BYTES" envDefault:"1024"`

	// DebugTrace, when true, makes the compiler disassemble every
	// compiled chunk to stderr right after compilation finishes. It
	// applies to script runs through vm.Interpret; the REPL compiles with
	// it off regardless of this setting.
	DebugTrace bool `env:"LOXEN_DEBUG_TRACE" envDefault:"false"`
}

// StackSize returns the total number of value-stack slots implied by the
// configured frame count and per-frame slot budget.
func (c Config) StackSize() int { return c.FramesMax * c.StackSlotsPerFrame }

// Load reads Config from the environment, falling back to the spec's
// defaults (FramesMax=64, 64*256 stack slots, 1024-byte REPL lines) for any
// variable that isn't set.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}
