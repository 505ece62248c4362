package constants

import (
	"os"
	"strconv"
	"time"
)

const (
	DefaultMidiDir     = "./MIDI"
	DefaultSensitivity = 0.05
	DefaultDebounce    = 50 * time.Millisecond
	DefaultVirtualPort = "MIDI Maestro"
	DefaultMetaTable   = "maestro-metadata"

	// ProgressQuietPeriod is how long the performer must pause before
	// playback progress is logged.
	ProgressQuietPeriod = 2 * time.Second

	// InputBufferSize bounds the number of live input events queued between
	// the port listener and the sequencer.
	InputBufferSize = 1024

	MaxVelocity = 127
)

func GetMidiDir() string {
	if path := os.Getenv("MAESTRO_MIDI_DIR"); path != "" {
		return path
	}
	return DefaultMidiDir
}

// GetSensitivity is the chord grouping threshold in seconds.
func GetSensitivity() float64 {
	if v := os.Getenv("MAESTRO_SENSITIVITY"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			return f
		}
	}
	return DefaultSensitivity
}

func GetDebounce() time.Duration {
	if v := os.Getenv("MAESTRO_DEBOUNCE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return DefaultDebounce
}

func GetVirtualPortName() string {
	if name := os.Getenv("MAESTRO_VIRTUAL_PORT"); name != "" {
		return name
	}
	return DefaultVirtualPort
}

// GetMetadataEndpoint returns "" when metadata lookups are disabled.
func GetMetadataEndpoint() string {
	return os.Getenv("MAESTRO_METADATA_ENDPOINT")
}

func GetMetadataTable() string {
	if table := os.Getenv("MAESTRO_METADATA_TABLE"); table != "" {
		return table
	}
	return DefaultMetaTable
}
