package decoder

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

const (
	// FM broadcast band limits in MHz.
	MinFrequency = 88.0
	MaxFrequency = 108.0

	// HD Radio stations carry up to four audio programs.
	MaxProgram = 3

	defaultBinary   = "nrsc5"
	defaultLogLevel = 3
)

// Config holds the tuning parameters for one decoder run.
// Immutable once the run starts.
type Config struct {
	Frequency float64 // station frequency in MHz
	Program   int     // audio program / subchannel (0-3)

	BinaryPath   string // decoder executable; empty means look up "nrsc5" in PATH
	DumpDir      string // directory the decoder dumps AAS files into
	LogLevel     int    // decoder log level (1 = DEBUG, 2 = INFO, 3 = WARN)
	DisableAudio bool   // route audio to the null device instead of the sound card

	PPM         int     // rtl-sdr ppm error correction
	Gain        float64 // rtl-sdr gain; <= 0 selects automatic gain
	DeviceIndex int     // rtl-sdr device number
}

// Validate checks the tuning parameters against the decoder's accepted ranges.
func (c Config) Validate() error {
	if c.Frequency < MinFrequency || c.Frequency > MaxFrequency {
		return fmt.Errorf("frequency %.1f out of range (%.1f - %.1f)", c.Frequency, MinFrequency, MaxFrequency)
	}
	if c.Program < 0 || c.Program > MaxProgram {
		return fmt.Errorf("program %d out of range (0 - %d)", c.Program, MaxProgram)
	}
	if c.LogLevel != 0 && (c.LogLevel < 1 || c.LogLevel > 3) {
		return errors.New("log level out of range (1 - 3)")
	}
	return nil
}

// Binary returns the decoder executable to launch.
func (c Config) Binary() string {
	if c.BinaryPath != "" {
		return c.BinaryPath
	}
	return defaultBinary
}

// Args builds the decoder's argument list: flags first, then the
// frequency and program positionals.
func (c Config) Args() []string {
	level := c.LogLevel
	if level == 0 {
		level = defaultLogLevel
	}

	args := []string{"-l", strconv.Itoa(level)}
	if c.PPM != 0 {
		args = append(args, "-p", strconv.Itoa(c.PPM))
	}
	if c.Gain > 0 {
		args = append(args, "-g", strconv.FormatFloat(c.Gain, 'f', 1, 64))
	}
	if c.DeviceIndex != 0 {
		args = append(args, "-d", strconv.Itoa(c.DeviceIndex))
	}
	if c.DisableAudio {
		args = append(args, "-o", os.DevNull)
	}
	if c.DumpDir != "" {
		args = append(args, "--dump-aas-files", c.DumpDir)
	}

	args = append(args,
		strconv.FormatFloat(c.Frequency, 'f', 1, 64),
		strconv.Itoa(c.Program),
	)
	return args
}

// verbose reports whether unmatched decoder lines should be surfaced
// as log events rather than dropped.
func (c Config) verbose() bool {
	return c.LogLevel != 0 && c.LogLevel <= 2
}
