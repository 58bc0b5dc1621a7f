package decoder

import (
	"os"
	"reflect"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Frequency: 98.5, Program: 0}, false},
		{"band lower edge", Config{Frequency: 88.0, Program: 0}, false},
		{"band upper edge", Config{Frequency: 108.0, Program: 3}, false},
		{"below band", Config{Frequency: 87.9, Program: 0}, true},
		{"above band", Config{Frequency: 108.1, Program: 0}, true},
		{"zero frequency", Config{Frequency: 0, Program: 0}, true},
		{"negative program", Config{Frequency: 98.5, Program: -1}, true},
		{"program too high", Config{Frequency: 98.5, Program: 4}, true},
		{"log level too low", Config{Frequency: 98.5, LogLevel: -1}, true},
		{"log level too high", Config{Frequency: 98.5, LogLevel: 4}, true},
		{"log level unset", Config{Frequency: 98.5, LogLevel: 0}, false},
		{"log level debug", Config{Frequency: 98.5, LogLevel: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Args(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{
			"defaults",
			Config{Frequency: 98.5, Program: 0},
			[]string{"-l", "3", "98.5", "0"},
		},
		{
			"dump directory",
			Config{Frequency: 107.9, Program: 1, DumpDir: "/tmp/dump"},
			[]string{"-l", "3", "--dump-aas-files", "/tmp/dump", "107.9", "1"},
		},
		{
			"audio disabled",
			Config{Frequency: 90.3, Program: 2, DisableAudio: true},
			[]string{"-l", "3", "-o", os.DevNull, "90.3", "2"},
		},
		{
			"tuner corrections",
			Config{Frequency: 94.9, Program: 0, PPM: -12, Gain: 49.6, DeviceIndex: 1, LogLevel: 2},
			[]string{"-l", "2", "-p", "-12", "-g", "49.6", "-d", "1", "94.9", "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cfg.Args()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Args() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_Binary(t *testing.T) {
	if got := (Config{}).Binary(); got != "nrsc5" {
		t.Errorf("Binary() = %q, want %q", got, "nrsc5")
	}
	if got := (Config{BinaryPath: "/opt/bin/nrsc5"}).Binary(); got != "/opt/bin/nrsc5" {
		t.Errorf("Binary() = %q, want %q", got, "/opt/bin/nrsc5")
	}
}

func TestConfig_Verbose(t *testing.T) {
	tests := []struct {
		level int
		want  bool
	}{
		{0, false}, // unset defaults to WARN
		{1, true},
		{2, true},
		{3, false},
	}
	for _, tt := range tests {
		cfg := Config{LogLevel: tt.level}
		if got := cfg.verbose(); got != tt.want {
			t.Errorf("verbose() with level %d = %v, want %v", tt.level, got, tt.want)
		}
	}
}
