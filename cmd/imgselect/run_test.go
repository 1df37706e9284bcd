package main

import "testing"

func TestValidateKeyPins(t *testing.T) {
	tests := []struct {
		name    string
		pins    []string
		wantErr bool
	}{
		{"four pins", []string{"GPIO5", "GPIO6", "GPIO13", "GPIO19"}, false},
		{"too few", []string{"GPIO5", "GPIO6"}, true},
		{"too many", []string{"GPIO5", "GPIO6", "GPIO13", "GPIO19", "GPIO26"}, true},
		{"empty name", []string{"GPIO5", "", "GPIO13", "GPIO19"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateKeyPins(tt.pins)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateKeyPins() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRunRejectsBadKeysBeforeHardware(t *testing.T) {
	cmd := newRunCmd()
	old := flagKeys
	defer func() { flagKeys = old }()
	flagKeys = []string{"GPIO5"}

	err := runSelector(cmd, nil)
	if err == nil || err.Error() != "expected 4 key pins, got 1" {
		t.Errorf("runSelector() error = %v, want key count error", err)
	}
}
