// main_test.go - CLI argument parsing tests

package main

import (
	"math"
	"testing"
)

func TestParseOperand(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		raw     bool
		want    uint32
		wantErr bool
	}{
		{"Decimal", "1.0", false, math.Float32bits(1.0), false},
		{"NegativeDecimal", "-2.5", false, math.Float32bits(-2.5), false},
		{"HexBits", "3F800000", true, 0x3F800000, false},
		{"HexBitsPrefixed", "0x7F800000", true, 0x7F800000, false},
		{"BadDecimal", "xyz", false, 0, true},
		{"BadHex", "zz", true, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseOperand(tt.arg, tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("parseOperand(%q) = %08X, want %08X", tt.arg, got, tt.want)
			}
		})
	}
}
