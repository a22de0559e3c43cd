package param

import (
	"bytes"
	"testing"
	"time"
)

func TestGuess(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want TypeTag
	}{
		{"nil", nil, TagNull},
		{"int", 42, TagInteger},
		{"int64", int64(42), TagInteger},
		{"uint8", uint8(7), TagInteger},
		{"bool", true, TagBoolean},
		{"reader", bytes.NewBufferString("blob"), TagLargeObject},
		{"bytes", []byte{0x01}, TagBinary},
		{"string slice", []string{"a"}, TagArray},
		{"int slice", []int{1, 2}, TagArray},
		{"float slice", []float64{1.5}, TagArray},
		{"any slice", []any{1, "a"}, TagArray},
		{"float32", float32(1.5), TagFloat},
		{"float64", 1.5, TagFloat},
		{"time", time.Now(), TagTimestamp},
		{"string", "hello", TagString},
		{"struct fallback", struct{}{}, TagString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Guess(tt.in); got != tt.want {
				t.Errorf("Guess(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMapLegacyCode(t *testing.T) {
	tests := []struct {
		code int
		want TypeTag
	}{
		{0, TagNull},
		{1, TagInteger},
		{3, TagLargeObject},
		{5, TagBoolean},
		{2, TagString},
		{99, TagString},
		{-1, TagString},
	}

	for _, tt := range tests {
		if got := MapLegacyCode(tt.code); got != tt.want {
			t.Errorf("MapLegacyCode(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestToWire(t *testing.T) {
	tests := []struct {
		tag  TypeTag
		want WireType
	}{
		{TagNull, WireNull},
		{TagInteger, WireInteger},
		{TagFloat, WireInteger},
		{TagString, WireString},
		{TagJSON, WireString},
		{TagJSONB, WireString},
		{TagUUID, WireString},
		{TagTimestamp, WireString},
		{TagArray, WireString},
		{TagFloatArray, WireString},
		{TagLargeObject, WireLargeObject},
		{TagBoolean, WireBoolean},
		{TagBinary, WireBinary},
		{TagASCII, WireASCII},
	}

	for _, tt := range tests {
		t.Run(tt.tag.String(), func(t *testing.T) {
			if got := ToWire(tt.tag); got != tt.want {
				t.Errorf("ToWire(%v) = %v, want %v", tt.tag, got, tt.want)
			}
		})
	}
}

func TestIDStrategyClientSide(t *testing.T) {
	tests := []struct {
		strategy IDStrategy
		want     bool
	}{
		{StrategyAutoIncrement, false},
		{StrategyDefault, false},
		{StrategyUID, true},
		{StrategyUUID, true},
		{StrategyInt, true},
		{StrategyString, true},
	}

	for _, tt := range tests {
		if got := tt.strategy.ClientSide(); got != tt.want {
			t.Errorf("%v.ClientSide() = %v, want %v", tt.strategy, got, tt.want)
		}
	}
}
