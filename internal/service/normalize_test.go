package service

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type label string

func (l label) String() string { return string(l) }

func TestNormalize_Text(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"", 0},
		{"   ", 0},
		{"abc", 0},
		{"100", 100},
		{" 25 ", 25},
		{"10,5", 10.5},
		{"100 TL", 100},
		{"₺1.250,75", 1250.75},
		{"1.500,50", 1500.5},
		{"1,500.50", 1500.5},
		{"1.000.000", 1000000},
		{"1.000.000,25", 1000000.25},
		{"1,000,000", 1000000},
		{"1.500", 1500},
		{"100.000", 100000},
		{"10.5", 10.5},
		{"0.500", 0.5},
		{"1000.500", 1000.5},
		{"12.3456", 12.3456},
		{".5", 0.5},
		{"5,", 5},
		{"1 500,50", 1500.5},
		{"1\u00a0500,50", 1500.5},
		{"$ 42", 42},
		{"-25,5", 25.5},
		{",", 0},
		{"TL", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_Numeric(t *testing.T) {
	var nilPtr *float64
	var nilDec *decimal.Decimal
	s := "7,25"
	f := 3.5

	tests := []struct {
		name     string
		input    any
		expected float64
	}{
		{"nil", nil, 0},
		{"int", 100, 100},
		{"float", 10.5, 10.5},
		{"float32", float32(2.5), 2.5},
		{"int64", int64(-3), -3},
		{"uint8", uint8(7), 7},
		{"NaN", math.NaN(), 0},
		{"Inf", math.Inf(1), 0},
		{"decimal", decimal.RequireFromString("1500.25"), 1500.25},
		{"nil decimal pointer", nilDec, 0},
		{"json number", json.Number("42.5"), 42.5},
		{"json number text", json.Number("42,5"), 42.5},
		{"bytes", []byte("10,5"), 10.5},
		{"nil bytes", []byte(nil), 0},
		{"stringer", label("9,75 TL"), 9.75},
		{"string pointer", &s, 7.25},
		{"float pointer", &f, 3.5},
		{"nil pointer", nilPtr, 0},
		{"bool", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_AlwaysFinite(t *testing.T) {
	inputs := []any{
		"1e400", "99999999999999999999999999999999999999999999999999" +
			"99999999999999999999999999999999999999999999999999999999999999999999999999999999" +
			"99999999999999999999999999999999999999999999999999999999999999999999999999999999" +
			"99999999999999999999999999999999999999999999999999999999999999999999999999999999" +
			"99999999999999999999999999999999999999999999999999999999999999999999999999999999",
		"...", ",,,", "1.2.3,4,5", "NaN", "Inf", "-Inf", struct{ A int }{1},
	}
	for _, in := range inputs {
		got := Normalize(in)
		assert.False(t, math.IsNaN(got) || math.IsInf(got, 0), "Normalize(%v) = %v", in, got)
	}
}
