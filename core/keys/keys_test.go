package keys

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_Normalize(t *testing.T) {
	instant := time.Date(2023, time.January, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		policy Policy
		input  any
		want   string
	}{
		{"nil", Consolidation, nil, ""},
		{"empty string", Consolidation, "   ", ""},
		{"collapse inner runs", Consolidation, "  EXP  001 \t A ", "EXP 001 A"},
		{"strip inner runs", Join, "  EXP  001 \t A ", "EXP001A"},
		{"non breaking space collapses", Consolidation, "A\u00a0\u00a01", "A 1"},
		{"integer float", Consolidation, float64(12), "12"},
		{"fraction float", Join, 12.5, "12.5"},
		{"small float", Join, 0.001, "0.001"},
		{"large float has no exponent", Join, 1e21, "1000000000000000000000"},
		{"int", Join, 42, "42"},
		{"int64", Join, int64(-7), "-7"},
		{"bool true", Consolidation, true, "true"},
		{"bool false", Consolidation, false, "false"},
		{"time", Consolidation, instant, "2023-01-02T00:00:00.000Z"},
		{"zero time", Consolidation, time.Time{}, ""},
		{"case kept by default", Join, "Ab 1", "Ab1"},
		{"case folded on request", Policy{Whitespace: WhitespaceStrip, FoldCase: true}, "Ab 1", "ab1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.Normalize(tt.input))
		})
	}
}

func TestPolicy_NormalizeIsStable(t *testing.T) {
	for _, p := range []Policy{Consolidation, Join} {
		once := p.Normalize("  a   b  c ")
		assert.Equal(t, once, p.Normalize(once))
	}
}

func TestParseWhitespace(t *testing.T) {
	w, err := ParseWhitespace("STRIP")
	assert.NoError(t, err)
	assert.Equal(t, WhitespaceStrip, w)

	w, err = ParseWhitespace("")
	assert.NoError(t, err)
	assert.Equal(t, WhitespaceCollapse, w)

	_, err = ParseWhitespace("squash")
	assert.Error(t, err)
}

func TestFoldHeader(t *testing.T) {
	assert.Equal(t, "fecha", FoldHeader(" Fécha "))
	assert.Equal(t, "numero de pieza", FoldHeader("Número de pieza"))
	assert.Equal(t, "nº de pieza", FoldHeader("Nº de pieza"))
}
