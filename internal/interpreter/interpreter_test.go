// internal/interpreter/interpreter_test.go
package interpreter

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_ConnectorPattern(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		businessType string
		location     string
	}{
		{"simple in", "pharmacy in Pune", "pharmacy", "Pune"},
		{"two word business", "coffee shop in Mumbai", "coffee shop", "Mumbai"},
		{"at connector", "gym at Indore", "gym", "Indore"},
		{"near connector", "bookstore near Jaipur", "bookstore", "Jaipur"},
		{"uppercase connector", "bakery IN delhi", "bakery", "Delhi"},
		{"lowercase location", "pharmacy in pune", "pharmacy", "Pune"},
		{"multi word location", "pizza place in new delhi", "pizza place", "New Delhi"},
		{"leading filler open", "open a pharmacy in Pune", "pharmacy", "Pune"},
		{"leading filler start", "start coffee shop in Mumbai", "coffee shop", "Mumbai"},
		{"leading phrase", "tell me about gyms in Chennai", "gyms", "Chennai"},
		{"show me", "show me restaurants in Kolkata", "restaurants", "Kolkata"},
		{"surrounding whitespace", "  pharmacy in Pune  ", "pharmacy", "Pune"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			assert.Equal(t, tt.businessType, got.BusinessType)
			assert.Equal(t, tt.location, got.Location)
			assert.False(t, got.NeedsClarification)
		})
	}
}

func TestParse_CityFallback(t *testing.T) {
	got := Parse("bakery delhi")
	assert.Equal(t, "bakery", got.BusinessType)
	assert.Equal(t, "Delhi", got.Location)
	assert.False(t, got.NeedsClarification)
}

func TestParse_CityFallback_CaseFoldingChangesLength(t *testing.T) {
	// U+023A lowercases to the wider U+2C65, so byte offsets found in the
	// lowered copy do not line up with the original text.
	got := Parse("ȺȺȺȺȺ pune")
	assert.Equal(t, "ⱥⱥⱥⱥⱥ", got.BusinessType)
	assert.Equal(t, "Pune", got.Location)
	assert.False(t, got.NeedsClarification)
}

func TestParse_CityFallback_ListOrderWins(t *testing.T) {
	// Both cities appear in the text; the one earlier in the table wins,
	// regardless of text position.
	got := Parse("salon pune mumbai")
	assert.Equal(t, "Mumbai", got.Location)
}

func TestParse_NeedsClarification(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no location or business", "hello"},
		{"connector but empty location", "pharmacy in"},
		{"only filler words", "open a the"},
		{"city with no business", "pune"},
		{"empty string", ""},
		{"whitespace only", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			assert.True(t, got.NeedsClarification)
		})
	}
}

func TestParse_ClarificationFieldsAreEmpty(t *testing.T) {
	got := Parse("hello")
	assert.Empty(t, got.BusinessType)
	assert.Empty(t, got.Location)
	assert.True(t, got.NeedsClarification)
}

func TestParse_RoundTripStability(t *testing.T) {
	inputs := []string{
		"pharmacy in Pune",
		"open a coffee shop in mumbai",
		"tell me about gyms near Chennai",
		"bakery delhi",
	}

	for _, input := range inputs {
		first := Parse(input)
		if first.NeedsClarification {
			t.Fatalf("expected %q to parse", input)
		}

		second := Parse(fmt.Sprintf("%s in %s", first.BusinessType, first.Location))
		assert.Equal(t, first, second, "re-parsing reconstructed query for %q", input)
	}
}

func TestParse_TrailingPrepositionStripped(t *testing.T) {
	// A stray preposition left on the business type candidate is dropped.
	got := Parse("bakery in delhi")
	assert.Equal(t, "bakery", got.BusinessType)

	got = Parse("shop near in Pune")
	assert.Equal(t, "shop", got.BusinessType)
	assert.Equal(t, "Pune", got.Location)
}
