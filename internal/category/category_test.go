package category

import (
	"fmt"
	"testing"

	"github.com/Veraticus/jarvis/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want model.Category
	}{
		{"food", model.CategoryFood},
		{"TRAVEL", model.CategoryTravel},
		{"Groceries", model.CategoryFood},
		{"Coffee Shops", model.CategoryFood},
		{"Flight Training", model.CategoryTravel},
		{"Uber ride", model.CategoryTransportation},
		{"Netflix", model.CategoryEntertainment},
		{"Amazon", model.CategoryShopping},
		{"Car Insurance", model.CategoryBills},
		{"Pharmacy", model.CategoryHealthcare},
		{"Tuition", model.CategoryEducation},
		{"Salary", model.CategoryOther},
		{"", model.CategoryOther},
		{"   ", model.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestHash(t *testing.T) {
	assert.Equal(t, int32(0), Hash(""))
	assert.Equal(t, int32(97), Hash("a"))
	// 97*31 + 98
	assert.Equal(t, int32(3105), Hash("ab"))

	// Long input wraps without panicking and stays deterministic.
	long := "a very long category label that overflows thirty two bits"
	assert.Equal(t, Hash(long), Hash(long))
}

func TestStyleFor(t *testing.T) {
	assert.Equal(t, Palette[slotGreen], StyleFor("Grocery").Color)
	assert.Equal(t, Palette[slotViolet], StyleFor("Flight Training").Color)
	assert.Equal(t, Palette[slotViolet], StyleFor("aviation fuel").Color)
	assert.Equal(t, Palette[slotDeepBlue], StyleFor("Home INSURANCE").Color)

	s := StyleFor("zzz unmatched")
	assert.Equal(t, Palette[hashSlot("zzz unmatched", len(Palette))], s.Color)
	assert.Equal(t, s, StyleFor("ZZZ Unmatched"))
}

func TestAssign_UniqueWithinPalette(t *testing.T) {
	names := make([]string, 0, len(Palette))
	for i := range len(Palette) {
		names = append(names, fmt.Sprintf("category %d", i))
	}

	got := Assign(names)
	require.Len(t, got, len(Palette))

	colors := map[string]bool{}
	icons := map[string]bool{}
	for _, a := range got {
		assert.False(t, colors[a.Style.Color], "duplicate color %s", a.Style.Color)
		assert.False(t, icons[a.Style.Icon], "duplicate icon %s", a.Style.Icon)
		colors[a.Style.Color] = true
		icons[a.Style.Icon] = true
	}
}

func TestAssign_OrderIndependent(t *testing.T) {
	a := Assign([]string{"Groceries", "Grocery Store", "Flights", "Insurance", "Misc"})
	b := Assign([]string{"Misc", "Insurance", "Flights", "Grocery Store", "Groceries", "Misc"})
	assert.Equal(t, a, b)
	assert.Len(t, a, 5)

	// Both grocery labels prefer green; the first in name order keeps it.
	first, ok := a.Lookup("Groceries")
	require.True(t, ok)
	second, ok := a.Lookup("Grocery Store")
	require.True(t, ok)
	assert.Equal(t, Palette[slotGreen], first.Color)
	assert.NotEqual(t, first.Color, second.Color)

	_, ok = a.Lookup("missing")
	assert.False(t, ok)
}

func TestAssign_IconFallbackBeyondPalette(t *testing.T) {
	names := make([]string, 0, len(Icons)+1)
	for i := range len(Icons) + 1 {
		names = append(names, fmt.Sprintf("label %02d", i))
	}

	got := Assign(names)
	require.Len(t, got, len(Icons)+1)

	last := got[len(got)-1]
	assert.Equal(t, Icons[defaultIcons[model.CategoryOther]], last.Style.Icon)
}
