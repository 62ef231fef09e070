package category

import (
	"sort"
	"strings"

	"github.com/Veraticus/jarvis/internal/model"
)

// Palette holds the display colors, as hex strings.
var Palette = []string{
	"#22C55E", // green
	"#F97316", // orange
	"#8B5CF6", // violet
	"#1E40AF", // deep blue
	"#EAB308", // yellow
	"#EF4444", // red
	"#14B8A6", // teal
	"#EC4899", // pink
	"#A855F7", // purple
	"#3B82F6", // blue
	"#6366F1", // indigo
	"#10B981", // emerald
	"#92400E", // brown
	"#64748B", // slate
	"#06B6D4", // cyan
	"#9CA3AF", // gray
}

// Icons holds the display icons.
var Icons = []string{
	"🛒", "🍽️", "✈️", "🛡️", "💡", "⛽", "🧳", "💊",
	"🎬", "🛍️", "📚", "💰", "☕", "🏠", "🚗", "📦",
}

// Palette and icon slots.
const (
	slotGreen = iota
	slotOrange
	slotViolet
	slotDeepBlue
	slotYellow
	slotRed
	slotTeal
	slotPink
	slotPurple
	slotBlue
	slotIndigo
	slotEmerald
	slotBrown
	slotSlate
	slotCyan
	slotGray
)

// Icon slots share numbering with the Icons slice.
const (
	iconCart = iota
	iconPlate
	iconPlane
	iconShield
	iconBulb
	iconFuel
	iconLuggage
	iconPill
	iconFilm
	iconBags
	iconBooks
	iconMoney
	iconCoffee
	iconHouse
	iconCar
	iconBox
)

// Style is the display color and icon for a category label.
type Style struct {
	Color string
	Icon  string
}

type styleRule struct {
	keywords []string
	color    int
	icon     int
}

// Ordered; the first rule with a matching substring wins.
var styleRules = []styleRule{
	{[]string{"grocery", "groceries", "supermarket"}, slotGreen, iconCart},
	{[]string{"flight", "aviation"}, slotViolet, iconPlane},
	{[]string{"insurance"}, slotDeepBlue, iconShield},
	{[]string{"coffee", "cafe", "café"}, slotBrown, iconCoffee},
	{[]string{"restaurant", "dining", "food"}, slotOrange, iconPlate},
	{[]string{"utilit", "electric", "bills"}, slotYellow, iconBulb},
	{[]string{"gas", "fuel"}, slotRed, iconFuel},
	{[]string{"travel", "hotel"}, slotTeal, iconLuggage},
	{[]string{"health", "medical", "pharmacy"}, slotPink, iconPill},
	{[]string{"entertainment", "movie", "streaming"}, slotPurple, iconFilm},
	{[]string{"shopping", "amazon"}, slotBlue, iconBags},
	{[]string{"education", "tuition", "book"}, slotIndigo, iconBooks},
	{[]string{"income", "salary", "payroll"}, slotEmerald, iconMoney},
	{[]string{"rent", "mortgage", "housing"}, slotSlate, iconHouse},
	{[]string{"transport", "uber", "parking"}, slotCyan, iconCar},
	{[]string{"transfer", "other"}, slotGray, iconBox},
}

// Default icon per category enum, used when every icon slot is taken.
var defaultIcons = map[model.Category]int{
	model.CategoryFood:           iconPlate,
	model.CategoryTransportation: iconCar,
	model.CategoryEntertainment:  iconFilm,
	model.CategoryShopping:       iconBags,
	model.CategoryBills:          iconBulb,
	model.CategoryHealthcare:     iconPill,
	model.CategoryEducation:      iconBooks,
	model.CategoryTravel:         iconLuggage,
	model.CategoryOther:          iconBox,
}

// Hash is a 32-bit string mix, h = h*31 + rune, over the runes of s.
func Hash(s string) int32 {
	var h int32
	for _, r := range s {
		h = (h << 5) - h + int32(r)
	}
	return h
}

func hashSlot(s string, n int) int {
	h := int64(Hash(s))
	if h < 0 {
		h = -h
	}
	return int(h % int64(n))
}

func preferred(name string) (color, icon int) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, rule := range styleRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.color, rule.icon
			}
		}
	}
	return hashSlot(lower, len(Palette)), hashSlot(lower, len(Icons))
}

// StyleFor returns the preferred style of a single label.
func StyleFor(name string) Style {
	color, icon := preferred(name)
	return Style{Color: Palette[color], Icon: Icons[icon]}
}

// Assignment pairs a label with its assigned style.
type Assignment struct {
	Name  string
	Style Style
}

// Assignments is the result of Assign, sorted by name.
type Assignments []Assignment

// Lookup returns the style assigned to name.
func (a Assignments) Lookup(name string) (Style, bool) {
	i := sort.Search(len(a), func(i int) bool { return a[i].Name >= name })
	if i < len(a) && a[i].Name == name {
		return a[i].Style, true
	}
	return Style{}, false
}

// Assign gives each distinct label a style. Labels are processed in ascending
// order; each takes its preferred slot when free, otherwise the next free slot.
// Up to len(Palette) labels never share a color or an icon, and the result does
// not depend on the order of names.
func Assign(names []string) Assignments {
	unique := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			unique = append(unique, n)
		}
	}
	sort.Strings(unique)

	usedColors := make([]bool, len(Palette))
	usedIcons := make([]bool, len(Icons))
	out := make(Assignments, 0, len(unique))

	for _, name := range unique {
		color, icon := preferred(name)

		if c, ok := nextFree(usedColors, color); ok {
			color = c
			usedColors[c] = true
		}

		iconStr := Icons[defaultIcons[Normalize(name)]]
		if i, ok := nextFree(usedIcons, icon); ok {
			usedIcons[i] = true
			iconStr = Icons[i]
		}

		out = append(out, Assignment{
			Name:  name,
			Style: Style{Color: Palette[color], Icon: iconStr},
		})
	}
	return out
}

func nextFree(used []bool, start int) (int, bool) {
	for step := range len(used) {
		i := (start + step) % len(used)
		if !used[i] {
			return i, true
		}
	}
	return start, false
}
