// Package catalog holds the static appliance price table.
package catalog

import "fmt"

// Specs lists the sizes of one category with their coverage and base price,
// aligned by index.
type Specs struct {
	Sizes      []string  `json:"sizes"`
	Coverage   []string  `json:"coverage"`
	BasePrices []float64 `json:"basePrices"`
}

func (s Specs) IndexOf(size string) int {
	for i, v := range s.Sizes {
		if v == size {
			return i
		}
	}
	return -1
}

type Resolution struct {
	Size      string
	Coverage  string
	UnitPrice float64
}

// Catalog is read-only once built.
type Catalog struct {
	order []string
	specs map[string]Specs
}

type Entry struct {
	Category string
	Specs    Specs
}

// New validates and freezes entries. Categories keep the given order.
func New(entries ...Entry) (*Catalog, error) {
	c := &Catalog{specs: make(map[string]Specs, len(entries))}
	for _, e := range entries {
		if e.Category == "" {
			return nil, fmt.Errorf("catalog: empty category")
		}
		if _, dup := c.specs[e.Category]; dup {
			return nil, fmt.Errorf("catalog: duplicate category %q", e.Category)
		}
		n := len(e.Specs.Sizes)
		if n == 0 || len(e.Specs.Coverage) != n || len(e.Specs.BasePrices) != n {
			return nil, fmt.Errorf("catalog: %s: sizes, coverage and prices must align", e.Category)
		}
		c.order = append(c.order, e.Category)
		c.specs[e.Category] = Specs{
			Sizes:      append([]string(nil), e.Specs.Sizes...),
			Coverage:   append([]string(nil), e.Specs.Coverage...),
			BasePrices: append([]float64(nil), e.Specs.BasePrices...),
		}
	}
	return c, nil
}

func (c *Catalog) Categories() []string {
	return append([]string(nil), c.order...)
}

func (c *Catalog) SpecsFor(category string) (Specs, bool) {
	s, ok := c.specs[category]
	return s, ok
}

// ResolveSize returns the price and coverage at index for category.
func (c *Catalog) ResolveSize(category string, index int) (Resolution, bool) {
	s, ok := c.specs[category]
	if !ok || index < 0 || index >= len(s.Sizes) {
		return Resolution{}, false
	}
	return Resolution{Size: s.Sizes[index], Coverage: s.Coverage[index], UnitPrice: s.BasePrices[index]}, true
}

func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, Entry{Category: name, Specs: c.specs[name]})
	}
	return out
}

func Default() *Catalog {
	c, err := New(defaultEntries...)
	if err != nil {
		panic(err)
	}
	return c
}

var defaultEntries = []Entry{
	{Category: "冷氣", Specs: Specs{
		Sizes:      []string{"1噸", "1.5噸", "2噸", "2.5噸", "3噸"},
		Coverage:   []string{"3-5坪", "5-8坪", "8-12坪", "12-15坪", "15-20坪"},
		BasePrices: []float64{15000, 20000, 28000, 35000, 45000},
	}},
	{Category: "洗衣機", Specs: Specs{
		Sizes:      []string{"6公斤", "8公斤", "10公斤", "12公斤", "15公斤"},
		Coverage:   []string{"1-2人", "2-3人", "3-4人", "4-5人", "5人以上"},
		BasePrices: []float64{8000, 12000, 18000, 25000, 35000},
	}},
	{Category: "電視", Specs: Specs{
		Sizes:      []string{"32吋", "43吋", "50吋", "55吋", "65吋", "75吋"},
		Coverage:   []string{"小房間", "臥室", "客廳小", "客廳中", "客廳大", "視聽室"},
		BasePrices: []float64{8000, 15000, 25000, 35000, 50000, 80000},
	}},
	{Category: "冰箱", Specs: Specs{
		Sizes:      []string{"100公升", "200公升", "300公升", "400公升", "500公升以上"},
		Coverage:   []string{"1-2人", "2-3人", "3-4人", "4-5人", "5人以上"},
		BasePrices: []float64{10000, 18000, 28000, 40000, 60000},
	}},
}
