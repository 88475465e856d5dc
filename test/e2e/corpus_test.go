package e2e

import (
	"path"
	"strings"
	"testing"
)

func TestBuildCorpusCounts(t *testing.T) {
	c := BuildCorpus()

	want := len(corpusCategories) * len(corpusStyles)
	if len(c.Products) != want {
		t.Fatalf("corpus has %d products, want %d", len(c.Products), want)
	}
	if c.TotalProducts != len(c.Products) {
		t.Errorf("TotalProducts = %d, want %d", c.TotalProducts, len(c.Products))
	}
	if c.TotalQueries != len(c.TestCases) {
		t.Errorf("TotalQueries = %d, want %d", c.TotalQueries, len(c.TestCases))
	}
	if len(c.TestCases) == 0 {
		t.Fatal("corpus has no query test cases")
	}
}

func TestBuildCorpusUniqueness(t *testing.T) {
	c := BuildCorpus()

	ids := make(map[string]bool)
	rels := make(map[string]bool)
	ordinals := make(map[int]bool)
	for _, p := range c.Products {
		if ids[p.ID] {
			t.Errorf("duplicate product ID %q", p.ID)
		}
		ids[p.ID] = true
		if rels[p.Rel] {
			t.Errorf("duplicate image path %q", p.Rel)
		}
		rels[p.Rel] = true
		if ordinals[p.Ordinal] {
			t.Errorf("duplicate ordinal %d", p.Ordinal)
		}
		ordinals[p.Ordinal] = true
	}
}

// The catalog derives product IDs from file stems and categories from the
// parent directory, so the corpus must agree with its own paths.
func TestBuildCorpusPathDerivation(t *testing.T) {
	c := BuildCorpus()

	for _, p := range c.Products {
		base := path.Base(p.Rel)
		stem := strings.TrimSuffix(base, path.Ext(base))
		if stem != p.ID {
			t.Errorf("image stem %q does not match product ID %q", stem, p.ID)
		}
		if dir := path.Dir(p.Rel); dir != p.Category {
			t.Errorf("image directory %q does not match category %q", dir, p.Category)
		}
		if ext := path.Ext(p.Rel); ext != ".png" {
			t.Errorf("corpus image %q has extension %q, want .png", p.Rel, ext)
		}
		if p.Name != titleWords(p.ID) {
			t.Errorf("product %q has name %q, want %q", p.ID, p.Name, titleWords(p.ID))
		}
	}
}

func TestBuildCorpusTestCasesCoverAllCategories(t *testing.T) {
	c := BuildCorpus()

	byID := make(map[string]E2EProduct, len(c.Products))
	for _, p := range c.Products {
		byID[p.ID] = p
	}

	seen := make(map[string]bool)
	for _, tc := range c.TestCases {
		p, ok := byID[tc.ProductID]
		if !ok {
			t.Fatalf("test case references unknown product %q", tc.ProductID)
		}
		if tc.Description == "" {
			t.Errorf("test case for %q has no description", tc.ProductID)
		}
		seen[p.Category] = true
	}
	if len(seen) != len(corpusCategories) {
		t.Errorf("test cases cover %d categories, want %d", len(seen), len(corpusCategories))
	}
}

func TestTitleWords(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"crimson-shoe", "Crimson Shoe"},
		{"navy-bag", "Navy Bag"},
		{"charcoal-watch", "Charcoal Watch"},
		{"hat", "Hat"},
	}
	for _, tc := range cases {
		if got := titleWords(tc.in); got != tc.want {
			t.Errorf("titleWords(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
