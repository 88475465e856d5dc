// Package e2e exercises the full catalog stack over a generated image corpus.
package e2e

import "strings"

// E2EProduct is one product in the generated catalog. Ordinal drives the
// rendered swatch; Rel is the image's catalog-relative path.
type E2EProduct struct {
	ID       string
	Name     string
	Category string
	Rel      string
	Ordinal  int
}

// QueryTestCase searches with an exact copy of one product's catalog
// image and expects that product near the top of the results.
type QueryTestCase struct {
	ProductID   string
	Description string
}

// Corpus holds products and query test cases for E2E tests.
type Corpus struct {
	Products      []E2EProduct
	TestCases     []QueryTestCase
	TotalProducts int
	TotalQueries  int
}

var corpusCategories = []struct {
	plural   string
	singular string
}{
	{"shoes", "shoe"},
	{"bags", "bag"},
	{"jackets", "jacket"},
	{"hats", "hat"},
	{"watches", "watch"},
	{"belts", "belt"},
}

var corpusStyles = []string{
	"crimson", "navy", "olive", "mustard", "plum",
	"teal", "coral", "slate", "ivory", "charcoal",
}

// BuildCorpus returns a corpus of 60 products spread over 6 category
// subdirectories, each with a visually distinct image, plus query test
// cases covering every category.
func BuildCorpus() *Corpus {
	products := buildProducts()
	cases := buildQueryTestCases(products)
	return &Corpus{
		Products:      products,
		TestCases:     cases,
		TotalProducts: len(products),
		TotalQueries:  len(cases),
	}
}

func buildProducts() []E2EProduct {
	out := make([]E2EProduct, 0, len(corpusCategories)*len(corpusStyles))
	for ci, cat := range corpusCategories {
		for si, style := range corpusStyles {
			ordinal := ci*len(corpusStyles) + si
			id := style + "-" + cat.singular
			out = append(out, E2EProduct{
				ID: id,
				// The catalog derives display names from file stems, so
				// the expected name is the title-cased stem.
				Name:     titleWords(id),
				Category: cat.plural,
				Rel:      cat.plural + "/" + id + ".png",
				Ordinal:  ordinal,
			})
		}
	}
	return out
}

// buildQueryTestCases takes every third product, which covers all six
// category directories.
func buildQueryTestCases(products []E2EProduct) []QueryTestCase {
	var cases []QueryTestCase
	for i := 0; i < len(products); i += 3 {
		p := products[i]
		cases = append(cases, QueryTestCase{
			ProductID:   p.ID,
			Description: "query with " + p.Rel + " should surface " + p.ID,
		})
	}
	return cases
}

// titleWords uppercases the first letter of each dash-separated word.
func titleWords(stem string) string {
	words := strings.Split(stem, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
