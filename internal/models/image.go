package models

import "strings"

// imageKeywords maps name substrings to bundled stock images. Order matters:
// the first matching keyword wins.
var imageKeywords = []struct {
	keyword string
	path    string
}{
	{"tomato", "/static/images/ai_tomatoes.jpg"},
	{"spinach", "/static/images/ai_spinach.jpg"},
	{"cabbage", "/static/images/ai_cabbage.jpg"},
}

const defaultImageURL = "/static/images/default_ai_product.jpg"

// ImageURLForName derives a stock image path from a product name by
// case-insensitive substring match. Same name always yields the same path.
func ImageURLForName(name string) string {
	lower := strings.ToLower(name)
	for _, k := range imageKeywords {
		if strings.Contains(lower, k.keyword) {
			return k.path
		}
	}
	return defaultImageURL
}
