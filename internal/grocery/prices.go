package grocery

import "net/url"

// PriceLink is a supermarket search URL for one item.
type PriceLink struct {
	Store string `json:"store"`
	URL   string `json:"url"`
}

var supermarkets = []struct {
	name string
	base string
}{
	{"New World", "https://www.newworld.co.nz/shop/search?q="},
	{"Woolworths", "https://www.woolworths.co.nz/shop/searchproducts?search="},
	{"Pak'nSave", "https://www.paknsave.co.nz/shop/search?q="},
}

// PriceLinks returns search links for item at each supported supermarket.
func PriceLinks(item string) []PriceLink {
	q := url.QueryEscape(item)
	links := make([]PriceLink, 0, len(supermarkets))
	for _, s := range supermarkets {
		links = append(links, PriceLink{Store: s.name, URL: s.base + q})
	}
	return links
}
