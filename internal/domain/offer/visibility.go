package offer

import (
	"strings"
	"time"
)

const (
	// AllCategories is the category sentinel that disables category filtering
	AllCategories = "All"
	// HotShelfSize caps the highlighted offers shelf
	HotShelfSize = 5
)

// SuggestedCategories is the fixed suggestion set offered to vendors and shoppers.
// Offer categories themselves are free-form.
var SuggestedCategories = []string{
	AllCategories,
	"Food",
	"Grocery",
	"Fashion",
	"Electronics",
	"Beauty",
	"Health",
	"Home",
	"Services",
	"Entertainment",
}

// Criteria narrows a listing of live offers
type Criteria struct {
	Category string
	Search   string
}

// IsLive reports whether the offer may still be listed at now
func IsLive(o *Offer, now time.Time) bool {
	return !o.EndDate.Before(now)
}

// MatchesCategory is true for the sentinel or an exact case-insensitive category match
func MatchesCategory(o *Offer, category string) bool {
	category = strings.TrimSpace(category)
	if category == "" || strings.EqualFold(category, AllCategories) {
		return true
	}
	return strings.EqualFold(o.Category, category)
}

// MatchesSearch is true when search is a case-insensitive substring of the title or the vendor store name
func MatchesSearch(o *Offer, search string) bool {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(o.Title), needle) {
		return true
	}
	if o.Vendor != nil && o.Vendor.StoreName != nil {
		return strings.Contains(strings.ToLower(*o.Vendor.StoreName), needle)
	}
	return false
}

// Filter keeps the order of offers and drops those not matching criteria
func Filter(offers []*Offer, criteria Criteria) []*Offer {
	filtered := make([]*Offer, 0, len(offers))
	for _, o := range offers {
		if MatchesCategory(o, criteria.Category) && MatchesSearch(o, criteria.Search) {
			filtered = append(filtered, o)
		}
	}
	return filtered
}

// HotShelf returns the first HotShelfSize trending or active offers.
// The shelf is hidden while a text search is active.
func HotShelf(filtered []*Offer, search string) []*Offer {
	if strings.TrimSpace(search) != "" {
		return []*Offer{}
	}

	hot := make([]*Offer, 0, HotShelfSize)
	for _, o := range filtered {
		if o.IsTrending || o.Status == StatusActive {
			hot = append(hot, o)
			if len(hot) == HotShelfSize {
				break
			}
		}
	}
	return hot
}
