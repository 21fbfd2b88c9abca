package offer

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOffer(title, category string, status Status, trending bool) *Offer {
	return &Offer{
		ID:         uuid.New(),
		Title:      title,
		Category:   category,
		Status:     status,
		IsTrending: trending,
	}
}

func titles(offers []*Offer) []string {
	out := make([]string, 0, len(offers))
	for _, o := range offers {
		out = append(out, o.Title)
	}
	return out
}

func TestIsLive(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	o := &Offer{EndDate: now}

	assert.True(t, IsLive(o, now), "an offer ending exactly now is still live")
	assert.False(t, IsLive(o, now.Add(time.Second)))
}

func TestMatchesCategory(t *testing.T) {
	o := newOffer("Pizza", "Food", StatusActive, false)

	assert.True(t, MatchesCategory(o, ""))
	assert.True(t, MatchesCategory(o, "All"))
	assert.True(t, MatchesCategory(o, "food"))
	assert.False(t, MatchesCategory(o, "Fashion"))
}

func TestMatchesSearch(t *testing.T) {
	store := "Luigi's Kitchen"
	o := newOffer("Half price pizza", "Food", StatusActive, false)
	o.Vendor = &VendorSummary{StoreName: &store}

	assert.True(t, MatchesSearch(o, "PIZZA"))
	assert.True(t, MatchesSearch(o, "kitchen"))
	assert.True(t, MatchesSearch(o, "  "))
	assert.False(t, MatchesSearch(o, "sushi"))

	o.Vendor = nil
	assert.False(t, MatchesSearch(o, "kitchen"))
}

func TestFilter_KeepsOrder(t *testing.T) {
	offers := []*Offer{
		newOffer("Burger", "Food", StatusActive, false),
		newOffer("Jacket", "Fashion", StatusActive, false),
		newOffer("Burrito", "Food", StatusInactive, false),
	}

	got := Filter(offers, Criteria{Category: "Food"})
	assert.Equal(t, []string{"Burger", "Burrito"}, titles(got))

	got = Filter(offers, Criteria{Category: AllCategories, Search: "bur"})
	assert.Equal(t, []string{"Burger", "Burrito"}, titles(got))

	assert.Empty(t, Filter(offers, Criteria{Category: "Electronics"}))
}

func TestHotShelf(t *testing.T) {
	offers := []*Offer{
		newOffer("a", "Food", StatusInactive, false),
		newOffer("b", "Food", StatusInactive, true),
		newOffer("c", "Food", StatusActive, false),
		newOffer("d", "Food", StatusActive, true),
		newOffer("e", "Food", StatusActive, false),
		newOffer("f", "Food", StatusActive, false),
		newOffer("g", "Food", StatusActive, false),
	}

	hot := HotShelf(offers, "")
	require.Len(t, hot, HotShelfSize)
	assert.Equal(t, []string{"b", "c", "d", "e", "f"}, titles(hot))

	searching := HotShelf(offers, "b")
	assert.NotNil(t, searching)
	assert.Empty(t, searching)
}

func TestHoursRemaining(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	o := &Offer{EndDate: now.Add(90 * time.Minute)}

	assert.Equal(t, 1, o.HoursRemaining(now))
	assert.Equal(t, 0, o.HoursRemaining(now.Add(2*time.Hour)))
}
