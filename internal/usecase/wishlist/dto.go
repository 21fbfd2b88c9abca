package wishlist

import "github.com/google/uuid"

type ToggleResponse struct {
	OfferID    uuid.UUID `json:"offer_id"`
	Wishlisted bool      `json:"wishlisted"`
}

// StatusResponse lets clients render every heart icon from one call
type StatusResponse struct {
	OfferIDs []uuid.UUID `json:"offer_ids"`
}
