package domain

type PurchaseType string

const (
	PurchaseTypeRent PurchaseType = "RENT"
	PurchaseTypeBuy  PurchaseType = "BUY"
)

// RentalItem is one dress line in a draft order. It is billed per day over
// the order's rental window unless PurchaseType is BUY, in which case the
// purchase price (or its configured fallback) applies instead.
// Dates are yyyy-mm-dd strings.
type RentalItem struct {
	ID                 string       `json:"id"`
	DressID            string       `json:"dress_id"`
	Name               string       `json:"name"`
	Image              string       `json:"image,omitempty"`
	Size               string       `json:"size"`
	Color              string       `json:"color"`
	Quantity           int32        `json:"quantity"`
	PricePerDayCents   int64        `json:"price_per_day_cents"`
	PurchasePriceCents int64        `json:"purchase_price_cents,omitempty"`
	PurchaseType       PurchaseType `json:"purchase_type"`
	StartDate          string       `json:"start_date"`
	EndDate            string       `json:"end_date"`
}

// SameVariant reports whether two rental lines refer to the same sellable
// variant (same dress, size and color). Adding a matching variant replaces
// the existing line instead of creating a duplicate.
func (i RentalItem) SameVariant(other RentalItem) bool {
	return i.DressID == other.DressID && i.Size == other.Size && i.Color == other.Color
}

// ServiceItem is a one-off priced booking (a photography package) with no
// per-day rate and an implicit quantity of 1.
type ServiceItem struct {
	ID          string `json:"id"`
	ServiceID   string `json:"service_id"`
	Name        string `json:"name"`
	PriceCents  int64  `json:"price_cents"`
	BookingDate string `json:"booking_date"`
	Location    string `json:"location"`
}
