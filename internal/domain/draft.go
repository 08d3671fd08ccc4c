package domain

type DraftStatus string

const (
	// DraftStatusBuilding allows free mutation of the item lists.
	DraftStatusBuilding DraftStatus = "BUILDING"
	// DraftStatusSubmitting marks one payment attempt in flight. A draft in
	// this state rejects further submissions and mutations until the attempt
	// settles.
	DraftStatusSubmitting DraftStatus = "SUBMITTING"
)

// DraftOrder is the in-progress, not-yet-paid collection of rental and
// photography items a customer assembles before checkout. One draft per
// customer; every checkout screen reads and writes it through the
// checkout service, never directly.
type DraftOrder struct {
	ID               int32         `json:"id"`
	CustomerID       int32         `json:"customer_id"`
	Status           DraftStatus   `json:"status"`
	Items            []RentalItem  `json:"items"`
	PhotographyItems []ServiceItem `json:"photography_items"`
	CreatedOn        string        `json:"created_on"`
	UpdatedOn        string        `json:"updated_on"`
}

// IsEmpty reports whether the draft has no billable lines of either kind.
func (d *DraftOrder) IsEmpty() bool {
	return len(d.Items) == 0 && len(d.PhotographyItems) == 0
}

// Snapshot returns deep copies of both item lists. Callers own the returned
// slices and may not reach the draft's live state through them.
func (d *DraftOrder) Snapshot() ([]RentalItem, []ServiceItem) {
	items := make([]RentalItem, len(d.Items))
	copy(items, d.Items)
	services := make([]ServiceItem, len(d.PhotographyItems))
	copy(services, d.PhotographyItems)
	return items, services
}
