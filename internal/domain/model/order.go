package model

// LineItem is a single purchasable entry of an order.
type LineItem struct {
	ArtworkID string
	Quantity  int
}

// OrderDraft carries buyer-entered data plus derived line items for one
// submission attempt. It is never persisted beyond the attempt.
type OrderDraft struct {
	FullName string
	Phone    string
	Email    string
	Address  string
	Agreed   bool
	Items    []LineItem

	// Total is the sum of the snapshot prices at draft time. It is shown to
	// the buyer only; the remote API owns final pricing.
	Total float64
}

// OrderConfirmation is the remote API's acknowledgement of a placed order.
type OrderConfirmation struct {
	OrderID string
	Status  string
}
