package models

// Campaign is a fundraising target bound to a ledger account. The platform
// never stores a secret for the campaign account; custody of raised funds
// stays outside the system.
type Campaign struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Goal      float64 `json:"goal"`
	PublicKey string  `json:"publicKey"`
}
