package models

import "time"

// PaymentReference is the pending sponsor-payment record created by
// initiate-payment and consumed by confirm-payment. It lives in redis with
// a TTL instead of an in-process map so restarts don't orphan references.
type PaymentReference struct {
	Reference string    `json:"reference" msgpack:"reference"`
	Amount    string    `json:"amount" msgpack:"amount"`
	CreatedAt time.Time `json:"created_at" msgpack:"created_at"`
}

// PaymentStatus is the subset of the developer-portal transaction record
// the confirm flow cares about.
type PaymentStatus struct {
	Reference         string `json:"reference"`
	TransactionID     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
}
