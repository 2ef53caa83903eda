package lifecycle

// StatusMessage is the JSON payload shared by the order.created and
// payment.verified topics: the order id and a lowercase status string.
//
// On order.created the status is always "created". On payment.verified the
// payment collaborator reports "confirmed" or "cancelled".
type StatusMessage struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
