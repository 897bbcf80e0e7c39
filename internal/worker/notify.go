package worker

// ExportNotifyMessage is the websocket payload relayed to the owner over
// Redis Pub/Sub when a portfolio export finishes. Field names are part of the
// frontend contract.
type ExportNotifyMessage struct {
	Status        string `json:"status"`
	PortfolioID   uint   `json:"portfolio_id"`
	ObjectKey     string `json:"object_key,omitempty"`
	CorrelationID string `json:"correlation_id"`
	ErrorCode     int    `json:"error_code"`
	ErrorMessage  string `json:"error_message"`
}
