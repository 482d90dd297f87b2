package events

// Topic constants for domain events emitted by the store.
const (
	TopicSaleCreated     = "sale.created"
	TopicPurchaseCreated = "purchase.created"
)

// SaleCreated is the payload of TopicSaleCreated.
type SaleCreated struct {
	SaleID        string   `json:"saleId"`
	InvoiceNo     string   `json:"invoiceNo"`
	Total         string   `json:"total"`
	PaymentMethod string   `json:"paymentMethod"`
	ProductIDs    []string `json:"productIds"`
}

// PurchaseCreated is the payload of TopicPurchaseCreated.
type PurchaseCreated struct {
	PurchaseID string   `json:"purchaseId"`
	SupplierID string   `json:"supplierId,omitempty"`
	Total      string   `json:"total"`
	ProductIDs []string `json:"productIds"`
}

// DefaultTopics returns the topics forwarded to background processing.
func DefaultTopics() []string {
	return []string{TopicSaleCreated, TopicPurchaseCreated}
}
