package schema

// BillingPurchaseTable represents the 'billing.purchase' table
type BillingPurchaseTable struct {
	Table       string
	ID          string
	BuyerID     string
	PhotoID     string
	AmountCents string
	PaymentRef  string
	CreatedAt   string
}

// BillingPurchase is the schema definition for billing.purchase
var BillingPurchase = BillingPurchaseTable{
	Table:       "billing.purchase",
	ID:          "id",
	BuyerID:     "buyerid",
	PhotoID:     "photoid",
	AmountCents: "amountcents",
	PaymentRef:  "paymentref",
	CreatedAt:   "createdat",
}
