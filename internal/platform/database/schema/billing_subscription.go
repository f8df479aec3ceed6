package schema

// BillingSubscriptionTable represents the 'billing.subscription' table
type BillingSubscriptionTable struct {
	Table        string
	SubscriberID string
	CreatorID    string
	ExpiresAt    string
	CreatedAt    string
	UpdatedAt    string
}

// BillingSubscription is the schema definition for billing.subscription
var BillingSubscription = BillingSubscriptionTable{
	Table:        "billing.subscription",
	SubscriberID: "subscriberid",
	CreatorID:    "creatorid",
	ExpiresAt:    "expiresat",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}
