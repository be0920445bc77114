package entity

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusFailed    OrderStatus = "failed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type ReferenceType string

const (
	ReferenceSubscription ReferenceType = "subscription"
	ReferenceUnlock       ReferenceType = "unlock"
	ReferenceTip          ReferenceType = "tip"
	ReferenceLivestream   ReferenceType = "livestream"
)

// Order drives a payment through its lifecycle. Amounts are in Stars
// (smallest unit); Fee + Net == Amount always, both locked in at creation.
type Order struct {
	ID                string        `json:"id"`
	UserID            string        `json:"user_id"`
	CreatorID         string        `json:"creator_id,omitempty"`
	ReferenceType     ReferenceType `json:"reference_type"`
	ReferenceID       string        `json:"reference_id"`
	Amount            int           `json:"amount"`
	FeePercent        int           `json:"fee_percent"`
	Fee               int           `json:"fee"`
	Net               int           `json:"net"`
	Status            OrderStatus   `json:"status"`
	ProviderPaymentID string        `json:"provider_payment_id,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	CompletedAt       *time.Time    `json:"completed_at,omitempty"`
}

type LedgerRole string

const (
	LedgerRoleUser     LedgerRole = "user"
	LedgerRoleCreator  LedgerRole = "creator"
	LedgerRolePlatform LedgerRole = "platform"
)

type LedgerEntry struct {
	ID          string     `json:"id"`
	OrderID     string     `json:"order_id"`
	UserID      string     `json:"user_id,omitempty"`
	Amount      int        `json:"amount"` // signed, negative = debit
	Role        LedgerRole `json:"role"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
}

type Wallet struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	StarsBalance int       `json:"stars_balance"`
	TotalEarned  int       `json:"total_earned"`
	TotalSpent   int       `json:"total_spent"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidReferenceType reports whether t is one of the known order kinds.
func ValidReferenceType(t ReferenceType) bool {
	switch t {
	case ReferenceSubscription, ReferenceUnlock, ReferenceTip, ReferenceLivestream:
		return true
	}
	return false
}

// ComputeFee splits amount into platform fee and creator net for the given
// fee percent, rounding the fee half-up. Fee + net always equals amount.
func ComputeFee(amount, feePercent int) (fee, net int) {
	fee = (amount*feePercent + 50) / 100
	net = amount - fee
	return fee, net
}
