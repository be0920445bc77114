package provider

// Update is the subset of a Telegram webhook update the payment flow reads:
// the pre-checkout validation callback and the successful-payment message.
type Update struct {
	UpdateID         int64             `json:"update_id"`
	PreCheckoutQuery *PreCheckoutQuery `json:"pre_checkout_query,omitempty"`
	Message          *Message          `json:"message,omitempty"`
}

type PreCheckoutQuery struct {
	ID             string `json:"id"`
	Currency       string `json:"currency"`
	TotalAmount    int    `json:"total_amount"`
	InvoicePayload string `json:"invoice_payload"`
}

type Message struct {
	SuccessfulPayment *SuccessfulPayment `json:"successful_payment,omitempty"`
}

type SuccessfulPayment struct {
	Currency                string `json:"currency"`
	TotalAmount             int    `json:"total_amount"`
	InvoicePayload          string `json:"invoice_payload"`
	TelegramPaymentChargeID string `json:"telegram_payment_charge_id"`
	ProviderPaymentChargeID string `json:"provider_payment_charge_id"`
}
