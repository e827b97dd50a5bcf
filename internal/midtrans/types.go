package midtrans

// TransactionDetails carries the order reference and total charged amount.
// GrossAmount is sent as an integer number of rupiah, Midtrans does not
// accept fractional IDR.
type TransactionDetails struct {
	OrderID     string `json:"order_id"`
	GrossAmount int64  `json:"gross_amount"`
}

// CustomerDetails identifies the payer on the Snap payment page.
type CustomerDetails struct {
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
}

// ItemDetail is a single line shown on the Snap payment page.
type ItemDetail struct {
	ID       string `json:"id"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Name     string `json:"name"`
}

// Callbacks configures where Snap redirects the customer after payment.
type Callbacks struct {
	Finish   string `json:"finish,omitempty"`
	Unfinish string `json:"unfinish,omitempty"`
	Error    string `json:"error,omitempty"`
}

// SnapTransactionRequest is the payload for creating a Snap transaction.
type SnapTransactionRequest struct {
	TransactionDetails TransactionDetails `json:"transaction_details"`
	CustomerDetails    *CustomerDetails   `json:"customer_details,omitempty"`
	ItemDetails        []ItemDetail       `json:"item_details,omitempty"`
	Callbacks          *Callbacks         `json:"callbacks,omitempty"`
}

// SnapTransactionResponse is returned by the Snap create-transaction API.
type SnapTransactionResponse struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// TransactionStatus is the response of the core API status endpoint and is
// also the shape of webhook notification payloads.
type TransactionStatus struct {
	OrderID           string `json:"order_id"`
	TransactionID     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	PaymentType       string `json:"payment_type"`
	SignatureKey      string `json:"signature_key"`
	TransactionTime   string `json:"transaction_time"`
	SettlementTime    string `json:"settlement_time"`
	StatusMessage     string `json:"status_message"`
}
