package request

type CreateInvestmentRequest struct {
	Ticker           string  `json:"ticker"`
	PurchaseDate     string  `json:"purchaseDate"`
	InitialAmount    int64   `json:"initialAmount"`
	InitialUnitPrice float64 `json:"initialUnitPrice"`
	TransactionFee   float64 `json:"transactionFee"`
}

type RecordSaleRequest struct {
	SoldShareStatus string  `json:"soldShareStatus"`
	SaleDate        string  `json:"saleDate"`
	QuantitySold    int64   `json:"quantitySold"`
	SalePrice       float64 `json:"salePrice"`
}
