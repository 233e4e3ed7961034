package domain

// ProductTotals is the product side of the dashboard projection.
type ProductTotals struct {
	Total      int64 `json:"total"`
	TotalStock int64 `json:"totalStock"`
}

// OrderStatusCounts breaks order counts down by status.
type OrderStatusCounts struct {
	Processing int64 `json:"processing"`
	Delivered  int64 `json:"delivered"`
	Cancelled  int64 `json:"cancelled"`
	Completed  int64 `json:"completed"`
	Returned   int64 `json:"returned"`
}

// OrderTotals is the order side of the dashboard projection.
type OrderTotals struct {
	Total  int64             `json:"total"`
	Status OrderStatusCounts `json:"status"`
}

// DashboardTotals is a read-side projection; it never participates in the
// ledger's atomic units.
type DashboardTotals struct {
	Products ProductTotals `json:"products"`
	Orders   OrderTotals   `json:"orders"`
}
