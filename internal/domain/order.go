package domain

// Order is the transient view of a remote order, rebuilt on every poll.
// Dispatched is derived from the ledger at annotation time and is the only
// field the engine mutates in place.
type Order struct {
	ID            int64   `json:"order_id"`
	CustomerName  string  `json:"customer_name"`
	CustomerPhone string  `json:"customer_phone"`
	TotalPrice    float64 `json:"total_price"`
	DateAdded     int64   `json:"date_added"`
	ShipDate      *int64  `json:"ship_date,omitempty"`
	Dispatched    bool    `json:"dispatched"`
}

type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type Product struct {
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Unit       string  `json:"unit"`
	UnitNumber string  `json:"unit_number"`
	TotalUnit  string  `json:"total_unit"`
	TotalPrice float64 `json:"total_price"`
}

type Payment struct {
	Type       string  `json:"payment_type"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"total_price"`
	DateAdded  int64   `json:"date_added"`
}

// OrderDetail is the full order body handed to the dispatch service.
type OrderDetail struct {
	OrderID        int64     `json:"order_id"`
	Customer       Customer  `json:"customer"`
	Products       []Product `json:"products"`
	Payment        Payment   `json:"payment"`
	SubTotal       float64   `json:"sub_total"`
	DeliveryCharge float64   `json:"delivery_charge"`
	GrandTotal     float64   `json:"grand_total"`
	DateAdded      int64     `json:"date_added"`
	ShipDate       *int64    `json:"ship_date,omitempty"`
}

// DispatchOptions tune one delivery to the output device.
type DispatchOptions struct {
	Silent     bool
	Background bool
	DeviceName string
}

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailed  Outcome = "failed"
)

// DispatchRecord is the durable row written once per dispatch attempt.
// A later write for the same OrderID replaces the earlier one.
type DispatchRecord struct {
	OrderID        int64   `json:"order_id"`
	DispatchedAt   int64   `json:"dispatched_at"`
	OrderDateAdded int64   `json:"order_date_added"`
	ShipDate       *int64  `json:"ship_date,omitempty"`
	CustomerName   string  `json:"customer_name"`
	CustomerPhone  string  `json:"customer_phone"`
	TotalPrice     float64 `json:"total_price"`
	Outcome        Outcome `json:"outcome"`
}

// LedgerStats aggregates dispatch records. Since counts records written
// at-or-after the cutoff passed to Stats.
type LedgerStats struct {
	Total   int64 `json:"total"`
	Success int64 `json:"success"`
	Failed  int64 `json:"failed"`
	Since   int64 `json:"since"`
}

type EngineState string

const (
	StateStopped  EngineState = "stopped"
	StateStarting EngineState = "starting"
	StateRunning  EngineState = "running"
	StateError    EngineState = "error"
)
