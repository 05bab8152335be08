package http

import "time"

// Error is the wire shape every failed request returns.
type Error struct {
	Code          int    `json:"code"`
	Message       string `json:"message"`
	CurrentStatus string `json:"current_status,omitempty"`
}

// NewOrderItem is one order line in a creation request.
type NewOrderItem struct {
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// NewOrder is the body of POST /api/v1/orders.
type NewOrder struct {
	Items                []NewOrderItem `json:"items"`
	DeliveryAddress      string         `json:"delivery_address"`
	DeliveryInstructions string         `json:"delivery_instructions,omitempty"`
}

// OrderCreated is the response to a successful order creation.
type OrderCreated struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// TransitionRequest is the body of POST /api/v1/orders/:order_id/transition.
type TransitionRequest struct {
	TargetStatus string `json:"target_status"`
	Notes        string `json:"notes,omitempty"`
}

// AvailabilityReport is the body of POST /api/v1/staff/availability.
type AvailabilityReport struct {
	Role   string `json:"role"`
	Status string `json:"status"`
}

// OrderItem is one order line in responses.
type OrderItem struct {
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Order is the order read model on the wire.
type Order struct {
	ID                   string      `json:"id"`
	CustomerID           string      `json:"customer_id"`
	Items                []OrderItem `json:"items"`
	DeliveryAddress      string      `json:"delivery_address"`
	DeliveryInstructions string      `json:"delivery_instructions,omitempty"`
	Status               string      `json:"status"`
	AssignedChef         *string     `json:"assigned_chef,omitempty"`
	AssignedDriver       *string     `json:"assigned_driver,omitempty"`
	TotalAmount          float64     `json:"total_amount"`
	CreatedAt            time.Time   `json:"created_at"`
}

// TimelineStep is one ledger entry on the wire.
type TimelineStep struct {
	StepNumber      int        `json:"step_number"`
	Status          string     `json:"status"`
	AssignedTo      string     `json:"assigned_to"`
	StartedAt       time.Time  `json:"started_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	DurationSeconds *int64     `json:"duration_seconds,omitempty"`
	Notes           string     `json:"notes,omitempty"`
}

// Timeline is the full ledger of one order on the wire.
type Timeline struct {
	OrderID              string         `json:"order_id"`
	Steps                []TimelineStep `json:"steps"`
	TotalDurationSeconds int64          `json:"total_duration_seconds"`
}

// StaffMember is one worker on the roster.
type StaffMember struct {
	StaffID         string  `json:"staff_id"`
	Role            string  `json:"role"`
	Status          string  `json:"status"`
	CurrentOrderID  *string `json:"current_order_id,omitempty"`
	OrdersCompleted int     `json:"orders_completed"`
}

// StaffRoster groups the tenant's workers by availability.
type StaffRoster struct {
	Available      []StaffMember `json:"available"`
	Busy           []StaffMember `json:"busy"`
	Offline        []StaffMember `json:"offline"`
	AvailableCount int           `json:"available_count"`
	BusyCount      int           `json:"busy_count"`
	OfflineCount   int           `json:"offline_count"`
}

// RecentOrder is a dashboard row for one recent order.
type RecentOrder struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customer_id"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// Dashboard is the tenant's operational snapshot.
type Dashboard struct {
	StatusCounts   map[string]int `json:"status_counts"`
	ActiveOrders   int            `json:"active_orders"`
	DeliveredCount int            `json:"delivered_count"`
	FailedCount    int            `json:"failed_count"`
	TotalRevenue   float64        `json:"total_revenue"`
	RecentOrders   []RecentOrder  `json:"recent_orders"`
}

// StaffPerformance is one worker's productivity row.
type StaffPerformance struct {
	StaffID        string  `json:"staff_id"`
	Role           string  `json:"role"`
	CompletedTasks int     `json:"completed_tasks"`
	AvgTimeSeconds float64 `json:"avg_time_seconds"`
	CompletionRate float64 `json:"completion_rate"`
}
