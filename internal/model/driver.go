package model

type Coordinates struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

type LocationUpdate struct {
	DriverID  int64   `json:"driverId" validate:"required"`
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

type ShiftStatus string

const (
	ShiftActive    ShiftStatus = "ACTIVE"
	ShiftCompleted ShiftStatus = "COMPLETED"
)

type DriverShift struct {
	ID           int64       `json:"id,omitempty"`
	Status       ShiftStatus `json:"status"`
	StartedAt    string      `json:"startedAt,omitempty"`
	FinishableAt string      `json:"finishableAt,omitempty"`
	EndedAt      string      `json:"endedAt,omitempty"`
}

type ShiftBalance struct {
	CurrentTotal float64 `json:"currentTotal"`
}

type FinanceSummary struct {
	CashOnHand       float64 `json:"cashOnHand"`
	DepositThreshold float64 `json:"depositThreshold"`
	AvailableBalance float64 `json:"availableBalance"`
	PendingDeposit   float64 `json:"pendingDeposit"`
}

// Earnings keeps the backend's spelling of the available balance key.
type Earnings struct {
	AvailableBalance float64  `json:"avilableBalance"`
	TodayBalance     float64  `json:"todayBalance"`
	WeekBalance      float64  `json:"weekBalance"`
	MonthBalance     float64  `json:"monthBalance"`
	TotalEarnings    *float64 `json:"totalEarnings,omitempty"`
}

type EarningsQuery struct {
	DateOn string `validate:"omitempty,datetime=2006-01-02"`
	From   string `validate:"omitempty,datetime=2006-01-02"`
	To     string `validate:"omitempty,datetime=2006-01-02"`
}

type ShiftEarnings struct {
	ShiftID    int64   `json:"shiftId"`
	StartedAt  string  `json:"startedAt,omitempty"`
	EndedAt    string  `json:"endedAt,omitempty"`
	Total      float64 `json:"total"`
	OrderCount int     `json:"orderCount"`
}

type ShiftEarningsDetails struct {
	ShiftEarnings
	Orders []ShiftOrderEarning `json:"orders"`
}

type ShiftOrderEarning struct {
	OrderID     int64   `json:"orderId"`
	Amount      float64 `json:"amount"`
	DeliveredAt string  `json:"deliveredAt,omitempty"`
}

type Deposit struct {
	ID        int64   `json:"id"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"createdAt,omitempty"`
}

type DocumentStatus struct {
	Type      string `json:"type"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

type DocumentsSummary struct {
	Verified  bool             `json:"verified"`
	Documents []DocumentStatus `json:"documents"`
}

const DepositWarningType = "DEPOSIT_WARNING"

type DepositWarning struct {
	Type             string  `json:"type"`
	Title            string  `json:"title"`
	Message          string  `json:"message"`
	CashOnHand       float64 `json:"cashOnHand"`
	DepositThreshold float64 `json:"depositThreshold"`
	DeadlineHours    float64 `json:"deadlineHours"`
}
