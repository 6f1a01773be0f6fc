package models

import "time"

// User is an account in the system. Users are provisioned with the
// adduser command; there is no self-registration surface.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// RefreshToken is the persisted ledger row backing a long-lived
// refresh token. The token string itself is a signed JWT; the row
// exists so that revocation can be enforced server-side.
type RefreshToken struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	Revoked   bool      `json:"revoked"`
}

// BudgetEntry is the monthly aggregate: one row per user per
// (month, year). Month is the English month name ("January").
type BudgetEntry struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Month  string `json:"month"`
	Year   int    `json:"year"`

	// Income
	Salary         float64 `json:"salary"`
	FreelancingOne float64 `json:"freelancing_one"`
	FreelancingTwo float64 `json:"freelancing_two"`

	// Fixed expenses
	MobileRecharge float64 `json:"mobile_recharge"`
	Wifi           float64 `json:"wifi"`
	EmiOne         float64 `json:"emi_one"`
	EmiTwo         float64 `json:"emi_two"`
	EmiThree       float64 `json:"emi_three"`
	EmiFour        float64 `json:"emi_four"`
	Food           float64 `json:"food"`
	Rent           float64 `json:"rent"`
	CreditcardOne  float64 `json:"creditcard_one"`
	CreditcardTwo  float64 `json:"creditcard_two"`
	Shopping       float64 `json:"shopping"`
	Travel         float64 `json:"travel"`
	OtherExpenses  float64 `json:"other_expenses"`

	// Investments
	Sip             float64 `json:"sip"`
	FixedDepositOne float64 `json:"fixed_deposit_one"`
	FixedDepositTwo float64 `json:"fixed_deposit_two"`
	Etf             float64 `json:"etf"`

	CreatedAt time.Time `json:"created_at"`
}

// VariableEntry is an ad-hoc expense recorded during the month.
// Draft entries are mutable; once finalized into the month's
// BudgetEntry they become read-only.
type VariableEntry struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Month       string    `json:"month"`
	Year        int       `json:"year"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Finalized   bool      `json:"finalized"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BucketItem is a wish-list entry for a future purchase.
type BucketItem struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Price       float64    `json:"price"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	TargetDate  string     `json:"target_date"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
