package models

import "time"

// HoldingType classifies a holding into one of the dashboard sections.
type HoldingType string

const (
	TypeCash       HoldingType = "CASH"
	TypeStock      HoldingType = "STOCK"
	TypeCreditCard HoldingType = "CREDIT_CARD"
	TypeCrypto     HoldingType = "CRYPTO"
	TypeOther      HoldingType = "OTHER"
)

// Valid reports whether t is one of the known holding types.
func (t HoldingType) Valid() bool {
	switch t {
	case TypeCash, TypeStock, TypeCreditCard, TypeCrypto, TypeOther:
		return true
	}
	return false
}

// TransactionKind is the direction of a ledger event. Stored amounts are
// always non-negative; the kind carries the sign.
type TransactionKind string

const (
	KindIncome  TransactionKind = "INCOME"
	KindExpense TransactionKind = "EXPENSE"
)

// Valid reports whether k is a known transaction kind.
func (k TransactionKind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// AutomationType selects the rule behaviour: a fixed recurring booking or a
// budget-capped dollar-cost-averaging purchase.
type AutomationType string

const (
	AutomationRecurring AutomationType = "RECURRING"
	AutomationDCAInvest AutomationType = "DCA_INVEST"
)

// Valid reports whether t is a known automation type.
func (t AutomationType) Valid() bool {
	return t == AutomationRecurring || t == AutomationDCAInvest
}

// LogStatus is the outcome of one automation rule evaluation.
type LogStatus string

const (
	StatusSuccess LogStatus = "SUCCESS"
	StatusFailed  LogStatus = "FAILED"
	StatusSkipped LogStatus = "SKIPPED"
)

// Holding is a single asset or liability position. Value is always
// price * quantity in the holding's native currency; liabilities such as
// credit-card balances carry a negative quantity.
type Holding struct {
	ID          string      `json:"id"           gorm:"primaryKey"`
	Scope       string      `json:"-"            gorm:"index"`
	Name        string      `json:"name"         binding:"required"`
	Ticker      string      `json:"ticker,omitempty"`
	Type        HoldingType `json:"type"         gorm:"index" binding:"required"`
	Price       float64     `json:"price"`
	Quantity    float64     `json:"quantity"`
	Currency    string      `json:"currency"     binding:"required"`
	Color       string      `json:"color,omitempty"`
	BillDay     *int        `json:"bill_day,omitempty"`
	Change24h   float64     `json:"change_24h"   gorm:"-"`
	LastUpdated *time.Time  `json:"last_updated,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Value returns the position value in the holding's native currency.
func (h Holding) Value() float64 {
	return h.Price * h.Quantity
}

// Transaction is one immutable ledger event. Amount is stored in the base
// currency regardless of the currency it was entered in.
type Transaction struct {
	ID              string          `json:"id"   gorm:"primaryKey"`
	Scope           string          `json:"-"    gorm:"index"`
	Kind            TransactionKind `json:"kind" gorm:"index" binding:"required"`
	Date            time.Time       `json:"date" gorm:"index"`
	Amount          float64         `json:"amount"`
	Category        string          `json:"category"`
	Note            string          `json:"note"`
	SourceAssetID   string          `json:"source_asset_id,omitempty" gorm:"index"`
	SourceAssetName string          `json:"source_asset_name,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Category is a user-managed expense/income classification. Transactions
// reference categories by label, not by id; the label is the stable key.
type Category struct {
	ID        string    `json:"id"       gorm:"primaryKey"`
	Scope     string    `json:"-"        gorm:"index"`
	Label     string    `json:"label"    binding:"required"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	Keywords  Keywords  `json:"keywords" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Automation is a user-defined recurring rule. The simulation engine never
// mutates rule definitions; DayOfMonth is informational only.
type Automation struct {
	ID              string          `json:"id"   gorm:"primaryKey"`
	Scope           string          `json:"-"    gorm:"index"`
	Name            string          `json:"name" binding:"required"`
	Type            AutomationType  `json:"type" gorm:"index" binding:"required"`
	Amount          float64         `json:"amount"`
	Currency        string          `json:"currency"`
	DayOfMonth      int             `json:"day_of_month"`
	Category        string          `json:"category,omitempty"`
	TransactionKind TransactionKind `json:"transaction_kind,omitempty"`
	TargetAssetID   string          `json:"target_asset_id,omitempty"`
	SourceAssetID   string          `json:"source_asset_id,omitempty"`
	InvestAssetID   string          `json:"invest_asset_id,omitempty"`
	Active          bool            `json:"active"`
	LastRun         *time.Time      `json:"last_run,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// SystemLog is an append-only audit entry produced by one simulation pass.
type SystemLog struct {
	ID          string    `json:"id"     gorm:"primaryKey"`
	Scope       string    `json:"-"      gorm:"index"`
	Date        time.Time `json:"date"   gorm:"index"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      LogStatus `json:"status" gorm:"index"`
	Amount      string    `json:"amount,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Holding) TableName() string {
	return "holdings"
}

func (Transaction) TableName() string {
	return "transactions"
}

func (Category) TableName() string {
	return "categories"
}

func (Automation) TableName() string {
	return "automations"
}

func (SystemLog) TableName() string {
	return "system_logs"
}
