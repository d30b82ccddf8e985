// Package automation evaluates user-defined rules against a holdings
// snapshot. One Run is a single synchronous pass: every rule sees the effect
// of earlier rules, the caller observes only the final snapshot plus the
// emitted transactions and audit logs, and no rule failure halts the pass.
package automation

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"tallybook/internal/currency"
	"tallybook/internal/ledger"
	"tallybook/internal/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrInvalidEngineConfig = errors.New("invalid automation engine config")

// Engine runs simulation passes. It is stateless between runs; clock and id
// generation are injectable for tests.
type Engine struct {
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// Result is the output of one pass. Transactions and Logs are in rule
// evaluation order; callers prepend them to history so they read newest
// first.
type Result struct {
	Holdings     []models.Holding     `json:"holdings"`
	Transactions []models.Transaction `json:"transactions"`
	Logs         []models.SystemLog   `json:"logs"`
}

type Option func(*Engine)

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) {
		e.newID = newID
	}
}

func (e *Engine) IsValid() error {
	switch {
	case e.logger == nil:
		return errors.Wrap(ErrInvalidEngineConfig, "logger cannot be nil")
	case e.now == nil:
		return errors.Wrap(ErrInvalidEngineConfig, "clock cannot be nil")
	case e.newID == nil:
		return errors.Wrap(ErrInvalidEngineConfig, "id generator cannot be nil")
	default:
		return nil
	}
}

func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		now:   time.Now,
		newID: uuid.NewString,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, e.IsValid()
}

// Run evaluates every active rule in list order against a copy of the
// holdings snapshot. Rules are independent units of work: a FAILED or
// SKIPPED rule leaves the snapshot untouched for that rule only, and the
// pass always continues.
func (e *Engine) Run(rules []models.Automation, holdings []models.Holding, rates currency.RateTable) Result {
	snapshot := make([]models.Holding, len(holdings))
	copy(snapshot, holdings)

	result := Result{Holdings: snapshot}

	for _, rule := range rules {
		if !rule.Active {
			continue
		}

		now := e.now()
		switch rule.Type {
		case models.AutomationRecurring:
			e.runRecurring(rule, &result, rates, now)
		case models.AutomationDCAInvest:
			e.runDCA(rule, &result, rates, now)
		default:
			e.logger.Warn("unknown automation type", "rule", rule.Name, "type", rule.Type)
			result.Logs = append(result.Logs, models.SystemLog{
				ID:          e.newID(),
				Date:        now,
				Title:       fmt.Sprintf("失敗：%s", rule.Name),
				Description: fmt.Sprintf("未知的自動化類型: %s", rule.Type),
				Status:      models.StatusFailed,
			})
		}
	}

	e.logger.Info("automation pass complete",
		"rules", len(rules),
		"transactions", len(result.Transactions),
		"logs", len(result.Logs))

	return result
}

func (e *Engine) runRecurring(rule models.Automation, result *Result, rates currency.RateTable, now time.Time) {
	idx := findHolding(result.Holdings, rule.TargetAssetID)
	if idx < 0 {
		result.Logs = append(result.Logs, models.SystemLog{
			ID:          e.newID(),
			Date:        now,
			Title:       fmt.Sprintf("失敗：%s", rule.Name),
			Description: fmt.Sprintf("找不到目標帳戶 ID: %s", rule.TargetAssetID),
			Status:      models.StatusFailed,
		})
		return
	}

	target := &result.Holdings[idx]
	kind := rule.TransactionKind
	if kind == "" {
		kind = models.KindExpense
	}

	amountBase := rule.Amount
	if err := ledger.Apply(target, kind, amountBase, rates); err != nil {
		e.logger.Error("recurring rule conversion failed", "rule", rule.Name, "error", err)
		result.Logs = append(result.Logs, models.SystemLog{
			ID:          e.newID(),
			Date:        now,
			Title:       fmt.Sprintf("失敗：%s", rule.Name),
			Description: fmt.Sprintf("匯率轉換失敗 (%s): %v", target.Currency, err),
			Status:      models.StatusFailed,
		})
		return
	}

	category := rule.Category
	if category == "" {
		category = "自動化"
	}

	result.Transactions = append(result.Transactions, models.Transaction{
		ID:              e.newID(),
		Kind:            kind,
		Date:            now,
		Amount:          amountBase,
		Category:        category,
		Note:            fmt.Sprintf("[自動] %s", rule.Name),
		SourceAssetID:   target.ID,
		SourceAssetName: target.Name,
	})

	direction := "扣款"
	if kind == models.KindIncome {
		direction = "存入"
	}

	result.Logs = append(result.Logs, models.SystemLog{
		ID:          e.newID(),
		Date:        now,
		Title:       fmt.Sprintf("執行：%s", rule.Name),
		Description: fmt.Sprintf("%s %s $%.0f", direction, target.Name, amountBase),
		Status:      models.StatusSuccess,
		Amount:      fmt.Sprintf("$%.0f", amountBase),
	})
}

func (e *Engine) runDCA(rule models.Automation, result *Result, rates currency.RateTable, now time.Time) {
	sourceIdx := findHolding(result.Holdings, rule.SourceAssetID)
	investIdx := findHolding(result.Holdings, rule.InvestAssetID)
	if sourceIdx < 0 || investIdx < 0 {
		result.Logs = append(result.Logs, models.SystemLog{
			ID:          e.newID(),
			Date:        now,
			Title:       fmt.Sprintf("失敗：%s", rule.Name),
			Description: "找不到來源銀行或目標股票",
			Status:      models.StatusFailed,
		})
		return
	}

	source := &result.Holdings[sourceIdx]
	invest := &result.Holdings[investIdx]

	budget := rule.Amount
	unitPriceBase, err := rates.ToBase(invest.Price, currency.Code(invest.Currency))
	if err != nil {
		e.logger.Error("dca rule conversion failed", "rule", rule.Name, "error", err)
		result.Logs = append(result.Logs, models.SystemLog{
			ID:          e.newID(),
			Date:        now,
			Title:       fmt.Sprintf("失敗：%s", rule.Name),
			Description: fmt.Sprintf("匯率轉換失敗 (%s): %v", invest.Currency, err),
			Status:      models.StatusFailed,
		})
		return
	}

	// Whole units only, truncated toward zero so the budget is never
	// overspent. Leftover budget is simply unspent this pass.
	units := 0
	if unitPriceBase > 0 {
		units = int(math.Floor(budget / unitPriceBase))
	}
	if units <= 0 {
		result.Logs = append(result.Logs, models.SystemLog{
			ID:          e.newID(),
			Date:        now,
			Title:       fmt.Sprintf("跳過：%s", rule.Name),
			Description: fmt.Sprintf("預算不足買入 1 股 (股價: %.0f, 預算: %.0f)", unitPriceBase, budget),
			Status:      models.StatusSkipped,
		})
		return
	}

	costBase := float64(units) * unitPriceBase
	if err := ledger.Apply(source, models.KindExpense, costBase, rates); err != nil {
		e.logger.Error("dca rule conversion failed", "rule", rule.Name, "error", err)
		result.Logs = append(result.Logs, models.SystemLog{
			ID:          e.newID(),
			Date:        now,
			Title:       fmt.Sprintf("失敗：%s", rule.Name),
			Description: fmt.Sprintf("匯率轉換失敗 (%s): %v", source.Currency, err),
			Status:      models.StatusFailed,
		})
		return
	}

	// Units are dimensionless quantity, not currency.
	invest.Quantity += float64(units)

	result.Transactions = append(result.Transactions, models.Transaction{
		ID:              e.newID(),
		Kind:            models.KindExpense,
		Date:            now,
		Amount:          costBase,
		Category:        "投資",
		Note:            fmt.Sprintf("[DCA] %s - 買入 %d 股", rule.Name, units),
		SourceAssetID:   source.ID,
		SourceAssetName: source.Name,
	})

	result.Logs = append(result.Logs, models.SystemLog{
		ID:    e.newID(),
		Date:  now,
		Title: fmt.Sprintf("DCA 執行：%s", rule.Name),
		Description: fmt.Sprintf("從 %s 扣款 $%.0f 買入 %d 股 %s。剩餘預算 $%.0f 未扣款。",
			source.Name, costBase, units, invest.Name, budget-costBase),
		Status: models.StatusSuccess,
		Amount: fmt.Sprintf("-$%.0f", costBase),
	})
}

func findHolding(holdings []models.Holding, id string) int {
	if id == "" {
		return -1
	}
	for i := range holdings {
		if holdings[i].ID == id {
			return i
		}
	}
	return -1
}
