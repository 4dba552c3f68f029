// Package adjustment rewrites raw ledger rows before any rate is applied: custom
// bookkeeping corrections and the head office cost split.
package adjustment

import (
	"fmt"
	"sort"

	"github.com/SscSPs/finreport_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Adjuster applies the custom rule table and the office cost split.
// It is immutable after construction and safe for concurrent use.
type Adjuster struct {
	rules []compiledRule
}

// NewAdjuster compiles the rule table; pass DefaultRules for the standing corrections.
func NewAdjuster(rules []Rule) (*Adjuster, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	return &Adjuster{rules: compiled}, nil
}

// Apply runs the enabled transforms, custom adjustment first. The input is not modified.
func (a *Adjuster) Apply(rows []domain.TransactionRow, custom, splitOffice bool) ([]domain.TransactionRow, error) {
	out := rows
	if custom {
		var err error
		if out, err = a.CustomAdjust(out); err != nil {
			return nil, err
		}
	}
	if splitOffice {
		out = SplitOfficeCost(out)
	}
	return out, nil
}

// CustomAdjust passes every row through each rule in order.
func (a *Adjuster) CustomAdjust(rows []domain.TransactionRow) ([]domain.TransactionRow, error) {
	out := make([]domain.TransactionRow, len(rows))
	for i, row := range rows {
		for _, r := range a.rules {
			ok, err := r.matches(row)
			if err != nil {
				return nil, fmt.Errorf("custom adjustment: %w", err)
			}
			if ok {
				row = r.Action.apply(row)
			}
		}
		out[i] = row
	}
	return out, nil
}

// SplitOfficeCost moves every head office cost row onto the departments that had
// positive sales in the same period, in proportion to those sales. The last receiving
// department (by name) takes the rounding remainder so the parts sum to the original
// amount. Periods without operating sales keep their head office rows.
// The input must not be pre-filtered by department.
func SplitOfficeCost(rows []domain.TransactionRow) []domain.TransactionRow {
	sales := make(map[string]map[string]decimal.Decimal)
	for _, row := range rows {
		if row.DepartmentName == domain.DepartmentHeadOffice || !row.AccountType.IsIncome() {
			continue
		}
		if sales[row.Period] == nil {
			sales[row.Period] = make(map[string]decimal.Decimal)
		}
		sales[row.Period][row.DepartmentName] = sales[row.Period][row.DepartmentName].Add(row.Amount)
	}

	type share struct {
		department string
		sales      decimal.Decimal
	}
	shares := make(map[string][]share, len(sales))
	totals := make(map[string]decimal.Decimal, len(sales))
	for period, byDept := range sales {
		var list []share
		for dept, amount := range byDept {
			if amount.IsPositive() {
				list = append(list, share{dept, amount})
				totals[period] = totals[period].Add(amount)
			}
		}
		sort.Slice(list, func(i, j int) bool { return list[i].department < list[j].department })
		shares[period] = list
	}

	out := make([]domain.TransactionRow, 0, len(rows))
	for _, row := range rows {
		if row.DepartmentName != domain.DepartmentHeadOffice || !row.AccountType.IsCost() || len(shares[row.Period]) == 0 {
			out = append(out, row)
			continue
		}
		list, total := shares[row.Period], totals[row.Period]
		allocated := decimal.Zero
		for i, s := range list {
			part := row
			part.DepartmentName = s.department
			part.AllocatedFrom = domain.DepartmentHeadOffice
			if i == len(list)-1 {
				part.Amount = row.Amount.Sub(allocated)
			} else {
				part.Amount = row.Amount.Mul(s.sales).Div(total)
				allocated = allocated.Add(part.Amount)
			}
			out = append(out, part)
		}
	}
	return out
}
