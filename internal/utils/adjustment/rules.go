package adjustment

import (
	"fmt"

	"github.com/SscSPs/finreport_backend/internal/apperrors"
	"github.com/SscSPs/finreport_backend/internal/core/domain"
	"github.com/google/cel-go/cel"
	"github.com/shopspring/decimal"
)

// Action describes how a matching row is rewritten. Empty fields are left untouched.
// Actions only assign constants (or convert a currency tag) so that applying a rule
// to its own output changes nothing.
type Action struct {
	Scale       *decimal.Decimal
	Currency    string
	AccountID   string
	AccountName string
	AccountType domain.AccountType
	Department  string
}

// Rule is a named bookkeeping correction. Condition is a CEL expression over the row
// fields account_id, account_name, account_type, department_name, location_name,
// class_name, country and currency that must evaluate to a bool. department_name is
// the booking department, so rows moved by the office split still match as booked.
type Rule struct {
	Name      string
	Condition string
	Action    Action
}

type compiledRule struct {
	Rule
	program cel.Program
}

func newRuleEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("account_id", cel.StringType),
		cel.Variable("account_name", cel.StringType),
		cel.Variable("account_type", cel.StringType),
		cel.Variable("department_name", cel.StringType),
		cel.Variable("location_name", cel.StringType),
		cel.Variable("class_name", cel.StringType),
		cel.Variable("country", cel.StringType),
		cel.Variable("currency", cel.StringType),
	)
}

func compileRules(rules []Rule) ([]compiledRule, error) {
	env, err := newRuleEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create rule environment: %w", err)
	}
	out := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		ast, iss := env.Compile(r.Condition)
		if iss != nil && iss.Err() != nil {
			return nil, fmt.Errorf("%w: rule %s: %v", apperrors.ErrValidation, r.Name, iss.Err())
		}
		if !ast.OutputType().IsExactType(cel.BoolType) {
			return nil, fmt.Errorf("%w: rule %s must evaluate to bool, got %s", apperrors.ErrValidation, r.Name, ast.OutputType())
		}
		prg, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", r.Name, err)
		}
		out = append(out, compiledRule{Rule: r, program: prg})
	}
	return out, nil
}

func ruleInput(row domain.TransactionRow) map[string]any {
	return map[string]any{
		"account_id":      row.AccountID,
		"account_name":    row.AccountName,
		"account_type":    string(row.AccountType),
		"department_name": row.BookingDepartment(),
		"location_name":   row.LocationName,
		"class_name":      row.ClassName,
		"country":         row.Country,
		"currency":        row.Currency,
	}
}

func (r compiledRule) matches(row domain.TransactionRow) (bool, error) {
	val, _, err := r.program.Eval(ruleInput(row))
	if err != nil {
		return false, fmt.Errorf("rule %s: %w", r.Name, err)
	}
	b, ok := val.Value().(bool)
	if !ok {
		return false, fmt.Errorf("rule %s: non-bool result %v", r.Name, val)
	}
	return b, nil
}

func (a Action) apply(row domain.TransactionRow) domain.TransactionRow {
	if a.Scale != nil {
		row.Amount = row.Amount.Mul(*a.Scale)
	}
	if a.Currency != "" {
		row.Currency = a.Currency
	}
	if a.AccountID != "" {
		row.AccountID = a.AccountID
	}
	if a.AccountName != "" {
		row.AccountName = a.AccountName
	}
	if a.AccountType != "" {
		row.AccountType = a.AccountType
	}
	if a.Department != "" {
		row.DepartmentName = a.Department
	}
	return row
}

var nokToEur = decimal.RequireFromString("0.1")

// DefaultRules is the standing table of bookkeeping corrections applied when custom
// adjustment is requested. Order matters: a row passes through every rule in turn.
var DefaultRules = []Rule{
	{
		Name:      "nok_to_eur",
		Condition: `currency == "NOK"`,
		Action:    Action{Scale: &nokToEur, Currency: "EUR"},
	},
	{
		Name:      "ee_finance",
		Condition: `country == "Estonia" && account_id == "4385"`,
		Action:    Action{AccountName: "Finance", AccountType: domain.AccountTypeOtherCost},
	},
	{
		Name:      "ee_admin",
		Condition: `country == "Estonia" && account_id == "4395"`,
		Action:    Action{AccountName: "Admin", AccountType: domain.AccountTypeOtherCost},
	},
	{
		Name:      "ee_marketing",
		Condition: `country == "Estonia" && account_id == "4300"`,
		Action:    Action{AccountName: "Marketing", AccountType: domain.AccountTypeOtherCost},
	},
	{
		Name:      "no_finance",
		Condition: `country == "Norway" && account_id in ["6700", "6705"]`,
		Action:    Action{AccountName: "Finance", AccountType: domain.AccountTypeOtherCost},
	},
	{
		Name:      "no_admin",
		Condition: `country == "Norway" && account_id in ["6720", "6790"]`,
		Action:    Action{AccountName: "Admin", AccountType: domain.AccountTypeOtherCost},
	},
	{
		Name:      "no_marketing",
		Condition: `country == "Norway" && account_id == "7320"`,
		Action:    Action{AccountName: "Marketing", AccountType: domain.AccountTypeOtherCost},
	},
	{
		Name:      "outsourced_services_to_staff",
		Condition: `department_name in ["Food Kiosk Sushibar", "Food Plant"] && account_name.matches("(?i)other external services")`,
		Action:    Action{AccountType: domain.AccountTypeStaff},
	},
	{
		Name:      "allowances_to_salary",
		Condition: `department_name in ["Restaurant", "Food Plant"] && account_name.matches("(?i)(mileage|daily) allowance")`,
		Action:    Action{AccountName: "Salaries", AccountType: domain.AccountTypeStaff},
	},
	{
		Name:      "plant_s_card_to_fuel",
		Condition: `department_name == "Food Plant" && account_name.matches("(?i)s-card")`,
		Action:    Action{AccountName: "Fuel", AccountType: domain.AccountTypeOtherCost},
	},
	{
		Name:      "plant_hot_meal_to_sushibar",
		Condition: `department_name == "Food Plant" && account_type == "material" && account_name.matches("(?i)hot meal")`,
		Action:    Action{Department: "Food Kiosk Sushibar"},
	},
}
