package accounting_test

import (
	"testing"

	"github.com/SscSPs/finreport_backend/internal/core/domain"
	"github.com/SscSPs/finreport_backend/internal/utils/accounting"
	"github.com/stretchr/testify/assert"
)

func TestCumulativeCostSummary(t *testing.T) {
	rows := mustApply(t,
		txn("2024-Q1", domain.DepartmentSushibar, domain.AccountTypeSales, "Sales", "5000", "1"),
		txn("2024-Q1", domain.DepartmentSushibar, domain.AccountTypeMaterial, "Fish", "1000", "1"),
		txn("2024-Q2", domain.DepartmentSushibar, domain.AccountTypeStaff, "Wages", "500", "1"),
		txn("2024-Q1", domain.DepartmentHeadOffice, domain.AccountTypeOtherCost, "Rent", "200", "1"),
		txn("2024-Q1", "Unknown Dept", domain.AccountTypeStaff, "Wages", "70", "1"),
		txn("2024-Q1", domain.DepartmentPlant, domain.AccountType("suspense"), "Suspense", "999", "1"),
	)

	s := accounting.CumulativeCostSummary(rows, "")
	m := s.AsMap()

	assert.Equal(t, []string{domain.DepartmentSushibar, domain.DepartmentPlant, domain.DepartmentHeadOffice, "Unknown Dept"}, s.Departments)
	assert.True(t, m["total_cost"].Equal(dec("1770")))
	assert.True(t, m["total_staff_cost"].Equal(dec("570")))
	assert.True(t, m["total_material_cost"].Equal(dec("1000")))
	assert.True(t, m["total_other_cost"].Equal(dec("200")))
	assert.True(t, m["total_sushibar_cost"].Equal(dec("1500")))
	assert.True(t, m["total_sushibar_staff"].Equal(dec("500")))
	assert.True(t, m["total_office_other"].Equal(dec("200")))
	assert.True(t, m["total_plant_cost"].IsZero(), "unknown account types never count as cost")

	// unknown department contributes to grand totals only
	var deptSum = dec("0")
	for _, d := range domain.KnownDepartments {
		deptSum = deptSum.Add(m["total_"+d.Key+"_cost"])
	}
	assert.True(t, m["total_cost"].Sub(deptSum).Equal(dec("70")))
}

func TestCumulativeCostSummary_DepartmentScope(t *testing.T) {
	rows := mustApply(t,
		txn("2024-Q1", domain.DepartmentRestaurant, domain.AccountTypeSales, "Sales", "900", "1"),
		txn("2024-Q1", domain.DepartmentRestaurant, domain.AccountTypeStaff, "Wages", "400", "1"),
		txn("2024-Q1", domain.DepartmentPlant, domain.AccountTypeStaff, "Wages", "300", "1"),
	)

	s := accounting.CumulativeCostSummary(rows, domain.DepartmentRestaurant)
	m := s.AsMap()
	assert.True(t, m["total_cost"].Equal(dec("400")), "sales stay excluded when scoped")
	assert.True(t, m["total_plant_cost"].IsZero())
	assert.Len(t, s.Departments, 2)
}
