package accounting

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/SscSPs/finreport_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

type hierarchyLeaf struct {
	department, accountType, accountName string
	value                                decimal.Decimal
}

// BuildCostHierarchy turns cost rows into an account -> account type -> department tree
// rooted at domain.HierarchyRoot. Node values are raw amounts; rows with a negative
// amount are left out. Nodes are emitted level by level from the leaves up, each level
// ordered by its grouping keys, with the root last.
func BuildCostHierarchy(rows []domain.AdjustedRow, strategy domain.TagStrategy) []domain.HierarchyNode {
	leaves := make(map[[3]string]*hierarchyLeaf)
	total := decimal.Zero
	for _, row := range CostRows(rows) {
		if row.Amount.IsNegative() {
			continue
		}
		tag := DepartmentTag(row.DepartmentName, strategy)
		key := [3]string{
			row.DepartmentName,
			capitalize(string(row.AccountType)) + "-" + tag,
			row.AccountName + "-" + tag,
		}
		leaf, ok := leaves[key]
		if !ok {
			leaf = &hierarchyLeaf{department: key[0], accountType: key[1], accountName: key[2]}
			leaves[key] = leaf
		}
		leaf.value = leaf.value.Add(row.Amount)
		total = total.Add(row.Amount)
	}

	nodes := make([]domain.HierarchyNode, 0, len(leaves)*2+1)

	// account name level, grouped by (account name, account type, department)
	names := make([]*hierarchyLeaf, 0, len(leaves))
	for _, l := range leaves {
		names = append(names, l)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := names[i], names[j]
		if a.accountName != b.accountName {
			return a.accountName < b.accountName
		}
		if a.accountType != b.accountType {
			return a.accountType < b.accountType
		}
		return a.department < b.department
	})
	for _, l := range names {
		nodes = append(nodes, newNode(l.accountName, l.accountType, l.value))
	}

	// account type level, grouped by (account type, department)
	types := make(map[[2]string]decimal.Decimal)
	for _, l := range names {
		k := [2]string{l.accountType, l.department}
		types[k] = types[k].Add(l.value)
	}
	typeKeys := make([][2]string, 0, len(types))
	for k := range types {
		typeKeys = append(typeKeys, k)
	}
	sort.Slice(typeKeys, func(i, j int) bool {
		if typeKeys[i][0] != typeKeys[j][0] {
			return typeKeys[i][0] < typeKeys[j][0]
		}
		return typeKeys[i][1] < typeKeys[j][1]
	})
	for _, k := range typeKeys {
		nodes = append(nodes, newNode(k[0], k[1], types[k]))
	}

	// department level
	depts := make(map[string]decimal.Decimal)
	for _, k := range typeKeys {
		depts[k[1]] = depts[k[1]].Add(types[k])
	}
	deptKeys := make([]string, 0, len(depts))
	for k := range depts {
		deptKeys = append(deptKeys, k)
	}
	sort.Strings(deptKeys)
	for _, k := range deptKeys {
		nodes = append(nodes, newNode(k, domain.HierarchyRoot, depts[k]))
	}

	return append(nodes, newNode(domain.HierarchyRoot, "", total))
}

func newNode(id, parent string, value decimal.Decimal) domain.HierarchyNode {
	return domain.HierarchyNode{ID: id, Parent: parent, Value: value, Color: value}
}

// DepartmentTag derives the label suffix used to keep same-named accounts of different
// departments apart.
func DepartmentTag(department string, strategy domain.TagStrategy) string {
	if strategy == domain.TagLastInitial {
		fields := strings.Fields(department)
		if len(fields) == 0 {
			return ""
		}
		r, _ := utf8.DecodeRuneInString(fields[len(fields)-1])
		return string(unicode.ToLower(r))
	}
	if key, ok := domain.DepartmentKey(department); ok {
		return key
	}
	return strings.Join(strings.Fields(strings.ToLower(department)), "_")
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
