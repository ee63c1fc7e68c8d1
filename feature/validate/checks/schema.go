package checks

import (
	"fmt"
	"reflect"
	"sort"

	"sales-reconciler/core/domain"
)

// expectedFields is the declared field contract per entity type: Go field
// name to type. The typed record shapes must keep matching it; drift means
// someone changed a struct without updating the downstream column contract.
var expectedFields = map[domain.EntityType]map[string]string{
	domain.EntityCustomer: {
		"CustomerID":   "int64",
		"Name":         "string",
		"Email":        "string",
		"Phone":        "string",
		"Address":      "string",
		"City":         "string",
		"State":        "string",
		"ZipCode":      "string",
		"Country":      "string",
		"RegisteredAt": "time.Time",
	},
	domain.EntityProduct: {
		"ProductID":     "int64",
		"Name":          "string",
		"Category":      "string",
		"Price":         "decimal.Decimal",
		"Cost":          "decimal.NullDecimal",
		"Supplier":      "string",
		"StockQuantity": "int64",
	},
	domain.EntitySale: {
		"SaleID":        "int64",
		"CustomerID":    "int64",
		"ProductID":     "int64",
		"SaleDate":      "time.Time",
		"Quantity":      "int64",
		"UnitPrice":     "decimal.Decimal",
		"TotalAmount":   "decimal.Decimal",
		"PaymentMethod": "string",
		"Status":        "domain.SaleStatus",
	},
}

// Schema verifies that a record type still exposes the declared field set
// with matching types. It returns an error (not an issue) when the entity
// has no declared contract, because the check cannot run at all then.
func Schema(entity domain.EntityType, sample any) ([]domain.Issue, error) {
	expected, ok := expectedFields[entity]
	if !ok {
		return nil, fmt.Errorf("no declared field contract for entity %s", entity)
	}

	t := reflect.TypeOf(sample)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema check needs a struct sample, got %s", t.Kind())
	}

	actual := make(map[string]string, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous {
			continue
		}
		actual[f.Name] = f.Type.String()
	}

	var problems []string
	for name, typ := range expected {
		got, ok := actual[name]
		if !ok {
			problems = append(problems, fmt.Sprintf("missing field %s", name))
			continue
		}
		if got != typ {
			problems = append(problems, fmt.Sprintf("%s: expected %s, got %s", name, typ, got))
		}
	}
	for name := range actual {
		if _, ok := expected[name]; !ok {
			problems = append(problems, fmt.Sprintf("undeclared field %s", name))
		}
	}
	if len(problems) == 0 {
		return nil, nil
	}
	sort.Strings(problems)

	return []domain.Issue{{
		Kind:     domain.IssueSchema,
		Entity:   entity,
		Severity: domain.SeverityHigh,
		Detail:   fmt.Sprintf("record shape diverged from contract: %v", problems),
	}}, nil
}
