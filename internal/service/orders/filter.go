package orders

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/0101Programmer/orderManagementSystem/internal/domain"
)

const (
	FilterKeyStatus      = "status"
	FilterKeyTableNumber = "table_number"
)

// ParseListFilter превращает query-параметры списка заказов в фильтр.
// Допускается не более одного ключа: status или table_number.
func ParseListFilter(values url.Values) (domain.OrderFilter, error) {
	var unknown []string
	for key := range values {
		if key != FilterKeyStatus && key != FilterKeyTableNumber {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return domain.OrderFilter{}, domain.NewValidationError("",
			"unknown query parameters: %s (allowed: status, table_number)", strings.Join(unknown, ", "))
	}

	_, hasStatus := values[FilterKeyStatus]
	_, hasTable := values[FilterKeyTableNumber]
	if hasStatus && hasTable {
		return domain.OrderFilter{}, domain.NewValidationError("", "use only one filter: status or table_number")
	}

	var filter domain.OrderFilter
	switch {
	case hasStatus:
		raw, err := singleValue(values, FilterKeyStatus)
		if err != nil {
			return domain.OrderFilter{}, err
		}
		status, err := domain.ParseOrderStatus(raw)
		if err != nil {
			return domain.OrderFilter{}, err
		}
		filter.Status = status
	case hasTable:
		raw, err := singleValue(values, FilterKeyTableNumber)
		if err != nil {
			return domain.OrderFilter{}, err
		}
		table, err := ParseTableNumber(raw)
		if err != nil {
			return domain.OrderFilter{}, err
		}
		filter.TableNumber = table
	}

	return filter, nil
}

// ParseTableNumber разбирает номер стола из строки (query или форма).
func ParseTableNumber(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, domain.NewValidationError(FilterKeyTableNumber, "table_number is required")
	}
	table, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(FilterKeyTableNumber, "table_number must be an integer (got %q)", raw)
	}
	if table < 1 {
		return 0, domain.NewValidationError(FilterKeyTableNumber, "table_number must be greater than or equal to 1")
	}
	return table, nil
}

func singleValue(values url.Values, key string) (string, error) {
	vals := values[key]
	if len(vals) != 1 {
		return "", domain.NewValidationError(key, "%s must be specified once", key)
	}
	value := strings.TrimSpace(vals[0])
	if value == "" {
		return "", domain.NewValidationError(key, "%s must not be empty", key)
	}
	return value, nil
}

func validateFilter(filter domain.OrderFilter) error {
	if filter.Status != "" && filter.TableNumber != 0 {
		return domain.NewValidationError("", "use only one filter: status or table_number")
	}
	if filter.Status != "" && !filter.Status.Valid() {
		_, err := domain.ParseOrderStatus(string(filter.Status))
		return err
	}
	if filter.TableNumber < 0 {
		return domain.NewValidationError(FilterKeyTableNumber, "table_number must be greater than or equal to 1")
	}
	return nil
}

func describeFilter(filter domain.OrderFilter) string {
	if filter.Status != "" {
		return fmt.Sprintf("status=%s", filter.Status)
	}
	return fmt.Sprintf("table_number=%d", filter.TableNumber)
}
