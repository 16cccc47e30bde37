package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
)

const (
	itemKeyPosition = "position"
	itemKeyPrice    = "price"
)

// DecodeItems разбирает JSON-список позиций и проверяет его структуру.
// Проверка идёт по сырому JSON, чтобы отличить строку от числа и лишние ключи.
func DecodeItems(raw []byte) ([]Item, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, NewValidationError("items", "items field is required")
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, NewValidationError("items", "items must be valid JSON: %v", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, NewValidationError("items", "items must be a single JSON value")
	}

	return itemsFromValue(value)
}

// itemsFromValue проверяет уже декодированное значение (с json.Number для чисел).
func itemsFromValue(value any) ([]Item, error) {
	list, ok := value.([]any)
	if !ok {
		return nil, NewValidationError("items", "items must be a list")
	}
	if len(list) == 0 {
		return nil, NewValidationError("items", "items must not be empty")
	}

	items := make([]Item, 0, len(list))
	for idx, raw := range list {
		obj, ok := raw.(map[string]any)
		if !ok {
			return nil, NewValidationError("items", "items[%d] must be an object", idx)
		}
		if len(obj) != 2 {
			return nil, NewValidationError("items", `items[%d] must contain exactly two keys: "position" and "price"`, idx)
		}

		position, ok := obj[itemKeyPosition].(string)
		if !ok {
			return nil, NewValidationError("items", `items[%d] must contain key "position" with a string value`, idx)
		}
		price, ok := numericValue(obj[itemKeyPrice])
		if !ok {
			return nil, NewValidationError("items", `items[%d] must contain key "price" with a numeric value`, idx)
		}
		if price < 0 {
			return nil, NewValidationError("items", "items[%d].price must be non-negative", idx)
		}
		if !ValidAmount(price) {
			return nil, NewValidationError("items", "items[%d].price must not exceed %.2f", idx, MaxAmount)
		}

		items = append(items, Item{Position: position, Price: price})
	}

	return items, nil
}

// EncodeItems сериализует позиции в JSON-текст в том же формате, что принимает DecodeItems.
func EncodeItems(items []Item) ([]byte, error) {
	wire := make([]map[string]any, 0, len(items))
	for _, item := range items {
		wire = append(wire, map[string]any{
			itemKeyPosition: item.Position,
			itemKeyPrice:    item.Price,
		})
	}
	return json.Marshal(wire)
}

func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	case float64:
		return n, !math.IsInf(n, 0) && !math.IsNaN(n)
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
