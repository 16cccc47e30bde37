package domain_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/0101Programmer/orderManagementSystem/internal/domain"
)

// helper для создания базового заказа с двумя позициями.
func makeOrder() domain.Order {
	now := time.Now().UTC()
	order := domain.Order{
		ID:          "order-1",
		TableNumber: 3,
		Status:      domain.OrderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	order.SetItems([]domain.Item{
		{Position: "Картофель фри", Price: 100},
		{Position: "Шашлык", Price: 200.5},
	})
	return order
}

func TestOrderValidateInvariants_Ok(t *testing.T) {
	order := makeOrder()
	if errs := order.ValidateInvariants(); len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}
	if order.TotalPrice != 300.5 {
		t.Fatalf("expected total 300.5, got %v", order.TotalPrice)
	}
}

func TestOrderValidateInvariants_Errors(t *testing.T) {
	cases := []struct {
		name string
		mut  func(o *domain.Order)
	}{
		{
			name: "table number zero",
			mut: func(o *domain.Order) {
				o.TableNumber = 0
			},
		},
		{
			name: "no items",
			mut: func(o *domain.Order) {
				o.SetItems(nil)
			},
		},
		{
			name: "negative price",
			mut: func(o *domain.Order) {
				o.SetItems([]domain.Item{{Position: "Суп", Price: -1}})
			},
		},
		{
			name: "unknown status",
			mut: func(o *domain.Order) {
				o.Status = "cooking"
			},
		},
		{
			name: "total mismatch",
			mut: func(o *domain.Order) {
				o.TotalPrice = 999
			},
		},
		{
			name: "infinite price",
			mut: func(o *domain.Order) {
				o.Items = []domain.Item{{Position: "Суп", Price: math.Inf(1)}}
				o.TotalPrice = math.Inf(1)
			},
		},
		{
			name: "price above max",
			mut: func(o *domain.Order) {
				o.SetItems([]domain.Item{{Position: "Суп", Price: 1e10}})
			},
		},
		{
			name: "total above max",
			mut: func(o *domain.Order) {
				o.SetItems([]domain.Item{{Position: "Суп", Price: 6e9}, {Position: "Чай", Price: 6e9}})
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := makeOrder()
			tc.mut(&order)

			if len(order.ValidateInvariants()) == 0 {
				t.Fatalf("expected validation errors for case %s", tc.name)
			}
		})
	}
}

func TestComputeTotal(t *testing.T) {
	cases := []struct {
		name  string
		items []domain.Item
		want  float64
	}{
		{name: "empty", items: nil, want: 0},
		{name: "integers", items: []domain.Item{{Price: 100}, {Price: 200}}, want: 300},
		{name: "float drift", items: []domain.Item{{Price: 0.1}, {Price: 0.2}}, want: 0.3},
		{name: "rounds half up", items: []domain.Item{{Price: 0.005}}, want: 0.01},
		{name: "tie away from zero", items: []domain.Item{{Price: 0.125}}, want: 0.13},
		{name: "many cents", items: []domain.Item{{Price: 199.99}, {Price: 454.99}, {Price: 0.02}}, want: 655},
		{name: "sub-cent sum", items: []domain.Item{{Price: 1.004}, {Price: 1.004}}, want: 2.01},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := domain.ComputeTotal(tc.items); got != tc.want {
				t.Fatalf("ComputeTotal() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDefaultItems_ReturnsFreshSlice(t *testing.T) {
	first := domain.DefaultItems()
	first[0].Price = 1

	second := domain.DefaultItems()
	if second[0].Price != 199.99 {
		t.Fatalf("default items must not share state, got price %v", second[0].Price)
	}
}

func TestSetItems_CopiesInput(t *testing.T) {
	items := []domain.Item{{Position: "Чай", Price: 50}}
	var order domain.Order
	order.SetItems(items)

	items[0].Price = 1000
	if order.Items[0].Price != 50 {
		t.Fatalf("order items must not alias caller slice")
	}
	if order.TotalPrice != 50 {
		t.Fatalf("expected total 50, got %v", order.TotalPrice)
	}
}

func TestParseOrderStatus(t *testing.T) {
	for _, status := range domain.OrderStatuses() {
		got, err := domain.ParseOrderStatus(string(status))
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", status, err)
		}
		if got != status {
			t.Fatalf("expected %s, got %s", status, got)
		}
	}

	for _, raw := range []string{"", "готово", "PAID", "canceled"} {
		if _, err := domain.ParseOrderStatus(raw); !domain.IsValidation(err) {
			t.Fatalf("expected validation error for %q, got %v", raw, err)
		}
	}
}

func TestOrderValidate(t *testing.T) {
	order := makeOrder()
	if err := order.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order.SetItems([]domain.Item{{Position: "Икра", Price: domain.MaxAmount}, {Position: "Хлеб", Price: 1}})
	err := order.Validate()
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "items" {
		t.Fatalf("expected error on items field, got %#v", err)
	}
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatal("validation error must match ErrValidation")
	}

	order = makeOrder()
	order.TableNumber = 0
	order.Status = "cooking"
	err = order.Validate()
	if !errors.As(err, &vErr) || vErr.Field != "table_number" {
		t.Fatalf("expected error on table_number field, got %#v", err)
	}
	if vErr.Message != domain.ErrTableNumberInvalid.Error()+"; "+domain.ErrStatusInvalid.Error() {
		t.Fatalf("unexpected message: %q", vErr.Message)
	}
}

func TestValidAmount(t *testing.T) {
	cases := []struct {
		value float64
		want  bool
	}{
		{value: 0, want: true},
		{value: 199.99, want: true},
		{value: domain.MaxAmount, want: true},
		{value: 1e10, want: false},
		{value: -0.01, want: false},
		{value: math.Inf(1), want: false},
		{value: math.NaN(), want: false},
	}
	for _, tc := range cases {
		if got := domain.ValidAmount(tc.value); got != tc.want {
			t.Fatalf("ValidAmount(%v) = %v, want %v", tc.value, got, tc.want)
		}
	}
}
