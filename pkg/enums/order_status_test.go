package enums

import "testing"

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusProcessing, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusProcessing, OrderStatusCancelled, true},
		{OrderStatusProcessing, OrderStatusDelivered, false},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusPending, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
			t.Fatalf("%s -> %s: expected %v got %v", tt.from, tt.to, tt.allowed, got)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("shipped")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if status != OrderStatusShipped {
		t.Fatalf("expected shipped, got %s", status)
	}

	if _, err := ParseOrderStatus("returned"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestParsePaymentMethod(t *testing.T) {
	method, err := ParsePaymentMethod("cash_on_delivery")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if method != PaymentMethodCashOnDelivery {
		t.Fatalf("expected cash_on_delivery, got %s", method)
	}

	if _, err := ParsePaymentMethod("crypto"); err == nil {
		t.Fatal("expected error for unknown method")
	}
}
