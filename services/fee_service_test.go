package services

import (
	"testing"

	"classtrack_go/models"
)

func TestPaymentStatus(t *testing.T) {
	tests := []struct {
		name       string
		amountDue  float64
		amountPaid float64
		want       string
	}{
		{name: "nothing paid", amountDue: 100, amountPaid: 0, want: models.FeeStatusDue},
		{name: "partial payment", amountDue: 100, amountPaid: 50, want: models.FeeStatusPartiallyPaid},
		{name: "exact payment", amountDue: 100, amountPaid: 100, want: models.FeeStatusPaid},
		{name: "overpayment stays paid", amountDue: 100, amountPaid: 150, want: models.FeeStatusPaid},
		{name: "tiny partial", amountDue: 100, amountPaid: 0.01, want: models.FeeStatusPartiallyPaid},
		{name: "negative treated as unpaid", amountDue: 100, amountPaid: -5, want: models.FeeStatusDue},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := PaymentStatus(tc.amountDue, tc.amountPaid); got != tc.want {
				t.Fatalf("PaymentStatus(%v, %v) = %q, want %q", tc.amountDue, tc.amountPaid, got, tc.want)
			}
		})
	}
}

func TestPaymentStatusRecomputeIsIdempotent(t *testing.T) {
	for _, paid := range []float64{0, 30, 100} {
		first := PaymentStatus(100, paid)
		second := PaymentStatus(100, paid)
		if first != second {
			t.Fatalf("recompute with paid=%v changed status: %q then %q", paid, first, second)
		}
	}
}
