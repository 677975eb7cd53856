package orders

import (
	"testing"

	"farm2home/models"
)

func TestOrderStatusTransitions(t *testing.T) {
	allowed := [][2]string{
		{models.OrderPending, models.OrderProcessing},
		{models.OrderProcessing, models.OrderShipped},
		{models.OrderShipped, models.OrderDelivered},
		{models.OrderPending, models.OrderCanceled},
		{models.OrderProcessing, models.OrderCanceled},
		{models.OrderShipped, models.OrderCanceled},
	}
	for _, tr := range allowed {
		if !isValidTransition(tr[0], tr[1]) {
			t.Errorf("expected %s -> %s to be allowed", tr[0], tr[1])
		}
	}

	denied := [][2]string{
		{models.OrderPending, models.OrderDelivered},
		{models.OrderDelivered, models.OrderPending},
		{models.OrderCanceled, models.OrderProcessing},
		{models.OrderShipped, models.OrderPending},
		{models.OrderPending, "bogus"},
	}
	for _, tr := range denied {
		if isValidTransition(tr[0], tr[1]) {
			t.Errorf("expected %s -> %s to be rejected", tr[0], tr[1])
		}
	}
}
