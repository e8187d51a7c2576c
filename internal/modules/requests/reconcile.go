package requests

import (
	"fmt"
	"strings"

	"equiptrack/internal/domain"
)

type transition struct {
	from, to         domain.RequestStatus
	touchesEquipment bool
}

// transitions is the complete state table; any pair not listed is invalid.
var transitions = []transition{
	{from: domain.RequestPending, to: domain.RequestApproved, touchesEquipment: true},
	{from: domain.RequestPending, to: domain.RequestRejected},
	{from: domain.RequestApproved, to: domain.RequestReturned, touchesEquipment: true},
}

func lookupTransition(from, to domain.RequestStatus) (transition, bool) {
	for _, t := range transitions {
		if t.from == from && t.to == to {
			return t, true
		}
	}
	return transition{}, false
}

// Allowed reports whether from -> to is in the state table.
func Allowed(from, to domain.RequestStatus) bool {
	_, ok := lookupTransition(from, to)
	return ok
}

// Reconcile returns the equipment state after req moves to status to.
// Approval takes the request quantity out of stock and return puts it back.
// Status is derived from the resulting quantity, except that maintenance and
// missing are left untouched.
func Reconcile(eq domain.Equipment, req domain.EquipmentRequest, to domain.RequestStatus) domain.Equipment {
	switch to {
	case domain.RequestApproved:
		eq.Quantity -= req.Quantity
		if !eq.Status.Manual() {
			if eq.Quantity <= 0 {
				eq.Status = domain.EquipmentInUse
			} else {
				eq.Status = domain.EquipmentAvailable
			}
		}
	case domain.RequestReturned:
		eq.Quantity += req.Quantity
		if !eq.Status.Manual() {
			eq.Status = domain.EquipmentAvailable
		}
	}
	return eq
}

type StockPolicy int

const (
	// StockGuard rejects approvals larger than the current stock.
	StockGuard StockPolicy = iota
	// StockAllowNegative lets approvals drive quantity below zero.
	StockAllowNegative
)

func ParseStockPolicy(s string) (StockPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "guard":
		return StockGuard, nil
	case "allow-negative":
		return StockAllowNegative, nil
	}
	return StockGuard, fmt.Errorf("unknown stock policy %q", s)
}

func (p StockPolicy) String() string {
	if p == StockAllowNegative {
		return "allow-negative"
	}
	return "guard"
}
