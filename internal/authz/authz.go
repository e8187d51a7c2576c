// Package authz holds the role and ownership predicates. Every check is a pure
// function of the actor and the target.
package authz

import "equiptrack/internal/domain"

func CanManageRequests(actor domain.Actor) bool {
	return actor.SignedIn() && actor.IsAdmin()
}

func CanManageEquipment(actor domain.Actor) bool {
	return actor.SignedIn() && actor.IsAdmin()
}

func CanManageUsers(actor domain.Actor) bool {
	return actor.SignedIn() && actor.IsAdmin()
}

func CanViewRequest(actor domain.Actor, req domain.EquipmentRequest) bool {
	return isAdminOrOwner(actor, req.UserID)
}

func CanReturnRequest(actor domain.Actor, req domain.EquipmentRequest) bool {
	return isAdminOrOwner(actor, req.UserID)
}

// CanViewUserRequests gates listing the requests of userID.
func CanViewUserRequests(actor domain.Actor, userID string) bool {
	return isAdminOrOwner(actor, userID)
}

// CanTransition reports whether actor may move req to the given status. It does
// not check that the transition itself is reachable.
func CanTransition(actor domain.Actor, req domain.EquipmentRequest, to domain.RequestStatus) bool {
	switch to {
	case domain.RequestApproved, domain.RequestRejected:
		return CanManageRequests(actor)
	case domain.RequestReturned:
		return CanReturnRequest(actor, req)
	}
	return false
}

// VisibleRequests filters requests down to those the actor may see.
func VisibleRequests(actor domain.Actor, requests []domain.EquipmentRequest) []domain.EquipmentRequest {
	if actor.IsAdmin() && actor.SignedIn() {
		return requests
	}
	out := make([]domain.EquipmentRequest, 0)
	for _, r := range requests {
		if CanViewRequest(actor, r) {
			out = append(out, r)
		}
	}
	return out
}

func isAdminOrOwner(actor domain.Actor, ownerID string) bool {
	if !actor.SignedIn() {
		return false
	}
	return actor.IsAdmin() || (ownerID != "" && actor.ID == ownerID)
}
