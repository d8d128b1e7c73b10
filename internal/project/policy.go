package project

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"NGOConnect/internal/auth"
	"NGOConnect/internal/policy"
)

// OwnerDecision gates operations reserved for the project's creating NGO.
// A missing project and a project owned by someone else look identical to
// the caller.
func OwnerDecision(p *Project, userID primitive.ObjectID) policy.Decision {
	if p == nil {
		return policy.NotFound
	}
	if p.CreatedBy == userID {
		return policy.Allowed
	}
	return policy.NotFound
}

// AssigneeDecision gates operations reserved for assigned frontliners.
func AssigneeDecision(p *Project, userID primitive.ObjectID) policy.Decision {
	if p == nil {
		return policy.NotFound
	}
	if p.IsAssigned(userID) {
		return policy.Allowed
	}
	return policy.NotFound
}

// AccessDecision is the read gate: admins see everything, owners and
// assignees see their own projects, everyone else gets not-found.
func AccessDecision(p *Project, userID primitive.ObjectID, role string) policy.Decision {
	if p == nil {
		return policy.NotFound
	}
	if role == auth.RoleAdmin {
		return policy.Allowed
	}
	if p.CreatedBy == userID || p.IsAssigned(userID) {
		return policy.Allowed
	}
	return policy.NotFound
}
