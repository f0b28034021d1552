package auth

import model "github.com/novaxiii/agency-backend/internal/models"

// Capability names an action gated by role.
type Capability string

const (
	ReviewApplications Capability = "review_applications"
	ListUsers          Capability = "list_users"
	ViewAnalytics      Capability = "view_analytics"
)

var policy = map[Capability][]model.Role{
	ReviewApplications: {model.RoleAdmin},
	ListUsers:          {model.RoleAdmin},
	ViewAnalytics:      {model.RoleAdmin, model.RoleManager},
}

// Can reports whether role grants c. Unknown capabilities are denied.
func Can(role model.Role, c Capability) bool {
	for _, r := range policy[c] {
		if r == role {
			return true
		}
	}
	return false
}
