package entities

// Role is the caller category carried by access tokens.
type Role string

const (
	RoleClient   Role = "client"
	RoleRepairer Role = "repairer"
	RoleAdmin    Role = "admin"
	RoleSystem   Role = "system"
)

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleRepairer, RoleAdmin, RoleSystem:
		return true
	}
	return false
}

// Actor identifies who triggers a workflow step.
type Actor struct {
	ID   string
	Role Role
}

// SystemActor is used for processor callbacks and scheduled sweeps.
var SystemActor = Actor{ID: "system", Role: RoleSystem}

func (a Actor) IsPrivileged() bool {
	return a.Role == RoleAdmin || a.Role == RoleSystem
}
