package model

import (
	"time"
)

type Role string

const (
	RoleAgent   Role = "agent"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAgent, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// AgentType distinguishes the compensation tier: Sub-Agent or General Agent.
type AgentType string

const (
	AgentTypeSA AgentType = "SA"
	AgentTypeGA AgentType = "GA"
)

func (t AgentType) Valid() bool {
	return t == AgentTypeSA || t == AgentTypeGA
}

// User est le compte d'un agent, manager ou admin. Le hash du mot de passe n'est jamais sérialisé.
type User struct {
	ID           string    `json:"_id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	AgencyName   string    `json:"agencyName"`
	AgentType    AgentType `json:"agentType"`
	Phone        string    `json:"phone,omitempty"`
	ProfileImage string    `json:"profileImage,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ProfileUpdate holds the optional profile fields; nil leaves a field unchanged.
type ProfileUpdate struct {
	FirstName    *string
	LastName     *string
	Phone        *string
	AgencyName   *string
	AgentType    *AgentType
	ProfileImage *string
}

// Apply copies the supplied fields onto u. An empty profile image is ignored.
func (p ProfileUpdate) Apply(u *User) {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.AgencyName != nil {
		u.AgencyName = *p.AgencyName
	}
	if p.AgentType != nil {
		u.AgentType = *p.AgentType
	}
	if p.ProfileImage != nil && *p.ProfileImage != "" {
		u.ProfileImage = *p.ProfileImage
	}
}

// AuthUser est la vue du compte renvoyée avec un token.
type AuthUser struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	AgencyName   string    `json:"agencyName"`
	AgentType    AgentType `json:"agentType"`
	ProfileImage string    `json:"profileImage,omitempty"`
}

func (u User) AuthView() AuthUser {
	return AuthUser{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Role:         u.Role,
		AgencyName:   u.AgencyName,
		AgentType:    u.AgentType,
		ProfileImage: u.ProfileImage,
	}
}
