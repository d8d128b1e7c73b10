package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles form a closed set; anything else is rejected at the boundary.
const (
	RoleAdmin      = "Admin"
	RoleFrontliner = "Frontliner"
	RolePartnerNGO = "PartnerNGO"
)

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleFrontliner || role == RolePartnerNGO
}

// NGOInfo is populated only for PartnerNGO users.
type NGOInfo struct {
	Name               string `bson:"name" json:"name"`
	Address            string `bson:"address" json:"address"`
	RegistrationNumber string `bson:"registration_number" json:"registrationNumber"`
	ContactPerson      string `bson:"contact_person" json:"contactPerson"`
	PhoneNumber        string `bson:"phone_number" json:"phoneNumber"`
}

// FrontlinerInfo is populated only for Frontliner users.
type FrontlinerInfo struct {
	Region           string               `bson:"region" json:"region"`
	AssignedProjects []primitive.ObjectID `bson:"assigned_projects" json:"assignedProjects"`
	Supervisor       string               `bson:"supervisor" json:"supervisor"`
}

// AdminSettings holds Admin notification preferences.
type AdminSettings struct {
	ProjectNotificationCount int  `bson:"project_notification_count" json:"projectNotificationCount"`
	NotificationsEnabled     bool `bson:"notifications_enabled" json:"notificationsEnabled"`
}

type User struct {
	ID                      primitive.ObjectID `bson:"_id,omitempty"`
	Name                    string             `bson:"name"`
	Email                   string             `bson:"email"`
	PasswordHash            string             `bson:"password_hash"`
	Role                    string             `bson:"role"`
	IsActive                bool               `bson:"is_active"`
	IsVerified              bool               `bson:"is_verified"`
	VerificationToken       string             `bson:"verification_token,omitempty"`
	VerificationTokenExpiry time.Time          `bson:"verification_token_expiry,omitempty"`
	NGOInfo                 *NGOInfo           `bson:"ngo_info,omitempty"`
	FrontlinerInfo          *FrontlinerInfo    `bson:"frontliner_info,omitempty"`
	AdminSettings           *AdminSettings     `bson:"admin_settings,omitempty"`
	LastLogin               time.Time          `bson:"last_login,omitempty"`
	CreatedAt               time.Time          `bson:"created_at"`
	UpdatedAt               time.Time          `bson:"updated_at"`
}

// Identity is the wire shape of a user: everything a client may see,
// never the password hash.
type Identity struct {
	ID             string          `json:"_id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Role           string          `json:"role"`
	IsActive       bool            `json:"isActive"`
	IsVerified     bool            `json:"isVerified"`
	NGOInfo        *NGOInfo        `json:"ngoInfo,omitempty"`
	FrontlinerInfo *FrontlinerInfo `json:"frontlinerInfo,omitempty"`
	AdminSettings  *AdminSettings  `json:"adminSettings,omitempty"`
}

func (u *User) Identity() Identity {
	return Identity{
		ID:             u.ID.Hex(),
		Name:           u.Name,
		Email:          u.Email,
		Role:           u.Role,
		IsActive:       u.IsActive,
		IsVerified:     u.IsVerified,
		NGOInfo:        u.NGOInfo,
		FrontlinerInfo: u.FrontlinerInfo,
		AdminSettings:  u.AdminSettings,
	}
}

type RegisterRequest struct {
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Password       string          `json:"password"`
	Role           string          `json:"role"`
	NGOInfo        *NGOInfo        `json:"ngoInfo"`
	FrontlinerInfo *FrontlinerInfo `json:"frontlinerInfo"`
}

type Credential struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ResendVerificationRequest struct {
	Email string `json:"email"`
}
