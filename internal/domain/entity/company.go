package entity

import "time"

// Company representa una organización/tenant del sistema (multi-tenant, enfoque Ecuador).
type Company struct {
	ID        string
	Name      string
	RUC       string // RUC ecuatoriano (13 dígitos)
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
