package responses

import "time"

type InsuranceProfile struct {
	ID             string    `json:"id"`
	Provider       string    `json:"provider"`
	PolicyNumber   string    `json:"policy_number"`
	GroupID        string    `json:"group_id,omitempty"`
	GeneralCopay   string    `json:"general_copay"`
	IsPrimary      bool      `json:"is_primary"`
	IsActive       bool      `json:"is_active"`
	ExpirationDate time.Time `json:"expiration_date,omitempty"`
}

type CarePackage struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	PackageType        string    `json:"package_type"`
	TotalSessions      int       `json:"total_sessions"`
	RemainingSessions  int       `json:"remaining_sessions"`
	LinkedBillingCodes []string  `json:"linked_billing_codes"`
	Price              string    `json:"price"`
	PurchaseDate       time.Time `json:"purchase_date"`
	Exhausted          bool      `json:"exhausted"`
}
