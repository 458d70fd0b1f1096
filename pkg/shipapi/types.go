package shipapi

import (
	"time"
)

// Resource represents the fields shared by every API object.
type Resource struct {
	ID        string     `json:"id"                   yaml:"id"`
	Object    string     `json:"object,omitempty"     yaml:"object,omitempty"`
	Mode      string     `json:"mode,omitempty"       yaml:"mode,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// Page is implemented by cursor-paginated list responses.
type Page[T any] interface {
	Items() []T
	More() bool
}

// ReferralCustomerList represents a page of referral customers.
type ReferralCustomerList struct {
	ReferralCustomers []User `json:"referral_customers" yaml:"referral_customers"`
	HasMore           bool   `json:"has_more"           yaml:"has_more"`
}

// Items implements Page.
func (l *ReferralCustomerList) Items() []User {
	return l.ReferralCustomers
}

// More implements Page.
func (l *ReferralCustomerList) More() bool {
	return l.HasMore
}
