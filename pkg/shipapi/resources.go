package shipapi

import (
	"strconv"
	"strings"
)

// Priority selects one of the payment methods stored on an account.
type Priority string

const (
	PriorityPrimary   Priority = "primary"
	PrioritySecondary Priority = "secondary"
)

// Valid reports whether p names a payment method slot.
func (p Priority) Valid() bool {
	return p == PriorityPrimary || p == PrioritySecondary
}

// PaymentMethodFamily identifies the endpoint family that owns a payment method.
type PaymentMethodFamily int

const (
	PaymentMethodFamilyUnknown PaymentMethodFamily = iota
	PaymentMethodFamilyCard
	PaymentMethodFamilyBank
)

const (
	cardIDPrefix = "card_"
	bankIDPrefix = "bank_"
)

// PaymentMethodFamilyOf derives the family from a payment method ID prefix.
// The API exposes no explicit type field, so the prefix is authoritative.
func PaymentMethodFamilyOf(id string) PaymentMethodFamily {
	switch {
	case strings.HasPrefix(id, cardIDPrefix):
		return PaymentMethodFamilyCard
	case strings.HasPrefix(id, bankIDPrefix):
		return PaymentMethodFamilyBank
	default:
		return PaymentMethodFamilyUnknown
	}
}

// Path returns the collection path for the family.
func (f PaymentMethodFamily) Path() string {
	switch f {
	case PaymentMethodFamilyCard:
		return "/credit_cards"
	case PaymentMethodFamilyBank:
		return "/bank_accounts"
	default:
		return ""
	}
}

func (f PaymentMethodFamily) String() string {
	switch f {
	case PaymentMethodFamilyCard:
		return "card"
	case PaymentMethodFamilyBank:
		return "bank"
	default:
		return "unknown"
	}
}

// PaymentMethod represents a stored credit card or bank account.
type PaymentMethod struct {
	ID                        string  `json:"id"                                    yaml:"id"`
	Object                    string  `json:"object,omitempty"                      yaml:"object,omitempty"`
	Name                      *string `json:"name,omitempty"                        yaml:"name,omitempty"`
	Last4                     string  `json:"last4,omitempty"                       yaml:"last4,omitempty"`
	ExpMonth                  int     `json:"exp_month,omitempty"                   yaml:"exp_month,omitempty"`
	ExpYear                   int     `json:"exp_year,omitempty"                    yaml:"exp_year,omitempty"`
	Brand                     string  `json:"brand,omitempty"                       yaml:"brand,omitempty"`
	BankName                  string  `json:"bank_name,omitempty"                   yaml:"bank_name,omitempty"`
	Country                   string  `json:"country,omitempty"                     yaml:"country,omitempty"`
	Verified                  bool    `json:"verified,omitempty"                    yaml:"verified,omitempty"`
	RequiresMandateCollection bool    `json:"requires_mandate_collection,omitempty" yaml:"requires_mandate_collection,omitempty"`
	DisabledAt                *string `json:"disabled_at,omitempty"                 yaml:"disabled_at,omitempty"`
}

// PaymentMethods represents the /payment_methods response.
type PaymentMethods struct {
	ID                     string         `json:"id"                       yaml:"id"`
	Object                 string         `json:"object,omitempty"         yaml:"object,omitempty"`
	PrimaryPaymentMethod   *PaymentMethod `json:"primary_payment_method"   yaml:"primary_payment_method"`
	SecondaryPaymentMethod *PaymentMethod `json:"secondary_payment_method" yaml:"secondary_payment_method"`
}

// ByPriority returns the payment method stored in the slot named by priority.
func (m *PaymentMethods) ByPriority(priority Priority) *PaymentMethod {
	switch priority {
	case PriorityPrimary:
		return m.PrimaryPaymentMethod
	case PrioritySecondary:
		return m.SecondaryPaymentMethod
	default:
		return nil
	}
}

// ResolvedPaymentTarget is the endpoint family and record a billing call acts on.
type ResolvedPaymentTarget struct {
	Family          PaymentMethodFamily
	PaymentMethodID string
}

// Path returns the resource path of the resolved payment method.
func (t *ResolvedPaymentTarget) Path() string {
	return t.Family.Path() + "/" + t.PaymentMethodID
}

// CreditCardDetails holds raw card data for tokenization. It is never sent
// to the shipping API and never logged.
type CreditCardDetails struct {
	Number          string `json:"-" yaml:"-"`
	ExpirationMonth int    `json:"-" yaml:"-"`
	ExpirationYear  int    `json:"-" yaml:"-"`
	CVC             string `json:"-" yaml:"-"`
}

// String masks everything but the last four digits of the card number.
func (d CreditCardDetails) String() string {
	last4 := d.Number
	if len(last4) > 4 {
		last4 = last4[len(last4)-4:]
	}

	return "card ending " + last4 + " exp " + strconv.Itoa(d.ExpirationMonth) + "/" + strconv.Itoa(d.ExpirationYear)
}

// GoString keeps %#v from printing the raw fields.
func (d CreditCardDetails) GoString() string {
	return d.String()
}

// FundWalletRequest is the body of a wallet charge.
type FundWalletRequest struct {
	Amount string `json:"amount" yaml:"amount"`
}

// User represents an account or a referral customer.
type User struct {
	Resource `yaml:",inline"`

	ParentID                *string `json:"parent_id,omitempty"                  yaml:"parent_id,omitempty"`
	Name                    string  `json:"name"                                 yaml:"name"`
	Email                   string  `json:"email"                                yaml:"email"`
	PhoneNumber             string  `json:"phone_number,omitempty"               yaml:"phone_number,omitempty"`
	Balance                 string  `json:"balance,omitempty"                    yaml:"balance,omitempty"`
	RechargeAmount          string  `json:"recharge_amount,omitempty"            yaml:"recharge_amount,omitempty"`
	SecondaryRechargeAmount string  `json:"secondary_recharge_amount,omitempty"  yaml:"secondary_recharge_amount,omitempty"`
	RechargeThreshold       string  `json:"recharge_threshold,omitempty"         yaml:"recharge_threshold,omitempty"`
	Children                []User  `json:"children,omitempty"                   yaml:"children,omitempty"`
}

// UserCreateRequest is the body for creating a referral customer.
type UserCreateRequest struct {
	Name        string `json:"name"                   yaml:"name"`
	Email       string `json:"email"                  yaml:"email"`
	PhoneNumber string `json:"phone_number,omitempty" yaml:"phone_number,omitempty"`
}

// UserUpdateRequest is the body for updating a user.
type UserUpdateRequest struct {
	Name                    *string `json:"name,omitempty"                      yaml:"name,omitempty"`
	Email                   *string `json:"email,omitempty"                     yaml:"email,omitempty"`
	PhoneNumber             *string `json:"phone_number,omitempty"              yaml:"phone_number,omitempty"`
	RechargeAmount          *string `json:"recharge_amount,omitempty"           yaml:"recharge_amount,omitempty"`
	SecondaryRechargeAmount *string `json:"secondary_recharge_amount,omitempty" yaml:"secondary_recharge_amount,omitempty"`
	RechargeThreshold       *string `json:"recharge_threshold,omitempty"        yaml:"recharge_threshold,omitempty"`
}

// Parcel represents package dimensions and weight.
type Parcel struct {
	Resource `yaml:",inline"`

	Length            *float64 `json:"length,omitempty"             yaml:"length,omitempty"`
	Width             *float64 `json:"width,omitempty"              yaml:"width,omitempty"`
	Height            *float64 `json:"height,omitempty"             yaml:"height,omitempty"`
	PredefinedPackage string   `json:"predefined_package,omitempty" yaml:"predefined_package,omitempty"`
	Weight            float64  `json:"weight"                       yaml:"weight"`
}

// ParcelCreateRequest is the body for creating a parcel.
type ParcelCreateRequest struct {
	Length            *float64 `json:"length,omitempty"             yaml:"length,omitempty"`
	Width             *float64 `json:"width,omitempty"              yaml:"width,omitempty"`
	Height            *float64 `json:"height,omitempty"             yaml:"height,omitempty"`
	PredefinedPackage string   `json:"predefined_package,omitempty" yaml:"predefined_package,omitempty"`
	Weight            float64  `json:"weight"                       yaml:"weight"`
}
