package model

import "time"

// Role enumerates access levels of platform users.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleContractor Role = "contractor"
	RoleRecourse   Role = "recourse"
	RoleIntering   Role = "intering"
)

// Roles lists every known role in display order.
var Roles = []Role{RoleAdmin, RoleContractor, RoleRecourse, RoleIntering}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// User is a registered platform account.
type User struct {
	ID            string          `json:"_id"`
	FirstName     string          `json:"firstName"`
	LastName      string          `json:"lastName"`
	Phone         string          `json:"phone"`
	Email         string          `json:"email"`
	CompanyName   string          `json:"companyName"`
	DateOfCompany *time.Time      `json:"dateOfCompany,omitempty"`
	Role          Role            `json:"role"`
	Profile       SupplierProfile `json:"profile"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`

	OTP *OTPChallenge `json:"-"`
}

// OTPChallenge is the pending one-time code issued to a user.
type OTPChallenge struct {
	Reference string
	CodeHash  string
	ExpiresAt time.Time
}

// Identity is the authenticated principal carried by a session token.
type Identity struct {
	UserID string
	Role   Role
}

// SupplierProfile holds optional supplier details attached to a user.
type SupplierProfile struct {
	SupplierNumber               string         `json:"supplierNumber,omitempty"`
	SupplierName                 string         `json:"supplierName,omitempty"`
	EntityType                   string         `json:"entityType,omitempty"`
	LegalEntity                  string         `json:"legalEntity,omitempty"`
	CommercialRegistrationNumber string         `json:"commercialRegistrationNumber,omitempty"`
	TaxNumber                    string         `json:"taxNumber,omitempty"`
	RegistrationDate             *time.Time     `json:"registrationDate,omitempty"`
	ResourceStatus               string         `json:"resourceStatus,omitempty"`
	TypeOfTransaction            string         `json:"typeOfTransaction,omitempty"`
	ExemptionOption              string         `json:"exemptionOption,omitempty"`
	InternationalResource        *bool          `json:"internationalResource,omitempty"`
	FreezeTheAccount             *bool          `json:"freezeTheAccount,omitempty"`
	Currency                     string         `json:"currency,omitempty"`
	BankAccountNumber            string         `json:"bankAccountNumber,omitempty"`
	BankName                     string         `json:"bankName,omitempty"`
	TaxDiscountRate              *float64       `json:"taxDiscountRate,omitempty"`
	PaymentTerms                 string         `json:"paymentTerms,omitempty"`
	ContractStartDate            *time.Time     `json:"contractStartDate,omitempty"`
	ContractEndDate              *time.Time     `json:"contractEndDate,omitempty"`
	Address1                     string         `json:"address1,omitempty"`
	Address2                     string         `json:"address2,omitempty"`
	City                         string         `json:"city,omitempty"`
	Region                       string         `json:"region,omitempty"`
	PostalCode                   string         `json:"postalCode,omitempty"`
	Country                      string         `json:"country,omitempty"`
	CountryCode                  string         `json:"countryCode,omitempty"`
	IdentityNumber               string         `json:"identityNumber,omitempty"`
	Nationality                  string         `json:"nationality,omitempty"`
	IssuingAuthority             string         `json:"issuingAuthority,omitempty"`
	Mobile1                      string         `json:"mobile1,omitempty"`
	Mobile2                      string         `json:"mobile2,omitempty"`
	Mobile3                      string         `json:"mobile3,omitempty"`
	Fax                          string         `json:"fax,omitempty"`
	EmailOfficial                string         `json:"emailOfficial,omitempty"`
	SupplierRepresentative       string         `json:"supplierRepresentative,omitempty"`
	Contact1                     string         `json:"contact1,omitempty"`
	Contact2                     string         `json:"contact2,omitempty"`
	Classification1              string         `json:"classification1,omitempty"`
	Classification2              string         `json:"classification2,omitempty"`
	Location                     string         `json:"location,omitempty"`
	Notes                        string         `json:"notes,omitempty"`
	Attachments                  []AttachedFile `json:"attachments,omitempty"`
}

// UserFilter narrows user listings.
type UserFilter struct {
	Role Role
}
