package model

import (
	"encoding/json"
	"time"

	domainErrors "github.com/polkiloo/procurement/internal/domain/errors"
)

// OrderStatus is the admin managed lifecycle stage of an order.
type OrderStatus string

const (
	OrderStatusPending       OrderStatus = "pending"
	OrderStatusAccepted      OrderStatus = "accepted"
	OrderStatusInvoiceIssued OrderStatus = "an invoice has been issued"
	OrderStatusShipped       OrderStatus = "shipped"
	OrderStatusDelivered     OrderStatus = "delivered"
	OrderStatusNotAccepted   OrderStatus = "not accepted"
)

// OrderStatuses lists every status an admin may set.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusAccepted,
	OrderStatusInvoiceIssued,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusNotAccepted,
}

// Valid reports whether s belongs to the status set.
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// UserStatus classifies the submitter of an order at creation time.
type UserStatus string

const (
	UserStatusVisited  UserStatus = "visited"
	UserStatusEligible UserStatus = "eligible"
)

// OrderKind names one of the order collections.
type OrderKind string

const (
	OrderKindFinance       OrderKind = "finance"
	OrderKindMaterial      OrderKind = "material"
	OrderKindRecourse      OrderKind = "recourse"
	OrderKindQualification OrderKind = "qualification"
)

// OrderKinds lists all collections in chart order.
var OrderKinds = []OrderKind{OrderKindFinance, OrderKindMaterial, OrderKindRecourse, OrderKindQualification}

// Valid reports whether k is a known collection.
func (k OrderKind) Valid() bool {
	for _, known := range OrderKinds {
		if k == known {
			return true
		}
	}
	return false
}

// AttachedFile references an object kept in external storage.
type AttachedFile struct {
	PublicID *string `json:"publicId"`
	URL      string  `json:"url"`
}

// NormalizeFile returns the empty reference when f is nil.
func NormalizeFile(f *AttachedFile) AttachedFile {
	if f == nil {
		return AttachedFile{URL: ""}
	}
	return *f
}

// Requester holds contact details shared by contractor submitted orders.
type Requester struct {
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Phone         string     `json:"phone"`
	Email         string     `json:"email"`
	CompanyName   string     `json:"companyName"`
	DateOfCompany *time.Time `json:"dateOfCompany,omitempty"`
}

// OrderMeta holds lifecycle fields shared by every order kind.
type OrderMeta struct {
	ID           string       `json:"_id"`
	AttachedFile AttachedFile `json:"attachedFile"`
	StatusOrder  OrderStatus  `json:"statusOrder"`
	StatusUser   UserStatus   `json:"statusUser"`
	UserID       *string      `json:"userId"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// MaterialOrder requests catalog materials for a project.
type MaterialOrder struct {
	OrderMeta
	Requester
	Materials       []string   `json:"materials"`
	ProjectName     string     `json:"projectName"`
	NoteForQuantity string     `json:"noteForQuantity"`
	Description     string     `json:"description"`
	MaterialItems   []Material `json:"materialItems,omitempty"`
}

// FinanceOrder requests project financing.
type FinanceOrder struct {
	OrderMeta
	Requester
	ProjectName     string `json:"projectName"`
	LastYearRevenue string `json:"lastYearRevenue"`
	RequiredAmount  string `json:"requiredAmount"`
	Description     string `json:"description"`
}

// QualificationOrder requests contractor rehabilitation.
type QualificationOrder struct {
	OrderMeta
	Requester
	LastYearRevenue string `json:"lastYearRevenue"`
	RequiredAmount  string `json:"requiredAmount"`
	Description     string `json:"description"`
}

// PaymentCheck selects how a recourse order is paid.
type PaymentCheck string

const (
	PaymentCash    PaymentCheck = "cash"
	PaymentDelayed PaymentCheck = "delayed"
)

// GeoPoint is a longitude/latitude pair encoded as a GeoJSON point.
type GeoPoint struct {
	Longitude float64
	Latitude  float64
}

// IsZero reports whether the point was left at the origin placeholder.
func (p GeoPoint) IsZero() bool {
	return p.Longitude == 0 && p.Latitude == 0
}

type geoJSONPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

func (p GeoPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(geoJSONPoint{Type: "Point", Coordinates: [2]float64{p.Longitude, p.Latitude}})
}

func (p *GeoPoint) UnmarshalJSON(data []byte) error {
	var raw geoJSONPoint
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	lng, lat := raw.Coordinates[0], raw.Coordinates[1]
	switch {
	case raw.Type != "Point":
		return domainErrors.NewValidationError("location", `type must be "Point"`)
	case lng < -180 || lng > 180:
		return domainErrors.NewValidationError("location", "longitude must be within [-180, 180]")
	case lat < -90 || lat > 90:
		return domainErrors.NewValidationError("location", "latitude must be within [-90, 90]")
	}
	p.Longitude, p.Latitude = lng, lat
	return nil
}

// RecourseOrder is a supplier order placed on behalf of a client.
type RecourseOrder struct {
	OrderMeta
	RecourseName  string       `json:"recourseName"`
	RecoursePhone string       `json:"recoursePhone"`
	ClientName    string       `json:"clientName"`
	ClientPhone   string       `json:"clientPhone"`
	SerialNumber  int64        `json:"serialNumber"`
	ProjectName   string       `json:"projectName"`
	DateOfProject time.Time    `json:"dateOfproject"`
	BillFile      AttachedFile `json:"billFile"`
	Materials     []string     `json:"materials"`
	PaymentCheck  PaymentCheck `json:"paymentCheck,omitempty"`
	Advance       string       `json:"advance"`
	UponDelivery  string       `json:"uponDelivry"`
	AfterDelivery string       `json:"afterDelivry"`
	CountryName   string       `json:"countryName"`
	Location      GeoPoint     `json:"location"`
	Street        string       `json:"street,omitempty"`
	Country       string       `json:"country,omitempty"`
	PostAddress   string       `json:"postAddress,omitempty"`
}

// Address is the result of reverse geocoding a point.
type Address struct {
	FullAddress string
	Street      string
	City        string
	Country     string
	PostalCode  string
}

// Apply backfills recourse address fields from a.
func (o *RecourseOrder) Apply(a Address) {
	if a.Street != "" {
		o.Street = a.Street
	}
	if a.Country != "" {
		o.Country = a.Country
		o.CountryName = a.Country
	}
	if a.FullAddress != "" {
		o.PostAddress = a.FullAddress
	}
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	Search string
	Status OrderStatus
	UserID string
	Page   PageRequest
}
