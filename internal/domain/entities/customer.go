package entities

import (
	"strings"
	"time"
)

// CustomerType classifies a customer for invoicing purposes.

type CustomerType string

const (
	CustomerTypeIndividual CustomerType = "INDIVIDUAL"
	CustomerTypeBusiness   CustomerType = "BUSINESS"
	CustomerTypeFreelancer CustomerType = "FREELANCER"
	CustomerTypeGovernment CustomerType = "GOVERNMENT"
)

// ContactType enumerates the supported contact channels.

type ContactType string

const (
	ContactTypeEmail   ContactType = "EMAIL"
	ContactTypePhone   ContactType = "PHONE"
	ContactTypeMobile  ContactType = "MOBILE"
	ContactTypeFax     ContactType = "FAX"
	ContactTypeWebsite ContactType = "WEBSITE"
)

type Contact struct {
	Type      ContactType `json:"type"`
	Value     string      `json:"value"`
	IsPrimary bool        `json:"is_primary"`
}

type BillingAddress struct {
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	Country    string `json:"country"`
}

// Customer is a finance customer record.
//
// TaskiloCustomerID links back to the customer record on the Taskilo side
// and is the primary lookup key during order synchronization.

type Customer struct {
	ID                string
	CompanyID         string
	Type              CustomerType
	DisplayName       string
	FirstName         string
	LastName          string
	Contacts          []Contact
	BillingAddress    BillingAddress
	TaskiloCustomerID string
	Notes             string
	Tags              []string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	CreatedBy         string
}

// HasEmail reports whether the customer carries the given email as an
// EMAIL contact, compared case-insensitively.
func (c Customer) HasEmail(email string) bool {
	for _, contact := range c.Contacts {
		if contact.Type == ContactTypeEmail && strings.EqualFold(contact.Value, email) {
			return true
		}
	}
	return false
}
