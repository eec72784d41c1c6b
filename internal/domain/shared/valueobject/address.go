package valueobject

import (
	"fmt"
	"strings"
)

// Address is a value object representing a shipping or billing address
// It is immutable once constructed
type Address struct {
	FullName   string `json:"full_name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

const (
	maxAddressField = 100
	maxAddressLine  = 200
)

// NewAddress creates a new Address with the required fields
func NewAddress(fullName, line1, city, state, postalCode, country string) (Address, error) {
	addr := Address{
		FullName:   strings.TrimSpace(fullName),
		Line1:      strings.TrimSpace(line1),
		City:       strings.TrimSpace(city),
		State:      strings.TrimSpace(state),
		PostalCode: strings.TrimSpace(postalCode),
		Country:    strings.TrimSpace(country),
	}
	if err := addr.Validate(); err != nil {
		return Address{}, err
	}
	return addr, nil
}

// EmptyAddress returns an empty address (for optional address fields)
func EmptyAddress() Address {
	return Address{}
}

// IsEmpty returns true when no field is set
func (a Address) IsEmpty() bool {
	return a == Address{}
}

// Validate checks required fields and length limits
func (a Address) Validate() error {
	if a.FullName == "" {
		return fmt.Errorf("address full name is required")
	}
	if a.Line1 == "" {
		return fmt.Errorf("address line1 is required")
	}
	if a.City == "" {
		return fmt.Errorf("address city is required")
	}
	if a.PostalCode == "" {
		return fmt.Errorf("address postal code is required")
	}
	if a.Country == "" {
		return fmt.Errorf("address country is required")
	}
	if len(a.Line1) > maxAddressLine || len(a.Line2) > maxAddressLine {
		return fmt.Errorf("address line cannot exceed %d characters", maxAddressLine)
	}
	for _, f := range []string{a.FullName, a.City, a.State, a.PostalCode, a.Country, a.Phone} {
		if len(f) > maxAddressField {
			return fmt.Errorf("address field cannot exceed %d characters", maxAddressField)
		}
	}
	return nil
}

// Equals returns true if all fields match
func (a Address) Equals(other Address) bool {
	return a == other
}

// String returns a single-line representation
func (a Address) String() string {
	parts := []string{a.FullName, a.Line1}
	if a.Line2 != "" {
		parts = append(parts, a.Line2)
	}
	parts = append(parts, a.City)
	if a.State != "" {
		parts = append(parts, a.State)
	}
	parts = append(parts, a.PostalCode, a.Country)
	return strings.Join(parts, ", ")
}
