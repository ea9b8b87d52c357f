package extract

import "strings"

// Record is the structured result of running the extraction pipeline over a
// vision model's textual description of a patient ID or insurance card.
// Every field is optional: a nil pointer means the field was not found in the
// input text. Address is always non-nil on records returned by Extract so
// callers can merge sub-fields without a nil check.
type Record struct {
	FirstName         *string  `json:"firstName,omitempty"`
	LastName          *string  `json:"lastName,omitempty"`
	DateOfBirth       *string  `json:"dateOfBirth,omitempty"`
	Gender            *string  `json:"gender,omitempty"`
	Phone             *string  `json:"phone,omitempty"`
	Email             *string  `json:"email,omitempty"`
	Address           *Address `json:"address"`
	InsuranceID       *string  `json:"insuranceId,omitempty"`
	InsuranceProvider *string  `json:"insuranceProvider,omitempty"`
}

// Address holds the decomposed components of a mailing address.
type Address struct {
	Street  *string `json:"street,omitempty"`
	City    *string `json:"city,omitempty"`
	State   *string `json:"state,omitempty"`
	ZipCode *string `json:"zipCode,omitempty"`
}

// IsEmpty reports whether no field of the record was populated.
func (r *Record) IsEmpty() bool {
	return r.FirstName == nil && r.LastName == nil && r.DateOfBirth == nil &&
		r.Gender == nil && r.Phone == nil && r.Email == nil &&
		r.InsuranceID == nil && r.InsuranceProvider == nil &&
		(r.Address == nil || r.Address.isEmpty())
}

func (a *Address) isEmpty() bool {
	return a.Street == nil && a.City == nil && a.State == nil && a.ZipCode == nil
}

// set assigns a trimmed value to the canonical field. Empty values are
// ignored: absence and empty string both mean "not found".
func (r *Record) set(f canonicalField, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	if r.Address == nil {
		r.Address = &Address{}
	}
	switch f {
	case fieldFirstName:
		r.FirstName = &value
	case fieldLastName:
		r.LastName = &value
	case fieldDateOfBirth:
		r.DateOfBirth = &value
	case fieldGender:
		// Lower-case only when recognizable; anything else passes through.
		if strings.EqualFold(value, "male") || strings.EqualFold(value, "female") {
			value = strings.ToLower(value)
		}
		r.Gender = &value
	case fieldPhone:
		r.Phone = &value
	case fieldEmail:
		r.Email = &value
	case fieldStreet:
		r.Address.Street = &value
	case fieldCity:
		r.Address.City = &value
	case fieldState:
		r.Address.State = &value
	case fieldZipCode:
		r.Address.ZipCode = &value
	case fieldInsuranceID:
		r.InsuranceID = &value
	case fieldInsuranceProvider:
		r.InsuranceProvider = &value
	}
}

// setName splits a combined full name: the last whitespace-separated token
// becomes the last name, everything before it the first name. It only applies
// when no more specific first/last name field was populated.
func (r *Record) setName(value string) {
	if r.FirstName != nil || r.LastName != nil {
		return
	}
	tokens := strings.Fields(value)
	switch {
	case len(tokens) == 0:
		return
	case len(tokens) == 1:
		r.set(fieldFirstName, tokens[0])
	default:
		r.set(fieldFirstName, strings.Join(tokens[:len(tokens)-1], " "))
		r.set(fieldLastName, tokens[len(tokens)-1])
	}
}
