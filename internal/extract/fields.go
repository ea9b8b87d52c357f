package extract

import "strings"

// canonicalField enumerates the Record fields that label and key synonyms
// are mapped onto.
type canonicalField int

const (
	fieldFirstName canonicalField = iota
	fieldLastName
	fieldDateOfBirth
	fieldGender
	fieldPhone
	fieldEmail
	fieldStreet
	fieldCity
	fieldState
	fieldZipCode
	fieldInsuranceID
	fieldInsuranceProvider
)

// keySynonyms maps normalized structured-object keys to canonical fields.
// Keys are normalized by lower-casing and stripping separators, so both
// camelCase and snake_case spellings of the same key collapse to one entry.
var keySynonyms = map[string]canonicalField{
	"firstname":  fieldFirstName,
	"givenname":  fieldFirstName,
	"lastname":   fieldLastName,
	"surname":    fieldLastName,
	"familyname": fieldLastName,

	"dob":         fieldDateOfBirth,
	"dateofbirth": fieldDateOfBirth,
	"birthdate":   fieldDateOfBirth,

	"gender": fieldGender,
	"sex":    fieldGender,

	"phone":       fieldPhone,
	"phonenumber": fieldPhone,
	"telephone":   fieldPhone,

	"email":        fieldEmail,
	"emailaddress": fieldEmail,

	"street":        fieldStreet,
	"streetaddress": fieldStreet,
	"city":          fieldCity,
	"state":         fieldState,
	"zip":           fieldZipCode,
	"zipcode":       fieldZipCode,
	"postalcode":    fieldZipCode,

	"insuranceid":  fieldInsuranceID,
	"memberid":     fieldInsuranceID,
	"policynumber": fieldInsuranceID,

	"insurance":         fieldInsuranceProvider,
	"insuranceprovider": fieldInsuranceProvider,
	"insurancecompany":  fieldInsuranceProvider,
	"payer":             fieldInsuranceProvider,
}

// normalizeKey folds a structured-object key so spelling variants collapse:
// "dateOfBirth", "date_of_birth" and "Date Of Birth" all become "dateofbirth".
func normalizeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '_', '-', ' ':
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}
