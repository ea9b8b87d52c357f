package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_EmptyInput(t *testing.T) {
	rec, err := Extract("")

	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, rec.IsEmpty())
	require.NotNil(t, rec.Address, "address sub-record is always present")
	assert.Nil(t, rec.Address.Street)
	assert.Nil(t, rec.Address.City)
	assert.Nil(t, rec.Address.State)
	assert.Nil(t, rec.Address.ZipCode)
}

func TestExtract_InvalidInput(t *testing.T) {
	_, err := Extract(string([]byte{0xff, 0xfe, 0xfd}))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExtract_Determinism(t *testing.T) {
	inputs := []string{
		"",
		"First Name: Ann\nLast Name: Lee\nDOB: 03/04/1987",
		`{"first_name": "Ann", "zip": 62701, "zip_code": "99999"}`,
		"Address: 123 Main St, Anytown, CA 90210\nCity: Springfield",
		"gibberish with no fields at all",
	}
	for _, in := range inputs {
		first, err := Extract(in)
		require.NoError(t, err)
		second, err := Extract(in)
		require.NoError(t, err)
		assert.Equal(t, first, second, "input %q", in)
	}
}

func TestExtract_EmbeddedStagePriority(t *testing.T) {
	// A successful embedded stage suppresses the key-value stage entirely:
	// the City line below must not leak into the result.
	rec, err := Extract("Name info below\n{\"firstName\":\"Ann\",\"lastName\":\"Lee\"}\nCity: Springfield")

	require.NoError(t, err)
	require.NotNil(t, rec.FirstName)
	assert.Equal(t, "Ann", *rec.FirstName)
	require.NotNil(t, rec.LastName)
	assert.Equal(t, "Lee", *rec.LastName)
	assert.Nil(t, rec.Address.City)
}

func TestExtract_FallbackWhenEmbeddedMalformedOrAbsent(t *testing.T) {
	// Braces that cannot be parsed into an object degrade to line scanning.
	rec, err := Extract("no braces here\nFirst Name: Ann")
	require.NoError(t, err)
	require.NotNil(t, rec.FirstName)
	assert.Equal(t, "Ann", *rec.FirstName)
}

func TestExtract_ExplicitFieldsBeatDecomposedAddress(t *testing.T) {
	rec, err := Extract("City: Springfield\nAddress: 12 Elm St, Shelbyville, IL 62701")

	require.NoError(t, err)
	require.NotNil(t, rec.Address.City)
	assert.Equal(t, "Springfield", *rec.Address.City, "explicit city wins over decomposed one")
	require.NotNil(t, rec.Address.Street)
	assert.Equal(t, "12 Elm St", *rec.Address.Street)
	require.NotNil(t, rec.Address.State)
	assert.Equal(t, "IL", *rec.Address.State)
	require.NotNil(t, rec.Address.ZipCode)
	assert.Equal(t, "62701", *rec.Address.ZipCode)
}

func TestExtract_AddressDecomposition(t *testing.T) {
	rec, err := Extract("Address: 123 Main St, Anytown, CA 90210")

	require.NoError(t, err)
	require.NotNil(t, rec.Address.Street)
	assert.Equal(t, "123 Main St", *rec.Address.Street)
	require.NotNil(t, rec.Address.City)
	assert.Equal(t, "Anytown", *rec.Address.City)
	require.NotNil(t, rec.Address.State)
	assert.Equal(t, "CA", *rec.Address.State)
	require.NotNil(t, rec.Address.ZipCode)
	assert.Equal(t, "90210", *rec.Address.ZipCode)
}

func TestExtract_UndecomposableAddressKeptAsStreet(t *testing.T) {
	rec, err := Extract("Address: the blue house near the river")

	require.NoError(t, err)
	require.NotNil(t, rec.Address.Street)
	assert.Equal(t, "the blue house near the river", *rec.Address.Street)
	assert.Nil(t, rec.Address.City)
	assert.Nil(t, rec.Address.State)
	assert.Nil(t, rec.Address.ZipCode)
}

func TestExtract_DateNormalization(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"slash date", "DOB: 03/04/1987", "1987-03-04"},
		{"month name", "Date of Birth: March 4th, 1987", "1987-03-04"},
		{"already canonical untouched", "DOB: 1987-03-04", "1987-03-04"},
		{"unparseable preserved", "DOB: not a date", "not a date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Extract(tt.in)
			require.NoError(t, err)
			require.NotNil(t, rec.DateOfBirth)
			assert.Equal(t, tt.want, *rec.DateOfBirth)
		})
	}
}

func TestExtract_EmbeddedDateAlsoNormalized(t *testing.T) {
	rec, err := Extract(`{"firstName": "Ann", "dob": "03/04/1987"}`)

	require.NoError(t, err)
	require.NotNil(t, rec.DateOfBirth)
	assert.Equal(t, "1987-03-04", *rec.DateOfBirth)
}

func TestExtract_EmbeddedCombinedAddressDecomposed(t *testing.T) {
	rec, err := Extract(`{"firstName": "Ann", "address": "123 Main St, Anytown, CA 90210"}`)

	require.NoError(t, err)
	require.NotNil(t, rec.Address.City)
	assert.Equal(t, "Anytown", *rec.Address.City)
	require.NotNil(t, rec.Address.ZipCode)
	assert.Equal(t, "90210", *rec.Address.ZipCode)
}

func TestExtract_GenderPassthrough(t *testing.T) {
	rec, err := Extract("Gender: nonbinary")

	require.NoError(t, err)
	require.NotNil(t, rec.Gender)
	assert.Equal(t, "nonbinary", *rec.Gender, "unrecognized gender passes through verbatim")
}

func TestExtract_NoFabrication(t *testing.T) {
	in := "First Name: Ann\nLast Name: Lee\nPhone: (555) 123-4567\nInsurance: Aetna"
	rec, err := Extract(in)
	require.NoError(t, err)

	for _, v := range []*string{rec.FirstName, rec.LastName, rec.Phone, rec.InsuranceProvider} {
		require.NotNil(t, v)
		assert.Contains(t, in, *v, "every extracted value must be a substring of the input")
	}
}
