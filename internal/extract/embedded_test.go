package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractEmbedded_CamelCaseKeys(t *testing.T) {
	res := extractEmbedded(`Here is the card info:
{"firstName": "Ann", "lastName": "Lee", "dateOfBirth": "03/04/1987", "insuranceId": "XQJ448291"}`)

	require.NotNil(t, res)
	rec := res.record
	require.NotNil(t, rec.FirstName)
	assert.Equal(t, "Ann", *rec.FirstName)
	require.NotNil(t, rec.LastName)
	assert.Equal(t, "Lee", *rec.LastName)
	require.NotNil(t, rec.DateOfBirth)
	assert.Equal(t, "03/04/1987", *rec.DateOfBirth)
	require.NotNil(t, rec.InsuranceID)
	assert.Equal(t, "XQJ448291", *rec.InsuranceID)
}

func TestExtractEmbedded_SnakeCaseAndSynonyms(t *testing.T) {
	res := extractEmbedded(`{"first_name": "Ann", "last_name": "Lee", "dob": "1987-03-04", "zip": "62701"}`)

	require.NotNil(t, res)
	rec := res.record
	require.NotNil(t, rec.FirstName)
	assert.Equal(t, "Ann", *rec.FirstName)
	require.NotNil(t, rec.DateOfBirth)
	assert.Equal(t, "1987-03-04", *rec.DateOfBirth)
	require.NotNil(t, rec.Address.ZipCode)
	assert.Equal(t, "62701", *rec.Address.ZipCode)
}

func TestExtractEmbedded_NestedAddressFlattened(t *testing.T) {
	res := extractEmbedded(`{"firstName": "Ann", "address": {"street": "12 Elm St", "city": "Springfield", "state": "IL", "zip_code": "62701"}}`)

	require.NotNil(t, res)
	addr := res.record.Address
	require.NotNil(t, addr.Street)
	assert.Equal(t, "12 Elm St", *addr.Street)
	require.NotNil(t, addr.City)
	assert.Equal(t, "Springfield", *addr.City)
	require.NotNil(t, addr.State)
	assert.Equal(t, "IL", *addr.State)
	require.NotNil(t, addr.ZipCode)
	assert.Equal(t, "62701", *addr.ZipCode)
}

func TestExtractEmbedded_AddressAsString(t *testing.T) {
	res := extractEmbedded(`{"firstName": "Ann", "address": "123 Main St, Anytown, CA 90210"}`)

	require.NotNil(t, res)
	assert.Equal(t, "123 Main St, Anytown, CA 90210", res.combinedAddress)
	assert.Nil(t, res.record.Address.Street)
}

func TestExtractEmbedded_NumericZip(t *testing.T) {
	res := extractEmbedded(`{"lastName": "Lee", "zipCode": 62701}`)

	require.NotNil(t, res)
	require.NotNil(t, res.record.Address.ZipCode)
	assert.Equal(t, "62701", *res.record.Address.ZipCode)
}

func TestExtractEmbedded_RepairsNearValidJSON(t *testing.T) {
	// Trailing comma and single quotes: typical model sloppiness.
	res := extractEmbedded(`{'firstName': 'Ann', 'lastName': 'Lee',}`)

	require.NotNil(t, res)
	require.NotNil(t, res.record.FirstName)
	assert.Equal(t, "Ann", *res.record.FirstName)
	require.NotNil(t, res.record.LastName)
	assert.Equal(t, "Lee", *res.record.LastName)
}

func TestExtractEmbedded_NoResult(t *testing.T) {
	t.Run("no braces", func(t *testing.T) {
		assert.Nil(t, extractEmbedded("First Name: Ann"))
	})
	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, extractEmbedded(""))
	})
	t.Run("no recognized keys", func(t *testing.T) {
		assert.Nil(t, extractEmbedded(`{"color": "blue", "shape": "round"}`))
	})
	t.Run("empty values ignored", func(t *testing.T) {
		assert.Nil(t, extractEmbedded(`{"firstName": "", "lastName": "  "}`))
	})
}

func TestExtractEmbedded_FullNameKey(t *testing.T) {
	res := extractEmbedded(`{"name": "Ann Marie Lee"}`)

	require.NotNil(t, res)
	require.NotNil(t, res.record.FirstName)
	require.NotNil(t, res.record.LastName)
	assert.Equal(t, "Ann Marie", *res.record.FirstName)
	assert.Equal(t, "Lee", *res.record.LastName)
}

func TestExtractEmbedded_GreedySpan(t *testing.T) {
	// First '{' to last '}' — inner objects stay inside the candidate span.
	res := extractEmbedded(`prefix {"firstName": "Ann", "address": {"city": "Springfield"}} suffix`)

	require.NotNil(t, res)
	require.NotNil(t, res.record.FirstName)
	require.NotNil(t, res.record.Address.City)
	assert.Equal(t, "Springfield", *res.record.Address.City)
}
