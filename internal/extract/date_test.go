package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"slash month day year", "03/04/1987", "1987-03-04"},
		{"hyphen separator", "3-4-1987", "1987-03-04"},
		{"single digit month and day", "1/9/2001", "2001-01-09"},
		{"two digit year above pivot", "03/04/87", "1987-03-04"},
		{"two digit year below pivot", "03/04/12", "2012-03-04"},
		{"two digit year at pivot", "03/04/50", "2050-03-04"},
		{"month name with ordinal", "March 4th, 1987", "1987-03-04"},
		{"month name lowercase", "march 4, 1987", "1987-03-04"},
		{"month name no comma", "December 1 1990", "1990-12-01"},
		{"month name first ordinal", "July 1st, 2020", "2020-07-01"},
		{"month name second ordinal", "July 2nd, 2020", "2020-07-02"},
		{"month name third ordinal", "July 3rd, 2020", "2020-07-03"},
		{"already canonical", "1987-03-04", "1987-03-04"},
		{"abbreviated month fallback", "Mar 4, 1987", "1987-03-04"},
		{"unparseable returned unchanged", "not a date", "not a date"},
		{"empty returned unchanged", "", ""},
		{"month out of range unchanged", "25/12/2020", "25/12/2020"},
		{"surrounding whitespace", "  03/04/1987  ", "1987-03-04"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeDate(tt.in))
		})
	}
}

func TestNormalizeDateZeroPadding(t *testing.T) {
	assert.Equal(t, "2003-05-06", normalizeDate("5/6/03"))
	assert.Equal(t, "1999-01-02", normalizeDate("January 2, 1999"))
}
