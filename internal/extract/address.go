package extract

import (
	"regexp"
	"strings"
)

// decomposed holds the parts recovered from a combined address block.
type decomposed struct {
	street string
	city   string
	state  string
	zip    string
}

var (
	// "<street>, <city>, <ST> <zip>" — two-letter state code followed by a
	// 5-digit (optionally hyphen-extended) postal code. Street may itself
	// contain commas; the city segment may not.
	fullAddressRe = regexp.MustCompile(`^(.+),\s*([^,]+),\s*([A-Z]{2})\s+(\d{5}(?:-\d{4})?)$`)

	// A "<ST> <zip>" pair anywhere in the string.
	stateZipRe = regexp.MustCompile(`\b([A-Z]{2})\s+(\d{5}(?:-\d{4})?)\b`)
)

// decomposeAddress splits a combined free-text address block into its
// components, trying increasingly loose strategies. It never fails: when
// nothing can be recovered, the whole block is treated as the street.
func decomposeAddress(block string) decomposed {
	block = strings.TrimSpace(block)

	if m := fullAddressRe.FindStringSubmatch(block); m != nil {
		return decomposed{
			street: strings.TrimSpace(m[1]),
			city:   strings.TrimSpace(m[2]),
			state:  m[3],
			zip:    m[4],
		}
	}

	if loc := stateZipRe.FindStringSubmatchIndex(block); loc != nil {
		d := decomposed{
			state: block[loc[2]:loc[3]],
			zip:   block[loc[4]:loc[5]],
		}
		head := strings.TrimSpace(block[:loc[0]])
		head = strings.TrimSpace(strings.TrimSuffix(head, ","))
		if i := strings.LastIndex(head, ","); i >= 0 {
			d.street = strings.TrimSpace(head[:i])
			d.city = strings.TrimSpace(head[i+1:])
		} else {
			d.street = head
		}
		return d
	}

	return decomposed{street: block}
}
