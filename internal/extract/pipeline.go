package extract

import (
	"errors"
	"unicode/utf8"
)

// ErrInvalidInput is returned when the raw input is not valid UTF-8 text.
// It is the only error the pipeline surfaces: everything else degrades to
// partial or absent fields in the returned record.
var ErrInvalidInput = errors.New("extract: input is not valid UTF-8 text")

// stageResult carries a stage's partial record plus a combined address block
// that still needs decomposition.
type stageResult struct {
	record          *Record
	combinedAddress string
}

func (s *stageResult) empty() bool {
	return s.record.IsEmpty() && s.combinedAddress == ""
}

// Extract turns a vision model's free-form textual card description into a
// structured Record. The embedded-structure stage is tried first — when the
// model followed instructions and emitted a structured object, that is
// strictly more reliable than prose scanning — and only on no result does
// the line-oriented key-value stage run. The two stages are never combined
// on the same text, so a structured field cannot be overwritten by a looser
// textual match.
//
// An all-absent record is a valid output (a blank or illegible card). The
// record never contains a value that was not present in the input text, and
// identical input always yields an identical record.
func Extract(raw string) (*Record, error) {
	if !utf8.ValidString(raw) {
		return nil, ErrInvalidInput
	}

	res := extractEmbedded(raw)
	if res == nil {
		res = parseKeyValues(raw)
	}

	rec := res.record
	if rec.Address == nil {
		rec.Address = &Address{}
	}

	// Decompose a combined address block, but let individually labeled
	// sub-fields win over anything derived from the decomposition.
	if res.combinedAddress != "" {
		d := decomposeAddress(res.combinedAddress)
		if rec.Address.Street == nil {
			rec.set(fieldStreet, d.street)
		}
		if rec.Address.City == nil {
			rec.set(fieldCity, d.city)
		}
		if rec.Address.State == nil {
			rec.set(fieldState, d.state)
		}
		if rec.Address.ZipCode == nil {
			rec.set(fieldZipCode, d.zip)
		}
	}

	if rec.DateOfBirth != nil && !canonicalDateRe.MatchString(*rec.DateOfBirth) {
		normalized := normalizeDate(*rec.DateOfBirth)
		rec.DateOfBirth = &normalized
	}

	return rec, nil
}
