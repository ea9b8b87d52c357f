package extract

import "strings"

// lineRule pairs a label predicate with the canonical field it populates.
type lineRule struct {
	field   canonicalField
	matches func(label string) bool
}

// lineRules is the ordered label-classification table. Rules are evaluated
// top to bottom and the first match wins; the order matters because some
// labels are substrings of others ("insurance id" vs "insurance").
var lineRules = []lineRule{
	{fieldFirstName, func(l string) bool {
		return strings.Contains(l, "first name") || strings.Contains(l, "firstname")
	}},
	{fieldLastName, func(l string) bool {
		return strings.Contains(l, "last name") || strings.Contains(l, "lastname")
	}},
	{fieldDateOfBirth, func(l string) bool {
		return strings.Contains(l, "birth") || l == "dob"
	}},
	{fieldGender, func(l string) bool {
		return l == "gender" || l == "sex"
	}},
	{fieldPhone, func(l string) bool {
		return strings.Contains(l, "phone") || strings.Contains(l, "telephone")
	}},
	{fieldEmail, func(l string) bool {
		return l == "email" || l == "e-mail"
	}},
	{fieldStreet, func(l string) bool {
		return strings.Contains(l, "street")
	}},
	{fieldCity, func(l string) bool {
		return l == "city"
	}},
	{fieldState, func(l string) bool {
		return l == "state"
	}},
	{fieldZipCode, func(l string) bool {
		return strings.Contains(l, "zip")
	}},
	{fieldInsuranceID, func(l string) bool {
		return strings.Contains(l, "insurance id") || strings.Contains(l, "member id") ||
			strings.Contains(l, "policy number")
	}},
	{fieldInsuranceProvider, func(l string) bool {
		return strings.Contains(l, "insurance provider") || strings.Contains(l, "insurance company") ||
			l == "insurance"
	}},
}

// parseKeyValues scans line-oriented "label: value" text. Only the first
// colon on a line separates label from value, so values may themselves
// contain colons. Unrecognized labels are ignored; an empty result is valid.
func parseKeyValues(text string) *stageResult {
	res := &stageResult{record: &Record{Address: &Address{}}}

	var fullName string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		label, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		label = strings.ToLower(strings.TrimSpace(label))
		value = strings.TrimSpace(value)
		if label == "" || value == "" {
			continue
		}

		if classifyLine(res, label, value) {
			continue
		}

		if (label == "name" || label == "full name" || label == "patient name") && fullName == "" {
			fullName = value
		}
	}

	// A bare name line only applies when no more specific first/last name
	// line was present.
	if fullName != "" {
		res.record.setName(fullName)
	}

	return res
}

// classifyLine assigns a labeled value to the first matching rule. A label
// equal to "address" (or an obvious variant) holds a combined block that the
// orchestrator decomposes later.
func classifyLine(res *stageResult, label, value string) bool {
	for _, rule := range lineRules {
		if rule.matches(label) {
			res.record.set(rule.field, value)
			return true
		}
	}

	switch label {
	case "address", "home address", "mailing address":
		res.combinedAddress = value
		return true
	}
	return false
}
