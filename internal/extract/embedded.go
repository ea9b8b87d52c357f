package extract

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// extractEmbedded searches the raw text for the first balanced {...} span
// (greedy: first '{' to last '}') and tries to parse it as a structured
// object. It returns nil when no object could be recovered; that is not an
// error, the orchestrator falls back to line scanning.
func extractEmbedded(text string) *stageResult {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil
	}

	obj, ok := parseObject(text[start : end+1])
	if !ok {
		return nil
	}

	res := &stageResult{record: &Record{Address: &Address{}}}
	mapObjectKeys(res, obj)
	if res.empty() {
		return nil
	}
	return res
}

// parseObject attempts a strict JSON parse first. Model output is often
// near-valid JSON (single quotes, trailing commas, unquoted keys), so a
// repair pass is tried before giving up.
func parseObject(candidate string) (map[string]interface{}, bool) {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(candidate), &obj); err == nil {
		return obj, true
	}

	repaired, err := jsonrepair.JSONRepair(candidate)
	if err != nil {
		return nil, false
	}
	if err := json.Unmarshal([]byte(repaired), &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// mapObjectKeys maps recognized keys onto the record using the synonym
// table. Keys are visited in sorted order so the result does not depend on
// map iteration order.
func mapObjectKeys(res *stageResult, obj map[string]interface{}) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var fullName string
	for _, key := range keys {
		raw := obj[key]
		norm := normalizeKey(key)

		if norm == "address" {
			switch v := raw.(type) {
			case map[string]interface{}:
				flattenAddress(res.record, v)
			case string:
				// A single combined block; decomposed by the orchestrator.
				res.combinedAddress = strings.TrimSpace(v)
			}
			continue
		}

		if norm == "name" || norm == "fullname" || norm == "patientname" {
			if s, ok := stringValue(raw); ok && fullName == "" {
				fullName = s
			}
			continue
		}

		f, ok := keySynonyms[norm]
		if !ok {
			continue
		}
		if s, ok := stringValue(raw); ok {
			res.record.set(f, s)
		}
	}

	if fullName != "" {
		res.record.setName(fullName)
	}
}

// flattenAddress maps a nested address object's keys by the same synonym
// rules as top-level keys.
func flattenAddress(rec *Record, obj map[string]interface{}) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		f, ok := keySynonyms[normalizeKey(key)]
		if !ok {
			continue
		}
		if s, ok := stringValue(obj[key]); ok {
			rec.set(f, s)
		}
	}
}

// stringValue renders a parsed JSON scalar as a string. Zip codes in
// particular frequently arrive as numbers.
func stringValue(raw interface{}) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}
