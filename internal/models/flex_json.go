package models

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// participantFieldMap caches JSON tag -> struct field index mappings
var (
	participantFieldMap     map[string]int
	participantFieldMapOnce sync.Once
)

func getParticipantFieldMap() map[string]int {
	participantFieldMapOnce.Do(func() {
		t := reflect.TypeOf(ParticipantRecord{})
		participantFieldMap = make(map[string]int, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			tag := t.Field(i).Tag.Get("json")
			if tag == "" || tag == "-" {
				continue
			}
			name := strings.Split(tag, ",")[0]
			participantFieldMap[name] = i
		}
	})
	return participantFieldMap
}

// UnmarshalJSON implements flexible JSON unmarshaling that accepts both
// string-encoded and native JSON types. Match exports that have passed
// through spreadsheet or scripting tooling may quote every counter ("1234")
// or widen them to floats (1234.0); this coerces both back to the declared
// Go types transparently.
func (p *ParticipantRecord) UnmarshalJSON(data []byte) error {
	// Alias prevents infinite recursion
	type Alias ParticipantRecord
	a := (*Alias)(p)

	// Fast path: try standard unmarshal (works when all types match natively)
	if err := json.Unmarshal(data, a); err == nil {
		return nil
	}

	// Slow path: field-by-field with coercion
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("flex unmarshal: %w", err)
	}

	fieldMap := getParticipantFieldMap()
	v := reflect.ValueOf(a).Elem()

	for key, rawVal := range raw {
		idx, ok := fieldMap[key]
		if !ok {
			continue
		}

		fv := v.Field(idx)
		if !fv.CanSet() {
			continue
		}

		// Try direct unmarshal first
		ptr := reflect.New(fv.Type())
		if err := json.Unmarshal(rawVal, ptr.Interface()); err == nil {
			fv.Set(ptr.Elem())
			continue
		}

		// Quoted value but numeric/bool target — unwrap then coerce
		if len(rawVal) > 1 && rawVal[0] == '"' {
			var s string
			if err := json.Unmarshal(rawVal, &s); err != nil {
				continue
			}
			if s == "" {
				continue
			}
			coerceStringToField(fv, s)
			continue
		}

		// Bare float into an int target — truncate
		coerceStringToField(fv, string(rawVal))
	}

	return nil
}

// coerceStringToField converts a string value to the field's native type.
func coerceStringToField(fv reflect.Value, s string) {
	switch fv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// ParseFloat handles "28.5" → truncate to int
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			fv.SetInt(int64(n))
		}
	case reflect.Float32, reflect.Float64:
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			fv.SetFloat(n)
		}
	case reflect.Bool:
		if b, err := strconv.ParseBool(s); err == nil {
			fv.SetBool(b)
		}
	case reflect.String:
		fv.SetString(s)
	}
}
