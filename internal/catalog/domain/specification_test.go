package domain

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestSpecValueJSONDecode(t *testing.T) {
	var specs map[string]SpecValue
	raw := `{"color":"red","weight":1.5,"count":3,"dishwasher_safe":true,"materials":["ceramic","steel"]}`

	if err := json.Unmarshal([]byte(raw), &specs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v := specs["color"]; v.Kind() != SpecString || v.Str() != "red" {
		t.Errorf("expected string red, got %+v", v)
	}
	if v := specs["weight"]; v.Kind() != SpecNumber || v.Number() != 1.5 {
		t.Errorf("expected number 1.5, got %+v", v)
	}
	if v := specs["count"]; v.Kind() != SpecNumber || v.Number() != 3 {
		t.Errorf("expected number 3, got %+v", v)
	}
	if v := specs["dishwasher_safe"]; v.Kind() != SpecBool || !v.Bool() {
		t.Errorf("expected bool true, got %+v", v)
	}
	if v := specs["materials"]; v.Kind() != SpecStringList || !reflect.DeepEqual(v.List(), []string{"ceramic", "steel"}) {
		t.Errorf("expected string list, got %+v", v)
	}
}

func TestSpecValueJSONRejectsUnsupportedShapes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"nested object", `{"spec":{"nested":"object"}}`},
		{"mixed list", `{"spec":["ok",7]}`},
		{"null", `{"spec":null}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var specs map[string]SpecValue
			if err := json.Unmarshal([]byte(tc.raw), &specs); err == nil {
				t.Fatalf("expected decode rejection for %s", tc.raw)
			}
		})
	}
}

func TestSpecValueJSONRoundTrip(t *testing.T) {
	in := map[string]SpecValue{
		"color":    StringSpec("red"),
		"weight":   NumberSpec(1.5),
		"fragile":  BoolSpec(false),
		"variants": ListSpec([]string{"s", "m"}),
	}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out map[string]SpecValue
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip changed the value:\n in: %+v\nout: %+v", in, out)
	}
}

func TestSpecValueEmptyListMarshalsAsArray(t *testing.T) {
	data, err := json.Marshal(ListSpec(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("expected [], got %s", data)
	}
}
