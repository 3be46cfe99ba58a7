package models

import (
	"encoding/json"
	"testing"
)

func TestFlexIntUnmarshal(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   int
		wantOK bool
	}{
		{"plain number", `3`, 3, true},
		{"float truncated", `3.9`, 3, true},
		{"numeric string", `"4"`, 4, true},
		{"float string truncated", `"3.7"`, 3, true},
		{"padded string", `" 2 "`, 2, true},
		{"negative", `-1`, -1, true},
		{"garbage string", `"lots"`, 0, false},
		{"null", `null`, 0, false},
		{"empty string", `""`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexInt
			if err := json.Unmarshal([]byte(tt.input), &f); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if f.Value != tt.want || f.OK != tt.wantOK {
				t.Errorf("got {%d %v}, want {%d %v}", f.Value, f.OK, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFlexFloatUnmarshal(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   float64
		wantOK bool
	}{
		{"plain number", `12.5`, 12.5, true},
		{"integer", `7`, 7, true},
		{"numeric string", `"8.25"`, 8.25, true},
		{"garbage string", `"free"`, 0, false},
		{"null", `null`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexFloat
			if err := json.Unmarshal([]byte(tt.input), &f); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if f.Value != tt.want || f.OK != tt.wantOK {
				t.Errorf("got {%v %v}, want {%v %v}", f.Value, f.OK, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFlexFallbacks(t *testing.T) {
	if got := (FlexInt{}).IntOr(5); got != 5 {
		t.Errorf("IntOr fallback = %d, want 5", got)
	}
	if got := (FlexInt{Value: 2, OK: true}).IntOr(5); got != 2 {
		t.Errorf("IntOr parsed = %d, want 2", got)
	}
	if got := (FlexFloat{}).FloatOr(1.5); got != 1.5 {
		t.Errorf("FloatOr fallback = %v, want 1.5", got)
	}
}

func TestFlexMarshalEmitsPlainNumbers(t *testing.T) {
	out, err := json.Marshal(struct {
		Quantity FlexInt   `json:"quantity"`
		Price    FlexFloat `json:"price"`
	}{Quantity: FlexInt{Value: 3, OK: true}, Price: FlexFloat{Value: 12.5, OK: true}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"quantity":3,"price":12.5}` {
		t.Errorf("marshal = %s", out)
	}
}
