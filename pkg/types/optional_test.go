package types

import (
	"encoding/json"
	"testing"
)

func TestOptionalDistinguishesAbsentNullAndValue(t *testing.T) {
	type payload struct {
		Stage     Optional[string] `json:"stage"`
		Value     Optional[string] `json:"value"`
		CloseDate Optional[string] `json:"actual_close_date"`
	}

	var p payload
	if err := json.Unmarshal([]byte(`{"stage":"CLOSED_WON","actual_close_date":null}`), &p); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !p.Stage.Set || !p.Stage.Valid || p.Stage.Value != "CLOSED_WON" {
		t.Fatalf("expected stage present with value, got %+v", p.Stage)
	}
	if p.Value.Set {
		t.Fatalf("expected value absent, got %+v", p.Value)
	}
	if !p.CloseDate.Set || p.CloseDate.Valid {
		t.Fatalf("expected close date present-null, got %+v", p.CloseDate)
	}
}

func TestOptionalPtr(t *testing.T) {
	present := NewOptional(42)
	if ptr := present.Ptr(); ptr == nil || *ptr != 42 {
		t.Fatalf("expected pointer to 42, got %v", ptr)
	}

	null := NullOptional[int]()
	if ptr := null.Ptr(); ptr != nil {
		t.Fatalf("expected nil pointer for null, got %v", ptr)
	}

	var absent Optional[int]
	if ptr := absent.Ptr(); ptr != nil {
		t.Fatalf("expected nil pointer for absent, got %v", ptr)
	}
}

func TestOptionalRoundTrip(t *testing.T) {
	raw, err := json.Marshal(NewOptional("PROPOSAL"))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(raw) != `"PROPOSAL"` {
		t.Fatalf("unexpected marshal output %s", raw)
	}

	raw, err = json.Marshal(NullOptional[string]())
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(raw) != "null" {
		t.Fatalf("unexpected marshal output %s", raw)
	}
}
