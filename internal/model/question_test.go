package model

import (
	"encoding/json"
	"testing"
)

func TestFlexIDAcceptsStringAndNumber(t *testing.T) {
	cases := map[string]string{
		`{"id":"q1","type":"single"}`:    "q1",
		`{"id":42,"type":"single"}`:      "42",
		`{"id":42.5,"type":"single"}`:    "42.5",
		`{"id":" q2 ","type":"single"}`:  " q2 ",
	}
	for in, want := range cases {
		var q Question
		if err := json.Unmarshal([]byte(in), &q); err != nil {
			t.Fatalf("unmarshal %s: %v", in, err)
		}
		if q.ID.String() != want {
			t.Fatalf("id from %s = %q, want %q", in, q.ID, want)
		}
	}
}

func TestFlexIDRejectsOtherTypes(t *testing.T) {
	var q Question
	if err := json.Unmarshal([]byte(`{"id":true,"type":"single"}`), &q); err == nil {
		t.Fatal("expected error for boolean id")
	}
	if err := json.Unmarshal([]byte(`{"id":{"v":1},"type":"single"}`), &q); err == nil {
		t.Fatal("expected error for object id")
	}
}
