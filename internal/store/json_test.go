package store

import (
	"errors"
	"testing"
)

type sample struct {
	Sessions int    `json:"sessions"`
	Mode     string `json:"mode"`
}

func TestGetJSONMissing(t *testing.T) {
	s := newTestStore(t)
	v := sample{Mode: "work"}
	ok, err := GetJSON(s, "missing", &v)
	if err != nil || ok {
		t.Fatalf("GetJSON = %v, %v", ok, err)
	}
	if v.Mode != "work" {
		t.Fatal("absent key should leave target untouched")
	}
}

func TestSetJSONRoundTrip(t *testing.T) {
	s := newTestStore(t)
	if err := SetJSON(s, "k", sample{Sessions: 3, Mode: "break"}); err != nil {
		t.Fatal(err)
	}

	raw, _, _ := s.Get("k")
	if raw != `{"sessions":3,"mode":"break"}` {
		t.Fatalf("unexpected encoding %s", raw)
	}

	var got sample
	ok, err := GetJSON(s, "k", &got)
	if err != nil || !ok {
		t.Fatalf("GetJSON = %v, %v", ok, err)
	}
	if got.Sessions != 3 || got.Mode != "break" {
		t.Fatalf("got %+v", got)
	}
}

func TestGetJSONMalformed(t *testing.T) {
	s := newTestStore(t)
	s.Set("k", "{not json")

	var got sample
	ok, err := GetJSON(s, "k", &got)
	if ok {
		t.Fatal("malformed record should not report ok")
	}
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DecodeError, got %T %v", err, err)
	}
	if de.Key != "k" {
		t.Fatalf("DecodeError key = %q", de.Key)
	}
}

func TestSetJSONUnencodable(t *testing.T) {
	s := newTestStore(t)
	if err := SetJSON(s, "k", make(chan int)); err == nil {
		t.Fatal("expected encode error")
	}
	if _, ok, _ := s.Get("k"); ok {
		t.Fatal("nothing should be written on encode failure")
	}
}
