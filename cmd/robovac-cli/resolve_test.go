package main

import (
	"reflect"
	"testing"

	"github.com/joshp123/gohome-robovac/plugins/robovac"
)

func TestResolveVacuum(t *testing.T) {
	vacuums := []robovac.EntityView{
		{ID: "bf1234", Name: "Living Room"},
		{ID: "bf5678", Name: "Upstairs-Hall"},
	}
	cases := map[string]string{
		"bf1234":        "bf1234",
		"living room":   "bf1234",
		"Living_Room":   "bf1234",
		"upstairs hall": "bf5678",
	}
	for input, want := range cases {
		got, err := resolveVacuum(input, vacuums)
		if err != nil {
			t.Fatalf("resolve %q: %v", input, err)
		}
		if got != want {
			t.Fatalf("resolve %q: got %q want %q", input, got, want)
		}
	}
	if _, err := resolveVacuum("garage", vacuums); err == nil {
		t.Fatalf("expected error for unknown vacuum")
	}
}

func TestDialAddr(t *testing.T) {
	cases := map[string]string{
		"0.0.0.0:9000":  "127.0.0.1:9000",
		":8080":         "127.0.0.1:8080",
		"10.0.0.5:9000": "10.0.0.5:9000",
		"robovac":       "robovac",
	}
	for in, want := range cases {
		if got := dialAddr(in); got != want {
			t.Fatalf("dialAddr(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSendRequest(t *testing.T) {
	req, err := sendRequest([]string{"roomClean", "--rooms", "1, 4", "--count", "2"})
	if err != nil {
		t.Fatalf("send request: %v", err)
	}
	want := robovac.CommandRequest{
		Command: "send_command",
		Name:    "roomClean",
		Params:  map[string]any{"roomIds": []int{1, 4}, "count": 2},
	}
	if !reflect.DeepEqual(req, want) {
		t.Fatalf("unexpected request: %+v", req)
	}

	req, err = sendRequest([]string{"boostIQ"})
	if err != nil || req.Params != nil {
		t.Fatalf("unexpected toggle request: %+v %v", req, err)
	}

	if _, err := sendRequest([]string{"roomClean", "--rooms", "kitchen"}); err == nil {
		t.Fatalf("expected error for invalid room id")
	}
}
