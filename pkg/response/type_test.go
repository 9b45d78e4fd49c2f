package response_test

import (
	"encoding/json"
	"testing"
	"time"

	"multi-agent-chat/pkg/response"
)

func TestDateTimeMarshalJSON(t *testing.T) {
	hcm := time.FixedZone("ICT", 7*3600)
	tm := time.Date(2026, 5, 1, 22, 30, 0, 0, hcm)

	b, err := json.Marshal(response.DateTime(tm))
	if err != nil {
		t.Fatalf("unexpected error marshaling DateTime: %v", err)
	}
	if got, want := string(b), `"2026-05-01T15:30:00Z"`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestDateTimeMarshalJSON_Zero(t *testing.T) {
	b, err := json.Marshal(response.DateTime{})
	if err != nil {
		t.Fatalf("unexpected error marshaling DateTime: %v", err)
	}
	if string(b) != "null" {
		t.Errorf("got %s, want null", b)
	}
}
