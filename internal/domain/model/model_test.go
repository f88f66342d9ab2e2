package model

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	domainErrors "github.com/polkiloo/procurement/internal/domain/errors"
)

func TestOrderStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   OrderStatus
		value string
	}{
		{"pending", OrderStatusPending, "pending"},
		{"accepted", OrderStatusAccepted, "accepted"},
		{"invoice", OrderStatusInvoiceIssued, "an invoice has been issued"},
		{"shipped", OrderStatusShipped, "shipped"},
		{"delivered", OrderStatusDelivered, "delivered"},
		{"not accepted", OrderStatusNotAccepted, "not accepted"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
			if !tc.got.Valid() {
				t.Fatalf("expected %q to be valid", tc.got)
			}
		})
	}

	if OrderStatus("cancelled").Valid() {
		t.Fatal("unexpected valid status")
	}
}

func TestRoleAndKindValidity(t *testing.T) {
	if !RoleIntering.Valid() || Role("root").Valid() {
		t.Fatal("unexpected role validity")
	}
	if !OrderKindQualification.Valid() || OrderKind("rehab").Valid() {
		t.Fatal("unexpected kind validity")
	}
}

func TestPageRequestNormalize(t *testing.T) {
	cases := []struct {
		name   string
		in     PageRequest
		want   PageRequest
		offset int
	}{
		{"defaults", PageRequest{}, PageRequest{Number: 1, Limit: 10}, 0},
		{"third page", PageRequest{Number: 3, Limit: 5}, PageRequest{Number: 3, Limit: 5}, 10},
		{"capped", PageRequest{Number: 1, Limit: 1000}, PageRequest{Number: 1, Limit: MaxPageLimit}, 0},
		{"huge page", PageRequest{Number: math.MaxInt, Limit: 50}, PageRequest{Number: MaxPageNumber, Limit: 50}, (MaxPageNumber - 1) * 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalize()
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
			if got.Offset() != tc.offset {
				t.Fatalf("expected offset %d, got %d", tc.offset, got.Offset())
			}
		})
	}
}

func TestGeoPointJSON(t *testing.T) {
	encoded, err := json.Marshal(GeoPoint{Longitude: 46.7, Latitude: 24.7})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(encoded), `"type":"Point"`) || !strings.Contains(string(encoded), `[46.7,24.7]`) {
		t.Fatalf("unexpected encoding %s", encoded)
	}

	var decoded GeoPoint
	if err := json.Unmarshal([]byte(`{"type":"Point","coordinates":[39.1,21.5]}`), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Longitude != 39.1 || decoded.Latitude != 21.5 {
		t.Fatalf("unexpected point %+v", decoded)
	}
	if decoded.IsZero() || !(GeoPoint{}).IsZero() {
		t.Fatal("unexpected zero detection")
	}
}

func TestGeoPointRejectsInvalidInput(t *testing.T) {
	cases := map[string]string{
		"wrong type":        `{"type":"Polygon","coordinates":[39.1,21.5]}`,
		"missing type":      `{"coordinates":[39.1,21.5]}`,
		"latitude range":    `{"type":"Point","coordinates":[39.1,100]}`,
		"longitude range":   `{"type":"Point","coordinates":[-181,21.5]}`,
		"negative latitude": `{"type":"Point","coordinates":[39.1,-90.5]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			var p GeoPoint
			err := json.Unmarshal([]byte(raw), &p)
			var vErr *domainErrors.ValidationError
			if !errors.As(err, &vErr) || vErr.Field != "location" {
				t.Fatalf("expected location validation error, got %v", err)
			}
		})
	}

	var edge GeoPoint
	if err := json.Unmarshal([]byte(`{"type":"Point","coordinates":[180,-90]}`), &edge); err != nil {
		t.Fatalf("boundary point rejected: %v", err)
	}
}

func TestNormalizeFile(t *testing.T) {
	empty := NormalizeFile(nil)
	if empty.URL != "" || empty.PublicID != nil {
		t.Fatalf("expected empty reference, got %+v", empty)
	}
	encoded, _ := json.Marshal(empty)
	if string(encoded) != `{"publicId":null,"url":""}` {
		t.Fatalf("unexpected encoding %s", encoded)
	}

	id := "abc"
	kept := NormalizeFile(&AttachedFile{PublicID: &id, URL: "https://cdn/x.pdf"})
	if kept.URL != "https://cdn/x.pdf" || *kept.PublicID != "abc" {
		t.Fatalf("expected file kept verbatim, got %+v", kept)
	}
}

func TestRecourseApplyAddress(t *testing.T) {
	order := RecourseOrder{CountryName: "KSA"}
	order.Apply(Address{Street: "King Fahd Rd", Country: "Saudi Arabia", FullAddress: "King Fahd Rd, Riyadh"})
	if order.Street != "King Fahd Rd" || order.Country != "Saudi Arabia" || order.CountryName != "Saudi Arabia" {
		t.Fatalf("unexpected address fields %+v", order)
	}
	if order.PostAddress != "King Fahd Rd, Riyadh" {
		t.Fatalf("unexpected post address %q", order.PostAddress)
	}

	untouched := RecourseOrder{CountryName: "KSA"}
	untouched.Apply(Address{})
	if untouched.CountryName != "KSA" {
		t.Fatal("expected empty address to leave fields untouched")
	}
}

func TestOutboxMessageBuilders(t *testing.T) {
	msg := NewSMSMessage("0501234567", "hello")
	if msg.Kind != OutboxSMS {
		t.Fatalf("unexpected kind %s", msg.Kind)
	}
	var payload SMSPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Phone != "0501234567" || payload.Message != "hello" {
		t.Fatalf("unexpected payload %+v", payload)
	}

	note := NewNotificationMessage("new order")
	if note.Kind != OutboxNotification || !strings.Contains(string(note.Payload), "new order") {
		t.Fatalf("unexpected notification message %+v", note)
	}
}
