package geocode

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/procurement/internal/config"
	"github.com/polkiloo/procurement/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewHTTPClientValidatesURL(t *testing.T) {
	if _, err := NewHTTPClient("://bad-url", "ua", time.Second, testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPClient("/relative", "ua", time.Second, testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
	client, err := NewHTTPClient("https://geo.example.com", "ua", 0, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.timeout != 5*time.Second {
		t.Fatalf("expected default timeout, got %v", client.timeout)
	}
}

func TestReverseMapsAddress(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		wantCity string
	}{
		{
			name:     "city",
			body:     `{"display_name":"King Fahd Rd, Riyadh, Saudi Arabia","address":{"road":"King Fahd Rd","city":"Riyadh","town":"Other","country":"Saudi Arabia","postcode":"12211"}}`,
			wantCity: "Riyadh",
		},
		{
			name:     "town fallback",
			body:     `{"display_name":"x","address":{"road":"Main","town":"Diriyah","village":"V","country":"Saudi Arabia"}}`,
			wantCity: "Diriyah",
		},
		{
			name:     "village fallback",
			body:     `{"display_name":"x","address":{"village":"Al Ula","country":"Saudi Arabia"}}`,
			wantCity: "Al Ula",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/reverse" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				q := r.URL.Query()
				if q.Get("format") != "json" || q.Get("lat") != "24.71" || q.Get("lon") != "46.67" {
					t.Errorf("unexpected query %s", r.URL.RawQuery)
				}
				if ua := r.Header.Get("User-Agent"); ua != "procurement-test" {
					t.Errorf("unexpected user agent %q", ua)
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client, err := NewHTTPClient(srv.URL, "procurement-test", time.Second, testLogger())
			if err != nil {
				t.Fatalf("failed to create client: %v", err)
			}
			addr, err := client.Reverse(context.Background(), model.GeoPoint{Longitude: 46.67, Latitude: 24.71})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if addr.City != tc.wantCity {
				t.Fatalf("expected city %q, got %q", tc.wantCity, addr.City)
			}
			if addr.Country != "Saudi Arabia" {
				t.Fatalf("unexpected country %q", addr.Country)
			}
		})
	}
}

func TestReverseErrors(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		client, _ := NewHTTPClient(srv.URL, "ua", time.Second, testLogger())
		if _, err := client.Reverse(context.Background(), model.GeoPoint{Longitude: 1, Latitude: 1}); err == nil {
			t.Fatal("expected error for non-200 status")
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>"))
		}))
		defer srv.Close()

		client, _ := NewHTTPClient(srv.URL, "ua", time.Second, testLogger())
		if _, err := client.Reverse(context.Background(), model.GeoPoint{Longitude: 1, Latitude: 1}); err == nil {
			t.Fatal("expected decode error")
		}
	})

	t.Run("deadline", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		client, _ := NewHTTPClient(srv.URL, "ua", 50*time.Millisecond, testLogger())
		start := time.Now()
		if _, err := client.Reverse(context.Background(), model.GeoPoint{Longitude: 1, Latitude: 1}); err == nil {
			t.Fatal("expected deadline error")
		}
		if time.Since(start) > 2*time.Second {
			t.Fatal("deadline was not applied")
		}
	})
}

func TestModuleProvidesGeocoder(t *testing.T) {
	var geocoder Geocoder
	app := fx.New(
		fx.NopLogger,
		fx.Supply(&config.Config{Geocoder: config.GeocoderConfig{URL: "https://geo.example.com", UserAgent: "ua", Timeout: time.Second}}),
		fx.Provide(testLogger),
		Module,
		fx.Populate(&geocoder),
	)
	if err := app.Err(); err != nil {
		t.Fatalf("unexpected fx error: %v", err)
	}
	if _, ok := geocoder.(*HTTPClient); !ok {
		t.Fatalf("unexpected geocoder %T", geocoder)
	}
}
