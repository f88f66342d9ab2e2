package sms

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "local with leading zero", in: "0501234567", want: "966501234567"},
		{name: "local without zero", in: "501234567", want: "966501234567"},
		{name: "international", in: "966501234567", want: "966501234567"},
		{name: "formatted", in: "+966 50-123-4567", want: "966501234567"},
		{name: "too short", in: "12345", wantErr: true},
		{name: "ten digits without 05", in: "1234567890", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizePhone(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidPhone) {
					t.Fatalf("expected ErrInvalidPhone, got %q, %v", got, err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Fatalf("expected %q, got %q (err %v)", tc.want, got, err)
			}
		})
	}
}

func TestNewHTTPSenderValidatesURL(t *testing.T) {
	if _, err := NewHTTPSender("://bad-url", Options{}, testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPSender("/relative", Options{}, testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
	sender, err := NewHTTPSender("https://sms.example.com/send", Options{}, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sender.httpClient.Timeout != 10*time.Second {
		t.Fatalf("expected default timeout, got %v", sender.httpClient.Timeout)
	}
}

func TestHTTPSenderSend(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantErr bool
	}{
		{name: "numeric success code", status: http.StatusOK, body: `{"code":1,"message":"Success"}`},
		{name: "string success code", status: http.StatusOK, body: `{"code":"1","message":"Success"}`},
		{name: "M0000 success code", status: http.StatusOK, body: `{"code":"M0000","message":"Success"}`},
		{name: "rejected", status: http.StatusOK, body: `{"code":"M0002","message":"invalid key"}`, wantErr: true},
		{name: "gateway error", status: http.StatusBadGateway, body: `oops`, wantErr: true},
		{name: "malformed body", status: http.StatusOK, body: `not json`, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got request
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("unexpected method %s", r.Method)
				}
				if ct := r.Header.Get("Content-Type"); ct != "application/json" {
					t.Errorf("unexpected content type %q", ct)
				}
				_ = json.NewDecoder(r.Body).Decode(&got)
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			sender, err := NewHTTPSender(srv.URL, Options{Username: "user", APIKey: "key", Sender: "CO"}, testLogger())
			if err != nil {
				t.Fatalf("failed to create sender: %v", err)
			}
			err = sender.Send(context.Background(), "0501234567", "hello")
			if tc.wantErr != (err != nil) {
				t.Fatalf("wantErr=%v, got %v", tc.wantErr, err)
			}
			if got.Numbers != "966501234567" || got.UserName != "user" || got.APIKey != "key" || got.Msg != "hello" {
				t.Fatalf("unexpected payload: %+v", got)
			}
			if got.Encoding != "UTF8" || got.UserSender != "CO" {
				t.Fatalf("unexpected payload: %+v", got)
			}
		})
	}
}

func TestHTTPSenderRejectsInvalidPhoneWithoutCall(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	sender, _ := NewHTTPSender(srv.URL, Options{}, testLogger())
	if err := sender.Send(context.Background(), "123", "hello"); !errors.Is(err, ErrInvalidPhone) {
		t.Fatalf("expected ErrInvalidPhone, got %v", err)
	}
	if called {
		t.Fatal("gateway must not be called for invalid numbers")
	}
}

func TestHTTPSenderTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	sender, _ := NewHTTPSender(srv.URL, Options{Timeout: 50 * time.Millisecond}, testLogger())
	start := time.Now()
	if err := sender.Send(context.Background(), "0501234567", "hello"); err == nil {
		t.Fatal("expected timeout error")
	}
	if time.Since(start) > 2*time.Second {
		t.Fatal("timeout was not applied")
	}
}

func TestLogSender(t *testing.T) {
	sender := NewLogSender(testLogger())
	if err := sender.Send(context.Background(), "0501234567", "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sender.Send(context.Background(), "12", "hello"); !errors.Is(err, ErrInvalidPhone) {
		t.Fatalf("expected ErrInvalidPhone, got %v", err)
	}
}
