package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/coauto/coauto-backend/pkg/errors"
)

type vehiclePayload struct {
	Model string   `json:"model" validate:"required,max=30"`
	Brand string   `json:"brand" validate:"required,max=30"`
	Year  int      `json:"year" validate:"gte=0"`
	Urls  []string `json:"urls" validate:"omitempty,dive,url"`
}

type commentPayload struct {
	Comment string `json:"comment" validate:"required,max=100,alphanumspace"`
}

func decode(t *testing.T, body string, dest any) error {
	t.Helper()
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	return DecodeJSONBody(req, dest)
}

func TestDecodeJSONBodyValid(t *testing.T) {
	var payload vehiclePayload
	err := decode(t, `{"model":"Corolla","brand":"Toyota","year":2019}`, &payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Model != "Corolla" || payload.Year != 2019 {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestDecodeJSONBodyMalformed(t *testing.T) {
	var payload vehiclePayload
	err := decode(t, `{"model":`, &payload)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if typed.Message() != "invalid request body" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestDecodeJSONBodyTypeMismatchNamesField(t *testing.T) {
	var payload vehiclePayload
	err := decode(t, `{"model":"Corolla","brand":"Toyota","year":"twenty"}`, &payload)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %#v", typed.Details())
	}
	if details["year"] != "must be a number" {
		t.Fatalf("unexpected detail %q", details["year"])
	}
}

func TestDecodeJSONBodyUnknownField(t *testing.T) {
	var payload vehiclePayload
	err := decode(t, `{"model":"Corolla","brand":"Toyota","color":"red"}`, &payload)
	if pkgerrors.As(err) == nil {
		t.Fatalf("expected rejection of unknown field, got %v", err)
	}
}

func TestDecodeJSONBodyTagFailures(t *testing.T) {
	var payload vehiclePayload
	err := decode(t, `{"brand":"`+strings.Repeat("x", 31)+`"}`, &payload)
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %#v", typed.Details())
	}
	if details["model"] != "is required" {
		t.Fatalf("unexpected model detail %q", details["model"])
	}
	if details["brand"] != "must be at most 30" {
		t.Fatalf("unexpected brand detail %q", details["brand"])
	}
}

func TestDecodeJSONBodyURLEntries(t *testing.T) {
	var payload vehiclePayload
	err := decode(t, `{"model":"Corolla","brand":"Toyota","urls":["not a url"]}`, &payload)
	if pkgerrors.As(err) == nil {
		t.Fatalf("expected url validation error, got %v", err)
	}
}

func TestAlphanumSpaceComment(t *testing.T) {
	var payload commentPayload
	if err := decode(t, `{"comment":"great car 10 of 10"}`, &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := decode(t, `{"comment":"great; drop table"}`, &payload)
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected validation error, got %v", err)
	}
	details := typed.Details().(map[string]string)
	if details["comment"] != "must contain only letters, numbers and spaces" {
		t.Fatalf("unexpected comment detail %q", details["comment"])
	}
}
