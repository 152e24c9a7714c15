package api

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		status   int
		wantCode string
		check    func(error) bool
	}{
		{401, CodeAuthentication, func(err error) bool {
			var e *AuthenticationError
			return errors.As(err, &e)
		}},
		{403, CodeAuthentication, func(err error) bool {
			var e *AuthenticationError
			return errors.As(err, &e)
		}},
		{404, CodeNotFound, func(err error) bool {
			var e *NotFoundError
			return errors.As(err, &e)
		}},
		{400, CodeValidation, func(err error) bool {
			var e *ValidationError
			return errors.As(err, &e)
		}},
		{422, CodeValidation, func(err error) bool {
			var e *ValidationError
			return errors.As(err, &e)
		}},
	}
	for _, tc := range cases {
		err := Classify(tc.status, "boom")
		if !tc.check(err) {
			t.Errorf("status %d classified as %T", tc.status, err)
		}
		var base *APIError
		if !errors.As(err, &base) {
			t.Errorf("status %d: not unwrappable to base error", tc.status)
			continue
		}
		if base.Status != tc.status {
			t.Errorf("status %d: carried status %d", tc.status, base.Status)
		}
		if base.Code != tc.wantCode {
			t.Errorf("status %d: code %q, want %q", tc.status, base.Code, tc.wantCode)
		}
		if err.Error() != "boom" {
			t.Errorf("status %d: message %q", tc.status, err.Error())
		}
	}
}

func TestClassifyUnmatchedFallsBackToBase(t *testing.T) {
	err := Classify(418, "teapot")
	var auth *AuthenticationError
	var val *ValidationError
	var nf *NotFoundError
	var net *NetworkError
	if errors.As(err, &auth) || errors.As(err, &val) || errors.As(err, &nf) || errors.As(err, &net) {
		t.Fatalf("418 matched a specialization: %T", err)
	}
	var base *APIError
	if !errors.As(err, &base) {
		t.Fatalf("418 is not an *APIError: %T", err)
	}
	if base.Status != 418 || base.Message != "teapot" {
		t.Fatalf("unexpected base error: %+v", base)
	}
}

func TestNetworkErrorHasNoStatus(t *testing.T) {
	err := NewNetworkError("down")
	var net *NetworkError
	if !errors.As(err, &net) {
		t.Fatalf("not a NetworkError: %T", err)
	}
	if net.Status != 0 {
		t.Fatalf("network error carries status %d", net.Status)
	}
	if net.Code != CodeNetwork {
		t.Fatalf("network error code %q", net.Code)
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(Classify(404, "missing")) {
		t.Fatal("404 should be not-found")
	}
	if IsNotFound(Classify(500, "boom")) {
		t.Fatal("500 should not be not-found")
	}
}
