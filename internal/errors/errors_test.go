package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeValidation,
				Message: "days must be a number",
			},
			want: "days must be a number",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeInternal,
				Message: "failed to process",
				Cause:   errors.New("underlying error"),
			},
			want: "failed to process: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &AppError{
		Code:    ErrCodeInternal,
		Message: "wrapped error",
		Cause:   cause,
	}

	if unwrapped := err.Unwrap(); !errors.Is(unwrapped, cause) {
		t.Errorf("AppError.Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestConfigurationMissing(t *testing.T) {
	err := ConfigurationMissing("CLOUDFLARE_API_TOKEN", "CLOUDFLARE_ZONE_ID")
	if !IsConfigurationMissing(err) {
		t.Fatalf("expected configuration_missing, got %v", GetCode(err))
	}
	if err.Error() != "missing env vars: CLOUDFLARE_API_TOKEN, CLOUDFLARE_ZONE_ID" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if GetField(err) != "CLOUDFLARE_API_TOKEN,CLOUDFLARE_ZONE_ID" {
		t.Errorf("unexpected field %q", GetField(err))
	}
}

func TestUpstreamHTTP(t *testing.T) {
	err := fmt.Errorf("fetch chunk: %w", UpstreamHTTP(503, " unavailable\n"))
	if !IsUpstream(err) {
		t.Fatal("expected upstream error")
	}
	if GetStatus(err) != 503 {
		t.Errorf("GetStatus() = %d, want 503", GetStatus(err))
	}
	if GetCode(err) != ErrCodeUpstreamHTTP {
		t.Errorf("GetCode() = %v", GetCode(err))
	}
	if got := UpstreamHTTP(500, "").Error(); got != "cloudflare api error: 500" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestUpstreamGraphQL(t *testing.T) {
	err := UpstreamGraphQL("cannot query field clientCityName")
	if !IsUpstream(err) || GetCode(err) != ErrCodeUpstreamGraphQL {
		t.Fatalf("unexpected classification %v", GetCode(err))
	}
	if err.Error() != "cannot query field clientCityName" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if UpstreamGraphQL("  ").Error() != "cloudflare api error" {
		t.Error("blank message should fall back to generic text")
	}
}

func TestSchemaFieldUnsupported(t *testing.T) {
	cause := UpstreamGraphQL("unknown field userAgentOS")
	err := SchemaFieldUnsupported("userAgentOS", cause)
	if !IsSchemaFieldUnsupported(err) {
		t.Fatal("expected schema_field_unsupported")
	}
	if GetField(err) != "userAgentOS" {
		t.Errorf("unexpected field %q", GetField(err))
	}
	if !errors.Is(err, cause) {
		t.Error("cause should be reachable through errors.Is")
	}
}

func TestAuthenticationFailed(t *testing.T) {
	err := AuthenticationFailed()
	if !IsAuthenticationFailed(err) {
		t.Fatal("expected authentication_failed")
	}
	if IsValidation(err) || IsInternal(err) {
		t.Error("authentication failure must not match other codes")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, ErrCodeInternal, "x") != nil {
		t.Fatal("Wrap(nil) should return nil")
	}
	cause := errors.New("boom")
	err := Wrapf(cause, ErrCodeTimeout, "chunk %d", 3)
	if err.Error() != "chunk 3: boom" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if GetCode(err) != ErrCodeTimeout {
		t.Errorf("unexpected code %v", GetCode(err))
	}
}

func TestFromContext(t *testing.T) {
	if FromContext(nil) != nil {
		t.Fatal("nil should map to nil")
	}
	if GetCode(FromContext(fmt.Errorf("x: %w", context.DeadlineExceeded))) != ErrCodeTimeout {
		t.Error("deadline should map to timeout")
	}
	if GetCode(FromContext(context.Canceled)) != ErrCodeCanceled {
		t.Error("cancel should map to canceled")
	}
	plain := errors.New("plain")
	if !errors.Is(FromContext(plain), plain) {
		t.Error("other errors should pass through")
	}
}

func TestGetters_NonAppError(t *testing.T) {
	err := errors.New("plain")
	if GetCode(err) != "" || GetField(err) != "" || GetStatus(err) != 0 {
		t.Error("plain errors should yield zero values")
	}
}
