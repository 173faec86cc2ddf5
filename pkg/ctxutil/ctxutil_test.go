package ctxutil

import (
	"context"
	"testing"
)

func TestWithIdentity_And_IdentityFromCtx(t *testing.T) {
	t.Parallel()

	want := Identity{Subject: "admin@example.com", Admin: true}
	ctx := WithIdentity(context.Background(), want)

	got, ok := IdentityFromCtx(ctx)
	if !ok {
		t.Fatal("expected ok=true for valid identity")
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if !IsAdmin(ctx) {
		t.Fatal("expected IsAdmin=true")
	}
}

func TestIdentityFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	_, ok := IdentityFromCtx(context.Background())
	if ok {
		t.Fatal("expected ok=false for empty context")
	}
	if IsAdmin(context.Background()) {
		t.Fatal("expected IsAdmin=false for empty context")
	}
}

func TestIdentityFromCtx_BlankSubject(t *testing.T) {
	t.Parallel()

	ctx := WithIdentity(context.Background(), Identity{Admin: true})

	_, ok := IdentityFromCtx(ctx)
	if ok {
		t.Fatal("expected ok=false for blank subject")
	}
}

func TestIdentityFromCtx_WrongType(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), ctxKey("identity"), "not-an-identity")

	_, ok := IdentityFromCtx(ctx)
	if ok {
		t.Fatal("expected ok=false for wrong type")
	}
}

func TestIsAdmin_NonAdminIdentity(t *testing.T) {
	t.Parallel()

	ctx := WithIdentity(context.Background(), Identity{Subject: "viewer@example.com"})
	if IsAdmin(ctx) {
		t.Fatal("expected IsAdmin=false for non-admin identity")
	}
}

func TestWithRequestID_And_RequestIDFromCtx(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-123")

	got := RequestIDFromCtx(ctx)
	if got != "req-123" {
		t.Fatalf("expected req-123, got %s", got)
	}
}

func TestRequestIDFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	got := RequestIDFromCtx(context.Background())
	if got != "" {
		t.Fatalf("expected empty string, got %s", got)
	}
}
