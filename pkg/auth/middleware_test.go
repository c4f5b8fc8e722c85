package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestAuthorize(t *testing.T) {
	officer := &Claims{UserID: uuid.New(), Roles: []string{RoleComplianceOfficer}}

	tests := []struct {
		name     string
		ctx      context.Context
		roles    []string
		wantCode codes.Code
	}{
		{"no claims", context.Background(), []string{RoleAdmin}, codes.Unauthenticated},
		{"missing role", ContextWithClaims(context.Background(), officer), []string{RoleAdmin}, codes.PermissionDenied},
		{"allowed", ContextWithClaims(context.Background(), officer), []string{RoleAdmin, RoleComplianceOfficer}, codes.OK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := Authorize(tt.ctx, tt.roles...)
			if got := status.Code(err); got != tt.wantCode {
				t.Fatalf("Authorize() code = %v, want %v", got, tt.wantCode)
			}
			if tt.wantCode == codes.OK && claims != officer {
				t.Errorf("Authorize() claims = %v, want %v", claims, officer)
			}
		})
	}
}

func TestClaims_CanAccessTenant(t *testing.T) {
	own := uuid.New()
	other := uuid.New()

	merchant := Claims{TenantID: own, Roles: []string{RoleMerchant}}
	if !merchant.CanAccessTenant(own) {
		t.Error("merchant CanAccessTenant(own) = false, want true")
	}
	if merchant.CanAccessTenant(other) {
		t.Error("merchant CanAccessTenant(other) = true, want false")
	}

	auditor := Claims{TenantID: own, Roles: []string{RoleAuditor}}
	if !auditor.CanAccessTenant(other) {
		t.Error("auditor CanAccessTenant(other) = false, want true")
	}
}

func TestUnaryAuthInterceptor(t *testing.T) {
	svc := newTestJWTService(t, JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		Issuer:     "kyb-test",
		Expiration: time.Minute,
	})
	token, err := svc.GenerateToken(uuid.New(), uuid.New(), "Ana Reyes", []string{RoleAdmin})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	interceptor := UnaryAuthInterceptor(svc, "/grpc.health.v1.Health/Check")
	var seen *Claims
	handler := func(ctx context.Context, _ any) (any, error) {
		seen, _ = ClaimsFromContext(ctx)
		return "ok", nil
	}
	withAuth := func(value string) context.Context {
		return metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", value))
	}

	tests := []struct {
		name       string
		ctx        context.Context
		method     string
		wantCode   codes.Code
		wantClaims bool
	}{
		{"public method needs no token", context.Background(), "/grpc.health.v1.Health/Check", codes.OK, false},
		{"no metadata", context.Background(), "/bib.kyb.v1.KYBService/GetMerchant", codes.Unauthenticated, false},
		{"no header", metadata.NewIncomingContext(context.Background(), metadata.MD{}), "/bib.kyb.v1.KYBService/GetMerchant", codes.Unauthenticated, false},
		{"wrong scheme", withAuth("Basic " + token), "/bib.kyb.v1.KYBService/GetMerchant", codes.Unauthenticated, false},
		{"empty bearer", withAuth("Bearer "), "/bib.kyb.v1.KYBService/GetMerchant", codes.Unauthenticated, false},
		{"garbage token", withAuth("Bearer not-a-jwt"), "/bib.kyb.v1.KYBService/GetMerchant", codes.Unauthenticated, false},
		{"valid token", withAuth("Bearer " + token), "/bib.kyb.v1.KYBService/GetMerchant", codes.OK, true},
		{"scheme is case insensitive", withAuth("bearer " + token), "/bib.kyb.v1.KYBService/GetMerchant", codes.OK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			_, err := interceptor(tt.ctx, nil, &grpc.UnaryServerInfo{FullMethod: tt.method}, handler)
			if got := status.Code(err); got != tt.wantCode {
				t.Fatalf("interceptor code = %v, want %v (err %v)", got, tt.wantCode, err)
			}
			if (seen != nil) != tt.wantClaims {
				t.Errorf("claims in handler context = %v, want present=%v", seen, tt.wantClaims)
			}
			if tt.wantClaims && seen.Actor() != "Ana Reyes" {
				t.Errorf("Actor() = %q, want %q", seen.Actor(), "Ana Reyes")
			}
		})
	}
}
