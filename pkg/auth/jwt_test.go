package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestJWTService(t *testing.T, cfg JWTConfig) *JWTService {
	t.Helper()
	svc, err := NewJWTService(cfg)
	if err != nil {
		t.Fatalf("NewJWTService() error = %v", err)
	}
	return svc
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService(t, JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		Issuer:     "kyb-test",
		Expiration: 15 * time.Minute,
	})
	userID := uuid.New()
	tenantID := uuid.New()

	tokenString, err := svc.GenerateToken(userID, tenantID, "Ana Reyes", []string{RoleComplianceOfficer})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := svc.ValidateToken(tokenString)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %v, want %v", claims.UserID, userID)
	}
	if claims.TenantID != tenantID {
		t.Errorf("TenantID = %v, want %v", claims.TenantID, tenantID)
	}
	if !claims.HasRole(RoleComplianceOfficer) {
		t.Errorf("Roles = %v, want %s", claims.Roles, RoleComplianceOfficer)
	}
	if claims.Actor() != "Ana Reyes" {
		t.Errorf("Actor() = %q, want %q", claims.Actor(), "Ana Reyes")
	}
}

func TestValidateToken_RSA(t *testing.T) {
	privPEM, pubPEM, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() error = %v", err)
	}
	issuer := newTestJWTService(t, JWTConfig{PrivateKeyPEM: string(privPEM), Issuer: "kyb", Expiration: time.Minute})
	validator := newTestJWTService(t, JWTConfig{PublicKeyPEM: string(pubPEM), Issuer: "kyb"})

	token, err := issuer.GenerateToken(uuid.New(), uuid.New(), "", []string{RoleAuditor})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if _, err := validator.ValidateToken(token); err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}

	if _, err := validator.GenerateToken(uuid.New(), uuid.New(), "", nil); !errors.Is(err, ErrValidationOnly) {
		t.Errorf("expected ErrValidationOnly, got %v", err)
	}
}

func TestValidateToken_Rejections(t *testing.T) {
	good := JWTConfig{Secret: "secret-one", Issuer: "kyb-test", Expiration: 15 * time.Minute}

	tests := []struct {
		name      string
		issuer    JWTConfig
		validator JWTConfig
	}{
		{
			name:      "expired",
			issuer:    JWTConfig{Secret: "secret-one", Issuer: "kyb-test", Expiration: -time.Hour},
			validator: good,
		},
		{
			name:      "wrong signature",
			issuer:    good,
			validator: JWTConfig{Secret: "secret-two", Issuer: "kyb-test"},
		},
		{
			name:      "wrong issuer",
			issuer:    JWTConfig{Secret: "secret-one", Issuer: "someone-else", Expiration: time.Minute},
			validator: good,
		},
		{
			name:      "expired beyond leeway",
			issuer:    JWTConfig{Secret: "secret-one", Issuer: "kyb-test", Expiration: -2 * time.Minute},
			validator: JWTConfig{Secret: "secret-one", Issuer: "kyb-test", Leeway: time.Minute},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := newTestJWTService(t, tt.issuer).GenerateToken(uuid.New(), uuid.New(), "", []string{RoleMerchant})
			if err != nil {
				t.Fatalf("GenerateToken() error = %v", err)
			}
			if _, err := newTestJWTService(t, tt.validator).ValidateToken(token); err == nil {
				t.Fatal("ValidateToken() expected error, got nil")
			}
		})
	}
}

func TestValidateToken_LeewayToleratesSkew(t *testing.T) {
	token, err := newTestJWTService(t, JWTConfig{Secret: "secret-one", Expiration: -10 * time.Second}).
		GenerateToken(uuid.New(), uuid.New(), "", []string{RoleAPIClient})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if _, err := newTestJWTService(t, JWTConfig{Secret: "secret-one", Leeway: time.Minute}).ValidateToken(token); err != nil {
		t.Fatalf("ValidateToken() within leeway error = %v", err)
	}
}

func TestValidateToken_RejectsAlgorithmSwitch(t *testing.T) {
	_, pubPEM, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() error = %v", err)
	}
	// An HS256 token signed with the public key bytes must not pass an RSA validator.
	forger := newTestJWTService(t, JWTConfig{Secret: string(pubPEM), Expiration: time.Minute})
	token, err := forger.GenerateToken(uuid.New(), uuid.New(), "", []string{RoleAdmin})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	validator := newTestJWTService(t, JWTConfig{PublicKeyPEM: string(pubPEM)})
	if _, err := validator.ValidateToken(token); err == nil {
		t.Fatal("ValidateToken() accepted an HS256 token on an RS256 validator")
	}
}

func TestValidateToken_RequiresUserAndRoles(t *testing.T) {
	svc := newTestJWTService(t, JWTConfig{Secret: "secret-one", Expiration: time.Minute})

	tests := []struct {
		name   string
		userID uuid.UUID
		roles  []string
	}{
		{"no roles", uuid.New(), nil},
		{"no user", uuid.Nil, []string{RoleMerchant}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := svc.GenerateToken(tt.userID, uuid.New(), "", tt.roles)
			if err != nil {
				t.Fatalf("GenerateToken() error = %v", err)
			}
			if _, err := svc.ValidateToken(token); !errors.Is(err, ErrIncompleteClaims) {
				t.Errorf("ValidateToken() error = %v, want ErrIncompleteClaims", err)
			}
		})
	}
}

func TestNewJWTService_RequiresKey(t *testing.T) {
	if _, err := NewJWTService(JWTConfig{}); err == nil {
		t.Fatal("expected error without any key material")
	}
}

func TestHasAnyRole(t *testing.T) {
	claims := Claims{Roles: []string{RoleAdmin, RoleAuditor}}

	if !claims.HasAnyRole(RoleMerchant, RoleAuditor) {
		t.Error("HasAnyRole(merchant, auditor) = false, want true")
	}
	if claims.HasAnyRole(RoleMerchant, RoleAPIClient) {
		t.Error("HasAnyRole(merchant, api_client) = true, want false")
	}
	if claims.HasAnyRole() {
		t.Error("HasAnyRole() with no roles = true, want false")
	}
}

func TestClaimsFromContext(t *testing.T) {
	if _, ok := ClaimsFromContext(context.Background()); ok {
		t.Error("ClaimsFromContext() ok = true for empty context, want false")
	}

	expected := &Claims{UserID: uuid.New(), Roles: []string{RoleComplianceOfficer}}
	got, ok := ClaimsFromContext(ContextWithClaims(context.Background(), expected))
	if !ok {
		t.Fatal("ClaimsFromContext() ok = false, want true")
	}
	if got.UserID != expected.UserID {
		t.Errorf("ClaimsFromContext().UserID = %v, want %v", got.UserID, expected.UserID)
	}
}
