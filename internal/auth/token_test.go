package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := Signer{Secret: []byte("k"), TTL: time.Hour, Now: func() time.Time { return now }}

	raw, err := s.Sign(9, "0900")
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}
	claims, err := s.Verify(raw)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.UserID != 9 || claims.Mobile != "0900" || claims.Subject != "9" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestVerifyRejects(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := Signer{Secret: []byte("k"), TTL: time.Hour, Now: func() time.Time { return now }}
	raw, _ := s.Sign(9, "0900")

	later := s
	later.Now = func() time.Time { return now.Add(2 * time.Hour) }
	if _, err := later.Verify(raw); err == nil {
		t.Fatalf("expired token should fail")
	}

	other := s
	other.Secret = []byte("other")
	if _, err := other.Verify(raw); err == nil {
		t.Fatalf("token signed with another secret should fail")
	}

	noMobile, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: 1}).SignedString(s.Secret)
	if _, err := s.Verify(noMobile); err == nil {
		t.Fatalf("token without mobile should fail")
	}

	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Mobile: "0900"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if _, err := s.Verify(none); err == nil {
		t.Fatalf("unsigned token should fail")
	}
}
