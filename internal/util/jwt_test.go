package util

import (
	"testing"
	"time"
)

func TestJWTManagerFavoritesRoundTrip(t *testing.T) {
	key, err := DeriveKey("top-secret", "favorites")
	if err != nil {
		t.Fatalf("DeriveKey returned error: %v", err)
	}
	manager := NewJWTManager(key, "favorites", 0)

	token, err := manager.SignFavorites([]int64{7, 42})
	if err != nil {
		t.Fatalf("SignFavorites returned error: %v", err)
	}
	ids, err := manager.ParseFavorites(token)
	if err != nil {
		t.Fatalf("ParseFavorites returned error: %v", err)
	}
	if len(ids) != 2 || ids[0] != 7 || ids[1] != 42 {
		t.Fatalf("expected [7 42], got %v", ids)
	}

	if _, err := manager.ParseFavorites(token + "x"); err == nil {
		t.Fatalf("expected tampered token to be rejected")
	}
}

func TestJWTManagerRejectsOtherPurpose(t *testing.T) {
	favKey, _ := DeriveKey("top-secret", "favorites")
	flashKey, _ := DeriveKey("top-secret", "flash")
	favorites := NewJWTManager(favKey, "favorites", 0)
	flash := NewJWTManager(flashKey, "flash", time.Minute)

	token, err := flash.SignFlash("error", "Place not found")
	if err != nil {
		t.Fatalf("SignFlash returned error: %v", err)
	}
	if _, err := favorites.ParseFavorites(token); err == nil {
		t.Fatalf("expected flash token to be rejected as favorites")
	}

	claims, err := flash.ParseFlash(token)
	if err != nil {
		t.Fatalf("ParseFlash returned error: %v", err)
	}
	if claims.Kind != "error" || claims.Message != "Place not found" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestJWTManagerRejectsExpiredFlash(t *testing.T) {
	key, _ := DeriveKey("top-secret", "flash")
	manager := NewJWTManager(key, "flash", -time.Minute)

	token, err := manager.SignFlash("success", "done")
	if err != nil {
		t.Fatalf("SignFlash returned error: %v", err)
	}
	if _, err := manager.ParseFlash(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestDeriveKeySeparatesPurposes(t *testing.T) {
	a, err := DeriveKey("secret", "favorites")
	if err != nil {
		t.Fatalf("DeriveKey returned error: %v", err)
	}
	b, _ := DeriveKey("secret", "flash")
	if len(a) != 32 || string(a) == string(b) {
		t.Fatalf("expected distinct 32 byte keys")
	}
	if _, err := DeriveKey("", "flash"); err == nil {
		t.Fatalf("expected empty secret to fail")
	}
}
