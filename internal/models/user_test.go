package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestUserMarshalJSON(t *testing.T) {
	u := User{
		ID:        42,
		Name:      "alice",
		Email:     "alice@example.com",
		Password:  "secret1",
		Enabled:   true,
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC),
	}
	raw, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	// id сериализуется строкой
	if id, ok := out["id"].(string); !ok || id != "42" {
		t.Errorf("id = %v, want string \"42\"", out["id"])
	}
	for _, key := range []string{"name", "email", "password", "enabled", "createdAt", "updatedAt"} {
		if _, ok := out[key]; !ok {
			t.Errorf("missing key %q in %s", key, raw)
		}
	}
	if strings.Contains(string(raw), "created_at") {
		t.Errorf("user JSON uses snake_case: %s", raw)
	}
}

func TestUserPatchValidate(t *testing.T) {
	t.Run("empty patch rejected", func(t *testing.T) {
		p := UserPatch{}
		if err := p.Validate(); err == nil {
			t.Error("Validate() = nil, want error")
		}
	})
	t.Run("present field validated", func(t *testing.T) {
		bad := "nope"
		p := UserPatch{Email: &bad}
		if err := p.Validate(); err == nil {
			t.Error("Validate() = nil, want error for malformed email")
		}
	})
	t.Run("single good field ok", func(t *testing.T) {
		name := "bob"
		p := UserPatch{Name: &name}
		if err := p.Validate(); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	})
	t.Run("enabled alone ok", func(t *testing.T) {
		e := false
		p := UserPatch{Enabled: &e}
		if err := p.Validate(); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	})
}
