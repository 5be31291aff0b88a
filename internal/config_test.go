package internal

import (
	"strings"
	"testing"

	"github.com/starford/raido/pkg/dtc"
	"github.com/starford/raido/pkg/dtc/dtchttp"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestTrackerConfig_RequiresActor(t *testing.T) {
	cfg := TrackerConfig{ActorID: "", Difficulty: 8, Enforcement: EnforcementHigh}
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty actor_id should fail validation")
	}
}

func TestTrackerConfig_DifficultyBounds(t *testing.T) {
	cfg := TrackerConfig{ActorID: "svc", Difficulty: 65, Enforcement: EnforcementHigh}
	if err := cfg.Validate(); err == nil {
		t.Fatal("difficulty above 64 should fail validation")
	}
}

func TestTrackerConfig_ZeroDifficultyMeansDefault(t *testing.T) {
	cfg := TrackerConfig{ActorID: "svc", Enforcement: EnforcementHigh}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("zero difficulty should validate (library default applies): %v", err)
	}
	if got := cfg.PoW(); got.Difficulty != 0 {
		t.Errorf("PoW difficulty = %d, want 0 (deferred to dtc default %d)", got.Difficulty, dtc.DefaultDifficulty)
	}
}

func TestTrackerConfig_EmptyEnforcementDefaultsHigh(t *testing.T) {
	cfg := TrackerConfig{ActorID: "svc", Difficulty: 8}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty enforcement should default: %v", err)
	}
	if cfg.Enforcement != EnforcementHigh {
		t.Errorf("enforcement = %q, want %q", cfg.Enforcement, EnforcementHigh)
	}
}

func TestTrackerConfig_InvalidEnforcement(t *testing.T) {
	cfg := TrackerConfig{ActorID: "svc", Difficulty: 8, Enforcement: "strict"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("unknown enforcement mode should fail validation")
	}
}

func TestTrackerConfig_EnforcementLevels(t *testing.T) {
	cases := []struct {
		mode string
		want dtchttp.ValidationLevel
	}{
		{EnforcementNone, dtchttp.ValidationNone},
		{EnforcementLow, dtchttp.ValidationLow},
		{EnforcementHigh, dtchttp.ValidationHigh},
	}
	for _, tc := range cases {
		cfg := TrackerConfig{ActorID: "svc", Difficulty: 8, Enforcement: tc.mode}
		if got := cfg.EnforcementLevel(); got != tc.want {
			t.Errorf("EnforcementLevel(%q) = %d, want %d", tc.mode, got, tc.want)
		}
	}
}

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFullConfig_TrackerValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Tracker.ActorID = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch tracker error")
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}
