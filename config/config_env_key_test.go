package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"api": map[string]any{
			"baseUrl":        "http://127.0.0.1:8000",
			"requestTimeout": "15s",
		},
		"tokenStore": map[string]any{
			"path": "",
		},
		"stub": map[string]any{
			"accessTokenTtl": "15m",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "API_BASEURL", want: "api.baseUrl"},
		{envKey: "API_REQUESTTIMEOUT", want: "api.requestTimeout"},
		{envKey: "TOKENSTORE_PATH", want: "tokenStore.path"},
		{envKey: "STUB_ACCESSTOKENTTL", want: "stub.accessTokenTtl"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults_FillsTimeouts(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	if cfg.API.BaseURL != defaultBaseURL {
		t.Fatalf("base URL = %q, want %q", cfg.API.BaseURL, defaultBaseURL)
	}
	if cfg.API.RequestTimeout != defaultRequestTimeout {
		t.Fatalf("request timeout = %v, want %v", cfg.API.RequestTimeout, defaultRequestTimeout)
	}
	if cfg.API.ResourceTimeout != defaultResourceTimeout {
		t.Fatalf("resource timeout = %v, want %v", cfg.API.ResourceTimeout, defaultResourceTimeout)
	}
}

func TestApplyDefaults_EmptyTokenStorePathMeansMemoryOnly(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	if cfg.TokenStore.Path != "" {
		t.Fatalf("token store path = %q, want empty (memory-only)", cfg.TokenStore.Path)
	}
}
