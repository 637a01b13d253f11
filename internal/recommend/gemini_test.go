package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Azizyco/WarmindoGenzC/internal/catalog"
	"github.com/Azizyco/WarmindoGenzC/internal/config"
)

type stubCatalog struct {
	menus []catalog.MenuItem
	err   error
}

func (s *stubCatalog) ListMenus(ctx context.Context, filter catalog.Filter) ([]catalog.MenuItem, error) {
	return s.menus, s.err
}

func (s *stubCatalog) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	return nil, nil
}

func (s *stubCatalog) Recommendable(ctx context.Context, limit int) ([]catalog.MenuItem, error) {
	return s.menus, s.err
}

func menuFixture() []catalog.MenuItem {
	return []catalog.MenuItem{
		{ID: uuid.Must(uuid.NewV4()), Name: "Indomie Goreng", CategoryName: "Makanan", Price: 12000, Description: "Mie goreng spesial"},
		{ID: uuid.Must(uuid.NewV4()), Name: "Es Teh", Price: 5000},
	}
}

func geminiReply(text string) string {
	resp := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	}
	raw, _ := json.Marshal(resp)
	return string(raw)
}

func testProvider(catalogSvc catalog.Service, serverURL string) *GeminiProvider {
	p := NewGeminiProvider(catalogSvc, config.GeminiConfig{APIKey: "test-key", Model: "gemini-1.5-flash"})
	if serverURL != "" {
		p.baseURL = serverURL
	}
	return p
}

func TestFormatRupiah(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{amount: 0, want: "Rp0"},
		{amount: 500, want: "Rp500"},
		{amount: 5000, want: "Rp5.000"},
		{amount: 12500, want: "Rp12.500"},
		{amount: 1250000, want: "Rp1.250.000"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRupiah(tt.amount))
		})
	}
}

func TestGeminiProvider_Recommend(t *testing.T) {
	ctx := context.Background()

	t.Run("empty_catalog_skips_api", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
		}))
		defer server.Close()

		p := testProvider(&stubCatalog{menus: nil}, server.URL)
		reply, err := p.Recommend(ctx, "menu pedas dong", 15)

		assert.NoError(t, err)
		assert.Equal(t, ReplyNoMenu, reply)
		assert.Zero(t, calls)
	})

	t.Run("missing_api_key", func(t *testing.T) {
		p := NewGeminiProvider(&stubCatalog{menus: menuFixture()}, config.GeminiConfig{})
		_, err := p.Recommend(ctx, "menu pedas dong", 15)
		assert.Error(t, err)
	})

	t.Run("success_returns_model_text", func(t *testing.T) {
		var gotBody geminiRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			fmt.Fprint(w, geminiReply("1. Indomie Goreng - Rp12.000 (Makanan)"))
		}))
		defer server.Close()

		p := testProvider(&stubCatalog{menus: menuFixture()}, server.URL)
		reply, err := p.Recommend(ctx, "menu pedas dong", 15)

		assert.NoError(t, err)
		assert.Equal(t, "1. Indomie Goreng - Rp12.000 (Makanan)", reply)

		assert.Len(t, gotBody.Contents, 2)
		assert.Contains(t, gotBody.Contents[0].Parts[0].Text, "Indomie Goreng")
		assert.Equal(t, "menu pedas dong", gotBody.Contents[1].Parts[0].Text)
		assert.Equal(t, 0.7, gotBody.GenerationConfig.Temperature)
		assert.Equal(t, 500, gotBody.GenerationConfig.MaxOutputTokens)
	})

	t.Run("non_success_status_is_upstream_error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		p := testProvider(&stubCatalog{menus: menuFixture()}, server.URL)
		_, err := p.Recommend(ctx, "menu pedas dong", 15)

		assert.ErrorIs(t, err, ErrUpstream)
	})

	t.Run("empty_candidates_fall_back_to_canned_reply", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"candidates":[]}`)
		}))
		defer server.Close()

		p := testProvider(&stubCatalog{menus: menuFixture()}, server.URL)
		reply, err := p.Recommend(ctx, "menu pedas dong", 15)

		assert.NoError(t, err)
		assert.Equal(t, ReplyFallback, reply)
	})
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt(menuFixture())

	assert.Contains(t, prompt, "DAFTAR MENU TERSEDIA (2 item):")
	assert.Contains(t, prompt, "• Indomie Goreng (Makanan): Rp12.000 - Mie goreng spesial")
	// Uncategorized items get the catch-all bucket, no dangling description.
	assert.Contains(t, prompt, "• Es Teh (Lainnya): Rp5.000")
	assert.False(t, strings.Contains(prompt, "Rp5.000 - \n"))
}

func TestGreetingFor(t *testing.T) {
	assert.Contains(t, greetingFor(7), "pagi")
	assert.Contains(t, greetingFor(12), "siang")
	assert.Contains(t, greetingFor(16), "sore")
	assert.Contains(t, greetingFor(21), "malam")
	assert.Contains(t, greetingFor(3), "malam")
}
