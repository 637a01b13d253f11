package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Azizyco/WarmindoGenzC/internal/catalog"
	"github.com/Azizyco/WarmindoGenzC/internal/config"
)

// ErrUpstream covers any non-success response from the generation API. One
// attempt per request; callers degrade to a canned reply.
var ErrUpstream = errors.New("recommend: generation api failed")

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

const promptTemplate = `Kamu adalah asisten rekomendasi menu untuk restoran WarmindoGenz.

ATURAN PENTING:
1. Jawab SELALU dalam Bahasa Indonesia yang sopan dan ramah
2. HANYA rekomendasikan menu yang ada di daftar di bawah
3. JANGAN mengarang atau menyebutkan menu yang tidak ada di daftar
4. Berikan maksimal 5 rekomendasi
5. Format jawaban:
   1. Nama Menu - RpHarga (Kategori)
   2. ...
6. Jika user tanya di luar menu (misal "cuaca"), jawab: "Maaf, aku hanya bisa bantu rekomendasi menu WarmindoGenz."

DAFTAR MENU TERSEDIA (%d item):
%s

Sekarang bantu customer dengan pertanyaan mereka tentang menu.`

type GeminiProvider struct {
	catalog catalog.Service
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewGeminiProvider(catalogSvc catalog.Service, cfg config.GeminiConfig) *GeminiProvider {
	return &GeminiProvider{
		catalog: catalogSvc,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// request/response shapes for the generateContent endpoint.
type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		Temperature     float64 `json:"temperature"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Recommend fetches the menu context, builds the constrained instruction
// block, and makes a single call to the generation API. An empty catalog
// short-circuits to the canned no-menu reply without contacting the API.
func (p *GeminiProvider) Recommend(ctx context.Context, message string, limit int) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("recommend: GEMINI_API_KEY not configured")
	}

	menus, err := p.catalog.Recommendable(ctx, limit)
	if err != nil {
		return "", fmt.Errorf("recommend: failed to fetch menu data: %w", err)
	}
	if len(menus) == 0 {
		return ReplyNoMenu, nil
	}

	systemPrompt := buildPrompt(menus)

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: systemPrompt}}},
			{Role: "user", Parts: []geminiPart{{Text: message}}},
		},
	}
	reqBody.GenerationConfig.Temperature = 0.7
	reqBody.GenerationConfig.MaxOutputTokens = 500

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("recommend: failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.baseURL, p.model, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("recommend: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("recommend: generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Error().Int("status", resp.StatusCode).Msg("recommend: generation api returned non-success")
		return "", fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	reply := extractReply(out)
	if reply == "" {
		return ReplyFallback, nil
	}
	return reply, nil
}

// buildPrompt renders the bounded menu context block inside the fixed
// instruction template.
func buildPrompt(menus []catalog.MenuItem) string {
	lines := make([]string, 0, len(menus))
	for _, m := range menus {
		category := m.CategoryName
		if category == "" {
			category = "Lainnya"
		}
		line := fmt.Sprintf("• %s (%s): %s", m.Name, category, FormatRupiah(m.Price))
		if m.Description != "" {
			line += " - " + m.Description
		}
		lines = append(lines, line)
	}
	return fmt.Sprintf(promptTemplate, len(menus), strings.Join(lines, "\n"))
}

func extractReply(resp geminiResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return ""
	}
	return strings.TrimSpace(parts[0].Text)
}
