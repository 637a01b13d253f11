package recommend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Azizyco/WarmindoGenzC/internal/catalog"
)

// TimeOfDayProvider is the deterministic, rule-based recommendation surface.
// It needs no external AI and answers from the live catalog bucketed by the
// local hour.
type TimeOfDayProvider struct {
	catalog catalog.Service
	now     func() time.Time
}

func NewTimeOfDayProvider(catalogSvc catalog.Service) *TimeOfDayProvider {
	return &TimeOfDayProvider{catalog: catalogSvc, now: time.Now}
}

const maxRuleBasedPicks = 5

func (p *TimeOfDayProvider) Recommend(ctx context.Context, _ string, limit int) (string, error) {
	menus, err := p.catalog.Recommendable(ctx, limit)
	if err != nil {
		return "", fmt.Errorf("recommend: failed to fetch menus: %w", err)
	}
	if len(menus) == 0 {
		return ReplyNoMenu, nil
	}

	if len(menus) > maxRuleBasedPicks {
		menus = menus[:maxRuleBasedPicks]
	}

	var b strings.Builder
	b.WriteString(greetingFor(p.now().Hour()))
	b.WriteString("\n")
	for i, m := range menus {
		category := m.CategoryName
		if category == "" {
			category = "Lainnya"
		}
		fmt.Fprintf(&b, "%d. %s - %s (%s)\n", i+1, m.Name, FormatRupiah(m.Price), category)
	}
	return b.String(), nil
}

func greetingFor(hour int) string {
	switch {
	case hour >= 5 && hour < 11:
		return "Selamat pagi! Menu andalan untuk sarapan:"
	case hour >= 11 && hour < 15:
		return "Selamat siang! Rekomendasi makan siang hari ini:"
	case hour >= 15 && hour < 18:
		return "Selamat sore! Cocok untuk menemani santai sore:"
	default:
		return "Selamat malam! Rekomendasi menu malam ini:"
	}
}
