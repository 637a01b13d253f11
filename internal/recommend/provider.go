package recommend

import (
	"context"
	"fmt"
)

// Canned replies; the chat never surfaces a raw upstream error.
const (
	ReplyNoMenu   = "Maaf, saat ini belum ada data menu yang tersedia. Silakan coba lagi nanti."
	ReplyFallback = "Maaf, saya tidak bisa memberikan rekomendasi saat ini. Silakan coba lagi."
)

// Provider produces a recommendation reply for a customer message. The
// rule-based and the LLM-backed providers are independent collaborators
// behind this one interface.
type Provider interface {
	Recommend(ctx context.Context, message string, limit int) (string, error)
}

// FormatRupiah renders integer Rupiah with Indonesian thousand separators,
// e.g. 12500 -> "Rp12.500".
func FormatRupiah(amount int64) string {
	digits := fmt.Sprintf("%d", amount)
	if amount < 0 {
		digits = digits[1:]
	}

	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}

	if amount < 0 {
		return "-Rp" + string(out)
	}
	return "Rp" + string(out)
}
