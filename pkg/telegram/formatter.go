package telegram

import (
	"fmt"
	"strings"

	"golang-token-pulse/internal/entity"
)

// FormatTokenReport formats a discovery report into a Markdown message for
// Telegram.
func FormatTokenReport(report *entity.TokenReport) string {
	token := report.Token

	var b strings.Builder
	b.WriteString("🚀 *Token Discovery Report* 🚀\n\n")
	b.WriteString(fmt.Sprintf("🔗 *Chain:* %s\n", token.ChainID))
	b.WriteString(fmt.Sprintf("📜 *Address:* `%s`\n", token.TokenAddress))
	if token.Description != "" {
		b.WriteString(fmt.Sprintf("💬 *About:* %s\n", token.Description))
	}
	if token.URL != "" {
		b.WriteString(fmt.Sprintf("🌐 [DexScreener](%s)\n", token.URL))
	}

	b.WriteString("\n📊 *24h Metrics*\n")
	b.WriteString(fmt.Sprintf("💰 Price: $%.8f\n", token.PriceUSD))
	b.WriteString(fmt.Sprintf("📈 Volume: $%s\n", formatAmount(token.Volume24h)))
	b.WriteString(fmt.Sprintf("💧 Liquidity: $%s\n", formatAmount(token.LiquidityUSD)))
	b.WriteString(fmt.Sprintf("🏦 Market Cap: $%s\n", formatAmount(token.MarketCap)))
	b.WriteString(fmt.Sprintf("🔄 Transactions: %d\n", token.TxCount24h))

	changeIcon := "📉"
	if token.PriceChange24h > 0 {
		changeIcon = "📈"
	}
	b.WriteString(fmt.Sprintf("%s Change: %.2f%%\n", changeIcon, token.PriceChange24h))

	if s := report.Sentiment; s != nil {
		var sentimentIcon string
		switch strings.ToLower(s.Sentiment) {
		case "bullish":
			sentimentIcon = "😊"
		case "bearish":
			sentimentIcon = "😟"
		default:
			sentimentIcon = "😐"
		}
		b.WriteString(fmt.Sprintf("\n%s *Sentiment:* %s\n", sentimentIcon, s.Sentiment))
		b.WriteString(fmt.Sprintf("🎯 *Confidence:* %.0f%%\n", s.Confidence*100))
		for _, arg := range s.Arguments {
			b.WriteString(fmt.Sprintf("• %s\n", arg))
		}
	}

	return b.String()
}

// formatAmount renders large USD amounts compactly (12.3K, 4.5M).
func formatAmount(v float64) string {
	switch {
	case v >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", v/1_000_000_000)
	case v >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%.1fK", v/1_000)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
