package repository

import (
	"fmt"
	"strings"

	"golang-token-pulse/internal/entity"
)

// BuildTokenSentimentPrompt builds the sentiment-analysis prompt for a
// freshly selected token.
func BuildTokenSentimentPrompt(token *entity.RankedToken) string {
	var linksBuilder strings.Builder
	for _, link := range token.Links {
		label := link.Label
		if label == "" {
			label = link.Type
		}
		linksBuilder.WriteString(fmt.Sprintf("- %s: %s\n", label, link.URL))
	}

	promptTemplate := `You are a crypto market analyst. A newly listed token was selected by an automated screener:

Chain: %s
Address: %s
Description: %s
Links:
%s
24h metrics of its main trading pair:
- Price (USD): %.8f
- Volume: %.2f
- Liquidity: %.2f
- Price change: %.2f%%
- Transactions: %d
- Market cap: %.2f

Assess the short-term sentiment for this token. Respond with JSON only, no markdown fences:

{
  "sentiment": "bullish | bearish",
  "confidence": {0.0 - 1.0},
  "arguments": ["{short supporting argument}"]
}`

	return fmt.Sprintf(promptTemplate,
		token.ChainID,
		token.TokenAddress,
		token.Description,
		linksBuilder.String(),
		token.PriceUSD,
		token.Volume24h,
		token.LiquidityUSD,
		token.PriceChange24h,
		token.TxCount24h,
		token.MarketCap,
	)
}
