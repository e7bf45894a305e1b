package entity

import "time"

// TokenLink is a social or informational link attached to a token profile.
type TokenLink struct {
	Type  string `json:"type,omitempty"`
	Label string `json:"label,omitempty"`
	URL   string `json:"url"`
}

// TokenCandidate is a token surfaced by the latest-profiles listing, prior to
// validation. The descriptive metadata is passed through untouched.
type TokenCandidate struct {
	ChainID      string      `json:"chainId"`
	TokenAddress string      `json:"tokenAddress"`
	URL          string      `json:"url,omitempty"`
	Icon         string      `json:"icon,omitempty"`
	Header       string      `json:"header,omitempty"`
	OpenGraph    string      `json:"openGraph,omitempty"`
	Description  string      `json:"description,omitempty"`
	Links        []TokenLink `json:"links,omitempty"`
}

// PairMetrics holds the main-pair metrics used for scoring. All defaulting of
// optional upstream fields happens at the parse boundary, so values here are
// always concrete.
type PairMetrics struct {
	PriceUSD       float64 `json:"price"`
	Volume24h      float64 `json:"volume24h"`
	LiquidityUSD   float64 `json:"liquidity"`
	PriceChange24h float64 `json:"priceChange24h"`
	TxCount24h     int     `json:"txCount24h"`
	MarketCap      float64 `json:"marketCap"`
}

// RankedToken is a validated candidate together with its main-pair metrics.
type RankedToken struct {
	TokenCandidate
	PairMetrics
}

// SentimentAnalysis is the outcome of the LLM sentiment pass over a token.
type SentimentAnalysis struct {
	Sentiment  string   `json:"sentiment"`
	Confidence float64  `json:"confidence"`
	Arguments  []string `json:"arguments"`
}

// TokenReport is the per-run hand-off to downstream consumers.
type TokenReport struct {
	Token       RankedToken        `json:"token"`
	Sentiment   *SentimentAnalysis `json:"sentiment,omitempty"`
	GeneratedAt time.Time          `json:"generatedAt"`
}
