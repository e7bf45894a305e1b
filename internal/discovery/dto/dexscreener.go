package dto

import (
	"strconv"

	"golang-token-pulse/internal/entity"
)

// TokenProfile is one entry of the latest-token-profiles listing.
type TokenProfile struct {
	URL          string        `json:"url"`
	ChainID      string        `json:"chainId"`
	TokenAddress string        `json:"tokenAddress"`
	Amount       float64       `json:"amount,omitempty"`
	TotalAmount  float64       `json:"totalAmount,omitempty"`
	Icon         string        `json:"icon,omitempty"`
	Header       string        `json:"header,omitempty"`
	OpenGraph    string        `json:"openGraph,omitempty"`
	Description  string        `json:"description,omitempty"`
	Links        []ProfileLink `json:"links,omitempty"`
}

// ProfileLink is a social or informational link on a token profile.
type ProfileLink struct {
	Type  string `json:"type,omitempty"`
	Label string `json:"label,omitempty"`
	URL   string `json:"url"`
}

// PairToken identifies the base or quote token of a pair.
type PairToken struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

// TxWindow holds buy and sell counts for one time window.
type TxWindow struct {
	Buys  int `json:"buys"`
	Sells int `json:"sells"`
}

// PairTxns holds transaction counts per time window. Windows the upstream
// omits stay nil.
type PairTxns struct {
	M5  *TxWindow `json:"m5,omitempty"`
	H1  *TxWindow `json:"h1,omitempty"`
	H6  *TxWindow `json:"h6,omitempty"`
	H24 *TxWindow `json:"h24,omitempty"`
}

// PairVolume holds traded volume in USD per time window.
type PairVolume struct {
	M5  *float64 `json:"m5,omitempty"`
	H1  *float64 `json:"h1,omitempty"`
	H6  *float64 `json:"h6,omitempty"`
	H24 *float64 `json:"h24,omitempty"`
}

// PairPriceChange holds price change percentages per time window.
type PairPriceChange struct {
	M5  *float64 `json:"m5,omitempty"`
	H1  *float64 `json:"h1,omitempty"`
	H6  *float64 `json:"h6,omitempty"`
	H24 *float64 `json:"h24,omitempty"`
}

// PairLiquidity holds pooled liquidity for a pair.
type PairLiquidity struct {
	USD   float64 `json:"usd"`
	Base  float64 `json:"base"`
	Quote float64 `json:"quote"`
}

// Pair is one trading-pair record from the pairs-for-token endpoint.
// Every field the upstream treats as optional is a pointer; defaulting is
// applied once, by the accessor methods below, not in scoring logic.
type Pair struct {
	ChainID     string           `json:"chainId"`
	DexID       string           `json:"dexId"`
	URL         string           `json:"url"`
	PairAddress string           `json:"pairAddress"`
	BaseToken   PairToken        `json:"baseToken"`
	QuoteToken  PairToken        `json:"quoteToken"`
	PriceNative string           `json:"priceNative"`
	PriceUSD    string           `json:"priceUsd"`
	Txns        *PairTxns        `json:"txns,omitempty"`
	Volume      *PairVolume      `json:"volume,omitempty"`
	PriceChange *PairPriceChange `json:"priceChange,omitempty"`
	Liquidity   *PairLiquidity   `json:"liquidity,omitempty"`
	FDV         *float64         `json:"fdv,omitempty"`
	MarketCap   *float64         `json:"marketCap,omitempty"`
}

// LiquidityUSD returns the pooled USD liquidity, 0 when absent.
func (p *Pair) LiquidityUSD() float64 {
	if p.Liquidity == nil {
		return 0
	}
	return p.Liquidity.USD
}

// Volume24h returns the 24h traded volume, 0 when absent.
func (p *Pair) Volume24h() float64 {
	if p.Volume == nil || p.Volume.H24 == nil {
		return 0
	}
	return *p.Volume.H24
}

// PriceChange24h returns the signed 24h price change percent, 0 when absent.
func (p *Pair) PriceChange24h() float64 {
	if p.PriceChange == nil || p.PriceChange.H24 == nil {
		return 0
	}
	return *p.PriceChange.H24
}

// TxCount24h returns buys+sells over 24h; missing counts default to 0.
func (p *Pair) TxCount24h() int {
	if p.Txns == nil || p.Txns.H24 == nil {
		return 0
	}
	return p.Txns.H24.Buys + p.Txns.H24.Sells
}

// MarketCapValue returns the market capitalization and whether the upstream
// reported one at all.
func (p *Pair) MarketCapValue() (float64, bool) {
	if p.MarketCap == nil {
		return 0, false
	}
	return *p.MarketCap, true
}

// PriceUSDValue parses the decimal price string, 0 when absent or malformed.
func (p *Pair) PriceUSDValue() float64 {
	if p.PriceUSD == "" {
		return 0
	}
	v, err := strconv.ParseFloat(p.PriceUSD, 64)
	if err != nil {
		return 0
	}
	return v
}

// ToPairMetrics converts the pair into concrete metrics with all optional
// field defaulting applied.
func (p *Pair) ToPairMetrics() entity.PairMetrics {
	marketCap, _ := p.MarketCapValue()
	return entity.PairMetrics{
		PriceUSD:       p.PriceUSDValue(),
		Volume24h:      p.Volume24h(),
		LiquidityUSD:   p.LiquidityUSD(),
		PriceChange24h: p.PriceChange24h(),
		TxCount24h:     p.TxCount24h(),
		MarketCap:      marketCap,
	}
}

// ToTokenCandidate converts a listing profile into the domain candidate.
func (t *TokenProfile) ToTokenCandidate() entity.TokenCandidate {
	links := make([]entity.TokenLink, 0, len(t.Links))
	for _, l := range t.Links {
		links = append(links, entity.TokenLink{Type: l.Type, Label: l.Label, URL: l.URL})
	}
	return entity.TokenCandidate{
		ChainID:      t.ChainID,
		TokenAddress: t.TokenAddress,
		URL:          t.URL,
		Icon:         t.Icon,
		Header:       t.Header,
		OpenGraph:    t.OpenGraph,
		Description:  t.Description,
		Links:        links,
	}
}
