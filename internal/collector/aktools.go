package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"TrendSentry/internal/model"
)

// AkToolsFetcher implements Fetcher against an aktools-style HTTP bridge
// that exposes the akshare A-share endpoints as REST.
type AkToolsFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewAkToolsFetcher creates a new fetcher with optional proxy support.
func NewAkToolsFetcher(baseURL, apiKey, proxyURL string) *AkToolsFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &AkToolsFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *AkToolsFetcher) Name() string { return "aktools" }

// IsIndexSymbol reports whether an exchange-prefixed A-share code names
// an index (sh000xxx, sz399xxx) rather than a stock.
func IsIndexSymbol(symbol string) bool {
	return strings.HasPrefix(symbol, "sh000") || strings.HasPrefix(symbol, "sz399")
}

// akBar is the record shape returned by the akshare daily endpoints.
type akBar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

func (f *AkToolsFetcher) FetchDailyBars(symbol string, days int) ([]model.OHLCV, error) {
	now := time.Now()
	start := now.AddDate(0, 0, -days).Format("20060102")
	end := now.Format("20060102")

	var endpoint string
	if IsIndexSymbol(symbol) {
		endpoint = fmt.Sprintf("%s/api/public/stock_zh_index_daily?symbol=%s", f.BaseURL, url.QueryEscape(symbol))
	} else {
		// Forward-adjusted prices, same as the strategy has always used.
		endpoint = fmt.Sprintf("%s/api/public/stock_zh_a_daily?symbol=%s&start_date=%s&end_date=%s&adjust=qfq",
			f.BaseURL, url.QueryEscape(symbol), start, end)
	}

	bars, err := f.fetchBars(endpoint)
	if err != nil {
		return nil, err
	}
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

func (f *AkToolsFetcher) fetchBars(endpoint string) ([]model.OHLCV, error) {
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch bars: status %d, body: %s", resp.StatusCode, string(body))
	}

	var akBars []akBar
	if err := json.NewDecoder(resp.Body).Decode(&akBars); err != nil {
		return nil, fmt.Errorf("decode bars: %w", err)
	}

	bars := make([]model.OHLCV, 0, len(akBars))
	for _, ab := range akBars {
		ts, err := time.Parse("2006-01-02", ab.Date)
		if err != nil {
			return nil, fmt.Errorf("parse bar date %q: %w", ab.Date, err)
		}
		bars = append(bars, model.OHLCV{
			Time:   ts,
			Open:   ab.Open,
			High:   ab.High,
			Low:    ab.Low,
			Close:  ab.Close,
			Volume: ab.Volume,
		})
	}
	return sortDedupe(bars), nil
}

// sortDedupe enforces the provider contract: ascending bars with no
// duplicate dates (last record wins on a duplicate).
func sortDedupe(bars []model.OHLCV) []model.OHLCV {
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	out := bars[:0]
	for _, b := range bars {
		if len(out) > 0 && sameDay(out[len(out)-1].Time, b.Time) {
			out[len(out)-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
