package quiver

import (
	"context"
	"strconv"
	"sync"
)

// Composite source keys. CompositeData always returns exactly this key set.
const (
	SourceCongress      = "congress"
	SourceWSB           = "wsb"
	SourceGovContracts  = "govcontracts"
	SourceLobbying      = "lobbying"
	SourceOffExchange   = "offexchange"
	SourcePoliticalBeta = "political_beta"
)

// mentionsColumn is the sentiment column WallStreetBetsTrending ranks by.
const mentionsColumn = "Mentions"

func pageParams(page, pageSize int) Params {
	return Params{
		"page":      strconv.Itoa(page),
		"page_size": strconv.Itoa(pageSize),
	}
}

// CongressTradingLive returns the most recent congress trading records.
func (c *Client) CongressTradingLive(ctx context.Context, page, pageSize int) (Table, error) {
	return c.request(ctx, "live/congresstrading", pageParams(page, pageSize))
}

// CongressTradingBulk returns the bulk congress trading dataset.
func (c *Client) CongressTradingBulk(ctx context.Context, page, pageSize int) (Table, error) {
	return c.request(ctx, "bulk/congresstrading", pageParams(page, pageSize))
}

// HistoricalCongressTrading returns congress trading history for a ticker.
func (c *Client) HistoricalCongressTrading(ctx context.Context, ticker string) (Table, error) {
	return c.request(ctx, "historical/congresstrading/"+ticker, nil)
}

// WallStreetBetsLive returns the live WallStreetBets sentiment dataset.
func (c *Client) WallStreetBetsLive(ctx context.Context, countAll bool) (Table, error) {
	return c.request(ctx, "live/wallstreetbets", Params{
		"count_all": strconv.FormatBool(countAll),
	})
}

// HistoricalWallStreetBets returns WallStreetBets history for a ticker.
func (c *Client) HistoricalWallStreetBets(ctx context.Context, ticker string) (Table, error) {
	return c.request(ctx, "historical/wallstreetbets/"+ticker, nil)
}

// WallStreetBetsTrending returns the ten most-mentioned tickers from the
// live sentiment feed, in descending mention order. An empty feed passes
// through unchanged.
func (c *Client) WallStreetBetsTrending(ctx context.Context) (Table, error) {
	table, err := c.WallStreetBetsLive(ctx, true)
	if err != nil {
		return Table{}, err
	}
	return table.TopN(mentionsColumn, 10), nil
}

// GovernmentContractsLive returns recent government contract awards.
func (c *Client) GovernmentContractsLive(ctx context.Context) (Table, error) {
	return c.request(ctx, "live/govcontracts", nil)
}

// HistoricalGovernmentContracts returns contract history for a ticker.
func (c *Client) HistoricalGovernmentContracts(ctx context.Context, ticker string) (Table, error) {
	return c.request(ctx, "historical/govcontracts/"+ticker, nil)
}

// OffExchangeLive returns recent off-exchange (dark pool) volume.
func (c *Client) OffExchangeLive(ctx context.Context) (Table, error) {
	return c.request(ctx, "live/offexchange", nil)
}

// HistoricalOffExchange returns off-exchange history for a ticker.
func (c *Client) HistoricalOffExchange(ctx context.Context, ticker string) (Table, error) {
	return c.request(ctx, "historical/offexchange/"+ticker, nil)
}

// LobbyingLive returns recent lobbying disclosures.
func (c *Client) LobbyingLive(ctx context.Context, page, pageSize int) (Table, error) {
	return c.request(ctx, "live/lobbying", pageParams(page, pageSize))
}

// HistoricalLobbying returns lobbying history for a ticker.
func (c *Client) HistoricalLobbying(ctx context.Context, ticker string) (Table, error) {
	return c.request(ctx, "historical/lobbying/"+ticker, nil)
}

// PoliticalBetaLive returns current political beta values.
func (c *Client) PoliticalBetaLive(ctx context.Context) (Table, error) {
	return c.request(ctx, "live/politicalbeta", nil)
}

// HistoricalPoliticalBeta returns political beta history for a ticker.
func (c *Client) HistoricalPoliticalBeta(ctx context.Context, ticker string) (Table, error) {
	return c.request(ctx, "historical/politicalbeta/"+ticker, nil)
}

// SourceResult is one source's slice of a composite fetch. Err is non-nil
// when that source's request failed; Table is empty in that case.
type SourceResult struct {
	Table Table
	Err   error
}

// CompositeData fetches every historical data source for the ticker. The
// sources are independent and fetched concurrently; one source failing
// leaves the others untouched. The returned map always contains exactly the
// six Source* keys.
func (c *Client) CompositeData(ctx context.Context, ticker string) map[string]SourceResult {
	fetchers := map[string]func(context.Context, string) (Table, error){
		SourceCongress:      c.HistoricalCongressTrading,
		SourceWSB:           c.HistoricalWallStreetBets,
		SourceGovContracts:  c.HistoricalGovernmentContracts,
		SourceLobbying:      c.HistoricalLobbying,
		SourceOffExchange:   c.HistoricalOffExchange,
		SourcePoliticalBeta: c.HistoricalPoliticalBeta,
	}

	out := make(map[string]SourceResult, len(fetchers))

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for name, fetch := range fetchers {
		wg.Add(1)
		go func(name string, fetch func(context.Context, string) (Table, error)) {
			defer wg.Done()
			table, err := fetch(ctx, ticker)
			mu.Lock()
			out[name] = SourceResult{Table: table, Err: err}
			mu.Unlock()
		}(name, fetch)
	}
	wg.Wait()

	return out
}

// CheckConnection probes the API with a single-record congress trading
// fetch. It returns (true, nil) when at least one row came back, (false,
// nil) when the upstream answered with zero rows, and (false, err) when the
// request itself failed — an empty-but-reachable upstream is observable as
// its own outcome.
func (c *Client) CheckConnection(ctx context.Context) (bool, error) {
	table, err := c.CongressTradingLive(ctx, 1, 1)
	if err != nil {
		return false, err
	}
	return !table.Empty(), nil
}
