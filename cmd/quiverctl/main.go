package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"github.com/quantsignal-hq/quiver-feed/internal/config"
	"github.com/quantsignal-hq/quiver-feed/internal/logger"
	"github.com/quantsignal-hq/quiver-feed/internal/settings"
	"github.com/quantsignal-hq/quiver-feed/pkg/quiver"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "quiverctl failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	check := flag.Bool("check", false, "probe the API connection and exit")
	trending := flag.Bool("trending", false, "show the top WallStreetBets tickers by mentions")
	composite := flag.String("composite", "", "fetch every data source for the given ticker")
	dataset := flag.String("dataset", "congress", "dataset to fetch: congress|wsb|govcontracts|lobbying|offexchange|politicalbeta")
	ticker := flag.String("ticker", "", "fetch the dataset's history for this ticker instead of the live feed")
	page := flag.Int("page", 1, "page number for paged live datasets")
	pageSize := flag.Int("page-size", 100, "page size for paged live datasets")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	if s, err := settings.Load(cfg.SettingsFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warnw("settings file not found, continuing without strategy rules", "path", cfg.SettingsFile)
		} else {
			return fmt.Errorf("load settings: %w", err)
		}
	} else {
		names := make([]string, 0, len(s.Signals))
		for name := range s.Signals {
			names = append(names, name)
		}
		sort.Strings(names)
		logger.InfoObj("strategy settings validated", "signals", names)
	}

	client := quiver.New(quiver.Config{
		BaseURL:   cfg.BaseURL,
		AuthToken: cfg.AuthToken,
		Timeout:   cfg.RequestTimeout,
	}, nil, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch {
	case *check:
		return runCheck(ctx, client)
	case *trending:
		table, err := client.WallStreetBetsTrending(ctx)
		if err != nil {
			return err
		}
		renderTable(table)
		return nil
	case *composite != "":
		return runComposite(ctx, client, *composite)
	default:
		table, err := fetchDataset(ctx, client, *dataset, *ticker, *page, *pageSize)
		if err != nil {
			return err
		}
		renderTable(table)
		return nil
	}
}

func runCheck(ctx context.Context, client *quiver.Client) error {
	ok, err := client.CheckConnection(ctx)
	if err != nil {
		return fmt.Errorf("connection check: %w", err)
	}
	if !ok {
		// Reachable upstream with zero records lands here too.
		return fmt.Errorf("connection check: upstream returned no data")
	}
	fmt.Println("connection ok")
	return nil
}

func runComposite(ctx context.Context, client *quiver.Client, ticker string) error {
	results := client.CompositeData(ctx, ticker)

	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		res := results[name]
		if res.Err != nil {
			fmt.Printf("== %s: fetch failed: %v\n", name, res.Err)
			continue
		}
		fmt.Printf("== %s (%d rows)\n", name, res.Table.Len())
		renderTable(res.Table)
	}
	return nil
}

func fetchDataset(ctx context.Context, client *quiver.Client, dataset, ticker string, page, pageSize int) (quiver.Table, error) {
	type binding struct {
		live       func(context.Context) (quiver.Table, error)
		historical func(context.Context, string) (quiver.Table, error)
	}

	bindings := map[string]binding{
		"congress": {
			live: func(ctx context.Context) (quiver.Table, error) {
				return client.CongressTradingLive(ctx, page, pageSize)
			},
			historical: client.HistoricalCongressTrading,
		},
		"wsb": {
			live: func(ctx context.Context) (quiver.Table, error) {
				return client.WallStreetBetsLive(ctx, true)
			},
			historical: client.HistoricalWallStreetBets,
		},
		"govcontracts": {
			live:       client.GovernmentContractsLive,
			historical: client.HistoricalGovernmentContracts,
		},
		"lobbying": {
			live: func(ctx context.Context) (quiver.Table, error) {
				return client.LobbyingLive(ctx, page, pageSize)
			},
			historical: client.HistoricalLobbying,
		},
		"offexchange": {
			live:       client.OffExchangeLive,
			historical: client.HistoricalOffExchange,
		},
		"politicalbeta": {
			live:       client.PoliticalBetaLive,
			historical: client.HistoricalPoliticalBeta,
		},
	}

	b, ok := bindings[dataset]
	if !ok {
		return quiver.Table{}, fmt.Errorf("unknown dataset %q", dataset)
	}
	if ticker != "" {
		return b.historical(ctx, ticker)
	}
	return b.live(ctx)
}

// renderTable prints a Table as ASCII; empty tables print a short notice.
func renderTable(t quiver.Table) {
	if t.Empty() {
		fmt.Println("(no rows)")
		return
	}

	data := make([][]string, 0, t.Len())
	for _, row := range t.Rows {
		cells := make([]string, 0, len(t.Columns))
		for _, col := range t.Columns {
			if v, ok := row[col]; ok && v != nil {
				cells = append(cells, fmt.Sprint(v))
			} else {
				cells = append(cells, "")
			}
		}
		data = append(data, cells)
	}

	out := tablewriter.NewWriter(os.Stdout)
	out.Header(t.Columns)
	out.Bulk(data)
	out.Render()
}
