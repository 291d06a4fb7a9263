package commands

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/labsite/go-admin-client/rest"
)

// snapshotSources lists the read-only calls a snapshot is made of.
func snapshotSources(client *rest.TypedAdminRest) map[string]func(context.Context) (any, error) {
	return map[string]func(context.Context) (any, error){
		"articles": func(ctx context.Context) (any, error) {
			return client.Articles.ListPublishedWithContext(ctx)
		},
		"company": func(ctx context.Context) (any, error) {
			return client.Company.GetWithContext(ctx)
		},
		"instrument_types": func(ctx context.Context) (any, error) {
			return client.Instruments.ListTypesWithContext(ctx)
		},
		"agent_brands": func(ctx context.Context) (any, error) {
			return client.AgentBrands.ListWithContext(ctx)
		},
		"rental_products": func(ctx context.Context) (any, error) {
			return client.RentalProducts.ListWithContext(ctx)
		},
		"rental_notices": func(ctx context.Context) (any, error) {
			return client.RentalNotices.ListWithContext(ctx)
		},
		"service_categories": func(ctx context.Context) (any, error) {
			return client.ServiceCategories.ListWithContext(ctx)
		},
		"services": func(ctx context.Context) (any, error) {
			return client.ServiceItems.ListWithContext(ctx)
		},
	}
}

// takeSnapshot runs every source concurrently, at most limit at a time.
// The first failure cancels the rest.
func takeSnapshot(ctx context.Context, sources map[string]func(context.Context) (any, error), limit int, logger *zap.Logger) (map[string]any, error) {
	var (
		mu     sync.Mutex
		result = make(map[string]any, len(sources))
	)
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for name, fetch := range sources {
		name, fetch := name, fetch
		g.Go(func() error {
			value, err := fetch(ctx)
			if err != nil {
				logger.Warn("snapshot source failed", zap.String("source", name), zap.Error(err))
				return err
			}
			mu.Lock()
			result[name] = value
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// snapshotLimit returns the errgroup limit: the --concurrency value, or
// max_connections when the flag is left at zero.
func snapshotLimit(concurrency, maxConnections int) (int, error) {
	if concurrency < 0 {
		return 0, fmt.Errorf("--concurrency must not be negative, got %d", concurrency)
	}
	if concurrency == 0 {
		return maxConnections, nil
	}
	return concurrency, nil
}

func newSnapshotCmd() *cobra.Command {
	var concurrency int
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Fetch the published content of every section at once",
		Long: `snapshot reads published articles, the company profile, instrument
types, agent brands, rental products and notices, and service categories
and services in parallel (bounded by --concurrency, max_connections by default).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			limit, err := snapshotLimit(concurrency, a.cfg.MaxConnections)
			if err != nil {
				return err
			}
			snapshot, err := takeSnapshot(cmd.Context(), snapshotSources(a.rest), limit, a.logger)
			if err != nil {
				return err
			}
			if a.printer.Format != "" && a.printer.Format != "table" {
				return a.printer.Print(snapshot)
			}
			names := make([]string, 0, len(snapshot))
			for name := range snapshot {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				a.printer.Step("%s", name)
				if err = a.printer.Print(snapshot[name]); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "maximum parallel requests (default: max_connections)")
	return cmd
}
