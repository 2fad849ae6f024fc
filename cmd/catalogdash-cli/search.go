package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"catalogdash/internal/domain/models"
	"catalogdash/internal/gallery"
	"catalogdash/internal/repository"
	jsonfile "catalogdash/internal/repository/json"
)

var searchFlags struct {
	query      string
	tags       []string
	labels     []string
	promotions []string
	priceMin   int
	priceMax   int
	page       int
	pageSize   int
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Render one page of the filtered product gallery",
	Args:  cobra.NoArgs,
	RunE:  runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.StringVarP(&searchFlags.query, "query", "q", "", "free-text search over name and description")
	f.StringSliceVar(&searchFlags.tags, "tag", nil, "tag name (repeatable)")
	f.StringSliceVar(&searchFlags.labels, "label", nil, "label name (repeatable)")
	f.StringSliceVar(&searchFlags.promotions, "promotion", nil, "promotion tag name (repeatable)")
	f.IntVar(&searchFlags.priceMin, "price-min", 0, "lower price limit inside the current bounds")
	f.IntVar(&searchFlags.priceMax, "price-max", 0, "upper price limit inside the current bounds")
	f.IntVar(&searchFlags.page, "page", 1, "page number")
	f.IntVar(&searchFlags.pageSize, "page-size", 0, "page size: 6, 12 or 24 (default from config)")
}

func runSearch(cmd *cobra.Command, _ []string) error {
	a, err := setup()
	if err != nil {
		return err
	}

	size := a.cfg.Gallery.DefaultPageSize
	if searchFlags.pageSize != 0 {
		if !models.ValidPageSize(searchFlags.pageSize) {
			return fmt.Errorf("--page-size must be one of %v", models.PageSizes)
		}
		size = searchFlags.pageSize
	}
	if searchFlags.page < 1 {
		return fmt.Errorf("--page must be >= 1")
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	ctrl := gallery.NewController(a.catalog, a.log)
	s := gallery.NewSession(size)
	filters := models.NewFilterSet(searchFlags.query, searchFlags.tags, searchFlags.labels, searchFlags.promotions)

	if _, err := ctrl.Prepare(ctx, s, filters); err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), a.render.Failure(err))
		return err
	}

	minSet, maxSet := cmd.Flags().Changed("price-min"), cmd.Flags().Changed("price-max")
	if minSet || maxSet {
		r := s.PriceRange()
		if minSet {
			r.Min = searchFlags.priceMin
		}
		if maxSet {
			r.Max = searchFlags.priceMax
		}
		if !s.NarrowPrice(r) {
			a.log.Warn("price range is fixed for these filters, ignoring price flags")
		}
	}
	s.SeekPage(searchFlags.page)

	v, err := ctrl.Render(ctx, s, filters)
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), a.render.Failure(err))
		return err
	}
	if v.Empty() && !v.Bounds.Empty && searchFlags.page > 1 {
		a.log.Warn("requested page is past the end of the results", "page", searchFlags.page)
	}

	fmt.Fprint(cmd.OutOrStdout(), a.render.Gallery(v))

	if a.cfg.CLI.OutputFile != "" {
		repo := jsonfile.New(a.cfg.CLI.OutputFile, a.log)
		err := repo.SavePage(ctx, repository.PageResult{
			FetchedAt: time.Now().UTC().Format(time.RFC3339),
			Source:    a.cfg.Catalog.BaseURL,
			View:      v,
			Count:     len(v.Items),
		})
		if err != nil {
			return fmt.Errorf("save json: %w", err)
		}
	}
	return nil
}
