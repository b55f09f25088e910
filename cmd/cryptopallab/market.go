package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/olekukonko/tablewriter"
	"github.com/raykavin/cryptopallab/pkg/coin"
	"github.com/raykavin/cryptopallab/pkg/format"
	"github.com/raykavin/cryptopallab/pkg/plot"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func buildPriceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "price <coin>",
		Short: "Print the current USD price of a coin",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gateway, _, err := newGateway()
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			id, ok := coin.Resolve(query)
			if !ok {
				return errors.New(format.PriceUsage)
			}

			price, found := gateway.Price(cmd.Context(), id)
			fmt.Println(format.Price(query, price, found))
			return nil
		},
	}
}

func buildTopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "top",
		Short: "Print the prices of the top coins",
		RunE: func(cmd *cobra.Command, _ []string) error {
			gateway, _, err := newGateway()
			if err != nil {
				return err
			}

			bar := progressbar.Default(int64(len(coin.TopCoins)), "fetching prices")
			quotes := make([]format.Quote, 0, len(coin.TopCoins))
			for _, id := range coin.TopCoins {
				price, ok := gateway.Price(cmd.Context(), id)
				quotes = append(quotes, format.Quote{ID: id, Price: price, OK: ok})
				_ = bar.Add(1)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Coin", "Price (USD)"})
			table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
			for _, q := range quotes {
				price := "n/a"
				if q.OK {
					price = "$" + q.Price.String()
				}
				table.Append([]string{q.ID.String(), price})
			}
			table.Render()
			return nil
		},
	}
}

func buildNewsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "news",
		Short: "Print the latest crypto headlines",
		RunE: func(cmd *cobra.Command, _ []string) error {
			gateway, settings, err := newGateway()
			if err != nil {
				return err
			}

			items, err := gateway.News(cmd.Context(), settings.Market.NewsLimit)
			if err != nil || len(items) == 0 {
				fmt.Println(format.News(format.NewsHeader, items, err))
				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Published", "Source", "Title", "URL"})
			table.SetAutoWrapText(false)
			for _, item := range items {
				table.Append([]string{item.PublishedAt, item.Source, item.Title, item.URL})
			}
			table.Render()
			return nil
		},
	}
}

func buildChartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart <coin>",
		Short: "Render a price chart to a PNG file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gateway, _, err := newGateway()
			if err != nil {
				return err
			}

			id, ok := coin.Resolve(strings.Join(args, " "))
			if !ok {
				return errors.New(format.ChartUsage)
			}

			series, ok := gateway.MarketChart(cmd.Context(), id, chartDays)
			if !ok {
				return errors.New(format.ChartUnavailable)
			}

			img, err := plot.NewChart().Render(format.ChartTitle(id, chartDays), series)
			if err != nil {
				return err
			}

			out := chartOut
			if out == "" {
				out = format.ChartFilename(id, chartDays)
			}
			if err := os.WriteFile(out, img, 0o644); err != nil {
				return fmt.Errorf("write chart: %w", err)
			}

			fmt.Println(plot.Summarize(series).Caption(id, chartDays))
			hist := histogram.Hist(10, series.Prices())
			if err := histogram.Fprint(os.Stdout, hist, histogram.Linear(40)); err != nil {
				return err
			}
			fmt.Printf("chart written to %s\n", out)
			return nil
		},
	}

	cmd.Flags().IntVarP(&chartDays, "days", "d", 7, "Number of trailing days")
	cmd.Flags().StringVarP(&chartOut, "output", "o", "", "Output file path (default <coin>_<days>d.png)")
	return cmd
}
