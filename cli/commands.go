// Package cli provides the Cobra-based CLI for bookledger.
package cli

import (
	"bookledger/domain"
	"bookledger/report"
	"bookledger/seed"
	"bookledger/store"
	"bookledger/util"
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	rootCmd = &cobra.Command{
		Use:   "bookledger",
		Short: "An inventory and sales tracking system for a book catalog",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// IMPORTANT: allow tests to inject store
			if catalog != nil {
				return nil
			}

			if cfg := viper.GetString("config"); cfg != "" {
				viper.SetConfigFile(cfg)
				if err := viper.ReadInConfig(); err != nil {
					return err
				}
			}

			lvlStr := strings.ToLower(viper.GetString("log-level"))
			lvl := slog.LevelInfo
			switch lvlStr {
			case "debug":
				lvl = slog.LevelDebug
			case "warn", "warning":
				lvl = slog.LevelWarn
			case "error":
				lvl = slog.LevelError
			}
			slog.SetDefault(slog.New(
				slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}),
			))

			catalog = store.NewInMemoryStore(
				store.WithStrictDates(viper.GetBool("strict-dates")),
			)
			return nil
		},
	}

	catalog domain.Store
)

func init() {
	// shell
	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive shell mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := bufio.NewReader(os.Stdin)
			for {
				fmt.Print("bookledger> ")
				line, err := r.ReadString('\n')
				if err != nil {
					return nil
				}
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					return nil
				}
				rootCmd.SetArgs(strings.Fields(line))
				if err := rootCmd.Execute(); err != nil {
					fmt.Fprintln(os.Stderr, err)
				}
				rootCmd.SetArgs(nil)
			}
		},
	}
	rootCmd.AddCommand(shellCmd)

	rootCmd.PersistentFlags().Bool("strict-dates", false, "reject sale dates not matching YYYY-MM-DD")
	rootCmd.PersistentFlags().String("config", "", "config file")
	rootCmd.PersistentFlags().String("log-level", "info", "log level")

	viper.BindPFlag("strict-dates", rootCmd.PersistentFlags().Lookup("strict-dates"))
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.SetEnvPrefix("BOOKLEDGER")
	viper.AutomaticEnv()

	rootCmd.AddCommand(newProductCmd())
	rootCmd.AddCommand(newSaleCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newSeedCmd())
	rootCmd.AddCommand(newExportCmd())
}

func newProductCmd() *cobra.Command {
	productCmd := &cobra.Command{
		Use:   "product",
		Short: "Manage the catalog",
	}

	// register
	var title, author, category string
	var price float64
	var quantity int
	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Register a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := domain.Product{
				Title:           title,
				Author:          author,
				Category:        category,
				Price:           price,
				QuantityInStock: quantity,
				InitialQuantity: quantity,
			}
			start := time.Now()
			if err := catalog.Register(context.Background(), p); err != nil {
				slog.Error("register failed", "title", title, "error", err)
				return err
			}
			slog.Info("product registered", "title", title, "duration_ms", time.Since(start).Milliseconds())
			b, _ := json.MarshalIndent(p, "", "  ")
			fmt.Println(string(b))
			return nil
		},
	}
	registerCmd.Flags().StringVar(&title, "title", "", "title")
	registerCmd.Flags().StringVar(&author, "author", "", "author")
	registerCmd.Flags().StringVar(&category, "category", "", "category")
	registerCmd.Flags().Float64Var(&price, "price", 0, "price")
	registerCmd.Flags().IntVar(&quantity, "quantity", 0, "quantity in stock")
	productCmd.AddCommand(registerCmd)

	// consult
	consultCmd := &cobra.Command{
		Use:   "consult <title>",
		Short: "Consult a product by title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := catalog.Consult(context.Background(), args[0])
			if err != nil {
				if domain.IsProductNotFoundError(err) {
					fmt.Fprintln(os.Stderr, err)
					return nil
				}
				return err
			}
			b, _ := json.MarshalIndent(p, "", "  ")
			fmt.Println(string(b))
			return nil
		},
	}
	productCmd.AddCommand(consultCmd)

	// update
	var uAuthor, uCategory string
	var uPrice float64
	var uQuantity int
	updateCmd := &cobra.Command{
		Use:   "update <title>",
		Short: "Update a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := args[0]

			var upd domain.ProductUpdate
			if cmd.Flags().Changed("author") {
				upd.Author = &uAuthor
			}
			if cmd.Flags().Changed("category") {
				upd.Category = &uCategory
			}
			if cmd.Flags().Changed("price") {
				upd.Price = &uPrice
			}
			if cmd.Flags().Changed("quantity") {
				upd.Quantity = &uQuantity
			}

			start := time.Now()
			p, err := catalog.Update(context.Background(), title, upd)
			if err != nil {
				slog.Error("update failed", "title", title, "error", err)
				return err
			}

			slog.Info(
				"product updated",
				"title", title,
				"duration_ms", time.Since(start).Milliseconds(),
			)

			b, _ := json.MarshalIndent(p, "", "  ")
			fmt.Println(string(b))
			return nil
		},
	}
	updateCmd.Flags().StringVar(&uAuthor, "author", "", "author")
	updateCmd.Flags().StringVar(&uCategory, "category", "", "category")
	updateCmd.Flags().Float64Var(&uPrice, "price", 0, "price")
	updateCmd.Flags().IntVar(&uQuantity, "quantity", 0, "quantity in stock")
	productCmd.AddCommand(updateCmd)

	// list
	var lAuthor, lCategory, lSort, lOrder, lOutput string
	var lMin, lMax float64
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			var minPtr, maxPtr *float64
			if cmd.Flags().Changed("min-price") {
				minPtr = &lMin
			}
			if cmd.Flags().Changed("max-price") {
				maxPtr = &lMax
			}
			out, err := catalog.List(context.Background(), domain.ListFilter{
				Author:   lAuthor,
				Category: lCategory,
				MinPrice: minPtr,
				MaxPrice: maxPtr,
				SortBy:   lSort,
				Order:    lOrder,
			})
			if err != nil {
				return err
			}
			if lOutput == "json" {
				b, _ := json.MarshalIndent(out, "", "  ")
				fmt.Println(string(b))
				return nil
			}
			for _, p := range out {
				fmt.Printf("%s | %s | %s | %s | %d in stock\n",
					p.Title, p.Author, p.Category, util.FormatAmount(p.Price), p.QuantityInStock)
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&lAuthor, "author", "", "author")
	listCmd.Flags().StringVar(&lCategory, "category", "", "category")
	listCmd.Flags().Float64Var(&lMin, "min-price", 0, "min price")
	listCmd.Flags().Float64Var(&lMax, "max-price", 0, "max price")
	listCmd.Flags().StringVar(&lSort, "sort-by", "", "sort field: title|price|quantity")
	listCmd.Flags().StringVar(&lOrder, "order", "asc", "sort order")
	listCmd.Flags().StringVar(&lOutput, "output", "", "output format")
	productCmd.AddCommand(listCmd)

	// delete
	var force bool
	deleteCmd := &cobra.Command{
		Use:   "delete <title>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				fmt.Printf("Delete %q? (y/N): ", args[0])
				var resp string
				if _, err := fmt.Scanln(&resp); err != nil || (resp != "y" && resp != "Y") {
					fmt.Println("aborted")
					return nil
				}
			}
			if err := catalog.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("deleted")
			return nil
		},
	}
	deleteCmd.Flags().BoolVar(&force, "force", false, "skip confirmation")
	productCmd.AddCommand(deleteCmd)

	return productCmd
}

func newSaleCmd() *cobra.Command {
	saleCmd := &cobra.Command{
		Use:   "sale",
		Short: "Record and consult sales",
	}

	// register
	var client, product, date string
	var quantity int
	var discount float64
	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Register a sale",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := domain.SaleRequest{
				Client:       client,
				ProductTitle: product,
				Quantity:     quantity,
				Date:         date,
				Discount:     discount,
			}
			// the store re-checks these bounds; rejecting here keeps bad
			// input from ever reaching it
			if err := domain.ValidateSaleRequest(req); err != nil {
				return err
			}
			start := time.Now()
			sale, err := catalog.RegisterSale(context.Background(), req)
			if err != nil {
				slog.Error("sale failed", "product", product, "quantity", quantity, "error", err)
				return err
			}
			slog.Info(
				"sale registered",
				"sale_id", sale.ID,
				"product", sale.ProductTitle,
				"quantity", sale.Quantity,
				"duration_ms", time.Since(start).Milliseconds(),
			)
			b, _ := json.MarshalIndent(sale, "", "  ")
			fmt.Println(string(b))
			return nil
		},
	}
	registerCmd.Flags().StringVar(&client, "client", "", "client name")
	registerCmd.Flags().StringVar(&product, "product", "", "product title")
	registerCmd.Flags().IntVar(&quantity, "quantity", 0, "units to sell")
	registerCmd.Flags().StringVar(&date, "date", "", "sale date YYYY-MM-DD (default today)")
	registerCmd.Flags().Float64Var(&discount, "discount", 0, "discount percentage 0-100")
	saleCmd.AddCommand(registerCmd)

	// list
	var lOutput string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List sales in registration order",
		RunE: func(cmd *cobra.Command, args []string) error {
			sales, err := catalog.ListSales(context.Background())
			if err != nil {
				return err
			}
			if lOutput == "json" {
				b, _ := json.MarshalIndent(sales, "", "  ")
				fmt.Println(string(b))
				return nil
			}
			if len(sales) == 0 {
				fmt.Println("no sales registered yet")
				return nil
			}
			for i, s := range sales {
				fmt.Printf("#%d %s | %s | %d x %s | %s | discount %s | total %s\n",
					i+1, s.Date, s.ProductTitle, s.Quantity,
					util.FormatAmount(s.UnitPrice), s.Client,
					util.FormatPercent(s.DiscountPercentage),
					util.FormatAmount(s.TotalPrice))
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&lOutput, "output", "", "output format")
	saleCmd.AddCommand(listCmd)

	return saleCmd
}

func newReportCmd() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregate reports over catalog and sales",
	}

	var topN int
	topCmd := &cobra.Command{
		Use:   "top",
		Short: "Most sold products",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := catalog.Snapshot(context.Background())
			if err != nil {
				return err
			}
			rows := report.TopSellingProducts(snap, topN)
			if len(rows) == 0 {
				fmt.Println("no sales data available")
				return nil
			}
			for i, row := range rows {
				fmt.Printf("%d. %s - %d units sold\n", i+1, row.Title, row.QuantitySold)
			}
			return nil
		},
	}
	topCmd.Flags().IntVar(&topN, "n", report.DefaultTopN, "number of products to show")
	reportCmd.AddCommand(topCmd)

	authorsCmd := &cobra.Command{
		Use:   "authors",
		Short: "Revenue grouped by author",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := catalog.Snapshot(context.Background())
			if err != nil {
				return err
			}
			rows := report.SalesByAuthor(snap)
			if len(rows) == 0 {
				fmt.Println("no sales recorded for any author yet")
				return nil
			}
			for _, row := range rows {
				fmt.Printf("%s - total revenue %s\n", row.Author, util.FormatAmount(row.TotalRevenue))
			}
			return nil
		},
	}
	reportCmd.AddCommand(authorsCmd)

	incomeCmd := &cobra.Command{
		Use:   "income",
		Short: "Gross, discount and net income",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := catalog.Snapshot(context.Background())
			if err != nil {
				return err
			}
			inc := report.IncomeReport(snap)
			fmt.Printf("gross income:     %s\n", util.FormatAmount(inc.Gross))
			fmt.Printf("discount applied: %s\n", util.FormatAmount(inc.Discount))
			fmt.Printf("net income:       %s\n", util.FormatAmount(inc.Net))
			return nil
		},
	}
	reportCmd.AddCommand(incomeCmd)

	performanceCmd := &cobra.Command{
		Use:   "performance",
		Short: "Sell-through and low stock warnings",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := catalog.Snapshot(context.Background())
			if err != nil {
				return err
			}
			perf := report.InventoryPerformance(snap)
			for _, row := range perf.Products {
				if row.NoInitialStock {
					fmt.Printf("- %s: no initial stock recorded\n", row.Title)
					continue
				}
				fmt.Printf("- %s: %d sold out of %d (%s) - %s\n",
					row.Title, row.QuantitySold, row.InitialQuantity,
					util.FormatPercent(row.PercentSold), row.Demand)
			}
			if len(perf.LowStock) == 0 {
				fmt.Println("no products with low stock")
				return nil
			}
			fmt.Printf("low stock (under %d units):\n", report.LowStockThreshold)
			for _, row := range perf.LowStock {
				fmt.Printf("- %s: %d units remaining\n", row.Title, row.Remaining)
			}
			return nil
		},
	}
	reportCmd.AddCommand(performanceCmd)

	return reportCmd
}

func newSeedCmd() *cobra.Command {
	var seedFile string
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Pre-load the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			products := seed.Defaults()
			if seedFile != "" {
				var err error
				products, err = seed.LoadFile(seedFile)
				if err != nil {
					return err
				}
			}
			if err := seed.Apply(context.Background(), catalog, products); err != nil {
				return err
			}
			slog.Info("catalog seeded", "products", len(products))
			fmt.Printf("pre-loaded %d products\n", len(products))
			return nil
		},
	}
	seedCmd.Flags().StringVar(&seedFile, "file", "", "seed catalog from JSON/NDJSON file instead of defaults")
	return seedCmd
}

func newExportCmd() *cobra.Command {
	var exportFile string
	exportCmd := &cobra.Command{
		Use:   "export --file <file>",
		Short: "Export catalog and sales snapshot to JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if exportFile == "" {
				return errors.New("--file required")
			}
			snap, err := catalog.Snapshot(context.Background())
			if err != nil {
				return err
			}
			b, _ := json.MarshalIndent(snap, "", "  ")
			return os.WriteFile(exportFile, b, 0o644)
		},
	}
	exportCmd.Flags().StringVar(&exportFile, "file", "", "output file")
	return exportCmd
}

func Execute() error {
	return rootCmd.Execute()
}
