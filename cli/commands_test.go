package cli

import (
	"bookledger/domain"
	"bookledger/store"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

// capture stdout during cobra execution
func captureOutput(f func() error) (string, error) {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String(), err
}

// reset cobra + global state between tests
func resetCLI() {
	rootCmd.SetArgs(nil)
	catalog = nil
}

func TestProductLifecycle(t *testing.T) {
	defer resetCLI()
	catalog = store.NewInMemoryStore()

	// REGISTER
	out, err := captureOutput(func() error {
		rootCmd.SetArgs([]string{
			"product", "register",
			"--title", "Atlas",
			"--author", "Someone",
			"--category", "Maps",
			"--price", "10.00",
			"--quantity", "5",
		})
		return rootCmd.Execute()
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	var created domain.Product
	if err := json.Unmarshal([]byte(out), &created); err != nil {
		t.Fatalf("invalid register output: %v", err)
	}
	if created.InitialQuantity != 5 {
		t.Fatalf("expected initial quantity 5, got %d", created.InitialQuantity)
	}

	// CONSULT
	out, err = captureOutput(func() error {
		rootCmd.SetArgs([]string{"product", "consult", "Atlas"})
		return rootCmd.Execute()
	})
	if err != nil || !strings.Contains(out, "Atlas") {
		t.Fatalf("consult failed: %v, out=%q", err, out)
	}

	// LIST
	out, err = captureOutput(func() error {
		rootCmd.SetArgs([]string{"product", "list"})
		return rootCmd.Execute()
	})
	if err != nil || out == "" {
		t.Fatalf("list failed")
	}

	// UPDATE
	out, err = captureOutput(func() error {
		rootCmd.SetArgs([]string{
			"product", "update", "Atlas",
			"--price", "7.75",
		})
		return rootCmd.Execute()
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	var updated domain.Product
	_ = json.Unmarshal([]byte(out), &updated)
	if updated.Price != 7.75 {
		t.Fatalf("price not updated")
	}
	if updated.InitialQuantity != 5 {
		t.Fatalf("update must not change initial quantity")
	}

	// DELETE
	_, err = captureOutput(func() error {
		rootCmd.SetArgs([]string{"product", "delete", "--force", "Atlas"})
		return rootCmd.Execute()
	})
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	_, err = catalog.Consult(context.Background(), "Atlas")
	if !domain.IsProductNotFoundError(err) {
		t.Fatalf("expected product to be deleted, got %v", err)
	}
}

func TestSeedSaleAndReports(t *testing.T) {
	defer resetCLI()
	catalog = store.NewInMemoryStore()

	// SEED defaults
	out, err := captureOutput(func() error {
		rootCmd.SetArgs([]string{"seed"})
		return rootCmd.Execute()
	})
	if err != nil || !strings.Contains(out, "pre-loaded 5 products") {
		t.Fatalf("seed failed: %v, out=%q", err, out)
	}

	// SALE register
	out, err = captureOutput(func() error {
		rootCmd.SetArgs([]string{
			"sale", "register",
			"--client", "Ana",
			"--product", "Habitos atomicos",
			"--quantity", "4",
			"--discount", "50",
			"--date", "2024-06-01",
		})
		return rootCmd.Execute()
	})
	if err != nil {
		t.Fatalf("sale register failed: %v", err)
	}

	var sale domain.Sale
	if err := json.Unmarshal([]byte(out), &sale); err != nil {
		t.Fatalf("invalid sale output: %v", err)
	}
	if sale.ID == "" || sale.TotalPrice != 25.00 || sale.UnitPrice != 12.50 {
		t.Fatalf("unexpected sale: %+v", sale)
	}

	// SALE list
	out, err = captureOutput(func() error {
		rootCmd.SetArgs([]string{"sale", "list"})
		return rootCmd.Execute()
	})
	if err != nil || !strings.Contains(out, "Habitos atomicos") || !strings.Contains(out, "$25.00") {
		t.Fatalf("sale list failed: %v, out=%q", err, out)
	}

	// REPORT top
	out, err = captureOutput(func() error {
		rootCmd.SetArgs([]string{"report", "top", "--n", "3"})
		return rootCmd.Execute()
	})
	if err != nil || !strings.Contains(out, "1. Habitos atomicos - 4 units sold") {
		t.Fatalf("report top failed: %v, out=%q", err, out)
	}

	// REPORT authors
	out, err = captureOutput(func() error {
		rootCmd.SetArgs([]string{"report", "authors"})
		return rootCmd.Execute()
	})
	if err != nil || !strings.Contains(out, "James Clear") {
		t.Fatalf("report authors failed: %v, out=%q", err, out)
	}

	// REPORT income: gross 50, discount 25, net 25
	out, err = captureOutput(func() error {
		rootCmd.SetArgs([]string{"report", "income"})
		return rootCmd.Execute()
	})
	if err != nil || !strings.Contains(out, "$50.00") || !strings.Contains(out, "$25.00") {
		t.Fatalf("report income failed: %v, out=%q", err, out)
	}

	// REPORT performance
	out, err = captureOutput(func() error {
		rootCmd.SetArgs([]string{"report", "performance"})
		return rootCmd.Execute()
	})
	if err != nil || !strings.Contains(out, "Habitos atomicos") || !strings.Contains(out, "Low Demand") {
		t.Fatalf("report performance failed: %v, out=%q", err, out)
	}
}

func TestSeedFromFile(t *testing.T) {
	defer resetCLI()
	catalog = store.NewInMemoryStore()

	tmp, err := os.CreateTemp("", "seed_*.json")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmp.Name())
	_, _ = tmp.WriteString(`[{"title":"F1","author":"A","category":"C","price":3,"quantity_in_stock":6,"initial_quantity":6}]`)
	tmp.Close()

	out, err := captureOutput(func() error {
		rootCmd.SetArgs([]string{"seed", "--file", tmp.Name()})
		return rootCmd.Execute()
	})
	if err != nil || !strings.Contains(out, "pre-loaded 1 products") {
		t.Fatalf("seed from file failed: %v, out=%q", err, out)
	}

	if _, err := catalog.Consult(context.Background(), "F1"); err != nil {
		t.Fatalf("seeded product missing: %v", err)
	}

	// reset the flag for later tests
	for _, c := range rootCmd.Commands() {
		if c.Name() == "seed" {
			c.Flags().Set("file", "")
			break
		}
	}
}

func TestExportSnapshot(t *testing.T) {
	defer resetCLI()
	catalog = store.NewInMemoryStore()

	_, err := captureOutput(func() error {
		rootCmd.SetArgs([]string{"seed"})
		return rootCmd.Execute()
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	tmp, err := os.CreateTemp("", "export_*.json")
	if err != nil {
		t.Fatal(err)
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	_, err = captureOutput(func() error {
		rootCmd.SetArgs([]string{"export", "--file", tmp.Name()})
		return rootCmd.Execute()
	})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	b, err := os.ReadFile(tmp.Name())
	if err != nil {
		t.Fatal(err)
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(snap.Products) != 5 {
		t.Fatalf("expected 5 exported products, got %d", len(snap.Products))
	}

	for _, c := range rootCmd.Commands() {
		if c.Name() == "export" {
			c.Flags().Set("file", "")
			break
		}
	}
}
