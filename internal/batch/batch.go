// Package batch loads supplier rosters from CSV files for bulk
// reliability evaluation and writes evaluation results back out.
package batch

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"chainboard/internal/api"
)

// expectedHeader is the required column order for supplier CSV files.
var expectedHeader = []string{"name", "lead_time", "cost", "past_orders"}

// Supplier is one roster row: a display name plus the prediction payload.
type Supplier struct {
	Name  string
	Input api.SupplierInput
}

// LoadSuppliers loads a supplier roster from a CSV file. Every row is
// validated against the backend's accepted ranges before anything is
// returned.
func LoadSuppliers(filename string) ([]Supplier, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open suppliers file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read suppliers CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("suppliers CSV must have header and at least one data row")
	}

	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("suppliers CSV header mismatch. Expected: %v, Got: %v", expectedHeader, header)
	}

	var suppliers []Supplier
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("suppliers CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		supplier, err := parseSupplier(record)
		if err != nil {
			return nil, fmt.Errorf("suppliers CSV row %d: %w", i+2, err)
		}

		suppliers = append(suppliers, supplier)
	}

	return suppliers, nil
}

func parseSupplier(record []string) (Supplier, error) {
	name := strings.TrimSpace(record[0])
	if name == "" {
		return Supplier{}, fmt.Errorf("name must not be empty")
	}

	leadTime, err := strconv.Atoi(strings.TrimSpace(record[1]))
	if err != nil {
		return Supplier{}, fmt.Errorf("invalid lead_time: %s", record[1])
	}

	// Costs are money; parse exactly rather than through float syntax.
	cost, err := decimal.NewFromString(strings.TrimSpace(record[2]))
	if err != nil {
		return Supplier{}, fmt.Errorf("invalid cost: %s", record[2])
	}

	pastOrders, err := strconv.Atoi(strings.TrimSpace(record[3]))
	if err != nil {
		return Supplier{}, fmt.Errorf("invalid past_orders: %s", record[3])
	}

	supplier := Supplier{
		Name: name,
		Input: api.SupplierInput{
			LeadTime:   leadTime,
			Cost:       cost.InexactFloat64(),
			PastOrders: pastOrders,
		},
	}
	if err := supplier.Input.Validate(); err != nil {
		return Supplier{}, err
	}
	return supplier, nil
}

// Inputs strips roster names down to the wire payload, preserving order.
func Inputs(suppliers []Supplier) []api.SupplierInput {
	inputs := make([]api.SupplierInput, len(suppliers))
	for i, s := range suppliers {
		inputs[i] = s.Input
	}
	return inputs
}

// Name returns the roster name for a result index, falling back to a
// positional label when the batch response has more rows than the file.
func Name(suppliers []Supplier, index int) string {
	if index >= 0 && index < len(suppliers) {
		return suppliers[index].Name
	}
	return fmt.Sprintf("supplier %d", index+1)
}

// WriteResults writes a batch evaluation next to its roster names as CSV.
func WriteResults(filename string, suppliers []Supplier, result api.BatchResult) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create results file %s: %w", filename, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"name", "reliable", "label", "confidence", "error"}); err != nil {
		return fmt.Errorf("failed to write results header: %w", err)
	}

	for _, item := range result.Items {
		row := []string{Name(suppliers, item.Index), "", "", "", item.Error}
		if p := item.Prediction; p != nil {
			row[1] = strconv.FormatBool(p.Reliable)
			row[2] = p.Label
			row[3] = strconv.FormatFloat(p.Confidence, 'f', 4, 64)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write results row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush results: %w", err)
	}
	return nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}
