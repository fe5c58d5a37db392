package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"product-details/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads catalog CSV files and inserts/updates products. The
// header row names the columns; order does not matter.
//
//	id,title,description,price,image,category,rate,count
//
// rating.rate and rating.count are accepted for rate and count.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

var (
	requiredColumns = []string{"id", "title", "price", "rate", "count"}
	optionalColumns = []string{"description", "image", "category"}
	columnAliases   = map[string]string{
		"rating.rate":  "rate",
		"rating.count": "count",
	}
)

// Run parses every row and upserts it. It stops at the first invalid row and
// reports how many rows were saved before it.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index, err := headerIndex(headers)
	if err != nil {
		return 0, err
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return 0, fmt.Errorf("missing column %q: %w", col, domain.ErrInvalidInput)
		}
	}

	imported := 0
	line := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		if blank(record) {
			continue
		}

		p, err := parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		if _, err := i.productRepo.Upsert(ctx, p); err != nil {
			return imported, fmt.Errorf("save product %q: %w", p.ID, err)
		}
		imported++
	}

	return imported, nil
}

func parseRow(record []string, index map[string]int) (domain.Product, error) {
	p := domain.Product{
		ID:          pick(record, index, "id"),
		Title:       pick(record, index, "title"),
		Description: pick(record, index, "description"),
		Image:       pick(record, index, "image"),
		Category:    pick(record, index, "category"),
	}
	if p.ID == "" || p.Title == "" {
		return domain.Product{}, fmt.Errorf("id and title required: %w", domain.ErrInvalidInput)
	}

	price, err := decimal.NewFromString(pick(record, index, "price"))
	if err != nil || price.IsNegative() {
		return domain.Product{}, fmt.Errorf("invalid price for %q: %w", p.ID, domain.ErrInvalidInput)
	}
	p.Price = price

	if v := pick(record, index, "rate"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return domain.Product{}, fmt.Errorf("invalid rate for %q: %w", p.ID, domain.ErrInvalidInput)
		}
		p.Rating.Rate = rate
	}
	if v := pick(record, index, "count"); v != "" {
		count, err := strconv.Atoi(v)
		if err != nil || count < 0 {
			return domain.Product{}, fmt.Errorf("invalid count for %q: %w", p.ID, domain.ErrInvalidInput)
		}
		p.Rating.Count = count
	}
	return p, nil
}

// headerIndex maps canonical column names to positions. Unknown or repeated
// columns are rejected.
func headerIndex(headers []string) (map[string]int, error) {
	known := make(map[string]bool, len(requiredColumns)+len(optionalColumns))
	for _, col := range requiredColumns {
		known[col] = true
	}
	for _, col := range optionalColumns {
		known[col] = true
	}

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		name := strings.ToLower(strings.TrimSpace(h))
		if alias, ok := columnAliases[name]; ok {
			name = alias
		}
		if !known[name] {
			return nil, fmt.Errorf("unknown column %q: %w", h, domain.ErrInvalidInput)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate column %q: %w", h, domain.ErrInvalidInput)
		}
		index[name] = i
	}
	return index, nil
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
