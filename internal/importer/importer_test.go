package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"product-details/internal/domain"
)

type stubProductRepo struct {
	items []domain.Product
}

func (s *stubProductRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.items = append(s.items, p)
	return &p, nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `id,title,description,price,image,category,rating.rate,rating.count
1,Backpack,"Fits 15"" laptops",109.95,https://example.com/1.jpg,men's clothing,3.9,120
,,,,,,,
2,Shirt,Slim fit,22.3,https://example.com/2.jpg,men's clothing,,`

	repo := &stubProductRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 2 || len(repo.items) != 2 {
		t.Fatalf("expected 2 products imported, got %d (%d saved)", count, len(repo.items))
	}

	first := repo.items[0]
	if first.ID != "1" || first.Title != "Backpack" || first.Description != `Fits 15" laptops` {
		t.Fatalf("unexpected product data: %+v", first)
	}
	if first.Price.StringFixed(2) != "109.95" || first.Rating.Rate != 3.9 || first.Rating.Count != 120 {
		t.Fatalf("unexpected price or rating: %+v", first)
	}
	if second := repo.items[1]; second.Price.StringFixed(2) != "22.30" || second.Rating.Count != 0 {
		t.Fatalf("unexpected second product: %+v", second)
	}
}

func TestCSVImporter_MissingColumn(t *testing.T) {
	imp := NewCSVImporter(strings.NewReader("id,title\n1,x\n"), &stubProductRepo{})
	_, err := imp.Run(context.Background())
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestCSVImporter_InvalidRow(t *testing.T) {
	csvData := "id,title,price,rate,count\n1,Ok,1.00,4,2\n2,Bad,-3,4,2\n3,Never,2,4,2\n"
	repo := &stubProductRepo{}
	count, err := NewCSVImporter(strings.NewReader(csvData), repo).Run(context.Background())
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("expected line number in error, got %v", err)
	}
	if count != 1 || len(repo.items) != 1 {
		t.Fatalf("expected only the first row saved, got %d", count)
	}
}

func TestCSVImporter_ShortRatingHeaders(t *testing.T) {
	csvData := "id,title,description,price,image,category,rate,count\n1,Pack,d,10,img,bags,3.9,120\n"
	repo := &stubProductRepo{}

	count, err := NewCSVImporter(strings.NewReader(csvData), repo).Run(context.Background())
	if err != nil || count != 1 {
		t.Fatalf("import run: n=%d err=%v", count, err)
	}
	if got := repo.items[0].Rating; got.Rate != 3.9 || got.Count != 120 {
		t.Fatalf("rating not imported: %+v", got)
	}
}

func TestCSVImporter_RejectsBadHeaders(t *testing.T) {
	cases := map[string]string{
		"missing rating": "id,title,price\n1,x,1\n",
		"missing count":  "id,title,price,rate\n1,x,1,2\n",
		"unknown column": "id,title,price,rate,count,stars\n1,x,1,2,3,4\n",
		"duplicate rate": "id,title,price,rate,rating.rate,count\n1,x,1,2,2,3\n",
	}
	for name, csvData := range cases {
		repo := &stubProductRepo{}
		_, err := NewCSVImporter(strings.NewReader(csvData), repo).Run(context.Background())
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("%s: expected invalid input, got %v", name, err)
		}
		if len(repo.items) != 0 {
			t.Fatalf("%s: expected nothing saved, got %d", name, len(repo.items))
		}
	}
}
