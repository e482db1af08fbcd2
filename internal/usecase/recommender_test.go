package usecase

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/medrec/backend/internal/domain"
)

// fakeProvider is a hand-rolled domain.ProductProvider for engine tests.
type fakeProvider struct {
	products []domain.Product
	err      error
	forceOK  bool
}

func (f *fakeProvider) Products(ctx context.Context) ([]domain.Product, error) {
	return f.products, f.err
}

func (f *fakeProvider) ForceRefresh(ctx context.Context) bool {
	return f.forceOK
}

func newTestRecommender(provider *fakeProvider) *Recommender {
	return NewRecommender(NewMatcher(NewRuleRepository()), provider, RecommenderConfig{})
}

func diabetologiaCatalog() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Glukometr", Category: "diabetologia", Price: 50},
		{ID: "2", Name: "Paski testowe", Category: "diabetologia", Price: 20},
		{ID: "3", Name: "Lancety", Category: "diabetologia", Price: 80},
	}
}

func TestRecommend(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects empty query", func(t *testing.T) {
		engine := newTestRecommender(&fakeProvider{})
		for _, query := range []string{"", "   ", "\t\n"} {
			_, err := engine.Recommend(ctx, query, 10)
			if !errors.Is(err, domain.ErrInvalidQuery) {
				t.Errorf("Recommend(%q) error = %v, want ErrInvalidQuery", query, err)
			}
		}
	})

	t.Run("returns matching products sorted by price", func(t *testing.T) {
		engine := newTestRecommender(&fakeProvider{products: diabetologiaCatalog()})

		rec, err := engine.Recommend(ctx, "cukrzyca", 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var prices []float64
		for _, p := range rec.Products {
			prices = append(prices, p.Price)
		}
		if !reflect.DeepEqual(prices, []float64{20, 50, 80}) {
			t.Errorf("prices = %v, want [20 50 80]", prices)
		}
		if rec.Confidence <= 0 {
			t.Errorf("confidence = %v, want > 0", rec.Confidence)
		}
		if rec.Query != "cukrzyca" {
			t.Errorf("query = %q, want original input", rec.Query)
		}
	})

	t.Run("non-matching query yields empty result with zero confidence", func(t *testing.T) {
		engine := newTestRecommender(&fakeProvider{products: diabetologiaCatalog()})

		rec, err := engine.Recommend(ctx, "xyz123", 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rec.Products) != 0 {
			t.Errorf("products = %v, want empty", rec.Products)
		}
		if rec.Confidence != 0 {
			t.Errorf("confidence = %v, want 0", rec.Confidence)
		}
		if rec.Reasoning == "" {
			t.Error("reasoning should explain the missing match")
		}
	})

	t.Run("truncates to maxProducts keeping the cheapest", func(t *testing.T) {
		catalog := []domain.Product{
			{ID: "1", Category: "diabetologia", Price: 50},
			{ID: "2", Category: "diabetologia", Price: 20},
			{ID: "3", Category: "diabetologia", Price: 80},
			{ID: "4", Category: "diabetologia", Price: 10},
			{ID: "5", Category: "diabetologia", Price: 35},
		}
		engine := newTestRecommender(&fakeProvider{products: catalog})

		rec, err := engine.Recommend(ctx, "cukrzyca", 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rec.Products) != 2 {
			t.Fatalf("len(products) = %d, want 2", len(rec.Products))
		}
		if rec.Products[0].Price != 10 || rec.Products[1].Price != 20 {
			t.Errorf("products = %v, want the two cheapest", rec.Products)
		}
	})

	t.Run("breaks price ties by id", func(t *testing.T) {
		catalog := []domain.Product{
			{ID: "b", Category: "diabetologia", Price: 20},
			{ID: "a", Category: "diabetologia", Price: 20},
			{ID: "c", Category: "diabetologia", Price: 20},
		}
		engine := newTestRecommender(&fakeProvider{products: catalog})

		rec, err := engine.Recommend(ctx, "cukrzyca", 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var ids []string
		for _, p := range rec.Products {
			ids = append(ids, p.ID)
		}
		if !sort.StringsAreSorted(ids) {
			t.Errorf("ids = %v, want sorted as tie-break", ids)
		}
	})

	t.Run("no fallback when matched categories hold no products", func(t *testing.T) {
		catalog := []domain.Product{
			{ID: "1", Name: "Torba", Category: "torby", Price: 100},
		}
		engine := newTestRecommender(&fakeProvider{products: catalog})

		rec, err := engine.Recommend(ctx, "cukrzyca", 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rec.Products) != 0 {
			t.Errorf("products = %v, want empty (no full-catalog fallback)", rec.Products)
		}
		if rec.Confidence <= 0 {
			t.Errorf("confidence = %v, want > 0 (a rule matched)", rec.Confidence)
		}

		full := newTestRecommender(&fakeProvider{products: diabetologiaCatalog()})
		backed, err := full.Recommend(ctx, "cukrzyca", 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Confidence >= backed.Confidence {
			t.Errorf("empty-result confidence %v should be below backed confidence %v",
				rec.Confidence, backed.Confidence)
		}
	})

	t.Run("confidence stays within bounds for strong queries", func(t *testing.T) {
		catalog := []domain.Product{
			{ID: "1", Category: "sprzet_ratowniczy", Price: 10},
		}
		engine := newTestRecommender(&fakeProvider{products: catalog})

		rec, err := engine.Recommend(ctx, "ratownik paramedyk karetka pogotowie ambulans", 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Confidence < 0 || rec.Confidence > 1 {
			t.Errorf("confidence = %v, want in [0,1]", rec.Confidence)
		}
	})

	t.Run("is idempotent against an unchanged catalog", func(t *testing.T) {
		engine := newTestRecommender(&fakeProvider{products: diabetologiaCatalog()})

		first, err := engine.Recommend(ctx, "cukrzyca", 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := engine.Recommend(ctx, "cukrzyca", 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("results differ:\nfirst:  %+v\nsecond: %+v", first, second)
		}
	})

	t.Run("propagates catalog unavailability", func(t *testing.T) {
		engine := newTestRecommender(&fakeProvider{err: domain.ErrCatalogUnavailable})

		_, err := engine.Recommend(ctx, "cukrzyca", 10)
		if !errors.Is(err, domain.ErrCatalogUnavailable) {
			t.Errorf("error = %v, want ErrCatalogUnavailable", err)
		}
	})
}

func TestCategories(t *testing.T) {
	t.Run("groups the catalog by category", func(t *testing.T) {
		catalog := []domain.Product{
			{ID: "1", Category: "diabetologia"},
			{ID: "2", Category: "diabetologia"},
			{ID: "3", Category: "torby"},
		}
		engine := newTestRecommender(&fakeProvider{products: catalog})

		counts, err := engine.Categories(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := map[string]int{"diabetologia": 2, "torby": 1}
		if !reflect.DeepEqual(counts, want) {
			t.Errorf("counts = %v, want %v", counts, want)
		}
	})

	t.Run("propagates provider errors", func(t *testing.T) {
		engine := newTestRecommender(&fakeProvider{err: domain.ErrCatalogUnavailable})
		if _, err := engine.Categories(context.Background()); !errors.Is(err, domain.ErrCatalogUnavailable) {
			t.Errorf("error = %v, want ErrCatalogUnavailable", err)
		}
	})
}
