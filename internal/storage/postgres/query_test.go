package postgres

import (
	"testing"

	"github.com/jatinm79/Real-Estate-App/internal/domain"
)

func strp(s string) *string   { return &s }
func intp(i int) *int         { return &i }
func fltp(f float64) *float64 { return &f }

func TestQueryBuilder_NoFilters(t *testing.T) {
	qb := applyPropertyFilters(domain.PropertyFilters{})
	if qb.where() != "" {
		t.Fatalf("expected empty WHERE, got %q", qb.where())
	}
	if len(qb.args) != 0 {
		t.Fatalf("expected no args, got %v", qb.args)
	}
	if n := qb.next(); n != 1 {
		t.Fatalf("expected next positional to be 1, got %d", n)
	}
}

func TestQueryBuilder_AllFilters(t *testing.T) {
	qb := applyPropertyFilters(domain.PropertyFilters{
		Location:     strp("Mumbai"),
		MinPrice:     fltp(100),
		MaxPrice:     fltp(200),
		ProjectName:  strp("Lakeview"),
		PropertyType: strp("villa"),
		Bedrooms:     intp(2),
		Bathrooms:    intp(1),
	})

	want := " WHERE p.location ILIKE $1 AND p.price >= $2 AND p.price <= $3" +
		" AND p.project_name ILIKE $4 AND p.property_type = $5" +
		" AND p.bedrooms >= $6 AND p.bathrooms >= $7"
	if got := qb.where(); got != want {
		t.Fatalf("where mismatch:\n got %q\nwant %q", got, want)
	}

	if len(qb.args) != 7 {
		t.Fatalf("expected 7 args, got %d", len(qb.args))
	}
	if qb.args[0] != "%Mumbai%" || qb.args[3] != "%Lakeview%" {
		t.Fatalf("substring filters not wrapped: %v", qb.args)
	}
	if qb.args[4] != "villa" {
		t.Fatalf("exact filter wrapped unexpectedly: %v", qb.args[4])
	}
	if n := qb.next(); n != 8 {
		t.Fatalf("expected next positional to be 8, got %d", n)
	}
}

func TestQueryBuilder_SparseFilters(t *testing.T) {
	qb := applyPropertyFilters(domain.PropertyFilters{
		MaxPrice: fltp(500),
		Bedrooms: intp(3),
	})

	want := " WHERE p.price <= $1 AND p.bedrooms >= $2"
	if got := qb.where(); got != want {
		t.Fatalf("where mismatch:\n got %q\nwant %q", got, want)
	}
	if qb.args[0] != 500.0 || qb.args[1] != 3 {
		t.Fatalf("unexpected args: %v", qb.args)
	}
}
