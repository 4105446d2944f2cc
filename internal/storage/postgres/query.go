package postgres

import (
	"fmt"
	"strings"

	"github.com/jatinm79/Real-Estate-App/internal/domain"
)

// queryBuilder assembles optional AND-combined predicates with positional
// parameters emitted in append order. User values only ever travel through
// args, never through the SQL text.
type queryBuilder struct {
	conditions []string
	args       []any
	argID      int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{argID: 1}
}

// add appends a predicate; cond must contain exactly one %d for the
// positional parameter number.
func (qb *queryBuilder) add(cond string, arg any) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(cond, qb.argID))
	qb.args = append(qb.args, arg)
	qb.argID++
}

// where returns the assembled WHERE clause, or "" when no predicate was
// added.
func (qb *queryBuilder) where() string {
	if len(qb.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(qb.conditions, " AND ")
}

// next reserves the following positional parameter number for callers that
// append arguments outside the builder (e.g. a trailing id).
func (qb *queryBuilder) next() int {
	n := qb.argID
	qb.argID++
	return n
}

func applyPropertyFilters(f domain.PropertyFilters) *queryBuilder {
	qb := newQueryBuilder()
	if f.Location != nil {
		qb.add("p.location ILIKE $%d", "%"+*f.Location+"%")
	}
	if f.MinPrice != nil {
		qb.add("p.price >= $%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		qb.add("p.price <= $%d", *f.MaxPrice)
	}
	if f.ProjectName != nil {
		qb.add("p.project_name ILIKE $%d", "%"+*f.ProjectName+"%")
	}
	if f.PropertyType != nil {
		qb.add("p.property_type = $%d", *f.PropertyType)
	}
	if f.Bedrooms != nil {
		qb.add("p.bedrooms >= $%d", *f.Bedrooms)
	}
	if f.Bathrooms != nil {
		qb.add("p.bathrooms >= $%d", *f.Bathrooms)
	}
	return qb
}
