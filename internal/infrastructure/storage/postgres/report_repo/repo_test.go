package report_repo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The dashboard counters are defined in terms of the movement event tables.
// These tests pin the predicates each query must carry so a rewrite cannot
// silently widen a counter.

func TestSoldCountersFilterActiveAndSumQuantity(t *testing.T) {
	for name, query := range map[string]string{
		"type counters":       typeCountersQuery,
		"signature movements": signatureMovementsQuery,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, query, "si.sale_status = 'active'",
				"sold must exclude given-back items")
			assert.Contains(t, query, "SUM(si.quantity_sold)",
				"sold aggregates quantity_sold, not row count")
		})
	}
}

func TestReturnedCountersFilterConfirmedReturns(t *testing.T) {
	assert.Contains(t, typeCountersQuery, "rt.status = 'returned'")
	assert.Contains(t, signatureMovementsQuery, "rt.status = 'returned'")
}

func TestGivenBackCountersSumQuantity(t *testing.T) {
	for name, tc := range map[string]struct {
		query string
		want  string
	}{
		"type counters": {
			query: typeCountersQuery,
			want:  "SUM(si.quantity_sold) FROM sale_items si WHERE si.sale_status = 'given_back'",
		},
		"signature movements": {
			query: signatureMovementsQuery,
			want:  "SUM(si.quantity_sold) AS c FROM sale_items si WHERE si.sale_status = 'given_back'",
		},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, collapseSpace(tc.query), tc.want,
				"give-backs aggregate quantity_sold")
		})
	}
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func TestInvoiceTotalsCountOnlyActiveItems(t *testing.T) {
	assert.Contains(t, invoiceTotalsQuery, "si.sale_status = 'active'")
	assert.Contains(t, invoiceTotalsQuery, "i.invoice_date::date = $1::date")
}

func TestLifetimeTotalsReadEventTables(t *testing.T) {
	assert.Contains(t, lifetimeTotalsQuery, "FROM sale_items")
	assert.Contains(t, lifetimeTotalsQuery, "FROM returns")
	assert.Contains(t, lifetimeTotalsQuery, "FROM replacements")
	assert.NotContains(t, lifetimeTotalsQuery, "FROM units",
		"unit status flips must not move the lifetime counters")

	assert.Contains(t, lifetimeTotalsQuery, "sale_status = 'active'")
	assert.Contains(t, lifetimeTotalsQuery, "sale_status = 'given_back'")
	assert.Contains(t, lifetimeTotalsQuery, "status = 'returned'")
}
