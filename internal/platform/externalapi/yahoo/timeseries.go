package yahoo

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"quikstox/internal/feature/stock/domain/entity"
	"quikstox/internal/platform/externalapi/yahoo/dto"
)

const asOfDateLayout = "2006-01-02"

// parseTimeseries turns timeseries results into a statement table.
// prefix ("annual" or "quarterly") is stripped from each series type and the
// remainder becomes the line item name, e.g. annualFreeCashFlow -> "Free Cash Flow".
func parseTimeseries(results []map[string]json.RawMessage, prefix string) (entity.StatementTable, error) {
	byDate := map[time.Time]map[string]float64{}

	for _, r := range results {
		rawMeta, ok := r["meta"]
		if !ok {
			continue
		}
		var meta dto.TimeseriesMeta
		if err := json.Unmarshal(rawMeta, &meta); err != nil {
			return entity.StatementTable{}, fmt.Errorf("decode timeseries meta: %w", err)
		}
		if len(meta.Type) == 0 {
			continue
		}
		key := meta.Type[0]
		rawSeries, ok := r[key]
		if !ok {
			// type requested but never reported by the issuer
			continue
		}
		var points []*dto.TimeseriesPoint
		if err := json.Unmarshal(rawSeries, &points); err != nil {
			return entity.StatementTable{}, fmt.Errorf("decode timeseries %s: %w", key, err)
		}

		row := lineItemName(strings.TrimPrefix(key, prefix))
		for _, p := range points {
			if p == nil {
				continue
			}
			v, ok := p.ReportedValue.V.(float64)
			if !ok {
				continue
			}
			d, err := time.Parse(asOfDateLayout, p.AsOfDate)
			if err != nil {
				continue
			}
			items, ok := byDate[d]
			if !ok {
				items = map[string]float64{}
				byDate[d] = items
			}
			items[row] = v
		}
	}

	cols := make([]entity.StatementColumn, 0, len(byDate))
	for d, items := range byDate {
		cols = append(cols, entity.StatementColumn{Period: d, Items: items})
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i].Period.After(cols[j].Period) })
	return entity.StatementTable{Columns: cols}, nil
}

// lineItemName splits a camel-case series name into words:
// "FreeCashFlow" -> "Free Cash Flow", "EBITDAMargin" -> "EBITDA Margin".
func lineItemName(s string) string {
	rs := []rune(s)
	var b strings.Builder
	for i, r := range rs {
		if i > 0 && unicode.IsUpper(r) {
			prev := rs[i-1]
			nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte(' ')
			}
		}
		if i == 0 {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
