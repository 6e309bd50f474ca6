// Package zacks reads the Zacks Rank, style scores and next earnings date
// from a rendered Zacks quote page.
package zacks

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"quikstox/internal/feature/stock/domain"
	"quikstox/internal/feature/stock/domain/entity"
)

// styleLabels are the composite score labels in page order.
var styleLabels = []string{"Value", "Growth", "Momentum", "VGM"}

// Extract parses a rendered quote page. It never fails: anything it cannot
// read comes back null, and an unreadable document yields EmptyRating.
func Extract(html string) entity.SecondaryRating {
	r, err := parse(html)
	if err != nil {
		slog.Warn("zacks extraction failed", "error", err)
		return entity.EmptyRating()
	}
	return r
}

func parse(html string) (entity.SecondaryRating, error) {
	if strings.TrimSpace(html) == "" {
		return entity.SecondaryRating{}, fmt.Errorf("empty document: %w", domain.ErrExtraction)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return entity.SecondaryRating{}, fmt.Errorf("parse document: %v: %w", err, domain.ErrExtraction)
	}

	return entity.SecondaryRating{
		ZacksRank:    rank(doc),
		StyleScores:  styleScores(doc),
		EarningsDate: earningsDate(doc),
	}, nil
}

// rank reads "3-Hold" style text from the first rank box outside the
// composite group.
func rank(doc *goquery.Document) *int {
	box := doc.Find(".zr_rankbox .rank_view").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Closest(".composite_group").Length() == 0
	}).First()
	if box.Length() == 0 {
		return nil
	}

	token, _, _ := strings.Cut(strings.TrimSpace(box.Text()), "-")
	n, err := strconv.Atoi(strings.TrimSpace(token))
	if err != nil || n < 1 || n > 5 {
		return nil
	}
	return &n
}

func styleScores(doc *goquery.Document) map[string]string {
	scores := map[string]string{}

	group := doc.Find(".composite_group .rank_view").First()
	if group.Length() == 0 {
		return scores
	}
	text := group.Text()
	vals := group.Find(".composite_val").Map(func(_ int, s *goquery.Selection) string {
		return strings.TrimSpace(s.Text())
	})

	for i, label := range styleLabels {
		if !strings.Contains(text, label) || i >= len(vals) || vals[i] == "" {
			continue
		}
		scores[label] = vals[i]
	}
	return scores
}

func earningsDate(doc *goquery.Document) *string {
	var out *string
	doc.Find("dl").EachWithBreak(func(_ int, dl *goquery.Selection) bool {
		if !strings.Contains(dl.Find("dt").Text(), "Earnings Date") {
			return true
		}
		if d := strings.TrimSpace(dl.Find("dd").First().Text()); d != "" {
			out = &d
		}
		return false
	})
	return out
}
