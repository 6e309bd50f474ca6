package dto

import "encoding/json"

// TimeseriesResponse is the body of
// /ws/fundamentals-timeseries/v1/finance/timeseries/{symbol}.
//
// Each result carries its series under a key equal to its type, e.g.
// {"meta": {"type": ["annualFreeCashFlow"]}, "annualFreeCashFlow": [...]},
// so results are kept raw and decoded in two steps.
type TimeseriesResponse struct {
	Timeseries struct {
		Result []map[string]json.RawMessage `json:"result"`
		Error  *APIError                    `json:"error"`
	} `json:"timeseries"`
}

type TimeseriesMeta struct {
	Symbol []string `json:"symbol"`
	Type   []string `json:"type"`
}

// TimeseriesPoint is one reported value. Yahoo pads series with nulls.
type TimeseriesPoint struct {
	AsOfDate      string `json:"asOfDate"`
	PeriodType    string `json:"periodType"`
	CurrencyCode  string `json:"currencyCode"`
	ReportedValue Value  `json:"reportedValue"`
}
