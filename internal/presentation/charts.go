package presentation

import (
	"fmt"

	"github.com/wonny/finlens/internal/contracts"
)

// Chart is a Chart.js line chart configuration
type Chart struct {
	ID      string       `json:"-"`
	Title   string       `json:"-"`
	Type    string       `json:"type"`
	Data    ChartData    `json:"data"`
	Options ChartOptions `json:"options"`
}

// ChartData holds the x labels and the plotted series
type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// ChartDataset is one plotted line
type ChartDataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BorderColor     string    `json:"borderColor"`
	BackgroundColor string    `json:"backgroundColor"`
	BorderWidth     int       `json:"borderWidth"`
	PointRadius     int       `json:"pointRadius"`
	Fill            bool      `json:"fill"`
}

// ChartOptions holds the chart title and y axis title
type ChartOptions struct {
	Responsive bool `json:"responsive"`
	Plugins    struct {
		Title struct {
			Display bool   `json:"display"`
			Text    string `json:"text"`
		} `json:"title"`
	} `json:"plugins"`
	Scales struct {
		Y struct {
			Title struct {
				Display bool   `json:"display"`
				Text    string `json:"text"`
			} `json:"title"`
		} `json:"y"`
	} `json:"scales"`
}

// metricChart describes one of the five trend charts
type metricChart struct {
	id    string
	title string
	label string
	axis  string
	color string
	value func(contracts.QuarterRecord) float64
}

var metricCharts = []metricChart{
	{"sales", "Sales Trend (₹ Crores)", "Sales", "₹ Crores", "blue",
		func(q contracts.QuarterRecord) float64 { return q.Sales }},
	{"operating-profit", "Operating Profit (₹ Crores)", "Operating Profit", "₹ Crores", "green",
		func(q contracts.QuarterRecord) float64 { return q.OperatingProfit }},
	{"opm", "OPM%", "OPM%", "Percentage", "red",
		func(q contracts.QuarterRecord) float64 { return q.OPMPercent }},
	{"net-profit", "Net Profit (₹ Crores)", "Net Profit", "₹ Crores", "purple",
		func(q contracts.QuarterRecord) float64 { return q.NetProfit }},
	{"eps", "EPS", "EPS", "Earnings per Share", "orange",
		func(q contracts.QuarterRecord) float64 { return q.EPS }},
}

// ChartsTitle is the heading above the trend charts
func ChartsTitle(companyName string, quarters int) string {
	return fmt.Sprintf("%s - Financial Performance Trends (Last %d Quarters)", companyName, quarters)
}

// Charts builds the five trend charts for a series, x axis oldest first
func Charts(series contracts.NormalizedSeries) []Chart {
	labels := series.Quarters()

	charts := make([]Chart, 0, len(metricCharts))
	for _, m := range metricCharts {
		values := make([]float64, len(series))
		for i, q := range series {
			values[i] = m.value(q)
		}

		c := Chart{
			ID:    m.id,
			Title: m.title,
			Type:  "line",
			Data: ChartData{
				Labels: labels,
				Datasets: []ChartDataset{{
					Label:           m.label,
					Data:            values,
					BorderColor:     m.color,
					BackgroundColor: m.color,
					BorderWidth:     3,
					PointRadius:     4,
				}},
			},
		}
		c.Options.Responsive = true
		c.Options.Plugins.Title.Display = true
		c.Options.Plugins.Title.Text = m.title
		c.Options.Scales.Y.Title.Display = true
		c.Options.Scales.Y.Title.Text = m.axis

		charts = append(charts, c)
	}
	return charts
}
