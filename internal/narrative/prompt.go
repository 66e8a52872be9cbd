package narrative

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"
	"text/template"

	"github.com/wonny/finlens/internal/contracts"
)

const promptTemplate = `Analyze the financial performance of {{.CompanyName}} based on the following quarterly data (values in Crores INR, except EPS):

{{.Table}}
Please provide a comprehensive analysis covering:
1. Sales trend and growth pattern
2. Operating profit margin (OPM%) trajectory and what it indicates
3. Net profit performance and its relation to operating profit
4. EPS growth and what it means for investors
5. Overall financial health and future outlook based on these trends

Keep the analysis professional yet accessible for retail investors.
Highlight any concerning trends or positive indicators.
Provide specific insights about each financial metric.
`

var promptTmpl = template.Must(template.New("prompt").Parse(promptTemplate))

// BuildPrompt renders the narrative request for a company's normalized series
// ⭐ SSOT: AI 분석 프롬프트는 여기서만 생성
func BuildPrompt(companyName string, series contracts.NormalizedSeries) (string, error) {
	var buf bytes.Buffer
	err := promptTmpl.Execute(&buf, struct {
		CompanyName string
		Table       string
	}{
		CompanyName: companyName,
		Table:       seriesTable(series),
	})
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return buf.String(), nil
}

// seriesTable lays the series out as a fixed-width table, oldest quarter first
func seriesTable(series contracts.NormalizedSeries) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintln(w, "Quarter\tSales\tOperating Profit\tOPM%\tNet Profit\tEPS\t")
	for _, q := range series {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t\n",
			q.Quarter, q.Sales, q.OperatingProfit, q.OPMPercent, q.NetProfit, q.EPS)
	}
	w.Flush()

	return sb.String()
}
