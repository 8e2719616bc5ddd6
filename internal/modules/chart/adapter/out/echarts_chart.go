package out

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"hrmon/internal/modules/chart/domain"
	chartout "hrmon/internal/modules/chart/port/out"
)

const assetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// EChartsChart renders the series as a go-echarts line chart fragment: the
// library scripts, the chart element and its init script. Each Render builds
// the chart from the current option and container size. The element spans
// the page width and follows window resizes in the browser.
type EChartsChart struct {
	theme     string
	container domain.Container
	option    domain.Option
	inited    bool
}

func NewEChartsChart(theme string) chartout.Chart {
	return &EChartsChart{theme: theme}
}

func (c *EChartsChart) Init(container domain.Container) error {
	c.container = container
	c.inited = true
	return nil
}

func (c *EChartsChart) SetOption(option domain.Option) error {
	c.option = option
	return nil
}

func (c *EChartsChart) Resize(size domain.Size) error {
	c.container.Size = size
	return nil
}

func (c *EChartsChart) Render(w io.Writer) error {
	if !c.inited {
		return nil
	}
	snippet := c.build().RenderSnippet()
	_, err := io.WriteString(w, c.assets()+snippet.Element+snippet.Script)
	return err
}

func (c *EChartsChart) assets() string {
	tags := fmt.Sprintf("<script src=%q></script>", assetsHost+"echarts.min.js")
	switch c.theme {
	case "", "white", "dark":
	default:
		tags += fmt.Sprintf("<script src=%q></script>", assetsHost+"themes/"+c.theme+".js")
	}
	return tags
}

func (c *EChartsChart) build() *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: c.option.Title,
			ChartID:   c.container.ID,
			Theme:     c.theme,
			Width:     "100%",
			Height:    px(c.container.Size.Height),
		}),
		charts.WithTitleOpts(opts.Title{Title: c.option.Title}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithXAxisOpts(opts.XAxis{Type: "time", Name: c.option.XAxisName}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: c.option.YAxisName}),
	)

	line.AddSeries(c.option.SeriesName, lineItems(c.option.Points),
		charts.WithLineChartOpts(opts.LineChart{
			Smooth:     opts.Bool(c.option.Smooth),
			ShowSymbol: opts.Bool(c.option.ShowSymbol),
		}),
		charts.WithLineStyleOpts(opts.LineStyle{Width: c.option.LineWidth}),
	)
	line.AddJSFuncStrs(opts.FuncOpts(resizeHook(c.container.ID)))
	return line
}

// lineItems converts points to [unix-ms, value] pairs for a time axis.
func lineItems(points []domain.Point) []opts.LineData {
	items := make([]opts.LineData, 0, len(points))
	for _, p := range points {
		items = append(items, opts.LineData{Value: []interface{}{p.At.UnixMilli(), p.Value}})
	}
	return items
}

// resizeHook re-fits the chart instance go-echarts declares for id whenever
// the browser window changes size.
func resizeHook(id string) string {
	return fmt.Sprintf("window.addEventListener('resize', function () { goecharts_%s.resize(); });", id)
}

func px(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%dpx", n)
}
