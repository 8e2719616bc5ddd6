package out

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hrmon/internal/modules/chart/domain"
	chartout "hrmon/internal/modules/chart/port/out"
)

const (
	axisWidth  = 5
	minPlotW   = 8
	minPlotH   = 3
	timeLayout = "15:04:05"
)

var levels = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

var (
	plotStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
	axisStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#74c7ec")).Bold(true)
)

// TerminalChart draws the series as a filled column plot sized to its
// container, in cells. When there are more points than columns, each column
// shows the mean of its bucket so the whole session stays visible.
type TerminalChart struct {
	size   domain.Size
	option domain.Option
	inited bool
}

func NewTerminalChart() chartout.Chart {
	return &TerminalChart{}
}

func (c *TerminalChart) Init(container domain.Container) error {
	c.size = container.Size
	c.inited = true
	return nil
}

func (c *TerminalChart) SetOption(option domain.Option) error {
	c.option = option
	return nil
}

func (c *TerminalChart) Resize(size domain.Size) error {
	c.size = size
	return nil
}

func (c *TerminalChart) Render(w io.Writer) error {
	if !c.inited {
		return nil
	}
	_, err := io.WriteString(w, c.frame())
	return err
}

func (c *TerminalChart) frame() string {
	plotW := c.size.Width - axisWidth - 1
	plotH := c.size.Height - 2 // title and time axis
	if plotW < minPlotW {
		plotW = minPlotW
	}
	if plotH < minPlotH {
		plotH = minPlotH
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(c.option.Title))
	sb.WriteString(axisStyle.Render(fmt.Sprintf("  (%s / %s)", c.option.YAxisName, c.option.XAxisName)))
	sb.WriteString("\n")

	lo, hi, ok := c.option.Range()
	if !ok {
		sb.WriteString(axisStyle.Render("waiting for samples"))
		return sb.String()
	}
	// Keep a little headroom so a flat series is still visible.
	lo = math.Floor(lo) - 5
	if lo < 0 {
		lo = 0
	}
	hi = math.Ceil(hi) + 5

	columns := bucket(c.option.Points, plotW)
	cells := plotH * (len(levels) - 1)
	for row := plotH - 1; row >= 0; row-- {
		label := ""
		switch row {
		case plotH - 1:
			label = fmt.Sprintf("%*.0f", axisWidth, hi)
		case 0:
			label = fmt.Sprintf("%*.0f", axisWidth, lo)
		default:
			label = strings.Repeat(" ", axisWidth)
		}
		line := make([]rune, len(columns))
		for i, v := range columns {
			filled := int(math.Round((v - lo) / (hi - lo) * float64(cells)))
			rest := filled - row*(len(levels)-1)
			switch {
			case rest <= 0:
				line[i] = levels[0]
			case rest >= len(levels)-1:
				line[i] = levels[len(levels)-1]
			default:
				line[i] = levels[rest]
			}
		}
		sb.WriteString(axisStyle.Render(label + "┤"))
		sb.WriteString(plotStyle.Render(string(line)))
		sb.WriteString("\n")
	}

	first := c.option.Points[0].At.Format(timeLayout)
	last := c.option.Points[len(c.option.Points)-1].At.Format(timeLayout)
	gap := len(columns) - len(first) - len(last)
	if gap < 1 {
		gap = 1
	}
	sb.WriteString(axisStyle.Render(strings.Repeat(" ", axisWidth+1) + first + strings.Repeat(" ", gap) + last))
	return sb.String()
}

func bucket(points []domain.Point, width int) []float64 {
	if len(points) <= width {
		out := make([]float64, len(points))
		for i, p := range points {
			out[i] = p.Value
		}
		return out
	}
	out := make([]float64, width)
	for col := 0; col < width; col++ {
		start := col * len(points) / width
		end := (col + 1) * len(points) / width
		sum := 0.0
		for _, p := range points[start:end] {
			sum += p.Value
		}
		out[col] = sum / float64(end-start)
	}
	return out
}
