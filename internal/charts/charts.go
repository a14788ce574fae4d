package charts

import (
	"fmt"
	"io"
	"os"

	"dept-dashboard/internal/model"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Fixed output filenames; both are overwritten on every render.
const (
	BarChartFile = "employees_per_department.png"
	PieChartFile = "projects_by_department.png"
)

var barColor = drawing.ColorFromHex("3498db")

// RenderBar draws the employees-per-department bar chart to path, one bar
// per department in the order the counts arrive (descending by count).
func RenderBar(counts []model.Count, path string) error {
	if len(counts) == 0 {
		return fmt.Errorf("no department counts to plot")
	}

	bars := make([]chart.Value, 0, len(counts))
	for _, c := range counts {
		bars = append(bars, chart.Value{
			Label: c.Name,
			Value: float64(c.Count),
			Style: chart.Style{FillColor: barColor, StrokeColor: barColor},
		})
	}

	graph := chart.BarChart{
		Title:  "Number of Employees per Department",
		Width:  1200,
		Height: 700,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		BarWidth: 60,
		XAxis: chart.Style{
			TextRotationDegrees: 45.0,
		},
		Bars: bars,
	}

	return renderToFile(&graph, path)
}

// RenderPie draws the projects-per-department pie chart to path. Labels
// carry the percentage share to one decimal place; slices get a white edge
// so adjacent slices stay distinct.
func RenderPie(counts []model.Count, path string) error {
	if len(counts) == 0 {
		return fmt.Errorf("no project counts to plot")
	}

	total := 0
	for _, c := range counts {
		total += c.Count
	}

	values := make([]chart.Value, 0, len(counts))
	for _, c := range counts {
		pct := 100 * float64(c.Count) / float64(total)
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%.1f%%)", c.Name, pct),
			Value: float64(c.Count),
			Style: chart.Style{
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 1.5,
			},
		})
	}

	graph := chart.PieChart{
		Title:  "Project Distribution by Department",
		Width:  1000,
		Height: 1000,
		Values: values,
	}

	return renderToFile(&graph, path)
}

type pngRenderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

func renderToFile(graph pngRenderable, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file %s: %w", path, err)
	}
	if err := graph.Render(chart.PNG, f); err != nil {
		f.Close()
		return fmt.Errorf("failed to render chart %s: %w", path, err)
	}
	return f.Close()
}
