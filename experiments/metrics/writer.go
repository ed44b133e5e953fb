package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// SearchRecord is one root decision made during a benchmark.
type SearchRecord struct {
	Tree   int
	Action string
	Value  float64
	SearchMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates a subfolder of dir named by the current timestamp.
func NewWriter(dir, name string, now time.Time) (*Writer, error) {
	timestamp := now.UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(dir, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteSearchRecords(records []SearchRecord) error {
	header := []string{"tree", "algorithm", "depth", "action", "value", "duration", "nodes", "evaluations", "cutoffs"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Tree),
			record.Algorithm,
			strconv.Itoa(record.Depth),
			record.Action,
			strconv.FormatFloat(record.Value, 'g', -1, 64),
			record.Duration.String(),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Evaluations),
			strconv.Itoa(record.Cutoffs),
		})
	}
	return w.writeCSV("search_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveMetric) error {
	header := []string{"step", "agent", "algorithm", "depth", "duration", "nodes", "evaluations", "cutoffs"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Agent),
			record.Algorithm,
			strconv.Itoa(record.Depth),
			record.Duration.String(),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Evaluations),
			strconv.Itoa(record.Cutoffs),
		})
	}
	return w.writeCSV("move_records.csv", header, rows)
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}

// WriteNodesChart renders the average number of generated nodes per depth, one line per
// algorithm, to nodes.html.
func (w *Writer) WriteNodesChart(records []SearchRecord) error {
	depths, series := AverageNodes(records)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Nodes generated per root decision",
			Subtitle: fmt.Sprintf("%d searches", len(records)),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "depth"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "nodes", Type: "log"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	labels := make([]string, len(depths))
	for i, d := range depths {
		labels[i] = strconv.Itoa(d)
	}
	line.SetXAxis(labels)

	algorithms := make([]string, 0, len(series))
	for algorithm := range series {
		algorithms = append(algorithms, algorithm)
	}
	sort.Strings(algorithms)
	for _, algorithm := range algorithms {
		items := make([]opts.LineData, 0, len(depths))
		for _, avg := range series[algorithm] {
			items = append(items, opts.LineData{Value: avg})
		}
		line.AddSeries(algorithm, items)
	}

	page := components.NewPage()
	page.AddCharts(line)

	path := filepath.Join(w.baseDir, "nodes.html")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// AverageNodes groups records by algorithm and returns, for every depth in ascending order,
// the mean number of generated nodes.
func AverageNodes(records []SearchRecord) (depths []int, series map[string][]float64) {
	type key struct {
		algorithm string
		depth     int
	}
	sums := make(map[key]float64)
	counts := make(map[key]int)
	seen := make(map[int]bool)
	for _, r := range records {
		k := key{r.Algorithm, r.Depth}
		sums[k] += float64(r.Nodes)
		counts[k]++
		if !seen[r.Depth] {
			seen[r.Depth] = true
			depths = append(depths, r.Depth)
		}
	}
	sort.Ints(depths)

	series = make(map[string][]float64)
	for k := range counts {
		if _, ok := series[k.algorithm]; !ok {
			series[k.algorithm] = make([]float64, len(depths))
		}
	}
	for algorithm, values := range series {
		for i, d := range depths {
			k := key{algorithm, d}
			if counts[k] > 0 {
				values[i] = sums[k] / float64(counts[k])
			}
		}
	}
	return depths, series
}
