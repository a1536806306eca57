package dashboard

import "sort"

// palette replaces the per-render random colors of the charts.
var palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

type Bar struct {
	Label string  `json:"label"`
	Group string  `json:"group,omitempty"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

type Chart struct {
	Title  string `json:"title"`
	XLabel string `json:"xLabel"`
	YLabel string `json:"yLabel"`
	Bars   []Bar  `json:"bars"`
}

func sortBars(bars []Bar, desc bool) {
	sort.SliceStable(bars, func(i, j int) bool {
		if desc {
			return bars[i].Value > bars[j].Value
		}
		return bars[i].Value < bars[j].Value
	})
}

func head(bars []Bar, n int) []Bar {
	if len(bars) > n {
		return bars[:n]
	}
	return bars
}

// colorEach gives every bar its own color.
func colorEach(bars []Bar) {
	for i := range bars {
		bars[i].Color = palette[i%len(palette)]
	}
}

// colorByGroup gives bars of the same group the same color, in order of first
// appearance.
func colorByGroup(bars []Bar) {
	assigned := map[string]string{}
	for i := range bars {
		c, ok := assigned[bars[i].Group]
		if !ok {
			c = palette[len(assigned)%len(palette)]
			assigned[bars[i].Group] = c
		}
		bars[i].Color = c
	}
}

func colorAll(bars []Bar, color string) {
	for i := range bars {
		bars[i].Color = color
	}
}
