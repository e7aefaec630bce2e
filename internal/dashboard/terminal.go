package dashboard

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
)

const labelWidth = 14

// section groups regions under a heading, in display order.
type section struct {
	title   string
	regions []Region
}

var layout = []section{
	{title: "Search", regions: []Region{RegionSearch}},
	{title: "Now", regions: []Region{
		RegionCity, RegionTemp, RegionSky, RegionDate, RegionTime,
	}},
	{title: "Details", regions: []Region{
		RegionFeelsLike, RegionHumidity, RegionPressure, RegionVisibility,
		RegionWind, RegionSunrise, RegionSunset,
	}},
	{title: "Air quality", regions: []Region{RegionCO, RegionSO2, RegionO3, RegionNO2}},
	{title: "Today", regions: []Region{RegionHourly}},
	{title: "Next 5 days", regions: []Region{RegionForecast}},
}

var regionLabels = map[Region]string{
	RegionSearch:     "City",
	RegionCity:       "Location",
	RegionTemp:       "Temperature",
	RegionSky:        "Sky",
	RegionDate:       "Date",
	RegionTime:       "Time",
	RegionFeelsLike:  "Feels like",
	RegionHumidity:   "Humidity",
	RegionPressure:   "Pressure",
	RegionVisibility: "Visibility",
	RegionWind:       "Wind",
	RegionSunrise:    "Sunrise",
	RegionSunset:     "Sunset",
	RegionCO:         "CO",
	RegionSO2:        "SO2",
	RegionO3:         "O3",
	RegionNO2:        "NO2",
}

// TerminalRenderer keeps the last content of every region and redraws the
// whole dashboard on each update. It also implements Alerter.
type TerminalRenderer struct {
	mu      sync.Mutex
	out     io.Writer
	clear   bool
	regions map[Region]Update
}

// NewTerminalRenderer writes to f, clearing the screen between frames when
// f is a terminal.
func NewTerminalRenderer(f *os.File) *TerminalRenderer {
	tty := isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	return &TerminalRenderer{
		out:     colorable.NewColorable(f),
		clear:   tty,
		regions: make(map[Region]Update),
	}
}

// NewWriterRenderer writes plain frames to w.
func NewWriterRenderer(w io.Writer) *TerminalRenderer {
	return &TerminalRenderer{
		out:     w,
		regions: make(map[Region]Update),
	}
}

func (t *TerminalRenderer) Render(updates []Update) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, u := range updates {
		t.regions[u.Region] = u
	}
	t.draw()
}

func (t *TerminalRenderer) Alert(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.out, "\x1b[1;31m!\x1b[0m %s\n", message)
}

// Region returns the current content of r.
func (t *TerminalRenderer) Region(r Region) (Update, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	u, ok := t.regions[r]
	return u, ok
}

func (t *TerminalRenderer) draw() {
	var b strings.Builder
	if t.clear {
		b.WriteString("\x1b[H\x1b[2J")
	}

	for _, sec := range layout {
		var lines []string
		for _, r := range sec.regions {
			u, ok := t.regions[r]
			if !ok {
				continue
			}
			if label, scalar := regionLabels[r]; scalar {
				if u.Text != "" {
					lines = append(lines, "  "+runewidth.FillRight(label, labelWidth)+u.Text)
				}
				continue
			}
			for _, row := range u.Rows {
				lines = append(lines, formatRow(row))
			}
		}
		if len(lines) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\x1b[1m%s\x1b[0m\n", sec.title)
		for _, l := range lines {
			b.WriteString(l)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}

	_, _ = io.WriteString(t.out, b.String())
}

func formatRow(r Row) string {
	line := "  " + runewidth.FillRight(r.Label, labelWidth) + runewidth.FillRight(r.Value, 10)
	if r.Note != "" {
		line += "  " + r.Note
	}
	return strings.TrimRight(line, " ")
}
