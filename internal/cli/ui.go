package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/xcross/internal/aggregate"
	"github.com/SeamusWaldron/xcross/internal/coord"
	"github.com/SeamusWaldron/xcross/internal/pipeline"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorWhite = lipgloss.Color("255")
	colorDim   = lipgloss.Color("240")
)

var (
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleLabel  = lipgloss.NewStyle().Foreground(colorDim)
	styleValue  = lipgloss.NewStyle().Foreground(colorWhite)
	styleNumber = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconRunning = lipgloss.NewStyle().Foreground(colorCyan)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconRunning = "›"
	iconPending = "·"
)

// stageLabels are the display names of the pipeline stages.
var stageLabels = map[pipeline.Stage]string{
	pipeline.StageMoveTables: "Move tables",
	pipeline.StageTableBL:    "BL pruning table",
	pipeline.StageTableBR:    "BR pruning table",
	pipeline.StageSymmetry:   "Cross symmetry",
	pipeline.StageAggregate:  "Aggregation",
}

// printSummary writes the styled run summary.
func printSummary(w io.Writer, res *pipeline.Result) {
	var b strings.Builder

	b.WriteString(styleTitle.Render("xcross summary"))
	b.WriteString("\n")

	row := func(label, value string) {
		fmt.Fprintf(&b, "  %s %s\n", styleLabel.Render(fmt.Sprintf("%-18s", label)), value)
	}
	duration := func(d time.Duration) string {
		return styleValue.Render(d.Round(time.Millisecond).String())
	}

	s := res.Stats
	row(stageLabels[pipeline.StageMoveTables], duration(s.MoveTableTime))
	row(stageLabels[pipeline.StageTableBL], duration(s.TableBLTime)+styleDim.Render(fmt.Sprintf("  diameter %d", s.DiameterBL)))
	row(stageLabels[pipeline.StageTableBR], duration(s.TableBRTime)+styleDim.Render(fmt.Sprintf("  diameter %d", s.DiameterBR)))
	row(stageLabels[pipeline.StageSymmetry], duration(s.SymmetryTime))
	row(stageLabels[pipeline.StageAggregate], duration(s.AggregateTime)+styleDim.Render(fmt.Sprintf("  %d crosses", s.CrossCount)))
	row("Total time", duration(s.TotalTime))
	row("Workers", styleNumber.Render(fmt.Sprint(res.Workers)))
	row("Configurations", styleNumber.Render(fmt.Sprint(res.Distribution.Total())))

	if res.Distribution.Total() == aggregate.ConfigurationSpace() {
		b.WriteString("  " + styleIconSuccess.Render(iconSuccess) + " total matches the configuration space\n")
	} else if s.CrossCount == coord.Cross.Size() {
		b.WriteString("  " + styleIconError.Render(iconError) + " total differs from the configuration space\n")
	}

	fmt.Fprint(w, b.String())
}
