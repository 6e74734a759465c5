package game

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const defaultStatsWidth = 80

type CategoryStats struct {
	Name      string
	RawCount  int
	Instances int
}

type SceneStats struct {
	Seed       uint32
	Categories []CategoryStats
	Millis     float64
}

func (s SceneStats) Total() int {
	total := 0
	for _, category := range s.Categories {
		total += category.Instances
	}
	return total
}

// CollectStats plans count consecutive scenes starting at first without a
// window.
func CollectStats(builder *SceneBuilder, first uint32, count int) []SceneStats {
	stats := make([]SceneStats, 0, count)
	for i := 0; i < count; i++ {
		plan := builder.Plan(first + uint32(i))
		sceneStats := SceneStats{
			Seed:   plan.Seed,
			Millis: builder.Timer().GetState("scene").Last(),
		}
		for _, placement := range plan.Placements {
			sceneStats.Categories = append(sceneStats.Categories, CategoryStats{
				Name:      placement.Category.Name,
				RawCount:  placement.RawCount,
				Instances: len(placement.Instances),
			})
		}
		stats = append(stats, sceneStats)
	}
	return stats
}

// OutputWidth is the terminal width of f, or a default when f is not a
// terminal.
func OutputWidth(f *os.File) int {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return defaultStatsWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return defaultStatsWidth
	}
	return width
}

// WriteStats prints one row per scene. Columns that do not fit into width are
// dropped from the right.
func WriteStats(w io.Writer, stats []SceneStats, width int) error {
	if len(stats) == 0 {
		return nil
	}
	const seedColumn, timeColumn, categoryColumn = 12, 10, 12
	columns := len(stats[0].Categories)
	if fit := (width - seedColumn - timeColumn - categoryColumn) / categoryColumn; fit < columns {
		columns = max(fit, 0)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-*s", seedColumn, "seed"))
	for _, category := range stats[0].Categories[:columns] {
		sb.WriteString(fmt.Sprintf("%*s", categoryColumn, truncate(category.Name, categoryColumn-1)))
	}
	sb.WriteString(fmt.Sprintf("%*s%*s\n", categoryColumn, "total", timeColumn, "ms"))

	for _, scene := range stats {
		sb.WriteString(fmt.Sprintf("%-*d", seedColumn, scene.Seed))
		for _, category := range scene.Categories[:min(columns, len(scene.Categories))] {
			sb.WriteString(fmt.Sprintf("%*s", categoryColumn, fmt.Sprintf("%d/%d", category.Instances, category.RawCount)))
		}
		sb.WriteString(fmt.Sprintf("%*d%*.1f\n", categoryColumn, scene.Total(), timeColumn, scene.Millis))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length]
}
