package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille character rendering for high-resolution terminal charts.
//
// Braille patterns use a 2x4 dot matrix per character:
//
//	  Col 0  Col 1
//	Row 0:   ⠁      ⠈     (dots 1, 4)
//	Row 1:   ⠂      ⠐     (dots 2, 5)
//	Row 2:   ⠄      ⠠     (dots 3, 6)
//	Row 3:   ⡀      ⢀     (dots 7, 8)
//
// Unicode braille starts at U+2800 (empty) and uses bit patterns:
// bit 0 = dot 1, bit 1 = dot 2, bit 2 = dot 3, bit 3 = dot 4,
// bit 4 = dot 5, bit 5 = dot 6, bit 6 = dot 7, bit 7 = dot 8

const brailleBase = '\u2800'

// sparklineBlocks are block characters for 8-level vertical resolution (lowest to highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// brailleDots maps [row][col] to the bit offset for a braille dot.
var brailleDots = [4][2]uint8{
	{0, 3},
	{1, 4},
	{2, 5},
	{6, 7},
}

// seriesRange returns the minimum and maximum of data. Sensor series have no
// natural scale (GSR sits near 1000, accel RMS below 5), so every chart is
// scaled to its own data.
func seriesRange(data []float64) (minVal, maxVal float64) {
	if len(data) == 0 {
		return 0, 1
	}
	minVal, maxVal = data[0], data[0]
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}

// normalizeValue converts a value to 0-1 range given min/max bounds.
func normalizeValue(val, minVal, maxVal float64) float64 {
	if maxVal > minVal {
		return (val - minVal) / (maxVal - minVal)
	}
	return 0.5
}

// clampInt clamps an integer to [0, maxVal].
func clampInt(val, maxVal int) int {
	if val < 0 {
		return 0
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// RenderBrailleChart renders data as a braille area chart scaled to
// [minVal, maxVal]. Each character holds 2 data points horizontally and 4
// levels vertically. Shorter series are right-aligned so the newest point
// always sits at the right edge.
func RenderBrailleChart(data []float64, width, height int, minVal, maxVal float64, color lipgloss.Color) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	totalDots := height * 4
	targetPoints := width * 2

	resampled := data
	if len(data) > targetPoints {
		resampled = resampleData(data, targetPoints)
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = brailleBase
		}
	}

	horizOffset := targetPoints - len(resampled)
	if horizOffset < 0 {
		horizOffset = 0
	}

	for i, val := range resampled {
		normalized := normalizeValue(val, minVal, maxVal)
		dotHeight := clampInt(int(normalized*float64(totalDots)), totalDots)
		if dotHeight == 0 {
			// Keep the floor of the series visible.
			dotHeight = 1
		}

		charCol := (i + horizOffset) / 2
		if charCol >= width {
			continue
		}
		subCol := (i + horizOffset) % 2

		for dot := 0; dot < dotHeight; dot++ {
			row := height - 1 - (dot / 4)
			if row < 0 {
				continue
			}
			subRow := 3 - (dot % 4)
			grid[row][charCol] |= rune(1 << brailleDots[subRow][subCol])
		}
	}

	style := lipgloss.NewStyle().Foreground(color)
	lines := make([]string, len(grid))
	for i, row := range grid {
		lines[i] = style.Render(string(row))
	}
	return strings.Join(lines, "\n")
}

// RenderBrailleSparkline renders data as a braille chart scaled to its own range.
func RenderBrailleSparkline(data []float64, width, height int, color lipgloss.Color) string {
	minVal, maxVal := seriesRange(data)
	return RenderBrailleChart(data, width, height, minVal, maxVal, color)
}

// RenderMiniSparkline renders a single-row sparkline using block characters.
func RenderMiniSparkline(data []float64, width int) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}

	minVal, maxVal := seriesRange(data)
	resampled := data
	if len(data) > width {
		resampled = resampleData(data, width)
	}

	var result strings.Builder
	for _, val := range resampled {
		normalized := normalizeValue(val, minVal, maxVal)
		idx := clampInt(int(normalized*float64(len(sparklineBlocks)-1)), len(sparklineBlocks)-1)
		result.WriteRune(sparklineBlocks[idx])
	}
	return result.String()
}

// RenderMarkerRow renders a 0/1 series as a single row of markers aligned
// with a braille chart of the same width: ▲ where any point in the column is
// set, · elsewhere.
func RenderMarkerRow(data []float64, width int, color lipgloss.Color) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}

	targetPoints := width * 2
	resampled := data
	if len(data) > targetPoints {
		resampled = resampleData(data, targetPoints)
	}
	horizOffset := targetPoints - len(resampled)
	if horizOffset < 0 {
		horizOffset = 0
	}

	marks := make([]bool, width)
	for i, val := range resampled {
		col := (i + horizOffset) / 2
		if col < width && val >= 0.5 {
			marks[col] = true
		}
	}

	markStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	dotStyle := lipgloss.NewStyle().Foreground(ColorBorder)

	var b strings.Builder
	for _, m := range marks {
		if m {
			b.WriteString(markStyle.Render("▲"))
		} else {
			b.WriteString(dotStyle.Render("·"))
		}
	}
	return b.String()
}

// resampleData resamples data to the target size.
// When downsampling, uses max-based sampling to preserve peaks.
// When upsampling, uses linear interpolation.
func resampleData(data []float64, targetSize int) []float64 {
	if len(data) == 0 || targetSize <= 0 {
		return nil
	}

	if len(data) == targetSize {
		return data
	}

	result := make([]float64, targetSize)

	if len(data) == 1 {
		for i := range result {
			result[i] = data[0]
		}
		return result
	}

	if len(data) > targetSize {
		bucketSize := float64(len(data)) / float64(targetSize)
		for i := 0; i < targetSize; i++ {
			start := int(float64(i) * bucketSize)
			end := int(float64(i+1) * bucketSize)
			if end > len(data) {
				end = len(data)
			}
			if start >= end {
				start = end - 1
			}
			if start < 0 {
				start = 0
			}

			maxVal := data[start]
			for j := start + 1; j < end; j++ {
				if data[j] > maxVal {
					maxVal = data[j]
				}
			}
			result[i] = maxVal
		}
		return result
	}

	scale := float64(len(data)-1) / float64(targetSize-1)
	for i := 0; i < targetSize; i++ {
		pos := float64(i) * scale
		idx := int(pos)
		frac := pos - float64(idx)

		if idx >= len(data)-1 {
			result[i] = data[len(data)-1]
		} else {
			result[i] = data[idx]*(1-frac) + data[idx+1]*frac
		}
	}

	return result
}
