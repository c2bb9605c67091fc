package dashboard

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/rileyhilliard/tremor/internal/tremor"
)

func TestLevelColor(t *testing.T) {
	assert.Equal(t, ColorHealthy, LevelColor(tremor.GaugeGreen))
	assert.Equal(t, ColorWarning, LevelColor(tremor.GaugeYellow))
	assert.Equal(t, ColorCritical, LevelColor(tremor.GaugeRed))
}

func TestTremorColor(t *testing.T) {
	assert.Equal(t, ColorCritical, TremorColor(true))
	assert.Equal(t, ColorHealthy, TremorColor(false))
}

func TestGaugeBar(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		percent    float64
		wantFilled int
		wantWidth  int
	}{
		{"empty", 10, 0, 0, 10},
		{"half", 10, 50, 5, 10},
		{"full", 10, 100, 10, 10},
		{"over 100 clamps", 10, 160, 10, 10},
		{"negative clamps", 10, -5, 0, 10},
		{"rounds down", 20, 82, 16, 20},
		{"minimum width", 0, 100, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := GaugeBar(tt.width, tt.percent, tremor.GaugeYellow)
			assert.Equal(t, tt.wantFilled, strings.Count(bar, "━"))
			assert.Equal(t, tt.wantWidth-tt.wantFilled, strings.Count(bar, "─"))
			assert.Equal(t, tt.wantWidth, lipgloss.Width(bar))
		})
	}
}

func TestSectionLines(t *testing.T) {
	header := SectionHeader("Tremor Event Log (Latest 25)", "3 events", 60)
	assert.Equal(t, 60, lipgloss.Width(header))
	assert.True(t, strings.HasPrefix(header, "╭─ Tremor Event Log"))
	assert.True(t, strings.HasSuffix(header, "3 events ╮"))

	line := SectionContentLine("hello", 60)
	assert.Equal(t, 60, lipgloss.Width(line))
	assert.True(t, strings.HasPrefix(line, "│ hello"))

	assert.Equal(t, 60, lipgloss.Width(SectionFooter(60)))
}

func TestNoticeKind_String(t *testing.T) {
	assert.Equal(t, "info", NoticeInfo.String())
	assert.Equal(t, "error", NoticeError.String())
	assert.Equal(t, "unknown", NoticeKind(7).String())
}

func TestRenderNotice(t *testing.T) {
	assert.Contains(t, renderNotice(Notice{Kind: NoticeError, Text: "Failed to fetch data"}), "✗ Failed to fetch data")
	assert.Contains(t, renderNotice(Notice{Kind: NoticeInfo, Text: "No historical data found"}), "ℹ No historical data found")
}

func TestRaiseNotice(t *testing.T) {
	msg := raiseNotice(NoticeInfo, "hello")()
	assert.Equal(t, noticeMsg{notice: Notice{Kind: NoticeInfo, Text: "hello"}}, msg)
}
