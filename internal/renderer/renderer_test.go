package renderer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/aleister1102/grammarwhiz/internal/differ"
	"github.com/aleister1102/grammarwhiz/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleScript() differ.Script {
	return differ.Script{
		{Type: differ.Equal, Text: "今天天气很好，我们去公园"},
		{Type: differ.Delete, Text: "玩"},
		{Type: differ.Insert, Text: "散步"},
		{Type: differ.Equal, Text: "。"},
	}
}

func TestHTML(t *testing.T) {
	got := HTML(sampleScript())
	assert.Equal(t,
		`今天天气很好，我们去公园<del class="gw-del">玩</del><ins class="gw-ins">散步</ins>。`,
		string(got))
}

func TestHTML_EscapesText(t *testing.T) {
	got := HTML(differ.Script{
		{Type: differ.Equal, Text: "a<b>"},
		{Type: differ.Insert, Text: `"&"`},
	})
	assert.Equal(t, `a&lt;b&gt;<ins class="gw-ins">&#34;&amp;&#34;</ins>`, string(got))
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "No textual changes detected.", Summary(differ.DiffStatistics{IsIdentical: true}))
	assert.Equal(t, "1 changes: 2 characters added (+), 1 deleted (-).",
		Summary(differ.DiffStatistics{Changes: 1, CharsAdded: 2, CharsDeleted: 1}))
}

func TestHTMLReporter_Write(t *testing.T) {
	reporter, err := NewHTMLReporter()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = reporter.Write(&buf, ReportData{
		Scenario:     models.ScenarioPublishing,
		GeneratedAt:  time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC),
		Script:       sampleScript(),
		Stats:        differ.NewDiffStatsCalculator().CalculateStats(sampleScript()),
		Explanations: []string{"“玩”改为<散步>"},
	})
	require.NoError(t, err)

	page := buf.String()
	assert.Contains(t, page, "<title>GrammarWhiz</title>")
	assert.Contains(t, page, `<del class="gw-del">玩</del><ins class="gw-ins">散步</ins>`)
	assert.Contains(t, page, "2026-10-17 09:30:00")
	assert.Contains(t, page, "新闻出版 (严谨)")
	assert.Contains(t, page, "<li>“玩”改为&lt;散步&gt;</li>")
}

func TestConsoleRenderer_Markers(t *testing.T) {
	var out bytes.Buffer
	c := NewConsoleRenderer(&out, true)

	assert.Equal(t, "今天天气很好，我们去公园[-玩-]{+散步+}。", c.Diff(sampleScript()))
}

func TestConsoleRenderer_PreservesTextAndOrder(t *testing.T) {
	var out bytes.Buffer
	script := differ.Script{
		{Type: differ.Equal, Text: "第一行\n"},
		{Type: differ.Delete, Text: "旧\t内容\n第二"},
		{Type: differ.Insert, Text: "新"},
	}

	got := Console(&out, script, false)
	assert.Equal(t, "第一行\n旧\t内容\n第二新", got)
}

func TestConsoleRenderer_Explanations(t *testing.T) {
	var out bytes.Buffer
	c := NewConsoleRenderer(&out, false)

	got := c.Explanations([]string{"补全句号", "删除重复词"})
	assert.True(t, strings.HasPrefix(got, "Explanations"))
	assert.Contains(t, got, "\n1. 补全句号\n2. 删除重复词")
	assert.Equal(t, "No explanations provided.", c.Explanations(nil))
}
