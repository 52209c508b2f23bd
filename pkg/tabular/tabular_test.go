package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trackerHeader = "DESCRIPTION" + "       " + "DURATION" + "    " + "START" + "     " + "STOP" + "  " + "PROJECT" + "        " + "ID" + "  " + "TAGS"

const trackerLine = "Writing report" + "     " + "1:30:15" + " " + "09:00:00" + " " + "10:30:15" + "  " + "Dev (#123)" + "     " + "101" + " " + "docs, work"

func TestOffsets(t *testing.T) {
	offsets := Offsets(trackerHeader)
	// DURATION starts at 18 and, being right-aligned, also ends a column
	// at 26; START and STOP close at 35 and 44; ID and TAGS open at 61
	// and 65.
	assert.Equal(t, []int{18, 26, 35, 44, 61, 65}, offsets)
}

func TestOffsetsLeftAlignedOnly(t *testing.T) {
	header := "NAME" + "          " + "CLIENT" + "  " + "ACTIVE" + "  " + "ID" + "  " + "HEX_COLOR"
	offsets := Offsets(header)
	assert.Equal(t, []int{14, 22, 30, 34}, offsets)
}

func TestSplitLine(t *testing.T) {
	offsets := Offsets(trackerHeader)
	fields := SplitLine(offsets, trackerLine, nil)
	require.Len(t, fields, 7)
	assert.Equal(t, []string{
		"Writing report", "1:30:15", "09:00:00", "10:30:15",
		"Dev (#123)", "101", "docs, work",
	}, fields)
}

func TestSplitLineSkipsSeenNames(t *testing.T) {
	offsets := Offsets(trackerHeader)
	seen := map[string]bool{"Writing report": true}
	assert.Nil(t, SplitLine(offsets, trackerLine, seen))

	seen = map[string]bool{"Something else": true}
	assert.NotNil(t, SplitLine(offsets, trackerLine, seen))
}

func TestSplitLineMultibyteDescription(t *testing.T) {
	offsets := Offsets(trackerHeader)

	// "Métriques" is 9 characters but 10 bytes; the column boundaries
	// must follow the character alignment of the tool's output.
	line := "Métriques" + "          " + "1:30:15" + " " + "09:00:00" + " " + "10:30:15" + "  " + "Dev (#123)" + "     " + "101" + " " + "docs, work"
	fields := SplitLine(offsets, line, nil)
	require.Len(t, fields, 7)
	assert.Equal(t, []string{
		"Métriques", "1:30:15", "09:00:00", "10:30:15",
		"Dev (#123)", "101", "docs, work",
	}, fields)
}

func TestSplitLineShortLine(t *testing.T) {
	offsets := Offsets(trackerHeader)
	fields := SplitLine(offsets, "Quick note", nil)
	require.Len(t, fields, 7)
	assert.Equal(t, "Quick note", fields[0])
	for _, f := range fields[1:] {
		assert.Empty(t, f)
	}
}

func TestSplitLineRoundTrip(t *testing.T) {
	offsets := Offsets(trackerHeader)

	// Each header cell sliced by its own offsets yields the column names
	// back, which pins down that boundaries never cut through a word.
	fields := SplitLine(offsets, trackerHeader, nil)
	assert.Equal(t, []string{
		"DESCRIPTION", "DURATION", "START", "STOP", "PROJECT", "ID", "TAGS",
	}, fields)
}
