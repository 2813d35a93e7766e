package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTable_AlignsColumns(t *testing.T) {
	lines := formatTable([]string{"n", "rate"}, [][]string{{"3", "33.3"}, {"10", "9"}}, map[int]bool{1: true})

	assert.Equal(t, []string{
		"n   rate",
		"3   33.3",
		"10     9",
	}, lines)
}

func TestWriteTable_PlainWhenNotATerminal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTable(&buf, []string{"doors", "stay %"}, [][]string{{"3", "33.3"}}, map[int]bool{0: true, 1: true}))

	assert.Equal(t, "doors  stay %\n    3    33.3\n", buf.String())
}
