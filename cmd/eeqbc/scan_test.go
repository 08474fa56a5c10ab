package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grimme-lab/SI-EEQ-BC/scan"
)

// The default flag set must reproduce the CH4-O2 scan of the
// publication: the O2 fragment sits at y = 2.0 in the template, so
// the fragment selector has to find it there out of the box.
func TestScanDefaultsMatchTemplate(t *testing.T) {
	coord, err := scanCmd.Flags().GetFloat64("coord")
	require.NoError(t, err)
	assert.Equal(t, 2.0, coord)

	template := filepath.Join("..", "..", "test", "ch4o2.xyz")
	if _, err := os.Stat(template); err != nil {
		t.Skip("template fixture not present")
	}
	start, _ := scanCmd.Flags().GetFloat64("start")
	stop, _ := scanCmd.Flags().GetFloat64("stop")
	step, _ := scanCmd.Flags().GetFloat64("step")
	element, _ := scanCmd.Flags().GetString("element")
	axisFlag, _ := scanCmd.Flags().GetString("axis")
	axis, err := scan.ParseAxis(axisFlag)
	require.NoError(t, err)

	opt := scan.Options{
		Start: start, Stop: stop, Step: step,
		Axis: axis, Symbol: element, Coord: coord,
	}
	dirs, err := scan.Run(template, t.TempDir(), opt)
	require.NoError(t, err)
	assert.Len(t, dirs, 66)
}
