package plots

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grimme-lab/SI-EEQ-BC/tables"
)

func testCurve(methods ...string) *tables.Curve {
	c := &tables.Curve{Methods: methods}
	xs := []float64{1.5, 2.0, 3.0, 8.0}
	for i, x := range xs {
		pt := tables.CurvePoint{CID: tables.PointCID(x), X: x, Values: map[string]float64{}}
		for j, m := range methods {
			pt.Values[m] = -0.1*float64(i) + 0.01*float64(j)
		}
		c.Points = append(c.Points, pt)
	}
	return c
}

func TestCharges(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "plot_methaneo2.svg")
	curve := testCurve("EEQ", "EEQ_BC", "CEH-v2", "wB97M-V")
	err := Charges(curve, out, Options{RefLine: 3.477})
	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	svg := string(data)
	assert.True(t, strings.Contains(svg, "<svg"))
	assert.True(t, strings.Contains(svg, "EEQ-BC"))
	assert.True(t, strings.Contains(svg, "distance"))
}

func TestEnergies(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "plot_nh4f_energies.svg")
	curve := testCurve("GFN2-xTB", "wB97M-V_dSCF")
	err := Energies(curve, out, Options{})
	require.NoError(t, err)
	_, err = os.Stat(out)
	require.NoError(t, err)
}

func TestUnknownMethod(t *testing.T) {
	dir := t.TempDir()
	curve := testCurve("BadMethod")
	err := Charges(curve, filepath.Join(dir, "x.svg"), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown method")
}

func TestEmptyCurve(t *testing.T) {
	err := Charges(&tables.Curve{}, "x.svg", Options{})
	require.Error(t, err)
}
