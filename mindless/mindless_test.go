package mindless

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chem "github.com/grimme-lab/SI-EEQ-BC"
	"github.com/grimme-lab/SI-EEQ-BC/scan"
	v3 "github.com/grimme-lab/SI-EEQ-BC/v3"
)

func TestParseForbidden(t *testing.T) {
	excl, err := ParseForbidden("21-30,39-48,57-80")
	require.NoError(t, err)
	assert.True(t, excl[21])
	assert.True(t, excl[30])
	assert.True(t, excl[70])
	assert.False(t, excl[31])
	assert.False(t, excl[89])

	excl, err = ParseForbidden("")
	require.NoError(t, err)
	assert.Empty(t, excl)

	_, err = ParseForbidden("30-21")
	require.Error(t, err)
	_, err = ParseForbidden("a-b")
	require.Error(t, err)
}

func TestParseComposition(t *testing.T) {
	comp, err := ParseComposition("H:4-10,C:2-6,F:1")
	require.NoError(t, err)
	require.Len(t, comp, 3)
	assert.Equal(t, CompositionRange{Symbol: "H", Min: 4, Max: 10}, comp[0])
	assert.Equal(t, CompositionRange{Symbol: "F", Min: 1, Max: 1}, comp[2])

	_, err = ParseComposition("Xx:1-2")
	require.Error(t, err)
	_, err = ParseComposition("H4")
	require.Error(t, err)
	_, err = ParseComposition("H:6-2")
	require.Error(t, err)
}

func TestPairs(t *testing.T) {
	//89 to 103 with nothing excluded: 15 elements, 105 heteronuclear
	//unordered pairs.
	pairs, err := Pairs(89, 103, nil)
	require.NoError(t, err)
	assert.Len(t, pairs, 105)
	assert.Equal(t, [2]int{89, 90}, pairs[0])
	assert.Equal(t, [2]int{102, 103}, pairs[len(pairs)-1])

	excl, err := ParseForbidden("90-102")
	require.NoError(t, err)
	pairs, err = Pairs(89, 103, excl)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, [2]int{89, 103}, pairs[0])

	_, err = Pairs(10, 5, nil)
	require.Error(t, err)
}

func TestGenerateRedrawsComposition(t *testing.T) {
	//the default constraints can draw up to 26 atoms, above the
	//20-atom window; oversized draws must be discarded, not fatal.
	var O Options
	O.SetDefaults()
	comp, err := ParseComposition(O.Compose)
	require.NoError(t, err)
	for seed := int64(0); seed < 10; seed++ {
		mol, err := Generate([2]int{89, 90}, comp, O, rand.New(rand.NewSource(seed)))
		require.NoError(t, err, "seed %d", seed)
		assert.GreaterOrEqual(t, mol.Len(), O.MinAtoms)
		assert.LessOrEqual(t, mol.Len(), O.MaxAtoms)
	}
}

func TestDrawCompositionImpossible(t *testing.T) {
	O := Options{MinAtoms: 8, MaxAtoms: 20}
	_, err := drawComposition([]CompositionRange{{Symbol: "H", Min: 30, Max: 40}}, O,
		rand.New(rand.NewSource(1)))
	require.Error(t, err)
	_, err = drawComposition([]CompositionRange{{Symbol: "H", Min: 1, Max: 2}}, O,
		rand.New(rand.NewSource(1)))
	require.Error(t, err)
}

func TestGenerateDeterministic(t *testing.T) {
	var O Options
	O.SetDefaults()
	comp, err := ParseComposition(O.Compose)
	require.NoError(t, err)

	mol1, err := Generate([2]int{89, 90}, comp, O, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	mol2, err := Generate([2]int{89, 90}, comp, O, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	require.Equal(t, mol1.Len(), mol2.Len())
	assert.GreaterOrEqual(t, mol1.Len(), O.MinAtoms)
	assert.LessOrEqual(t, mol1.Len(), O.MaxAtoms)
	assert.Equal(t, "Ac", mol1.Atom(0).Symbol)
	assert.Equal(t, "Th", mol1.Atom(1).Symbol)
	for i := 0; i < mol1.Len(); i++ {
		for k := 0; k < 3; k++ {
			assert.Equal(t, mol1.Coords[0].At(i, k), mol2.Coords[0].At(i, k))
		}
	}
}

func TestGenerateClashFree(t *testing.T) {
	var O Options
	O.SetDefaults()
	comp, err := ParseComposition(O.Compose)
	require.NoError(t, err)
	mol, err := Generate([2]int{92, 94}, comp, O, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	c := mol.Coords[0]
	for i := 0; i < mol.Len(); i++ {
		for j := i + 1; j < mol.Len(); j++ {
			ri := chem.CovalentRadius(mol.Atom(i).Symbol)
			rj := chem.CovalentRadius(mol.Atom(j).Symbol)
			d := v3.Dist(c, i, c, j)
			assert.GreaterOrEqual(t, d, packing*(ri+rj),
				"atoms %d and %d too close", i, j)
		}
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	O := Options{MinZ: 89, MaxZ: 91, Seed: 0}
	dirs, err := Run(dir, O)
	require.NoError(t, err)
	//3 elements give 3 heteronuclear pairs.
	require.Len(t, dirs, 3)
	assert.Equal(t, "mlm_ac_th", dirs[0])
	assert.Equal(t, "mlm_ac_pa", dirs[1])
	assert.Equal(t, "mlm_th_pa", dirs[2])

	listed, err := scan.ReadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, dirs, listed)

	for _, d := range dirs {
		_, err := os.Stat(filepath.Join(dir, d, scan.StrucName))
		require.NoError(t, err)
		mol, err := chem.XYZRead(filepath.Join(dir, d, d+".xyz"))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, mol.Len(), 8)
		assert.LessOrEqual(t, mol.Len(), 20)
	}
}
