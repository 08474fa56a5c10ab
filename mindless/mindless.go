/*
 * mindless.go, part of eeqbc.
 *
 * Copyright 2025 The eeqbc authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package mindless builds randomized "mindless" benchmark molecules
// for element pairs, such as the diactinide set. For every unordered
// pair of elements in a range it assembles a random composition under
// the given constraints and seeds a geometry where no two atoms fall
// below the sum of their covalent radii times a packing factor.
package mindless

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	chem "github.com/grimme-lab/SI-EEQ-BC"
	"github.com/grimme-lab/SI-EEQ-BC/scan"
	v3 "github.com/grimme-lab/SI-EEQ-BC/v3"
)

const (
	//packing scales the covalent radius sum in the clash check.
	packing = 0.8
	//placeTries bounds the random placement attempts per atom.
	placeTries = 500
	//maxCycles bounds the composition redraws per molecule.
	maxCycles = 5000
)

// A CompositionRange constrains how many atoms of one element a
// generated molecule may contain.
type CompositionRange struct {
	Symbol string
	Min    int
	Max    int
}

// Options control a pair sweep. The defaults match the diactinide
// benchmark of the publication: every pair of actinides (89-103)
// saturated with light elements to molecules of 8 to 20 atoms.
type Options struct {
	MinZ      int
	MaxZ      int
	Forbidden string //e.g. "21-30,39-48,57-80"
	Compose   string //e.g. "H:4-10,C:2-6,O:0-4"
	MinAtoms  int
	MaxAtoms  int
	Seed      int64
}

// SetDefaults fills the zero fields of O with the diactinide
// benchmark settings.
func (O *Options) SetDefaults() {
	if O.MinZ == 0 {
		O.MinZ = 89
	}
	if O.MaxZ == 0 {
		O.MaxZ = 103
	}
	if O.Compose == "" {
		O.Compose = "H:4-10,C:2-6,N:0-3,O:0-3,F:0-2"
	}
	if O.MinAtoms == 0 {
		O.MinAtoms = 8
	}
	if O.MaxAtoms == 0 {
		O.MaxAtoms = 20
	}
}

// ParseForbidden reads a comma-separated list of atomic-number ranges
// ("21-30,39-48,57-80") into a set of excluded elements. Single
// numbers are allowed.
func ParseForbidden(s string) (map[int]bool, error) {
	excl := map[int]bool{}
	if strings.TrimSpace(s) == "" {
		return excl, nil
	}
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		lo, hi := field, field
		if i := strings.Index(field, "-"); i >= 0 {
			lo, hi = field[:i], field[i+1:]
		}
		zlo, err := strconv.Atoi(lo)
		if err != nil {
			return nil, fmt.Errorf("forbidden range %q: %w", field, err)
		}
		zhi, err := strconv.Atoi(hi)
		if err != nil {
			return nil, fmt.Errorf("forbidden range %q: %w", field, err)
		}
		if zlo > zhi {
			return nil, fmt.Errorf("forbidden range %q: empty", field)
		}
		for z := zlo; z <= zhi; z++ {
			excl[z] = true
		}
	}
	return excl, nil
}

// ParseComposition reads "H:4-10,C:2-6" into composition ranges.
// "H:2" means exactly two.
func ParseComposition(s string) ([]CompositionRange, error) {
	var comp []CompositionRange
	if strings.TrimSpace(s) == "" {
		return comp, nil
	}
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		sym, counts, found := strings.Cut(field, ":")
		if !found {
			return nil, fmt.Errorf("composition %q: want symbol:min-max", field)
		}
		if _, err := chem.AtomicNumber(sym); err != nil {
			return nil, errDecorate(err, "ParseComposition")
		}
		lo, hi := counts, counts
		if i := strings.Index(counts, "-"); i >= 0 {
			lo, hi = counts[:i], counts[i+1:]
		}
		cmin, err := strconv.Atoi(lo)
		if err != nil {
			return nil, fmt.Errorf("composition %q: %w", field, err)
		}
		cmax, err := strconv.Atoi(hi)
		if err != nil {
			return nil, fmt.Errorf("composition %q: %w", field, err)
		}
		if cmin > cmax || cmin < 0 {
			return nil, fmt.Errorf("composition %q: bad range", field)
		}
		comp = append(comp, CompositionRange{Symbol: sym, Min: cmin, Max: cmax})
	}
	return comp, nil
}

// Pairs returns every heteronuclear unordered pair of elements in
// [minZ,maxZ], skipping the excluded ones. The diactinide set is the
// 105 pairs of elements 89 to 103.
func Pairs(minZ, maxZ int, excluded map[int]bool) ([][2]int, error) {
	if minZ < 1 || maxZ > 118 || minZ > maxZ {
		return nil, fmt.Errorf("element range %d-%d out of bounds", minZ, maxZ)
	}
	var pairs [][2]int
	for a := minZ; a <= maxZ; a++ {
		if excluded[a] {
			continue
		}
		for b := a + 1; b <= maxZ; b++ {
			if excluded[b] {
				continue
			}
			pairs = append(pairs, [2]int{a, b})
		}
	}
	return pairs, nil
}

// drawComposition draws one atom count per composition range and
// redraws until the total, pair included, lands inside the atom-count
// window. A window no draw can reach is an error.
func drawComposition(comp []CompositionRange, O Options, rng *rand.Rand) ([]int, error) {
	lo, hi := 2, 2
	for _, c := range comp {
		lo += c.Min
		hi += c.Max
	}
	if hi < O.MinAtoms || lo > O.MaxAtoms {
		return nil, fmt.Errorf("composition yields %d to %d atoms, window is %d to %d",
			lo, hi, O.MinAtoms, O.MaxAtoms)
	}
	for cycle := 0; cycle < maxCycles; cycle++ {
		counts := make([]int, len(comp))
		total := 2
		for i, c := range comp {
			n := c.Min
			if c.Max > c.Min {
				n += rng.Intn(c.Max - c.Min + 1)
			}
			counts[i] = n
			total += n
		}
		if total >= O.MinAtoms && total <= O.MaxAtoms {
			return counts, nil
		}
	}
	return nil, fmt.Errorf("no composition inside %d to %d atoms after %d draws",
		O.MinAtoms, O.MaxAtoms, maxCycles)
}

// Generate builds one randomized molecule containing the pair plus a
// composition drawn from comp. Draws falling outside the atom-count
// window of O are discarded and redrawn. The rng makes generation
// reproducible under a fixed seed.
func Generate(pair [2]int, comp []CompositionRange, O Options, rng *rand.Rand) (*chem.Molecule, error) {
	counts, err := drawComposition(comp, O, rng)
	if err != nil {
		return nil, err
	}
	var atoms []*chem.Atom
	add := func(z int) {
		sym := chem.Symbol(z)
		atoms = append(atoms, &chem.Atom{
			Name:   sym,
			Id:     len(atoms) + 1,
			Z:      z,
			Symbol: sym,
			Mass:   chem.Mass(sym),
		})
	}
	add(pair[0])
	add(pair[1])
	for i, c := range comp {
		z, err := chem.AtomicNumber(c.Symbol)
		if err != nil {
			return nil, errDecorate(err, "Generate")
		}
		for j := 0; j < counts[i]; j++ {
			add(z)
		}
	}
	top, err := chem.NewTopology(atoms, 0, 1)
	if err != nil {
		return nil, errDecorate(err, "Generate")
	}
	coords, err := seedGeometry(top, rng)
	if err != nil {
		return nil, errDecorate(err, "Generate")
	}
	mol, err := chem.NewMolecule(top, []*v3.Matrix{coords})
	if err != nil {
		return nil, errDecorate(err, "Generate")
	}
	return mol, nil
}

// seedGeometry places the atoms one by one at random positions in a
// cubic box, rejecting any position closer to a placed atom than
// packing times the sum of both covalent radii.
func seedGeometry(top *chem.Topology, rng *rand.Rand) (*v3.Matrix, error) {
	n := top.Len()
	//box edge grows with the volume the covalent spheres need.
	edge := 0.0
	for i := 0; i < n; i++ {
		edge += 2 * chem.CovalentRadius(top.Atom(i).Symbol)
	}
	edge = edge / 2.0
	if edge < 4.0 {
		edge = 4.0
	}
	coords := v3.Zeros(n)
	for i := 0; i < n; i++ {
		ri := chem.CovalentRadius(top.Atom(i).Symbol)
		placed := false
		for try := 0; try < placeTries; try++ {
			x := (rng.Float64() - 0.5) * edge
			y := (rng.Float64() - 0.5) * edge
			z := (rng.Float64() - 0.5) * edge
			ok := true
			for j := 0; j < i; j++ {
				rj := chem.CovalentRadius(top.Atom(j).Symbol)
				dx, dy, dz := x-coords.At(j, 0), y-coords.At(j, 1), z-coords.At(j, 2)
				d2 := dx*dx + dy*dy + dz*dz
				min := packing * (ri + rj)
				if d2 < min*min {
					ok = false
					break
				}
			}
			if ok {
				coords.Set(i, 0, x)
				coords.Set(i, 1, y)
				coords.Set(i, 2, z)
				placed = true
				break
			}
		}
		if !placed {
			return nil, fmt.Errorf("could not place atom %d (%s) without clashes",
				i+1, top.Atom(i).Symbol)
		}
	}
	return coords, nil
}

// PairName is the directory and file basename of one pair, e.g.
// "mlm_ac_th".
func PairName(pair [2]int) string {
	return fmt.Sprintf("mlm_%s_%s",
		strings.ToLower(chem.Symbol(pair[0])),
		strings.ToLower(chem.Symbol(pair[1])))
}

// Run sweeps all element pairs of O, writes one directory per pair
// under outdir with the seeded structure, and records the directories
// in the manifest the calculation runner consumes. It returns the
// directory names.
func Run(outdir string, O Options) ([]string, error) {
	O.SetDefaults()
	excl, err := ParseForbidden(O.Forbidden)
	if err != nil {
		return nil, err
	}
	comp, err := ParseComposition(O.Compose)
	if err != nil {
		return nil, err
	}
	pairs, err := Pairs(O.MinZ, O.MaxZ, excl)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(O.Seed))
	var dirs []string
	for _, pair := range pairs {
		mol, err := Generate(pair, comp, O, rng)
		if err != nil {
			return nil, errDecorate(err, "Run "+PairName(pair))
		}
		name := PairName(pair)
		dir := filepath.Join(outdir, name)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
		err = chem.XYZFileWrite(filepath.Join(dir, name+".xyz"), mol.Coords[0], mol)
		if err != nil {
			return nil, errDecorate(err, "Run "+name)
		}
		err = chem.XYZFileWrite(filepath.Join(dir, scan.StrucName), mol.Coords[0], mol)
		if err != nil {
			return nil, errDecorate(err, "Run "+name)
		}
		dirs = append(dirs, name)
	}
	if err := scan.WriteManifest(outdir, dirs); err != nil {
		return nil, err
	}
	return dirs, nil
}

func errDecorate(err error, caller string) error {
	err2, ok := err.(chem.Error)
	if !ok {
		return fmt.Errorf("%s: %w", caller, err)
	}
	err2.Decorate(caller)
	return err2
}
