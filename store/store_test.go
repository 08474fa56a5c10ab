package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grimme-lab/SI-EEQ-BC/tables"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutAndQueryCharges(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	rows := []tables.ChargeRow{
		{CID: "1.5A", AtomNumber: 6, AtomType: 8, Method: "EEQ", Charge: -0.2},
		{CID: "1.5A", AtomNumber: 7, AtomType: 8, Method: "EEQ", Charge: -0.2},
		{CID: "1.5A", AtomNumber: 6, AtomType: 8, Method: "EEQ_BC", Charge: -0.3},
		{CID: "2.0A", AtomNumber: 6, AtomType: 8, Method: "EEQ", Charge: -0.1},
	}
	require.NoError(t, s.PutCharges(ctx, rows))

	got, err := s.Charges(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, got, 4)

	got, err = s.Charges(ctx, Filter{Methods: []string{"EEQ"}, CIDs: []string{"1.5A"}})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 6, got[0].AtomNumber)
	assert.Equal(t, 7, got[1].AtomNumber)
}

func TestChargeUpsert(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	row := tables.ChargeRow{CID: "1.5A", AtomNumber: 1, AtomType: 6, Method: "CEH-v2", Charge: 0.1}
	require.NoError(t, s.PutCharges(ctx, []tables.ChargeRow{row}))
	row.Charge = 0.25
	require.NoError(t, s.PutCharges(ctx, []tables.ChargeRow{row}))

	got, err := s.Charges(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 0.25, got[0].Charge)
}

func TestEnergiesAndMethods(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	require.NoError(t, s.PutEnergies(ctx, []tables.EnergyRow{
		{CID: "1.5A", Method: "GFN2-xTB", Energy: -10.5},
		{CID: "2.0A", Method: "GFN2-xTB", Energy: -10.6},
		{CID: "1.5A", Method: "wB97M-V", Energy: -115.2},
	}))
	require.NoError(t, s.PutCharges(ctx, []tables.ChargeRow{
		{CID: "1.5A", AtomNumber: 1, AtomType: 6, Method: "EEQ", Charge: 0.0},
	}))

	got, err := s.Energies(ctx, Filter{Methods: []string{"GFN2-xTB"}})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1.5A", got[0].CID)

	methods, err := s.Methods(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"EEQ", "GFN2-xTB", "wB97M-V"}, methods)
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	dir := t.TempDir()

	chargesCSV := "CID,Atom number,Atom type,Method,Charge\n" +
		"1.5A,1,6,EEQ,0.1\n1.5A,2,1,EEQ,-0.025\n"
	energiesCSV := "CID,Method,Energy\n1.5A,GFN1-xTB,-5.0\n"
	cpath := filepath.Join(dir, "charges.csv")
	epath := filepath.Join(dir, "energies.csv")
	require.NoError(t, os.WriteFile(cpath, []byte(chargesCSV), 0644))
	require.NoError(t, os.WriteFile(epath, []byte(energiesCSV), 0644))

	n, err := s.ImportCharges(ctx, cpath)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	n, err = s.ImportEnergies(ctx, epath)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := s.Charges(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
