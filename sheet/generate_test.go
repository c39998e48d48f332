package sheet

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pb33f/jobific/motor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInMemory_Reproducible(t *testing.T) {
	opts := GenerateOptions{RowCount: 40, Seed: 42}

	a, _ := GenerateInMemory(opts)
	b, _ := GenerateInMemory(opts)
	assert.Equal(t, a, b)

	for _, r := range a {
		assert.NotEmpty(t, r.Name)
		assert.GreaterOrEqual(t, len(r.Tokens()), 2)
		_, ok := addressBook[r.Token(motor.TokenProvince)]
		assert.True(t, ok, "unexpected province in %q", r.Classification)
	}
}

func TestGenerateInMemory_Injections(t *testing.T) {
	records, injected := GenerateInMemory(GenerateOptions{
		RowCount:    20,
		Seed:        7,
		InjectNames: []string{"Zzyzx Holdings"},
	})

	require.Len(t, injected, 1)
	assert.Equal(t, "Zzyzx Holdings", records[injected[0].Row].Name)

	view := motor.Filter(records, motor.Criteria{Search: "zzyzx"})
	assert.Len(t, view, 1)
}

func TestGenerateInMemory_DistinctRows(t *testing.T) {
	names := []string{"Zzyzx Holdings", "Qwerty Foods", "Xylo Motors"}

	for seed := int64(1); seed <= 25; seed++ {
		records, injected := GenerateInMemory(GenerateOptions{
			RowCount:         10,
			Seed:             seed,
			MissingAddresses: 4,
			InjectNames:      names,
		})

		blank := 0
		for _, r := range records {
			if r.Classification == "" {
				blank++
			}
		}
		assert.Equal(t, 4, blank, "seed %d", seed)

		require.Len(t, injected, len(names))
		seen := map[int]bool{}
		for i, inj := range injected {
			assert.False(t, seen[inj.Row], "seed %d: row %d injected twice", seed, inj.Row)
			seen[inj.Row] = true
			assert.Equal(t, names[i], records[inj.Row].Name)
			assert.NotEmpty(t, records[inj.Row].Classification, "injected rows keep their address")
		}
	}
}

func TestGenerateInMemory_MoreInjectionsThanRows(t *testing.T) {
	records, injected := GenerateInMemory(GenerateOptions{
		RowCount:         3,
		Seed:             5,
		MissingAddresses: 1,
		InjectNames:      []string{"a", "b", "c", "d"},
	})

	require.Len(t, injected, 2)
	for _, inj := range injected {
		assert.Equal(t, inj.Name, records[inj.Row].Name)
	}
}

func TestGenerateInMemory_Empty(t *testing.T) {
	records, injected := GenerateInMemory(GenerateOptions{RowCount: 0, Seed: 1, InjectNames: []string{"x"}})
	assert.Empty(t, records)
	assert.Empty(t, injected)
}

func TestGenerateToFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "company.xlsx")
	opts := GenerateOptions{RowCount: 35, Seed: 99, MissingAddresses: 3}

	result, err := GenerateToFile(path, opts)
	require.NoError(t, err)
	assert.Equal(t, 35, result.TotalRows)

	want, _ := GenerateInMemory(opts)

	loaded, err := NewLoader(Options{Path: path, Logger: quietLogger()}).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, len(want))

	for i := range want {
		assert.Equal(t, want[i].Name, loaded[i].Name)
		assert.Equal(t, want[i].Classification, loaded[i].Classification)
	}

	// rows without an address survive but are excluded by location filters
	view := motor.Filter(loaded, motor.Criteria{RequireClassification: true})
	assert.Less(t, len(view), len(loaded))
}

func TestGenerate_TempFile(t *testing.T) {
	result, err := Generate(GenerateOptions{RowCount: 5, Seed: 3})
	require.NoError(t, err)
	defer os.Remove(result.Path)

	info, err := os.Stat(result.Path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestGenerateToFile_CustomSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "company.xlsx")
	_, err := GenerateToFile(path, GenerateOptions{RowCount: 3, Seed: 5, SheetName: "기업목록"})
	require.NoError(t, err)

	records, err := NewLoader(Options{Path: path, Logger: quietLogger()}).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 3)
}
