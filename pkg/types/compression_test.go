package types_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taoziyu97/sra-tools/pkg/types"
)

func TestCompressionModeSuffix(t *testing.T) {
	tests := []struct {
		mode   types.CompressionMode
		name   string
		suffix string
	}{
		{types.CompressionNone, "none", ""},
		{types.CompressionGzip, "gzip", ".gz"},
		{types.CompressionBzip2, "bzip2", ".bz2"},
		{types.CompressionZstd, "zstd", ".zst"},
		{types.CompressionLz4, "lz4", ".lz4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.mode.String())
			assert.Equal(t, tt.suffix, tt.mode.Suffix())
			assert.Equal(t, tt.mode != types.CompressionNone, tt.mode.Compressed())

			parsed, err := types.ParseCompressionMode(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.mode, parsed)
		})
	}
}

func TestParseCompressionModeAliases(t *testing.T) {
	for alias, want := range map[string]types.CompressionMode{
		"":     types.CompressionNone,
		"GZ":   types.CompressionGzip,
		"bz2":  types.CompressionBzip2,
		" zst": types.CompressionZstd,
	} {
		got, err := types.ParseCompressionMode(alias)
		require.NoError(t, err, alias)
		assert.Equal(t, want, got, alias)
	}

	_, err := types.ParseCompressionMode("xz")
	assert.Error(t, err)
}

func TestOutputTargetFinalPath(t *testing.T) {
	target := types.OutputTarget{Path: "out/reads.fastq", Compression: types.CompressionBzip2}
	assert.Equal(t, "out/reads.fastq.bz2", target.FinalPath())

	target.Compression = types.CompressionNone
	assert.Equal(t, "out/reads.fastq", target.FinalPath())
}

func TestCreateModeFor(t *testing.T) {
	assert.Equal(t, types.CreateTruncate, types.CreateModeFor(true))
	assert.Equal(t, types.CreateExclusive, types.CreateModeFor(false))
	assert.Equal(t, "truncate", types.CreateTruncate.String())
	assert.Equal(t, "exclusive", types.CreateExclusive.String())
}

func TestMergePlanRemaining(t *testing.T) {
	plan := &types.MergePlan{Files: []string{"a", "b", "c"}, StartIndex: 1}
	assert.Equal(t, []string{"b", "c"}, plan.Remaining())

	plan.StartIndex = 3
	assert.Nil(t, plan.Remaining())

	var nilPlan *types.MergePlan
	assert.Nil(t, nilPlan.Remaining())
	assert.NoError(t, nilPlan.Close())
}

func TestStrategyString(t *testing.T) {
	assert.Equal(t, "none", types.StrategyNone.String())
	assert.Equal(t, "compressed", types.StrategyCompressed.String())
	assert.Equal(t, "append", types.StrategyAppend.String())
	assert.Equal(t, "fresh", types.StrategyFresh.String())
	assert.Equal(t, "unknown(42)", types.Strategy(42).String())
}

func TestValidateLevel(t *testing.T) {
	tests := []struct {
		mode    types.CompressionMode
		level   int
		wantErr bool
	}{
		{types.CompressionNone, 0, false},
		{types.CompressionNone, 12, false},
		{types.CompressionGzip, 0, false},
		{types.CompressionGzip, 9, false},
		{types.CompressionGzip, 12, true},
		{types.CompressionGzip, -1, true},
		{types.CompressionBzip2, 10, true},
		{types.CompressionZstd, 22, false},
		{types.CompressionZstd, 23, true},
		{types.CompressionLz4, 9, false},
		{types.CompressionLz4, 10, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.mode, tt.level), func(t *testing.T) {
			err := tt.mode.ValidateLevel(tt.level)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
