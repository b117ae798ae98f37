package testutil_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taoziyu97/sra-tools/pkg/filesystem"
	"github.com/taoziyu97/sra-tools/pkg/testutil"
)

func TestPayloadIsDeterministic(t *testing.T) {
	assert.Equal(t, testutil.Payload("a", 100), testutil.Payload("a", 100))
	assert.NotEqual(t, testutil.Payload("a", 100), testutil.Payload("b", 100))
	assert.Len(t, testutil.Payload("a", 4097), 4097)
	assert.Empty(t, testutil.Payload("a", 0))
}

func TestWriteInputsAndConcat(t *testing.T) {
	fs := filesystem.NewMemory()
	inputs := []testutil.Input{{Name: "a", Size: 100}, {Name: "b", Size: 50}}

	files := testutil.WriteInputs(t, fs, "/in", inputs...)
	require.Equal(t, []string{"/in/a", "/in/b"}, files)

	var got []byte
	for _, f := range files {
		got = append(got, testutil.ReadFile(t, fs, f)...)
	}
	assert.Equal(t, testutil.Concat(inputs...), got)
	assert.Len(t, got, 150)
}

func TestFaultyFS(t *testing.T) {
	base := filesystem.NewMemory()
	files := testutil.WriteInputs(t, base, "/in", testutil.Input{Name: "a", Size: 10})

	boom := errors.New("cross-device link")
	fs := testutil.NewFaultyFS(base).Fail(testutil.OpRename, "", boom)

	err := fs.Rename(files[0], "/out")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{files[0]}, fs.Calls(testutil.OpRename))

	// Untouched operations pass through.
	_, err = fs.Stat(files[0])
	assert.NoError(t, err)
	testutil.AssertFileExists(t, fs, files[0])
	testutil.AssertNoFile(t, fs, "/out")

	fs.Fail(testutil.OpStat, files[0], boom)
	_, err = fs.Stat(files[0])
	assert.ErrorIs(t, err, boom)
}
