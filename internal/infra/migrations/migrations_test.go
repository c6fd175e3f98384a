package migrations

import (
	"errors"
	"io"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_ListsAllMigrations(t *testing.T) {
	src, err := Source()
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	versions := []uint{first}
	for v := first; ; {
		next, err := src.Next(v)
		if errors.Is(err, fs.ErrNotExist) {
			break
		}
		require.NoError(t, err)
		versions = append(versions, next)
		v = next
	}
	assert.Equal(t, []uint{1, 2, 3}, versions)
}

func TestSource_UpAndDownPairs(t *testing.T) {
	src, err := Source()
	require.NoError(t, err)
	defer src.Close()

	for _, v := range []uint{1, 2, 3} {
		up, _, err := src.ReadUp(v)
		require.NoError(t, err, "up %d", v)
		body, err := io.ReadAll(up)
		require.NoError(t, err)
		up.Close()
		assert.Contains(t, string(body), "CREATE TABLE")

		down, _, err := src.ReadDown(v)
		require.NoError(t, err, "down %d", v)
		body, err = io.ReadAll(down)
		require.NoError(t, err)
		down.Close()
		assert.Contains(t, string(body), "DROP TABLE")
	}
}
