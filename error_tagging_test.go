package fractal

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWorkerError_Metadata(t *testing.T) {
	base := errors.New("boom")
	unit := Tile{X: 20, Y: 40, W: 20, H: 20}
	err := newWorkerError(base, 3, unit)

	require.ErrorIs(t, err, base)
	require.Equal(t, "worker 3, tile(20,40 20x20): boom", err.Error())
	require.Equal(t, "worker(id=3,unit=tile(20,40 20x20)): boom", fmt.Sprintf("%+v", err))
	require.Equal(t, err.Error(), fmt.Sprintf("%v", err))

	id, ok := ExtractWorkerID(fmt.Errorf("wrapped: %w", err))
	require.True(t, ok)
	require.Equal(t, 3, id)

	u, ok := ExtractUnit(err)
	require.True(t, ok)
	require.Equal(t, unit, u)
}

func TestWorkerError_WithoutUnit(t *testing.T) {
	err := newWorkerError(errors.New("boom"), 1, nil)
	require.Equal(t, "worker 1: boom", err.Error())
	_, ok := ExtractUnit(err)
	require.False(t, ok)
}

func TestWorkerError_NilAndPlain(t *testing.T) {
	require.NoError(t, newWorkerError(nil, 0, Range{}))

	_, ok := ExtractWorkerID(errors.New("plain"))
	require.False(t, ok)
	_, ok = ExtractUnit(errors.New("plain"))
	require.False(t, ok)
}
