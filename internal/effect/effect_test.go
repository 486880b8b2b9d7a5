package effect

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFont_SurfacesResult(t *testing.T) {
	calls := 0
	cmd := LoadFont(func(ctx context.Context) error {
		calls++
		return nil
	}, func(err error) string {
		if err != nil {
			return "font-failed"
		}
		return "font-loaded"
	})

	actions := cmd.Actions()
	require.Len(t, actions, 1)
	assert.Zero(t, calls, "loading must be deferred until execution")

	var got string
	actions[0].Execute(context.Background(), func(v string) { got = v }, func(any) {})
	assert.Equal(t, "font-loaded", got)
	assert.Equal(t, 1, calls)
}

func TestLoadFont_Failure(t *testing.T) {
	boom := errors.New("missing glyph table")
	cmd := LoadFont(func(ctx context.Context) error {
		return boom
	}, func(err error) error {
		return err
	})

	var got error
	cmd.Actions()[0].Execute(context.Background(), func(v error) { got = v }, func(any) {})
	assert.ErrorIs(t, got, boom)
}

func TestReadClipboard(t *testing.T) {
	cmd := ReadClipboard(func(ctx context.Context) (string, error) {
		return "pasted", nil
	}, func(c ClipboardContents) string {
		require.NoError(t, c.Err)
		return "got:" + c.Text
	})

	var got string
	cmd.Actions()[0].Execute(context.Background(), func(v string) { got = v }, func(any) {})
	assert.Equal(t, "got:pasted", got)
}

func TestWriteClipboard(t *testing.T) {
	var written string
	cmd := WriteClipboard("copied", func(ctx context.Context, text string) error {
		written = text
		return nil
	}, func(err error) string {
		if err != nil {
			return "write-failed"
		}
		return "written"
	})

	var got string
	cmd.Actions()[0].Execute(context.Background(), func(v string) { got = v }, func(any) {})
	assert.Equal(t, "written", got)
	assert.Equal(t, "copied", written)
}
