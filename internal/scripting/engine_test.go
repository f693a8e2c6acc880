package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeScript(t *testing.T, dir, sub, body string) {
	t.Helper()
	p := filepath.Join(dir, sub)
	require.NoError(t, os.MkdirAll(p, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(p, "movement.lua"), []byte(body), 0o644))
}

func TestEngine_RepositoryScript(t *testing.T) {
	e, err := NewEngine(filepath.Join("..", "..", "scripts"), 3, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, 4.0, e.MoveSpeed(4, false))
	assert.Equal(t, 12.0, e.MoveSpeed(4, true))
}

func TestEngine_CustomFormula(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "movement", `
function calc_move_speed(ctx)
  if ctx.boosting then return ctx.base + 10 end
  return ctx.base / 2
end
`)
	e, err := NewEngine(dir, 3, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, 2.0, e.MoveSpeed(4, false))
	assert.Equal(t, 14.0, e.MoveSpeed(4, true))
}

func TestEngine_FallbackWithoutScripts(t *testing.T) {
	e, err := NewEngine(t.TempDir(), 3, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, 4.0, e.MoveSpeed(4, false))
	assert.Equal(t, 12.0, e.MoveSpeed(4, true))
}

func TestEngine_FallbackOnBadResult(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "core", `
function calc_move_speed(ctx)
  if ctx.boosting then error("boom") end
  return "fast"
end
`)
	e, err := NewEngine(dir, 2, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, 5.0, e.MoveSpeed(5, false))
	assert.Equal(t, 10.0, e.MoveSpeed(5, true))
}

func TestEngine_SyntaxError(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "core", "function (")
	_, err := NewEngine(dir, 3, zap.NewNop())
	assert.ErrorContains(t, err, "load core scripts")
}
