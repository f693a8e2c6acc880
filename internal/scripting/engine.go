package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for movement formulas.
// Single-goroutine access only (frame loop).
type Engine struct {
	vm              *lua.LState
	log             *zap.Logger
	boostMultiplier float64
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
// boostMultiplier is exposed to scripts as BOOST_MULTIPLIER and used as the fallback
// when a formula is missing or fails.
func NewEngine(scriptsDir string, boostMultiplier float64, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	vm.SetGlobal("BOOST_MULTIPLIER", lua.LNumber(boostMultiplier))

	e := &Engine{vm: vm, log: log, boostMultiplier: boostMultiplier}

	// core first, then optional feature directories
	for _, sub := range []string{"core", "movement"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// Close releases the VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// MoveSpeed calls the Lua calc_move_speed function with {base, boosting}.
// Falls back to base × BOOST_MULTIPLIER when the function is missing or errors.
func (e *Engine) MoveSpeed(base float64, boosting bool) float64 {
	fallback := base
	if boosting {
		fallback = base * e.boostMultiplier
	}

	fn := e.vm.GetGlobal("calc_move_speed")
	if fn == lua.LNil {
		return fallback
	}

	t := e.vm.NewTable()
	t.RawSetString("base", lua.LNumber(base))
	t.RawSetString("boosting", lua.LBool(boosting))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_move_speed error", zap.Error(err))
		return fallback
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua calc_move_speed returned non-number", zap.String("type", result.Type().String()))
		return fallback
	}
	return float64(n)
}
