// Package script runs user-supplied Tengo snippets that can rescale a
// detonation before it is applied. A script sees the weapon name and the
// tuned force, radius, and fragment count as globals and overwrites any
// of them.
package script

import (
	"fmt"
	"os"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Hook compiles once and is cloned per detonation, so a hot path never
// re-parses the script.
type Hook struct {
	compiled *tengo.Compiled
}

// Compile builds a hook from Tengo source.
func Compile(src []byte) (*Hook, error) {
	s := tengo.NewScript(src)
	s.SetImports(stdlib.GetModuleMap("math", "rand", "fmt"))
	for name, v := range map[string]interface{}{
		"weapon":    "",
		"force":     0.0,
		"radius":    0.0,
		"fragments": 0,
	} {
		if err := s.Add(name, v); err != nil {
			return nil, fmt.Errorf("script: add %s: %w", name, err)
		}
	}
	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile: %w", err)
	}
	return &Hook{compiled: compiled}, nil
}

// Load compiles a hook from a file on disk.
func Load(path string) (*Hook, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: read %s: %w", path, err)
	}
	return Compile(src)
}

// Adjust runs the script against one detonation's parameters and returns
// the possibly rewritten values.
func (h *Hook) Adjust(weapon string, force, radius float64, fragments int) (float64, float64, int, error) {
	c := h.compiled.Clone()
	if err := c.Set("weapon", weapon); err != nil {
		return force, radius, fragments, err
	}
	if err := c.Set("force", force); err != nil {
		return force, radius, fragments, err
	}
	if err := c.Set("radius", radius); err != nil {
		return force, radius, fragments, err
	}
	if err := c.Set("fragments", fragments); err != nil {
		return force, radius, fragments, err
	}
	if err := c.Run(); err != nil {
		return force, radius, fragments, fmt.Errorf("script: run: %w", err)
	}

	outForce := c.Get("force").Float()
	outRadius := c.Get("radius").Float()
	outFragments := c.Get("fragments").Int()
	if outRadius < 0 {
		outRadius = 0
	}
	if outFragments < 0 {
		outFragments = 0
	}
	return outForce, outRadius, outFragments, nil
}
