package registry

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ZebulonRouseFrantzich/binspect/internal/platform"
	lua "github.com/yuin/gopher-lua"
)

// Lua schema field names and globals.
const (
	luaGlobalBinspect = "binspect"
	luaFieldTargets   = "targets"
	luaFieldName      = "name"
	luaFieldRepo      = "repo"
	luaFieldPlatforms = "platforms"
)

// Parser parses Lua target configurations with platform detection.
type Parser struct {
	detector platform.Detector
}

// NewParser creates a config parser with the given platform detector.
func NewParser(detector platform.Detector) *Parser {
	return &Parser{detector: detector}
}

// ParseError represents a config parsing error with a friendly message.
type ParseError struct {
	Message string // User-friendly message
	Detail  string // Technical details (raw Lua error)
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// LoadFile parses a Lua config file into a registry. Targets without
// platform tags inherit the detected host tags.
func (p *Parser) LoadFile(ctx context.Context, path string) (*Registry, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return p.ParseString(ctx, string(code))
}

// ParseString parses a Lua config from a string. Useful for tests and
// in-memory configs.
func (p *Parser) ParseString(ctx context.Context, luaCode string) (*Registry, error) {
	L := newSandboxedVM()
	defer L.Close()

	var hostTags []string
	if p.detector != nil {
		platformInfo, err := p.detector.Detect(ctx)
		if err != nil {
			return nil, fmt.Errorf("platform detection failed: %w", err)
		}
		hostTags = platformInfo.Tags()
		if err := platform.InjectPlatformTable(L, platformInfo); err != nil {
			return nil, fmt.Errorf("inject platform table: %w", err)
		}
	}

	if err := L.DoString(luaCode); err != nil {
		return nil, &ParseError{
			Message: "Lua syntax error",
			Detail:  err.Error(),
		}
	}

	targets, err := extractTargets(L)
	if err != nil {
		return nil, err
	}

	reg, err := New(targets, hostTags)
	if err != nil {
		return nil, &ParseError{
			Message: "config validation failed",
			Detail:  err.Error(),
		}
	}

	return reg, nil
}

// extractTargets extracts the target list from the Lua state. It expects a
// global "binspect" table containing a "targets" array.
func extractTargets(L *lua.LState) ([]Target, error) {
	root := L.GetGlobal(luaGlobalBinspect)
	if root.Type() != lua.LTTable {
		return nil, &ParseError{
			Message: "missing or invalid 'binspect' table",
			Detail:  fmt.Sprintf("expected table, got %s", root.Type()),
		}
	}

	targetsVal := root.(*lua.LTable).RawGetString(luaFieldTargets)
	if targetsVal.Type() != lua.LTTable {
		return nil, &ParseError{
			Message: "missing or invalid 'targets' array",
			Detail:  fmt.Sprintf("expected table, got %s", targetsVal.Type()),
		}
	}

	var targets []Target
	targetsVal.(*lua.LTable).ForEach(func(key, value lua.LValue) {
		if value.Type() != lua.LTTable {
			return
		}
		targets = append(targets, extractTarget(value.(*lua.LTable)))
	})

	return targets, nil
}

// extractTarget extracts a single target from a Lua table.
func extractTarget(table *lua.LTable) Target {
	t := Target{}

	if nameVal := table.RawGetString(luaFieldName); nameVal.Type() == lua.LTString {
		t.Name = nameVal.String()
	}
	if repoVal := table.RawGetString(luaFieldRepo); repoVal.Type() == lua.LTString {
		t.Repo = repoVal.String()
	}
	if platVal := table.RawGetString(luaFieldPlatforms); platVal.Type() == lua.LTTable {
		platVal.(*lua.LTable).ForEach(func(key, value lua.LValue) {
			// Skip nil values from platform conditionals such as
			// platform.when(platform.is_musl, "musl")
			if value.Type() != lua.LTString {
				return
			}
			t.Platforms = append(t.Platforms, value.String())
		})
	}

	return t
}

// FormatError formats a ParseError for user display. In verbose mode the
// raw Lua error is shown; otherwise the traceback is trimmed.
func FormatError(err error, verbose bool) string {
	if parseErr, ok := err.(*ParseError); ok {
		if verbose {
			return fmt.Sprintf("%s\n\nDetails:\n%s", parseErr.Message, parseErr.Detail)
		}
		detail := parseErr.Detail
		if idx := strings.Index(detail, "stack traceback"); idx > 0 {
			detail = strings.TrimSpace(detail[:idx])
		}
		return fmt.Sprintf("%s: %s", parseErr.Message, detail)
	}
	return err.Error()
}
