// Command check_arch_boundaries fails when a package under cmd/ or internal/
// imports an internal package outside its allowed set.
//
//	go run ./scripts/check_arch_boundaries.go
package main

import (
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var allowed = map[string]map[string]bool{
	"cmd": {
		"cli": true,
	},
	"cli": {
		"fetch":       true,
		"model":       true,
		"replaystore": true,
		"ussr":        true,
	},
	"fetch": {
		"model":       true,
		"replaystore": true,
		"ussr":        true,
	},
	"ussr": {
		"model": true,
	},
	"replaystore": {
		"model": true,
	},
	"model": {},
}

func main() {
	violations, err := checkBoundaries([]string{"cmd", "internal"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "boundary walk failed: %v\n", err)
		os.Exit(1)
	}

	if len(violations) > 0 {
		fmt.Fprintln(os.Stderr, "architecture boundary violations detected:")
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "- %s\n", v)
		}
		os.Exit(1)
	}

	fmt.Println("architecture boundary check: OK")
}

func checkBoundaries(roots []string) ([]string, error) {
	violations := []string{}
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
				return nil
			}

			srcPkg := sourcePackage(path)
			if srcPkg == "" {
				return nil
			}
			allowMap, ok := allowed[srcPkg]
			if !ok {
				violations = append(violations, fmt.Sprintf("%s: unknown source package %q", path, srcPkg))
				return nil
			}

			file, err := parser.ParseFile(token.NewFileSet(), path, nil, parser.ImportsOnly)
			if err != nil {
				return err
			}
			for _, imp := range file.Imports {
				tgtPkg, ok := targetPackage(strings.Trim(imp.Path.Value, "\""))
				if !ok || tgtPkg == srcPkg {
					continue
				}
				if !allowMap[tgtPkg] {
					violations = append(violations, fmt.Sprintf("%s: %s -> %s is forbidden", path, srcPkg, tgtPkg))
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return violations, nil
}

func sourcePackage(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) < 2 {
		return ""
	}
	switch parts[0] {
	case "cmd":
		return "cmd"
	case "internal":
		return parts[1]
	default:
		return ""
	}
}

func targetPackage(importPath string) (string, bool) {
	const prefix = "oraj-pole/internal/"
	if !strings.HasPrefix(importPath, prefix) {
		return "", false
	}
	rest := strings.TrimPrefix(importPath, prefix)
	if rest == "" {
		return "", false
	}
	parts := strings.Split(rest, "/")
	return parts[0], true
}
