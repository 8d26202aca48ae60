// Build artifact detection from language-specific configuration files:
// parses package.json, tsconfig.json, vite.config.*, Cargo.toml, and
// pyproject.toml to find custom output directories, so discovery's
// exclusion rules stay accurate without the user enumerating every
// language's build directory by hand.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// BuildArtifactDetector finds language-specific build output folder
// names rooted at a project directory.
type BuildArtifactDetector struct {
	projectRoot string
}

// NewBuildArtifactDetector returns a detector rooted at projectRoot.
func NewBuildArtifactDetector(projectRoot string) *BuildArtifactDetector {
	return &BuildArtifactDetector{projectRoot: projectRoot}
}

// DetectOutputFolders scans known build manifests and returns bare
// folder names (not glob patterns) suitable for ExclusionRules.Folders,
// which matches by substring per spec.md §6.
func (bad *BuildArtifactDetector) DetectOutputFolders() []string {
	var folders []string
	folders = append(folders, bad.detectJavaScriptOutputs()...)
	folders = append(folders, bad.detectRustOutputs()...)
	folders = append(folders, bad.detectPythonOutputs()...)
	return folders
}

func (bad *BuildArtifactDetector) detectJavaScriptOutputs() []string {
	var folders []string

	if data, err := os.ReadFile(filepath.Join(bad.projectRoot, "package.json")); err == nil {
		var pkg map[string]interface{}
		if json.Unmarshal(data, &pkg) == nil {
			if scripts, ok := pkg["scripts"].(map[string]interface{}); ok {
				for _, script := range scripts {
					scriptStr, ok := script.(string)
					if !ok || !strings.Contains(scriptStr, "outDir") {
						continue
					}
					parts := strings.Fields(scriptStr)
					for i, part := range parts {
						if (part == "--outDir" || part == "-outDir") && i+1 < len(parts) {
							folders = append(folders, strings.Trim(parts[i+1], "\"'"))
						}
					}
				}
			}
			if buildConfig, ok := pkg["build"].(map[string]interface{}); ok {
				if outDir, ok := buildConfig["outDir"].(string); ok {
					folders = append(folders, outDir)
				}
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join(bad.projectRoot, "tsconfig.json")); err == nil {
		var tsconfig map[string]interface{}
		if json.Unmarshal(data, &tsconfig) == nil {
			if compilerOptions, ok := tsconfig["compilerOptions"].(map[string]interface{}); ok {
				if outDir, ok := compilerOptions["outDir"].(string); ok {
					folders = append(folders, outDir)
				}
			}
		}
	}

	for _, viteConfig := range []string{"vite.config.js", "vite.config.ts"} {
		data, err := os.ReadFile(filepath.Join(bad.projectRoot, viteConfig))
		if err != nil {
			continue
		}
		content := string(data)
		idx := strings.Index(content, "outDir")
		if idx == -1 {
			continue
		}
		substr := content[idx+len("outDir"):]
		colonIdx := strings.Index(substr, ":")
		if colonIdx == -1 {
			continue
		}
		substr = substr[colonIdx+1:]
		for _, quote := range []string{"'", "\""} {
			if !strings.Contains(substr, quote) {
				continue
			}
			parts := strings.SplitN(substr, quote, 3)
			if len(parts) >= 2 {
				if dir := strings.TrimSpace(parts[1]); dir != "" {
					folders = append(folders, dir)
				}
			}
			break
		}
	}

	return folders
}

func (bad *BuildArtifactDetector) detectRustOutputs() []string {
	var folders []string

	data, err := os.ReadFile(filepath.Join(bad.projectRoot, "Cargo.toml"))
	if err != nil {
		return folders
	}
	var cargo map[string]interface{}
	if toml.Unmarshal(data, &cargo) != nil {
		return folders
	}
	if profile, ok := cargo["profile"].(map[string]interface{}); ok {
		if release, ok := profile["release"].(map[string]interface{}); ok {
			if targetDir, ok := release["target-dir"].(string); ok {
				folders = append(folders, targetDir)
			}
		}
	}
	return folders
}

func (bad *BuildArtifactDetector) detectPythonOutputs() []string {
	var folders []string

	data, err := os.ReadFile(filepath.Join(bad.projectRoot, "pyproject.toml"))
	if err != nil {
		return folders
	}
	var pyproject map[string]interface{}
	if toml.Unmarshal(data, &pyproject) != nil {
		return folders
	}
	if tool, ok := pyproject["tool"].(map[string]interface{}); ok {
		if poetry, ok := tool["poetry"].(map[string]interface{}); ok {
			if build, ok := poetry["build"].(map[string]interface{}); ok {
				if targetDir, ok := build["target-dir"].(string); ok {
					folders = append(folders, targetDir)
				}
			}
		}
	}
	return folders
}

// DeduplicatePatterns removes duplicate strings, preserving first-seen
// order (used for exclusion folder/pattern lists).
func DeduplicatePatterns(patterns []string) []string {
	seen := make(map[string]bool, len(patterns))
	result := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if !seen[p] {
			seen[p] = true
			result = append(result, p)
		}
	}
	return result
}
