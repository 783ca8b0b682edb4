package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/getmockd/mockreg/pkg/logging"
	"github.com/getmockd/mockreg/pkg/mock"
)

// ErrNoFiles is returned when no mock file paths are given.
var ErrNoFiles = errors.New("no mock files specified")

// Loader reads mock files.
type Loader struct {
	// BaseDir resolves relative paths. Defaults to the working directory.
	BaseDir string

	// Logger receives debug output about expanded globs and loaded files.
	Logger *slog.Logger
}

// LoadFiles loads mocks from paths with a default Loader.
func LoadFiles(paths ...string) ([]*mock.Response, error) {
	return (&Loader{}).Load(paths...)
}

// Load loads mocks from every path, in order. Paths containing glob
// characters are expanded; a glob without matches is not an error.
func (l *Loader) Load(paths ...string) ([]*mock.Response, error) {
	if len(paths) == 0 {
		return nil, ErrNoFiles
	}
	log := logging.OrNop(l.Logger)

	var result []*mock.Response
	for _, p := range paths {
		files, err := l.expand(p)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			log.Warn("glob matched no files", "pattern", p)
			continue
		}
		for _, file := range files {
			mocks, err := LoadFile(file)
			if err != nil {
				return nil, err
			}
			log.Debug("loaded mock file", "file", file, "mocks", len(mocks))
			result = append(result, mocks...)
		}
	}
	return result, nil
}

func (l *Loader) expand(p string) ([]string, error) {
	baseDir := l.BaseDir
	if baseDir == "" {
		if cwd, err := os.Getwd(); err == nil {
			baseDir = cwd
		}
	}
	resolved := ResolvePath(baseDir, p)

	if !isGlob(resolved) {
		return []string{resolved}, nil
	}

	matches, err := doublestar.FilepathGlob(resolved, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("expanding glob pattern %q: %w", p, err)
	}
	sort.Strings(matches)
	return matches, nil
}

func isGlob(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}

// LoadFile loads the mocks defined in a single file.
func LoadFile(path string) ([]*mock.Response, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes mock definitions from YAML or JSON data. source names the
// data in error messages.
func Parse(data []byte, source string) ([]*mock.Response, error) {
	expanded := []byte(ExpandEnvVars(string(data)))
	if len(strings.TrimSpace(string(expanded))) == 0 {
		return nil, fmt.Errorf("%s: file is empty", source)
	}

	var generic interface{}
	if err := yaml.Unmarshal(expanded, &generic); err != nil {
		return nil, fmt.Errorf("%s: parsing YAML: %w", source, err)
	}
	if err := validateDocument(generic, source); err != nil {
		return nil, err
	}

	var content mockFileContent
	if err := yaml.Unmarshal(expanded, &content); err != nil {
		return nil, fmt.Errorf("%s: decoding mocks: %w", source, err)
	}

	for i, m := range content.Mocks {
		m.EnsureID()
		m.Method = strings.ToUpper(m.Method)
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("%s: mocks[%d]: %w", source, i, err)
		}
	}
	return content.Mocks, nil
}

// mockFileContent accepts a single mock, a list of mocks, or a document
// with a "mocks" list.
type mockFileContent struct {
	Mocks []*mock.Response
}

func (c *mockFileContent) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		return node.Decode(&c.Mocks)
	}

	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == "mocks" {
				return node.Content[i+1].Decode(&c.Mocks)
			}
		}
	}

	var single mock.Response
	if err := node.Decode(&single); err != nil {
		return err
	}
	c.Mocks = []*mock.Response{&single}
	return nil
}

// Register validates responses and adds them to reg in order. Nothing is
// added unless every response is valid.
func Register(reg mock.Registry, responses []*mock.Response) error {
	for i, r := range responses {
		if r == nil {
			return fmt.Errorf("mock %d: nil response", i)
		}
		if err := r.Validate(); err != nil {
			return fmt.Errorf("mock %d (%s): %w", i, r, err)
		}
	}
	for _, r := range responses {
		reg.Add(r)
	}
	return nil
}

// envVarPattern matches ${VAR_NAME} or ${VAR_NAME:-default}
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// ExpandEnvVars replaces ${VAR} and ${VAR:-default} references.
func ExpandEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		submatch := envVarPattern.FindStringSubmatch(match)
		if len(submatch) < 2 {
			return match
		}
		if val := os.Getenv(submatch[1]); val != "" {
			return val
		}
		if len(submatch) >= 3 {
			return submatch[2]
		}
		return ""
	})
}

// ResolvePath resolves targetPath against basePath. Absolute paths and
// "~/" paths are not joined.
func ResolvePath(basePath, targetPath string) string {
	if filepath.IsAbs(targetPath) {
		return targetPath
	}
	if strings.HasPrefix(targetPath, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, targetPath[2:])
		}
	}
	return filepath.Join(basePath, targetPath)
}
