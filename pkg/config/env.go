package config

import (
	"os"
	"strings"
)

// EnvFiles names the environment variable holding default mock file paths,
// separated by commas.
const EnvFiles = "MOCKREG_FILES"

// FilesFromEnv returns the paths listed in MOCKREG_FILES.
func FilesFromEnv() []string {
	raw := os.Getenv(EnvFiles)
	if raw == "" {
		return nil
	}
	var files []string
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			files = append(files, f)
		}
	}
	return files
}
