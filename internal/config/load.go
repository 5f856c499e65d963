package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	getter "github.com/hashicorp/go-getter"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Load reads the file at path into cfg. The format follows the extension:
// .json, .toml, .yaml or .yml. Fields missing from the file keep their value.
func Load(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("config %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Fetch downloads a config file from src into dir and returns the local
// path. src may be any go-getter source, e.g. an https URL, "git::..." or
// "s3::...". The file name keeps the extension of src so Load can pick the
// format.
func Fetch(ctx context.Context, src, dir string) (string, error) {
	name := src
	if i := strings.IndexByte(name, '?'); i >= 0 {
		name = name[:i]
	}
	dst := filepath.Join(dir, "config"+filepath.Ext(name))
	if err := getter.GetFile(dst, src, getter.WithContext(ctx)); err != nil {
		return "", fmt.Errorf("fetch config %s: %w", src, err)
	}
	return dst, nil
}

// Resolve returns a local path for src. Existing local files are returned
// as is; anything else is fetched into a temporary directory that cleanup
// removes.
func Resolve(ctx context.Context, src string) (path string, cleanup func(), err error) {
	if _, err := os.Stat(src); err == nil {
		return src, func() {}, nil
	}
	dir, err := os.MkdirTemp("", "noa-config-")
	if err != nil {
		return "", nil, fmt.Errorf("create temp dir: %w", err)
	}
	cleanup = func() { _ = os.RemoveAll(dir) }
	path, err = Fetch(ctx, src, dir)
	if err != nil {
		cleanup()
		return "", nil, err
	}
	return path, cleanup, nil
}
