package landsim

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// kvConfig is a flat key=value table, the format both cores' .cfg files
// use (one key=value pair per line; a line starting with '#' is a
// comment). Individual
// keys can be overridden by key=value command-line tokens; overrides are
// applied after the file is loaded, last-token-wins.
type kvConfig map[string]string

// loadKVConfig reads a key=value file and applies any key=value override
// tokens found in args, in order.
func loadKVConfig(path string, args []string) (kvConfig, error) {
	cfg := make(kvConfig)

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening configuration file %s", path)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := splitKV(line)
		if !ok {
			continue
		}
		cfg[key] = val
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading configuration file %s", path)
	}

	for _, tok := range args {
		key, val, ok := splitKV(tok)
		if !ok {
			continue
		}
		cfg[key] = val
	}
	return cfg, nil
}

func splitKV(s string) (key, val string, ok bool) {
	i := strings.IndexByte(s, '=')
	if i < 0 {
		return "", "", false
	}
	return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:]), true
}

func (c kvConfig) requireString(key string) (string, error) {
	v, ok := c[key]
	if !ok || v == "" {
		return "", errors.Errorf(MissingConfigKeyError, key)
	}
	return v, nil
}

func (c kvConfig) requireFloat(key string) (float64, error) {
	s, err := c.requireString(key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(err, InvalidConfigValueError, s, key, "not a number")
	}
	return v, nil
}

func (c kvConfig) requireInt(key string) (int, error) {
	s, err := c.requireString(key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(err, InvalidConfigValueError, s, key, "not an integer")
	}
	return v, nil
}

func (c kvConfig) requireBool(key string) (bool, error) {
	v, err := c.requireInt(key)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// cfgPathFor derives the default configuration file path from an
// executable's basename, as the historical tools do: <basename>.cfg with
// the directory part dropped, so it resolves against the working
// directory.
func cfgPathFor(argv0 string) string {
	base := argv0
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	return base + ".cfg"
}
