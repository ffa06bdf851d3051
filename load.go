package debugtrace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/bjaus/debugtrace/internal/logging"
)

const (
	configSection = "debugtrace"
	envPrefix     = "DEBUGTRACE_"
)

// configFiles are searched, in order, in the working directory.
var configFiles = []string{"debugtrace.toml", "debugtrace.yaml", "debugtrace.yml"}

// minimums holds the smallest accepted value of integer options; other
// integer options only reject negatives.
var minimums = map[string]int64{
	"maximum_indents": 1,
}

// formatSamples holds sample arguments used to validate fmt-style options.
var formatSamples = map[string][]any{
	"enter_format":         {"main.run", "main.go", 1},
	"leave_format":         {"main.run"},
	"count_format":         {1},
	"string_length_format": {1},
}

// LoadConfig resolves the configuration. Values are layered, later sources
// winning: built-in defaults, the config file, then DEBUGTRACE_* environment
// variables.
//
// If path is empty, debugtrace.toml, debugtrace.yaml and debugtrace.yml are
// looked up in the working directory, then debugtrace/debugtrace.toml under
// the XDG config home. A missing file is not an error.
//
// A malformed value never aborts loading: it is logged as a warning and the
// default is kept. The returned error joins those warnings, each wrapping
// [ErrInvalidConfig]; the returned Config is always usable.
func LoadConfig(path string) (Config, error) {
	log := logging.Get("config")
	cfg := DefaultConfig()
	var errs []error

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(configMap(cfg), "."), nil); err != nil {
		return cfg, fmt.Errorf("failed to load defaults: %w", err)
	}

	if p := findConfigFile(path); p != "" {
		if err := k.Load(file.Provider(p), parserFor(p)); err != nil {
			log.Warn().Err(err).Str("path", p).Msg("Failed to read config file, using defaults")
			errs = append(errs, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, p, err))
		} else {
			log.Debug().Str("path", p).Msg("Loaded config file")
		}
	} else if path != "" {
		log.Warn().Str("path", path).Msg("Config file not found, using defaults")
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return configSection + "." + strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read environment overrides")
		errs = append(errs, fmt.Errorf("%w: environment: %w", ErrInvalidConfig, err))
	}

	rv := reflect.ValueOf(&cfg).Elem()
	rt := rv.Type()
	for i := range rt.NumField() {
		name := rt.Field(i).Tag.Get("koanf")
		key := configSection + "." + name
		if !k.Exists(key) {
			continue
		}
		if err := decodeOption(name, k.Get(key), rv.Field(i)); err != nil {
			log.Warn().Err(err).Str("key", name).Interface("value", k.Get(key)).
				Msg("Invalid config value, using default")
			errs = append(errs, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, name, err))
		}
	}

	return cfg, errors.Join(errs...)
}

// decodeOption decodes raw into dst. dst is only written when the whole
// value is valid.
func decodeOption(name string, raw any, dst reflect.Value) error {
	tmp := reflect.New(dst.Type())
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           tmp.Interface(),
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return err
	}

	v := tmp.Elem()
	switch v.Kind() {
	case reflect.String:
		s := strings.ReplaceAll(v.String(), `\s`, " ")
		if args, ok := formatSamples[name]; ok && strings.Contains(fmt.Sprintf(s, args...), "%!") {
			return fmt.Errorf("format %q does not accept %d argument(s)", s, len(args))
		}
		v.SetString(s)
	case reflect.Int:
		if lo := minimums[name]; v.Int() < lo {
			return fmt.Errorf("%d is less than %d", v.Int(), lo)
		}
	case reflect.Slice:
		items := make([]string, 0, v.Len())
		for _, s := range v.Interface().([]string) {
			if s = strings.TrimSpace(s); s != "" {
				items = append(items, s)
			}
		}
		v = reflect.ValueOf(items)
	}
	dst.Set(v)
	return nil
}

// configMap flattens cfg into dotted koanf keys under the config section.
func configMap(cfg Config) map[string]any {
	m := make(map[string]any)
	rv := reflect.ValueOf(cfg)
	rt := rv.Type()
	for i := range rt.NumField() {
		m[configSection+"."+rt.Field(i).Tag.Get("koanf")] = rv.Field(i).Interface()
	}
	return m
}

func findConfigFile(path string) string {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		return ""
	}
	candidates := append([]string{}, configFiles...)
	candidates = append(candidates, filepath.Join(xdg.ConfigHome, configSection, configFiles[0]))
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}
