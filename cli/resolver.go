package cli

import (
	"io"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/ardnew/clj/lang"
)

// resolve is a [kong.ConfigurationLoader] factory that parses a config file
// written in the interpreter's own language and converts a single top-level
// def'd map into Kong flag values.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve("config"), "/path/to/config.clj")
//
// Example config file:
//
//	(def config {:log-level "debug" :log-format "json" :log-pretty true})
//
// This configuration is applied to Kong flags:
//
//	--log-level=debug
//	--log-format=json
//	--log-pretty=true
//
// Command-line flags override config file values. A config file that fails
// to parse, or that defines no map named name, yields an empty resolver
// rather than an error — Kong simply falls back to flag defaults.
func resolve(name string) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		data, err := io.ReadAll(r)
		if err != nil {
			return config{}, nil
		}

		forms, err := lang.Parse(string(data))
		if err != nil {
			return config{}, nil
		}

		core := lang.NewNamespaceEnv("clojure.core", nil)
		lang.InstallCore(core, nil)

		user := lang.NewNamespaceEnv("user", core)

		for _, f := range forms {
			if _, err := lang.Eval(f, user); err != nil {
				return config{}, nil
			}
		}

		v, ok := user.GetLocal(name)
		if !ok || v.Kind != lang.KindMap {
			return config{}, nil
		}

		return config(mapToConfig(v)), nil
	}
}

// config implements [kong.Resolver] for clj-language configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed - the config was already parsed successfully.
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	return nil, nil
}

// mapToConfig converts a Map Value to a native map representation, keyed by
// the stripped keyword/symbol/string text of each entry's key. Kong flag
// parsing expects string values, so numbers are formatted as decimal text.
func mapToConfig(m lang.Value) map[string]any {
	result := make(map[string]any, len(m.Entries()))

	for _, e := range m.Entries() {
		key, err := lang.ToGo(e.Key)
		if err != nil {
			continue
		}

		keyStr, ok := key.(string)
		if !ok {
			continue
		}

		val, err := lang.ToGo(e.Val)
		if err != nil {
			continue
		}

		if num, ok := val.(float64); ok {
			result[keyStr] = strconv.FormatFloat(num, 'f', -1, 64)
		} else {
			result[keyStr] = val
		}
	}

	return result
}
