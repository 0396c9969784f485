// Package flagx lets several independent components share one command line.
// Each component picks out only the flags it owns and parses them with its
// own flag.FlagSet, so flags meant for someone else never cause errors.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs returns the arguments that belong to the named flags, in their
// original order. Names are given without dashes; both "-name" and "--name"
// spellings match, as does the "-name=value" form. A separate value is kept
// when the next argument does not itself look like a flag.
func FilterArgs(args []string, names []string) []string {
	owned, _ := SplitArgs(args, names)
	return owned
}

// SplitArgs partitions args into the named flags (with their values) and
// everything else, both in original order. Matching follows FilterArgs.
func SplitArgs(args []string, names []string) (owned, rest []string) {
	known := make(map[string]struct{}, len(names))
	for _, n := range names {
		known[strings.TrimLeft(n, "-")] = struct{}{}
	}

	owned = make([]string, 0, len(args))
	rest = make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			rest = append(rest, arg)
			continue
		}

		name, _, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if _, ok := known[name]; !ok {
			rest = append(rest, arg)
			continue
		}

		owned = append(owned, arg)
		if hasValue {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			owned = append(owned, args[i+1])
			i++
		}
	}

	return owned, rest
}

// ConfigPath extracts the JSON config file path given with -c or -config.
// The last occurrence wins; an empty string means no file was requested.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"c", "config"}))

	return path
}
