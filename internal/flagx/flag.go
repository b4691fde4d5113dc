// Package flagx picks individual flags out of the command line so several
// loaders can each parse only the flags they own.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs keeps the arguments naming one of allowedFlags, together with
// their values. Both "-f value" and "-f=value" forms are recognised; a token
// starting with "-" is never taken as a value. The result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// JsonConfigFlags returns the JSON config path given with -c or -config, or
// "" when neither is present.
func JsonConfigFlags() string {
	return stringFlag("json", "c", "config", "path to config file")
}

// EnvFileFlags returns the dotenv path given with -env, or def when absent.
func EnvFileFlags(def string) string {
	if v := stringFlag("env", "env", "", "path to .env file"); v != "" {
		return v
	}
	return def
}

// stringFlag parses one string flag, under a short and an optional long
// name, out of os.Args. The last occurrence wins.
func stringFlag(set, short, long, usage string) string {
	var value string

	names := []string{"-" + short}
	if long != "" {
		names = append(names, "-"+long)
	}
	args := FilterArgs(os.Args[1:], names)

	fs := flag.NewFlagSet(set, flag.ContinueOnError)
	fs.StringVar(&value, short, "", usage)
	if long != "" {
		fs.StringVar(&value, long, "", usage)
	}
	_ = fs.Parse(args)

	return value
}
