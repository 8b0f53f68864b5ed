package cmd

import (
	"strconv"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// applyServeDefaults backfills serve flags the operator left unset with
// values from the config file or environment. An explicit flag always wins.
func applyServeDefaults(flags *pflag.FlagSet) {
	setStringFlagIfUnset(flags, "addr", viper.GetString("serve_addr"))
	setStringFlagIfUnset(flags, "auth-token", viper.GetString("auth_token"))
	applyIntDefault(flags, "rate-limit", viper.GetInt("rate_limit"))
	applyIntDefault(flags, "rate-burst", viper.GetInt("rate_burst"))
}

func setStringFlagIfUnset(flags *pflag.FlagSet, name, value string) {
	if flags == nil || value == "" {
		return
	}
	flag := flags.Lookup(name)
	if flag == nil || flag.Changed {
		return
	}
	_ = flag.Value.Set(value)
}

func applyIntDefault(flags *pflag.FlagSet, name string, value int) {
	if flags == nil || value <= 0 {
		return
	}
	flag := flags.Lookup(name)
	if flag == nil || flag.Changed {
		return
	}
	_ = flag.Value.Set(strconv.Itoa(value))
}
