package regex

import "github.com/spf13/viper"

// Nominal pool sizes from §5: the defaults used whenever no override is
// configured. A pool sized to these defaults is generous for any
// pattern a human would type; PoolExhausted is the designed response to
// a pattern that needs more, not a panic or an unbounded allocation.
const (
	DefaultMaxTokens     = 128
	DefaultMaxStates     = 1024
	DefaultMaxOutList    = 1024
	DefaultMaxGroupStack = 256
	DefaultMaxMatchList  = 256
)

// PoolConfig sizes every fixed-capacity pool a single Compile call uses.
// None of these grow once a compile starts — see §5's resource policy.
type PoolConfig struct {
	MaxTokens     int
	MaxStates     int
	MaxOutList    int
	MaxGroupStack int
	MaxMatchList  int
}

// DefaultPoolConfig returns the §5 nominal sizes.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxTokens:     DefaultMaxTokens,
		MaxStates:     DefaultMaxStates,
		MaxOutList:    DefaultMaxOutList,
		MaxGroupStack: DefaultMaxGroupStack,
		MaxMatchList:  DefaultMaxMatchList,
	}
}

// LoadPoolConfig reads pool-size overrides from the environment
// (REGEX_MAX_TOKENS, REGEX_MAX_STATES, REGEX_MAX_OUTLIST,
// REGEX_MAX_GROUP_STACK, REGEX_MAX_MATCHLIST) or an optional config
// file named regex.{yaml,json,toml} on the current path, falling back
// to DefaultPoolConfig for anything unset. The returned sizes are still
// fixed for the lifetime of any one Compile call.
func LoadPoolConfig() PoolConfig {
	v := viper.New()
	v.SetEnvPrefix("REGEX")
	v.AutomaticEnv()
	v.SetConfigName("regex")
	v.AddConfigPath(".")

	def := DefaultPoolConfig()
	v.SetDefault("max_tokens", def.MaxTokens)
	v.SetDefault("max_states", def.MaxStates)
	v.SetDefault("max_outlist", def.MaxOutList)
	v.SetDefault("max_group_stack", def.MaxGroupStack)
	v.SetDefault("max_matchlist", def.MaxMatchList)

	// A missing config file is not an error: env vars and defaults are
	// always sufficient.
	_ = v.ReadInConfig()

	return PoolConfig{
		MaxTokens:     v.GetInt("max_tokens"),
		MaxStates:     v.GetInt("max_states"),
		MaxOutList:    v.GetInt("max_outlist"),
		MaxGroupStack: v.GetInt("max_group_stack"),
		MaxMatchList:  v.GetInt("max_matchlist"),
	}
}
