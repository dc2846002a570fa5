package options

type FlagEnum int

const (
	FlagHooks         FlagEnum = 1 << iota // consult custom clone hooks bound under clone.Custom
	FlagExtensibility                      // reproduce non-extensible, sealed and frozen states on the clone

	FlagAll  = (1 << iota) - 1 //all flags combined
	FlagNone = 0               // plain structural copy
)

func (f FlagEnum) Has(flag FlagEnum) bool {
	return f&flag == flag
}
