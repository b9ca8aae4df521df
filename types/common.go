package types

// OptionKind describes how a parameter is presented on the command line
type OptionKind int

// String returns the string representation of an OptionKind
func (o OptionKind) String() string {
	switch o {
	case Positional:
		return "positional"
	case Flag:
		return "flag"
	case Single:
		return "single-value"
	case Accumulate:
		return "accumulating-list"
	default:
		return "unknown"
	}
}

// TakesValue reports whether an option of this kind consumes a value token
func (o OptionKind) TakesValue() bool {
	return o == Single || o == Accumulate
}

const (
	Positional OptionKind = iota // Positional denotes a required argument consumed left-to-right
	Flag                         // Flag denotes a boolean toggle which does not consume a value
	Single                       // Single denotes an option accepting exactly one value
	Accumulate                   // Accumulate denotes a repeatable option whose values are appended to a list
)

// PathFlag is a bit set of checks applied to path-valued parameters
type PathFlag int

const (
	File   PathFlag = 1 << iota // File requires a path without a trailing separator
	Dir                         // Dir requires a path with a trailing separator
	Exists                      // Exists requires the path to exist
	Parent                      // Parent requires the parent directory to exist
)

// Has reports whether all bits of other are set
func (p PathFlag) Has(other PathFlag) bool {
	return p&other == other
}

// Stream names a process stream which can be injected into a parameter instead of being read from the command line
type Stream int

const (
	NoStream Stream = iota
	Stdin
	Stdout
	Stderr
)

// String returns the string representation of a Stream
func (s Stream) String() string {
	switch s {
	case Stdin:
		return "stdin"
	case Stdout:
		return "stdout"
	case Stderr:
		return "stderr"
	}
	return ""
}

// StreamFromString converts a tag value to a Stream
func StreamFromString(s string) Stream {
	switch s {
	case "stdin":
		return Stdin
	case "stdout":
		return Stdout
	case "stderr":
		return Stderr
	}
	return NoStream
}

// KeyValue denotes Key Value pairs
type KeyValue[K, V any] struct {
	Key   K
	Value V
}

// TagConfig is the parsed form of a `funcopt` struct tag
type TagConfig struct {
	Name        string
	Short       string
	Description string
	Required    bool
	Stream      Stream
	Choices     []string
	Ignore      bool
}
