package binding

// Strategy is one row of the marshaling table: how a kind is written to and
// read from a starter.Message.
type Strategy struct {
	Kind Kind
	// Writer is the Message method that stores the value.
	Writer string
	// Reader is the Message method that reads it back.
	Reader string
	// Default is the sentinel passed to Reader when the kind's reader takes
	// one. It is only observed by callers that skip the Has guard.
	Default any
	// DefaultArg is true when Reader takes Default as its second argument.
	DefaultArg bool
	// Cast is true when the read value must be type-asserted to the field type.
	Cast bool
}

var strategies = map[Kind]Strategy{
	// GetString has no default parameter: an absent string reads as "".
	KindString:    {Kind: KindString, Writer: "PutString", Reader: "GetString", Default: ""},
	KindInt32:     {Kind: KindInt32, Writer: "PutInt32", Reader: "GetInt32", Default: -1, DefaultArg: true},
	KindFloat32:   {Kind: KindFloat32, Writer: "PutFloat32", Reader: "GetFloat32", Default: -1.0, DefaultArg: true},
	KindBool:      {Kind: KindBool, Writer: "PutBool", Reader: "GetBool", Default: false, DefaultArg: true},
	KindFloat64:   {Kind: KindFloat64, Writer: "PutFloat64", Reader: "GetFloat64", Default: -1.0, DefaultArg: true},
	KindRune:      {Kind: KindRune, Writer: "PutRune", Reader: "GetRune", Default: 'a', DefaultArg: true},
	KindReference: {Kind: KindReference, Writer: "PutParcelable", Reader: "GetParcelable", Cast: true},
	KindValue:     {Kind: KindValue, Writer: "PutSerializable", Reader: "GetSerializable", Cast: true},
}

// StrategyFor returns the marshaling strategy for k.
func StrategyFor(k Kind) (Strategy, bool) {
	s, ok := strategies[k]
	return s, ok
}
