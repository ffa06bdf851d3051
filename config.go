package debugtrace

import "strings"

// Config holds every limit and literal token used by the renderer and the
// tracer. A Config is resolved once and read-only afterwards; see
// [LoadConfig] for where the values come from.
type Config struct {
	// Output selection
	Logger         string `koanf:"logger" toml:"logger"`
	LoggingLevel   string `koanf:"logging_level" toml:"logging_level"`
	LogFile        string `koanf:"log_file" toml:"log_file"`
	LogFileMaxSize int    `koanf:"log_file_max_size" toml:"log_file_max_size"`
	Enabled        bool   `koanf:"is_enabled" toml:"is_enabled"`

	// Trace tokens
	EnterString       string `koanf:"enter_string" toml:"enter_string"`
	LeaveString       string `koanf:"leave_string" toml:"leave_string"`
	EnterFormat       string `koanf:"enter_format" toml:"enter_format"`
	LeaveFormat       string `koanf:"leave_format" toml:"leave_format"`
	LogDatetimeFormat string `koanf:"log_datetime_format" toml:"log_datetime_format"`
	MaximumIndents    int    `koanf:"maximum_indents" toml:"maximum_indents"`
	CodeIndentString  string `koanf:"code_indent_string" toml:"code_indent_string"`
	DataIndentString  string `koanf:"data_indent_string" toml:"data_indent_string"`

	// Rendering tokens
	LimitString           string `koanf:"limit_string" toml:"limit_string"`
	NonOutputString       string `koanf:"non_output_string" toml:"non_output_string"`
	CyclicReferenceString string `koanf:"cyclic_reference_string" toml:"cyclic_reference_string"`
	VarNameValueSeparator string `koanf:"varname_value_separator" toml:"varname_value_separator"`
	KeyValueSeparator     string `koanf:"key_value_separator" toml:"key_value_separator"`
	NilString             string `koanf:"nil_string" toml:"nil_string"`
	CountFormat           string `koanf:"count_format" toml:"count_format"`
	StringLengthFormat    string `koanf:"string_length_format" toml:"string_length_format"`

	// Rendering limits
	MinimumOutputCount     int `koanf:"minimum_output_count" toml:"minimum_output_count"`
	MinimumOutputLength    int `koanf:"minimum_output_length" toml:"minimum_output_length"`
	MaximumDataOutputWidth int `koanf:"maximum_data_output_width" toml:"maximum_data_output_width"`
	CollectionLimit        int `koanf:"collection_limit" toml:"collection_limit"`
	StringLimit            int `koanf:"string_limit" toml:"string_limit"`
	ReflectionNestLimit    int `koanf:"reflection_nest_limit" toml:"reflection_nest_limit"`

	// Reflection control
	NonOutputFields       []string `koanf:"non_output_fields" toml:"non_output_fields"`
	ReflectionTypes       []string `koanf:"reflection_types" toml:"reflection_types"`
	OutputNonPublicFields bool     `koanf:"output_non_public_fields" toml:"output_non_public_fields"`
}

// DefaultConfig returns the configuration used when no config source sets a
// value.
func DefaultConfig() Config {
	return Config{
		Logger:         "StdErr",
		LoggingLevel:   "DEBUG",
		LogFile:        "debugtrace.log",
		LogFileMaxSize: 10,
		Enabled:        true,

		EnterString:       "Enter",
		LeaveString:       "Leave",
		EnterFormat:       "%s (%s:%d)",
		LeaveFormat:       "%s",
		LogDatetimeFormat: "2006-01-02 15:04:05.000000",
		MaximumIndents:    20,
		CodeIndentString:  "|   ",
		DataIndentString:  "  ",

		LimitString:           "...",
		NonOutputString:       "...",
		CyclicReferenceString: "*** Cyclic Reference ***",
		VarNameValueSeparator: " = ",
		KeyValueSeparator:     ": ",
		NilString:             "nil",
		CountFormat:           "count:%d",
		StringLengthFormat:    "length:%d",

		MinimumOutputCount:     2,
		MinimumOutputLength:    5,
		MaximumDataOutputWidth: 80,
		CollectionLimit:        256,
		StringLimit:            2048,
		ReflectionNestLimit:    4,

		NonOutputFields: []string{},
		ReflectionTypes: []string{},
	}
}

// indentTable precomputes unit repeated 0..n-1 times.
func indentTable(unit string, n int) []string {
	if n < 1 {
		n = 1
	}
	table := make([]string, n)
	for i := range table {
		table[i] = strings.Repeat(unit, i)
	}
	return table
}

// clampIndent selects the indent for level, floor-clamped at zero and
// ceiling-clamped at the last precomputed entry.
func clampIndent(table []string, level int) string {
	switch {
	case level < 0:
		return table[0]
	case level >= len(table):
		return table[len(table)-1]
	default:
		return table[level]
	}
}
