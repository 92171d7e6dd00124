package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// File records the validated file under the key "file".
func File(name string) slog.Attr {
	return slog.String("file", name)
}

// Row records a 1-based row number under the key "row".
func Row(n int) slog.Attr {
	return slog.Int("row", n)
}

// Rows records how many rows were read under the key "rows".
func Rows(n int) slog.Attr {
	return slog.Int("rows", n)
}

// Header records a column header under the key "header".
func Header(name string) slog.Attr {
	return slog.String("header", name)
}

// Rule records the violated rule code under the key "rule".
func Rule(code string) slog.Attr {
	return slog.String("rule", code)
}

// Schema records the schema name under the key "schema".
func Schema(name string) slog.Attr {
	return slog.String("schema", name)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
