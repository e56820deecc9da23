package alloc

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// logger discards everything until SetLogger is called.
var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// SetLogger routes the package's diagnostics to l. A nil l restores the
// discarding default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger = l
}

// violation reports a caller bug and panics. args are slog-style key/value
// pairs and end up in the panic message as key=value.
func violation(msg string, args ...any) {
	logger.Error("contract violation: "+msg, args...)
	panic(violationMessage(msg, args))
}

func violationMessage(msg string, args []any) string {
	var b strings.Builder
	b.WriteString("alloc: ")
	b.WriteString(msg)
	for i := 0; i < len(args); i += 2 {
		if i+1 == len(args) {
			fmt.Fprintf(&b, " %v", args[i])
			break
		}
		fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
	}
	return b.String()
}
