package build

import (
	"bufio"
	"bytes"
	"io"
	"regexp"
	"strings"
)

// Matches pi-gen's timestamped progress lines, e.g. "[00:01:02] Begin stage0".
var timestampPrefix = regexp.MustCompile(`^\s*\[\d{2}:\d{2}:\d{2}\]`)

// Reads lines from r until EOF, capturing all of them into buf and
// forwarding progress lines to emit.
//
// Only lines carrying pi-gen's timestamp prefix are forwarded unless
// verbose is set, in which case every line is. The capture is unfiltered
// either way, so the full output remains available in the [Result].
//
// Lines are read without a length limit: pi-gen occasionally emits
// package-list lines far beyond bufio's default token size, and the
// reader must keep draining the pipe regardless or the build process
// blocks on a full buffer.
func consume(r io.Reader, buf *bytes.Buffer, verbose bool, emit func(string)) {
	reader := bufio.NewReaderSize(r, 64*1024)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			buf.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				buf.WriteByte('\n')
			}

			line = strings.TrimSuffix(line, "\n")
			if verbose || timestampPrefix.MatchString(line) {
				emit(line)
			}
		}
		if err != nil {
			return
		}
	}
}
