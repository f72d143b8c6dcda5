package runner

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
)

// lineLogger routes runner output lines through structured logging
type lineLogger struct {
	logger *slog.Logger
	source string
	stream string
}

func newLineLogger(logger *slog.Logger, source, stream string) *lineLogger {
	return &lineLogger{
		logger: logger,
		source: source,
		stream: stream,
	}
}

// log writes one line at Info. Blank lines are kept; the runner uses them to
// separate sections of its report.
func (ll *lineLogger) log(line string) {
	line = strings.TrimRight(line, "\r\n")
	ll.logger.Log(context.Background(), slog.LevelInfo, line, "source", ll.source, "stream", ll.stream)
}

// relay reads r until EOF and logs every line as it arrives. Lines of any
// length are read in full; a final line without a newline is logged too.
func relay(r io.Reader, ll *lineLogger) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			ll.log(line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}
