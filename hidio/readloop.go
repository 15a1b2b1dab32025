package hidio

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// maxReportLen is one byte of report ID plus the largest report the
	// supported headsets send.
	maxReportLen = 65

	// readPollInterval bounds how long a blocking read may run before the
	// loop re-checks for cancellation.
	readPollInterval = 500 * time.Millisecond
)

// ReadLoop delivers every inbound report to onReport until the context is
// cancelled or the device goes away. The callback's return value is
// deliberately absent: report delivery is fire-and-forget.
func (h *Handle) ReadLoop(ctx context.Context, onReport func([]byte)) error {
	buf := make([]byte, maxReportLen)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := h.dev.ReadWithTimeout(buf, readPollInterval)

		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			readErrorsCounter.Inc()

			return fmt.Errorf("failed to read input report: %w", err)
		}

		// a zero-length read is just the poll interval elapsing.
		if n == 0 {
			continue
		}

		inboundReportsCounter.Inc()

		frame := make([]byte, n)
		copy(frame, buf[:n])

		log.Trace().
			Int("Length", n).
			Hex("Report", frame).
			Msg("hidio: received inbound report")

		onReport(frame)
	}
}
