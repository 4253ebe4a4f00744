package log

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"

	"github.com/decopy/decopy/pkg/text"
)

// 📢 UserLogger prints the end-of-run summary: one line per destination,
// success or failure, plus a closing total. Output goes through pterm
// prefix printers and is mirrored to zerolog.
type UserLogger struct {
	log zerolog.Logger
}

// 🎯 NewUserLogger creates a summary logger on the context's zerolog logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// 📝 LogDestinationResult prints one destination's outcome
func (u *UserLogger) LogDestinationResult(destination string, bytes int64, err error) {
	if err != nil {
		msg := fmt.Sprintf("Failed %s", destination)
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(msg)
		pterm.Error.Println(err)
		u.log.Error().Err(err).Str("destination", destination).Msg("destination failed")
		return
	}

	msg := fmt.Sprintf("Copied %s to %s", text.FormatBytes(bytes), destination)
	pterm.Success.WithPrefix(pterm.Prefix{Text: "✨"}).Println(msg)
	u.log.Info().Str("destination", destination).Int64("bytes", bytes).Msg("destination copied")
}

// 📊 LogRunSummary prints the closing totals line
func (u *UserLogger) LogRunSummary(succeeded, failed int, totalBytes int64) {
	msg := fmt.Sprintf("%d of %d destination(s) copied, %s written",
		succeeded, succeeded+failed, text.FormatBytes(totalBytes))
	if failed > 0 {
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(msg)
		u.log.Warn().Int("succeeded", succeeded).Int("failed", failed).Int64("bytes", totalBytes).Msg("run finished with failures")
		return
	}
	pterm.Info.WithPrefix(pterm.Prefix{Text: "ℹ️"}).Println(msg)
	u.log.Info().Int("succeeded", succeeded).Int64("bytes", totalBytes).Msg("run finished")
}
