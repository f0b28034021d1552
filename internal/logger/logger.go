package logger

import (
	"fmt"
	"time"

	"github.com/fatih/color"
)

var (
	gray    = color.New(color.FgHiBlack)
	blue    = color.New(color.FgBlue)
	green   = color.New(color.FgGreen)
	yellow  = color.New(color.FgYellow)
	red     = color.New(color.FgRed)
	cyan    = color.New(color.FgCyan)
	magenta = color.New(color.FgMagenta)
	white   = color.New(color.FgWhite)
)

func timestamp() string {
	return gray.Sprintf("[%s]", time.Now().Format("15:04:05"))
}

// Info log une information générale (bleu)
func Info(message string, args ...interface{}) {
	fmt.Printf("%s %s\n", timestamp(), blue.Sprintf(message, args...))
}

// Success log un succès (vert)
func Success(message string, args ...interface{}) {
	fmt.Printf("%s %s\n", timestamp(), green.Sprint("✓ "+fmt.Sprintf(message, args...)))
}

// Warning log un avertissement (jaune)
func Warning(message string, args ...interface{}) {
	fmt.Printf("%s %s\n", timestamp(), yellow.Sprint("⚠ "+fmt.Sprintf(message, args...)))
}

// Error log une erreur (rouge)
func Error(message string, args ...interface{}) {
	fmt.Printf("%s %s\n", timestamp(), red.Sprint("✗ "+fmt.Sprintf(message, args...)))
}

// Debug log un message de debug (gris)
func Debug(message string, args ...interface{}) {
	fmt.Printf("%s %s\n", timestamp(), gray.Sprint("DEBUG: "+fmt.Sprintf(message, args...)))
}

// Request log une requête HTTP avec durée
func Request(method, path string, statusCode int, duration time.Duration) {
	fmt.Printf("%s %s %s %s %s\n",
		timestamp(),
		magenta.Sprintf("%-6s", method),
		white.Sprintf("%-40s", path),
		statusColor(statusCode).Sprintf("[%d]", statusCode),
		gray.Sprintf("(%s)", FormatDuration(duration)),
	)
}

func statusColor(statusCode int) *color.Color {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return green
	case statusCode >= 300 && statusCode < 400:
		return cyan
	case statusCode >= 400 && statusCode < 500:
		return yellow
	default:
		return red
	}
}

// FormatDuration rend une durée lisible : µs, ms ou s.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}
