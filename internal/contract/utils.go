package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Association label constants, keyed off lift.
const (
	StrongValue      = "Strong"      // Lift well above independence
	PositiveValue    = "Positive"    // Lift above 1
	IndependentValue = "Independent" // Lift at 1 within tolerance
	NegativeValue    = "Negative"    // Lift below 1
)

// liftTolerance bounds the band treated as statistical independence.
const liftTolerance = 1e-9

// Color variables for console output.
var (
	StrongColor      = color.New(color.FgGreen, color.Bold) // strongColor marks the rules worth acting on.
	PositiveColor    = color.New(color.FgCyan)              // positiveColor marks mild positive association.
	IndependentColor = color.New(color.FgYellow)            // independentColor marks co-occurrence at chance level.
	NegativeColor    = color.New(color.FgRed)               // negativeColor marks items that repel each other.
)

// GetPlainLabel returns a plain text label classifying a rule's lift.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(lift float64) string {
	switch {
	case lift >= 2:
		return StrongValue
	case lift > 1+liftTolerance:
		return PositiveValue
	case lift >= 1-liftTolerance:
		return IndependentValue
	default:
		return NegativeValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(lift float64) string {
	text := GetPlainLabel(lift)

	switch text {
	case StrongValue:
		return StrongColor.Sprint(text)
	case PositiveValue:
		return PositiveColor.Sprint(text)
	case IndependentValue:
		return IndependentColor.Sprint(text)
	default: // "Negative"
		return NegativeColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetStoreDBFilePath returns the path to the SQLite DB file for run tracking.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".cofail_runs.db"
	}
	return filepath.Join(homeDir, ".cofail_runs.db")
}

// FormatItems renders a sorted item set for table and CSV output.
func FormatItems(items []string) string {
	return strings.Join(items, ", ")
}

// TruncateLabel truncates an item list string to a maximum width with an
// ellipsis suffix. Requires maxWidth > 3 so there is room for the ellipsis
// and at least one character of content.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return label
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
