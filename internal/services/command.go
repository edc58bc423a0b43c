package services

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidInput is returned for an hours value that cannot be logged.
var ErrInvalidInput = errors.New("invalid input")

var errHoursOutOfRange = fmt.Errorf("%w: hours out of range", ErrInvalidInput)

// decimalHours matches plain decimals with an optional sign: "2", "2.5", ".5", "-1".
var decimalHours = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

type CommandKind string

const (
	CommandLog     CommandKind = "log"
	CommandToday   CommandKind = "today"
	CommandWeek    CommandKind = "week"
	CommandTotal   CommandKind = "total"
	CommandStats   CommandKind = "stats"
	CommandDaily   CommandKind = "daily"
	CommandHistory CommandKind = "history"
	CommandReset   CommandKind = "reset"
	CommandSheet   CommandKind = "sheet"
	CommandHelp    CommandKind = "help"
)

var keywords = map[string]CommandKind{
	"today":   CommandToday,
	"week":    CommandWeek,
	"total":   CommandTotal,
	"stats":   CommandStats,
	"daily":   CommandDaily,
	"history": CommandHistory,
	"reset":   CommandReset,
	"sheet":   CommandSheet,
	"info":    CommandSheet,
}

// Command is one parsed chat message. Err is set only for CommandLog.
type Command struct {
	Kind  CommandKind
	Hours float64
	Err   error
}

// Normalize lower-cases text and collapses runs of whitespace.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// ParseCommand maps a message to a command. Anything unrecognised is CommandHelp.
// maxHours of zero disables the upper bound.
func ParseCommand(text string, maxHours float64) Command {
	fields := strings.Fields(Normalize(text))
	if len(fields) == 0 {
		return Command{Kind: CommandHelp}
	}

	if fields[0] == string(CommandLog) {
		if len(fields) != 2 {
			return Command{Kind: CommandLog, Err: fmt.Errorf("%w: expected one number after log", ErrInvalidInput)}
		}
		hours, err := ParseHours(fields[1], maxHours)
		return Command{Kind: CommandLog, Hours: hours, Err: err}
	}

	if len(fields) == 1 {
		if kind, ok := keywords[fields[0]]; ok {
			return Command{Kind: kind}
		}
	}
	return Command{Kind: CommandHelp}
}

// ParseHours accepts a non-negative plain decimal with an optional "h" suffix.
func ParseHours(s string, maxHours float64) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "h")
	if !decimalHours.MatchString(s) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, s)
	}
	hours, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a finite number", ErrInvalidInput, s)
	}
	if hours < 0 || (maxHours > 0 && hours > maxHours) {
		return 0, errHoursOutOfRange
	}
	if hours == 0 {
		// -0 compares equal to 0; store it unsigned.
		hours = 0
	}
	return hours, nil
}
