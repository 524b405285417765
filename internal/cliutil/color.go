package cliutil

import "fmt"

// Green, Red, and Yellow wrap s in ANSI color codes when stdout is a
// terminal, and return s unchanged otherwise.
func Green(s string) string  { return colorize(s, "32") }
func Red(s string) string    { return colorize(s, "31") }
func Yellow(s string) string { return colorize(s, "33") }

func colorize(s, code string) string {
	if !isTerminal() {
		return s
	}
	return fmt.Sprintf("\x1b[%sm%s\x1b[0m", code, s)
}
