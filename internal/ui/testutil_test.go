package ui

import "regexp"

var ansiSGR = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// stripANSI removes colour codes so assertions see plain text.
func stripANSI(s string) string {
	return ansiSGR.ReplaceAllString(s, "")
}
