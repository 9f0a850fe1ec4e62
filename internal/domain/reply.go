package domain

import "strconv"

// ErrorReply is sent to a network client whose input fails Validate.
const ErrorReply = "ERROR: only digits, max 64 chars\n"

// SumReply formats a digest as a newline-terminated protocol line.
func SumReply(digest int) string {
	return "SUM:" + strconv.Itoa(digest) + "\n"
}
