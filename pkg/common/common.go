// Package common has the bits shared by the commands and the tests.
package common

import (
	"fmt"
	"io"
	"os"
)

const (
	ExitSuccess = iota
	ExitFailure
	ExitUsageError
)

const NoValue = "." // STAR's placeholder for a missing value

// WrtTemp writes a string to a temporary file and returns
// the filename. It is used all over the place in testing.
// Give a suffix like ".str" or ".str.gz" if the name matters.
func WrtTemp(s string, suffix ...string) (string, error) {
	pattern := "_del_me_testing"
	if len(suffix) > 0 {
		pattern += "*" + suffix[0]
	}
	fTmp, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("tempfile fail: %w", err)
	}
	defer fTmp.Close()
	if _, err := io.WriteString(fTmp, s); err != nil {
		return "", fmt.Errorf("writing string to temp file %v: %w", fTmp.Name(), err)
	}
	return fTmp.Name(), nil
}
