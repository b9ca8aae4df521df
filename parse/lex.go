package parse

import (
	"strings"

	"github.com/google/shlex"
)

// Split splits a command line into arguments using shell quoting rules
func Split(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return []string{}, nil
	}
	args, err := shlex.Split(s)
	if err != nil {
		return nil, err
	}

	return args, nil
}
