package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var errAborted = errors.New("aborted")

// confirm asks a yes/no question; anything but y/yes is a no.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	answer, err := readLine(in)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes", "s", "sim":
		return true, nil
	default:
		return false, nil
	}
}

// promptChoice reads a 1-based selection in [1, count]. An empty answer aborts.
func promptChoice(in io.Reader, out io.Writer, count int) (int, error) {
	fmt.Fprintf(out, "Select a match [1-%d] (empty to cancel): ", count)
	answer, err := readLine(in)
	if err != nil {
		return 0, err
	}
	if answer == "" {
		return 0, errAborted
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > count {
		return 0, fmt.Errorf("invalid selection %q", answer)
	}
	return n, nil
}

func readLine(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
