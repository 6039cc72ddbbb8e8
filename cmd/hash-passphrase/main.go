package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/ninjapark/rollsync/internal/service"
	"golang.org/x/term"
)

const minPassphraseLen = 8

func main() {
	fmt.Fprintln(os.Stderr, "=== Operator Passphrase Hash ===")

	passphrase, err := readPassphrase("Enter Passphrase: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error reading passphrase:", err)
		os.Exit(1)
	}
	if len(passphrase) < minPassphraseLen {
		fmt.Fprintf(os.Stderr, "Error: Passphrase must be at least %d characters\n", minPassphraseLen)
		os.Exit(1)
	}

	if term.IsTerminal(int(syscall.Stdin)) {
		confirm, err := readPassphrase("Confirm Passphrase: ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error reading passphrase:", err)
			os.Exit(1)
		}
		if confirm != passphrase {
			fmt.Fprintln(os.Stderr, "Error: Passphrases do not match")
			os.Exit(1)
		}
	}

	hash, err := service.HashPassphrase(passphrase)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error hashing passphrase:", err)
		os.Exit(1)
	}

	fmt.Fprintln(os.Stderr, "Set this value as OPERATOR_PASSPHRASE_HASH:")
	fmt.Println(hash)
}

// readPassphrase reads without echo from a terminal, or one line from a pipe.
func readPassphrase(prompt string) (string, error) {
	fd := int(syscall.Stdin)
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
