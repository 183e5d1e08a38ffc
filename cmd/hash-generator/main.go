// Command hash-generator prints the bcrypt hash of a password after checking
// it against the registration password policy. It is used to seed users
// directly into the database.
//
// Usage:
//
//	hash-generator [-cost 10] [-skip-policy] < password.txt
//	hash-generator [-cost 10] 'Winter1s@Coming'
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phrazzld/thrones-api/internal/domain"
	"github.com/phrazzld/thrones-api/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor (4-31)")
	skipPolicy := flag.Bool("skip-policy", false, "hash the password even if it violates the password policy")
	flag.Parse()

	if err := run(os.Stdin, os.Stdout, flag.Args(), *cost, *skipPolicy); err != nil {
		fmt.Fprintf(os.Stderr, "hash-generator: %v\n", err)
		os.Exit(1)
	}
}

func run(in io.Reader, out io.Writer, args []string, cost int, skipPolicy bool) error {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return fmt.Errorf("cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	password, err := readPassword(in, args)
	if err != nil {
		return err
	}

	if !skipPolicy {
		if err := domain.ValidatePassword(password); err != nil {
			return err
		}
	}

	hash, err := auth.NewBcryptHasher(cost).Hash(password)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, hash)
	return err
}

// readPassword takes the password from the first argument, or else from the
// first line of in.
func readPassword(in io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", fmt.Errorf("no password given")
	}
	return password, nil
}
