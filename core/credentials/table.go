package credentials

import (
	"bufio"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/alexedwards/argon2id"
)

// HashPrefix marks stored passwords that are argon2id hashes.
const HashPrefix = "$argon2id$"

var (
	// ErrInvalidEntry is returned for entries that are not "user:password".
	ErrInvalidEntry = errors.New("invalid credential entry")
	// ErrDuplicateUser is returned when a username appears twice.
	ErrDuplicateUser = errors.New("duplicate username")
)

// Table is an immutable username to password mapping.
// It is safe for concurrent use.
type Table struct {
	users map[string]string
}

// NewTable builds a table from the given entries. The map is copied.
func NewTable(users map[string]string) (*Table, error) {
	t := &Table{users: make(map[string]string, len(users))}
	for name, password := range users {
		if name == "" {
			return nil, fmt.Errorf("%w: empty username", ErrInvalidEntry)
		}
		t.users[name] = password
	}
	return t, nil
}

// Parse builds a table from the "user:pass,user2:pass2" format.
// Each entry is split on its first ':'; whitespace around entries is ignored.
func Parse(s string) (*Table, error) {
	users := make(map[string]string)
	if err := addEntries(users, strings.Split(s, ","), "position"); err != nil {
		return nil, err
	}
	return NewTable(users)
}

// ParseLines builds a table from one "user:password" entry per line.
// Blank lines and lines starting with '#' are skipped.
func ParseLines(r io.Reader) (*Table, error) {
	users := make(map[string]string)
	if err := readLines(users, r); err != nil {
		return nil, err
	}
	return NewTable(users)
}

func readLines(users map[string]string, r io.Reader) error {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			line = ""
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read credentials: %w", err)
	}
	return addEntries(users, lines, "line")
}

func addEntries(users map[string]string, entries []string, unit string) error {
	for i, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, password, ok := strings.Cut(entry, ":")
		if !ok || name == "" {
			return fmt.Errorf("%w at %s %d", ErrInvalidEntry, unit, i+1)
		}
		if _, exists := users[name]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateUser, name)
		}
		users[name] = password
	}
	return nil
}

// Verify reports whether password matches the stored value for username.
// Plaintext values are compared in constant time; argon2id hashes are verified.
func (t *Table) Verify(username, password string) bool {
	stored, ok := t.users[username]
	if !ok {
		return false
	}
	if strings.HasPrefix(stored, HashPrefix) {
		match, err := argon2id.ComparePasswordAndHash(password, stored)
		return err == nil && match
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

// Usernames returns the sorted list of usernames.
func (t *Table) Usernames() []string {
	names := make([]string, 0, len(t.users))
	for name := range t.users {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of users.
func (t *Table) Len() int {
	return len(t.users)
}

// Hash returns an argon2id hash of password suitable for storing in the table.
func Hash(password string) (string, error) {
	return argon2id.CreateHash(password, argon2id.DefaultParams)
}
