// Package species loads the lookup tables used when exporting checklists:
// banding code to common name, and per-species NFC commentary.
package species

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/penwyp/go-nfc-checklist/internal/util"
)

// ErrBadCodesFile is returned when the codes table lacks its Code/Species columns.
var ErrBadCodesFile = errors.New("codes table must have Code and Species columns")

// Codes maps uppercase four-letter banding codes to eBird common names.
type Codes struct {
	names map[string]string
}

// LoadCodes reads the codes table at path.
func LoadCodes(path string) (*Codes, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open codes table: %w", err)
	}
	defer file.Close()

	codes, err := ParseCodes(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	util.LogDebugf("Loaded %d species codes from %s", codes.Len(), path)
	return codes, nil
}

// ParseCodes reads a CSV table with Code and Species columns.
func ParseCodes(r io.Reader) (*Codes, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, ErrBadCodesFile
		}
		return nil, err
	}

	codeCol, nameCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case "Code":
			codeCol = i
		case "Species":
			nameCol = i
		}
	}
	if codeCol < 0 || nameCol < 0 {
		return nil, ErrBadCodesFile
	}

	codes := &Codes{names: make(map[string]string)}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if codeCol >= len(record) || nameCol >= len(record) {
			continue
		}
		code := strings.ToUpper(strings.TrimSpace(record[codeCol]))
		if code == "" {
			continue
		}
		codes.names[code] = strings.TrimSpace(record[nameCol])
	}
	return codes, nil
}

// CommonName returns the common name for code, case-insensitively.
func (c *Codes) CommonName(code string) (string, bool) {
	if c == nil {
		return "", false
	}
	name, ok := c.names[strings.ToUpper(code)]
	return name, ok
}

// Len returns the number of codes loaded.
func (c *Codes) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}
