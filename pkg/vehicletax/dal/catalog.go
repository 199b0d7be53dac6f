package dal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// catalogFields is the number of comma separated fields of a catalog row:
// brand,line,year,price,image
const catalogFields = 5

// yearDigits is the length of a model year.
const yearDigits = 4

// preallocLimit caps the capacity reserved from the header count.
const preallocLimit = 1024

// LoadCatalog reads the catalog file at path. The file is closed before
// LoadCatalog returns.
func LoadCatalog(path string) ([]*Vehicle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fileError(path, err)
	}
	defer f.Close()

	vehicles, err := ReadCatalog(f)
	if err != nil {
		return nil, withPath(path, err)
	}
	return vehicles, nil
}

// ReadCatalog parses a catalog: a first line holding the vehicle count N,
// followed by N rows. Anything after the N-th row is ignored.
func ReadCatalog(r io.Reader) ([]*Vehicle, error) {
	scanner := bufio.NewScanner(r)

	lineNo := 0
	nextLine := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		lineNo++
		text := strings.TrimRight(scanner.Text(), "\r")
		if lineNo == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		return text, true
	}

	header, ok := nextLine()
	if !ok {
		if err := scanErr(scanner.Err(), lineNo); err != nil {
			return nil, err
		}
		return nil, formatError(0, "missing vehicle count", nil)
	}

	count, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil {
		return nil, formatError(lineNo, "vehicle count is not an integer", err)
	}
	if count <= 0 {
		return nil, formatError(lineNo, fmt.Sprintf("vehicle count must be positive, got %d", count), nil)
	}

	vehicles := make([]*Vehicle, 0, min(count, preallocLimit))
	for i := 0; i < count; i++ {
		text, ok := nextLine()
		if !ok {
			if err := scanErr(scanner.Err(), lineNo); err != nil {
				return nil, err
			}
			return nil, formatError(lineNo, fmt.Sprintf("expected %d vehicles, found %d", count, i), nil)
		}
		v, err := parseVehicle(text)
		if err != nil {
			err.Line = lineNo
			return nil, err
		}
		vehicles = append(vehicles, v)
	}

	return vehicles, nil
}

// scanErr classifies a scanner failure after line lineNo. An oversized row
// is malformed content, anything else is an I/O failure.
func scanErr(err error, lineNo int) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bufio.ErrTooLong):
		return formatError(lineNo+1, "line too long", err)
	default:
		return &LoadError{Kind: ErrFileIO, Err: err}
	}
}

func parseVehicle(text string) (*Vehicle, *LoadError) {
	fields := strings.Split(text, ",")
	if len(fields) != catalogFields {
		return nil, formatError(0, fmt.Sprintf("expected %d fields, got %d", catalogFields, len(fields)), nil)
	}

	year := strings.TrimSpace(fields[2])
	if !isYear(year) {
		return nil, formatError(0, fmt.Sprintf("model year must be %d digits, got %q", yearDigits, fields[2]), nil)
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
	if err != nil {
		return nil, formatError(0, fmt.Sprintf("invalid price %q", fields[3]), err)
	}
	if price < 0 || math.IsInf(price, 0) || math.IsNaN(price) {
		return nil, formatError(0, fmt.Sprintf("price must be a non-negative number, got %v", price), nil)
	}

	return NewVehicle(fields[0], fields[1], year, price, fields[4]), nil
}

func isYear(s string) bool {
	if len(s) != yearDigits {
		return false
	}
	for _, c := range []byte(s) {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
