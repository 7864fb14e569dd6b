// Package matrixio reads and writes transition matrices as delimited text:
// one row per line, cells separated by commas or semicolons, no header.
package matrixio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/markovsim/internal/markov"
)

var (
	// ErrParse is matched by every *ParseError.
	ErrParse = errors.New("matrixio: malformed matrix file")

	// ErrEmptyCell marks a missing value between separators.
	ErrEmptyCell = errors.New("matrixio: empty cell")
)

type ParseError struct {
	Line   int
	Column int
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column == 0 {
		return fmt.Sprintf("matrixio: line %d: %v", e.Line, e.Err)
	}
	if e.Value == "" {
		return fmt.Sprintf("matrixio: line %d, column %d: empty cell", e.Line, e.Column)
	}
	return fmt.Sprintf("matrixio: line %d, column %d: invalid value %q", e.Line, e.Column, e.Value)
}

func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }

func isSeparator(r rune) bool { return r == ',' || r == ';' }

// splitCells splits on either separator and keeps empty fields, so a doubled
// or trailing separator shows up as an empty cell.
func splitCells(text string) []string {
	return strings.Split(strings.ReplaceAll(text, ";", ","), ",")
}

// Parse reads numeric rows from r. Blank lines are skipped; the shape is left
// for markov.Validate to judge.
func Parse(r io.Reader) ([][]float64, error) {
	var rows [][]float64
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(strings.TrimPrefix(sc.Text(), "\ufeff"))
		if text == "" {
			continue
		}
		fields := splitCells(text)
		row := make([]float64, 0, len(fields))
		for i, f := range fields {
			f = strings.TrimSpace(f)
			if f == "" {
				return nil, &ParseError{Line: line, Column: i + 1, Err: ErrEmptyCell}
			}
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, &ParseError{Line: line, Column: i + 1, Value: f, Err: err}
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, &ParseError{Line: line, Err: err}
	}
	return rows, nil
}

func ReadFile(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Load parses and validates the file at path.
func Load(path string) (markov.TransitionMatrix, error) {
	rows, err := ReadFile(path)
	if err != nil {
		return markov.TransitionMatrix{}, err
	}
	tm, err := markov.Validate(rows)
	if err != nil {
		return markov.TransitionMatrix{}, fmt.Errorf("%s: %w", path, err)
	}
	return tm, nil
}

// Write emits m with four decimals per cell using sep between cells.
func Write(w io.Writer, m markov.Matrix, sep rune) error {
	if !isSeparator(sep) {
		return fmt.Errorf("matrixio: unsupported separator %q", sep)
	}
	bw := bufio.NewWriter(w)
	for i := 0; i < markov.NumStates; i++ {
		for j := 0; j < markov.NumStates; j++ {
			if j > 0 {
				bw.WriteRune(sep)
			}
			bw.WriteString(strconv.FormatFloat(m[i][j], 'f', 4, 64))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func WriteFile(path string, m markov.Matrix, sep rune) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, m, sep); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ParseCell reads a single value typed into the matrix editor. A decimal
// comma is accepted there, unlike in files where it separates cells.
func ParseCell(text string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
