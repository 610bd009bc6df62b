package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bft-labs/bankdomain/pkg/log"
)

// Column positions in the reference table.
const (
	colRange = iota
	colBank
	colBIC
	colLength
	colKind
	colNote
)

// reservedBank marks rows for clearing ranges without a participant.
const reservedBank = "0"

// Option configures catalog loading.
type Option func(*options)

type options struct {
	logger log.Logger
}

func defaultOptions() *options {
	return &options{logger: log.NewNoopLogger()}
}

// WithLogger sets the logger that reports skipped rows and overlaps.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// ParseCSV reads the semicolon separated reference table. The first row is a
// header. Rows for reserved ranges (bank "0" or a type column without ":")
// and rows with too few columns are skipped; any other malformed row fails
// the whole load with its line number.
func ParseCSV(r io.Reader, opts ...Option) (*Catalog, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var records []Record
	header := true
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog: read csv: %w", err)
		}
		line, _ := cr.FieldPos(0)

		if header {
			header = false
			continue
		}

		if len(row) <= colKind {
			o.logger.Debug("skipping short catalog row",
				log.Int("line", line),
				log.Int("columns", len(row)),
			)
			continue
		}
		if strings.TrimSpace(row[colBank]) == reservedBank || !strings.Contains(row[colKind], ":") {
			o.logger.Debug("skipping reserved catalog row",
				log.Int("line", line),
				log.String("range", row[colRange]),
			)
			continue
		}

		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("catalog: line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	c, err := FromRecords(records)
	if err != nil {
		return nil, err
	}
	for _, ov := range c.Overlaps() {
		o.logger.Warn("overlapping clearing ranges", log.String("overlap", ov.String()))
	}
	return c, nil
}

func parseRow(row []string) (Record, error) {
	rng, err := ParseRange(row[colRange])
	if err != nil {
		return Record{}, err
	}
	minLen, maxLen, err := parseLength(row[colLength])
	if err != nil {
		return Record{}, err
	}
	t, st, err := ParseKind(row[colKind])
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		Start:     rng.Start,
		End:       rng.End,
		Bank:      strings.TrimSpace(row[colBank]),
		BIC:       strings.TrimSpace(row[colBIC]),
		MinLength: minLen,
		MaxLength: maxLen,
		Type:      t,
		SubType:   st,
	}
	return rec, rec.validate()
}

// parseLength reads "", "10" or "7-10".
func parseLength(s string) (int, int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultAccountLength, DefaultAccountLength, nil
	}
	left, right, found := strings.Cut(s, "-")
	lo, err := strconv.Atoi(strings.TrimSpace(left))
	if err != nil {
		return 0, 0, fmt.Errorf("account length %q: %w", s, err)
	}
	if !found {
		return lo, lo, nil
	}
	hi, err := strconv.Atoi(strings.TrimSpace(right))
	if err != nil {
		return 0, 0, fmt.Errorf("account length %q: %w", s, err)
	}
	return lo, hi, nil
}
