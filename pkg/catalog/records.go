package catalog

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// ErrEmptyCatalog is returned when a source holds no usable rows.
var ErrEmptyCatalog = errors.New("catalog: no banks")

// Record is one row of the reference table after parsing. It is also the
// unit stored in the binary catalog form.
type Record struct {
	Start     int         `msgpack:"start"`
	End       int         `msgpack:"end"`
	Bank      string      `msgpack:"bank"`
	BIC       string      `msgpack:"bic,omitempty"`
	MinLength int         `msgpack:"min_length"`
	MaxLength int         `msgpack:"max_length"`
	Type      AccountType `msgpack:"type"`
	SubType   SubType     `msgpack:"sub_type"`
}

func (r Record) validate() error {
	if err := (Range{Start: r.Start, End: r.End}).validate(); err != nil {
		return err
	}
	if !r.Type.valid() || !r.SubType.valid() {
		return fmt.Errorf("%w: %d:%d", ErrInvalidKind, r.Type, r.SubType)
	}
	if r.MinLength < 1 || r.MinLength > r.MaxLength {
		return fmt.Errorf("catalog: invalid account length %d-%d", r.MinLength, r.MaxLength)
	}
	if NormalizeName(r.Bank) == "" {
		return fmt.Errorf("catalog: empty bank name")
	}
	return nil
}

type schemeKey struct {
	t  AccountType
	st SubType
}

// FromRecords groups records into banks and schemes. Banks are sorted by ID;
// schemes and ranges keep the order their first record appeared in.
func FromRecords(records []Record) (*Catalog, error) {
	if len(records) == 0 {
		return nil, ErrEmptyCatalog
	}

	type bankBuilder struct {
		bank    Bank
		schemes map[schemeKey]int
	}

	builders := make(map[string]*bankBuilder)
	var order []*bankBuilder

	for i, rec := range records {
		if err := rec.validate(); err != nil {
			return nil, fmt.Errorf("catalog: record %d: %w", i, err)
		}

		id := NormalizeName(rec.Bank)
		bb, ok := builders[id]
		if !ok {
			bb = &bankBuilder{
				bank:    NewBank(rec.Bank, rec.BIC),
				schemes: make(map[schemeKey]int),
			}
			builders[id] = bb
			order = append(order, bb)
		}
		if bb.bank.BIC == "" && rec.BIC != "" {
			bb.bank.BIC = rec.BIC
		}

		key := schemeKey{t: rec.Type, st: rec.SubType}
		rng := Range{Start: rec.Start, End: rec.End}
		idx, ok := bb.schemes[key]
		if !ok {
			bb.schemes[key] = len(bb.bank.Schemes)
			bb.bank.Schemes = append(bb.bank.Schemes, Scheme{
				Type:             rec.Type,
				SubType:          rec.SubType,
				AccountMinLength: rec.MinLength,
				AccountMaxLength: rec.MaxLength,
				Ranges:           []Range{rng},
			})
			continue
		}

		s := &bb.bank.Schemes[idx]
		if s.AccountMinLength != rec.MinLength || s.AccountMaxLength != rec.MaxLength {
			return nil, fmt.Errorf("catalog: record %d: %s %s: conflicting account length %d-%d, already %d-%d",
				i, id, s.Kind(), rec.MinLength, rec.MaxLength, s.AccountMinLength, s.AccountMaxLength)
		}
		s.Ranges = append(s.Ranges, rng)
	}

	banks := make([]Bank, 0, len(order))
	for _, bb := range order {
		banks = append(banks, bb.bank)
	}
	slices.SortStableFunc(banks, func(a, b Bank) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return New(banks...), nil
}

// Records flattens the catalog back into one record per range.
func (c *Catalog) Records() []Record {
	var out []Record
	for _, b := range c.banks {
		for _, s := range b.Schemes {
			for _, r := range s.Ranges {
				out = append(out, Record{
					Start:     r.Start,
					End:       r.End,
					Bank:      b.Name,
					BIC:       b.BIC,
					MinLength: s.AccountMinLength,
					MaxLength: s.AccountMaxLength,
					Type:      s.Type,
					SubType:   s.SubType,
				})
			}
		}
	}
	return out
}
