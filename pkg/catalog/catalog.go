package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// DefaultAccountLength is used for both length bounds when a source row
// leaves the account length column blank.
const DefaultAccountLength = 11

// ErrInvalidKind is returned when a type notation such as "1:2" cannot be parsed.
var ErrInvalidKind = errors.New("catalog: invalid scheme kind")

// ErrInvalidRange is returned when a clearing range is malformed.
var ErrInvalidRange = errors.New("catalog: invalid clearing range")

// AccountType is the primary account number family.
type AccountType uint8

const (
	// TypeOne accounts are checked together with the clearing number.
	TypeOne AccountType = 1
	// TypeTwo accounts are checked on the account digits alone.
	TypeTwo AccountType = 2
)

func (t AccountType) valid() bool {
	return t == TypeOne || t == TypeTwo
}

// SubType is the secondary classification within an AccountType. It selects
// the checksum input and algorithm.
type SubType uint8

const (
	// SubTypeOne is the first subtype, e.g. "1:1" or "2:1".
	SubTypeOne SubType = 1
	// SubTypeTwo is the second subtype, e.g. "1:2" or "2:2".
	SubTypeTwo SubType = 2
	// SubTypeThree only occurs with TypeTwo.
	SubTypeThree SubType = 3
	// SubTypeFour only occurs with TypeTwo.
	SubTypeFour SubType = 4
)

func (s SubType) valid() bool {
	return s >= SubTypeOne && s <= SubTypeFour
}

// ParseKind parses the "type:subtype" notation used by the reference table.
func ParseKind(s string) (AccountType, SubType, error) {
	left, right, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
	t, err := strconv.Atoi(strings.TrimSpace(left))
	if err != nil || !AccountType(t).valid() {
		return 0, 0, fmt.Errorf("%w: account type %q", ErrInvalidKind, left)
	}
	st, err := strconv.Atoi(strings.TrimSpace(right))
	if err != nil || !SubType(st).valid() {
		return 0, 0, fmt.Errorf("%w: subtype %q", ErrInvalidKind, right)
	}
	return AccountType(t), SubType(st), nil
}

// Range is a closed interval of four digit clearing numbers.
type Range struct {
	Start int
	End   int
}

// ParseRange parses "1100-1199".
func ParseRange(s string) (Range, error) {
	left, right, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(left))
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}
	end, err := strconv.Atoi(strings.TrimSpace(right))
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}
	r := Range{Start: start, End: end}
	if err := r.validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

func (r Range) validate() error {
	if r.Start < 1000 || r.End > 9999 || r.Start > r.End {
		return fmt.Errorf("%w: %d-%d", ErrInvalidRange, r.Start, r.End)
	}
	return nil
}

// Contains reports whether n lies within the range, bounds included.
func (r Range) Contains(n int) bool {
	return n >= r.Start && n <= r.End
}

func (r Range) String() string {
	return fmt.Sprintf("%04d-%04d", r.Start, r.End)
}

// Scheme is one account number scheme of a bank together with the clearing
// ranges it covers.
type Scheme struct {
	Type             AccountType
	SubType          SubType
	AccountMinLength int
	AccountMaxLength int
	Ranges           []Range
}

// Kind returns the "type:subtype" notation, e.g. "1:2".
func (s Scheme) Kind() string {
	return fmt.Sprintf("%d:%d", s.Type, s.SubType)
}

// Clone returns a copy that shares no memory with s.
func (s Scheme) Clone() Scheme {
	s.Ranges = slices.Clone(s.Ranges)
	return s
}

// Contains reports whether any of the scheme's ranges contains main.
func (s Scheme) Contains(main int) bool {
	for _, r := range s.Ranges {
		if r.Contains(main) {
			return true
		}
	}
	return false
}

// Bank is a clearing participant. ID is the normalized form of Name and is
// the key formatting rules are looked up by.
type Bank struct {
	ID      string
	Name    string
	BIC     string
	Schemes []Scheme
}

// Clone returns a copy that shares no memory with b.
func (b Bank) Clone() Bank {
	schemes := b.Schemes
	b.Schemes = nil
	if schemes != nil {
		b.Schemes = make([]Scheme, len(schemes))
		for i, s := range schemes {
			b.Schemes[i] = s.Clone()
		}
	}
	return b
}

// NewBank creates a bank whose ID is derived from name.
func NewBank(name, bic string, schemes ...Scheme) Bank {
	return Bank{
		ID:      NormalizeName(name),
		Name:    strings.TrimSpace(name),
		BIC:     strings.TrimSpace(bic),
		Schemes: schemes,
	}
}

// Match is the result of resolving a clearing number.
type Match struct {
	Bank   Bank
	Scheme Scheme
}

// Catalog is an ordered, read-only set of banks. Banks, schemes and ranges
// handed out by its methods are copies, so callers cannot change it.
type Catalog struct {
	banks []Bank
}

// New creates a catalog with banks in the given order. Resolution honours
// that order, so the earliest declared range wins on overlap.
func New(banks ...Bank) *Catalog {
	c := &Catalog{banks: make([]Bank, len(banks))}
	for i, b := range banks {
		c.banks[i] = b.Clone()
	}
	return c
}

// Banks returns the banks in catalog order.
func (c *Catalog) Banks() []Bank {
	out := make([]Bank, len(c.banks))
	for i, b := range c.banks {
		out[i] = b.Clone()
	}
	return out
}

// Len returns the number of banks.
func (c *Catalog) Len() int {
	return len(c.banks)
}

// Bank looks a bank up by its normalized ID.
func (c *Catalog) Bank(id string) (Bank, bool) {
	for _, b := range c.banks {
		if b.ID == id {
			return b.Clone(), true
		}
	}
	return Bank{}, false
}

// Resolve finds the bank and scheme whose range contains the four digit
// clearing number main.
func (c *Catalog) Resolve(main int) (Match, bool) {
	for _, b := range c.banks {
		for _, s := range b.Schemes {
			if s.Contains(main) {
				return Match{Bank: b.Clone(), Scheme: s.Clone()}, true
			}
		}
	}
	return Match{}, false
}

// Overlap describes two catalog ranges that share clearing numbers.
// First is the one Resolve prefers.
type Overlap struct {
	First       Placement
	Second      Placement
	Intersected Range
}

// Placement identifies a single range within the catalog.
type Placement struct {
	BankID string
	Kind   string
	Range  Range
}

func (o Overlap) String() string {
	return fmt.Sprintf("%s %s %s overlaps %s %s %s on %s",
		o.First.BankID, o.First.Kind, o.First.Range,
		o.Second.BankID, o.Second.Kind, o.Second.Range,
		o.Intersected)
}

// Overlaps lists every pair of ranges that intersect, in resolution order.
func (c *Catalog) Overlaps() []Overlap {
	var placements []Placement
	for _, b := range c.banks {
		for _, s := range b.Schemes {
			for _, r := range s.Ranges {
				placements = append(placements, Placement{BankID: b.ID, Kind: s.Kind(), Range: r})
			}
		}
	}

	var out []Overlap
	for i := 0; i < len(placements); i++ {
		for j := i + 1; j < len(placements); j++ {
			a, b := placements[i].Range, placements[j].Range
			lo, hi := max(a.Start, b.Start), min(a.End, b.End)
			if lo > hi {
				continue
			}
			out = append(out, Overlap{
				First:       placements[i],
				Second:      placements[j],
				Intersected: Range{Start: lo, End: hi},
			})
		}
	}
	return out
}
