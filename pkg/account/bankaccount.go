package account

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/bft-labs/bankdomain/pkg/catalog"
)

// BankAccountNumber is a validated clearing and account number pair together
// with the bank and scheme it belongs to.
type BankAccountNumber struct {
	clearing ClearingNumber
	account  AccountNumber
	match    catalog.Match
}

// Parse reads free-form input. Everything except ASCII digits is ignored; the
// clearing number is the first five digits when the input starts with 8 and
// the first four otherwise.
func Parse(cat *catalog.Catalog, text string) (BankAccountNumber, error) {
	digits := stripNonDigits(text)
	if len(digits) < 5 {
		return BankAccountNumber{}, newError(ErrMalformedInput, text, "fewer than five digits", nil)
	}

	n := 4
	if digits[0] == '8' {
		n = 5
	}
	if len(digits) <= n {
		return BankAccountNumber{}, newError(ErrMalformedInput, text, "no account digits", nil)
	}

	c, err := ParseClearingNumber(digits[:n])
	if err != nil {
		return BankAccountNumber{}, err
	}
	a, err := ParseAccountNumber(digits[n:])
	if err != nil {
		return BankAccountNumber{}, err
	}
	return build(cat, c, a, text)
}

// ParseNumbers builds a bank account number from numeric parts.
func ParseNumbers(cat *catalog.Catalog, clearing int, account int64) (BankAccountNumber, error) {
	c, err := NewClearingNumber(clearing)
	if err != nil {
		return BankAccountNumber{}, err
	}
	a, err := NewAccountNumber(account)
	if err != nil {
		return BankAccountNumber{}, err
	}
	return build(cat, c, a, strconv.Itoa(clearing)+" "+strconv.FormatInt(account, 10))
}

// ParseInt64 reads a whole bank account number given as one integer.
func ParseInt64(cat *catalog.Catalog, n int64) (BankAccountNumber, error) {
	if n < 0 {
		return BankAccountNumber{}, newError(ErrMalformedInput, strconv.FormatInt(n, 10), "negative", nil)
	}
	return Parse(cat, strconv.FormatInt(n, 10))
}

// IsValid reports whether Parse would succeed.
func IsValid(cat *catalog.Catalog, text string) bool {
	_, err := Parse(cat, text)
	return err == nil
}

// Resolve looks up the bank and scheme for c.
func Resolve(cat *catalog.Catalog, c ClearingNumber) (catalog.Match, error) {
	if cat == nil {
		cat = catalog.Default()
	}
	m, ok := cat.Resolve(c.Main())
	if !ok {
		return catalog.Match{}, newError(ErrUnknownScheme, c.Pretty(), "", nil)
	}
	return m, nil
}

func build(cat *catalog.Catalog, c ClearingNumber, a AccountNumber, input string) (BankAccountNumber, error) {
	m, err := Resolve(cat, c)
	if err != nil {
		return BankAccountNumber{}, err
	}
	if err := verify(m.Scheme, c, a, input); err != nil {
		return BankAccountNumber{}, err
	}
	return BankAccountNumber{clearing: c, account: a, match: m}, nil
}

func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// ClearingNumber returns the clearing part.
func (b BankAccountNumber) ClearingNumber() ClearingNumber { return b.clearing }

// AccountNumber returns the account part as entered, without padding.
func (b BankAccountNumber) AccountNumber() AccountNumber { return b.account }

// Bank returns a copy of the bank the clearing number resolved to.
func (b BankAccountNumber) Bank() catalog.Bank { return b.match.Bank.Clone() }

// Scheme returns a copy of the scheme the account was validated against.
func (b BankAccountNumber) Scheme() catalog.Scheme { return b.match.Scheme.Clone() }

// BankName returns the participant name as listed in the catalog.
func (b BankAccountNumber) BankName() string {
	return b.match.Bank.Name
}

// BankID returns the normalized bank identifier, e.g. "NORDEA_PLUSGIROT".
func (b BankAccountNumber) BankID() string {
	return b.match.Bank.ID
}

// Kind returns the scheme in "type:subtype" notation.
func (b BankAccountNumber) Kind() string {
	return b.match.Scheme.Kind()
}

// IsZero reports whether b is the zero value.
func (b BankAccountNumber) IsZero() bool {
	return b.clearing.IsZero()
}

// String returns the default format.
func (b BankAccountNumber) String() string {
	return Format(b, StyleDefault)
}

type jsonBankAccountNumber struct {
	Clearing string `json:"clearing"`
	Account  string `json:"account"`
	Bank     string `json:"bank"`
	BankID   string `json:"bank_id"`
	BIC      string `json:"bic,omitempty"`
	Kind     string `json:"kind"`
	Default  string `json:"default"`
	Pretty   string `json:"pretty"`
}

func (b BankAccountNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonBankAccountNumber{
		Clearing: b.clearing.Pretty(),
		Account:  b.account.String(),
		Bank:     b.BankName(),
		BankID:   b.BankID(),
		BIC:      b.match.Bank.BIC,
		Kind:     b.Kind(),
		Default:  Format(b, StyleDefault),
		Pretty:   Format(b, StylePretty),
	})
}
