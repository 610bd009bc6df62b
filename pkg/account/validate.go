package account

import (
	"errors"

	"github.com/bft-labs/bankdomain/pkg/catalog"
	"github.com/bft-labs/bankdomain/pkg/checksum"
)

type schemeKind struct {
	t  catalog.AccountType
	st catalog.SubType
}

// rule builds the checksum input for a scheme and checks it.
type rule struct {
	input func(c ClearingNumber, a AccountNumber) string
	check func(digits string) (bool, error)
}

func mod10(digits string) (bool, error) {
	return checksum.Mod10(digits), nil
}

func accountOnly(width int) func(ClearingNumber, AccountNumber) string {
	return func(_ ClearingNumber, a AccountNumber) string {
		return a.Padded(width)
	}
}

// rules is the complete dispatch table. Schemes missing from it are
// accepted without a checksum.
var rules = map[schemeKind]rule{
	{catalog.TypeOne, catalog.SubTypeOne}: {
		// Last three clearing digits and the account number.
		input: func(c ClearingNumber, a AccountNumber) string {
			return c.Pretty()[1:] + a.Padded(7)
		},
		check: checksum.Mod11,
	},
	{catalog.TypeOne, catalog.SubTypeTwo}: {
		input: func(c ClearingNumber, a AccountNumber) string {
			return c.String() + a.Padded(7)
		},
		check: checksum.Mod11,
	},
	{catalog.TypeTwo, catalog.SubTypeOne}:   {input: accountOnly(10), check: mod10},
	{catalog.TypeTwo, catalog.SubTypeTwo}:   {input: accountOnly(9), check: checksum.Mod11},
	{catalog.TypeTwo, catalog.SubTypeThree}: {input: accountOnly(10), check: mod10},
	{catalog.TypeTwo, catalog.SubTypeFour}:  {input: accountOnly(10), check: checksum.Mod11},
}

// verify runs the scheme's checksum over clearing and account.
func verify(scheme catalog.Scheme, c ClearingNumber, a AccountNumber, input string) error {
	r, ok := rules[schemeKind{scheme.Type, scheme.SubType}]
	if !ok {
		return nil
	}

	ok, err := r.check(r.input(c, a))
	if errors.Is(err, checksum.ErrContractViolation) {
		return newError(ErrContractViolation, input, "scheme "+scheme.Kind(), err)
	}
	if err != nil {
		return newError(ErrChecksum, input, "scheme "+scheme.Kind(), err)
	}
	if !ok {
		return newError(ErrChecksum, input, "scheme "+scheme.Kind(), nil)
	}
	return nil
}
