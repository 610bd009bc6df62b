package account_test

import (
	"errors"
	"fmt"

	"github.com/bft-labs/bankdomain/pkg/account"
)

func ExampleParse() {
	b, err := account.Parse(nil, "8129-9,043 386 711-6")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(b.BankName())
	fmt.Println(account.Format(b, account.StylePretty))
	fmt.Println(account.Format(b, account.StyleDefault))
	// Output:
	// Swedbank
	// 8129-9,043 386 711-6
	// 8129900433867116
}

func ExampleParse_checksum() {
	_, err := account.Parse(nil, "5000 1234561")
	fmt.Println(errors.Is(err, account.ErrChecksum))
	// Output: true
}
