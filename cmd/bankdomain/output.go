package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/bft-labs/bankdomain/pkg/account"
	"github.com/bft-labs/bankdomain/pkg/catalog"
)

var (
	validColor   = color.New(color.FgGreen, color.Bold)
	invalidColor = color.New(color.FgRed, color.Bold)
	detailColor  = color.New(color.FgHiBlack)
)

// printer writes command results either as aligned text or as JSON lines.
type printer struct {
	w    io.Writer
	json bool
	enc  *json.Encoder
}

func newPrinter(w io.Writer, asJSON bool) *printer {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &printer{w: w, json: asJSON, enc: enc}
}

type resultLine struct {
	Input     string                     `json:"input"`
	Valid     bool                       `json:"valid"`
	Account   *account.BankAccountNumber `json:"account,omitempty"`
	Formatted string                     `json:"formatted,omitempty"`
	Error     string                     `json:"error,omitempty"`
	ErrorKind string                     `json:"error_kind,omitempty"`
}

func newResultLine(input string, b account.BankAccountNumber, err error) resultLine {
	line := resultLine{Input: input, Valid: err == nil}
	if err != nil {
		line.Error = err.Error()
		line.ErrorKind = account.KindOf(err)
		return line
	}
	line.Account = &b
	return line
}

// result prints the outcome of parsing input.
func (p *printer) result(input string, b account.BankAccountNumber, err error, style account.Style) error {
	if p.json {
		return p.enc.Encode(newResultLine(input, b, err))
	}
	if err != nil {
		_, werr := fmt.Fprintf(p.w, "%s %s  %s\n",
			invalidColor.Sprintf("%-7s", "invalid"), input, detailColor.Sprint(err))
		return werr
	}
	_, werr := fmt.Fprintf(p.w, "%s %s  %s\n",
		validColor.Sprintf("%-7s", "valid"), account.Format(b, style),
		detailColor.Sprintf("%s %s", b.BankName(), b.Kind()))
	return werr
}

// formatted prints only the rendered account, one per line.
func (p *printer) formatted(input string, b account.BankAccountNumber, s string) error {
	if p.json {
		line := newResultLine(input, b, nil)
		line.Formatted = s
		return p.enc.Encode(line)
	}
	_, err := fmt.Fprintln(p.w, s)
	return err
}

type matchLine struct {
	Input         string `json:"input"`
	Found         bool   `json:"found"`
	Bank          string `json:"bank,omitempty"`
	BankID        string `json:"bank_id,omitempty"`
	BIC           string `json:"bic,omitempty"`
	Kind          string `json:"kind,omitempty"`
	AccountLength string `json:"account_length,omitempty"`
	Error         string `json:"error,omitempty"`
}

// match prints the bank and scheme a clearing number resolves to.
func (p *printer) match(input string, m catalog.Match, err error) error {
	if p.json {
		line := matchLine{Input: input, Found: err == nil}
		if err != nil {
			line.Error = err.Error()
		} else {
			line.Bank = m.Bank.Name
			line.BankID = m.Bank.ID
			line.BIC = m.Bank.BIC
			line.Kind = m.Scheme.Kind()
			line.AccountLength = accountLength(m.Scheme)
		}
		return p.enc.Encode(line)
	}
	if err != nil {
		_, werr := fmt.Fprintf(p.w, "%s %s  %s\n",
			invalidColor.Sprintf("%-7s", "unknown"), input, detailColor.Sprint(err))
		return werr
	}
	_, werr := fmt.Fprintf(p.w, "%s %s  %s (%s) %s  %s\n",
		validColor.Sprintf("%-7s", "found"), input, m.Bank.Name, m.Bank.ID, m.Scheme.Kind(),
		detailColor.Sprintf("account length %s", accountLength(m.Scheme)))
	return werr
}

type schemeLine struct {
	Kind          string   `json:"kind"`
	AccountLength string   `json:"account_length"`
	Ranges        []string `json:"ranges"`
}

type bankLine struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	BIC     string       `json:"bic,omitempty"`
	Schemes []schemeLine `json:"schemes"`
}

// banks prints the catalog, one bank per entry.
func (p *printer) banks(banks []catalog.Bank) error {
	for _, b := range banks {
		line := bankLine{ID: b.ID, Name: b.Name, BIC: b.BIC}
		for _, s := range b.Schemes {
			sl := schemeLine{Kind: s.Kind(), AccountLength: accountLength(s)}
			for _, r := range s.Ranges {
				sl.Ranges = append(sl.Ranges, r.String())
			}
			line.Schemes = append(line.Schemes, sl)
		}

		if p.json {
			if err := p.enc.Encode(line); err != nil {
				return err
			}
			continue
		}

		header := line.Name
		if line.BIC != "" {
			header += " " + detailColor.Sprint(line.BIC)
		}
		if _, err := fmt.Fprintf(p.w, "%s  %s\n", validColor.Sprint(line.ID), header); err != nil {
			return err
		}
		for _, sl := range line.Schemes {
			if _, err := fmt.Fprintf(p.w, "    %s  %-5s  %s\n",
				sl.Kind, sl.AccountLength, strings.Join(sl.Ranges, " ")); err != nil {
				return err
			}
		}
	}
	return nil
}

type overlapLine struct {
	First       string `json:"first"`
	Second      string `json:"second"`
	Intersected string `json:"intersected"`
}

// overlaps prints the lint result of a catalog.
func (p *printer) overlaps(overlaps []catalog.Overlap) error {
	if !p.json && len(overlaps) == 0 {
		_, err := fmt.Fprintln(p.w, validColor.Sprint("no overlapping ranges"))
		return err
	}
	for _, o := range overlaps {
		if p.json {
			err := p.enc.Encode(overlapLine{
				First:       placement(o.First),
				Second:      placement(o.Second),
				Intersected: o.Intersected.String(),
			})
			if err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(p.w, "%s %s\n", invalidColor.Sprint("overlap"), o); err != nil {
			return err
		}
	}
	return nil
}

func placement(pl catalog.Placement) string {
	return pl.BankID + " " + pl.Kind + " " + pl.Range.String()
}

func accountLength(s catalog.Scheme) string {
	if s.AccountMinLength == s.AccountMaxLength {
		return fmt.Sprint(s.AccountMinLength)
	}
	return fmt.Sprintf("%d-%d", s.AccountMinLength, s.AccountMaxLength)
}
