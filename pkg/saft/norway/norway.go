// =============================================================================
// SAF-T Financial - Norwegian Reference Data
// =============================================================================
//
// This package carries the static Norwegian reference tables used to
// annotate rendered reports: the standard VAT tax codes and the standard
// chart of accounts (2-digit and 4-digit granularity), plus the income
// statement grouping categories.
//
// The tables are semicolon-delimited CSV files embedded in the binary.
// They are parsed once, on first use, behind sync.Once; afterwards every
// accessor is a read-only map or slice lookup and safe for concurrent use.
//
// Lookup functions come in pairs: the plain form reports presence with a
// boolean, the Must form panics on a missing key for callers that treat a
// miss as a programming error.
//
// =============================================================================

package norway

import (
	"embed"
	"encoding/csv"
	"fmt"
	"sync"
)

//go:embed data/*.csv
var dataFS embed.FS

// =============================================================================
// ENTRY TYPES
// =============================================================================

// VatTaxCode is one row of the standard VAT tax code table.
type VatTaxCode struct {
	// Code is the standard tax code ("1", "21", ...).
	Code string

	// DescriptionNO is the Norwegian description.
	DescriptionNO string

	// DescriptionEN is the English description.
	DescriptionEN string

	// TaxRate is the named rate band ("Regular rate", "Zero rate", ...).
	// Empty for codes outside the scope of VAT.
	TaxRate string

	// Compensation reports whether the code participates in the VAT
	// compensation scheme. Nil for codes where the table leaves it open.
	Compensation *bool
}

// StandardAccount is one row of the standard chart of accounts.
type StandardAccount struct {
	Number        string
	DescriptionNO string
	DescriptionEN string
}

// AccountGrouping is one row of the income statement grouping table.
type AccountGrouping struct {
	Category              string
	CategoryDescriptionNO string
	CategoryDescriptionEN string
	Code                  string
	CodeDescriptionNO     string
	CodeDescriptionEN     string
}

// =============================================================================
// REGISTRY
// =============================================================================

type registry struct {
	vatCodes        []VatTaxCode
	vatByCode       map[string]VatTaxCode
	accounts2Digit  []StandardAccount
	accounts4Digit  []StandardAccount
	accountByNumber map[string]StandardAccount
	groupings       []AccountGrouping
	groupingByCode  map[string]AccountGrouping
}

var (
	loadOnce sync.Once
	loaded   *registry
)

func tables() *registry {
	loadOnce.Do(func() {
		r := &registry{}
		r.loadVatCodes()
		r.loadAccounts()
		r.loadGroupings()
		loaded = r
	})
	return loaded
}

func readTable(name string) ([][]string, error) {
	f, err := dataFS.Open("data/" + name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = ';'
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reference table %s: %w", name, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("reference table %s: empty", name)
	}
	// Drop the header row.
	return rows[1:], nil
}

// mustReadTable wraps readTable for the embedded tables, where a read
// failure means the build itself is broken.
func mustReadTable(name string) [][]string {
	rows, err := readTable(name)
	if err != nil {
		panic(err)
	}
	return rows
}

func (r *registry) loadVatCodes() {
	for _, row := range mustReadTable("standard_tax_codes.csv") {
		code := VatTaxCode{
			Code:          row[0],
			DescriptionNO: row[1],
			DescriptionEN: row[2],
			TaxRate:       row[3],
		}
		switch row[4] {
		case "true":
			t := true
			code.Compensation = &t
		case "false":
			f := false
			code.Compensation = &f
		}
		r.vatCodes = append(r.vatCodes, code)
	}

	r.vatByCode = make(map[string]VatTaxCode, len(r.vatCodes))
	for _, code := range r.vatCodes {
		r.vatByCode[code.Code] = code
	}
}

func parseAccounts(name string) []StandardAccount {
	var accounts []StandardAccount
	for _, row := range mustReadTable(name) {
		accounts = append(accounts, StandardAccount{
			Number:        row[0],
			DescriptionNO: row[1],
			DescriptionEN: row[2],
		})
	}
	return accounts
}

func (r *registry) loadAccounts() {
	r.accounts2Digit = parseAccounts("general_ledger_standard_accounts_2_character.csv")
	r.accounts4Digit = parseAccounts("general_ledger_standard_accounts_4_character.csv")

	r.accountByNumber = make(map[string]StandardAccount, len(r.accounts2Digit)+len(r.accounts4Digit))
	for _, account := range r.accounts2Digit {
		r.accountByNumber[account.Number] = account
	}
	for _, account := range r.accounts4Digit {
		r.accountByNumber[account.Number] = account
	}
}

func (r *registry) loadGroupings() {
	for _, row := range mustReadTable("general_ledger_grouping_categories.csv") {
		r.groupings = append(r.groupings, AccountGrouping{
			Category:              row[0],
			CategoryDescriptionNO: row[1],
			CategoryDescriptionEN: row[2],
			Code:                  row[3],
			CodeDescriptionNO:     row[4],
			CodeDescriptionEN:     row[5],
		})
	}

	r.groupingByCode = make(map[string]AccountGrouping, len(r.groupings))
	for _, grouping := range r.groupings {
		r.groupingByCode[grouping.Code] = grouping
	}
}

// =============================================================================
// LOOKUPS
// =============================================================================

// VatCodes returns every standard VAT tax code in table order.
func VatCodes() []VatTaxCode {
	return tables().vatCodes
}

// VatCode looks up a standard VAT tax code.
func VatCode(code string) (VatTaxCode, bool) {
	entry, ok := tables().vatByCode[code]
	return entry, ok
}

// MustVatCode looks up a standard VAT tax code and panics when absent.
func MustVatCode(code string) VatTaxCode {
	entry, ok := VatCode(code)
	if !ok {
		panic(fmt.Sprintf("norway: unknown vat code %q", code))
	}
	return entry
}

// StandardAccounts2Digit returns the 2-digit standard chart of accounts.
func StandardAccounts2Digit() []StandardAccount {
	return tables().accounts2Digit
}

// StandardAccounts4Digit returns the 4-digit standard chart of accounts.
func StandardAccounts4Digit() []StandardAccount {
	return tables().accounts4Digit
}

// StdAccount looks up a standard account by number, matching both the
// 2-digit and 4-digit tables.
func StdAccount(number string) (StandardAccount, bool) {
	entry, ok := tables().accountByNumber[number]
	return entry, ok
}

// MustStdAccount looks up a standard account and panics when absent.
func MustStdAccount(number string) StandardAccount {
	entry, ok := StdAccount(number)
	if !ok {
		panic(fmt.Sprintf("norway: unknown standard account %q", number))
	}
	return entry
}

// GroupingCategories returns every grouping table row in table order.
func GroupingCategories() []AccountGrouping {
	return tables().groupings
}

// GroupingCategory looks up a grouping table row by grouping code.
func GroupingCategory(code string) (AccountGrouping, bool) {
	entry, ok := tables().groupingByCode[code]
	return entry, ok
}

// MustGroupingCategory looks up a grouping table row and panics when absent.
func MustGroupingCategory(code string) AccountGrouping {
	entry, ok := GroupingCategory(code)
	if !ok {
		panic(fmt.Sprintf("norway: unknown grouping code %q", code))
	}
	return entry
}
