// =============================================================================
// SAF-T Financial - Spreadsheet Export
// =============================================================================
//
// Flattens a constructed AuditFile into an XLSX workbook for people who
// review audit files in a spreadsheet rather than in XML or the HTML
// report. One sheet per collection:
//
//   - Accounts:      the general ledger accounts with balances
//   - Customers:     customer master data
//   - Suppliers:     supplier master data
//   - Tax codes:     tax table entries flattened to one row per detail
//   - Journal lines: every transaction line with its journal and
//                    transaction context repeated on the row
//
// Absent collections produce an empty sheet with only the header row.
// Monetary values are written as native numbers so spreadsheet formulas
// work on them; the credit side of a balance pair is negated, matching the
// HTML report.
//
// =============================================================================

package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/dodoas/saft-go/pkg/saft/types"
)

// Workbook builds the XLSX workbook for a document. The caller owns the
// returned file and must Close it.
func Workbook(doc *types.AuditFile) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := writeAccounts(f, doc); err != nil {
		return nil, err
	}
	if err := writeCustomers(f, doc); err != nil {
		return nil, err
	}
	if err := writeSuppliers(f, doc); err != nil {
		return nil, err
	}
	if err := writeTaxCodes(f, doc); err != nil {
		return nil, err
	}
	if err := writeJournalLines(f, doc); err != nil {
		return nil, err
	}

	// excelize seeds new files with a default sheet; the accounts sheet
	// replaces it as the active one.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}
	index, err := f.GetSheetIndex("Accounts")
	if err != nil {
		f.Close()
		return nil, err
	}
	f.SetActiveSheet(index)

	return f, nil
}

// Write builds the workbook and streams it to w.
func Write(w io.Writer, doc *types.AuditFile) error {
	f, err := Workbook(doc)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// =============================================================================
// SHEET BUILDER
// =============================================================================

// sheet appends rows to one worksheet, tracking the current row number.
type sheet struct {
	f    *excelize.File
	name string
	row  int
	err  error
}

func newSheet(f *excelize.File, name string, header ...any) (*sheet, error) {
	if _, err := f.NewSheet(name); err != nil {
		return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
	}
	s := &sheet{f: f, name: name}
	s.append(header...)
	return s, s.err
}

// append writes one row. Cell values pass through cell, so pointers and
// decimals land as blanks and native numbers respectively.
func (s *sheet) append(values ...any) {
	if s.err != nil {
		return
	}
	s.row++
	for i, v := range values {
		ref, err := excelize.CoordinatesToCellName(i+1, s.row)
		if err != nil {
			s.err = err
			return
		}
		if err := s.f.SetCellValue(s.name, ref, cell(v)); err != nil {
			s.err = fmt.Errorf("failed to set %s!%s: %w", s.name, ref, err)
			return
		}
	}
}

// cell maps document values onto spreadsheet-native ones. Nil pointers
// become empty cells, decimals become float64, dates become their ISO
// string form.
func cell(v any) any {
	switch t := v.(type) {
	case nil:
		return ""
	case *string:
		if t == nil {
			return ""
		}
		return *t
	case *int:
		if t == nil {
			return ""
		}
		return *t
	case decimal.Decimal:
		return t.InexactFloat64()
	case *decimal.Decimal:
		if t == nil {
			return ""
		}
		return t.InexactFloat64()
	case types.Date:
		return t.String()
	case *types.Date:
		if t == nil {
			return ""
		}
		return t.String()
	case *types.Amount:
		if t == nil {
			return ""
		}
		return t.Amount.InexactFloat64()
	default:
		return v
	}
}

// balance folds a debit/credit pair into one signed cell value.
func balance(debit, credit *decimal.Decimal) any {
	switch {
	case debit != nil:
		return debit.InexactFloat64()
	case credit != nil:
		return credit.Neg().InexactFloat64()
	default:
		return ""
	}
}

// =============================================================================
// SHEETS
// =============================================================================

func writeAccounts(f *excelize.File, doc *types.AuditFile) error {
	s, err := newSheet(f, "Accounts",
		"Account ID", "Description", "Standard account", "Grouping category",
		"Grouping code", "Account type", "Opening balance", "Closing balance")
	if err != nil {
		return err
	}
	if doc.MasterFiles != nil {
		for i := range doc.MasterFiles.GeneralLedgerAccounts {
			a := &doc.MasterFiles.GeneralLedgerAccounts[i]
			s.append(a.AccountID, a.AccountDescription, a.StandardAccountID,
				a.GroupingCategory, a.GroupingCode, a.AccountType,
				balance(a.OpeningDebitBalance, a.OpeningCreditBalance),
				balance(a.ClosingDebitBalance, a.ClosingCreditBalance))
		}
	}
	return s.err
}

func writeCustomers(f *excelize.File, doc *types.AuditFile) error {
	s, err := newSheet(f, "Customers",
		"Customer ID", "Name", "Registration number", "Account ID",
		"Opening balance", "Closing balance")
	if err != nil {
		return err
	}
	if doc.MasterFiles != nil {
		for i := range doc.MasterFiles.Customers {
			c := &doc.MasterFiles.Customers[i]
			s.append(c.CustomerID, c.Name, c.RegistrationNumber, c.AccountID,
				balance(c.OpeningDebitBalance, c.OpeningCreditBalance),
				balance(c.ClosingDebitBalance, c.ClosingCreditBalance))
		}
	}
	return s.err
}

func writeSuppliers(f *excelize.File, doc *types.AuditFile) error {
	s, err := newSheet(f, "Suppliers",
		"Supplier ID", "Name", "Registration number", "Account ID",
		"Opening balance", "Closing balance")
	if err != nil {
		return err
	}
	if doc.MasterFiles != nil {
		for i := range doc.MasterFiles.Suppliers {
			sup := &doc.MasterFiles.Suppliers[i]
			s.append(sup.SupplierID, sup.Name, sup.RegistrationNumber, sup.AccountID,
				balance(sup.OpeningDebitBalance, sup.OpeningCreditBalance),
				balance(sup.ClosingDebitBalance, sup.ClosingCreditBalance))
		}
	}
	return s.err
}

func writeTaxCodes(f *excelize.File, doc *types.AuditFile) error {
	s, err := newSheet(f, "Tax codes",
		"Tax type", "Tax code", "Description", "Country", "Standard tax code",
		"Tax percentage", "Effective date", "Expiration date")
	if err != nil {
		return err
	}
	if doc.MasterFiles != nil {
		for i := range doc.MasterFiles.TaxTable {
			entry := &doc.MasterFiles.TaxTable[i]
			for j := range entry.TaxCodeDetails {
				d := &entry.TaxCodeDetails[j]
				s.append(entry.TaxType, d.TaxCode, d.Description, d.Country,
					d.StandardTaxCode, d.TaxPercentage, d.EffectiveDate, d.ExpirationDate)
			}
		}
	}
	return s.err
}

func writeJournalLines(f *excelize.File, doc *types.AuditFile) error {
	s, err := newSheet(f, "Journal lines",
		"Journal ID", "Transaction ID", "Transaction date", "Period",
		"Period year", "Record ID", "Account ID", "Description",
		"Debit amount", "Credit amount", "Customer ID", "Supplier ID")
	if err != nil {
		return err
	}
	if doc.GeneralLedgerEntries == nil {
		return s.err
	}
	for i := range doc.GeneralLedgerEntries.Journals {
		journal := &doc.GeneralLedgerEntries.Journals[i]
		for j := range journal.Transactions {
			tx := &journal.Transactions[j]
			for k := range tx.Lines {
				line := &tx.Lines[k]
				s.append(journal.JournalID, tx.TransactionID, tx.TransactionDate,
					tx.Period, tx.PeriodYear, line.RecordID, line.AccountID,
					line.Description, line.DebitAmount, line.CreditAmount,
					line.CustomerID, line.SupplierID)
			}
		}
	}
	return s.err
}
