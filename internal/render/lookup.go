// =============================================================================
// SAF-T Financial - Report Lookup Indices
// =============================================================================
//
// Intra-document indices built once per render call: accounts by id,
// customers by id, suppliers by id and analysis table entries by the
// (analysis id, analysis type) pair. A miss never fails a render; every
// lookup resolves to a "not found" annotation instead.
//
// =============================================================================

package render

import (
	"fmt"
	"strings"

	"github.com/dodoas/saft-go/pkg/saft/types"
)

type analysisKey struct {
	id  string
	typ string
}

// indices holds the per-render lookup tables. Built from the master files
// once, read-only afterwards, discarded with the render call.
type indices struct {
	accounts  map[string]*types.Account
	customers map[string]*types.Customer
	suppliers map[string]*types.Supplier
	analyses  map[analysisKey]*types.AnalysisTypeTableEntry
}

func buildIndices(doc *types.AuditFile) *indices {
	ix := &indices{
		accounts:  map[string]*types.Account{},
		customers: map[string]*types.Customer{},
		suppliers: map[string]*types.Supplier{},
		analyses:  map[analysisKey]*types.AnalysisTypeTableEntry{},
	}
	if doc.MasterFiles == nil {
		return ix
	}
	mf := doc.MasterFiles
	for i := range mf.GeneralLedgerAccounts {
		account := &mf.GeneralLedgerAccounts[i]
		ix.accounts[account.AccountID] = account
	}
	for i := range mf.Customers {
		customer := &mf.Customers[i]
		ix.customers[customer.CustomerID] = customer
	}
	for i := range mf.Suppliers {
		supplier := &mf.Suppliers[i]
		ix.suppliers[supplier.SupplierID] = supplier
	}
	for i := range mf.AnalysisTypeTable {
		entry := &mf.AnalysisTypeTable[i]
		ix.analyses[analysisKey{id: entry.AnalysisID, typ: entry.AnalysisType}] = entry
	}
	return ix
}

// =============================================================================
// ANNOTATIONS
// =============================================================================

// accountTitle is the hover text for an account reference. Dangling
// references resolve to an explicit message, never an error.
func (ix *indices) accountTitle(id string) string {
	account, ok := ix.accounts[id]
	if !ok {
		return "Could not find account"
	}
	return strings.Join([]string{
		fmt.Sprintf("%s %s", account.AccountID, account.AccountDescription),
		"Std account " + deref(account.StandardAccountID),
		"opening balance " + formatBalance(account.OpeningDebitBalance, account.OpeningCreditBalance),
		"closing balance " + formatBalance(account.ClosingDebitBalance, account.ClosingCreditBalance),
	}, "\n")
}

func (ix *indices) customerTitle(id string) string {
	customer, ok := ix.customers[id]
	if !ok {
		return "Could not find customer"
	}
	return strings.Join([]string{
		fmt.Sprintf("%s %s", customer.Name, deref(customer.RegistrationNumber)),
		"opening balance " + formatBalance(customer.OpeningDebitBalance, customer.OpeningCreditBalance),
		"closing balance " + formatBalance(customer.ClosingDebitBalance, customer.ClosingCreditBalance),
	}, "\n")
}

func (ix *indices) customerName(id string) string {
	customer, ok := ix.customers[id]
	if !ok {
		return "Not found in Customers block"
	}
	return customer.Name
}

func (ix *indices) supplierTitle(id string) string {
	supplier, ok := ix.suppliers[id]
	if !ok {
		return "Could not find supplier"
	}
	return strings.Join([]string{
		fmt.Sprintf("%s %s", supplier.Name, deref(supplier.RegistrationNumber)),
		"opening balance " + formatBalance(supplier.OpeningDebitBalance, supplier.OpeningCreditBalance),
		"closing balance " + formatBalance(supplier.ClosingDebitBalance, supplier.ClosingCreditBalance),
	}, "\n")
}

func (ix *indices) supplierName(id string) string {
	supplier, ok := ix.suppliers[id]
	if !ok {
		return "Not found in Suppliers block"
	}
	return supplier.Name
}

func (ix *indices) analysisTitle(id, typ string) string {
	entry, ok := ix.analyses[analysisKey{id: id, typ: typ}]
	if !ok {
		return "Could not find analysis"
	}
	return fmt.Sprintf("%s(%s)\n%s(%s)",
		entry.AnalysisType, entry.AnalysisTypeDescription,
		entry.AnalysisID, entry.AnalysisIDDescription)
}

// analysisAnchor returns the fragment id for an analysis table entry, and
// whether the entry exists so callers know to emit a link at all.
func (ix *indices) analysisAnchor(id, typ string) (string, bool) {
	if _, ok := ix.analyses[analysisKey{id: id, typ: typ}]; !ok {
		return "", false
	}
	return analysisHTMLID(id, typ), true
}

func analysisHTMLID(id, typ string) string {
	return fmt.Sprintf("analysis-%s-%s", typ, id)
}
