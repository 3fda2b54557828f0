// =============================================================================
// SAF-T Financial - XML Scribe
// =============================================================================
//
// The scribe serializes a constructed AuditFile back to SAF-T Financial XML.
// Element order inside every node is fixed by the schema's sequences, so the
// output is deterministic: the same document always produces the same bytes.
//
// PRECONDITION:
//   Only documents produced by the constructor may be written. A document
//   assembled by hand has not had its constraints checked and is rejected
//   with ErrNotConstructed before any output is produced.
//
// OMISSION:
//   Absent optional fields produce no element at all, never an empty one.
//   Together with the parser's identical convention this is what makes
//   parse(write(doc)) return the document unchanged.
//
// =============================================================================

package scribe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/dodoas/saft-go/pkg/saft/types"
)

// Namespace is the document namespace of the Norwegian SAF-T Financial
// schema. It is written on the root element of every file.
const Namespace = "urn:StandardAuditFile-Taxation-Financial:NO"

// ErrNotConstructed is returned when a document did not come out of the
// constructor and so may violate constraints its profile should enforce.
var ErrNotConstructed = errors.New("audit file was not built by the constructor")

// =============================================================================
// OPTIONS
// =============================================================================

// Options controls the surface form of the output. None of them change
// which elements are written or their order.
type Options struct {
	// Indent is the string used per nesting level. Empty disables
	// indentation entirely and produces a single line of markup after
	// the declaration.
	Indent string

	// IncludeXMLDeclaration determines whether the <?xml ...?> line is
	// written.
	IncludeXMLDeclaration bool

	// XMLVersion is the version in the declaration.
	XMLVersion string

	// Encoding is the encoding name in the declaration.
	Encoding string
}

// DefaultOptions returns the conventional output form: declared, UTF-8,
// two-space indentation.
func DefaultOptions() Options {
	return Options{
		Indent:                "  ",
		IncludeXMLDeclaration: true,
		XMLVersion:            "1.0",
		Encoding:              "UTF-8",
	}
}

// =============================================================================
// ENTRY POINTS
// =============================================================================

// Write serializes the document with DefaultOptions.
func Write(w io.Writer, doc *types.AuditFile) error {
	return WriteWithOptions(w, doc, DefaultOptions())
}

// WriteWithOptions serializes the document with custom output options.
func WriteWithOptions(w io.Writer, doc *types.AuditFile, options Options) error {
	if doc == nil || !doc.Constructed() {
		return ErrNotConstructed
	}

	var buffer bytes.Buffer
	if options.IncludeXMLDeclaration {
		fmt.Fprintf(&buffer, "<?xml version=%q encoding=%q?>\n",
			options.XMLVersion, options.Encoding)
	}

	root := buildDocument(doc)
	writeRoot(&buffer, root, options.Indent)

	_, err := w.Write(buffer.Bytes())
	return err
}

// =============================================================================
// ELEMENT TREE
// =============================================================================

// element is one node of the output tree. A node carries either text or
// children, never both.
type element struct {
	name     string
	value    string
	children []*element
}

func (e *element) text(name, value string) {
	e.children = append(e.children, &element{name: name, value: value})
}

func (e *element) textOpt(name string, value *string) {
	if value != nil {
		e.text(name, *value)
	}
}

func (e *element) child(name string) *element {
	c := &element{name: name}
	e.children = append(e.children, c)
	return c
}

func (e *element) decimal(name string, kind types.DecimalKind, value decimal.Decimal) {
	e.text(name, types.FormatDecimal(kind, value))
}

func (e *element) decimalOpt(name string, kind types.DecimalKind, value *decimal.Decimal) {
	if value != nil {
		e.decimal(name, kind, *value)
	}
}

func (e *element) date(name string, value types.Date) {
	e.text(name, value.String())
}

func (e *element) dateOpt(name string, value *types.Date) {
	if value != nil {
		e.date(name, *value)
	}
}

func (e *element) intVal(name string, value int) {
	e.text(name, strconv.Itoa(value))
}

func (e *element) intOpt(name string, value *int) {
	if value != nil {
		e.intVal(name, *value)
	}
}

func (e *element) boolOpt(name string, value *bool) {
	if value != nil {
		e.text(name, types.FormatBool(*value))
	}
}

// =============================================================================
// DOCUMENT BUILDING
// =============================================================================

func buildDocument(doc *types.AuditFile) *element {
	root := &element{name: "AuditFile"}
	buildHeader(root.child("Header"), &doc.Header)
	if doc.MasterFiles != nil {
		buildMasterFiles(root.child("MasterFiles"), doc.MasterFiles)
	}
	if doc.GeneralLedgerEntries != nil {
		buildGeneralLedgerEntries(root.child("GeneralLedgerEntries"), doc.GeneralLedgerEntries)
	}
	return root
}

func buildHeader(e *element, h *types.Header) {
	e.text("AuditFileVersion", h.AuditFileVersion)
	e.text("AuditFileCountry", h.AuditFileCountry)
	e.date("AuditFileDateCreated", h.AuditFileDateCreated)
	e.text("SoftwareCompanyName", h.SoftwareCompanyName)
	e.text("SoftwareID", h.SoftwareID)
	e.text("SoftwareVersion", h.SoftwareVersion)
	buildCompany(e.child("Company"), &h.Company)
	e.text("DefaultCurrencyCode", h.DefaultCurrencyCode)
	if h.SelectionCriteria != nil {
		buildSelectionCriteria(e.child("SelectionCriteria"), h.SelectionCriteria)
	}
	e.textOpt("HeaderComment", h.HeaderComment)
	e.text("TaxAccountingBasis", h.TaxAccountingBasis)
	e.textOpt("TaxEntity", h.TaxEntity)
	e.textOpt("UserID", h.UserID)
	if h.AuditFileSender != nil {
		buildCompany(e.child("AuditFileSender"), h.AuditFileSender)
	}
}

// buildCompany writes the shared company shape. Callers append their own
// trailing fields (customer and supplier IDs, balances) after it.
func buildCompany(e *element, c *types.Company) {
	e.textOpt("RegistrationNumber", c.RegistrationNumber)
	e.text("Name", c.Name)
	for i := range c.Addresses {
		buildAddress(e.child("Address"), &c.Addresses[i])
	}
	for i := range c.Contacts {
		buildContact(e.child("Contact"), &c.Contacts[i])
	}
	for i := range c.TaxRegistrations {
		buildTaxID(e.child("TaxRegistration"), &c.TaxRegistrations[i])
	}
	for i := range c.BankAccounts {
		buildBankAccount(e.child("BankAccount"), &c.BankAccounts[i])
	}
}

func buildAddress(e *element, a *types.Address) {
	e.textOpt("StreetName", a.StreetName)
	e.textOpt("Number", a.Number)
	e.textOpt("AdditionalAddressDetail", a.AdditionalAddressDetail)
	e.textOpt("Building", a.Building)
	e.textOpt("City", a.City)
	e.textOpt("PostalCode", a.PostalCode)
	e.textOpt("Region", a.Region)
	e.textOpt("Country", a.Country)
	e.textOpt("AddressType", a.AddressType)
}

func buildContact(e *element, c *types.Contact) {
	buildPersonName(e.child("ContactPerson"), &c.ContactPerson)
	e.textOpt("Telephone", c.Telephone)
	e.textOpt("Fax", c.Fax)
	e.textOpt("Email", c.Email)
	e.textOpt("Website", c.Website)
	e.textOpt("MobilePhone", c.MobilePhone)
}

func buildPersonName(e *element, p *types.PersonName) {
	e.textOpt("Title", p.Title)
	e.text("FirstName", p.FirstName)
	e.textOpt("Initials", p.Initials)
	e.textOpt("LastNamePrefix", p.LastNamePrefix)
	e.text("LastName", p.LastName)
	e.textOpt("BirthName", p.BirthName)
	e.textOpt("Salutation", p.Salutation)
	for _, t := range p.OtherTitles {
		e.text("OtherTitles", t)
	}
}

func buildTaxID(e *element, t *types.TaxID) {
	e.text("TaxRegistrationNumber", t.TaxRegistrationNumber)
	e.textOpt("TaxAuthority", t.TaxAuthority)
	e.dateOpt("TaxVerificationDate", t.TaxVerificationDate)
}

func buildBankAccount(e *element, b *types.BankAccount) {
	e.textOpt("IBANNumber", b.IBANNumber)
	e.textOpt("BankAccountNumber", b.BankAccountNumber)
	e.textOpt("BankAccountName", b.BankAccountName)
	e.textOpt("SortCode", b.SortCode)
	e.textOpt("BIC", b.BIC)
	e.textOpt("CurrencyCode", b.CurrencyCode)
	e.textOpt("GeneralLedgerAccountID", b.GeneralLedgerAccountID)
}

func buildSelectionCriteria(e *element, s *types.SelectionCriteria) {
	e.textOpt("TaxReportingJurisdiction", s.TaxReportingJurisdiction)
	e.textOpt("CompanyEntity", s.CompanyEntity)
	e.dateOpt("SelectionStartDate", s.SelectionStartDate)
	e.dateOpt("SelectionEndDate", s.SelectionEndDate)
	e.intOpt("PeriodStart", s.PeriodStart)
	e.intOpt("PeriodStartYear", s.PeriodStartYear)
	e.intOpt("PeriodEnd", s.PeriodEnd)
	e.intOpt("PeriodEndYear", s.PeriodEndYear)
	e.textOpt("DocumentType", s.DocumentType)
	for _, c := range s.OtherCriteria {
		e.text("OtherCriteria", c)
	}
}

func buildAmount(e *element, a *types.Amount) {
	e.decimal("Amount", types.DecimalMonetary, a.Amount)
	e.textOpt("CurrencyCode", a.CurrencyCode)
	e.decimalOpt("CurrencyAmount", types.DecimalMonetary, a.CurrencyAmount)
	e.decimalOpt("ExchangeRate", types.DecimalExchangeRate, a.ExchangeRate)
}

func buildAnalysis(e *element, a *types.Analysis) {
	e.text("AnalysisType", a.AnalysisType)
	e.text("AnalysisID", a.AnalysisID)
	if a.AnalysisAmount != nil {
		buildAmount(e.child("AnalysisAmount"), a.AnalysisAmount)
	}
}

func buildAnalysisPartyInfo(e *element, a *types.AnalysisPartyInfo) {
	e.text("AnalysisType", a.AnalysisType)
	e.text("AnalysisID", a.AnalysisID)
}

func buildTaxInformation(e *element, t *types.TaxInformation) {
	e.textOpt("TaxType", t.TaxType)
	e.textOpt("TaxCode", t.TaxCode)
	e.decimalOpt("TaxPercentage", types.DecimalFree, t.TaxPercentage)
	e.textOpt("Country", t.Country)
	e.decimalOpt("TaxBase", types.DecimalFree, t.TaxBase)
	e.textOpt("TaxBaseDescription", t.TaxBaseDescription)
	buildAmount(e.child("TaxAmount"), &t.TaxAmount)
	e.textOpt("TaxExemptionReason", t.TaxExemptionReason)
	e.textOpt("TaxDeclarationPeriod", t.TaxDeclarationPeriod)
}

func buildPaymentTerms(e *element, p *types.PaymentTerms) {
	e.intOpt("Days", p.Days)
	e.intOpt("Months", p.Months)
	e.intOpt("CashDiscountDays", p.CashDiscountDays)
	e.decimalOpt("CashDiscountRate", types.DecimalFree, p.CashDiscountRate)
	e.boolOpt("FreeBillingMonth", p.FreeBillingMonth)
}

func buildPartyInfo(e *element, p *types.PartyInfo) {
	if p.PaymentTerms != nil {
		buildPaymentTerms(e.child("PaymentTerms"), p.PaymentTerms)
	}
	e.textOpt("NaceCode", p.NaceCode)
	e.textOpt("CurrencyCode", p.CurrencyCode)
	e.textOpt("Type", p.Type)
	e.textOpt("Status", p.Status)
	for i := range p.Analyses {
		buildAnalysisPartyInfo(e.child("Analysis"), &p.Analyses[i])
	}
	e.textOpt("Notes", p.Notes)
}

func buildAccount(e *element, a *types.Account) {
	e.text("AccountID", a.AccountID)
	e.text("AccountDescription", a.AccountDescription)
	e.textOpt("StandardAccountID", a.StandardAccountID)
	e.textOpt("GroupingCategory", a.GroupingCategory)
	e.textOpt("GroupingCode", a.GroupingCode)
	e.text("AccountType", a.AccountType)
	e.dateOpt("AccountCreationDate", a.AccountCreationDate)
	e.decimalOpt("OpeningDebitBalance", types.DecimalMonetary, a.OpeningDebitBalance)
	e.decimalOpt("OpeningCreditBalance", types.DecimalMonetary, a.OpeningCreditBalance)
	e.decimalOpt("ClosingDebitBalance", types.DecimalMonetary, a.ClosingDebitBalance)
	e.decimalOpt("ClosingCreditBalance", types.DecimalMonetary, a.ClosingCreditBalance)
}

func buildCustomer(e *element, c *types.Customer) {
	buildCompany(e, &c.Company)
	e.text("CustomerID", c.CustomerID)
	e.textOpt("SelfBillingIndicator", c.SelfBillingIndicator)
	e.textOpt("AccountID", c.AccountID)
	e.decimalOpt("OpeningDebitBalance", types.DecimalMonetary, c.OpeningDebitBalance)
	e.decimalOpt("OpeningCreditBalance", types.DecimalMonetary, c.OpeningCreditBalance)
	e.decimalOpt("ClosingDebitBalance", types.DecimalMonetary, c.ClosingDebitBalance)
	e.decimalOpt("ClosingCreditBalance", types.DecimalMonetary, c.ClosingCreditBalance)
	if c.PartyInfo != nil {
		buildPartyInfo(e.child("PartyInfo"), c.PartyInfo)
	}
}

func buildSupplier(e *element, s *types.Supplier) {
	buildCompany(e, &s.Company)
	e.text("SupplierID", s.SupplierID)
	e.textOpt("SelfBillingIndicator", s.SelfBillingIndicator)
	e.textOpt("AccountID", s.AccountID)
	e.decimalOpt("OpeningDebitBalance", types.DecimalMonetary, s.OpeningDebitBalance)
	e.decimalOpt("OpeningCreditBalance", types.DecimalMonetary, s.OpeningCreditBalance)
	e.decimalOpt("ClosingDebitBalance", types.DecimalMonetary, s.ClosingDebitBalance)
	e.decimalOpt("ClosingCreditBalance", types.DecimalMonetary, s.ClosingCreditBalance)
	if s.PartyInfo != nil {
		buildPartyInfo(e.child("PartyInfo"), s.PartyInfo)
	}
}

func buildOwner(e *element, o *types.Owner) {
	buildCompany(e, &o.Company)
	e.textOpt("OwnerID", o.OwnerID)
	e.textOpt("AccountID", o.AccountID)
}

func buildTaxCodeDetails(e *element, d *types.TaxCodeDetails) {
	e.text("TaxCode", d.TaxCode)
	e.dateOpt("EffectiveDate", d.EffectiveDate)
	e.dateOpt("ExpirationDate", d.ExpirationDate)
	e.textOpt("Description", d.Description)
	e.decimalOpt("TaxPercentage", types.DecimalFree, d.TaxPercentage)
	e.text("Country", d.Country)
	e.text("StandardTaxCode", d.StandardTaxCode)
	e.boolOpt("Compensation", d.Compensation)
	for _, r := range d.BaseRates {
		e.decimal("BaseRate", types.DecimalFree, r)
	}
}

func buildTaxTableEntry(e *element, t *types.TaxTableEntry) {
	e.text("TaxType", t.TaxType)
	e.text("Description", t.Description)
	for i := range t.TaxCodeDetails {
		buildTaxCodeDetails(e.child("TaxCodeDetails"), &t.TaxCodeDetails[i])
	}
}

func buildAnalysisTypeTableEntry(e *element, a *types.AnalysisTypeTableEntry) {
	e.text("AnalysisType", a.AnalysisType)
	e.text("AnalysisTypeDescription", a.AnalysisTypeDescription)
	e.text("AnalysisID", a.AnalysisID)
	e.text("AnalysisIDDescription", a.AnalysisIDDescription)
	e.dateOpt("StartDate", a.StartDate)
	e.dateOpt("EndDate", a.EndDate)
	e.textOpt("Status", a.Status)
	for i := range a.Analyses {
		buildAnalysisPartyInfo(e.child("Analysis"), &a.Analyses[i])
	}
}

func buildMasterFiles(e *element, m *types.MasterFiles) {
	if m.GeneralLedgerAccounts != nil {
		wrap := e.child("GeneralLedgerAccounts")
		for i := range m.GeneralLedgerAccounts {
			buildAccount(wrap.child("Account"), &m.GeneralLedgerAccounts[i])
		}
	}
	if m.Customers != nil {
		wrap := e.child("Customers")
		for i := range m.Customers {
			buildCustomer(wrap.child("Customer"), &m.Customers[i])
		}
	}
	if m.Suppliers != nil {
		wrap := e.child("Suppliers")
		for i := range m.Suppliers {
			buildSupplier(wrap.child("Supplier"), &m.Suppliers[i])
		}
	}
	if m.TaxTable != nil {
		wrap := e.child("TaxTable")
		for i := range m.TaxTable {
			buildTaxTableEntry(wrap.child("TaxTableEntry"), &m.TaxTable[i])
		}
	}
	if m.AnalysisTypeTable != nil {
		wrap := e.child("AnalysisTypeTable")
		for i := range m.AnalysisTypeTable {
			buildAnalysisTypeTableEntry(wrap.child("AnalysisTypeTableEntry"), &m.AnalysisTypeTable[i])
		}
	}
	if m.Owners != nil {
		wrap := e.child("Owners")
		for i := range m.Owners {
			buildOwner(wrap.child("Owner"), &m.Owners[i])
		}
	}
}

func buildLine(e *element, l *types.Line) {
	e.text("RecordID", l.RecordID)
	e.text("AccountID", l.AccountID)
	for i := range l.Analyses {
		buildAnalysis(e.child("Analysis"), &l.Analyses[i])
	}
	e.dateOpt("ValueDate", l.ValueDate)
	e.textOpt("SourceDocumentID", l.SourceDocumentID)
	e.textOpt("CustomerID", l.CustomerID)
	e.textOpt("SupplierID", l.SupplierID)
	e.text("Description", l.Description)
	if l.DebitAmount != nil {
		buildAmount(e.child("DebitAmount"), l.DebitAmount)
	}
	if l.CreditAmount != nil {
		buildAmount(e.child("CreditAmount"), l.CreditAmount)
	}
	for i := range l.TaxInformation {
		buildTaxInformation(e.child("TaxInformation"), &l.TaxInformation[i])
	}
	e.textOpt("ReferenceNumber", l.ReferenceNumber)
	e.textOpt("CID", l.CID)
	e.dateOpt("DueDate", l.DueDate)
	e.decimalOpt("Quantity", types.DecimalQuantity, l.Quantity)
	e.textOpt("CrossReference", l.CrossReference)
	if l.SystemEntryTime != nil {
		e.text("SystemEntryTime", l.SystemEntryTime.String())
	}
	e.textOpt("OwnerID", l.OwnerID)
}

func buildTransaction(e *element, t *types.Transaction) {
	e.text("TransactionID", t.TransactionID)
	e.intVal("Period", t.Period)
	e.intVal("PeriodYear", t.PeriodYear)
	e.date("TransactionDate", t.TransactionDate)
	e.textOpt("SourceID", t.SourceID)
	e.textOpt("TransactionType", t.TransactionType)
	e.text("Description", t.Description)
	e.textOpt("BatchID", t.BatchID)
	e.date("SystemEntryDate", t.SystemEntryDate)
	e.date("GLPostingDate", t.GLPostingDate)
	e.textOpt("SystemID", t.SystemID)
	for i := range t.Lines {
		buildLine(e.child("Line"), &t.Lines[i])
	}
}

func buildJournal(e *element, j *types.Journal) {
	e.text("JournalID", j.JournalID)
	e.text("Description", j.Description)
	e.text("Type", j.Type)
	for i := range j.Transactions {
		buildTransaction(e.child("Transaction"), &j.Transactions[i])
	}
}

func buildGeneralLedgerEntries(e *element, g *types.GeneralLedgerEntries) {
	e.intVal("NumberOfEntries", g.NumberOfEntries)
	e.decimal("TotalDebit", types.DecimalMonetary, g.TotalDebit)
	e.decimal("TotalCredit", types.DecimalMonetary, g.TotalCredit)
	for i := range g.Journals {
		buildJournal(e.child("Journal"), &g.Journals[i])
	}
}

// =============================================================================
// SERIALIZATION
// =============================================================================

func writeRoot(buffer *bytes.Buffer, root *element, indent string) {
	fmt.Fprintf(buffer, "<%s xmlns=%q>", root.name, Namespace)
	if indent != "" {
		buffer.WriteString("\n")
	}
	for _, child := range root.children {
		writeElement(buffer, child, indent, 1)
	}
	fmt.Fprintf(buffer, "</%s>\n", root.name)
}

// writeElement writes one element and its subtree with indentation.
func writeElement(buffer *bytes.Buffer, e *element, indent string, level int) {
	if indent != "" {
		for i := 0; i < level; i++ {
			buffer.WriteString(indent)
		}
	}

	buffer.WriteString("<")
	buffer.WriteString(e.name)

	// Elements with neither text nor children self-close.
	if len(e.children) == 0 && e.value == "" {
		buffer.WriteString("/>")
		if indent != "" {
			buffer.WriteString("\n")
		}
		return
	}

	buffer.WriteString(">")

	if len(e.children) == 0 {
		buffer.WriteString(escapeXML(e.value))
	} else {
		if indent != "" {
			buffer.WriteString("\n")
		}
		for _, child := range e.children {
			writeElement(buffer, child, indent, level+1)
		}
		if indent != "" {
			for i := 0; i < level; i++ {
				buffer.WriteString(indent)
			}
		}
	}

	buffer.WriteString("</")
	buffer.WriteString(e.name)
	buffer.WriteString(">")
	if indent != "" {
		buffer.WriteString("\n")
	}
}

// escapeXML escapes the characters XML reserves in text content.
func escapeXML(s string) string {
	var buffer bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buffer.WriteString("&amp;")
		case '<':
			buffer.WriteString("&lt;")
		case '>':
			buffer.WriteString("&gt;")
		case '"':
			buffer.WriteString("&quot;")
		case '\'':
			buffer.WriteString("&apos;")
		default:
			buffer.WriteRune(r)
		}
	}
	return buffer.String()
}
