// =============================================================================
// SAF-T Financial - Schema Type Model
// =============================================================================
//
// This package contains the typed intermediate representation of a SAF-T
// Financial audit file: one Go struct per schema node type, a single graph
// shared by all three strictness profiles (see constraints.go). It lives in
// its own package because the parser, writer, renderer and exporter all
// depend on it; keeping it separate avoids import cycles.
//
// CONVENTIONS:
//   - Optional scalar fields are pointers; optional sequences are nil
//     slices; optional sub-structures are pointers. Absent is always nil.
//     The writer omits nil fields entirely, which is what makes
//     parse(write(doc)) == doc hold.
//   - Field order within each struct matches the schema's declared element
//     order; the writer emits fields in struct order.
//   - Node types the governing schema marks "Not in use." (Taxonomies,
//     UOMTable, MovementTypeTable, Products, PhysicalStock, Assets,
//     SourceDocuments and a few scalar fields) are deliberately absent.
//     They are skipped on parse and never written.
//
// A valid *AuditFile is only obtainable through Construct, which stamps the
// document with the profile it satisfied; the writer refuses anything else.
//
// =============================================================================

package types

import (
	"github.com/shopspring/decimal"
)

// Raw is the untyped nested mapping produced by the parser: leaves are
// strings, nested nodes are Raw, repeated nodes are []any of string or Raw.
// Absent optional fields are omitted, never set to a nil placeholder.
type Raw = map[string]any

// =============================================================================
// SUPPORTING LEAF STRUCTURES
// =============================================================================

// Amount is a monetary amount with optional foreign-currency details.
type Amount struct {
	Amount         decimal.Decimal
	CurrencyCode   *string
	CurrencyAmount *decimal.Decimal
	ExchangeRate   *decimal.Decimal
}

// Analysis links a transaction line to an analysis-type table entry,
// optionally with the amount attributable to that analysis axis.
type Analysis struct {
	AnalysisType   string
	AnalysisID     string
	AnalysisAmount *Amount
}

// AnalysisPartyInfo is the amount-less analysis reference used on parties
// and analysis-type table entries.
type AnalysisPartyInfo struct {
	AnalysisType string
	AnalysisID   string
}

// TaxInformation carries the tax breakdown of a transaction line.
type TaxInformation struct {
	TaxType              *string
	TaxCode              *string
	TaxPercentage        *decimal.Decimal
	Country              *string
	TaxBase              *decimal.Decimal
	TaxBaseDescription   *string
	TaxAmount            Amount
	TaxExemptionReason   *string
	TaxDeclarationPeriod *string
}

// TaxID identifies a party's registration with a tax authority.
type TaxID struct {
	TaxRegistrationNumber string
	TaxAuthority          *string
	TaxVerificationDate   *Date
}

// SelectionCriteria documents which slice of the accounting data the audit
// file covers.
type SelectionCriteria struct {
	TaxReportingJurisdiction *string
	CompanyEntity            *string
	SelectionStartDate       *Date
	SelectionEndDate         *Date
	PeriodStart              *int
	PeriodStartYear          *int
	PeriodEnd                *int
	PeriodEndYear            *int
	DocumentType             *string
	OtherCriteria            []string
}

// PersonName is a structured person name.
type PersonName struct {
	Title          *string
	FirstName      string
	Initials       *string
	LastNamePrefix *string
	LastName       string
	BirthName      *string
	Salutation     *string
	OtherTitles    []string
}

// PaymentTerms describes a party's payment conditions.
type PaymentTerms struct {
	Days             *int
	Months           *int
	CashDiscountDays *int
	CashDiscountRate *decimal.Decimal
	FreeBillingMonth *bool
}

// PartyInfo holds supplementary customer/supplier attributes.
type PartyInfo struct {
	PaymentTerms *PaymentTerms
	NaceCode     *string
	CurrencyCode *string
	Type         *string
	Status       *string
	Analyses     []AnalysisPartyInfo
	Notes        *string
}

// Address is a postal address; every field is optional.
type Address struct {
	StreetName              *string
	Number                  *string
	AdditionalAddressDetail *string
	Building                *string
	City                    *string
	PostalCode              *string
	Region                  *string
	Country                 *string
	AddressType             *string
}

// Contact is a named contact with communication details.
type Contact struct {
	ContactPerson PersonName
	Telephone     *string
	Fax           *string
	Email         *string
	Website       *string
	MobilePhone   *string
}

// BankAccount identifies a bank account by IBAN or domestic number.
type BankAccount struct {
	IBANNumber             *string
	BankAccountNumber      *string
	BankAccountName        *string
	SortCode               *string
	BIC                    *string
	CurrencyCode           *string
	GeneralLedgerAccountID *string
}

// =============================================================================
// COMPANY
// =============================================================================

// Company is the shared company shape used by the header company, the audit
// file sender, and (embedded) customers, suppliers and owners. The header
// company additionally requires RegistrationNumber and Contacts; that
// narrowing is applied by the constructor per context rather than by a
// separate type, so there is exactly one company shape in the graph.
type Company struct {
	RegistrationNumber *string
	Name               string
	Addresses          []Address
	Contacts           []Contact
	TaxRegistrations   []TaxID
	BankAccounts       []BankAccount
}

// =============================================================================
// HEADER
// =============================================================================

// Header carries file, software and company metadata.
type Header struct {
	AuditFileVersion     string
	AuditFileCountry     string
	AuditFileDateCreated Date
	SoftwareCompanyName  string
	SoftwareID           string
	SoftwareVersion      string
	Company              Company
	DefaultCurrencyCode  string
	SelectionCriteria    *SelectionCriteria
	HeaderComment        *string
	TaxAccountingBasis   string
	TaxEntity            *string
	UserID               *string
	AuditFileSender      *Company
}

// =============================================================================
// MASTER FILES
// =============================================================================

// Account is a general ledger account. The schema requires at least one of
// the opening balances and at least one of the closing balances; that
// choice is enforced by schema validation, not construction.
type Account struct {
	AccountID             string
	AccountDescription    string
	StandardAccountID     *string
	GroupingCategory      *string
	GroupingCode          *string
	AccountType           string
	AccountCreationDate   *Date
	OpeningDebitBalance   *decimal.Decimal
	OpeningCreditBalance  *decimal.Decimal
	ClosingDebitBalance   *decimal.Decimal
	ClosingCreditBalance  *decimal.Decimal
}

// Customer is a company with customer identity and balances.
type Customer struct {
	Company
	CustomerID           string
	SelfBillingIndicator *string
	AccountID            *string
	OpeningDebitBalance  *decimal.Decimal
	OpeningCreditBalance *decimal.Decimal
	ClosingDebitBalance  *decimal.Decimal
	ClosingCreditBalance *decimal.Decimal
	PartyInfo            *PartyInfo
}

// Supplier is a company with supplier identity and balances.
type Supplier struct {
	Company
	SupplierID           string
	SelfBillingIndicator *string
	AccountID            *string
	OpeningDebitBalance  *decimal.Decimal
	OpeningCreditBalance *decimal.Decimal
	ClosingDebitBalance  *decimal.Decimal
	ClosingCreditBalance *decimal.Decimal
	PartyInfo            *PartyInfo
}

// Owner is a company acting as an owner of the reporting entity.
type Owner struct {
	Company
	OwnerID   *string
	AccountID *string
}

// TaxCodeDetails is one concrete tax code within a tax table entry.
type TaxCodeDetails struct {
	TaxCode         string
	EffectiveDate   *Date
	ExpirationDate  *Date
	Description     *string
	TaxPercentage   *decimal.Decimal
	Country         string
	StandardTaxCode string
	Compensation    *bool
	BaseRates       []decimal.Decimal
}

// TaxTableEntry groups tax codes of one tax type.
type TaxTableEntry struct {
	TaxType        string
	Description    string
	TaxCodeDetails []TaxCodeDetails
}

// AnalysisTypeTableEntry declares an analysis axis and one of its values.
type AnalysisTypeTableEntry struct {
	AnalysisType            string
	AnalysisTypeDescription string
	AnalysisID              string
	AnalysisIDDescription   string
	StartDate               *Date
	EndDate                 *Date
	Status                  *string
	Analyses                []AnalysisPartyInfo
}

// MasterFiles holds the reference sub-collections of the audit file.
type MasterFiles struct {
	GeneralLedgerAccounts []Account
	Customers             []Customer
	Suppliers             []Supplier
	TaxTable              []TaxTableEntry
	AnalysisTypeTable     []AnalysisTypeTableEntry
	Owners                []Owner
}

// =============================================================================
// GENERAL LEDGER ENTRIES
// =============================================================================

// Line is one posting within a transaction. AccountID, CustomerID,
// SupplierID and the analysis references are joined against the master
// files when rendering; dangling references are legal.
type Line struct {
	RecordID         string
	AccountID        string
	Analyses         []Analysis
	ValueDate        *Date
	SourceDocumentID *string
	CustomerID       *string
	SupplierID       *string
	Description      string
	DebitAmount      *Amount
	CreditAmount     *Amount
	TaxInformation   []TaxInformation
	ReferenceNumber  *string
	CID              *string
	DueDate          *Date
	Quantity         *decimal.Decimal
	CrossReference   *string
	SystemEntryTime  *DateTime
	OwnerID          *string
}

// Transaction is a journal transaction with at least one line.
type Transaction struct {
	TransactionID   string
	Period          int
	PeriodYear      int
	TransactionDate Date
	SourceID        *string
	TransactionType *string
	Description     string
	BatchID         *string
	SystemEntryDate Date
	GLPostingDate   Date
	SystemID        *string
	Lines           []Line
}

// Journal is a named series of transactions.
type Journal struct {
	JournalID    string
	Description  string
	Type         string
	Transactions []Transaction
}

// GeneralLedgerEntries holds the journals plus control totals.
type GeneralLedgerEntries struct {
	NumberOfEntries int
	TotalDebit      decimal.Decimal
	TotalCredit     decimal.Decimal
	Journals        []Journal
}

// =============================================================================
// AUDIT FILE (ROOT)
// =============================================================================

// AuditFile is the document root. A zero AuditFile is not a valid document;
// only Construct produces one that the writer accepts.
type AuditFile struct {
	Header               Header
	MasterFiles          *MasterFiles
	GeneralLedgerEntries *GeneralLedgerEntries

	profile     Profile
	constructed bool
}

// Constructed reports whether the document was produced by Construct and
// therefore satisfies one of the strictness profiles.
func (a *AuditFile) Constructed() bool {
	return a != nil && a.constructed
}

// Profile returns the strictness profile the document was constructed
// under. Only meaningful when Constructed reports true.
func (a *AuditFile) Profile() Profile {
	return a.profile
}
