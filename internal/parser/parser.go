// =============================================================================
// SAF-T Financial - XML Parser
// =============================================================================
//
// The parser turns SAF-T Financial XML into the raw nested mapping consumed
// by the constructor. It is deliberately permissive: it enforces only
// well-formedness, never constraints. Out-of-range values, missing required
// fields and unknown elements all pass through untouched so that the
// constructor can report every violation in one pass.
//
// Mapping rules:
//   - leaf elements become string values under snake_case keys
//   - nested structures become Raw mappings
//   - repeated elements become []any slices; an empty set of repeats is
//     omitted entirely, never represented as an empty slice
//   - absent elements are omitted, never stored as nil or ""
//   - elements the schema marks "not in use" are skipped on purpose
//
// Matching ignores namespaces; files with or without the SAF-T namespace
// prefix parse the same way.
//
// =============================================================================

package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/dodoas/saft-go/pkg/saft/types"
)

// ErrMalformedXML reports input the XML decoder could not read at all.
// Schema and constraint problems are not malformed input and pass through.
var ErrMalformedXML = errors.New("malformed xml")

// Parse reads a SAF-T Financial document and returns its raw mapping.
func Parse(r io.Reader) (types.Raw, error) {
	root, err := decode(r)
	if err != nil {
		return nil, err
	}
	return auditFile(root), nil
}

// =============================================================================
// GENERIC ELEMENT TREE
// =============================================================================

// element is a schema-agnostic XML node. The decoder fills it recursively;
// the mapping functions below walk it by local element name.
type element struct {
	XMLName  xml.Name
	Content  string    `xml:",chardata"`
	Children []element `xml:",any"`
}

func decode(r io.Reader) (*element, error) {
	var root element
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
	}
	// Trailing garbage after the document element is malformed too.
	if err := skipEpilog(dec); err != nil {
		return nil, err
	}
	return &root, nil
}

func skipEpilog(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedXML, err)
		}
		if _, ok := tok.(xml.StartElement); ok {
			return fmt.Errorf("%w: multiple document elements", ErrMalformedXML)
		}
	}
}

// first returns the first child with the given local name.
func (e *element) first(name string) *element {
	for i := range e.Children {
		if e.Children[i].XMLName.Local == name {
			return &e.Children[i]
		}
	}
	return nil
}

// all returns every child with the given local name, in document order.
func (e *element) all(name string) []*element {
	var out []*element
	for i := range e.Children {
		if e.Children[i].XMLName.Local == name {
			out = append(out, &e.Children[i])
		}
	}
	return out
}

// =============================================================================
// MAPPING HELPERS
// =============================================================================

// setText stores a leaf child's text when the child exists.
func setText(raw types.Raw, e *element, name, key string) {
	if c := e.first(name); c != nil {
		raw[key] = c.Content
	}
}

// setChild stores a nested mapping when the child exists and mapped to
// something.
func setChild(raw types.Raw, key string, m types.Raw) {
	if m != nil {
		raw[key] = m
	}
}

// setList stores a repeated mapping unless it came out empty.
func setList(raw types.Raw, e *element, name, key string, fn func(*element) types.Raw) {
	var items []any
	for _, c := range e.all(name) {
		if m := fn(c); m != nil {
			items = append(items, m)
		}
	}
	if len(items) > 0 {
		raw[key] = items
	}
}

// setTextList stores repeated leaf values unless none are present.
func setTextList(raw types.Raw, e *element, name, key string) {
	var items []any
	for _, c := range e.all(name) {
		items = append(items, c.Content)
	}
	if len(items) > 0 {
		raw[key] = items
	}
}

// =============================================================================
// NODE MAPPINGS
// =============================================================================

func auditFile(e *element) types.Raw {
	raw := types.Raw{}
	if c := e.first("Header"); c != nil {
		setChild(raw, "header", header(c))
	}
	if c := e.first("MasterFiles"); c != nil {
		setChild(raw, "master_files", masterFiles(c))
	}
	if c := e.first("GeneralLedgerEntries"); c != nil {
		setChild(raw, "general_ledger_entries", generalLedgerEntries(c))
	}
	return raw
}

func header(e *element) types.Raw {
	raw := types.Raw{}
	setText(raw, e, "AuditFileVersion", "audit_file_version")
	setText(raw, e, "AuditFileCountry", "audit_file_country")
	setText(raw, e, "AuditFileDateCreated", "audit_file_date_created")
	setText(raw, e, "SoftwareCompanyName", "software_company_name")
	setText(raw, e, "SoftwareID", "software_id")
	setText(raw, e, "SoftwareVersion", "software_version")
	if c := e.first("Company"); c != nil {
		setChild(raw, "company", company(c))
	}
	setText(raw, e, "DefaultCurrencyCode", "default_currency_code")
	if c := e.first("SelectionCriteria"); c != nil {
		setChild(raw, "selection_criteria", selectionCriteria(c))
	}
	setText(raw, e, "HeaderComment", "header_comment")
	setText(raw, e, "TaxAccountingBasis", "tax_accounting_basis")
	setText(raw, e, "TaxEntity", "tax_entity")
	setText(raw, e, "UserID", "user_id")
	if c := e.first("AuditFileSender"); c != nil {
		setChild(raw, "audit_file_sender", company(c))
	}
	return raw
}

// company maps the shared company shape. TaxRegistration's TaxType and
// TaxNumber are not in use and left out.
func company(e *element) types.Raw {
	raw := types.Raw{}
	setText(raw, e, "RegistrationNumber", "registration_number")
	setText(raw, e, "Name", "name")
	setList(raw, e, "Address", "addresses", address)
	setList(raw, e, "Contact", "contacts", contact)
	setList(raw, e, "TaxRegistration", "tax_registrations", taxID)
	setList(raw, e, "BankAccount", "bank_accounts", bankAccount)
	return raw
}

func address(e *element) types.Raw {
	raw := types.Raw{}
	setText(raw, e, "StreetName", "street_name")
	setText(raw, e, "Number", "number")
	setText(raw, e, "AdditionalAddressDetail", "additional_address_detail")
	setText(raw, e, "Building", "building")
	setText(raw, e, "City", "city")
	setText(raw, e, "PostalCode", "postal_code")
	setText(raw, e, "Region", "region")
	setText(raw, e, "Country", "country")
	setText(raw, e, "AddressType", "address_type")
	return raw
}

func contact(e *element) types.Raw {
	raw := types.Raw{}
	if c := e.first("ContactPerson"); c != nil {
		setChild(raw, "contact_person", personName(c))
	}
	setText(raw, e, "Telephone", "telephone")
	setText(raw, e, "Fax", "fax")
	setText(raw, e, "Email", "email")
	setText(raw, e, "Website", "website")
	setText(raw, e, "MobilePhone", "mobile_phone")
	return raw
}

func personName(e *element) types.Raw {
	raw := types.Raw{}
	setText(raw, e, "Title", "title")
	setText(raw, e, "FirstName", "first_name")
	setText(raw, e, "Initials", "initials")
	setText(raw, e, "LastNamePrefix", "last_name_prefix")
	setText(raw, e, "LastName", "last_name")
	setText(raw, e, "BirthName", "birth_name")
	setText(raw, e, "Salutation", "salutation")
	setTextList(raw, e, "OtherTitles", "other_titles")
	return raw
}

func taxID(e *element) types.Raw {
	raw := types.Raw{}
	setText(raw, e, "TaxRegistrationNumber", "tax_registration_number")
	setText(raw, e, "TaxAuthority", "tax_authority")
	setText(raw, e, "TaxVerificationDate", "tax_verification_date")
	return raw
}

func bankAccount(e *element) types.Raw {
	raw := types.Raw{}
	setText(raw, e, "IBANNumber", "iban_number")
	setText(raw, e, "BankAccountNumber", "bank_account_number")
	setText(raw, e, "BankAccountName", "bank_account_name")
	setText(raw, e, "SortCode", "sort_code")
	setText(raw, e, "BIC", "bic")
	setText(raw, e, "CurrencyCode", "currency_code")
	setText(raw, e, "GeneralLedgerAccountID", "general_ledger_account_id")
	return raw
}

func selectionCriteria(e *element) types.Raw {
	raw := types.Raw{}
	setText(raw, e, "TaxReportingJurisdiction", "tax_reporting_jurisdiction")
	setText(raw, e, "CompanyEntity", "company_entity")
	setText(raw, e, "SelectionStartDate", "selection_start_date")
	setText(raw, e, "SelectionEndDate", "selection_end_date")
	setText(raw, e, "PeriodStart", "period_start")
	setText(raw, e, "PeriodStartYear", "period_start_year")
	setText(raw, e, "PeriodEnd", "period_end")
	setText(raw, e, "PeriodEndYear", "period_end_year")
	setText(raw, e, "DocumentType", "document_type")
	setTextList(raw, e, "OtherCriteria", "other_criterias")
	return raw
}

func amount(e *element) types.Raw {
	raw := types.Raw{}
	setText(raw, e, "Amount", "amount")
	setText(raw, e, "CurrencyCode", "currency_code")
	setText(raw, e, "CurrencyAmount", "currency_amount")
	setText(raw, e, "ExchangeRate", "exchange_rate")
	return raw
}

func analysis(e *element) types.Raw {
	raw := types.Raw{}
	setText(raw, e, "AnalysisType", "analysis_type")
	setText(raw, e, "AnalysisID", "analysis_id")
	if c := e.first("AnalysisAmount"); c != nil {
		setChild(raw, "analysis_amount", amount(c))
	}
	return raw
}

func analysisPartyInfo(e *element) types.Raw {
	raw := types.Raw{}
	setText(raw, e, "AnalysisType", "analysis_type")
	setText(raw, e, "AnalysisID", "analysis_id")
	return raw
}

func taxInformation(e *element) types.Raw {
	raw := types.Raw{}
	setText(raw, e, "TaxType", "tax_type")
	setText(raw, e, "TaxCode", "tax_code")
	setText(raw, e, "TaxPercentage", "tax_percentage")
	setText(raw, e, "Country", "country")
	setText(raw, e, "TaxBase", "tax_base")
	setText(raw, e, "TaxBaseDescription", "tax_base_description")
	if c := e.first("TaxAmount"); c != nil {
		setChild(raw, "tax_amount", amount(c))
	}
	setText(raw, e, "TaxExemptionReason", "tax_exemption_reason")
	setText(raw, e, "TaxDeclarationPeriod", "tax_declaration_period")
	return raw
}

func paymentTerms(e *element) types.Raw {
	raw := types.Raw{}
	setText(raw, e, "Days", "days")
	setText(raw, e, "Months", "months")
	setText(raw, e, "CashDiscountDays", "cash_discount_days")
	setText(raw, e, "CashDiscountRate", "cash_discount_rate")
	setText(raw, e, "FreeBillingMonth", "free_billing_month")
	return raw
}

func partyInfo(e *element) types.Raw {
	raw := types.Raw{}
	if c := e.first("PaymentTerms"); c != nil {
		setChild(raw, "payment_terms", paymentTerms(c))
	}
	setText(raw, e, "NaceCode", "nace_code")
	setText(raw, e, "CurrencyCode", "currency_code")
	setText(raw, e, "Type", "type")
	setText(raw, e, "Status", "status")
	setList(raw, e, "Analysis", "analyses", analysisPartyInfo)
	setText(raw, e, "Notes", "notes")
	return raw
}

// account maps a general ledger account. The schema's choice between
// opening/closing debit and credit balances is left for validation.
func account(e *element) types.Raw {
	raw := types.Raw{}
	setText(raw, e, "AccountID", "account_id")
	setText(raw, e, "AccountDescription", "account_description")
	setText(raw, e, "StandardAccountID", "standard_account_id")
	setText(raw, e, "GroupingCategory", "grouping_category")
	setText(raw, e, "GroupingCode", "grouping_code")
	setText(raw, e, "AccountType", "account_type")
	setText(raw, e, "AccountCreationDate", "account_creation_date")
	setText(raw, e, "OpeningDebitBalance", "opening_debit_balance")
	setText(raw, e, "OpeningCreditBalance", "opening_credit_balance")
	setText(raw, e, "ClosingDebitBalance", "closing_debit_balance")
	setText(raw, e, "ClosingCreditBalance", "closing_credit_balance")
	return raw
}

func customer(e *element) types.Raw {
	raw := company(e)
	setText(raw, e, "CustomerID", "customer_id")
	setText(raw, e, "SelfBillingIndicator", "self_billing_indicator")
	setText(raw, e, "AccountID", "account_id")
	setText(raw, e, "OpeningDebitBalance", "opening_debit_balance")
	setText(raw, e, "OpeningCreditBalance", "opening_credit_balance")
	setText(raw, e, "ClosingDebitBalance", "closing_debit_balance")
	setText(raw, e, "ClosingCreditBalance", "closing_credit_balance")
	if c := e.first("PartyInfo"); c != nil {
		setChild(raw, "party_info", partyInfo(c))
	}
	return raw
}

func supplier(e *element) types.Raw {
	raw := company(e)
	setText(raw, e, "SupplierID", "supplier_id")
	setText(raw, e, "SelfBillingIndicator", "self_billing_indicator")
	setText(raw, e, "AccountID", "account_id")
	setText(raw, e, "OpeningDebitBalance", "opening_debit_balance")
	setText(raw, e, "OpeningCreditBalance", "opening_credit_balance")
	setText(raw, e, "ClosingDebitBalance", "closing_debit_balance")
	setText(raw, e, "ClosingCreditBalance", "closing_credit_balance")
	if c := e.first("PartyInfo"); c != nil {
		setChild(raw, "party_info", partyInfo(c))
	}
	return raw
}

func owner(e *element) types.Raw {
	raw := company(e)
	setText(raw, e, "OwnerID", "owner_id")
	setText(raw, e, "AccountID", "account_id")
	return raw
}

// taxCodeDetails leaves out FlatTaxRate, Region and AuditFileRegion, which
// the Norwegian schema marks not in use.
func taxCodeDetails(e *element) types.Raw {
	raw := types.Raw{}
	setText(raw, e, "TaxCode", "tax_code")
	setText(raw, e, "EffectiveDate", "effective_date")
	setText(raw, e, "ExpirationDate", "expiration_date")
	setText(raw, e, "Description", "description")
	setText(raw, e, "TaxPercentage", "tax_percentage")
	setText(raw, e, "Country", "country")
	setText(raw, e, "StandardTaxCode", "standard_tax_code")
	setText(raw, e, "Compensation", "compensation")
	setTextList(raw, e, "BaseRate", "base_rates")
	return raw
}

func taxTableEntry(e *element) types.Raw {
	raw := types.Raw{}
	setText(raw, e, "TaxType", "tax_type")
	setText(raw, e, "Description", "description")
	setList(raw, e, "TaxCodeDetails", "tax_code_details", taxCodeDetails)
	return raw
}

func analysisTypeTableEntry(e *element) types.Raw {
	raw := types.Raw{}
	setText(raw, e, "AnalysisType", "analysis_type")
	setText(raw, e, "AnalysisTypeDescription", "analysis_type_description")
	setText(raw, e, "AnalysisID", "analysis_id")
	setText(raw, e, "AnalysisIDDescription", "analysis_id_description")
	setText(raw, e, "StartDate", "start_date")
	setText(raw, e, "EndDate", "end_date")
	setText(raw, e, "Status", "status")
	setList(raw, e, "Analysis", "analyses", analysisPartyInfo)
	return raw
}

// masterFiles skips the tables the Norwegian schema marks not in use
// (Taxonomies, UOMTable, MovementTypeTable, Products, PhysicalStock,
// Assets).
func masterFiles(e *element) types.Raw {
	raw := types.Raw{}
	if c := e.first("GeneralLedgerAccounts"); c != nil {
		setList(raw, c, "Account", "general_ledger_accounts", account)
	}
	if c := e.first("Customers"); c != nil {
		setList(raw, c, "Customer", "customers", customer)
	}
	if c := e.first("Suppliers"); c != nil {
		setList(raw, c, "Supplier", "suppliers", supplier)
	}
	if c := e.first("TaxTable"); c != nil {
		setList(raw, c, "TaxTableEntry", "tax_table", taxTableEntry)
	}
	if c := e.first("AnalysisTypeTable"); c != nil {
		setList(raw, c, "AnalysisTypeTableEntry", "analysis_type_table", analysisTypeTableEntry)
	}
	if c := e.first("Owners"); c != nil {
		setList(raw, c, "Owner", "owners", owner)
	}
	return raw
}

// line skips the transaction-level CustomerID/SupplierID duplicates the
// schema marks not in use; the line-level IDs are the live ones.
func line(e *element) types.Raw {
	raw := types.Raw{}
	setText(raw, e, "RecordID", "record_id")
	setText(raw, e, "AccountID", "account_id")
	setList(raw, e, "Analysis", "analyses", analysis)
	setText(raw, e, "ValueDate", "value_date")
	setText(raw, e, "SourceDocumentID", "source_document_id")
	setText(raw, e, "CustomerID", "customer_id")
	setText(raw, e, "SupplierID", "supplier_id")
	setText(raw, e, "Description", "description")
	if c := e.first("DebitAmount"); c != nil {
		setChild(raw, "debit_amount", amount(c))
	}
	if c := e.first("CreditAmount"); c != nil {
		setChild(raw, "credit_amount", amount(c))
	}
	setList(raw, e, "TaxInformation", "tax_information", taxInformation)
	setText(raw, e, "ReferenceNumber", "reference_number")
	setText(raw, e, "CID", "cid")
	setText(raw, e, "DueDate", "due_date")
	setText(raw, e, "Quantity", "quantity")
	setText(raw, e, "CrossReference", "cross_reference")
	setText(raw, e, "SystemEntryTime", "system_entry_time")
	setText(raw, e, "OwnerID", "owner_id")
	return raw
}

func transaction(e *element) types.Raw {
	raw := types.Raw{}
	setText(raw, e, "TransactionID", "transaction_id")
	setText(raw, e, "Period", "period")
	setText(raw, e, "PeriodYear", "period_year")
	setText(raw, e, "TransactionDate", "transaction_date")
	setText(raw, e, "SourceID", "source_id")
	setText(raw, e, "TransactionType", "transaction_type")
	setText(raw, e, "Description", "description")
	setText(raw, e, "BatchID", "batch_id")
	setText(raw, e, "SystemEntryDate", "system_entry_date")
	setText(raw, e, "GLPostingDate", "gl_posting_date")
	setText(raw, e, "SystemID", "system_id")
	setList(raw, e, "Line", "lines", line)
	return raw
}

func journal(e *element) types.Raw {
	raw := types.Raw{}
	setText(raw, e, "JournalID", "journal_id")
	setText(raw, e, "Description", "description")
	setText(raw, e, "Type", "type")
	setList(raw, e, "Transaction", "transactions", transaction)
	return raw
}

func generalLedgerEntries(e *element) types.Raw {
	raw := types.Raw{}
	setText(raw, e, "NumberOfEntries", "number_of_entries")
	setText(raw, e, "TotalDebit", "total_debit")
	setText(raw, e, "TotalCredit", "total_credit")
	setList(raw, e, "Journal", "journals", journal)
	return raw
}
