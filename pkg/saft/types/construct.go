// =============================================================================
// SAF-T Financial - Constraint Validator / Constructor
// =============================================================================
//
// Construct turns the parser's raw nested mapping into a typed, invariant-
// checked AuditFile under a chosen strictness profile. This is the only
// place raw text is coerced to semantic values (dates, decimals, booleans,
// integers) and the only place the constraint table is consulted.
//
// ERROR HANDLING:
//   Violations are collected, not thrown on first failure. Every required
//   field, coercion and bound in the whole document is checked in one pass;
//   the result is either a fully valid document or a ConstraintError
//   listing every problem with its field path. There is no partial result.
//
// =============================================================================

package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Construct validates and coerces a raw mapping into an AuditFile under the
// given profile. On failure it returns a *ConstraintError carrying every
// violation found; the returned document is nil in that case.
func Construct(profile Profile, raw Raw) (*AuditFile, error) {
	b := &builder{profile: profile}
	doc := b.auditFile("audit_file", raw)
	if len(b.violations) > 0 {
		return nil, &ConstraintError{Profile: profile, Violations: b.violations}
	}
	doc.profile = profile
	doc.constructed = true
	return doc, nil
}

// builder walks the raw mapping, collecting violations as it goes.
type builder struct {
	profile    Profile
	violations []FieldViolation
}

func (b *builder) violate(path string, kind ViolationKind, format string, args ...any) {
	b.violations = append(b.violations, FieldViolation{
		Path: path,
		Kind: kind,
		Rule: fmt.Sprintf(format, args...),
	})
}

// =============================================================================
// RAW ACCESS HELPERS
// =============================================================================

func childPath(parent, key string) string {
	return parent + "." + key
}

func indexPath(parent, key string, i int) string {
	return fmt.Sprintf("%s.%s[%d]", parent, key, i)
}

// rawString fetches a leaf value, recording a shape violation when the key
// holds something other than text.
func (b *builder) rawString(path string, raw Raw, key string) (string, bool) {
	v, ok := raw[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		b.violate(childPath(path, key), KindShape, "expected a text value")
		return "", false
	}
	return s, true
}

// rawChild fetches a nested mapping.
func (b *builder) rawChild(path string, raw Raw, key string) (Raw, bool) {
	v, ok := raw[key]
	if !ok {
		return nil, false
	}
	m, ok := v.(Raw)
	if !ok {
		b.violate(childPath(path, key), KindShape, "expected a nested structure")
		return nil, false
	}
	return m, true
}

// rawList fetches a repeated value. Parsers omit empty lists, so a present
// key always holds at least one element.
func (b *builder) rawList(path string, raw Raw, key string) ([]any, bool) {
	v, ok := raw[key]
	if !ok {
		return nil, false
	}
	l, ok := v.([]any)
	if !ok {
		b.violate(childPath(path, key), KindShape, "expected a repeated value")
		return nil, false
	}
	return l, true
}

func (b *builder) requireChild(path string, raw Raw, key string) (Raw, bool) {
	m, ok := b.rawChild(path, raw, key)
	if !ok {
		if _, present := raw[key]; !present {
			b.violate(childPath(path, key), KindMissing, "required structure is missing")
		}
		return nil, false
	}
	return m, true
}

// =============================================================================
// TEXT FIELDS
// =============================================================================

func (b *builder) reqText(path string, raw Raw, key string, kind TextKind) string {
	s, ok := b.rawString(path, raw, key)
	if !ok {
		if _, present := raw[key]; !present {
			b.violate(childPath(path, key), KindMissing, "required field is missing")
		}
		return ""
	}
	checked, err := CheckText(b.profile, kind, s)
	if err != nil {
		b.violate(childPath(path, key), KindBounds, "%v", err)
		return ""
	}
	return checked
}

func (b *builder) optText(path string, raw Raw, key string, kind TextKind) *string {
	s, ok := b.rawString(path, raw, key)
	if !ok {
		return nil
	}
	checked, err := CheckText(b.profile, kind, s)
	if err != nil {
		b.violate(childPath(path, key), KindBounds, "%v", err)
		return nil
	}
	return &checked
}

func (b *builder) textList(path string, raw Raw, key string, kind TextKind) []string {
	items, ok := b.rawList(path, raw, key)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			b.violate(indexPath(path, key, i), KindShape, "expected a text value")
			continue
		}
		checked, err := CheckText(b.profile, kind, s)
		if err != nil {
			b.violate(indexPath(path, key, i), KindBounds, "%v", err)
			continue
		}
		out = append(out, checked)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// =============================================================================
// DECIMAL FIELDS
// =============================================================================

func (b *builder) decimalValue(path, s string, kind DecimalKind) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		b.violate(path, KindShape, "invalid decimal %q", s)
		return decimal.Decimal{}, false
	}
	checked, err := CheckDecimal(b.profile, kind, d)
	if err != nil {
		b.violate(path, KindBounds, "%v", err)
		return decimal.Decimal{}, false
	}
	return checked, true
}

func (b *builder) reqDecimal(path string, raw Raw, key string, kind DecimalKind) decimal.Decimal {
	s, ok := b.rawString(path, raw, key)
	if !ok {
		if _, present := raw[key]; !present {
			b.violate(childPath(path, key), KindMissing, "required field is missing")
		}
		return decimal.Decimal{}
	}
	d, _ := b.decimalValue(childPath(path, key), s, kind)
	return d
}

func (b *builder) optDecimal(path string, raw Raw, key string, kind DecimalKind) *decimal.Decimal {
	s, ok := b.rawString(path, raw, key)
	if !ok {
		return nil
	}
	d, ok := b.decimalValue(childPath(path, key), s, kind)
	if !ok {
		return nil
	}
	return &d
}

func (b *builder) decimalList(path string, raw Raw, key string, kind DecimalKind) []decimal.Decimal {
	items, ok := b.rawList(path, raw, key)
	if !ok {
		return nil
	}
	out := make([]decimal.Decimal, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			b.violate(indexPath(path, key, i), KindShape, "expected a text value")
			continue
		}
		d, ok := b.decimalValue(indexPath(path, key, i), s, kind)
		if !ok {
			continue
		}
		out = append(out, d)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// =============================================================================
// DATE / TIME / BOOLEAN / INTEGER FIELDS
// =============================================================================

func (b *builder) reqDate(path string, raw Raw, key string) Date {
	s, ok := b.rawString(path, raw, key)
	if !ok {
		if _, present := raw[key]; !present {
			b.violate(childPath(path, key), KindMissing, "required field is missing")
		}
		return Date{}
	}
	d, err := ParseDate(s)
	if err != nil {
		b.violate(childPath(path, key), KindShape, "%v", err)
		return Date{}
	}
	return d
}

func (b *builder) optDate(path string, raw Raw, key string) *Date {
	s, ok := b.rawString(path, raw, key)
	if !ok {
		return nil
	}
	d, err := ParseDate(s)
	if err != nil {
		b.violate(childPath(path, key), KindShape, "%v", err)
		return nil
	}
	return &d
}

func (b *builder) optDateTime(path string, raw Raw, key string) *DateTime {
	s, ok := b.rawString(path, raw, key)
	if !ok {
		return nil
	}
	d, err := ParseDateTime(s)
	if err != nil {
		b.violate(childPath(path, key), KindShape, "%v", err)
		return nil
	}
	return &d
}

func (b *builder) optBool(path string, raw Raw, key string) *bool {
	s, ok := b.rawString(path, raw, key)
	if !ok {
		return nil
	}
	v, err := ParseBool(s)
	if err != nil {
		b.violate(childPath(path, key), KindShape, "%v", err)
		return nil
	}
	return &v
}

func (b *builder) intValue(path, s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		b.violate(path, KindShape, "invalid integer %q", s)
		return 0, false
	}
	return n, true
}

func (b *builder) reqInt(path string, raw Raw, key string) int {
	s, ok := b.rawString(path, raw, key)
	if !ok {
		if _, present := raw[key]; !present {
			b.violate(childPath(path, key), KindMissing, "required field is missing")
		}
		return 0
	}
	n, _ := b.intValue(childPath(path, key), s)
	return n
}

func (b *builder) optPositiveInt(path string, raw Raw, key string) *int {
	s, ok := b.rawString(path, raw, key)
	if !ok {
		return nil
	}
	n, ok := b.intValue(childPath(path, key), s)
	if !ok {
		return nil
	}
	if n < 0 {
		b.violate(childPath(path, key), KindBounds, "must not be negative, got %d", n)
		return nil
	}
	return &n
}

func (b *builder) optYear(path string, raw Raw, key string) *int {
	s, ok := b.rawString(path, raw, key)
	if !ok {
		return nil
	}
	n, ok := b.intValue(childPath(path, key), s)
	if !ok {
		return nil
	}
	if n < 1970 || n > 2100 {
		b.violate(childPath(path, key), KindBounds, "year must be within 1970..2100, got %d", n)
		return nil
	}
	return &n
}

// optRate parses a percentage bounded to 0..100 (cash discount rate).
func (b *builder) optRate(path string, raw Raw, key string) *decimal.Decimal {
	d := b.optDecimal(path, raw, key, DecimalFree)
	if d == nil {
		return nil
	}
	if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(100)) {
		b.violate(childPath(path, key), KindBounds, "rate must be within 0..100, got %s", d)
		return nil
	}
	return d
}

// =============================================================================
// NODE BUILDERS
// =============================================================================

func (b *builder) auditFile(path string, raw Raw) *AuditFile {
	doc := &AuditFile{}
	if header, ok := b.requireChild(path, raw, "header"); ok {
		doc.Header = b.header(childPath(path, "header"), header)
	}
	if mf, ok := b.rawChild(path, raw, "master_files"); ok {
		m := b.masterFiles(childPath(path, "master_files"), mf)
		doc.MasterFiles = &m
	}
	if gle, ok := b.rawChild(path, raw, "general_ledger_entries"); ok {
		g := b.generalLedgerEntries(childPath(path, "general_ledger_entries"), gle)
		doc.GeneralLedgerEntries = &g
	}
	return doc
}

func (b *builder) header(path string, raw Raw) Header {
	h := Header{
		AuditFileVersion:     b.reqText(path, raw, "audit_file_version", TextCode),
		AuditFileCountry:     b.reqText(path, raw, "audit_file_country", TextCountryCode),
		AuditFileDateCreated: b.reqDate(path, raw, "audit_file_date_created"),
		SoftwareCompanyName:  b.reqText(path, raw, "software_company_name", TextMiddle2),
		SoftwareID:           b.reqText(path, raw, "software_id", TextLong),
		SoftwareVersion:      b.reqText(path, raw, "software_version", TextShort),
		DefaultCurrencyCode:  b.reqText(path, raw, "default_currency_code", TextCurrencyCode),
		HeaderComment:        b.optText(path, raw, "header_comment", TextLong),
		TaxAccountingBasis:   b.reqText(path, raw, "tax_accounting_basis", TextShort),
		TaxEntity:            b.optText(path, raw, "tax_entity", TextMiddle2),
		UserID:               b.optText(path, raw, "user_id", TextMiddle1),
	}
	if company, ok := b.requireChild(path, raw, "company"); ok {
		h.Company = b.company(childPath(path, "company"), company, companyHeader)
	}
	if sc, ok := b.rawChild(path, raw, "selection_criteria"); ok {
		s := b.selectionCriteria(childPath(path, "selection_criteria"), sc)
		h.SelectionCriteria = &s
	}
	if sender, ok := b.rawChild(path, raw, "audit_file_sender"); ok {
		c := b.company(childPath(path, "audit_file_sender"), sender, companyGeneric)
		h.AuditFileSender = &c
	}
	return h
}

// companyContext selects how much of the shared company shape is required.
type companyContext int

const (
	// companyGeneric: name and at least one address required.
	companyGeneric companyContext = iota

	// companyHeader: additionally requires registration number and at
	// least one contact (the reporting company must be reachable).
	companyHeader
)

func (b *builder) company(path string, raw Raw, ctx companyContext) Company {
	c := Company{}
	if ctx == companyHeader {
		regNo := b.reqText(path, raw, "registration_number", TextMiddle1)
		c.RegistrationNumber = &regNo
	} else {
		c.RegistrationNumber = b.optText(path, raw, "registration_number", TextMiddle1)
	}
	c.Name = b.reqText(path, raw, "name", TextMiddle2)

	if items, ok := b.rawList(path, raw, "addresses"); ok {
		for i, item := range items {
			m, ok := item.(Raw)
			if !ok {
				b.violate(indexPath(path, "addresses", i), KindShape, "expected a nested structure")
				continue
			}
			c.Addresses = append(c.Addresses, b.address(indexPath(path, "addresses", i), m))
		}
	} else {
		b.violate(childPath(path, "addresses"), KindMissing, "at least one address is required")
	}

	if items, ok := b.rawList(path, raw, "contacts"); ok {
		for i, item := range items {
			m, ok := item.(Raw)
			if !ok {
				b.violate(indexPath(path, "contacts", i), KindShape, "expected a nested structure")
				continue
			}
			c.Contacts = append(c.Contacts, b.contact(indexPath(path, "contacts", i), m))
		}
	} else if ctx == companyHeader {
		b.violate(childPath(path, "contacts"), KindMissing, "at least one contact is required")
	}

	if items, ok := b.rawList(path, raw, "tax_registrations"); ok {
		for i, item := range items {
			m, ok := item.(Raw)
			if !ok {
				b.violate(indexPath(path, "tax_registrations", i), KindShape, "expected a nested structure")
				continue
			}
			c.TaxRegistrations = append(c.TaxRegistrations, b.taxID(indexPath(path, "tax_registrations", i), m))
		}
	}

	if items, ok := b.rawList(path, raw, "bank_accounts"); ok {
		for i, item := range items {
			m, ok := item.(Raw)
			if !ok {
				b.violate(indexPath(path, "bank_accounts", i), KindShape, "expected a nested structure")
				continue
			}
			c.BankAccounts = append(c.BankAccounts, b.bankAccount(indexPath(path, "bank_accounts", i), m))
		}
	}

	return c
}

func (b *builder) address(path string, raw Raw) Address {
	return Address{
		StreetName:              b.optText(path, raw, "street_name", TextMiddle2),
		Number:                  b.optText(path, raw, "number", TextShort),
		AdditionalAddressDetail: b.optText(path, raw, "additional_address_detail", TextMiddle2),
		Building:                b.optText(path, raw, "building", TextMiddle1),
		City:                    b.optText(path, raw, "city", TextMiddle1),
		PostalCode:              b.optText(path, raw, "postal_code", TextShort),
		Region:                  b.optText(path, raw, "region", TextMiddle1),
		Country:                 b.optText(path, raw, "country", TextCountryCode),
		AddressType:             b.optText(path, raw, "address_type", TextAddressType),
	}
}

func (b *builder) contact(path string, raw Raw) Contact {
	c := Contact{
		Telephone:   b.optText(path, raw, "telephone", TextShort),
		Fax:         b.optText(path, raw, "fax", TextShort),
		Email:       b.optText(path, raw, "email", TextMiddle2),
		Website:     b.optText(path, raw, "website", TextFree),
		MobilePhone: b.optText(path, raw, "mobile_phone", TextShort),
	}
	if person, ok := b.requireChild(path, raw, "contact_person"); ok {
		c.ContactPerson = b.personName(childPath(path, "contact_person"), person)
	}
	return c
}

func (b *builder) personName(path string, raw Raw) PersonName {
	return PersonName{
		Title:          b.optText(path, raw, "title", TextCode),
		FirstName:      b.reqText(path, raw, "first_name", TextMiddle1),
		Initials:       b.optText(path, raw, "initials", TextShort),
		LastNamePrefix: b.optText(path, raw, "last_name_prefix", TextShort),
		LastName:       b.reqText(path, raw, "last_name", TextMiddle2),
		BirthName:      b.optText(path, raw, "birth_name", TextMiddle2),
		Salutation:     b.optText(path, raw, "salutation", TextShort),
		OtherTitles:    b.textList(path, raw, "other_titles", TextShort),
	}
}

func (b *builder) taxID(path string, raw Raw) TaxID {
	return TaxID{
		TaxRegistrationNumber: b.reqText(path, raw, "tax_registration_number", TextMiddle1),
		TaxAuthority:          b.optText(path, raw, "tax_authority", TextMiddle1),
		TaxVerificationDate:   b.optDate(path, raw, "tax_verification_date"),
	}
}

func (b *builder) bankAccount(path string, raw Raw) BankAccount {
	return BankAccount{
		IBANNumber:             b.optText(path, raw, "iban_number", TextMiddle1),
		BankAccountNumber:      b.optText(path, raw, "bank_account_number", TextMiddle1),
		BankAccountName:        b.optText(path, raw, "bank_account_name", TextMiddle2),
		SortCode:               b.optText(path, raw, "sort_code", TextShort),
		BIC:                    b.optText(path, raw, "bic", TextShort),
		CurrencyCode:           b.optText(path, raw, "currency_code", TextCurrencyCode),
		GeneralLedgerAccountID: b.optText(path, raw, "general_ledger_account_id", TextMiddle2),
	}
}

func (b *builder) selectionCriteria(path string, raw Raw) SelectionCriteria {
	return SelectionCriteria{
		TaxReportingJurisdiction: b.optText(path, raw, "tax_reporting_jurisdiction", TextMiddle1),
		CompanyEntity:            b.optText(path, raw, "company_entity", TextMiddle2),
		SelectionStartDate:       b.optDate(path, raw, "selection_start_date"),
		SelectionEndDate:         b.optDate(path, raw, "selection_end_date"),
		PeriodStart:              b.optPositiveInt(path, raw, "period_start"),
		PeriodStartYear:          b.optYear(path, raw, "period_start_year"),
		PeriodEnd:                b.optPositiveInt(path, raw, "period_end"),
		PeriodEndYear:            b.optYear(path, raw, "period_end_year"),
		DocumentType:             b.optText(path, raw, "document_type", TextLong),
		OtherCriteria:            b.textList(path, raw, "other_criterias", TextLong),
	}
}

func (b *builder) amount(path string, raw Raw) Amount {
	return Amount{
		Amount:         b.reqDecimal(path, raw, "amount", DecimalMonetary),
		CurrencyCode:   b.optText(path, raw, "currency_code", TextCurrencyCode),
		CurrencyAmount: b.optDecimal(path, raw, "currency_amount", DecimalMonetary),
		ExchangeRate:   b.optDecimal(path, raw, "exchange_rate", DecimalExchangeRate),
	}
}

func (b *builder) reqAmount(path string, raw Raw, key string) Amount {
	m, ok := b.requireChild(path, raw, key)
	if !ok {
		return Amount{}
	}
	return b.amount(childPath(path, key), m)
}

func (b *builder) optAmount(path string, raw Raw, key string) *Amount {
	m, ok := b.rawChild(path, raw, key)
	if !ok {
		return nil
	}
	a := b.amount(childPath(path, key), m)
	return &a
}

func (b *builder) analysis(path string, raw Raw) Analysis {
	return Analysis{
		AnalysisType:   b.reqText(path, raw, "analysis_type", TextCode),
		AnalysisID:     b.reqText(path, raw, "analysis_id", TextLong),
		AnalysisAmount: b.optAmount(path, raw, "analysis_amount"),
	}
}

func (b *builder) analysisPartyInfo(path string, raw Raw) AnalysisPartyInfo {
	return AnalysisPartyInfo{
		AnalysisType: b.reqText(path, raw, "analysis_type", TextCode),
		AnalysisID:   b.reqText(path, raw, "analysis_id", TextLong),
	}
}

func (b *builder) analysisPartyInfoList(path string, raw Raw, key string) []AnalysisPartyInfo {
	items, ok := b.rawList(path, raw, key)
	if !ok {
		return nil
	}
	var out []AnalysisPartyInfo
	for i, item := range items {
		m, ok := item.(Raw)
		if !ok {
			b.violate(indexPath(path, key, i), KindShape, "expected a nested structure")
			continue
		}
		out = append(out, b.analysisPartyInfo(indexPath(path, key, i), m))
	}
	return out
}

func (b *builder) taxInformation(path string, raw Raw) TaxInformation {
	return TaxInformation{
		TaxType:              b.optText(path, raw, "tax_type", TextCode),
		TaxCode:              b.optText(path, raw, "tax_code", TextMiddle1),
		TaxPercentage:        b.optDecimal(path, raw, "tax_percentage", DecimalFree),
		Country:              b.optText(path, raw, "country", TextCountryCode),
		TaxBase:              b.optDecimal(path, raw, "tax_base", DecimalFree),
		TaxBaseDescription:   b.optText(path, raw, "tax_base_description", TextMiddle2),
		TaxAmount:            b.reqAmount(path, raw, "tax_amount"),
		TaxExemptionReason:   b.optText(path, raw, "tax_exemption_reason", TextMiddle2),
		TaxDeclarationPeriod: b.optText(path, raw, "tax_declaration_period", TextMiddle1),
	}
}

func (b *builder) paymentTerms(path string, raw Raw) PaymentTerms {
	return PaymentTerms{
		Days:             b.optPositiveInt(path, raw, "days"),
		Months:           b.optPositiveInt(path, raw, "months"),
		CashDiscountDays: b.optPositiveInt(path, raw, "cash_discount_days"),
		CashDiscountRate: b.optRate(path, raw, "cash_discount_rate"),
		FreeBillingMonth: b.optBool(path, raw, "free_billing_month"),
	}
}

func (b *builder) partyInfo(path string, raw Raw) PartyInfo {
	p := PartyInfo{
		NaceCode:     b.optText(path, raw, "nace_code", TextShort),
		CurrencyCode: b.optText(path, raw, "currency_code", TextCurrencyCode),
		Type:         b.optText(path, raw, "type", TextMiddle1),
		Status:       b.optText(path, raw, "status", TextMiddle1),
		Analyses:     b.analysisPartyInfoList(path, raw, "analyses"),
		Notes:        b.optText(path, raw, "notes", TextFree),
	}
	if pt, ok := b.rawChild(path, raw, "payment_terms"); ok {
		terms := b.paymentTerms(childPath(path, "payment_terms"), pt)
		p.PaymentTerms = &terms
	}
	return p
}

func (b *builder) account(path string, raw Raw) Account {
	return Account{
		AccountID:            b.reqText(path, raw, "account_id", TextMiddle2),
		AccountDescription:   b.reqText(path, raw, "account_description", TextLong),
		StandardAccountID:    b.optText(path, raw, "standard_account_id", TextMiddle1),
		GroupingCategory:     b.optText(path, raw, "grouping_category", TextMiddle1),
		GroupingCode:         b.optText(path, raw, "grouping_code", TextMiddle1),
		AccountType:          b.reqText(path, raw, "account_type", TextShort),
		AccountCreationDate:  b.optDate(path, raw, "account_creation_date"),
		OpeningDebitBalance:  b.optDecimal(path, raw, "opening_debit_balance", DecimalMonetary),
		OpeningCreditBalance: b.optDecimal(path, raw, "opening_credit_balance", DecimalMonetary),
		ClosingDebitBalance:  b.optDecimal(path, raw, "closing_debit_balance", DecimalMonetary),
		ClosingCreditBalance: b.optDecimal(path, raw, "closing_credit_balance", DecimalMonetary),
	}
}

func (b *builder) customer(path string, raw Raw) Customer {
	c := Customer{
		Company:              b.company(path, raw, companyGeneric),
		CustomerID:           b.reqText(path, raw, "customer_id", TextMiddle1),
		SelfBillingIndicator: b.optText(path, raw, "self_billing_indicator", TextCode),
		AccountID:            b.optText(path, raw, "account_id", TextMiddle2),
		OpeningDebitBalance:  b.optDecimal(path, raw, "opening_debit_balance", DecimalMonetary),
		OpeningCreditBalance: b.optDecimal(path, raw, "opening_credit_balance", DecimalMonetary),
		ClosingDebitBalance:  b.optDecimal(path, raw, "closing_debit_balance", DecimalMonetary),
		ClosingCreditBalance: b.optDecimal(path, raw, "closing_credit_balance", DecimalMonetary),
	}
	if pi, ok := b.rawChild(path, raw, "party_info"); ok {
		p := b.partyInfo(childPath(path, "party_info"), pi)
		c.PartyInfo = &p
	}
	return c
}

func (b *builder) supplier(path string, raw Raw) Supplier {
	s := Supplier{
		Company:              b.company(path, raw, companyGeneric),
		SupplierID:           b.reqText(path, raw, "supplier_id", TextMiddle1),
		SelfBillingIndicator: b.optText(path, raw, "self_billing_indicator", TextCode),
		AccountID:            b.optText(path, raw, "account_id", TextMiddle2),
		OpeningDebitBalance:  b.optDecimal(path, raw, "opening_debit_balance", DecimalMonetary),
		OpeningCreditBalance: b.optDecimal(path, raw, "opening_credit_balance", DecimalMonetary),
		ClosingDebitBalance:  b.optDecimal(path, raw, "closing_debit_balance", DecimalMonetary),
		ClosingCreditBalance: b.optDecimal(path, raw, "closing_credit_balance", DecimalMonetary),
	}
	if pi, ok := b.rawChild(path, raw, "party_info"); ok {
		p := b.partyInfo(childPath(path, "party_info"), pi)
		s.PartyInfo = &p
	}
	return s
}

func (b *builder) owner(path string, raw Raw) Owner {
	return Owner{
		Company:   b.company(path, raw, companyGeneric),
		OwnerID:   b.optText(path, raw, "owner_id", TextMiddle1),
		AccountID: b.optText(path, raw, "account_id", TextMiddle2),
	}
}

func (b *builder) taxCodeDetails(path string, raw Raw) TaxCodeDetails {
	d := TaxCodeDetails{
		TaxCode:         b.reqText(path, raw, "tax_code", TextMiddle1),
		EffectiveDate:   b.optDate(path, raw, "effective_date"),
		ExpirationDate:  b.optDate(path, raw, "expiration_date"),
		Description:     b.optText(path, raw, "description", TextLong),
		TaxPercentage:   b.optDecimal(path, raw, "tax_percentage", DecimalFree),
		Country:         b.reqText(path, raw, "country", TextCountryCode),
		StandardTaxCode: b.reqText(path, raw, "standard_tax_code", TextMiddle1),
		Compensation:    b.optBool(path, raw, "compensation"),
		BaseRates:       b.decimalList(path, raw, "base_rates", DecimalFree),
	}
	if d.BaseRates == nil {
		if _, present := raw["base_rates"]; !present {
			b.violate(childPath(path, "base_rates"), KindMissing, "at least one base rate is required")
		}
	}
	return d
}

func (b *builder) taxTableEntry(path string, raw Raw) TaxTableEntry {
	e := TaxTableEntry{
		TaxType:     b.reqText(path, raw, "tax_type", TextCode),
		Description: b.reqText(path, raw, "description", TextLong),
	}
	if items, ok := b.rawList(path, raw, "tax_code_details"); ok {
		for i, item := range items {
			m, ok := item.(Raw)
			if !ok {
				b.violate(indexPath(path, "tax_code_details", i), KindShape, "expected a nested structure")
				continue
			}
			e.TaxCodeDetails = append(e.TaxCodeDetails, b.taxCodeDetails(indexPath(path, "tax_code_details", i), m))
		}
	} else {
		b.violate(childPath(path, "tax_code_details"), KindMissing, "at least one tax code detail is required")
	}
	return e
}

func (b *builder) analysisTypeTableEntry(path string, raw Raw) AnalysisTypeTableEntry {
	return AnalysisTypeTableEntry{
		AnalysisType:            b.reqText(path, raw, "analysis_type", TextCode),
		AnalysisTypeDescription: b.reqText(path, raw, "analysis_type_description", TextLong),
		AnalysisID:              b.reqText(path, raw, "analysis_id", TextMiddle1),
		AnalysisIDDescription:   b.reqText(path, raw, "analysis_id_description", TextLong),
		StartDate:               b.optDate(path, raw, "start_date"),
		EndDate:                 b.optDate(path, raw, "end_date"),
		Status:                  b.optText(path, raw, "status", TextMiddle1),
		Analyses:                b.analysisPartyInfoList(path, raw, "analyses"),
	}
}

func (b *builder) masterFiles(path string, raw Raw) MasterFiles {
	m := MasterFiles{}

	if items, ok := b.rawList(path, raw, "general_ledger_accounts"); ok {
		for i, item := range items {
			c, ok := item.(Raw)
			if !ok {
				b.violate(indexPath(path, "general_ledger_accounts", i), KindShape, "expected a nested structure")
				continue
			}
			m.GeneralLedgerAccounts = append(m.GeneralLedgerAccounts, b.account(indexPath(path, "general_ledger_accounts", i), c))
		}
	}
	if items, ok := b.rawList(path, raw, "customers"); ok {
		for i, item := range items {
			c, ok := item.(Raw)
			if !ok {
				b.violate(indexPath(path, "customers", i), KindShape, "expected a nested structure")
				continue
			}
			m.Customers = append(m.Customers, b.customer(indexPath(path, "customers", i), c))
		}
	}
	if items, ok := b.rawList(path, raw, "suppliers"); ok {
		for i, item := range items {
			c, ok := item.(Raw)
			if !ok {
				b.violate(indexPath(path, "suppliers", i), KindShape, "expected a nested structure")
				continue
			}
			m.Suppliers = append(m.Suppliers, b.supplier(indexPath(path, "suppliers", i), c))
		}
	}
	if items, ok := b.rawList(path, raw, "tax_table"); ok {
		for i, item := range items {
			c, ok := item.(Raw)
			if !ok {
				b.violate(indexPath(path, "tax_table", i), KindShape, "expected a nested structure")
				continue
			}
			m.TaxTable = append(m.TaxTable, b.taxTableEntry(indexPath(path, "tax_table", i), c))
		}
	}
	if items, ok := b.rawList(path, raw, "analysis_type_table"); ok {
		for i, item := range items {
			c, ok := item.(Raw)
			if !ok {
				b.violate(indexPath(path, "analysis_type_table", i), KindShape, "expected a nested structure")
				continue
			}
			m.AnalysisTypeTable = append(m.AnalysisTypeTable, b.analysisTypeTableEntry(indexPath(path, "analysis_type_table", i), c))
		}
	}
	if items, ok := b.rawList(path, raw, "owners"); ok {
		for i, item := range items {
			c, ok := item.(Raw)
			if !ok {
				b.violate(indexPath(path, "owners", i), KindShape, "expected a nested structure")
				continue
			}
			m.Owners = append(m.Owners, b.owner(indexPath(path, "owners", i), c))
		}
	}

	return m
}

func (b *builder) line(path string, raw Raw) Line {
	l := Line{
		RecordID:         b.reqText(path, raw, "record_id", TextShort),
		AccountID:        b.reqText(path, raw, "account_id", TextMiddle2),
		ValueDate:        b.optDate(path, raw, "value_date"),
		SourceDocumentID: b.optText(path, raw, "source_document_id", TextMiddle1),
		CustomerID:       b.optText(path, raw, "customer_id", TextMiddle1),
		SupplierID:       b.optText(path, raw, "supplier_id", TextMiddle1),
		Description:      b.reqText(path, raw, "description", TextLong),
		DebitAmount:      b.optAmount(path, raw, "debit_amount"),
		CreditAmount:     b.optAmount(path, raw, "credit_amount"),
		ReferenceNumber:  b.optText(path, raw, "reference_number", TextMiddle1),
		CID:              b.optText(path, raw, "cid", TextMiddle1),
		DueDate:          b.optDate(path, raw, "due_date"),
		Quantity:         b.optDecimal(path, raw, "quantity", DecimalQuantity),
		CrossReference:   b.optText(path, raw, "cross_reference", TextMiddle1),
		SystemEntryTime:  b.optDateTime(path, raw, "system_entry_time"),
		OwnerID:          b.optText(path, raw, "owner_id", TextMiddle1),
	}

	if items, ok := b.rawList(path, raw, "analyses"); ok {
		for i, item := range items {
			m, ok := item.(Raw)
			if !ok {
				b.violate(indexPath(path, "analyses", i), KindShape, "expected a nested structure")
				continue
			}
			l.Analyses = append(l.Analyses, b.analysis(indexPath(path, "analyses", i), m))
		}
	}
	if items, ok := b.rawList(path, raw, "tax_information"); ok {
		for i, item := range items {
			m, ok := item.(Raw)
			if !ok {
				b.violate(indexPath(path, "tax_information", i), KindShape, "expected a nested structure")
				continue
			}
			l.TaxInformation = append(l.TaxInformation, b.taxInformation(indexPath(path, "tax_information", i), m))
		}
	}

	return l
}

func (b *builder) transaction(path string, raw Raw) Transaction {
	t := Transaction{
		TransactionID:   b.reqText(path, raw, "transaction_id", TextMiddle2),
		Period:          b.reqInt(path, raw, "period"),
		PeriodYear:      b.reqInt(path, raw, "period_year"),
		TransactionDate: b.reqDate(path, raw, "transaction_date"),
		SourceID:        b.optText(path, raw, "source_id", TextMiddle1),
		TransactionType: b.optText(path, raw, "transaction_type", TextShort),
		Description:     b.reqText(path, raw, "description", TextLong),
		BatchID:         b.optText(path, raw, "batch_id", TextMiddle1),
		SystemEntryDate: b.reqDate(path, raw, "system_entry_date"),
		GLPostingDate:   b.reqDate(path, raw, "gl_posting_date"),
		SystemID:        b.optText(path, raw, "system_id", TextShort),
	}
	if items, ok := b.rawList(path, raw, "lines"); ok {
		for i, item := range items {
			m, ok := item.(Raw)
			if !ok {
				b.violate(indexPath(path, "lines", i), KindShape, "expected a nested structure")
				continue
			}
			t.Lines = append(t.Lines, b.line(indexPath(path, "lines", i), m))
		}
	} else {
		b.violate(childPath(path, "lines"), KindMissing, "at least one line is required")
	}
	return t
}

func (b *builder) journal(path string, raw Raw) Journal {
	j := Journal{
		JournalID:   b.reqText(path, raw, "journal_id", TextShort),
		Description: b.reqText(path, raw, "description", TextLong),
		Type:        b.reqText(path, raw, "type", TextCode),
	}
	if items, ok := b.rawList(path, raw, "transactions"); ok {
		for i, item := range items {
			m, ok := item.(Raw)
			if !ok {
				b.violate(indexPath(path, "transactions", i), KindShape, "expected a nested structure")
				continue
			}
			j.Transactions = append(j.Transactions, b.transaction(indexPath(path, "transactions", i), m))
		}
	}
	return j
}

func (b *builder) generalLedgerEntries(path string, raw Raw) GeneralLedgerEntries {
	g := GeneralLedgerEntries{
		NumberOfEntries: b.reqInt(path, raw, "number_of_entries"),
		TotalDebit:      b.reqDecimal(path, raw, "total_debit", DecimalMonetary),
		TotalCredit:     b.reqDecimal(path, raw, "total_credit", DecimalMonetary),
	}
	if items, ok := b.rawList(path, raw, "journals"); ok {
		for i, item := range items {
			m, ok := item.(Raw)
			if !ok {
				b.violate(indexPath(path, "journals", i), KindShape, "expected a nested structure")
				continue
			}
			g.Journals = append(g.Journals, b.journal(indexPath(path, "journals", i), m))
		}
	}
	return g
}
