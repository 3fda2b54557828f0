// =============================================================================
// SAF-T Financial - HTML Report Renderer
// =============================================================================
//
// Renders a constructed AuditFile as a self-contained HTML fragment: the
// header as a key/value block, the master files as tables and cards, the
// general ledger entries as journal and line tables.
//
// The renderer is a pure function of the document and the static Norwegian
// reference tables. Standard account ids and standard tax codes are
// annotated with their national register entries via title attributes;
// account, customer, supplier and analysis references inside journal lines
// are annotated from the per-render indices. A reference with no match
// renders an explicit "not found" annotation, never an error.
//
// Absent optional values render as a dash in table cells and are skipped
// entirely in key/value blocks. Monetary values render with space-grouped
// thousands and a comma decimal separator, always with at least two
// fraction digits.
//
// =============================================================================

package render

import (
	_ "embed"
	"fmt"
	"html"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dodoas/saft-go/pkg/saft/norway"
	"github.com/dodoas/saft-go/pkg/saft/types"
)

//go:embed assets/report.css
var stylesheet string

// CSS returns the stylesheet the rendered fragment is designed for.
func CSS() string {
	return stylesheet
}

// Render produces the HTML fragment for a document.
func Render(doc *types.AuditFile) string {
	p := &page{ix: buildIndices(doc)}

	p.open(`<div class="pl-2 border-l-2">`)
	p.open(`<div class="mb-2 border-b-2"><strong>Header</strong></div>`)
	p.header(&doc.Header)
	p.close()

	if doc.MasterFiles != nil {
		p.open(`<div class="pl-2 border-l-2">`)
		p.open(`<div class="mb-2 border-b-2"><strong>MasterFiles</strong></div>`)
		p.masterFiles(doc.MasterFiles)
		p.close()
	}

	if doc.GeneralLedgerEntries != nil {
		p.open(`<div class="pl-2 border-l-2">`)
		p.open(`<div class="mb-2 border-b-2"><strong>GeneralLedgerEntries</strong></div>`)
		p.generalLedgerEntries(doc.GeneralLedgerEntries)
		p.close()
	}

	return p.b.String()
}

// =============================================================================
// PAGE BUILDER
// =============================================================================

type page struct {
	b  strings.Builder
	ix *indices
}

// open writes a raw fragment of markup. Text content must go through esc.
func (p *page) open(markup string) {
	p.b.WriteString(markup)
}

func (p *page) close() {
	p.b.WriteString("</div>")
}

func esc(s string) string {
	return html.EscapeString(s)
}

// kv writes one labelled value row. Used for the free-form remainder of
// every node; absent values are skipped by the *Opt variants.
func (p *page) kv(label, value string) {
	fmt.Fprintf(&p.b, "<div><strong>%s </strong>%s</div>", esc(label), esc(value))
}

func (p *page) kvOpt(label string, value *string) {
	if value != nil {
		p.kv(label, *value)
	}
}

func (p *page) kvDate(label string, value *types.Date) {
	if value != nil {
		p.kv(label, value.String())
	}
}

func (p *page) kvInt(label string, value *int) {
	if value != nil {
		p.kv(label, fmt.Sprintf("%d", *value))
	}
}

func (p *page) kvBool(label string, value *bool) {
	if value != nil {
		p.kv(label, types.FormatBool(*value))
	}
}

func (p *page) kvDecimal(label string, value *decimal.Decimal) {
	if value != nil {
		p.kv(label, formatAmount(*value))
	}
}

// nested opens an indented sub-block for one nested structure.
func (p *page) nested(body func()) {
	p.open(`<div class="mb-2 pl-2 border-l-2">`)
	body()
	p.close()
}

// =============================================================================
// VALUE FORMATTING
// =============================================================================

// formatAmount renders a decimal with space-grouped thousands, a comma
// separator and at least two fraction digits: -1234.5 becomes "-1 234,50".
func formatAmount(d decimal.Decimal) string {
	negative := d.IsNegative()
	intPart, fracPart, _ := strings.Cut(d.Abs().String(), ".")

	var grouped strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		grouped.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if grouped.Len() > 0 {
			grouped.WriteByte(' ')
		}
		grouped.WriteString(intPart[i : i+3])
	}

	for len(fracPart) < 2 {
		fracPart += "0"
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return sign + grouped.String() + "," + fracPart
}

// formatBalance renders a debit/credit pair as a single signed figure, the
// credit side negated. Both sides absent renders a dash.
func formatBalance(debit, credit *decimal.Decimal) string {
	switch {
	case debit != nil:
		return formatAmount(*debit)
	case credit != nil:
		return formatAmount(credit.Neg())
	default:
		return "-"
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// dash renders a possibly absent cell value.
func dash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func dashDate(d *types.Date) string {
	if d == nil {
		return "-"
	}
	return d.String()
}

func dashAmount(a *types.Amount) string {
	if a == nil {
		return "-"
	}
	return formatAmount(a.Amount)
}

// =============================================================================
// HEADER
// =============================================================================

func (p *page) header(h *types.Header) {
	p.kv("Audit file version", h.AuditFileVersion)
	p.kv("Audit file country", h.AuditFileCountry)
	p.kv("Audit file date created", h.AuditFileDateCreated.String())
	p.kv("Software company name", h.SoftwareCompanyName)
	p.kv("Software id", h.SoftwareID)
	p.kv("Software version", h.SoftwareVersion)
	p.open("<div><strong>Company </strong></div>")
	p.nested(func() { p.company(&h.Company) })
	p.kv("Default currency code", h.DefaultCurrencyCode)
	if h.SelectionCriteria != nil {
		p.open("<div><strong>Selection criteria </strong></div>")
		p.nested(func() { p.selectionCriteria(h.SelectionCriteria) })
	}
	p.kvOpt("Header comment", h.HeaderComment)
	p.kv("Tax accounting basis", h.TaxAccountingBasis)
	p.kvOpt("Tax entity", h.TaxEntity)
	p.kvOpt("User id", h.UserID)
	if h.AuditFileSender != nil {
		p.open("<div><strong>Audit file sender </strong></div>")
		p.nested(func() { p.company(h.AuditFileSender) })
	}
}

func (p *page) company(c *types.Company) {
	p.kvOpt("Registration number", c.RegistrationNumber)
	p.kv("Name", c.Name)
	for i := range c.Addresses {
		p.open("<div><strong>Address </strong></div>")
		p.nested(func() { p.address(&c.Addresses[i]) })
	}
	for i := range c.Contacts {
		p.open("<div><strong>Contact </strong></div>")
		p.nested(func() { p.contact(&c.Contacts[i]) })
	}
	for i := range c.TaxRegistrations {
		p.open("<div><strong>Tax registration </strong></div>")
		p.nested(func() { p.taxID(&c.TaxRegistrations[i]) })
	}
	for i := range c.BankAccounts {
		p.open("<div><strong>Bank account </strong></div>")
		p.nested(func() { p.bankAccount(&c.BankAccounts[i]) })
	}
}

func (p *page) address(a *types.Address) {
	p.kvOpt("Street name", a.StreetName)
	p.kvOpt("Number", a.Number)
	p.kvOpt("Additional address detail", a.AdditionalAddressDetail)
	p.kvOpt("Building", a.Building)
	p.kvOpt("City", a.City)
	p.kvOpt("Postal code", a.PostalCode)
	p.kvOpt("Region", a.Region)
	p.kvOpt("Country", a.Country)
	p.kvOpt("Address type", a.AddressType)
}

func (p *page) contact(c *types.Contact) {
	p.open("<div><strong>Contact person </strong></div>")
	p.nested(func() { p.personName(&c.ContactPerson) })
	p.kvOpt("Telephone", c.Telephone)
	p.kvOpt("Fax", c.Fax)
	p.kvOpt("Email", c.Email)
	p.kvOpt("Website", c.Website)
	p.kvOpt("Mobile phone", c.MobilePhone)
}

func (p *page) personName(n *types.PersonName) {
	p.kvOpt("Title", n.Title)
	p.kv("First name", n.FirstName)
	p.kvOpt("Initials", n.Initials)
	p.kvOpt("Last name prefix", n.LastNamePrefix)
	p.kv("Last name", n.LastName)
	p.kvOpt("Birth name", n.BirthName)
	p.kvOpt("Salutation", n.Salutation)
	if len(n.OtherTitles) > 0 {
		p.kv("Other titles", strings.Join(n.OtherTitles, ", "))
	}
}

func (p *page) taxID(t *types.TaxID) {
	p.kv("Tax registration number", t.TaxRegistrationNumber)
	p.kvOpt("Tax authority", t.TaxAuthority)
	p.kvDate("Tax verification date", t.TaxVerificationDate)
}

func (p *page) bankAccount(b *types.BankAccount) {
	p.kvOpt("Iban number", b.IBANNumber)
	p.kvOpt("Bank account number", b.BankAccountNumber)
	p.kvOpt("Bank account name", b.BankAccountName)
	p.kvOpt("Sort code", b.SortCode)
	p.kvOpt("Bic", b.BIC)
	p.kvOpt("Currency code", b.CurrencyCode)
	p.kvOpt("General ledger account id", b.GeneralLedgerAccountID)
}

func (p *page) selectionCriteria(s *types.SelectionCriteria) {
	p.kvOpt("Tax reporting jurisdiction", s.TaxReportingJurisdiction)
	p.kvOpt("Company entity", s.CompanyEntity)
	p.kvDate("Selection start date", s.SelectionStartDate)
	p.kvDate("Selection end date", s.SelectionEndDate)
	p.kvInt("Period start", s.PeriodStart)
	p.kvInt("Period start year", s.PeriodStartYear)
	p.kvInt("Period end", s.PeriodEnd)
	p.kvInt("Period end year", s.PeriodEndYear)
	p.kvOpt("Document type", s.DocumentType)
	if len(s.OtherCriteria) > 0 {
		p.kv("Other criterias", strings.Join(s.OtherCriteria, ", "))
	}
}

func (p *page) amount(label string, a *types.Amount) {
	if a == nil {
		return
	}
	p.open("<div><strong>" + esc(label) + " </strong></div>")
	p.nested(func() {
		p.kv("Amount", formatAmount(a.Amount))
		p.kvOpt("Currency code", a.CurrencyCode)
		p.kvDecimal("Currency amount", a.CurrencyAmount)
		if a.ExchangeRate != nil {
			p.kv("Exchange rate", a.ExchangeRate.String())
		}
	})
}

// =============================================================================
// MASTER FILES
// =============================================================================

func (p *page) masterFiles(mf *types.MasterFiles) {
	if mf.GeneralLedgerAccounts != nil {
		p.open("<strong>General ledger accounts</strong>")
		p.open(`<div class="pl-2 border-l-2">`)
		p.accountTable(mf.GeneralLedgerAccounts)
		p.close()
	}
	if mf.Customers != nil {
		p.open("<strong>Customers</strong>")
		p.open(`<div class="pl-2 border-l-2 flex flex-wrap">`)
		for i := range mf.Customers {
			p.customerCard(&mf.Customers[i])
		}
		p.close()
	}
	if mf.Suppliers != nil {
		p.open("<strong>Suppliers</strong>")
		p.open(`<div class="pl-2 border-l-2 flex flex-wrap">`)
		for i := range mf.Suppliers {
			p.supplierCard(&mf.Suppliers[i])
		}
		p.close()
	}
	if mf.TaxTable != nil {
		p.open("<strong>Tax table</strong>")
		p.open(`<div class="pl-2 border-l-2">`)
		p.taxTable(mf.TaxTable)
		p.close()
	}
	if mf.AnalysisTypeTable != nil {
		p.open("<strong>Analysis type table</strong>")
		p.open(`<div class="pl-2 border-l-2">`)
		p.analysisTypeTable(mf.AnalysisTypeTable)
		p.close()
	}
	if mf.Owners != nil {
		p.open("<strong>Owners</strong>")
		p.open(`<div class="pl-2 border-l-2">`)
		for i := range mf.Owners {
			p.ownerCard(&mf.Owners[i])
		}
		p.close()
	}
}

// accountTable annotates each row's standard account id with the matching
// national chart-of-accounts entry.
func (p *page) accountTable(accounts []types.Account) {
	p.open("<table><thead><tr>" +
		"<th>Id</th><th>Description</th><th>Std account</th>" +
		"<th>Opening balance</th><th>Closing balance</th><th>Rest</th>" +
		"</tr></thead><tbody>")
	for i := range accounts {
		account := &accounts[i]

		title := "Not found"
		if account.StandardAccountID != nil {
			if std, ok := norway.StdAccount(*account.StandardAccountID); ok {
				title = fmt.Sprintf("Account no %s\n%s\n%s",
					std.Number, std.DescriptionEN, std.DescriptionNO)
			}
		}

		p.open("<tr>")
		fmt.Fprintf(&p.b, "<td>%s</td>", esc(account.AccountID))
		fmt.Fprintf(&p.b, "<td>%s</td>", esc(account.AccountDescription))
		fmt.Fprintf(&p.b, `<td title="%s">%s</td>`, esc(title), esc(dash(account.StandardAccountID)))
		p.balanceCell(account.OpeningDebitBalance, account.OpeningCreditBalance)
		p.balanceCell(account.ClosingDebitBalance, account.ClosingCreditBalance)
		p.open(`<td class="pl-2"><div class="pl-2 border-l-2">`)
		p.kvOpt("Grouping category", account.GroupingCategory)
		p.kvOpt("Grouping code", account.GroupingCode)
		p.kv("Account type", account.AccountType)
		p.kvDate("Account creation date", account.AccountCreationDate)
		p.close()
		p.open("</td></tr>")
	}
	p.open("</tbody></table>")
}

func (p *page) balanceCell(debit, credit *decimal.Decimal) {
	p.open(`<td><div class="flex justify-between">`)
	if debit != nil {
		fmt.Fprintf(&p.b, "<span>Debit</span><span>%s</span>", esc(formatAmount(*debit)))
	}
	if credit != nil {
		fmt.Fprintf(&p.b, "<span>Credit</span><span>%s</span>", esc(formatAmount(credit.Neg())))
	}
	p.close()
	p.open("</td>")
}

func (p *page) customerCard(c *types.Customer) {
	p.open(`<div class="min-w-[20rem] max-w-[20rem] mr-8 mb-2"><div class="pl-2 border-l-2">`)
	p.open(`<span class="font-semibold">Customer</span>`)
	p.company(&c.Company)
	p.kv("Customer id", c.CustomerID)
	p.kvOpt("Self billing indicator", c.SelfBillingIndicator)
	p.kvOpt("Account id", c.AccountID)
	p.kvDecimal("Opening debit balance", c.OpeningDebitBalance)
	p.kvDecimal("Opening credit balance", c.OpeningCreditBalance)
	p.kvDecimal("Closing debit balance", c.ClosingDebitBalance)
	p.kvDecimal("Closing credit balance", c.ClosingCreditBalance)
	if c.PartyInfo != nil {
		p.open("<div><strong>Party info </strong></div>")
		p.nested(func() { p.partyInfo(c.PartyInfo) })
	}
	p.close()
	p.close()
}

func (p *page) supplierCard(s *types.Supplier) {
	p.open(`<div class="min-w-[20rem] max-w-[20rem] mr-8 mb-2"><div class="pl-2 border-l-2">`)
	p.open(`<span class="font-semibold">Supplier</span>`)
	p.company(&s.Company)
	p.kv("Supplier id", s.SupplierID)
	p.kvOpt("Self billing indicator", s.SelfBillingIndicator)
	p.kvOpt("Account id", s.AccountID)
	p.kvDecimal("Opening debit balance", s.OpeningDebitBalance)
	p.kvDecimal("Opening credit balance", s.OpeningCreditBalance)
	p.kvDecimal("Closing debit balance", s.ClosingDebitBalance)
	p.kvDecimal("Closing credit balance", s.ClosingCreditBalance)
	if s.PartyInfo != nil {
		p.open("<div><strong>Party info </strong></div>")
		p.nested(func() { p.partyInfo(s.PartyInfo) })
	}
	p.close()
	p.close()
}

func (p *page) ownerCard(o *types.Owner) {
	p.open(`<div class="mb-2 pl-2 border-l-2">`)
	p.company(&o.Company)
	p.kvOpt("Owner id", o.OwnerID)
	p.kvOpt("Account id", o.AccountID)
	p.close()
}

func (p *page) partyInfo(pi *types.PartyInfo) {
	if pi.PaymentTerms != nil {
		p.open("<div><strong>Payment terms </strong></div>")
		p.nested(func() {
			p.kvInt("Days", pi.PaymentTerms.Days)
			p.kvInt("Months", pi.PaymentTerms.Months)
			p.kvInt("Cash discount days", pi.PaymentTerms.CashDiscountDays)
			if pi.PaymentTerms.CashDiscountRate != nil {
				p.kv("Cash discount rate", pi.PaymentTerms.CashDiscountRate.String())
			}
			p.kvBool("Free billing month", pi.PaymentTerms.FreeBillingMonth)
		})
	}
	p.kvOpt("Nace code", pi.NaceCode)
	p.kvOpt("Currency code", pi.CurrencyCode)
	p.kvOpt("Type", pi.Type)
	p.kvOpt("Status", pi.Status)
	for i := range pi.Analyses {
		p.kv("Analysis", pi.Analyses[i].AnalysisType+" "+pi.Analyses[i].AnalysisID)
	}
	p.kvOpt("Notes", pi.Notes)
}

// taxTable annotates each detail row's standard tax code with the matching
// national VAT register entry.
func (p *page) taxTable(entries []types.TaxTableEntry) {
	p.open("<table><thead><tr>" +
		"<th>Tax code</th><th>Description</th><th>Country</th><th>Std code</th>" +
		`<th class="text-right">Tax %</th><th class="text-right">Base rate</th><th>rest</th>` +
		"</tr></thead><tbody>")
	for i := range entries {
		entry := &entries[i]
		for j := range entry.TaxCodeDetails {
			detail := &entry.TaxCodeDetails[j]

			title := "Not found"
			if vat, ok := norway.VatCode(detail.StandardTaxCode); ok {
				lines := []string{
					"Vat Code " + vat.Code,
					vat.DescriptionEN,
					vat.DescriptionNO,
					vat.TaxRate,
				}
				if vat.Compensation != nil && *vat.Compensation {
					lines = append(lines, "Can be used for compensation")
				}
				title = strings.Join(lines, "\n")
			}

			p.open("<tr>")
			fmt.Fprintf(&p.b, "<td>%s</td>", esc(detail.TaxCode))
			fmt.Fprintf(&p.b, "<td>%s</td>", esc(dash(detail.Description)))
			fmt.Fprintf(&p.b, "<td>%s</td>", esc(detail.Country))
			fmt.Fprintf(&p.b, `<td title="%s">%s</td>`, esc(title), esc(detail.StandardTaxCode))
			if detail.TaxPercentage != nil {
				fmt.Fprintf(&p.b, `<td class="text-right">%s</td>`, esc(detail.TaxPercentage.String()))
			} else {
				p.open(`<td class="text-right">-</td>`)
			}
			p.open(`<td class="text-right">`)
			for _, rate := range detail.BaseRates {
				fmt.Fprintf(&p.b, "<div>%s</div>", esc(rate.String()))
			}
			p.open("</td>")
			p.open(`<td class="pl-2"><div class="pl-2 border-l-2">`)
			p.kvDate("Effective date", detail.EffectiveDate)
			p.kvDate("Expiration date", detail.ExpirationDate)
			p.kvBool("Compensation", detail.Compensation)
			p.close()
			p.open("</td></tr>")
		}
	}
	p.open("</tbody></table>")
}

// analysisTypeTable rows carry fragment ids so journal lines can link to
// the analysis definition they reference.
func (p *page) analysisTypeTable(entries []types.AnalysisTypeTableEntry) {
	p.open("<table><thead><tr>" +
		"<th>Type</th><th>Type description</th><th>ID</th><th>ID Description</th><th>Rest</th>" +
		"</tr></thead><tbody>")
	for i := range entries {
		entry := &entries[i]
		fmt.Fprintf(&p.b, `<tr id="%s">`, esc(analysisHTMLID(entry.AnalysisID, entry.AnalysisType)))
		fmt.Fprintf(&p.b, "<td>%s</td>", esc(entry.AnalysisType))
		fmt.Fprintf(&p.b, "<td>%s</td>", esc(entry.AnalysisTypeDescription))
		fmt.Fprintf(&p.b, "<td>%s</td>", esc(entry.AnalysisID))
		fmt.Fprintf(&p.b, "<td>%s</td>", esc(entry.AnalysisIDDescription))
		p.open(`<td class="pl-2"><div class="pl-2 border-l-2">`)
		p.kvDate("Start date", entry.StartDate)
		p.kvDate("End date", entry.EndDate)
		p.kvOpt("Status", entry.Status)
		for j := range entry.Analyses {
			p.kv("Analysis", entry.Analyses[j].AnalysisType+" "+entry.Analyses[j].AnalysisID)
		}
		p.close()
		p.open("</td></tr>")
	}
	p.open("</tbody></table>")
}

// =============================================================================
// GENERAL LEDGER ENTRIES
// =============================================================================

func (p *page) generalLedgerEntries(g *types.GeneralLedgerEntries) {
	p.kv("Number of entries", fmt.Sprintf("%d", g.NumberOfEntries))
	p.kv("Total debit", formatAmount(g.TotalDebit))
	p.kv("Total credit", formatAmount(g.TotalCredit))
	for i := range g.Journals {
		p.journal(&g.Journals[i])
	}
}

func (p *page) journal(j *types.Journal) {
	p.open(`<div class="mb-2 pl-2 border-l-2">`)
	p.kv("Journal id", j.JournalID)
	p.kv("Description", j.Description)
	p.kv("Type", j.Type)
	for i := range j.Transactions {
		p.transaction(&j.Transactions[i])
	}
	p.close()
}

func (p *page) transaction(t *types.Transaction) {
	fmt.Fprintf(&p.b, `<div id="transaction-%s" class="mb-2 pl-2 border-l-2 flex">`, esc(t.TransactionID))

	p.open(`<div class="w-80">`)
	fmt.Fprintf(&p.b,
		`<a class="whitespace-pre underline underline-offset-1 hover:underline-offset-2 visited:underline-decoration-2" href="#transaction-%s">`,
		esc(t.TransactionID))
	fmt.Fprintf(&p.b, "<div><strong>Transaction id </strong>%s</div>", esc(t.TransactionID))
	p.open("</a>")
	p.open("<div>")
	p.kv("Period", fmt.Sprintf("%d", t.Period))
	p.kv("Period year", fmt.Sprintf("%d", t.PeriodYear))
	p.kv("Transaction date", t.TransactionDate.String())
	p.kvOpt("Source id", t.SourceID)
	p.kvOpt("Transaction type", t.TransactionType)
	p.kv("Description", t.Description)
	p.kvOpt("Batch id", t.BatchID)
	p.kv("System entry date", t.SystemEntryDate.String())
	p.kv("Gl posting date", t.GLPostingDate.String())
	p.kvOpt("System id", t.SystemID)
	p.close()
	p.close()

	p.open("<div><strong>Lines </strong>")
	p.linesTable(t.Lines)
	p.close()

	p.close()
}

func (p *page) linesTable(lines []types.Line) {
	p.open("<table><thead><tr>" +
		"<th>RecordID</th><th>AccountID</th><th>Analysis</th><th>ValueDate</th><th>Description</th>" +
		`<th class="text-right">Debit Amount</th><th class="text-right">Credit Amount</th><th>Rest</th>` +
		"</tr></thead><tbody>")
	for i := range lines {
		line := &lines[i]
		p.open("<tr>")
		fmt.Fprintf(&p.b, "<td>%s</td>", esc(line.RecordID))

		fmt.Fprintf(&p.b, `<td><div title="%s">%s</div></td>`,
			esc(p.ix.accountTitle(line.AccountID)), esc(line.AccountID))

		p.open("<td>")
		for j := range line.Analyses {
			a := &line.Analyses[j]
			label := esc(a.AnalysisType + " " + a.AnalysisID)
			title := esc(p.ix.analysisTitle(a.AnalysisID, a.AnalysisType))
			if anchor, ok := p.ix.analysisAnchor(a.AnalysisID, a.AnalysisType); ok {
				fmt.Fprintf(&p.b,
					`<div title="%s"><a class="whitespace-pre underline underline-offset-1 hover:underline-offset-2 visited:underline-decoration-2" href="#%s">%s</a></div>`,
					title, esc(anchor), label)
			} else {
				fmt.Fprintf(&p.b, `<div title="%s">%s</div>`, title, label)
			}
		}
		p.open("</td>")

		fmt.Fprintf(&p.b, "<td>%s</td>", esc(dashDate(line.ValueDate)))
		fmt.Fprintf(&p.b, "<td>%s</td>", esc(line.Description))
		fmt.Fprintf(&p.b, `<td class="text-right">%s</td>`, esc(dashAmount(line.DebitAmount)))
		fmt.Fprintf(&p.b, `<td class="text-right">%s</td>`, esc(dashAmount(line.CreditAmount)))

		p.open(`<td><div class="mb-2 pl-2 border-l-2">`)
		if line.CustomerID != nil {
			fmt.Fprintf(&p.b, `<div title="%s"><strong>Customer </strong>%s %s</div>`,
				esc(p.ix.customerTitle(*line.CustomerID)),
				esc(*line.CustomerID), esc(p.ix.customerName(*line.CustomerID)))
		}
		if line.SupplierID != nil {
			fmt.Fprintf(&p.b, `<div title="%s"><strong>Supplier </strong>%s %s</div>`,
				esc(p.ix.supplierTitle(*line.SupplierID)),
				esc(*line.SupplierID), esc(p.ix.supplierName(*line.SupplierID)))
		}
		p.kvOpt("Source document id", line.SourceDocumentID)
		for j := range line.TaxInformation {
			p.taxInformation(&line.TaxInformation[j])
		}
		p.kvOpt("Reference number", line.ReferenceNumber)
		p.kvOpt("Cid", line.CID)
		p.kvDate("Due date", line.DueDate)
		if line.Quantity != nil {
			p.kv("Quantity", line.Quantity.String())
		}
		p.kvOpt("Cross reference", line.CrossReference)
		if line.SystemEntryTime != nil {
			p.kv("System entry time", line.SystemEntryTime.String())
		}
		p.kvOpt("Owner id", line.OwnerID)
		p.close()
		p.open("</td></tr>")
	}
	p.open("</tbody></table>")
}

func (p *page) taxInformation(t *types.TaxInformation) {
	p.open("<div><strong>Tax information </strong></div>")
	p.nested(func() {
		p.kvOpt("Tax type", t.TaxType)
		p.kvOpt("Tax code", t.TaxCode)
		if t.TaxPercentage != nil {
			p.kv("Tax percentage", t.TaxPercentage.String())
		}
		p.kvOpt("Country", t.Country)
		if t.TaxBase != nil {
			p.kv("Tax base", t.TaxBase.String())
		}
		p.kvOpt("Tax base description", t.TaxBaseDescription)
		p.amount("Tax amount", &t.TaxAmount)
		p.kvOpt("Tax exemption reason", t.TaxExemptionReason)
		p.kvOpt("Tax declaration period", t.TaxDeclarationPeriod)
	})
}
