package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dodoas/saft-go/pkg/saft/types"
)

const headerOnlyXML = `<?xml version="1.0" encoding="UTF-8"?>
<AuditFile xmlns="urn:StandardAuditFile-Taxation-Financial:NO">
  <Header>
    <AuditFileVersion>1.0</AuditFileVersion>
    <AuditFileCountry>NO</AuditFileCountry>
    <AuditFileDateCreated>2020-01-01</AuditFileDateCreated>
    <SoftwareCompanyName>Fiken AS</SoftwareCompanyName>
    <SoftwareID>Fiken</SoftwareID>
    <SoftwareVersion>1.0</SoftwareVersion>
    <Company>
      <RegistrationNumber>999999999</RegistrationNumber>
      <Name>Example Company</Name>
      <Address/>
      <Contact>
        <ContactPerson>
          <FirstName>Ola</FirstName>
          <LastName>Nordmann</LastName>
        </ContactPerson>
      </Contact>
    </Company>
    <DefaultCurrencyCode>NOK</DefaultCurrencyCode>
    <TaxAccountingBasis>A</TaxAccountingBasis>
  </Header>
</AuditFile>`

func TestParseHeaderOnlyDocument(t *testing.T) {
	raw, err := Parse(strings.NewReader(headerOnlyXML))
	require.NoError(t, err)

	want := types.Raw{
		"header": types.Raw{
			"audit_file_version":      "1.0",
			"audit_file_country":      "NO",
			"audit_file_date_created": "2020-01-01",
			"software_company_name":   "Fiken AS",
			"software_id":             "Fiken",
			"software_version":        "1.0",
			"company": types.Raw{
				"registration_number": "999999999",
				"name":                "Example Company",
				"addresses":           []any{types.Raw{}},
				"contacts": []any{types.Raw{
					"contact_person": types.Raw{
						"first_name": "Ola",
						"last_name":  "Nordmann",
					},
				}},
			},
			"default_currency_code": "NOK",
			"tax_accounting_basis":  "A",
		},
	}
	assert.Equal(t, want, raw)
}

func TestParseIgnoresNamespacePrefix(t *testing.T) {
	prefixed := strings.ReplaceAll(headerOnlyXML, "<AuditFile xmlns=", "<n:AuditFile xmlns:n=")
	prefixed = strings.ReplaceAll(prefixed, "</AuditFile>", "</n:AuditFile>")
	// Go's decoder resolves child names through the default namespace, so
	// only the root needs the prefix for this to be a different document.
	raw, err := Parse(strings.NewReader(prefixed))
	require.NoError(t, err)
	assert.Contains(t, raw, "header")
}

func TestParseOmitsAbsentOptionals(t *testing.T) {
	raw, err := Parse(strings.NewReader(headerOnlyXML))
	require.NoError(t, err)

	header := raw["header"].(types.Raw)
	assert.NotContains(t, header, "header_comment")
	assert.NotContains(t, header, "selection_criteria")
	assert.NotContains(t, header, "audit_file_sender")
	assert.NotContains(t, raw, "master_files")
	assert.NotContains(t, raw, "general_ledger_entries")

	company := header["company"].(types.Raw)
	assert.NotContains(t, company, "tax_registrations")
	assert.NotContains(t, company, "bank_accounts")
}

func TestParseSkipsNotInUseElements(t *testing.T) {
	doc := `<AuditFile xmlns="urn:StandardAuditFile-Taxation-Financial:NO">
  <Header><AuditFileVersion>1.0</AuditFileVersion></Header>
  <MasterFiles>
    <GeneralLedgerAccounts>
      <Account>
        <AccountID>1920</AccountID>
        <AccountDescription>Bank</AccountDescription>
        <AccountType>GL</AccountType>
      </Account>
    </GeneralLedgerAccounts>
    <Taxonomies><Taxonomy><TaxonomyReference>NO</TaxonomyReference></Taxonomy></Taxonomies>
    <UOMTable><UOMTableEntry/></UOMTable>
    <MovementTypeTable/>
    <Products/>
    <PhysicalStock/>
    <Assets/>
  </MasterFiles>
</AuditFile>`

	raw, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)

	mf := raw["master_files"].(types.Raw)
	assert.Contains(t, mf, "general_ledger_accounts")
	assert.NotContains(t, mf, "taxonomies")
	assert.NotContains(t, mf, "uom_table")
	assert.NotContains(t, mf, "products")
	assert.Len(t, mf, 1)
}

func TestParseTransactionLevelPartyIDsAreSkipped(t *testing.T) {
	doc := `<AuditFile xmlns="urn:StandardAuditFile-Taxation-Financial:NO">
  <GeneralLedgerEntries>
    <NumberOfEntries>1</NumberOfEntries>
    <TotalDebit>100.00</TotalDebit>
    <TotalCredit>100.00</TotalCredit>
    <Journal>
      <JournalID>1</JournalID>
      <Description>Ledger</Description>
      <Type>GL</Type>
      <Transaction>
        <TransactionID>1</TransactionID>
        <CustomerID>501</CustomerID>
        <SupplierID>601</SupplierID>
        <Line>
          <RecordID>1</RecordID>
          <AccountID>1920</AccountID>
          <CustomerID>501</CustomerID>
          <Description>Payment</Description>
          <DebitAmount><Amount>100.00</Amount></DebitAmount>
        </Line>
      </Transaction>
    </Journal>
  </GeneralLedgerEntries>
</AuditFile>`

	raw, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)

	gle := raw["general_ledger_entries"].(types.Raw)
	tx := gle["journals"].([]any)[0].(types.Raw)["transactions"].([]any)[0].(types.Raw)
	assert.NotContains(t, tx, "customer_id")
	assert.NotContains(t, tx, "supplier_id")

	line := tx["lines"].([]any)[0].(types.Raw)
	assert.Equal(t, "501", line["customer_id"])
	assert.Equal(t, types.Raw{"amount": "100.00"}, line["debit_amount"])
}

func TestParseUnknownElementsPassSilently(t *testing.T) {
	doc := `<AuditFile><Header><AuditFileVersion>1.0</AuditFileVersion><Banana>yellow</Banana></Header></AuditFile>`
	raw, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	header := raw["header"].(types.Raw)
	assert.Equal(t, types.Raw{"audit_file_version": "1.0"}, header)
}

func TestParseMalformedXML(t *testing.T) {
	inputs := []string{
		"",
		"<AuditFile>",
		"<AuditFile></Mismatch>",
		"not xml at all",
	}
	for _, input := range inputs {
		_, err := Parse(strings.NewReader(input))
		assert.ErrorIs(t, err, ErrMalformedXML, "input %q", input)
	}
}

func TestParseRejectsTrailingDocumentElement(t *testing.T) {
	_, err := Parse(strings.NewReader("<AuditFile/><AuditFile/>"))
	assert.ErrorIs(t, err, ErrMalformedXML)
}

func TestParseAllowsTrailingWhitespaceAndComments(t *testing.T) {
	_, err := Parse(strings.NewReader("<AuditFile/>\n<!-- end -->\n"))
	assert.NoError(t, err)
}
