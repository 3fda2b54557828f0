package saft

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dodoas/saft-go/internal/scribe"
	"github.com/dodoas/saft-go/pkg/saft/types"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
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
  <MasterFiles>
    <GeneralLedgerAccounts>
      <Account>
        <AccountID>1920</AccountID>
        <AccountDescription>Bankinnskudd</AccountDescription>
        <AccountType>GL</AccountType>
        <OpeningDebitBalance>1000.00</OpeningDebitBalance>
        <ClosingDebitBalance>1250.00</ClosingDebitBalance>
      </Account>
    </GeneralLedgerAccounts>
  </MasterFiles>
  <GeneralLedgerEntries>
    <NumberOfEntries>1</NumberOfEntries>
    <TotalDebit>250.00</TotalDebit>
    <TotalCredit>250.00</TotalCredit>
    <Journal>
      <JournalID>1</JournalID>
      <Description>Hovedbok</Description>
      <Type>GL</Type>
      <Transaction>
        <TransactionID>101</TransactionID>
        <Period>1</Period>
        <PeriodYear>2020</PeriodYear>
        <TransactionDate>2020-01-15</TransactionDate>
        <Description>Sale</Description>
        <SystemEntryDate>2020-01-15</SystemEntryDate>
        <GLPostingDate>2020-01-15</GLPostingDate>
        <Line>
          <RecordID>1</RecordID>
          <AccountID>1920</AccountID>
          <Description>Payment</Description>
          <DebitAmount>
            <Amount>250.00</Amount>
          </DebitAmount>
        </Line>
      </Transaction>
    </Journal>
  </GeneralLedgerEntries>
</AuditFile>
`

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument([]byte(sampleXML))
	require.NoError(t, err)

	assert.Equal(t, types.ProfileStrict, doc.Profile())
	assert.Equal(t, "Example Company", doc.Header.Company.Name)
	require.NotNil(t, doc.MasterFiles)
	require.Len(t, doc.MasterFiles.GeneralLedgerAccounts, 1)
	assert.Equal(t, "1920", doc.MasterFiles.GeneralLedgerAccounts[0].AccountID)
	require.NotNil(t, doc.GeneralLedgerEntries)
	assert.Equal(t, 1, doc.GeneralLedgerEntries.NumberOfEntries)
}

func TestParseDocumentAsProfile(t *testing.T) {
	// A 23-rune journal ID overflows the 18-rune bound.
	long := strings.Replace(sampleXML,
		"<JournalID>1</JournalID>",
		"<JournalID>J-123456789012345678901</JournalID>", 1)

	_, err := ParseDocumentAs(types.ProfileStrict, []byte(long))
	var cerr *types.ConstraintError
	require.ErrorAs(t, err, &cerr)

	doc, err := ParseDocumentAs(types.ProfileRelaxed, []byte(long))
	require.NoError(t, err)
	assert.Equal(t, types.ProfileRelaxed, doc.Profile())
	assert.Equal(t, "J-123456789012345678901",
		doc.GeneralLedgerEntries.Journals[0].JournalID)

	doc, err = ParseDocumentAs(types.ProfileSliced, []byte(long))
	require.NoError(t, err)
	assert.Equal(t, "J-1234567890123456", doc.GeneralLedgerEntries.Journals[0].JournalID)
}

func TestParseDocumentMalformed(t *testing.T) {
	_, err := ParseDocument([]byte("<AuditFile><Header></AuditFile>"))
	assert.Error(t, err)
}

func TestWriteDocumentRoundTrip(t *testing.T) {
	doc, err := ParseDocument([]byte(sampleXML))
	require.NoError(t, err)

	out, err := WriteDocument(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte(`<?xml version="1.0" encoding="UTF-8"?>`)))
	assert.Contains(t, string(out), `xmlns="urn:StandardAuditFile-Taxation-Financial:NO"`)

	doc2, err := ParseDocument(out)
	require.NoError(t, err)
	assert.Equal(t, doc, doc2)
}

func TestWriteDocumentWithOptions(t *testing.T) {
	doc, err := ParseDocument([]byte(sampleXML))
	require.NoError(t, err)

	out, err := WriteDocumentWith(doc, WriteOptions{Indent: "", IncludeXMLDeclaration: false})
	require.NoError(t, err)
	assert.False(t, bytes.Contains(out, []byte("<?xml")))
	assert.Equal(t, 1, bytes.Count(out, []byte("\n")))
}

func TestWriteDocumentRejectsHandBuilt(t *testing.T) {
	_, err := WriteDocument(&types.AuditFile{})
	assert.ErrorIs(t, err, scribe.ErrNotConstructed)
}

func TestValidateDocument(t *testing.T) {
	result := ValidateDocument([]byte(sampleXML))
	assert.True(t, result.Valid, "violations: %v", result.Errors)
	assert.Empty(t, result.Errors)
}

func TestValidateDocumentInvalid(t *testing.T) {
	// Missing DefaultCurrencyCode in the header.
	broken := strings.Replace(sampleXML,
		"<DefaultCurrencyCode>NOK</DefaultCurrencyCode>\n", "", 1)

	result := ValidateDocument([]byte(broken))
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Errors)
}

func TestValidateDocumentMalformed(t *testing.T) {
	result := ValidateDocument([]byte("not xml"))
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Errors)
}

func TestRenderReport(t *testing.T) {
	doc, err := ParseDocument([]byte(sampleXML))
	require.NoError(t, err)

	report := RenderReport(doc)
	assert.Contains(t, report, "Example Company")
	assert.Contains(t, report, `id="transaction-101"`)
	assert.NotEmpty(t, ReportCSS())
}

func TestExportWorkbook(t *testing.T) {
	doc, err := ParseDocument([]byte(sampleXML))
	require.NoError(t, err)

	data, err := ExportWorkbook(doc)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	id, err := f.GetCellValue("Accounts", "A2")
	require.NoError(t, err)
	assert.Equal(t, "1920", id)
}
