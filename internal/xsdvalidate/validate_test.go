package xsdvalidate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validHeader = `<Header>
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
  </Header>`

func wrap(body string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<AuditFile xmlns="urn:StandardAuditFile-Taxation-Financial:NO">
  ` + body + `
</AuditFile>`
}

func TestValidateHeaderOnlyDocument(t *testing.T) {
	result, err := ValidateBytes([]byte(wrap(validHeader)))
	require.NoError(t, err)
	assert.True(t, result.Valid, "violations: %v", result.Errors)
	assert.Empty(t, result.Errors)
}

func TestValidateAccountWithBalances(t *testing.T) {
	doc := wrap(validHeader + `
  <MasterFiles>
    <GeneralLedgerAccounts>
      <Account>
        <AccountID>1920</AccountID>
        <AccountDescription>Bank</AccountDescription>
        <AccountType>GL</AccountType>
        <OpeningDebitBalance>1000.00</OpeningDebitBalance>
        <ClosingCreditBalance>250.50</ClosingCreditBalance>
      </Account>
    </GeneralLedgerAccounts>
  </MasterFiles>`)

	result, err := ValidateBytes([]byte(doc))
	require.NoError(t, err)
	assert.True(t, result.Valid, "violations: %v", result.Errors)
}

// An account must pick one side of each balance choice; leaving the
// closing balance out entirely is a schema violation.
func TestValidateAccountMissingClosingBalance(t *testing.T) {
	doc := wrap(validHeader + `
  <MasterFiles>
    <GeneralLedgerAccounts>
      <Account>
        <AccountID>1920</AccountID>
        <AccountDescription>Bank</AccountDescription>
        <AccountType>GL</AccountType>
        <OpeningDebitBalance>1000.00</OpeningDebitBalance>
      </Account>
    </GeneralLedgerAccounts>
  </MasterFiles>`)

	result, err := ValidateBytes([]byte(doc))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Errors)
}

func TestValidateMissingRequiredHeaderField(t *testing.T) {
	broken := strings.Replace(validHeader, "<DefaultCurrencyCode>NOK</DefaultCurrencyCode>", "", 1)
	result, err := ValidateBytes([]byte(wrap(broken)))
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestValidateOverlongCode(t *testing.T) {
	broken := strings.Replace(validHeader, ">1.0</AuditFileVersion>", ">1.00000000000</AuditFileVersion>", 1)
	result, err := ValidateBytes([]byte(wrap(broken)))
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestValidateNotInUseTablesAccepted(t *testing.T) {
	doc := wrap(validHeader + `
  <MasterFiles>
    <Taxonomies><Taxonomy><Anything>at all</Anything></Taxonomy></Taxonomies>
  </MasterFiles>`)

	result, err := ValidateBytes([]byte(doc))
	require.NoError(t, err)
	assert.True(t, result.Valid, "violations: %v", result.Errors)
}

// Malformed input is an invalid document, never a Go error.
func TestValidateMalformedXML(t *testing.T) {
	result, err := ValidateBytes([]byte("<AuditFile>"))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Errors)
}

func TestValidateWrongRootElement(t *testing.T) {
	result, err := ValidateBytes([]byte(`<Invoice xmlns="urn:StandardAuditFile-Taxation-Financial:NO"/>`))
	require.NoError(t, err)
	assert.False(t, result.Valid)
}
