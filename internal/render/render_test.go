package render

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dodoas/saft-go/pkg/saft/types"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func construct(t *testing.T, raw types.Raw) *types.AuditFile {
	t.Helper()
	doc, err := types.Construct(types.ProfileStrict, raw)
	require.NoError(t, err)
	return doc
}

func baseRaw() types.Raw {
	return types.Raw{
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
}

func singleLineRaw(line types.Raw) types.Raw {
	raw := baseRaw()
	raw["general_ledger_entries"] = types.Raw{
		"number_of_entries": "1",
		"total_debit":       "100.00",
		"total_credit":      "100.00",
		"journals": []any{types.Raw{
			"journal_id":  "1",
			"description": "Hovedbok",
			"type":        "GL",
			"transactions": []any{types.Raw{
				"transaction_id":    "101",
				"period":            "1",
				"period_year":       "2020",
				"transaction_date":  "2020-01-15",
				"description":       "Sale",
				"system_entry_date": "2020-01-15",
				"gl_posting_date":   "2020-01-15",
				"lines":             []any{line},
			}},
		}},
	}
	return raw
}

// =============================================================================
// VALUE FORMATTING
// =============================================================================

func TestFormatAmount(t *testing.T) {
	cases := map[string]string{
		"0":           "0,00",
		"5":           "5,00",
		"598":         "598,00",
		"1234.5":      "1 234,50",
		"1234567.89":  "1 234 567,89",
		"-1234.5":     "-1 234,50",
		"0.123":       "0,123",
		"100000":      "100 000,00",
		"-0.5":        "-0,50",
	}
	for input, want := range cases {
		assert.Equal(t, want, formatAmount(dec(t, input)), "input %s", input)
	}
}

func TestFormatBalance(t *testing.T) {
	debit := dec(t, "1000")
	credit := dec(t, "250.5")

	assert.Equal(t, "1 000,00", formatBalance(&debit, nil))
	assert.Equal(t, "-250,50", formatBalance(nil, &credit))
	assert.Equal(t, "-", formatBalance(nil, nil))
}

// =============================================================================
// RENDERING
// =============================================================================

func TestRenderHeader(t *testing.T) {
	out := Render(construct(t, baseRaw()))

	assert.Contains(t, out, "<strong>Header</strong>")
	assert.Contains(t, out, "<strong>Audit file version </strong>1.0")
	assert.Contains(t, out, "<strong>Registration number </strong>999999999")
	assert.Contains(t, out, "<strong>First name </strong>Ola")
	// Absent optionals are skipped, not rendered empty.
	assert.NotContains(t, out, "Header comment")
	assert.NotContains(t, out, "MasterFiles")
	assert.NotContains(t, out, "GeneralLedgerEntries")
}

func TestRenderEscapesText(t *testing.T) {
	raw := baseRaw()
	raw["header"].(types.Raw)["company"].(types.Raw)["name"] = `Smith & <Sons> "AS"`

	out := Render(construct(t, raw))
	assert.Contains(t, out, "Smith &amp; &lt;Sons&gt; &#34;AS&#34;")
	assert.NotContains(t, out, "<Sons>")
}

func TestRenderAccountTableWithStandardAccountAnnotation(t *testing.T) {
	raw := baseRaw()
	raw["master_files"] = types.Raw{
		"general_ledger_accounts": []any{
			types.Raw{
				"account_id":             "1920",
				"account_description":    "Bankinnskudd",
				"standard_account_id":    "19",
				"account_type":           "GL",
				"opening_debit_balance":  "1000.00",
				"closing_credit_balance": "250.50",
			},
			types.Raw{
				"account_id":            "9999",
				"account_description":   "Mystery",
				"standard_account_id":   "977",
				"account_type":          "GL",
				"opening_debit_balance": "0.00",
				"closing_debit_balance": "0.00",
			},
		},
	}

	out := Render(construct(t, raw))
	assert.Contains(t, out, "Bankinnskudd, kontanter og lignende")
	assert.Contains(t, out, `title="Not found"`)
	assert.Contains(t, out, "<span>Debit</span><span>1 000,00</span>")
	assert.Contains(t, out, "<span>Credit</span><span>-250,50</span>")
}

func TestRenderTaxTableWithVatAnnotation(t *testing.T) {
	raw := baseRaw()
	raw["master_files"] = types.Raw{
		"tax_table": []any{types.Raw{
			"tax_type":    "MVA",
			"description": "Merverdiavgift",
			"tax_code_details": []any{types.Raw{
				"tax_code":          "21",
				"country":           "NO",
				"standard_tax_code": "21",
				"base_rates":        []any{"100"},
			}},
		}},
	}

	out := Render(construct(t, raw))
	assert.Contains(t, out, "Basis on import of goods")
	assert.Contains(t, out, "Can be used for compensation")
}

func TestRenderAnalysisTableRowAnchors(t *testing.T) {
	raw := baseRaw()
	raw["master_files"] = types.Raw{
		"analysis_type_table": []any{types.Raw{
			"analysis_type":             "A",
			"analysis_type_description": "Avdeling",
			"analysis_id":               "10",
			"analysis_id_description":   "Salg",
		}},
	}

	out := Render(construct(t, raw))
	assert.Contains(t, out, `id="analysis-A-10"`)
}

func TestRenderLineAnnotationsResolve(t *testing.T) {
	raw := singleLineRaw(types.Raw{
		"record_id":   "1",
		"account_id":  "1920",
		"description": "Payment",
		"customer_id": "501",
		"analyses": []any{types.Raw{
			"analysis_type": "A",
			"analysis_id":   "10",
		}},
		"debit_amount": types.Raw{"amount": "100.00"},
	})
	raw["master_files"] = types.Raw{
		"general_ledger_accounts": []any{types.Raw{
			"account_id":             "1920",
			"account_description":    "Bankinnskudd",
			"account_type":           "GL",
			"opening_debit_balance":  "1000.00",
			"closing_credit_balance": "250.50",
		}},
		"customers": []any{types.Raw{
			"name":        "Kunde AS",
			"addresses":   []any{types.Raw{}},
			"customer_id": "501",
		}},
		"analysis_type_table": []any{types.Raw{
			"analysis_type":             "A",
			"analysis_type_description": "Avdeling",
			"analysis_id":               "10",
			"analysis_id_description":   "Salg",
		}},
	}

	out := Render(construct(t, raw))
	assert.Contains(t, out, `id="transaction-101"`)
	assert.Contains(t, out, "1920 Bankinnskudd")
	assert.Contains(t, out, "opening balance 1 000,00")
	assert.Contains(t, out, "closing balance -250,50")
	assert.Contains(t, out, "Kunde AS")
	assert.Contains(t, out, `href="#analysis-A-10"`)
	assert.Contains(t, out, "Avdeling")
}

// Dangling references render with a not-found annotation, never an error.
func TestRenderDanglingReferences(t *testing.T) {
	raw := singleLineRaw(types.Raw{
		"record_id":   "1",
		"account_id":  "4242",
		"description": "Payment",
		"customer_id": "501",
		"supplier_id": "601",
		"analyses": []any{types.Raw{
			"analysis_type": "X",
			"analysis_id":   "0",
		}},
		"debit_amount": types.Raw{"amount": "100.00"},
	})

	out := Render(construct(t, raw))
	assert.Contains(t, out, "Could not find account")
	assert.Contains(t, out, "Could not find customer")
	assert.Contains(t, out, "Could not find supplier")
	assert.Contains(t, out, "Could not find analysis")
	assert.Contains(t, out, "Not found in Customers block")
	assert.Contains(t, out, "Not found in Suppliers block")
	assert.NotContains(t, out, `href="#analysis-X-0"`)
}

func TestRenderTitleAttributeMarkup(t *testing.T) {
	raw := singleLineRaw(types.Raw{
		"record_id":   "1",
		"account_id":  "9999",
		"description": "Payment",
		"customer_id": "C1",
		"supplier_id": "S1",
		"analyses": []any{types.Raw{
			"analysis_type": "X",
			"analysis_id":   "0",
		}},
		"debit_amount": types.Raw{"amount": "100.00"},
	})
	raw["master_files"] = types.Raw{
		"general_ledger_accounts": []any{types.Raw{
			"account_id":          "1500",
			"account_description": "Kundefordringer",
			"standard_account_id": "0000",
			"account_type":        "GL",
		}},
		"tax_table": []any{types.Raw{
			"tax_type":    "MVA",
			"description": "Merverdiavgift",
			"tax_code_details": []any{types.Raw{
				"tax_code":          "3",
				"country":           "NO",
				"standard_tax_code": "999",
				"base_rates":        []any{"100"},
			}},
		}},
		"analysis_type_table": []any{types.Raw{
			"analysis_type":             "A",
			"analysis_type_description": "Avdeling",
			"analysis_id":               "10",
			"analysis_id_description":   "Salg",
		}},
	}

	out := Render(construct(t, raw))

	// Annotation titles are double-quoted HTML attributes wrapping the
	// annotated value, in tables and in journal line cells alike.
	assert.Contains(t, out, `<td title="Not found">0000</td>`)
	assert.Contains(t, out, `<td title="Not found">999</td>`)
	assert.Contains(t, out, `<tr id="analysis-A-10">`)
	assert.Contains(t, out, `<td><div title="Could not find account">9999</div></td>`)
	assert.Contains(t, out, `<div title="Could not find analysis">X 0</div>`)
	assert.Contains(t, out,
		`<div title="Could not find customer"><strong>Customer </strong>C1 Not found in Customers block</div>`)
	assert.Contains(t, out,
		`<div title="Could not find supplier"><strong>Supplier </strong>S1 Not found in Suppliers block</div>`)
}

func TestRenderAbsentCellValuesAsDash(t *testing.T) {
	raw := singleLineRaw(types.Raw{
		"record_id":     "1",
		"account_id":    "1920",
		"description":   "Payment",
		"credit_amount": types.Raw{"amount": "100.00"},
	})

	out := Render(construct(t, raw))
	// No value date and no debit amount on the line.
	assert.Contains(t, out, "<td>-</td>")
	assert.Contains(t, out, `<td class="text-right">-</td>`)
	assert.Contains(t, out, `<td class="text-right">100,00</td>`)
}

func TestCSSIsEmbedded(t *testing.T) {
	css := CSS()
	assert.Contains(t, css, "table")
	assert.True(t, strings.Contains(css, ".pl-2"))
}
