package nfe_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestaoloja/estoque-api/internal/domain"
	"github.com/gestaoloja/estoque-api/internal/infrastructure/nfe"
)

// XML mínimo no layout 4.00 com dois itens.
const nfeXML = `<?xml version="1.0" encoding="UTF-8"?>
<nfeProc xmlns="http://www.portalfiscal.inf.br/nfe">
  <NFe>
    <infNFe Id="NFe35260312345678000190550010000123451000123456" versao="4.00">
      <ide>
        <nNF>12345</nNF>
        <dhEmi>2026-03-05T10:30:00-03:00</dhEmi>
      </ide>
      <emit>
        <xNome>Distribuidora Central LTDA</xNome>
      </emit>
      <det nItem="1">
        <prod>
          <cProd>CAFE-500</cProd>
          <xProd>Café Torrado 500g</xProd>
          <qCom>24.0000</qCom>
        </prod>
      </det>
      <det nItem="2">
        <prod>
          <cProd>ACUCAR-1K</cProd>
          <xProd>Açúcar Cristal 1kg</xProd>
          <qCom>12.5000</qCom>
        </prod>
      </det>
    </infNFe>
  </NFe>
</nfeProc>`

// XML no layout legado (dEmi só com a data).
const nfeXMLLegado = `<?xml version="1.0" encoding="UTF-8"?>
<NFe>
  <infNFe versao="2.00">
    <ide>
      <nNF>777</nNF>
      <dEmi>2026-03-05</dEmi>
    </ide>
    <emit><xNome>Fornecedor Legado</xNome></emit>
    <det nItem="1">
      <prod>
        <cProd>SKU-1</cProd>
        <xProd>Item Único</xProd>
        <qCom>1</qCom>
      </prod>
    </det>
  </infNFe>
</NFe>`

func TestParse_Layout400(t *testing.T) {
	invoice, err := nfe.NewParser().Parse([]byte(nfeXML))
	require.NoError(t, err)

	assert.Equal(t, "12345", invoice.Number)
	assert.Equal(t, "Distribuidora Central LTDA", invoice.Supplier)
	assert.Equal(t, 2026, invoice.IssuedAt.Year())
	assert.Equal(t, 5, invoice.IssuedAt.Day())

	require.Len(t, invoice.Items, 2)
	assert.Equal(t, "CAFE-500", invoice.Items[0].Code)
	assert.Equal(t, "Café Torrado 500g", invoice.Items[0].Description)
	assert.True(t, invoice.Items[0].Quantity.Equal(decimal.RequireFromString("24.0000")))
	assert.True(t, invoice.Items[1].Quantity.Equal(decimal.RequireFromString("12.5000")))
}

func TestParse_LayoutLegadoComDEmi(t *testing.T) {
	invoice, err := nfe.NewParser().Parse([]byte(nfeXMLLegado))
	require.NoError(t, err)

	assert.Equal(t, "777", invoice.Number)
	require.Len(t, invoice.Items, 1)
	assert.Equal(t, "SKU-1", invoice.Items[0].Code)
}

// Data de emissão malformada ou ausente: a nota é rejeitada com
// DateParseError, nunca importada com data inventada.
func TestParse_DataDeEmissaoInvalida(t *testing.T) {
	casos := map[string]string{
		"formato brasileiro": `<NFe><infNFe><ide><nNF>1</nNF><dhEmi>05/03/2026</dhEmi></ide></infNFe></NFe>`,
		"sem data":           `<NFe><infNFe><ide><nNF>1</nNF></ide></infNFe></NFe>`,
	}
	for nome, xml := range casos {
		_, err := nfe.NewParser().Parse([]byte(xml))
		var dateErr *domain.DateParseError
		assert.ErrorAs(t, err, &dateErr, nome)
	}
}

func TestParse_XMLInvalido(t *testing.T) {
	_, err := nfe.NewParser().Parse([]byte("isto não é XML <"))
	assert.Error(t, err)
}

func TestParse_SemInfNFe(t *testing.T) {
	_, err := nfe.NewParser().Parse([]byte(`<outro><documento/></outro>`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParse_QuantidadeInvalida(t *testing.T) {
	xml := `<NFe><infNFe>
	  <ide><nNF>1</nNF><dEmi>2026-03-05</dEmi></ide>
	  <det><prod><cProd>SKU-1</cProd><xProd>Item</xProd><qCom>abc</qCom></prod></det>
	</infNFe></NFe>`
	_, err := nfe.NewParser().Parse([]byte(xml))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
