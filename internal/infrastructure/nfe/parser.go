// Package nfe interpreta XMLs de NF-e (Nota Fiscal eletrônica) de entrada
// para importação de estoque.
package nfe

import (
	"fmt"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/gestaoloja/estoque-api/internal/application/inventory"
	"github.com/gestaoloja/estoque-api/internal/domain"
)

var _ inventory.NFEParser = (*Parser)(nil)

// Parser lê o layout 4.00 (dhEmi) e aceita o legado 2.00/3.10 (dEmi).
type Parser struct{}

// NewParser constrói o parser.
func NewParser() *Parser {
	return &Parser{}
}

// Formatos de data de emissão: dhEmi (RFC3339) e dEmi legado (só a data).
var emissionLayouts = []string{time.RFC3339, "2006-01-02"}

// Parse extrai número, emitente, data de emissão e itens (det/prod) do XML.
// Data de emissão malformada ou ausente devolve domain.DateParseError:
// nota sem data confiável não entra no razão.
func (p *Parser) Parse(data []byte) (*inventory.NFEInvoice, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("ler XML da NF-e: %w", err)
	}
	inf := doc.FindElement("//infNFe")
	if inf == nil {
		return nil, fmt.Errorf("XML sem infNFe: %w", domain.ErrInvalidInput)
	}

	rawDate := textOf(inf, "ide/dhEmi")
	if rawDate == "" {
		rawDate = textOf(inf, "ide/dEmi")
	}
	issuedAt, err := parseEmissionDate(rawDate)
	if err != nil {
		return nil, err
	}

	invoice := &inventory.NFEInvoice{
		Number:   textOf(inf, "ide/nNF"),
		Supplier: textOf(inf, "emit/xNome"),
		IssuedAt: issuedAt,
	}

	for _, det := range inf.FindElements("det") {
		prod := det.FindElement("prod")
		if prod == nil {
			continue
		}
		qty, err := decimal.NewFromString(textOf(prod, "qCom"))
		if err != nil {
			return nil, fmt.Errorf("quantidade inválida no item %s: %w", textOf(prod, "cProd"), domain.ErrInvalidInput)
		}
		invoice.Items = append(invoice.Items, inventory.NFEItem{
			Code:        textOf(prod, "cProd"),
			Description: textOf(prod, "xProd"),
			Quantity:    qty,
		})
	}
	return invoice, nil
}

func parseEmissionDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, &domain.DateParseError{Raw: raw}
	}
	for _, layout := range emissionLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &domain.DateParseError{Raw: raw}
}

func textOf(e *etree.Element, path string) string {
	child := e.FindElement(path)
	if child == nil {
		return ""
	}
	return child.Text()
}
