// Package pdf renders the buyer's guide that is emailed after a user verifies
// their address.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"solarverify/internal/benchmark"
	"solarverify/internal/models"
)

// Source is the subset of the benchmark store the guide reads.
type Source interface {
	Components(t models.ComponentType) []models.Component
	PricingBenchmarks(region, sizeBand string) []models.PricingBenchmark
	InstallerBenchmarks() []models.InstallerBenchmark
}

var printer = message.NewPrinter(language.BritishEnglish)

// GuideGenerator is safe for concurrent use; each Generate call renders into
// its own document.
type GuideGenerator struct {
	fontPath string // optional TTF; the core Helvetica font is used when empty
	source   Source
}

func NewGuideGenerator(source Source, fontPath string) *GuideGenerator {
	return &GuideGenerator{fontPath: fontPath, source: source}
}

// document is the per-call render state.
type document struct {
	pdf  *gofpdf.Fpdf
	font string
	tr   func(string) string
}

var questions = []string{
	"Are you MCS certified, and will the installation be registered with MCS?",
	"Which panel, inverter and battery models are included, and what are their warranties?",
	"Is scaffolding, bird protection and DNO notification included in the price?",
	"What generation estimate have you used, and how was it calculated?",
	"Who do I contact if the system underperforms, and what workmanship warranty do you offer?",
}

// Generate renders the guide for email and returns the PDF bytes.
func (g *GuideGenerator) Generate(email string, now time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("SolarVerify Solar Buyer's Guide", true)
	pdf.SetAuthor("SolarVerify", true)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	d := g.newDocument(pdf)
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(d.font, "", 9)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont(d.font, "B", 20)
	pdf.CellFormat(0, 12, "SolarVerify", "", 1, "C", false, 0, "")
	pdf.SetFont(d.font, "", 13)
	pdf.CellFormat(0, 8, d.tr("Solar Buyer's Guide"), "", 1, "C", false, 0, "")
	pdf.SetFont(d.font, "", 10)
	pdf.CellFormat(0, 6, d.tr(fmt.Sprintf("Prepared for %s on %s", email, now.Format("2 January 2006"))), "", 1, "C", false, 0, "")
	d.hr()

	d.sectionTitle("How we grade quotes")
	d.paragraph("Every quote is scored on three things: price against regional benchmarks (45%), " +
		"the quality of the named components (35%) and how well the system is sized for your usage (20%). " +
		"Scores of 90 and above earn an A, 75 a B, 60 a C and 45 a D. Anything lower is an F. " +
		"A quote at or below the low end of its price range with only Premium components is always an A. " +
		"If none of the components in a quote can be identified, the grade cannot exceed C.")
	d.hr()

	d.sectionTitle("Typical installed prices (UK)")
	for _, bm := range g.source.PricingBenchmarks(benchmark.NationalRegion, "") {
		d.kvLine(bm.SizeBand, fmt.Sprintf("£%s to £%s", thousands(bm.PriceLow), thousands(bm.PriceHigh)))
	}
	pdf.Ln(1)
	d.paragraph("Prices exclude batteries and are for a standard roof. Scaffolding and complex roofs add cost.")
	d.hr()

	if installers := g.source.InstallerBenchmarks(); len(installers) > 0 {
		d.sectionTitle("Price per kW by installer type")
		for _, ib := range installers {
			d.kvLine(ib.InstallerType, fmt.Sprintf("£%s to £%s per kW", thousands(ib.MinPerKW), thousands(ib.MaxPerKW)))
		}
		d.hr()
	}

	d.sectionTitle("Components we rate highly")
	for _, t := range []models.ComponentType{models.ComponentPanel, models.ComponentInverter, models.ComponentBattery} {
		d.componentList(t, g.source.Components(t))
	}
	d.hr()

	d.sectionTitle("Questions to ask your installer")
	for i, q := range questions {
		d.paragraph(fmt.Sprintf("%d. %s", i+1, q))
	}
	d.hr()

	d.sectionTitle("Disclaimer")
	pdf.SetFont(d.font, "", 9)
	d.paragraph("This guide is based on market data and is for information only. It is not financial advice. " +
		"Always obtain several quotes and check installer credentials before signing a contract.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render guide: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *GuideGenerator) newDocument(pdf *gofpdf.Fpdf) *document {
	if g.fontPath != "" {
		pdf.AddUTF8Font("DejaVu", "", g.fontPath)
		pdf.AddUTF8Font("DejaVu", "B", g.fontPath)
		return &document{pdf: pdf, font: "DejaVu", tr: func(s string) string { return s }}
	}
	// core fonts are cp1252, which still has the pound sign
	return &document{pdf: pdf, font: "Helvetica", tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (d *document) componentList(t models.ComponentType, all []models.Component) {
	var top []models.Component
	for _, c := range all {
		if c.Tier == models.TierPremium || c.Tier == models.TierExcellent {
			top = append(top, c)
		}
	}
	if len(top) == 0 {
		return
	}
	d.pdf.SetFont(d.font, "B", 11)
	d.pdf.CellFormat(0, 7, d.tr(componentHeading[t]), "", 1, "L", false, 0, "")
	for _, c := range top {
		d.kvLine(string(c.Tier), fmt.Sprintf("%s (%.1f%% efficiency, %d year warranty)",
			c.DisplayName(), c.Efficiency(), c.WarrantyYears))
	}
}

var componentHeading = map[models.ComponentType]string{
	models.ComponentPanel:    "Panels",
	models.ComponentInverter: "Inverters",
	models.ComponentBattery:  "Batteries",
}

func (d *document) sectionTitle(s string) {
	d.pdf.SetFont(d.font, "B", 13)
	d.pdf.CellFormat(0, 8, d.tr(s), "", 1, "L", false, 0, "")
	d.pdf.SetFont(d.font, "", 11)
}

func (d *document) kvLine(key, val string) {
	d.pdf.SetFont(d.font, "B", 11)
	d.pdf.CellFormat(35, 6, d.tr(key+":"), "", 0, "L", false, 0, "")
	d.pdf.SetFont(d.font, "", 11)
	d.pdf.CellFormat(0, 6, d.tr(val), "", 1, "L", false, 0, "")
}

func (d *document) paragraph(s string) {
	d.pdf.MultiCell(0, 6, d.tr(s), "", "L", false)
}

func (d *document) hr() {
	y := d.pdf.GetY() + 1.5
	d.pdf.SetLineWidth(0.2)
	d.pdf.Line(20, y, 190, y)
	d.pdf.SetY(y + 3)
}

// thousands groups digits the British way: 11,000.
func thousands(v float64) string {
	return printer.Sprintf("%d", int64(v))
}
