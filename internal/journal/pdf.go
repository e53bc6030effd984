package journal

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/cmartel/learning-journal/internal/digest"
)

const (
	pageMargin = 10 // mm
	qrSizeMM   = 20
	qrSizePx   = 128
)

// Builder lays out digest items into a paginated PDF journal.
type Builder struct {
	outputDir string
	now       func() time.Time
}

func NewBuilder(outputDir string) *Builder {
	return &Builder{
		outputDir: outputDir,
		now:       time.Now,
	}
}

// CreateJournal writes the journal PDF for items and returns its path.
// The file is named after the current date and overwritten when a run
// repeats the same day.
func (b *Builder) CreateJournal(items []digest.Item) (string, error) {
	if err := os.MkdirAll(b.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("journal: failed to create output dir: %w", err)
	}

	today := b.now()
	path := filepath.Join(b.outputDir, fmt.Sprintf("journal_apprentissage_%s.pdf", today.Format("2006-01-02")))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	b.coverPage(pdf, tr, items, today)

	for i, item := range items {
		pdf.AddPage()
		b.itemPage(pdf, tr, item, i+1)
	}

	pdf.Ln(12)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 5, tr("Généré automatiquement par le Système d'Apprentissage Automatique"), "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("journal: failed to write %s: %w", path, err)
	}

	log.Printf("PDF generated: %s", path)
	return path, nil
}

func (b *Builder) coverPage(pdf *fpdf.Fpdf, tr func(string) string, items []digest.Item, today time.Time) {
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(0, 0, 200)
	pdf.CellFormat(0, 14, tr("Journal d'Apprentissage"), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 8, tr(digest.LongDateFR(today)), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 200)
	pdf.CellFormat(0, 10, tr("Contenu d'aujourd'hui"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	articles := 0
	videos := 0
	for _, item := range items {
		if item.Source == digest.SourceYouTube {
			videos++
		} else {
			articles++
		}
	}

	rows := [][2]string{
		{"Articles RSS", fmt.Sprintf("%d articles", articles)},
		{"Résumés vidéos", fmt.Sprintf("%d vidéos", videos)},
		{"Total", fmt.Sprintf("%d éléments", len(items))},
	}

	pdf.SetTextColor(0, 0, 0)
	for i, row := range rows {
		if i == 0 {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.SetFillColor(220, 220, 220)
		} else {
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.CellFormat(50, 8, tr(row[0]), "1", 0, "L", true, 0, "")
		pdf.CellFormat(40, 8, tr(row[1]), "1", 1, "L", true, 0, "")
	}
}

func (b *Builder) itemPage(pdf *fpdf.Fpdf, tr func(string) string, item digest.Item, index int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(0, 7, tr(fmt.Sprintf("%d. %s", index, item.Title)), "", "L", false)
	pdf.Ln(2)

	kindLabel := "Article"
	if item.Kind == digest.KindVideo {
		kindLabel = "Vidéo"
	}
	meta := fmt.Sprintf("%s %s | %s", kindLabel, item.SourceLabel(), digest.ShortDate(item.Published))
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(128, 128, 128)
	pdf.MultiCell(0, 5, tr(meta), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	for _, para := range strings.Split(item.Body(), "\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		pdf.MultiCell(0, 6, tr(para), "", "L", false)
		pdf.Ln(3)
	}
	pdf.Ln(4)

	if item.URL != "" {
		b.linkBlock(pdf, tr, item.URL, index)
	}
}

// linkBlock renders the QR code for url next to its plain-text form so
// the source stays reachable from paper or e-ink.
func (b *Builder) linkBlock(pdf *fpdf.Fpdf, tr func(string) string, url string, index int) {
	y := pdf.GetY()

	png, err := qrcode.Encode(url, qrcode.Low, qrSizePx)
	if err != nil {
		log.Printf("WARNING: QR code for %s: %v", url, err)
	} else {
		name := fmt.Sprintf("qr-%d", index)
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
		pdf.ImageOptions(name, pageMargin, y, qrSizeMM, qrSizeMM, false, opts, 0, "")
	}

	pdf.SetXY(pageMargin+qrSizeMM+4, y+4)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(128, 128, 128)
	pdf.MultiCell(0, 5, tr("Scanner pour visiter:\n"+url), "", "L", false)
	pdf.SetY(y + qrSizeMM + 4)
}
