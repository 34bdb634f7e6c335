// Package pdf renders a lesson's English content as a printable handout.
package pdf

import (
	"bytes"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"linguastory-backend/internal/model"
)

// ExportLesson renders the English-facing parts of a lesson (the Arabic
// fields need a shaping-capable renderer and are left to the client).
func ExportLesson(lesson *model.Lesson) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(lesson.Title, true)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.MultiCell(0, 9, lesson.Title, "", "C", false)
	doc.Ln(4)

	section(doc, "Story")
	doc.SetFont("Helvetica", "", 11)
	doc.MultiCell(0, 6, lesson.Story, "", "L", false)
	doc.Ln(4)

	section(doc, "Vocabulary")
	doc.SetFont("Helvetica", "", 10)
	for _, v := range lesson.Vocabulary {
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(45, 6, v.Word, "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		doc.MultiCell(0, 6, v.EnglishMeaning, "", "L", false)
	}
	doc.Ln(4)

	section(doc, "Comprehension Questions")
	numbered(doc, lesson.ComprehensionQuestions)

	section(doc, "Discussion Questions")
	numbered(doc, lesson.DiscussionQuestions)

	section(doc, "Writing Task")
	doc.SetFont("Helvetica", "", 11)
	doc.MultiCell(0, 6, lesson.WritingTask, "", "L", false)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func section(doc *gofpdf.Fpdf, title string) {
	doc.SetFont("Helvetica", "B", 13)
	doc.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	doc.Ln(1)
}

func numbered(doc *gofpdf.Fpdf, items []string) {
	doc.SetFont("Helvetica", "", 11)
	for i, q := range items {
		doc.MultiCell(0, 6, strconv.Itoa(i+1)+". "+q, "", "L", false)
	}
	doc.Ln(4)
}
