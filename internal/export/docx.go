package export

import (
	"bytes"
	"fmt"

	"baliance.com/gooxml/document"
	"baliance.com/gooxml/schema/soo/wml"
)

// RenderDOCX builds a flat sequence of paragraph nodes: a centered title,
// then per section one heading-styled paragraph followed by one body
// paragraph per body item. Headings carry a real paragraph style (w:pStyle)
// so the document stays machine-navigable.
func RenderDOCX(title string, sections []Section) ([]byte, error) {
	doc := document.New()

	titlePara := doc.AddParagraph()
	titlePara.SetStyle("Title")
	titlePara.Properties().SetAlignment(wml.ST_JcCenter)
	titlePara.AddRun().AddText(title)

	for _, sec := range sections {
		heading := doc.AddParagraph()
		heading.SetStyle("Heading1")
		heading.AddRun().AddText(sec.Heading)

		for _, item := range sec.Body {
			body := doc.AddParagraph()
			body.AddRun().AddText(item)
		}
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, fmt.Errorf("encoding docx: %w", err)
	}
	return buf.Bytes(), nil
}
