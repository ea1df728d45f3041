package normalize

import (
	"bytes"
	"strconv"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/FocuswithJustin/Scriptura/core/bible"
	"github.com/FocuswithJustin/Scriptura/core/errors"
)

// Compiled selectors for the XML payload shape:
//
//	<bible code="TB" name="..." lang="id" year="1974" publisher="...">
//	  <book name="Kejadian">
//	    <chapter number="1">
//	      <verse number="1">Pada mulanya...</verse>
var (
	xmlBibleSel   = xpath.MustCompile("//bible")
	xmlBookSel    = xpath.MustCompile("book")
	xmlChapterSel = xpath.MustCompile("chapter")
	xmlVerseSel   = xpath.MustCompile("verse")
)

// ParseXML parses an XML translation payload into raw form.
func ParseXML(data []byte) (*RawBible, error) {
	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "parsing XML payload")
	}

	bibleNode := xmlquery.QuerySelector(root, xmlBibleSel)
	if bibleNode == nil {
		return nil, errors.Wrap(errors.ErrInvalidReference, "payload has no <bible> element")
	}

	year, _ := strconv.Atoi(bibleNode.SelectAttr("year"))
	raw := &RawBible{
		Meta: bible.Metadata{
			Code:        bibleNode.SelectAttr("code"),
			DisplayName: bibleNode.SelectAttr("name"),
			ShortCode:   bibleNode.SelectAttr("short"),
			Language:    bibleNode.SelectAttr("lang"),
			Year:        year,
			Publisher:   bibleNode.SelectAttr("publisher"),
		},
	}

	for _, bookNode := range xmlquery.QuerySelectorAll(bibleNode, xmlBookSel) {
		bookName := bookNode.SelectAttr("name")
		for _, chapterNode := range xmlquery.QuerySelectorAll(bookNode, xmlChapterSel) {
			chapter, err := strconv.Atoi(chapterNode.SelectAttr("number"))
			if err != nil {
				return nil, errors.Wrapf(err, "book %q: bad chapter number %q", bookName, chapterNode.SelectAttr("number"))
			}
			for _, verseNode := range xmlquery.QuerySelectorAll(chapterNode, xmlVerseSel) {
				verse, err := strconv.Atoi(verseNode.SelectAttr("number"))
				if err != nil {
					return nil, errors.Wrapf(err, "book %q chapter %d: bad verse number %q", bookName, chapter, verseNode.SelectAttr("number"))
				}
				raw.Verses = append(raw.Verses, RawVerse{
					Book:    bookName,
					Chapter: chapter,
					Verse:   verse,
					Text:    verseNode.InnerText(),
				})
			}
		}
	}

	if len(raw.Verses) == 0 {
		return nil, errors.Wrap(errors.ErrInvalidReference, "payload contains no verses")
	}
	return raw, nil
}
