// Package parser implements the streaming XML decomposer: a single pass over
// a document that persists one Tag row per element occurrence and one
// Attribute row per attribute, without ever building the full tree in memory.
package parser

import (
	"bytes"
	"encoding/xml"
	"io"

	"gorm.io/gorm"

	"github.com/Nofexxx/pet-f/internal/database"
	apperrors "github.com/Nofexxx/pet-f/internal/errors"
)

// Decomposer walks one XML document and materializes its relational
// projection, scoped to a single file. All rows are written through the
// given transaction handle, so the caller decides commit or rollback.
//
// A Decomposer is single-use and not safe for concurrent use; the walk is
// one sequential pass.
type Decomposer struct {
	tx     *gorm.DB
	fileID uint

	// stack holds the identities of the currently open elements, the
	// ancestry path of the walk. Empty before the first element and after
	// the root closes.
	stack []uint

	rootSeen   bool
	rootClosed bool

	tagCount  int
	attrCount int
}

// NewDecomposer creates a decomposer writing rows for the given file through
// tx.
func NewDecomposer(tx *gorm.DB, fileID uint) *Decomposer {
	return &Decomposer{
		tx:     tx,
		fileID: fileID,
	}
}

// Run consumes the byte stream to the end. It returns a parse failure as
// soon as the decoder reports malformed input; no further events are
// processed. The decoder runs in strict mode, so mismatched or unclosed
// tags surface as syntax errors and the close-event pop below never needs
// its own name check.
func (d *Decomposer) Run(r io.Reader) error {
	decoder := xml.NewDecoder(r)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return apperrors.WrapByCode(apperrors.ErrFileParseFailed, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if d.rootClosed {
				return apperrors.NewByCode(apperrors.ErrFileParseFailed).
					WithDetails("unexpected element after document end")
			}
			if err := d.openElement(t); err != nil {
				return err
			}
		case xml.EndElement:
			d.closeElement()
		case xml.CharData:
			// Non-whitespace text is only legal inside an element. The
			// decoder tokenizes it at the top level without complaint, so
			// the well-formedness check lives here.
			if len(d.stack) == 0 && len(bytes.TrimSpace(t)) > 0 {
				return apperrors.NewByCode(apperrors.ErrFileParseFailed).
					WithDetails("text outside the root element")
			}
		}
	}

	if !d.rootSeen {
		return apperrors.NewByCode(apperrors.ErrFileParseFailed).
			WithDetails("no root element found")
	}

	return nil
}

// openElement persists the Tag row for an element-open event, then its
// Attribute rows. Create fills the Tag's identity before the attributes
// reference it.
func (d *Decomposer) openElement(el xml.StartElement) error {
	tag := &database.Tag{
		Name:   el.Name.Local,
		FileID: d.fileID,
	}
	if n := len(d.stack); n > 0 {
		parent := d.stack[n-1]
		tag.ParentID = &parent
	}

	if err := d.tx.Create(tag).Error; err != nil {
		return apperrors.WrapByCode(apperrors.ErrDatabaseInsert, err)
	}
	d.stack = append(d.stack, tag.ID)
	d.rootSeen = true
	d.tagCount++

	if len(el.Attr) == 0 {
		return nil
	}

	attrs := make([]database.Attribute, 0, len(el.Attr))
	for _, attr := range el.Attr {
		attrs = append(attrs, database.Attribute{
			Name:  attr.Name.Local,
			Value: attr.Value,
			TagID: tag.ID,
		})
	}
	if err := d.tx.Create(&attrs).Error; err != nil {
		return apperrors.WrapByCode(apperrors.ErrDatabaseInsert, err)
	}
	d.attrCount += len(attrs)

	return nil
}

// closeElement pops the ancestry stack for an element-close event. The
// decoder already rejected any close tag that does not match the open one.
func (d *Decomposer) closeElement() {
	if n := len(d.stack); n > 0 {
		d.stack = d.stack[:n-1]
		if n == 1 {
			d.rootClosed = true
		}
	}
}

// Depth returns the number of currently open elements.
func (d *Decomposer) Depth() int {
	return len(d.stack)
}

// TagCount returns the number of Tag rows written so far.
func (d *Decomposer) TagCount() int {
	return d.tagCount
}

// AttributeCount returns the number of Attribute rows written so far.
func (d *Decomposer) AttributeCount() int {
	return d.attrCount
}
