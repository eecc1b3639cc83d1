// Copyright 2021 - 2022 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package table

import (
	"encoding/xml"
	"errors"
	"io"

	"github.com/matrixorigin/colstore/pkg/common/moerr"
)

// DocumentElement wraps the rows written by WriteXml.
const DocumentElement = "DocumentElement"

func xmlError(err error) error {
	var me *moerr.Error
	if errors.As(err, &me) {
		return err
	}
	return moerr.NewInvalidInputNoCtx("malformed xml: %v", err)
}

// WriteXml writes every live record as an element named after the table,
// with one child per non-null column.
func (t *Table) WriteXml(w io.Writer) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	root := xml.StartElement{Name: xml.Name{Local: DocumentElement}}
	if err := enc.EncodeToken(root); err != nil {
		return xmlError(err)
	}
	for _, r := range t.rm.records() {
		row := xml.StartElement{Name: xml.Name{Local: t.name}}
		if err := enc.EncodeToken(row); err != nil {
			return xmlError(err)
		}
		for _, c := range t.columns {
			if c.IsNull(r) {
				continue
			}
			if err := c.writeXml(enc, r); err != nil {
				return err
			}
		}
		if err := enc.EncodeToken(row.End()); err != nil {
			return xmlError(err)
		}
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return xmlError(err)
	}
	return enc.Flush()
}

// ReadXml appends the rows found in r. Elements that are not rows of t and
// row children that name no column are skipped.
func (t *Table) ReadXml(r io.Reader) error {
	dec := xml.NewDecoder(r)
	depth := 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return xmlError(err)
		}
		switch tt := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				depth++
				if tt.Name.Local == t.name {
					if err := t.readRow(dec); err != nil {
						return err
					}
					depth--
				}
				continue
			}
			if tt.Name.Local != t.name {
				if err := dec.Skip(); err != nil {
					return xmlError(err)
				}
				continue
			}
			if err := t.readRow(dec); err != nil {
				return err
			}
		case xml.EndElement:
			depth--
		}
	}
}

func (t *Table) readRow(dec *xml.Decoder) error {
	record := t.NewRecord()
	for {
		tok, err := dec.Token()
		if err != nil {
			t.FreeRecord(record)
			return xmlError(err)
		}
		switch tt := tok.(type) {
		case xml.StartElement:
			c, err := t.Column(tt.Name.Local)
			if err != nil {
				if err := dec.Skip(); err != nil {
					t.FreeRecord(record)
					return xmlError(err)
				}
				continue
			}
			v, err := c.readXml(dec, tt)
			if err == nil {
				err = c.Set(record, v)
			}
			if err != nil {
				t.FreeRecord(record)
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}
