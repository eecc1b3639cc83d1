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

package storage

import (
	"bytes"
	"cmp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/collate"

	"github.com/matrixorigin/colstore/pkg/common/moerr"
	"github.com/matrixorigin/colstore/pkg/container/types"
)

func newBoolOps() valueOps[bool] {
	return valueOps[bool]{
		isDefault: isZero[bool],
		compare: func(a, b bool) int {
			switch {
			case a == b:
				return 0
			case a:
				return 1
			}
			return -1
		},
		convert: func(v any, loc *types.Locale) (bool, error) {
			return types.ToBool(v, loc)
		},
		toXml:      types.FormatXmlBool,
		fromXml:    types.ParseXmlBool,
		aggregates: orderedAggs,
	}
}

// isProblematicChar reports runes that an XML document cannot carry as a
// single character value.
func isProblematicChar(c types.Char) bool {
	switch {
	case c >= 0xD800 && c <= 0xDFFF:
		return true
	case c == '\t' || c == '\n' || c == '\r':
		return true
	}
	return false
}

func newCharOps() valueOps[types.Char] {
	return valueOps[types.Char]{
		isDefault: isZero[types.Char],
		compare:   cmp.Compare[types.Char],
		convert: func(v any, _ *types.Locale) (types.Char, error) {
			return types.ToChar(v)
		},
		toXml: func(v types.Char) string {
			return v.String()
		},
		fromXml: func(s string) (types.Char, error) {
			return types.ToChar(s)
		},
		validate: func(v types.Char) error {
			if isProblematicChar(v) {
				return moerr.NewProblematicCharsNoCtx(rune(v))
			}
			return nil
		},
		aggregates: orderedAggs,
	}
}

// newCollator builds the comparer used for text columns. Without
// caseSensitive the comparison also ignores width.
func newCollator(loc *types.Locale, caseSensitive bool) *collate.Collator {
	if caseSensitive {
		return collate.New(loc.Tag)
	}
	return collate.New(loc.Tag, collate.IgnoreCase, collate.IgnoreWidth)
}

func newStringOps(opts Options) valueOps[string] {
	collator := newCollator(opts.locale(), opts.CaseSensitive)
	return valueOps[string]{
		isDefault: isZero[string],
		compare: func(a, b string) int {
			if a == b {
				return 0
			}
			return collator.CompareString(a, b)
		},
		convert: func(v any, loc *types.Locale) (string, error) {
			return types.ToString(v, loc), nil
		},
		toXml: func(v string) string {
			return v
		},
		fromXml: func(s string) (string, error) {
			return s, nil
		},
		length:     utf8.RuneCountInString,
		aggregates: orderedAggs,
	}
}

func toGuid(v any) (uuid.UUID, error) {
	switch x := v.(type) {
	case uuid.UUID:
		return x, nil
	case [16]byte:
		return uuid.UUID(x), nil
	case []byte:
		if g, err := uuid.FromBytes(x); err == nil {
			return g, nil
		}
	case string:
		if g, err := uuid.Parse(strings.TrimSpace(x)); err == nil {
			return g, nil
		}
	case types.SqlGuid:
		if x.Valid {
			return x.Value, nil
		}
	}
	return uuid.Nil, moerr.NewConvertFailedNoCtx(v, types.T_guid.String())
}

func newGuidOps() valueOps[uuid.UUID] {
	return valueOps[uuid.UUID]{
		isDefault: isZero[uuid.UUID],
		compare: func(a, b uuid.UUID) int {
			return bytes.Compare(a[:], b[:])
		},
		convert: func(v any, _ *types.Locale) (uuid.UUID, error) {
			return toGuid(v)
		},
		toXml: func(v uuid.UUID) string {
			return v.String()
		},
		fromXml: func(s string) (uuid.UUID, error) {
			return toGuid(s)
		},
		aggregates: opaqueAggs,
	}
}
