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

package types

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/matrixorigin/colstore/pkg/common/moerr"
)

// Locale supplies the culture rules used when parsing and formatting
// values for display.
type Locale struct {
	Tag              language.Tag
	DecimalSeparator string
	GroupSeparator   string
	// DateLayouts are tried in order when text is parsed as a date.
	DateLayouts []string
}

// InvariantLocale is culture independent.
var InvariantLocale = &Locale{
	Tag:              language.Und,
	DecimalSeparator: ".",
	GroupSeparator:   ",",
	DateLayouts:      []string{"01/02/2006 15:04:05", "01/02/2006"},
}

var locales = map[string]*Locale{
	"en-US": {
		Tag:              language.AmericanEnglish,
		DecimalSeparator: ".",
		GroupSeparator:   ",",
		DateLayouts:      []string{"1/2/2006 3:04:05 PM", "1/2/2006"},
	},
	"en-GB": {
		Tag:              language.BritishEnglish,
		DecimalSeparator: ".",
		GroupSeparator:   ",",
		DateLayouts:      []string{"02/01/2006 15:04:05", "02/01/2006"},
	},
	"de-DE": {
		Tag:              language.MustParse("de-DE"),
		DecimalSeparator: ",",
		GroupSeparator:   ".",
		DateLayouts:      []string{"02.01.2006 15:04:05", "02.01.2006"},
	},
	"fr-FR": {
		Tag:              language.MustParse("fr-FR"),
		DecimalSeparator: ",",
		GroupSeparator:   "\u202f",
		DateLayouts:      []string{"02/01/2006 15:04:05", "02/01/2006"},
	},
	"ja-JP": {
		Tag:              language.MustParse("ja-JP"),
		DecimalSeparator: ".",
		GroupSeparator:   ",",
		DateLayouts:      []string{"2006/01/02 15:04:05", "2006/01/02"},
	},
}

// LocaleFor returns the locale for a BCP 47 name. Unknown regions fall back
// to invariant number and date rules under the requested tag.
func LocaleFor(name string) (*Locale, error) {
	if name == "" {
		return InvariantLocale, nil
	}
	tag, err := language.Parse(name)
	if err != nil {
		return nil, moerr.NewBadConfigNoCtx("invalid locale '%s': %v", name, err)
	}
	if loc, ok := locales[tag.String()]; ok {
		return loc, nil
	}
	loc := *InvariantLocale
	loc.Tag = tag
	return &loc, nil
}

func (l *Locale) String() string {
	if l == nil || l.Tag == language.Und {
		return "invariant"
	}
	return l.Tag.String()
}

var spaceReplacer = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "")

// normalizeNumber rewrites culture formatted number text into the form
// strconv and decimal accept.
func (l *Locale) normalizeNumber(s string) string {
	s = strings.TrimSpace(s)
	if l == nil {
		l = InvariantLocale
	}
	if l.GroupSeparator != "" {
		s = strings.ReplaceAll(s, l.GroupSeparator, "")
		if strings.TrimSpace(l.GroupSeparator) == "" {
			s = spaceReplacer.Replace(s)
		}
	}
	if l.DecimalSeparator != "" && l.DecimalSeparator != "." {
		s = strings.ReplaceAll(s, l.DecimalSeparator, ".")
	}
	return s
}

// formatNumber swaps the invariant decimal point for the locale's.
func (l *Locale) formatNumber(s string) string {
	if l == nil || l.DecimalSeparator == "" || l.DecimalSeparator == "." {
		return s
	}
	return strings.Replace(s, ".", l.DecimalSeparator, 1)
}

func (l *Locale) dateLayouts() []string {
	if l == nil {
		return InvariantLocale.DateLayouts
	}
	return l.DateLayouts
}
