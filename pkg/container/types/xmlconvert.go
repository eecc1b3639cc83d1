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
	"math"
	"strconv"
	"strings"
	gotime "time"

	"github.com/shopspring/decimal"

	"github.com/matrixorigin/colstore/pkg/common/moerr"
)

// Text forms used at the XML persistence boundary. They are culture
// independent and round trip exactly.

const (
	roundtripLayout = "2006-01-02T15:04:05.999999999"
	localLayout     = roundtripLayout + "-07:00"
)

func FormatXmlBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func ParseXmlBool(s string) (bool, error) {
	switch strings.TrimSpace(s) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, moerr.NewConvertFailedNoCtx(s, "Boolean")
}

func FormatXmlFloat(f float64, bits int) string {
	switch {
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	case math.IsNaN(f):
		return "NaN"
	}
	return strings.ToUpper(strconv.FormatFloat(f, 'g', -1, bits))
}

func ParseXmlFloat(s string, bits int) (float64, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "INF":
		return math.Inf(1), nil
	case "-INF":
		return math.Inf(-1), nil
	case "NaN":
		return math.NaN(), nil
	}
	f, err := strconv.ParseFloat(s, bits)
	if err != nil {
		return 0, parseError(err, s, "Double")
	}
	return f, nil
}

// FormatRoundtrip writes t with a suffix that preserves its kind: Z for
// UTC, the offset for local and nothing for unspecified.
func FormatRoundtrip(t gotime.Time) string {
	switch KindOf(t) {
	case KindUtc:
		return t.Format(roundtripLayout) + "Z"
	case KindLocal:
		return t.Format(localLayout)
	}
	return t.Format(roundtripLayout)
}

// FormatLocal writes t as local time with the local offset. An unspecified
// value is read as local wall-clock time.
func FormatLocal(t gotime.Time) string {
	switch KindOf(t) {
	case KindUnspecified:
		t = SpecifyKind(t, KindLocal)
	case KindUtc:
		t = ToLocal(t)
	}
	return t.Format(localLayout)
}

// ParseRoundtrip reverses FormatRoundtrip. Text with an offset becomes a
// local time.
func ParseRoundtrip(s string) (gotime.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := gotime.Parse(gotime.RFC3339Nano, s); err == nil {
		if strings.HasSuffix(s, "Z") {
			return t.UTC(), nil
		}
		return ToLocal(t), nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := gotime.ParseInLocation(layout, s, Unspecified); err == nil {
			return t, nil
		}
	}
	return gotime.Time{}, moerr.NewConvertFailedNoCtx(s, "DateTime")
}

// ParseUnspecified parses s and drops its kind. Text with a zone is first
// converted to local time.
func ParseUnspecified(s string) (gotime.Time, error) {
	t, err := ParseRoundtrip(s)
	if err != nil {
		return t, err
	}
	if KindOf(t) == KindUtc {
		t = ToLocal(t)
	}
	return SpecifyKind(t, KindUnspecified), nil
}

// FormatXmlDuration writes d as an ISO 8601 duration such as P1DT2H3M4.5S.
func FormatXmlDuration(d gotime.Duration) string {
	if d == 0 {
		return "PT0S"
	}
	var sb strings.Builder
	u := uint64(d)
	if d < 0 {
		sb.WriteByte('-')
		u = uint64(-d)
		if d == math.MinInt64 {
			u = 1 << 63
		}
	}
	sb.WriteByte('P')
	day := uint64(24 * gotime.Hour)
	if days := u / day; days > 0 {
		sb.WriteString(strconv.FormatUint(days, 10))
		sb.WriteByte('D')
	}
	u %= day
	if u == 0 {
		return sb.String()
	}
	sb.WriteByte('T')
	if h := u / uint64(gotime.Hour); h > 0 {
		sb.WriteString(strconv.FormatUint(h, 10))
		sb.WriteByte('H')
	}
	u %= uint64(gotime.Hour)
	if m := u / uint64(gotime.Minute); m > 0 {
		sb.WriteString(strconv.FormatUint(m, 10))
		sb.WriteByte('M')
	}
	u %= uint64(gotime.Minute)
	if u > 0 {
		sec := u / uint64(gotime.Second)
		frac := u % uint64(gotime.Second)
		sb.WriteString(strconv.FormatUint(sec, 10))
		if frac > 0 {
			fs := strconv.FormatUint(frac+uint64(gotime.Second), 10)[1:]
			sb.WriteByte('.')
			sb.WriteString(strings.TrimRight(fs, "0"))
		}
		sb.WriteByte('S')
	}
	return sb.String()
}

// ParseXmlDuration reverses FormatXmlDuration. Years and months are not
// accepted since their length is not fixed.
func ParseXmlDuration(s string) (gotime.Duration, error) {
	orig := s
	s = strings.TrimSpace(s)
	fail := func() (gotime.Duration, error) {
		return 0, moerr.NewConvertFailedNoCtx(orig, "TimeSpan")
	}
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	if !strings.HasPrefix(s, "P") || len(s) < 2 {
		return fail()
	}
	s = s[1:]
	// components are summed exactly; a float64 loses nanoseconds past 2^53
	var total decimal.Decimal
	inTime := false
	for len(s) > 0 {
		if s[0] == 'T' {
			if inTime {
				return fail()
			}
			inTime = true
			s = s[1:]
			continue
		}
		i := 0
		for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
			i++
		}
		if i == 0 || i == len(s) {
			return fail()
		}
		n, err := decimal.NewFromString(s[:i])
		if err != nil {
			return fail()
		}
		var unit gotime.Duration
		switch {
		case s[i] == 'D' && !inTime:
			unit = 24 * gotime.Hour
		case s[i] == 'H' && inTime:
			unit = gotime.Hour
		case s[i] == 'M' && inTime:
			unit = gotime.Minute
		case s[i] == 'S' && inTime:
			unit = gotime.Second
		default:
			return fail()
		}
		total = total.Add(n.Mul(decimal.NewFromInt(int64(unit))))
		s = s[i+1:]
	}
	total = total.Round(0)
	if neg {
		total = total.Neg()
	}
	if total.GreaterThan(decimalMaxInt64) || total.LessThan(decimalMinInt64) {
		return 0, moerr.NewOutOfRangeNoCtx("TimeSpan", "value '%s'", orig)
	}
	return gotime.Duration(total.IntPart()), nil
}

// ParseTimeSpan reads [-][d.]hh:mm[:ss[.fffffffff]], a bare day count, or
// Go duration syntax such as 1h30m.
func ParseTimeSpan(s string) (gotime.Duration, error) {
	orig := s
	s = strings.TrimSpace(s)
	fail := func() (gotime.Duration, error) {
		return 0, moerr.NewConvertFailedNoCtx(orig, "TimeSpan")
	}
	if s == "" {
		return fail()
	}
	if strings.ContainsAny(s, "hmsuµn") && !strings.Contains(s, ":") {
		d, err := gotime.ParseDuration(s)
		if err != nil {
			return fail()
		}
		return d, nil
	}
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	var days int64
	clock := s
	if !strings.Contains(s, ":") {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fail()
		}
		days, clock = n, ""
	} else if dot := strings.IndexByte(s, '.'); dot >= 0 && dot < strings.IndexByte(s, ':') {
		n, err := strconv.ParseInt(s[:dot], 10, 64)
		if err != nil {
			return fail()
		}
		days, clock = n, s[dot+1:]
	}
	var d gotime.Duration
	if clock != "" {
		parts := strings.Split(clock, ":")
		if len(parts) < 2 || len(parts) > 3 {
			return fail()
		}
		h, err1 := strconv.Atoi(parts[0])
		m, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
			return fail()
		}
		d = gotime.Duration(h)*gotime.Hour + gotime.Duration(m)*gotime.Minute
		if len(parts) == 3 {
			secPart, fracPart, hasFrac := strings.Cut(parts[2], ".")
			sec, err := strconv.Atoi(secPart)
			if err != nil || sec < 0 || sec > 59 {
				return fail()
			}
			d += gotime.Duration(sec) * gotime.Second
			if hasFrac {
				if len(fracPart) == 0 || len(fracPart) > 9 {
					return fail()
				}
				ns, err := strconv.Atoi(fracPart + strings.Repeat("0", 9-len(fracPart)))
				if err != nil {
					return fail()
				}
				d += gotime.Duration(ns)
			}
		}
	}
	if days > int64(math.MaxInt64/(24*gotime.Hour)) {
		return 0, moerr.NewOutOfRangeNoCtx("TimeSpan", "value '%s'", orig)
	}
	d += gotime.Duration(days) * 24 * gotime.Hour
	if neg {
		d = -d
	}
	return d, nil
}
