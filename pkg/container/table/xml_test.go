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
	"bytes"
	"strings"
	"testing"
	gotime "time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/colstore/pkg/common/moerr"
	"github.com/matrixorigin/colstore/pkg/container/types"
)

func newOrdersTable(t *testing.T) *Table {
	tbl := New("Orders", Options{DateTimeMode: types.DateTimeModeUtc})
	for _, c := range []*Column{
		NewColumn("Id", int32Type),
		NewColumn("Name", stringType),
		NewColumn("At", types.DateTimeType),
		NewColumn("Price", types.DecimalType),
		NewColumn("Note", types.AnyType),
	} {
		require.NoError(t, tbl.AddColumn(c))
	}
	return tbl
}

func TestXmlRoundTrip(t *testing.T) {
	at := gotime.Date(2022, 1, 2, 3, 4, 5, 0, gotime.UTC)
	src := newOrdersTable(t)
	_, err := src.AddRecord(1, "pen", at, decimal.RequireFromString("1.50"), "fragile")
	require.NoError(t, err)
	_, err = src.AddRecord(2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, src.WriteXml(&buf))
	text := buf.String()
	require.True(t, strings.HasPrefix(text, "<DocumentElement>"))
	require.Contains(t, text, "<Id>1</Id>")
	require.Contains(t, text, "<Name>pen</Name>")
	require.Contains(t, text, "<Id>2</Id>")
	require.Equal(t, 1, strings.Count(text, "<Name>"))
	require.Equal(t, 2, strings.Count(text, "<Orders>"))

	dst := newOrdersTable(t)
	require.NoError(t, dst.ReadXml(strings.NewReader(text)))
	require.Equal(t, []int{0, 1}, dst.Records())

	v, _ := dst.GetValue(0, "Id")
	require.Equal(t, int32(1), v)
	v, _ = dst.GetValue(0, "Name")
	require.Equal(t, "pen", v)
	v, _ = dst.GetValue(0, "At")
	require.True(t, v.(gotime.Time).Equal(at))
	v, _ = dst.GetValue(0, "Price")
	require.True(t, v.(decimal.Decimal).Equal(decimal.RequireFromString("1.5")))
	v, _ = dst.GetValue(0, "Note")
	require.Equal(t, "fragile", v)

	for _, name := range []string{"Name", "At", "Price", "Note"} {
		null, err := dst.IsNull(1, name)
		require.NoError(t, err)
		require.True(t, null, name)
	}
}

func TestReadXml(t *testing.T) {
	tbl := newOrdersTable(t)
	doc := `<NewDataSet>
  <Meta><Orders><Id>99</Id></Orders></Meta>
  <Orders><Id>1</Id><Extra>x</Extra><name>cup</name></Orders>
</NewDataSet>`
	require.NoError(t, tbl.ReadXml(strings.NewReader(doc)))
	require.Equal(t, 1, tbl.RecordCount())
	v, _ := tbl.GetValue(0, "Name")
	require.Equal(t, "cup", v)

	require.NoError(t, tbl.ReadXml(strings.NewReader(`<Orders><Id>2</Id></Orders>`)))
	require.Equal(t, 2, tbl.RecordCount())
	v, _ = tbl.GetValue(1, "Id")
	require.Equal(t, int32(2), v)

	err := tbl.ReadXml(strings.NewReader(`<DocumentElement><Orders><Id>1`))
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidInput))
	require.Equal(t, 2, tbl.RecordCount())

	err = tbl.ReadXml(strings.NewReader(`<DocumentElement><Orders><Id>abc</Id></Orders></DocumentElement>`))
	require.Error(t, err)
	require.Equal(t, 2, tbl.RecordCount())
}
