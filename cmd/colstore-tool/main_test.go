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

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/colstore/pkg/common/moerr"
	"github.com/matrixorigin/colstore/pkg/container/table"
)

const rows = `<DocumentElement>
  <Orders><Id>2</Id><Name>cup</Name></Orders>
  <Orders><Id>1</Id><Name>pen</Name></Orders>
  <Orders><Id>3</Id></Orders>
</DocumentElement>`

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "orders.xml")
	out := filepath.Join(dir, "copy.xml")
	cfgFile := filepath.Join(dir, "colstore.toml")
	require.NoError(t, os.WriteFile(in, []byte(rows), 0o644))
	require.NoError(t, os.WriteFile(cfgFile, []byte("[log]\nlevel = \"warn\"\n"), 0o644))

	var buf bytes.Buffer
	err := run(options{
		configFile: cfgFile,
		tableName:  "Orders",
		schema:     "Id:int32, Name:string",
		input:      in,
		output:     out,
		sortBy:     "Id",
	}, &buf)
	require.NoError(t, err)
	require.Equal(t, "Id\tcount=3\tmin=1\tmax=3\n"+
		"Name\tcount=2\tmin=cup\tmax=pen\n"+
		"1\tpen\n"+
		"2\tcup\n"+
		"3\t\n", buf.String())

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(written), "<Name>cup</Name>")
}

func TestAddColumns(t *testing.T) {
	tbl := table.New("T", table.Options{})
	require.NoError(t, addColumns(tbl, "A:int64,B:time.Time"))
	require.Len(t, tbl.Columns(), 2)

	err := addColumns(table.New("T", table.Options{}), "A")
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidInput))
	err = addColumns(table.New("T", table.Options{}), "A:nosuchtype")
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrTypeNotFound))
}

type closeFailure struct {
	bytes.Buffer
	closed bool
}

func (c *closeFailure) Close() error {
	c.closed = true
	return errors.New("disk full")
}

func TestWriteXmlReportsClose(t *testing.T) {
	tbl := table.New("T", table.Options{})
	require.NoError(t, addColumns(tbl, "A:int32"))
	_, err := tbl.AddRecord(int32(1))
	require.NoError(t, err)

	out := &closeFailure{}
	err = writeXml(tbl, out)
	require.True(t, out.closed)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInternal))
	require.Contains(t, err.Error(), "disk full")
	require.Contains(t, out.String(), "<A>1</A>")
}
