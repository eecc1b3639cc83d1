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
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/matrixorigin/colstore/pkg/common/moerr"
	"github.com/matrixorigin/colstore/pkg/config"
	"github.com/matrixorigin/colstore/pkg/container/index"
	"github.com/matrixorigin/colstore/pkg/container/table"
	"github.com/matrixorigin/colstore/pkg/container/types"
	"github.com/matrixorigin/colstore/pkg/logutil"
)

type options struct {
	configFile string
	tableName  string
	schema     string
	input      string
	output     string
	sortBy     string
}

func main() {
	var opts options
	flag.StringVar(&opts.configFile, "config", "", "toml configuration file")
	flag.StringVar(&opts.tableName, "table", "Table", "row element name")
	flag.StringVar(&opts.schema, "schema", "", "columns as name:type[,name:type...]")
	flag.StringVar(&opts.input, "in", "", "xml file to load")
	flag.StringVar(&opts.output, "out", "", "xml file to write the rows back to")
	flag.StringVar(&opts.sortBy, "sort", "", "columns to list the rows by, comma separated")
	flag.Parse()

	if opts.schema == "" || opts.input == "" {
		fmt.Printf("Usage: %s -schema name:type[,name:type...] -in file.xml [-config file.toml] [-table name] [-sort columns] [-out file.xml]\n", os.Args[0])
		os.Exit(-1)
	}
	if err := run(opts, os.Stdout); err != nil {
		logutil.Error("colstore-tool failed", zap.Error(err))
		os.Exit(-1)
	}
}

func loadConfig(path string) (*config.Configuration, error) {
	if path == "" {
		return config.LoadConfig("")
	}
	return config.LoadConfigFromFile(path)
}

func run(opts options, w io.Writer) error {
	cfg, err := loadConfig(opts.configFile)
	if err != nil {
		return err
	}
	logutil.SetupLogger(&cfg.Log)

	tbl, err := cfg.NewTable(opts.tableName)
	if err != nil {
		return err
	}
	if err := addColumns(tbl, opts.schema); err != nil {
		return err
	}

	in, err := os.Open(opts.input)
	if err != nil {
		return moerr.NewInvalidInputNoCtx("open %s: %v", opts.input, err)
	}
	defer in.Close()
	if err := tbl.ReadXml(in); err != nil {
		return err
	}
	logutil.Info("rows loaded",
		zap.String("table", tbl.Name()),
		zap.Int("records", tbl.RecordCount()))

	if err := summarize(tbl, w); err != nil {
		return err
	}
	if opts.sortBy != "" {
		if err := listSorted(tbl, strings.Split(opts.sortBy, ","), w); err != nil {
			return err
		}
	}
	if opts.output != "" {
		out, err := os.Create(opts.output)
		if err != nil {
			return moerr.NewInvalidInputNoCtx("create %s: %v", opts.output, err)
		}
		return writeXml(tbl, out)
	}
	return nil
}

// writeXml writes tbl to out and closes it. A failed close is reported
// unless the write already failed.
func writeXml(tbl *table.Table, out io.WriteCloser) (err error) {
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = moerr.ConvertGoError(context.Background(), cerr)
		}
	}()
	return tbl.WriteXml(out)
}

// addColumns adds the columns of a name:type list. Type names are the
// registered ones, such as int32, string or time.Time.
func addColumns(tbl *table.Table, schema string) error {
	for _, def := range strings.Split(schema, ",") {
		name, typeName, ok := strings.Cut(strings.TrimSpace(def), ":")
		if !ok || name == "" {
			return moerr.NewInvalidInputNoCtx("bad column definition '%s'", def)
		}
		t, err := types.ResolveType(typeName)
		if err != nil {
			return err
		}
		if _, err := tbl.NewColumn(name, t); err != nil {
			return err
		}
	}
	return nil
}

func summarize(tbl *table.Table, w io.Writer) error {
	records := tbl.Records()
	for _, c := range tbl.Columns() {
		count, err := tbl.Compute(c.Name(), types.AggCount, records)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\tcount=%v", c.Name(), count)
		for _, kind := range []types.AggregateType{types.AggMin, types.AggMax} {
			v, err := c.GetAggregateValue(records, kind)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "\t%s=%v", strings.ToLower(kind.String()), v)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func listSorted(tbl *table.Table, columns []string, w io.Writer) error {
	idx, err := index.Build(tbl, columns...)
	if err != nil {
		return err
	}
	for _, r := range idx.Records() {
		values := make([]string, 0, len(tbl.Columns()))
		for _, c := range tbl.Columns() {
			values = append(values, fmt.Sprint(c.Get(r)))
		}
		fmt.Fprintln(w, strings.Join(values, "\t"))
	}
	return nil
}
