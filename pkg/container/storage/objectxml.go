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
	"context"
	"encoding/base64"
	"encoding/xml"
	"math/big"
	"net/url"
	"reflect"
	"strings"
	gotime "time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/matrixorigin/colstore/pkg/common/cowmap"
	"github.com/matrixorigin/colstore/pkg/common/moerr"
	"github.com/matrixorigin/colstore/pkg/container/types"
	"github.com/matrixorigin/colstore/pkg/logutil"
	v2 "github.com/matrixorigin/colstore/pkg/util/metric/v2"
)

const (
	MsdataNS = "urn:schemas-microsoft-com:xml-msdata"
	XsiNS    = "http://www.w3.org/2001/XMLSchema-instance"

	instanceTypeAttr = "InstanceType"
	// typeInstance is the InstanceType of a value that is itself a type.
	typeInstance = "Type"
)

var (
	urlType    = reflect.TypeOf((*url.URL)(nil))
	bigIntType = reflect.TypeOf((*big.Int)(nil))
)

// xsdTypes maps the XSD built-in names accepted in xsi:type.
var xsdTypes = map[string]reflect.Type{
	"string":        types.StringType,
	"boolean":       reflect.TypeOf(false),
	"byte":          reflect.TypeOf(int8(0)),
	"unsignedByte":  reflect.TypeOf(uint8(0)),
	"short":         reflect.TypeOf(int16(0)),
	"unsignedShort": reflect.TypeOf(uint16(0)),
	"int":           reflect.TypeOf(int32(0)),
	"unsignedInt":   reflect.TypeOf(uint32(0)),
	"long":          reflect.TypeOf(int64(0)),
	"unsignedLong":  reflect.TypeOf(uint64(0)),
	"float":         reflect.TypeOf(float32(0)),
	"double":        reflect.TypeOf(float64(0)),
	"decimal":       types.DecimalType,
	"dateTime":      types.DateTimeType,
	"duration":      reflect.TypeOf(gotime.Duration(0)),
	"base64Binary":  types.BytesType,
	"anyURI":        urlType,
	"integer":       bigIntType,
}

// XmlElementStorage is implemented by storages that read and write whole
// XML elements rather than element text.
type XmlElementStorage interface {
	ReadXmlElement(dec *xml.Decoder, start xml.StartElement, root *xml.Name) (any, error)
	WriteXmlElement(enc *xml.Encoder, start xml.StartElement, value any, root *xml.Name) error
}

var _ XmlElementStorage = (*objectStorage)(nil)

// isBuiltinType reports types whose XML form is plain text.
func isBuiltinType(t reflect.Type) bool {
	code := types.ClassifyType(t)
	return code != types.T_empty && code != types.T_object && !code.IsSqlType()
}

// scalar returns a value storage used to format and parse values of code.
func (s *objectStorage) scalar(code types.StorageType) Storage {
	if st, ok := s.scalars[code]; ok {
		return st
	}
	st := newScalarStorage(code, s.opts)
	if st != nil {
		if s.scalars == nil {
			s.scalars = make(map[types.StorageType]Storage)
		}
		s.scalars[code] = st
	}
	return st
}

func (s *objectStorage) ConvertObjectToXml(value any) (string, error) {
	if types.IsObjectNull(value) {
		return "", nil
	}
	switch v := value.(type) {
	case []byte:
		return base64.StdEncoding.EncodeToString(v), nil
	case reflect.Type:
		return types.TypeName(v), nil
	case uuid.UUID:
		return v.String(), nil
	case *url.URL:
		return v.String(), nil
	case *big.Int:
		return v.String(), nil
	case []types.Char:
		return types.CharsToString(v), nil
	case types.DateTimeOffset:
		return v.Format(gotime.RFC3339Nano), nil
	}
	t := reflect.TypeOf(value)
	if st := s.scalar(types.ClassifyType(t)); st != nil {
		return st.ConvertObjectToXml(value)
	}
	if types.ImplementsCapabilities(t).XmlSerializable {
		b, err := xml.Marshal(value)
		if err != nil {
			return "", xmlError(err)
		}
		return string(b), nil
	}
	ser, err := getXmlSerializer(t, xml.Name{})
	if err != nil {
		return "", err
	}
	return ser.marshalString(value)
}

func (s *objectStorage) ConvertXmlToObject(text string) (any, error) {
	if s.dataType == types.AnyType {
		return text, nil
	}
	return s.parseXml(s.dataType, text)
}

// parseXml reads the string form of a value of type t.
func (s *objectStorage) parseXml(t reflect.Type, text string) (any, error) {
	switch t {
	case types.BytesType:
		b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(text))
		if err != nil {
			return nil, moerr.NewConvertFailedNoCtx(text, types.T_bytes.String())
		}
		return b, nil
	case types.TypeType:
		rt, err := types.ResolveType(strings.TrimSpace(text))
		if err != nil {
			return nil, err
		}
		return rt, nil
	case types.GuidType:
		g, err := toGuid(text)
		if err != nil {
			return nil, err
		}
		return g, nil
	case urlType, bigIntType, reflect.TypeOf([]types.Char(nil)), reflect.TypeOf(types.DateTimeOffset{}):
		code := types.ClassifyType(t)
		return newObjectStorage(t, code, s.opts).convert(text)
	}
	if st := s.scalar(types.ClassifyType(t)); st != nil {
		v, err := st.ConvertXmlToObject(text)
		if err != nil {
			return nil, err
		}
		if rv := reflect.ValueOf(v); rv.Type() != t {
			return rv.Convert(t).Interface(), nil
		}
		return v, nil
	}
	caps := types.ImplementsCapabilities(t)
	if caps.XmlSerializable {
		target, result := newInstance(t)
		if err := xml.Unmarshal([]byte(text), target); err != nil {
			return nil, moerr.NewConvertFailedNoCtx(text, types.TypeName(t))
		}
		return result(), nil
	}
	ser, err := getXmlSerializer(t, xml.Name{})
	if err != nil {
		return nil, err
	}
	return ser.unmarshalString(text)
}

func xmlError(err error) error {
	return moerr.ConvertGoError(context.Background(), err)
}

func attrValue(start xml.StartElement, space, local string) string {
	for _, a := range start.Attr {
		if a.Name.Space == space && a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func readText(dec *xml.Decoder, start xml.StartElement) (string, error) {
	var text string
	if err := dec.DecodeElement(&text, &start); err != nil {
		return "", xmlError(err)
	}
	return text, nil
}

// ReadXmlElement decodes the value carried by the element start. With a
// non-nil root the generic serializer of the column type reads the element.
// Otherwise msdata:InstanceType, then xsi:type, pick the runtime type.
func (s *objectStorage) ReadXmlElement(dec *xml.Decoder, start xml.StartElement, root *xml.Name) (any, error) {
	if root != nil {
		ser, err := getXmlSerializer(s.dataType, *root)
		if err != nil {
			return nil, err
		}
		return ser.deserialize(dec, start)
	}

	var t reflect.Type
	builtin := false
	typeName := attrValue(start, MsdataNS, instanceTypeAttr)
	if typeName == "" {
		if xsdName := attrValue(start, XsiNS, "type"); xsdName != "" {
			if _, local, ok := strings.Cut(xsdName, ":"); ok {
				xsdName = local
			}
			xt, ok := xsdTypes[xsdName]
			if !ok {
				return nil, moerr.NewTypeNotFoundNoCtx(xsdName)
			}
			t, builtin = xt, true
		} else if s.dataType == types.AnyType {
			return readText(dec, start)
		}
	}
	if typeName == typeInstance {
		text, err := readText(dec, start)
		if err != nil {
			return nil, err
		}
		rt, err := types.ResolveType(strings.TrimSpace(text))
		if err != nil {
			return nil, err
		}
		return rt, nil
	}
	if t == nil {
		t = s.dataType
		if typeName != "" {
			var err error
			if t, err = types.ResolveType(typeName); err != nil {
				return nil, err
			}
		}
	}
	if t == types.AnyType {
		return nil, moerr.NewCannotDeserializeObjectNoCtx(types.TypeName(t))
	}
	if builtin || isBuiltinType(t) {
		text, err := readText(dec, start)
		if err != nil {
			return nil, err
		}
		return s.parseXml(t, text)
	}
	if types.ImplementsCapabilities(t).XmlSerializable {
		target, result := newInstance(t)
		if err := dec.DecodeElement(target, &start); err != nil {
			return nil, xmlError(err)
		}
		return result(), nil
	}
	ser, err := getXmlSerializer(t, xml.Name{})
	if err != nil {
		return nil, err
	}
	return ser.deserialize(dec, start)
}

// WriteXmlElement encodes value as the element start. The runtime type is
// recorded in msdata:InstanceType when it differs from the column type.
func (s *objectStorage) WriteXmlElement(enc *xml.Encoder, start xml.StartElement, value any, root *xml.Name) error {
	t := reflect.TypeOf(value)
	if root != nil {
		ser, err := getXmlSerializer(t, *root)
		if err != nil {
			return err
		}
		return ser.serialize(enc, value, xml.StartElement{Name: *root})
	}
	if rt, ok := value.(reflect.Type); ok {
		start.Attr = append(start.Attr, instanceType(typeInstance))
		return enc.EncodeElement(types.TypeName(rt), start)
	}
	if t != s.dataType {
		start.Attr = append(start.Attr, instanceType(types.TypeName(t)))
	}
	if isBuiltinType(t) {
		text, err := s.ConvertObjectToXml(value)
		if err != nil {
			return err
		}
		return enc.EncodeElement(text, start)
	}
	if types.ImplementsCapabilities(t).XmlSerializable {
		return enc.EncodeElement(value, start)
	}
	ser, err := getXmlSerializer(t, xml.Name{})
	if err != nil {
		return err
	}
	return ser.serialize(enc, value, start)
}

func instanceType(name string) xml.Attr {
	return xml.Attr{Name: xml.Name{Space: MsdataNS, Local: instanceTypeAttr}, Value: name}
}

// newInstance allocates a value of t to decode into. result returns it in
// the shape of t.
func newInstance(t reflect.Type) (target any, result func() any) {
	if t.Kind() == reflect.Ptr {
		p := reflect.New(t.Elem())
		return p.Interface(), p.Interface
	}
	p := reflect.New(t)
	return p.Interface(), func() any {
		return p.Elem().Interface()
	}
}

type serializerKey struct {
	typ  reflect.Type
	root xml.Name
}

// xmlSerializer reads and writes values of one type through encoding/xml,
// optionally under a fixed root element.
type xmlSerializer struct {
	typ  reflect.Type
	root xml.Name
}

var serializers cowmap.Map[serializerKey, *xmlSerializer]

func getXmlSerializer(t reflect.Type, root xml.Name) (*xmlSerializer, error) {
	ser, _, err := serializers.LoadOrStore(serializerKey{typ: t, root: root}, func() (*xmlSerializer, error) {
		if t == nil || t.Kind() == reflect.Interface {
			return nil, moerr.NewCannotDeserializeObjectNoCtx(types.TypeName(t))
		}
		if caps := types.ImplementsCapabilities(t); caps.Dynamic && !caps.XmlSerializable {
			return nil, moerr.NewInvalidDynamicTypeNoCtx()
		}
		v2.CacheBuildSerializerCounter.Inc()
		logutil.Debug("build xml serializer",
			zap.String("type", t.String()),
			zap.String("root", root.Local))
		return &xmlSerializer{typ: t, root: root}, nil
	})
	return ser, err
}

func (x *xmlSerializer) serialize(enc *xml.Encoder, v any, start xml.StartElement) error {
	if x.root.Local != "" {
		start = xml.StartElement{Name: x.root, Attr: start.Attr}
	}
	if start.Name.Local == "" {
		return enc.Encode(v)
	}
	return enc.EncodeElement(v, start)
}

func (x *xmlSerializer) deserialize(dec *xml.Decoder, start xml.StartElement) (any, error) {
	if x.root.Local != "" && start.Name.Local != x.root.Local {
		return nil, moerr.NewCannotDeserializeObjectNoCtx(types.TypeName(x.typ))
	}
	target, result := newInstance(x.typ)
	if err := dec.DecodeElement(target, &start); err != nil {
		return nil, xmlError(err)
	}
	return result(), nil
}

func (x *xmlSerializer) marshalString(v any) (string, error) {
	var sb strings.Builder
	if err := x.serialize(xml.NewEncoder(&sb), v, xml.StartElement{}); err != nil {
		return "", xmlError(err)
	}
	return sb.String(), nil
}

func (x *xmlSerializer) unmarshalString(text string) (any, error) {
	dec := xml.NewDecoder(strings.NewReader(text))
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, moerr.NewConvertFailedNoCtx(text, types.TypeName(x.typ))
		}
		if start, ok := tok.(xml.StartElement); ok {
			return x.deserialize(dec, start)
		}
	}
}
