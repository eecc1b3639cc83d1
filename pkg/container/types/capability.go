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
	"encoding/xml"
	"reflect"

	"go.uber.org/zap"

	"github.com/matrixorigin/colstore/pkg/common/cowmap"
	"github.com/matrixorigin/colstore/pkg/logutil"
	v2 "github.com/matrixorigin/colstore/pkg/util/metric/v2"
)

//go:generate mockgen -source=capability.go -destination=test/capability_mock.go -package=mock_types

// NullAware is implemented by values that can represent their own absence.
type NullAware interface {
	IsNull() bool
}

// ChangeTracking is implemented by values that record pending edits.
type ChangeTracking interface {
	IsChanged() bool
	AcceptChanges()
}

// RevertibleChangeTracking can also throw pending edits away.
type RevertibleChangeTracking interface {
	ChangeTracking
	RejectChanges()
}

// Comparable is the natural ordering hook for object and custom columns.
type Comparable interface {
	CompareTo(other any) (int, error)
}

// DynamicObject is implemented by values whose members are only known at
// run time. They cannot be serialized unless they also handle XML themselves.
type DynamicObject interface {
	DynamicMemberNames() []string
}

var (
	nullAwareType      = reflect.TypeOf((*NullAware)(nil)).Elem()
	changeTrackingType = reflect.TypeOf((*ChangeTracking)(nil)).Elem()
	revertibleType     = reflect.TypeOf((*RevertibleChangeTracking)(nil)).Elem()
	comparableType     = reflect.TypeOf((*Comparable)(nil)).Elem()
	dynamicObjectType  = reflect.TypeOf((*DynamicObject)(nil)).Elem()
	xmlMarshalerType   = reflect.TypeOf((*xml.Marshaler)(nil)).Elem()
	xmlUnmarshalerType = reflect.TypeOf((*xml.Unmarshaler)(nil)).Elem()
)

// Capabilities lists the optional behaviors a column type implements.
type Capabilities struct {
	NullAware                bool
	ChangeTracking           bool
	RevertibleChangeTracking bool
	XmlSerializable          bool
	Comparable               bool
	Dynamic                  bool
}

var capabilityCache cowmap.Map[reflect.Type, Capabilities]

// ImplementsCapabilities inspects t once and caches the answer.
func ImplementsCapabilities(t reflect.Type) Capabilities {
	if t == nil {
		return Capabilities{}
	}
	caps, _, _ := capabilityCache.LoadOrStore(t, func() (Capabilities, error) {
		caps := inspectCapabilities(t)
		v2.CacheBuildCapabilityCounter.Inc()
		logutil.Debug("inspect type capabilities",
			zap.String("type", t.String()),
			zap.Bool("null-aware", caps.NullAware),
			zap.Bool("xml", caps.XmlSerializable))
		return caps, nil
	})
	return caps
}

func inspectCapabilities(t reflect.Type) Capabilities {
	return Capabilities{
		NullAware:                t.Implements(nullAwareType),
		ChangeTracking:           t.Implements(changeTrackingType),
		RevertibleChangeTracking: t.Implements(revertibleType),
		XmlSerializable:          IsXmlSerializable(t),
		Comparable:               t.Implements(comparableType),
		Dynamic:                  t.Implements(dynamicObjectType),
	}
}

// IsXmlSerializable reports whether t writes and reads its own XML: it
// must marshal by value or pointer and unmarshal through a pointer.
func IsXmlSerializable(t reflect.Type) bool {
	if t.Kind() == reflect.Interface {
		return false
	}
	pt := t
	if t.Kind() != reflect.Ptr {
		pt = reflect.PointerTo(t)
	}
	return (t.Implements(xmlMarshalerType) || pt.Implements(xmlMarshalerType)) &&
		pt.Implements(xmlUnmarshalerType)
}

// IsValueType reports whether values of t are copied rather than shared.
func IsValueType(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return false
	}
	return true
}
