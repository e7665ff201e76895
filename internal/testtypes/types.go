package testtypes

import "reflect"

var (
	TypeStructA    = reflect.TypeOf((*(StructA))(nil)).Elem()
	TypeStructAPtr = reflect.TypeOf((*(*StructA))(nil)).Elem()
	TypeInterfaceA = reflect.TypeOf((*(InterfaceA))(nil)).Elem()

	TypeStructB    = reflect.TypeOf((*(StructB))(nil)).Elem()
	TypeStructBPtr = reflect.TypeOf((*(*StructB))(nil)).Elem()
	TypeInterfaceB = reflect.TypeOf((*(InterfaceB))(nil)).Elem()

	TypeStructC    = reflect.TypeOf((*(StructC))(nil)).Elem()
	TypeStructCPtr = reflect.TypeOf((*(*StructC))(nil)).Elem()
	TypeInterfaceC = reflect.TypeOf((*(InterfaceC))(nil)).Elem()

	TypeStructD    = reflect.TypeOf((*(StructD))(nil)).Elem()
	TypeStructDPtr = reflect.TypeOf((*(*StructD))(nil)).Elem()
	TypeInterfaceD = reflect.TypeOf((*(InterfaceD))(nil)).Elem()
)

type InterfaceA interface {
	A()
}

type InterfaceB interface {
	B()
}

type InterfaceC interface {
	C()
}

type InterfaceD interface {
	D()
}

type StructA struct {
	Tag any
}

func (StructA) A() {}

type StructB struct{}

func (StructB) B() {}

type StructC struct{}

func (StructC) C() {}

type StructD struct{}

func (StructD) D() {}

func NewInterfaceA() InterfaceA {
	return &StructA{}
}

func NewStructAPtr() *StructA {
	return &StructA{}
}

func NewInterfaceB(InterfaceA) InterfaceB {
	return &StructB{}
}

func NewStructBPtr(*StructA) *StructB {
	return &StructB{}
}

func NewInterfaceC(InterfaceA, InterfaceB) InterfaceC {
	return &StructC{}
}

func NewStructCPtr(*StructA, *StructB) *StructC {
	return &StructC{}
}

func NewInterfaceD(InterfaceA, InterfaceB, InterfaceC) InterfaceD {
	return &StructD{}
}

func NewStructDPtr(*StructA, *StructB, *StructC) *StructD {
	return &StructD{}
}
