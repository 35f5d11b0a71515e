package model

import internalmodel "github.com/goliatone/go-srcgen/internal/model"

// Kind re-exports the internal Kind enumeration.
type Kind = internalmodel.Kind

const (
	KindUnknown = internalmodel.KindUnknown

	KindString  = internalmodel.KindString
	KindInteger = internalmodel.KindInteger
	KindNumber  = internalmodel.KindNumber
	KindBoolean = internalmodel.KindBoolean
	KindArray   = internalmodel.KindArray
	KindObject  = internalmodel.KindObject
	KindRef     = internalmodel.KindRef
)

type TypeRef = internalmodel.TypeRef
type Field = internalmodel.Field
type Decl = internalmodel.Decl
type Module = internalmodel.Module
