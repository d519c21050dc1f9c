// Package model defines the declarative form model: typed questions tagged by
// kind, validator descriptors, form definitions made of named members, and the
// SurveyJS schema tree produced by the assembler. Every kind declares an
// ordered attribute set with defaults (see Spec) which the wire encoder walks
// to keep output deterministic. Attribute names inside the model are
// snake_case; translation to the camelCase wire names happens in pkg/wire.
package model
