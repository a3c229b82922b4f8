// Package model turns the definitions of a decoded schema document into the
// class models handed to templates. Each definition becomes one Model holding
// its properties (name, mapped target type, optional enum and description),
// the rendered default literals and whether the class needs the enum import.
// Extraction is a pure function of the document: definitions and properties
// keep document order, and the first unsupported property type aborts the run
// with an UnsupportedTypeError before any model is returned.
package model
