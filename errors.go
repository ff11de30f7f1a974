package csstypes

import "errors"

// Configuration errors. New wraps them with details; match with errors.Is.
var (
	ErrMissingGenerator     = errors.New("csstypes: you have to set a generator")
	ErrInvalidGeneratorType = errors.New("csstypes: generator has to be a built-in name or a generator function")
	ErrUnknownGeneratorName = errors.New("csstypes: unknown built-in generator")
	ErrMissingOutputPath    = errors.New("csstypes: you have to set an output path")
	ErrInvalidFilterType    = errors.New("csstypes: filter has to be a func(string) bool")
	ErrInvalidContent       = errors.New("csstypes: content has to be a glob string, a content source, or a list of them")
	ErrInvalidContentPath   = errors.New("csstypes: content path has to be a string or a list of strings")
	ErrInvalidContentMapper = errors.New("csstypes: content mapper has to be a function or a known mapper name")
	ErrInvalidContentRegex  = errors.New("csstypes: content regex does not compile")
)
