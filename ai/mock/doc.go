// Package mock provides test doubles for the ai interfaces.
//
// The mocks return deterministic defaults and support behavior injection via
// function fields, plus call counting for assertions. They let the extraction
// pipeline and forest builder be tested without an inference service.
package mock
